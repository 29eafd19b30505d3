package document

import (
	"context"
	"fmt"
	"path"
	"strings"
)

// UniqueName resolves a storage-name collision by probing exists and
// appending `_1`, `_2`, ... before the extension until a free name is found.
// Blob backends share this so every store renames the same way.
func UniqueName(ctx context.Context, name string, exists func(context.Context, string) (bool, error)) (string, error) {
	taken, err := exists(ctx, name)
	if err != nil {
		return "", err
	}
	if !taken {
		return name, nil
	}

	ext := path.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d%s", stem, i, ext)
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
}
