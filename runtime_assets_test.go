package docforms

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/goliatone/go-docforms/pkg/widgets"
)

func TestRuntimeAssetsFSContainsDynamicListScript(t *testing.T) {
	fsys := RuntimeAssetsFS()
	data, err := fs.ReadFile(fsys, "dynamiclist.js")
	if err != nil {
		t.Fatalf("expected dynamic list script to be readable: %v", err)
	}
	if !strings.Contains(string(data), widgets.DynamicClassPrefix) {
		t.Fatalf("expected script to reference the %q class marker", widgets.DynamicClassPrefix)
	}
}
