package docforms

import (
	"embed"
	"io/fs"
)

//go:embed assets/*.js
var embeddedRuntimeAssets embed.FS

// RuntimeAssetsFS exposes the client-side scripts (committed under assets/)
// so applications can serve them without a frontend build step.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(docforms.RuntimeAssetsFS()),
//	  ),
//	)
func RuntimeAssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedRuntimeAssets, "assets")
	if err != nil {
		return embeddedRuntimeAssets
	}
	return sub
}
