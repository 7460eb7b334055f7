package app

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/wupperinst/itom/internal/config"
	"github.com/wupperinst/itom/internal/fsutil"
	"github.com/wupperinst/itom/internal/hcl"
	"github.com/wupperinst/itom/internal/yamlconfig"
)

// LoaderFor picks the configuration format by extension. A directory is read
// as YAML when it holds YAML files and no HCL files.
func LoaderFor(path string) config.Loader {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yamlconfig.NewLoader()
	case hcl.Extension:
		return hcl.NewLoader()
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		hclFiles, _ := fsutil.FindFilesByExtension(path, hcl.Extension)
		if len(hclFiles) == 0 {
			for _, ext := range yamlconfig.Extensions {
				if found, _ := fsutil.FindFilesByExtension(path, ext); len(found) > 0 {
					return yamlconfig.NewLoader()
				}
			}
		}
	}
	return hcl.NewLoader()
}
