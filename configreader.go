package localesort

import (
	"os"
	"path/filepath"

	"github.com/AFurtner/datatablesLocaleSort/config"
)

// NewConfigMapperFromAssets creates a new ConfigMapper from the asset folder, relative to the executing binary.
func NewConfigMapperFromAssets() (config.ConfigMapper, error) {
	ex, err := os.Executable()
	if err != nil {
		panic(err)
	}

	return config.NewConfigMapperFromFolder(filepath.Dir(ex) + "/assets/tables/")
}
