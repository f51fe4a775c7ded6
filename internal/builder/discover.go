package builder

import (
	"os"
	"path/filepath"
	"strings"
)

// Discover returns the files in srcDir whose name ends in ext. The scan is
// not recursive.
func Discover(srcDir, ext string) ([]string, error) {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return nil, &DiscoveryError{Path: srcDir, Message: "cannot read source directory", Err: err}
	}

	var units []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		units = append(units, filepath.Join(srcDir, e.Name()))
	}
	if len(units) == 0 {
		return nil, &DiscoveryError{Path: srcDir, Message: "no *" + ext + " compilation units in"}
	}
	return units, nil
}
