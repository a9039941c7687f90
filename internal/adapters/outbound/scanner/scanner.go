package scanner

import (
	"os"
	"path/filepath"
	"strings"
)

var skipDirs = map[string]bool{
	"vendor":       true,
	"node_modules": true,
	".git":         true,
	".nyc_output":  true,
}

// reportNames are the file names istanbul-style reporters write.
var reportNames = map[string]bool{
	"coverage-final.json":      true,
	"coverage-summary.json":    true,
	"coverage-final.json.gz":   true,
	"coverage-summary.json.gz": true,
}

// ReportScanner implements domain.ReportFinder by walking the filesystem.
type ReportScanner struct{}

func New() *ReportScanner {
	return &ReportScanner{}
}

// Find returns the coverage reports below root in lexical walk order.
// Directories named in exclude are skipped alongside the built-in ones.
func (s *ReportScanner) Find(root string, exclude ...string) ([]string, error) {
	absPath, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	// Merge extra excludes with built-in skip dirs.
	extraSkip := make(map[string]bool, len(exclude))
	for _, p := range exclude {
		extraSkip[strings.TrimSuffix(p, "/")] = true
	}

	var reports []string
	err = filepath.WalkDir(absPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != absPath && (skipDirs[d.Name()] || extraSkip[d.Name()]) {
				return filepath.SkipDir
			}
			return nil
		}

		if reportNames[d.Name()] {
			reports = append(reports, path)
		}
		return nil
	})

	return reports, err
}
