package domain

import "context"

// ReportSource reads raw report bytes from a file path, or stdin for "-".
type ReportSource interface {
	Read(ctx context.Context, path string) ([]byte, error)
}

// ReportDecoder turns raw bytes into a Report, failing with ErrParse or
// ErrInvalidInput.
type ReportDecoder interface {
	Decode(data []byte) (Report, error)
}

// ReportFinder locates coverage reports below a directory.
type ReportFinder interface {
	Find(root string, exclude ...string) ([]string, error)
}

// ConfigLoader loads .covscore.yaml from a directory, or an explicitly
// named config file.
type ConfigLoader interface {
	Load(dir string) (ProjectConfig, error)
	LoadFile(path string) (ProjectConfig, error)
}

// GitInfo resolves the commit a report belongs to.
type GitInfo interface {
	CommitHash(path string) (string, error)
}
