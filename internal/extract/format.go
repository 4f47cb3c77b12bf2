package extract

import (
	"fmt"
	"path/filepath"
	"strings"
)

// UnsupportedFormatError reports an input file whose extension maps to
// no known host format. It is returned before any extraction work.
type UnsupportedFormatError struct {
	Path string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file type %q: only .py and .sql files are supported", e.Path)
}

// DetectFormat resolves the host format of a file from its extension.
// Compression extensions (.gz, .bz2) are stripped first, so
// queries.sql.gz detects as FormatSQL.
func DetectFormat(path string) (Format, error) {
	base := StripCompression(path)
	switch strings.ToLower(filepath.Ext(base)) {
	case ".sql":
		return FormatSQL, nil
	case ".py":
		return FormatSparkCode, nil
	default:
		return FormatUnknown, &UnsupportedFormatError{Path: path}
	}
}

// StripCompression removes trailing .gz/.bz2 extensions from a path.
func StripCompression(path string) string {
	for {
		ext := strings.ToLower(filepath.Ext(path))
		if ext == ".gz" || ext == ".bz2" {
			path = strings.TrimSuffix(path, filepath.Ext(path))
			continue
		}
		return path
	}
}
