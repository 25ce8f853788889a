// Package scanner discovers indexable files in a project directory,
// honoring VCS ignore rules, ancestor ignore files, and topo's own
// hidden data directory.
package scanner

// DataDirName is the name of topo's own hidden data directory,
// always excluded from scans regardless of gitignore contents.
const DataDirName = ".topo"

// ScanOptions configures scanner behavior.
type ScanOptions struct {
	// Root is the project root directory to scan.
	Root string

	// ExtraIgnorePatterns are additional gitignore-syntax patterns to
	// exclude, layered on top of VCS ignore files (config.IgnoreConfig).
	ExtraIgnorePatterns []string

	// FollowSymlinks is not read by Scan: symbolic links and other
	// non-regular entries are always skipped, whatever its value.
	FollowSymlinks bool

	// MaxFileSize is the maximum file size to include, in bytes.
	// Zero means no limit.
	MaxFileSize int64

	// Workers is the number of files hashed concurrently. Zero uses
	// runtime.NumCPU().
	Workers int

	// ProgressFunc, if set, is called after each file is scanned.
	ProgressFunc func(scanned int)
}

// ScanResult is one file discovered by the scanner, or a per-file
// error that did not abort the scan.
type ScanResult struct {
	Path string
	Err  error
}
