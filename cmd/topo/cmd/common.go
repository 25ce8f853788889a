package cmd

import "path/filepath"

// resolveRoot returns the absolute path topo should operate on: args[0] if
// given, else the current directory.
func resolveRoot(args []string) (string, error) {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}
	return filepath.Abs(path)
}
