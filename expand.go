package rnacompete

import (
	"os/user"
	"path/filepath"
	"strings"
)

// ExpandHome expands a leading ~ to the current user's home directory. Paths
// like "/something/~/something/" are left alone. If the current user cannot
// be determined, path is returned unchanged.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	usr, err := user.Current()
	if err != nil {
		return path
	}

	if path == "~" {
		return usr.HomeDir
	}

	return filepath.Join(usr.HomeDir, path[2:])
}

// ResolvePath expands ~ in path and, if the result is relative, joins it to
// dir. Google Storage paths and paths with an empty dir are returned after
// expansion only.
func ResolvePath(dir, path string) string {
	if path == "" || strings.HasPrefix(path, "gs://") {
		return path
	}

	path = ExpandHome(path)
	if dir == "" || filepath.IsAbs(path) {
		return path
	}

	if strings.HasPrefix(dir, "gs://") {
		return strings.TrimSuffix(dir, "/") + "/" + path
	}

	return filepath.Join(ExpandHome(dir), path)
}
