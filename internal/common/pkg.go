package common

import "path"

// RuntimePkgPath is the import path of the runtime package used by generated code.
const RuntimePkgPath = "prefs-generator/prefs"

// RuntimePkgName is the package name of RuntimePkgPath.
const RuntimePkgName = "prefs"

// UnknownStr is the String() value of out-of-range enum values.
const UnknownStr = "unknown"

// PkgAlias returns the package alias (last element of path) for a given package path.
// Returns empty string if pkgPath is empty.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	return path.Base(pkgPath)
}
