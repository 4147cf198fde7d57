// Copyright (c) 2024, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package file

import (
	"os"
	"path/filepath"
	"strings"
)

// AbsPath returns the absolute path of the string, expanding a ~/
// prefix if needed.
func AbsPath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
	}

	return filepath.Abs(path)
}

// EnsureDir ensures that a directory and its parents exist.
func EnsureDir(dir string) error {
	err := os.MkdirAll(dir, 0755)
	if err != nil && !os.IsExist(err) {
		return err
	}
	return nil
}
