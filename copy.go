// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package sqlitetest

import (
	"io"
	"os"
)

// copyFile copies the source database byte-for-byte to the ephemeral path.
// A partial destination is removed on failure.
func copyFile(source, dest string) error {
	src, err := os.Open(source)
	if err != nil {
		return &CopyError{Source: source, Dest: dest, Err: err}
	}
	defer src.Close()

	dst, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return &CopyError{Source: source, Dest: dest, Err: err}
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dest)
		return &CopyError{Source: source, Dest: dest, Err: err}
	}
	if err := dst.Close(); err != nil {
		os.Remove(dest)
		return &CopyError{Source: source, Dest: dest, Err: err}
	}
	return nil
}
