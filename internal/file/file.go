package file

import (
	"io"
	"os"
	"path/filepath"
)

// Append writes data to the end of path, creating the file and its directory when missing
func Append(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0600)
	if err != nil {
		return err
	}

	n, err := f.Write(data)
	if err != nil {
		_ = f.Close()
		return err
	}

	if n < len(data) {
		_ = f.Close()
		return io.ErrShortWrite
	}

	return f.Close()
}
