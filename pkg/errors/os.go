package errors

import (
	"errors"
	"io/fs"
)

// IsNotExist reports whether err says a file or directory does not exist.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
