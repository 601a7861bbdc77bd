package store

import (
	"errors"
	"fmt"
)

type ErrArchiveNotFound struct {
	Name string
}

func (e *ErrArchiveNotFound) Error() string {
	return fmt.Sprintf("archive not found: %s", e.Name)
}

func IsArchiveNotFound(err error) bool {
	notFound := &ErrArchiveNotFound{}
	return errors.As(err, &notFound)
}
