package aescbc

import "errors"

type ErrWrongPassword struct{}

type ErrNotEncrypted struct{}

func (e *ErrWrongPassword) Error() string {
	return "wrong password or corrupted archive"
}

func (e *ErrNotEncrypted) Error() string {
	return "data is not a sealed archive"
}

func IsWrongPassword(err error) bool {
	wrongPassword := &ErrWrongPassword{}
	return errors.As(err, &wrongPassword)
}
