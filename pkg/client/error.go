package client

import (
	"errors"
	"fmt"
)

type ErrUnauthorized struct {
	Server string
}

func (e *ErrUnauthorized) Error() string {
	return fmt.Sprintf("%s rejected the API key - set --api-key or SERVICE_API_KEY", e.Server)
}

type ErrUploadTooLarge struct {
	Limit int64
}

func (e *ErrUploadTooLarge) Error() string {
	if e.Limit > 0 {
		return fmt.Sprintf("uploaded data too large, the server accepts at most %d bytes", e.Limit)
	}
	return "uploaded data too large"
}

// ErrNotSupported marks operations the remote service has no endpoint
// for. Archive removal and pruning happen where the store lives.
type ErrNotSupported struct {
	Op string
}

func (e *ErrNotSupported) Error() string {
	return fmt.Sprintf("%s is not supported by the server, run it where the archives are stored", e.Op)
}

func IsNotSupported(err error) bool {
	notSupported := &ErrNotSupported{}
	return errors.As(err, &notSupported)
}
