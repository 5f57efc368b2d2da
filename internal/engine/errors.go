package engine

import (
	"errors"
	"fmt"
)

var (
	ErrNoCards    = errors.New("no cards available")
	ErrNoBestCard = errors.New("could not determine best card")
)

// ValidationError reports malformed input to training or recommendation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// StorageError wraps snapshot I/O failures other than a missing file.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
