package store

import (
	"errors"
	"fmt"
)

var errRandExhausted = errors.New("unable to generate a fresh id")

type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}
