package mutate

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownTheme    = errors.New("unknown color theme")
	ErrUnknownLanguage = errors.New("unknown language")
)

type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}
