package contacts

import (
	"errors"

	"github.com/assistant-bot/assistant-bot/internal/config"
)

// ErrNotFound is matched by every NotFoundError through errors.Is.
var ErrNotFound = errors.New(config.ErrNameNotFound)

// ValidationError rejects malformed input at construction or edit time.
// MessageID names the translation used when the error is shown to a user;
// Msg is the English text.
type ValidationError struct {
	MessageID string
	Msg       string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// NotFoundError reports an explicit operation on a contact that does not exist.
// Plain lookups never return it.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return config.ErrNameNotFound
}

// Is makes errors.Is(err, ErrNotFound) hold.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func errPhoneFormat() error {
	return &ValidationError{MessageID: config.TKeyErrPhoneFormat, Msg: config.ErrPhoneFormat}
}

func errDateFormat() error {
	return &ValidationError{MessageID: config.TKeyErrDateFormat, Msg: config.ErrDateFormat}
}

func errPhoneNotFound() error {
	return &ValidationError{MessageID: config.TKeyErrPhoneNotFound, Msg: config.ErrPhoneNotFound}
}
