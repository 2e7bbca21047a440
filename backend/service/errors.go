package service

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrActionNotAllowed = errors.New("action not allowed in current status")
	ErrInvalidInput     = errors.New("invalid input")
)

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrActionNotAllowed):
		return "denied"
	case errors.Is(err, ErrInvalidInput):
		return "invalid"
	default:
		return "error"
	}
}
