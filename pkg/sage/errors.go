package sage

import "errors"

var (
	ErrInvalidResponse = errors.New("sage: invalid summary response")
	ErrCompletion      = errors.New("sage: completion failed")
	ErrNoChoices       = errors.New("sage: completion returned no choices")
	ErrInvalidSchedule = errors.New("sage: invalid warm-up schedule")
)
