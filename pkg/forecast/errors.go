package forecast

import "errors"

var (
	ErrUpstream      = errors.New("forecast: upstream request failed")
	ErrDecode        = errors.New("forecast: invalid response payload")
	ErrEmptyForecast = errors.New("forecast: no forecast periods")
	ErrMissingAPIKey = errors.New("forecast: api key is required")
	ErrInvalidCodes  = errors.New("forecast: invalid code table")
)
