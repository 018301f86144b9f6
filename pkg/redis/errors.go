package redis

import "errors"

// Connection errors. Open and Healthcheck join the driver error onto these.
var (
	ErrEmptyConnectionURL = errors.New("redis: REDIS_URL is empty")
	ErrFailedToParseURL   = errors.New("redis: invalid connection URL")
	ErrConnectionFailed   = errors.New("redis: cannot reach server")
	ErrHealthcheckFailed  = errors.New("redis: ping failed")
)
