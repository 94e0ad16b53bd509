package core

// Error codes
const (
	ErrGameNotFound       = "GAME_NOT_FOUND"
	ErrInvalidOrigin      = "INVALID_ORIGIN"
	ErrInvalidDestination = "INVALID_DESTINATION"
	ErrSelfCheck          = "SELF_CHECK"
	ErrGameOver           = "GAME_OVER"
	ErrRateLimitExceeded  = "RATE_LIMIT_EXCEEDED"
	ErrInvalidContent     = "INVALID_CONTENT_TYPE"
	ErrInvalidRequest     = "INVALID_REQUEST"
	ErrInvalidSquare      = "INVALID_SQUARE"
	ErrInternalError      = "INTERNAL_ERROR"
	ErrResourceLimit      = "RESOURCE_LIMIT"
)
