package apierrors

// HTTP 400 Bad Request.
const (
	ErrInvalidTxid      = "INVALID_TXID"
	ErrInvalidLimit     = "INVALID_LIMIT"
	ErrInvalidSkip      = "INVALID_SKIP"
	ErrInvalidDate      = "INVALID_DATE"
	ErrInvalidDateRange = "INVALID_DATE_RANGE"
	ErrInvalidSortOrder = "INVALID_SORT_ORDER"
)

// HTTP 401 Unauthorized.
const (
	ErrUnauthorized = "UNAUTHORIZED"
)

// HTTP 404 Not Found / 405 Method Not Allowed.
const (
	ErrNotFound         = "NOT_FOUND"
	ErrMethodNotAllowed = "METHOD_NOT_ALLOWED"
)

// HTTP 429 Too Many Requests.
const (
	ErrRateLimited = "RATE_LIMITED"
)

// HTTP 500 Internal Server Error.
const (
	ErrInternal = "INTERNAL_ERROR"
)

// HTTP 503 Service Unavailable.
const (
	ErrStoreUnavailable = "STORE_UNAVAILABLE"
)

var messages = map[string]string{
	ErrInvalidTxid:      "txid must be a 64 character hexadecimal string",
	ErrInvalidLimit:     "limit must be a non-negative integer",
	ErrInvalidSkip:      "skip must be a non-negative integer",
	ErrInvalidDate:      "dates must be valid ISO 8601 values",
	ErrInvalidDateRange: "startDate must not be after endDate",
	ErrInvalidSortOrder: "sortOrder must be either asc or desc",
	ErrUnauthorized:     "unauthorized",
	ErrNotFound:         "resource not found",
	ErrMethodNotAllowed: "method not allowed",
	ErrRateLimited:      "too many requests",
	ErrInternal:         "internal server error",
	ErrStoreUnavailable: "record store unavailable",
}
