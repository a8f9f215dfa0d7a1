package constant

import "time"

type contextKey string

// Values the auth middleware places on the request context.
const (
	ContextKeyUserID    contextKey = "user_id"
	ContextKeyUserEmail contextKey = "user_email"
	ContextKeyUserRole  contextKey = "user_role"
	ContextKeyTokenID   contextKey = "token_id"
)

// ContextGuest is the actor recorded for unauthenticated requests such as the guest emergency form.
const ContextGuest = "guest"

const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
	RoleGuest = "guest"
)

// Query and path parameters.
const (
	RequestParamID             = "id"
	RequestParamAvailabilityID = "availabilityID"
	RequestParamCode           = "code"
	RequestParamPage           = "page"
	RequestParamLimit          = "limit"
	RequestParamSortBy         = "sort_by"
	RequestParamSortDir        = "sort_dir"
	RequestParamCheckIn        = "check_in_date"
	RequestParamCheckOut       = "check_out_date"

	RequestMaxMemory = 10 << 20
)

const (
	DefaultValuePage  = 1
	DefaultValueLimit = 10
	MaxValueLimit     = 100
)

// Audit columns shared by every table.
const (
	FieldModifiedAt = "modified_at"
	FieldModifiedBy = "modified_by"
)

const (
	PqErrorCodeUniqueViolation = "23505"
	PqErrorCodeFkViolation     = "23503"
)

const (
	DateFormat     = time.RFC3339
	DateOnlyFormat = time.DateOnly
)

const (
	OtelHandlerScopeName    = "handler"
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelTxScopeName         = "transaction"
	OtelS3ScopeName         = "s3"
	OtelGatewayScopeName    = "gateway"

	OtelQueryAttributeKey = "query"
)

const (
	RequestHeaderAuthorization      = "Authorization"
	RequestHeaderAPIKey             = "X-API-Key"
	RequestHeaderUserAgent          = "User-Agent"
	RequestHeaderContentType        = "Content-Type"
	RequestHeaderContentDisposition = "Content-Disposition"
	RequestHeaderRequestID          = "X-Request-ID"
	RequestHeaderForwardedFor       = "X-Forwarded-For"
	RequestHeaderRealIP             = "X-Real-IP"

	RequestHeaderRateLimit          = "X-RateLimit-Limit"
	RequestHeaderRateLimitRemaining = "X-RateLimit-Remaining"
	RequestHeaderRateLimitWindow    = "X-RateLimit-Window"
	RequestHeaderRetryAfter         = "Retry-After"
)

const (
	ContentTypeJSON      = "application/json"
	ContentTypeTextPlain = "text/plain; charset=utf-8"
	ContentTypeXLSX      = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

const (
	ResponseErrorInternal             = "internal server error"
	ResponseErrorPrepareShutdown      = "SERVER PREPARING TO SHUT DOWN"
	ResponseErrorUnhealthy            = "SERVER UNHEALTHY"
	ResponseErrorRequestLimitExceeded = "REQUEST LIMIT EXCEEDED"
)

const (
	ServerEnvDevelopment = "development"
	ServerEnvProduction  = "production"
)

const (
	Asterix = "*"
	Empty   = ""
)
