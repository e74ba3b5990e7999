package server

import "time"

// HTTP error messages for middleware responses
const (
	ErrMsgUnauthorized    = "Unauthorized"
	ErrMsgTooManyRequests = "Too Many Requests"
)

// Security alert message templates
const (
	SecurityAlertFailedAuth = "⚠️ SECURITY ALERT: Multiple failed authentication attempts"
	SecurityAlertHighRate   = "⚠️ SECURITY ALERT: Blocking high request rate"
)

// Log messages for server lifecycle and request handling
const (
	LogMsgServerStarting   = "Server starting"
	LogMsgRequestStarted   = "Request started"
	LogMsgRequestCompleted = "Request completed"
	LogMsgRequestHeaders   = "Request headers"
	LogMsgAuthFailed       = "Authentication failed"
)

// HTTP header names
const (
	HeaderAPIKey         = "X-API-Key"
	HeaderAuthorization  = "Authorization"
	HeaderForwardedFor   = "X-Forwarded-For"
	HeaderContentType    = "X-Content-Type-Options"
	HeaderFrameOptions   = "X-Frame-Options"
	HeaderReferrerPolicy = "Referrer-Policy"
	HeaderCacheControl   = "Cache-Control"
)

// Security header values
const (
	HeaderValueNoSniff            = "nosniff"
	HeaderValueDeny               = "DENY"
	HeaderValueReferrerNoReferrer = "no-referrer"
	HeaderValueNoStore            = "no-store"
)

// Public path prefixes that bypass authentication
var PublicPaths = []string{
	"/healthz",
	"/readyz",
	"/metrics",
	"/version",
	"/swagger/",
}

// Header redaction marker
const (
	RedactedValue = "[REDACTED]"
)

// Client limits
const (
	MaxRequestBodyBytes = 1 << 20

	// ClientRequestsPerSecond and ClientBurst bound traffic per client IP
	ClientRequestsPerSecond = 20
	ClientBurst             = 100

	// FailedAuthAlertThreshold failures inside FailedAuthWindow raise a security alert
	FailedAuthAlertThreshold = 5
	FailedAuthWindow         = 5 * time.Minute

	clientIdleTimeout      = 10 * time.Minute
	clientCleanupThreshold = 1000
	readHeaderTimeout      = 5 * time.Second
	highRateLogEvery       = 100
)
