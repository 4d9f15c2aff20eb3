package routes

const (
	// route constants
	IndexRoute    = "/{$}"
	FragmentRoute = "/signup/fragment"
	InputRoute    = "/signup/input"
	SubmitRoute   = "/signup/submit"
	MetricsRoute  = "/metrics"

	SessionCookieName = "signup_session"

	// Content-Type constants
	ContentType     = "Content-Type"
	ContentTypeJson = "application/json"
	ContentTypeHTML = "text/html; charset=utf-8"

	// Error messages
	ErrMethodNotAllowed    = "method not allowed"
	ErrInvalidRequestBody  = "invalid request body"
	ErrFailedToRender      = "failed to render page"
	ErrMethodNotAllowedFmt = "method %s not allowed"

	// metrics constants
	SubmitRateLimitedTotal     = "submit_rate_limited_total"
	SubmitRateLimitedTotalHelp = "Total number of sign-up submissions that were rate limited"
	SessionsMountedTotal       = "sessions_mounted_total"
	SessionsMountedTotalHelp   = "Total number of sign-up pages mounted"
)
