package constants

const (
	// Session
	SessionCookieName = "task_session"
	SessionMaxAge     = 86400 * 7
	ContextKeyUserID  = "user_id"

	// Request scoped values
	ContextKeyRequestID = "request_id"
	ContextKeyLogger    = "logger"
	ContextKeyUser      = "owner"
	HeaderRequestID     = "X-Request-ID"

	// Field limits
	MinUsernameLength    = 3
	MaxUsernameLength    = 50
	MinPasswordLength    = 6
	MaxTaskTitleLength   = 200
	MaxTaskDescLength    = 1000
	MaxAIGeneratedTasks  = 20
	MaxAIInputTextLength = 5000
)
