package constants

// Context and session keys
const (
	ContextKeyUserID    = "user_id"
	ContextKeyRequestID = "request_id"
	SessionName         = "assistant_session"
)

// Session lifetime in seconds (7 days)
const SessionMaxAge = 86400 * 7

// Authentication
const MinPasswordLength = 8

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Analytics
const (
	// TrendWindowDays is the trailing window for creation/completion trends,
	// inclusive of today.
	TrendWindowDays = 7

	// TrendEntryScoreWeight is added to the productivity score for each
	// trend day with activity.
	TrendEntryScoreWeight = 5
)

// AI assistant
const (
	// MaxContextTasks caps how many recent tasks are included in chat prompts.
	MaxContextTasks = 10

	InteractionTypeChat = "chat"
)
