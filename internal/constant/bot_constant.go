package constant

const (
	ActionCreated     = "ACTION_CREATED"
	ActionActiveToday = "ACTION_ACTIVE_TODAY"

	// ActionTypeMaxLength matches the action_logs.type column.
	ActionTypeMaxLength = 64

	DefaultTimezone = "+00:00"
	StartCommand    = "/start"

	// JWT claims of the chat websocket.
	ClaimParticipantID = "participant_id"
	ClaimIsStaff       = "is_staff"
)
