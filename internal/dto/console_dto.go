package dto

type ConsoleStatusResponse struct {
	ParticipantId int64 `json:"participant_id,string"`
	Connections   int   `json:"connections"`
}

type LogEntryResponse struct {
	Timestamp string                 `json:"timestamp"`
	Level     string                 `json:"level"`
	Module    string                 `json:"module"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
}
