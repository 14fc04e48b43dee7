package actionlog

import "time"

type EntryResponse struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Action    Action    `json:"action"`
	Details   string    `json:"details"`
}

func ToResponse(e Entry) EntryResponse {
	return EntryResponse{
		ID:        e.ID,
		Timestamp: e.Timestamp,
		Action:    e.Action,
		Details:   e.Details,
	}
}
