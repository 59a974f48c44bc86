package api

// MessageResponse contains a simple informational message.
type MessageResponse struct {
	Message string `json:"message" doc:"Informational message"`
}

// MessageOutput wraps a message response for Huma.
type MessageOutput struct {
	Body MessageResponse
}
