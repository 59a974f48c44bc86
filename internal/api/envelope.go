package api

import (
	"github.com/danielgtaylor/huma/v2"
)

// Envelope is the consistent JSON response structure wrapped around
// every API body.
type Envelope struct {
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
	Success bool   `json:"success"`
}

// EnvelopeTransformer wraps response bodies in the standard envelope.
// Raw byte bodies (file downloads) pass through untouched.
func EnvelopeTransformer(_ huma.Context, _ string, v any) (any, error) {
	if v == nil {
		return v, nil
	}

	switch body := v.(type) {
	case []byte:
		return body, nil
	case *APIError:
		return Envelope{
			Success: false,
			Error:   body.Message,
			Data:    body,
		}, nil
	}

	return Envelope{
		Success: true,
		Data:    v,
	}, nil
}
