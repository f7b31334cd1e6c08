package types

import "encoding/json"

// SaveResumeRequest creates a new saved résumé.
type SaveResumeRequest struct {
	Template  string          `json:"template" validate:"required"`
	Title     string          `json:"title,omitempty"`
	Data      json.RawMessage `json:"data" validate:"required"`
	Thumbnail string          `json:"thumbnail,omitempty"`
}

// UpdateResumeRequest partially updates a saved résumé. Absent fields keep
// their stored values.
type UpdateResumeRequest struct {
	Template  *string          `json:"template,omitempty"`
	Title     *string          `json:"title,omitempty"`
	Data      *json.RawMessage `json:"data,omitempty"`
	Thumbnail *string          `json:"thumbnail,omitempty"`
}
