package domain

import (
	"time"

	"github.com/google/uuid"
)

// APIRequest is one logged HTTP request/response pair.
type APIRequest struct {
	RequestID    uuid.UUID `json:"request_id"`
	IPAddress    *string   `json:"ip_address,omitempty"`
	Method       string    `json:"method"`
	Route        string    `json:"route"`
	RequestBody  *string   `json:"request_body,omitempty"`
	StartTs      time.Time `json:"start_ts"`
	DurationMs   *int64    `json:"duration_ms,omitempty"`
	StatusCode   *int32    `json:"status_code,omitempty"`
	ResponseBody *string   `json:"response_body,omitempty"`
}
