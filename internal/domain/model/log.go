package model

import (
	"time"
)

// Action types recorded in audit entries.
const (
	ActionCreatePan = "create_pan"
	ActionUpdatePan = "update_pan"
	ActionDeletePan = "delete_pan"
	ActionPlan      = "plan"
)

// LogEntry is a request or audit record kept in the log store.
// Context-specific data goes into Fields.
type LogEntry struct {
	ID         string                 `json:"id,omitempty"`
	Timestamp  time.Time              `json:"timestamp"`
	Level      string                 `json:"level"`
	Message    string                 `json:"message"`
	RequestID  string                 `json:"request_id,omitempty"`
	Method     string                 `json:"method,omitempty"`
	Path       string                 `json:"path,omitempty"`
	StatusCode int                    `json:"status_code,omitempty"`
	Duration   int64                  `json:"duration_ms,omitempty"`
	IP         string                 `json:"ip,omitempty"`
	UserAgent  string                 `json:"user_agent,omitempty"`
	Error      string                 `json:"error,omitempty"`
	Principal  string                 `json:"principal,omitempty"` // API key label or token subject
	ActionType string                 `json:"action_type,omitempty"`
	PanID      int64                  `json:"pan_id,omitempty"`
	Fields     map[string]interface{} `json:"fields,omitempty"`
}

// WithField adds a field to the log entry's Fields map.
func (e *LogEntry) WithField(key string, value interface{}) *LogEntry {
	if e.Fields == nil {
		e.Fields = make(map[string]interface{})
	}
	e.Fields[key] = value
	return e
}

// WithFields merges fields into the entry's Fields map.
func (e *LogEntry) WithFields(fields map[string]interface{}) *LogEntry {
	if e.Fields == nil {
		e.Fields = make(map[string]interface{})
	}
	for k, v := range fields {
		e.Fields[k] = v
	}
	return e
}

// Page sizes for log queries.
const (
	DefaultLogQueryLimit = 50
	MaxLogQueryLimit     = 500
)

// LogQueryOptions filters log queries. Zero values are ignored.
type LogQueryOptions struct {
	RequestID  string
	Level      string
	Method     string
	Path       string
	ActionType string
	PanID      int64
	StartTime  *time.Time
	EndTime    *time.Time
	Limit      int
	Skip       int
}
