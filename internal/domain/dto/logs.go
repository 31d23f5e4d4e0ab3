package dto

import (
	"time"

	"github.com/brandonleon/carbsmart/internal/domain/model"
)

// LogsQuery holds the query parameters of GET /api/logs.
type LogsQuery struct {
	RequestID  string    `form:"request_id"`
	Level      string    `form:"level" binding:"omitempty,oneof=info warn error"`
	ActionType string    `form:"action_type" binding:"omitempty,oneof=create_pan update_pan delete_pan plan"`
	PanID      int64     `form:"pan_id" binding:"omitempty,gt=0"`
	Since      time.Time `form:"since" time_format:"2006-01-02T15:04:05Z07:00"`
	Until      time.Time `form:"until" time_format:"2006-01-02T15:04:05Z07:00"`
	Limit      int       `form:"limit" binding:"omitempty,min=1,max=500"`
	Skip       int       `form:"skip" binding:"omitempty,min=0"`
}

// Validate checks the time window.
func (q *LogsQuery) Validate() error {
	if !q.Since.IsZero() && !q.Until.IsZero() && q.Until.Before(q.Since) {
		return &ValidationError{Field: "until", Message: "must not be before since"}
	}
	return nil
}

// ToOptions converts the query into repository filters, applying the
// default page size.
func (q *LogsQuery) ToOptions() model.LogQueryOptions {
	opts := model.LogQueryOptions{
		RequestID:  q.RequestID,
		Level:      q.Level,
		ActionType: q.ActionType,
		PanID:      q.PanID,
		Limit:      q.Limit,
		Skip:       q.Skip,
	}
	if opts.Limit <= 0 {
		opts.Limit = model.DefaultLogQueryLimit
	}
	if opts.Limit > model.MaxLogQueryLimit {
		opts.Limit = model.MaxLogQueryLimit
	}
	if !q.Since.IsZero() {
		since := q.Since.UTC()
		opts.StartTime = &since
	}
	if !q.Until.IsZero() {
		until := q.Until.UTC()
		opts.EndTime = &until
	}
	return opts
}

// LogsResponse is one page of stored log entries.
//
// @Description Page of request and audit log entries, newest first
type LogsResponse struct {
	Logs  []model.LogEntry `json:"logs"`
	Total int64            `json:"total" example:"42"`
	Limit int              `json:"limit" example:"50"`
	Skip  int              `json:"skip" example:"0"`
} // @name LogsResponse
