package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/brandonleon/carbsmart/internal/domain/model"
	"github.com/brandonleon/carbsmart/internal/logger"
)

// AuditLog records a pan mutation or plan computation. The entry is always
// written to the process log and, when sink is not nil, queued for the log
// store. panID 0 means no pan is involved.
func AuditLog(sink LogSink, c *gin.Context, actionType, message string, panID int64, fields map[string]interface{}) {
	entry := auditEntry(c, "info", actionType, message, panID, fields)

	log := logger.Logger()
	log.Info().
		Str("request_id", entry.RequestID).
		Str("principal", entry.Principal).
		Str("action_type", actionType).
		Int64("pan_id", panID).
		Fields(fields).
		Msg(message)

	if sink != nil {
		sink.Log(entry)
	}
}

// AuditLogError records a failed action.
func AuditLogError(sink LogSink, c *gin.Context, actionType, message string, panID int64, err error, fields map[string]interface{}) {
	entry := auditEntry(c, "error", actionType, message, panID, fields)
	if err != nil {
		entry.Error = err.Error()
	}

	log := logger.Logger()
	log.Warn().
		Err(err).
		Str("request_id", entry.RequestID).
		Str("principal", entry.Principal).
		Str("action_type", actionType).
		Int64("pan_id", panID).
		Msg(message)

	if sink != nil {
		sink.Log(entry)
	}
}

func auditEntry(c *gin.Context, level, actionType, message string, panID int64, fields map[string]interface{}) *model.LogEntry {
	entry := &model.LogEntry{
		Timestamp:  time.Now().UTC(),
		Level:      level,
		Message:    message,
		RequestID:  GetRequestID(c),
		Method:     c.Request.Method,
		Path:       c.Request.URL.Path,
		IP:         c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
		Principal:  GetPrincipal(c),
		ActionType: actionType,
		PanID:      panID,
	}
	if len(fields) > 0 {
		entry.WithFields(fields)
	}
	return entry
}
