package http

import (
	"github.com/gin-gonic/gin"

	"github.com/brandonleon/carbsmart/internal/domain/dto"
	"github.com/brandonleon/carbsmart/internal/domain/model"
	"github.com/brandonleon/carbsmart/internal/service"
)

// LogsHandler serves the stored request and audit log.
type LogsHandler struct {
	logs service.LogReader
}

// NewLogsHandler creates a LogsHandler.
func NewLogsHandler(logs service.LogReader) *LogsHandler {
	return &LogsHandler{logs: logs}
}

// List handles GET /api/logs.
//
// @Summary      Query the audit log
// @Description  Returns request and audit entries, newest first. Requires credentials when authentication is enabled.
// @Tags         Logs
// @Produce      json
// @Param        request_id  query string false "Request id"
// @Param        level       query string false "Level" Enums(info, warn, error)
// @Param        action_type query string false "Audit action" Enums(create_pan, update_pan, delete_pan, plan)
// @Param        pan_id      query int    false "Pan id"
// @Param        since       query string false "RFC 3339 lower bound"
// @Param        until       query string false "RFC 3339 upper bound"
// @Param        limit       query int    false "Page size (default 50, max 500)"
// @Param        skip        query int    false "Entries to skip"
// @Success      200 {object} dto.SuccessResponse{data=dto.LogsResponse} "Log page"
// @Failure      400 {object} dto.ErrorResponse "Invalid filter"
// @Failure      401 {object} dto.ErrorResponse "Missing credentials"
// @Failure      503 {object} dto.ErrorResponse "Log store unavailable"
// @Security     ApiKeyAuth
// @Security     BearerAuth
// @Router       /api/logs [get]
func (h *LogsHandler) List(c *gin.Context) {
	builder := NewResponseBuilder(c)

	var q dto.LogsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		builder.BindError(err)
		return
	}
	if err := q.Validate(); err != nil {
		builder.BindError(err)
		return
	}

	ctx := c.Request.Context()
	opts := q.ToOptions()

	entries, err := h.logs.QueryLogs(ctx, opts)
	if err != nil {
		builder.ServiceError(err)
		return
	}
	total, err := h.logs.CountLogs(ctx, opts)
	if err != nil {
		builder.ServiceError(err)
		return
	}
	if entries == nil {
		entries = []model.LogEntry{}
	}

	builder.SuccessOK(dto.LogsResponse{
		Logs:  entries,
		Total: total,
		Limit: opts.Limit,
		Skip:  opts.Skip,
	})
}
