package http

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/brandonleon/carbsmart/internal/domain/dto"
	"github.com/brandonleon/carbsmart/internal/domain/model"
	"github.com/brandonleon/carbsmart/internal/middleware"
)

// ListPans handles GET /api/pans.
//
// @Summary      List pans
// @Description  Returns every registered pan ordered by name.
// @Tags         Pans
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=[]model.Pan} "Pans"
// @Failure      503 {object} dto.ErrorResponse "Pan store unavailable"
// @Router       /api/pans [get]
func (h *Handler) ListPans(c *gin.Context) {
	builder := NewResponseBuilder(c)

	pans, err := h.pans.List(c.Request.Context())
	if err != nil {
		builder.ServiceError(err)
		return
	}
	if pans == nil {
		pans = []model.Pan{}
	}
	builder.SuccessOK(pans)
}

// GetPan handles GET /api/pans/{id}.
//
// @Summary      Get a pan
// @Tags         Pans
// @Produce      json
// @Param        id path int true "Pan id"
// @Success      200 {object} dto.SuccessResponse{data=model.Pan} "Pan"
// @Failure      400 {object} dto.ErrorResponse "Invalid id"
// @Failure      404 {object} dto.ErrorResponse "Pan not found"
// @Router       /api/pans/{id} [get]
func (h *Handler) GetPan(c *gin.Context) {
	id, ok := panID(c)
	if !ok {
		return
	}
	builder := NewResponseBuilder(c)

	pan, err := h.pans.Get(c.Request.Context(), id)
	if err != nil {
		builder.ServiceError(err)
		return
	}
	builder.SuccessOK(pan)
}

// CreatePan handles POST /api/pans.
//
// @Summary      Register a pan
// @Description  Name and capacity label together must be unique. Supports idempotency via the Idempotency-Key header.
// @Tags         Pans
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        request body dto.PanCreateRequest true "Pan"
// @Success      201 {object} dto.SuccessResponse{data=model.Pan} "Created pan"
// @Failure      400 {object} dto.ErrorResponse "Malformed request"
// @Failure      401 {object} dto.ErrorResponse "Credentials required"
// @Failure      409 {object} dto.ErrorResponse "Name and capacity already exist"
// @Failure      503 {object} dto.ErrorResponse "Pan store unavailable"
// @Security     ApiKeyAuth
// @Security     BearerAuth
// @Router       /api/pans [post]
func (h *Handler) CreatePan(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.PanCreateRequest](c)
	if err != nil {
		builder.BindError(err)
		return
	}

	pan, err := h.pans.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		middleware.AuditLogError(h.audit, c, model.ActionCreatePan, "Pan creation failed", 0, err, nil)
		builder.ServiceError(err)
		return
	}

	middleware.AuditLog(h.audit, c, model.ActionCreatePan, "Pan created", pan.ID, map[string]interface{}{
		"name":         pan.Name,
		"weight_grams": pan.WeightGrams,
	})
	c.Header("Location", "/api/pans/"+strconv.FormatInt(pan.ID, 10))
	builder.SuccessCreated(pan)
}

// UpdatePan handles PUT and PATCH /api/pans/{id}. Only fields present in
// the body change; capacity_label and notes may be set to null.
//
// @Summary      Update a pan
// @Tags         Pans
// @Accept       json
// @Produce      json
// @Param        id path int true "Pan id"
// @Param        request body dto.PanUpdateRequest true "Fields to change"
// @Success      200 {object} dto.SuccessResponse{data=model.Pan} "Updated pan"
// @Failure      400 {object} dto.ErrorResponse "Malformed request"
// @Failure      401 {object} dto.ErrorResponse "Credentials required"
// @Failure      404 {object} dto.ErrorResponse "Pan not found"
// @Failure      409 {object} dto.ErrorResponse "Name and capacity already exist"
// @Security     ApiKeyAuth
// @Security     BearerAuth
// @Router       /api/pans/{id} [put]
// @Router       /api/pans/{id} [patch]
func (h *Handler) UpdatePan(c *gin.Context) {
	id, ok := panID(c)
	if !ok {
		return
	}
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.PanUpdateRequest](c)
	if err != nil {
		builder.BindError(err)
		return
	}

	pan, err := h.pans.Update(c.Request.Context(), id, req.ToPatch())
	if err != nil {
		middleware.AuditLogError(h.audit, c, model.ActionUpdatePan, "Pan update failed", id, err, nil)
		builder.ServiceError(err)
		return
	}

	middleware.AuditLog(h.audit, c, model.ActionUpdatePan, "Pan updated", pan.ID, map[string]interface{}{
		"weight_grams": pan.WeightGrams,
	})
	builder.SuccessOK(pan)
}

// DeletePan handles DELETE /api/pans/{id}.
//
// @Summary      Delete a pan
// @Tags         Pans
// @Param        id path int true "Pan id"
// @Success      204 "Deleted"
// @Failure      401 {object} dto.ErrorResponse "Credentials required"
// @Failure      404 {object} dto.ErrorResponse "Pan not found"
// @Security     ApiKeyAuth
// @Security     BearerAuth
// @Router       /api/pans/{id} [delete]
func (h *Handler) DeletePan(c *gin.Context) {
	id, ok := panID(c)
	if !ok {
		return
	}
	builder := NewResponseBuilder(c)

	if err := h.pans.Delete(c.Request.Context(), id); err != nil {
		middleware.AuditLogError(h.audit, c, model.ActionDeletePan, "Pan deletion failed", id, err, nil)
		builder.ServiceError(err)
		return
	}

	middleware.AuditLog(h.audit, c, model.ActionDeletePan, "Pan deleted", id, nil)
	builder.NoContent()
}
