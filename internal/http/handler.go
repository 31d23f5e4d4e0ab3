// Package http exposes the carbsmart JSON API, the HTML pages and the
// infrastructure endpoints on a gin engine.
package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/brandonleon/carbsmart/internal/domain/dto"
	"github.com/brandonleon/carbsmart/internal/domain/model"
	"github.com/brandonleon/carbsmart/internal/i18n"
	"github.com/brandonleon/carbsmart/internal/middleware"
	"github.com/brandonleon/carbsmart/internal/service"
)

// Handler serves the pan and plan routes.
type Handler struct {
	pans       service.PanService
	plans      service.PlanService
	calculator service.PlanCalculator
	audit      middleware.LogSink
	defaultMin float64
	defaultMax float64
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithAuditSink queues audit entries for pan mutations and plans.
func WithAuditSink(sink middleware.LogSink) HandlerOption {
	return func(h *Handler) {
		h.audit = sink
	}
}

// WithDefaultTargets overrides the serving range used when a request omits it.
func WithDefaultTargets(minGrams, maxGrams float64) HandlerOption {
	return func(h *Handler) {
		if minGrams > 0 {
			h.defaultMin = minGrams
		}
		if maxGrams > 0 {
			h.defaultMax = maxGrams
		}
	}
}

// NewHandler creates a new Handler instance.
func NewHandler(pans service.PanService, plans service.PlanService, calculator service.PlanCalculator, opts ...HandlerOption) *Handler {
	h := &Handler{
		pans:       pans,
		plans:      plans,
		calculator: calculator,
		defaultMin: model.DefaultTargetMinGrams,
		defaultMax: model.DefaultTargetMaxGrams,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Calc handles POST /api/calc.
//
// @Summary      Plan servings for a registered pan
// @Description  Subtracts the pan's tare weight from the total weight and divides the dish into servings whose weight falls inside the target range, as close to its midpoint as possible.
// @Tags         Plans
// @Accept       json
// @Produce      json
// @Param        request body dto.CalcRequest true "Dish weights"
// @Success      200 {object} dto.SuccessResponse{data=dto.CalcResponse} "Serving plan"
// @Failure      400 {object} dto.ErrorResponse "Malformed request"
// @Failure      404 {object} dto.ErrorResponse "Pan not found"
// @Failure      422 {object} dto.ErrorResponse "Weights cannot be planned"
// @Failure      429 {object} dto.ErrorResponse "Too many requests"
// @Failure      503 {object} dto.ErrorResponse "Pan store unavailable"
// @Router       /api/calc [post]
func (h *Handler) Calc(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.CalcRequest](c)
	if err != nil {
		builder.BindError(err)
		return
	}

	minG, maxG := req.Targets(h.defaultMin, h.defaultMax)
	plan, pan, err := h.plans.PlanForPan(c.Request.Context(), service.PanPlanRequest{
		PanID:            req.PanID,
		GrossWeightGrams: req.TotalWeightGrams,
		TotalCarbs:       *req.TotalCarbs,
		TargetMinGrams:   minG,
		TargetMaxGrams:   maxG,
	})
	if err != nil {
		builder.ServiceError(err)
		return
	}

	middleware.AuditLog(h.audit, c, model.ActionPlan, "Serving plan computed", pan.ID, map[string]interface{}{
		"servings":         plan.Servings,
		"net_weight_grams": plan.NetWeightGrams,
	})
	builder.SuccessOK(dto.CalcResponse{Plan: plan, Pan: pan})
}

// ServingPlan handles POST /api/serving-plan.
//
// @Summary      Plan servings from raw weights
// @Description  Same as /api/calc but the tare weight is given directly instead of through a registered pan.
// @Tags         Plans
// @Accept       json
// @Produce      json
// @Param        request body dto.ServingPlanRequest true "Dish weights"
// @Success      200 {object} dto.SuccessResponse{data=model.Plan} "Serving plan"
// @Failure      400 {object} dto.ErrorResponse "Malformed request"
// @Failure      422 {object} dto.ErrorResponse "Weights cannot be planned"
// @Failure      429 {object} dto.ErrorResponse "Too many requests"
// @Router       /api/serving-plan [post]
func (h *Handler) ServingPlan(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.ServingPlanRequest](c)
	if err != nil {
		builder.BindError(err)
		return
	}

	plan, err := h.calculator.Calculate(c.Request.Context(), req.ToInput(h.defaultMin, h.defaultMax))
	if err != nil {
		builder.ServiceError(err)
		return
	}

	middleware.AuditLog(h.audit, c, model.ActionPlan, "Serving plan computed", 0, map[string]interface{}{
		"servings": plan.Servings,
	})
	builder.SuccessOK(plan)
}

// panID parses the :id path parameter. It writes a 400 response and
// returns false when the id is not a positive integer.
func panID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		NewResponseBuilder(c).Error(http.StatusBadRequest, i18n.ErrKeyInvalidPanID, nil)
		return 0, false
	}
	return id, true
}
