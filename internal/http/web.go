package http

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/brandonleon/carbsmart/internal/domain/dto"
	"github.com/brandonleon/carbsmart/internal/domain/model"
	"github.com/brandonleon/carbsmart/internal/i18n"
	"github.com/brandonleon/carbsmart/internal/middleware"
	"github.com/brandonleon/carbsmart/internal/service"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// parseTemplates loads the HTML pages for gin's renderer.
func parseTemplates() *template.Template {
	funcs := template.FuncMap{
		"fixed0": func(v float64) string { return strconv.FormatFloat(v, 'f', 0, 64) },
		"fixed1": func(v float64) string { return strconv.FormatFloat(v, 'f', 1, 64) },
		"fixed2": func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) },
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
	}
	return template.Must(template.New("pages").Funcs(funcs).ParseFS(templatesFS, "templates/*.tmpl"))
}

type pageStatus struct {
	Error  string
	Notice string
}

type pansPage struct {
	pageStatus
	Pans     []model.Pan
	ReadOnly bool
}

type panEditPage struct {
	pageStatus
	Pan model.Pan
}

// calcFormValues echoes the submitted fields back into the form.
type calcFormValues struct {
	PanID            string
	TotalWeightGrams string
	TotalCarbs       string
	TargetMinGrams   string
	TargetMaxGrams   string
}

type calcPage struct {
	pageStatus
	Pans   []model.Pan
	Form   calcFormValues
	Result *model.Plan
}

type errorPage struct {
	pageStatus
	Title string
}

// WebHandler serves the HTML pan library and serving calculator.
type WebHandler struct {
	*Handler
	readOnly bool
}

// NewWebHandler creates the page handler. A read-only handler renders the
// pan library without the add and edit forms.
func NewWebHandler(h *Handler, readOnly bool) *WebHandler {
	return &WebHandler{Handler: h, readOnly: readOnly}
}

func (w *WebHandler) message(c *gin.Context, key string) string {
	return i18n.GetTranslator().Translate(key, i18n.GetLocale(c))
}

// errorMessage localizes a service error for display on a page.
func (w *WebHandler) errorMessage(c *gin.Context, err error) (int, string) {
	status, key := classifyServiceError(err)
	if key == i18n.ErrKeyInvalidInput {
		if reason := service.InputReason(err); reason != "" {
			return status, reason
		}
	}
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	return status, w.message(c, key)
}

func (w *WebHandler) renderError(c *gin.Context, status int, message string) {
	c.HTML(status, "error", errorPage{
		pageStatus: pageStatus{Error: message},
		Title:      http.StatusText(status),
	})
}

func (w *WebHandler) renderServiceError(c *gin.Context, err error) {
	status, message := w.errorMessage(c, err)
	w.renderError(c, status, message)
}

// Index redirects to the calculator once a pan exists, else to the library.
func (w *WebHandler) Index(c *gin.Context) {
	n, err := w.pans.Count(c.Request.Context())
	if err != nil {
		w.renderServiceError(c, err)
		return
	}
	target := "/pans"
	if n > 0 {
		target = "/calc"
	}
	c.Redirect(http.StatusSeeOther, target)
}

// PansPage renders the pan library. ?created=1 and ?updated=1 show a notice.
func (w *WebHandler) PansPage(c *gin.Context) {
	page := pansPage{ReadOnly: w.readOnly}
	switch {
	case c.Query("created") != "":
		page.Notice = "Pan added."
	case c.Query("updated") != "":
		page.Notice = "Pan updated."
	}
	w.renderPans(c, http.StatusOK, page)
}

func (w *WebHandler) renderPans(c *gin.Context, status int, page pansPage) {
	pans, err := w.pans.List(c.Request.Context())
	if err != nil {
		w.renderServiceError(c, err)
		return
	}
	page.Pans = pans
	page.ReadOnly = w.readOnly
	c.HTML(status, "pans", page)
}

// CreatePanForm handles the add pan form.
func (w *WebHandler) CreatePanForm(c *gin.Context) {
	var req dto.PanCreateRequest
	if err := w.bindPanForm(c, &req); err != nil {
		w.renderPans(c, http.StatusBadRequest, pansPage{pageStatus: pageStatus{Error: err.Error()}})
		return
	}

	pan, err := w.pans.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		status, message := w.errorMessage(c, err)
		w.renderPans(c, status, pansPage{pageStatus: pageStatus{Error: message}})
		return
	}

	middleware.AuditLog(w.audit, c, model.ActionCreatePan, "Pan created", pan.ID, nil)
	c.Redirect(http.StatusSeeOther, "/pans?created=1")
}

// EditPanPage renders the edit form of one pan.
func (w *WebHandler) EditPanPage(c *gin.Context) {
	pan, ok := w.loadPan(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "pan_edit", panEditPage{Pan: *pan})
}

// UpdatePanForm handles the edit form. Every field is replaced; empty
// capacity and notes clear the stored values.
func (w *WebHandler) UpdatePanForm(c *gin.Context) {
	current, ok := w.loadPan(c)
	if !ok {
		return
	}

	var req dto.PanCreateRequest
	if err := w.bindPanForm(c, &req); err != nil {
		c.HTML(http.StatusBadRequest, "pan_edit", panEditPage{pageStatus: pageStatus{Error: err.Error()}, Pan: *current})
		return
	}

	in := req.ToInput()
	patch := model.PanPatch{
		Name:          &in.Name,
		WeightGrams:   &in.WeightGrams,
		CapacityLabel: &in.CapacityLabel,
		Notes:         in.Notes,
		ClearNotes:    in.Notes == nil,
	}
	pan, err := w.pans.Update(c.Request.Context(), current.ID, patch)
	if err != nil {
		status, message := w.errorMessage(c, err)
		if status == http.StatusNotFound {
			w.renderError(c, status, message)
			return
		}
		w.renderPans(c, status, pansPage{pageStatus: pageStatus{Error: message}})
		return
	}

	middleware.AuditLog(w.audit, c, model.ActionUpdatePan, "Pan updated", pan.ID, nil)
	c.Redirect(http.StatusSeeOther, "/pans?updated=1")
}

// CalcPage renders the empty calculator.
func (w *WebHandler) CalcPage(c *gin.Context) {
	w.renderCalc(c, http.StatusOK, calcPage{Form: calcFormValues{
		TargetMinGrams: strconv.FormatFloat(w.defaultMin, 'f', -1, 64),
		TargetMaxGrams: strconv.FormatFloat(w.defaultMax, 'f', -1, 64),
	}})
}

// CalcForm handles the calculator form.
func (w *WebHandler) CalcForm(c *gin.Context) {
	page := calcPage{Form: calcFormValues{
		PanID:            c.PostForm("pan_id"),
		TotalWeightGrams: c.PostForm("total_weight_grams"),
		TotalCarbs:       c.PostForm("total_carbs"),
		TargetMinGrams:   c.DefaultPostForm("target_min_grams", strconv.FormatFloat(w.defaultMin, 'f', -1, 64)),
		TargetMaxGrams:   c.DefaultPostForm("target_max_grams", strconv.FormatFloat(w.defaultMax, 'f', -1, 64)),
	}}

	var req dto.CalcRequest
	if err := c.ShouldBind(&req); err != nil {
		page.Error = w.message(c, i18n.ErrKeyInvalidRequest)
		_ = c.Error(err)
		w.renderCalc(c, http.StatusBadRequest, page)
		return
	}

	minG, maxG := req.Targets(w.defaultMin, w.defaultMax)
	plan, pan, err := w.plans.PlanForPan(c.Request.Context(), service.PanPlanRequest{
		PanID:            req.PanID,
		GrossWeightGrams: req.TotalWeightGrams,
		TotalCarbs:       *req.TotalCarbs,
		TargetMinGrams:   minG,
		TargetMaxGrams:   maxG,
	})
	if err != nil {
		status, message := w.errorMessage(c, err)
		if errors.Is(err, service.ErrPanNotFound) {
			w.renderError(c, status, message)
			return
		}
		page.Error = message
		w.renderCalc(c, status, page)
		return
	}

	middleware.AuditLog(w.audit, c, model.ActionPlan, "Serving plan computed", pan.ID, map[string]interface{}{
		"servings": plan.Servings,
	})
	page.Result = &plan
	w.renderCalc(c, http.StatusOK, page)
}

func (w *WebHandler) renderCalc(c *gin.Context, status int, page calcPage) {
	pans, err := w.pans.List(c.Request.Context())
	if err != nil {
		w.renderServiceError(c, err)
		return
	}
	page.Pans = pans
	c.HTML(status, "calc", page)
}

// bindPanForm binds and validates the pan form. Empty optional inputs
// are treated as absent.
func (w *WebHandler) bindPanForm(c *gin.Context, req *dto.PanCreateRequest) error {
	if err := c.ShouldBind(req); err != nil {
		_ = c.Error(err)
		return errors.New(w.message(c, i18n.ErrKeyInvalidRequest))
	}
	if req.Notes != nil && strings.TrimSpace(*req.Notes) == "" {
		req.Notes = nil
	}
	return req.Validate()
}

func (w *WebHandler) loadPan(c *gin.Context) (*model.Pan, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		w.renderError(c, http.StatusNotFound, w.message(c, i18n.ErrKeyPanNotFound))
		return nil, false
	}
	pan, err := w.pans.Get(c.Request.Context(), id)
	if err != nil {
		w.renderServiceError(c, err)
		return nil, false
	}
	return pan, true
}
