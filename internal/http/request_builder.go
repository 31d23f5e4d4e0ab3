package http

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/brandonleon/carbsmart/internal/domain/dto"
	"github.com/brandonleon/carbsmart/internal/i18n"
	"github.com/brandonleon/carbsmart/internal/middleware"
	"github.com/brandonleon/carbsmart/internal/service"
)

// Response DTO pools for reducing allocations.
var (
	successResponsePool = sync.Pool{
		New: func() interface{} {
			return &dto.SuccessResponse{}
		},
	}

	errorResponsePool = sync.Pool{
		New: func() interface{} {
			return &dto.ErrorResponse{}
		},
	}
)

func getSuccessResponse() *dto.SuccessResponse {
	if resp, ok := successResponsePool.Get().(*dto.SuccessResponse); ok {
		return resp
	}
	return &dto.SuccessResponse{}
}

func putSuccessResponse(resp *dto.SuccessResponse) {
	resp.Data = nil
	resp.RequestID = ""
	resp.Timestamp = time.Time{}
	successResponsePool.Put(resp)
}

func getErrorResponse() *dto.ErrorResponse {
	if resp, ok := errorResponsePool.Get().(*dto.ErrorResponse); ok {
		return resp
	}
	return &dto.ErrorResponse{}
}

func putErrorResponse(resp *dto.ErrorResponse) {
	resp.Error = ""
	resp.Message = ""
	resp.RequestID = ""
	resp.Timestamp = time.Time{}
	resp.Details = nil
	resp.TraceID = ""
	errorResponsePool.Put(resp)
}

// Validator is implemented by request DTOs with rules binding tags cannot express.
type Validator interface {
	Validate() error
}

// BuildRequestAndValidate binds the JSON body into T and runs its Validate
// method when it has one.
func BuildRequestAndValidate[T any](c *gin.Context) (*T, error) {
	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, err
	}
	if v, ok := any(&req).(Validator); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}
	return &req, nil
}

// ResponseBuilder writes the JSON envelope. Uses sync.Pool for DTO reuse.
type ResponseBuilder struct {
	c *gin.Context
}

// NewResponseBuilder creates a new response builder for the given context.
func NewResponseBuilder(c *gin.Context) *ResponseBuilder {
	return &ResponseBuilder{c: c}
}

// Success sends data wrapped in the success envelope.
func (b *ResponseBuilder) Success(statusCode int, data interface{}) {
	resp := getSuccessResponse()
	resp.Data = data
	resp.RequestID = middleware.GetRequestID(b.c)
	resp.Timestamp = time.Now()

	// gin serialises synchronously, so the response can go back to the pool.
	b.c.JSON(statusCode, resp)
	putSuccessResponse(resp)
}

// SuccessOK sends a 200 OK response with the given data.
func (b *ResponseBuilder) SuccessOK(data interface{}) {
	b.Success(http.StatusOK, data)
}

// SuccessCreated sends a 201 Created response with the given data.
func (b *ResponseBuilder) SuccessCreated(data interface{}) {
	b.Success(http.StatusCreated, data)
}

// NoContent sends 204 without a body.
func (b *ResponseBuilder) NoContent() {
	b.c.Status(http.StatusNoContent)
	b.c.Writer.WriteHeaderNow()
}

// Error sends an error response whose message is messageKey translated to
// the request locale.
func (b *ResponseBuilder) Error(statusCode int, messageKey string, err error) {
	message := i18n.GetTranslator().Translate(messageKey, i18n.GetLocale(b.c))
	b.ErrorWithMessage(statusCode, message, err)
}

// ErrorWithMessage sends an error response with a custom message.
func (b *ResponseBuilder) ErrorWithMessage(statusCode int, message string, err error) {
	b.errorWithDetails(statusCode, message, nil, err)
}

func (b *ResponseBuilder) errorWithDetails(statusCode int, message string, details map[string]string, err error) {
	resp := getErrorResponse()
	resp.Error = dto.ErrCodeFromStatus(statusCode)
	resp.Message = message
	resp.Details = details
	resp.RequestID = middleware.GetRequestID(b.c)
	resp.Timestamp = time.Now()

	// Attached for the error handler middleware to log.
	if err != nil {
		_ = b.c.Error(err)
	}

	b.c.AbortWithStatusJSON(statusCode, resp)
	putErrorResponse(resp)
}

// BindError answers a request whose body could not be decoded or failed
// DTO validation. Field errors are reported in details.
func (b *ResponseBuilder) BindError(err error) {
	var ve *dto.ValidationError
	if errors.As(err, &ve) {
		message := i18n.GetTranslator().Translate(i18n.ErrKeyInvalidRequest, i18n.GetLocale(b.c))
		b.errorWithDetails(http.StatusBadRequest, message, map[string]string{ve.Field: ve.Message}, err)
		return
	}
	b.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
}

// ServiceError maps an error returned by the service layer to its status
// and localized message.
func (b *ResponseBuilder) ServiceError(err error) {
	status, key := classifyServiceError(err)
	if key == i18n.ErrKeyInvalidInput {
		if reason := service.InputReason(err); reason != "" {
			b.ErrorWithMessage(status, reason, err)
			return
		}
	}
	b.Error(status, key, err)
}

// classifyServiceError is shared by the JSON API and the HTML pages.
func classifyServiceError(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusUnprocessableEntity, reasonKey(service.InputReason(err))
	case errors.Is(err, service.ErrPanNotFound):
		return http.StatusNotFound, i18n.ErrKeyPanNotFound
	case errors.Is(err, service.ErrPanExists):
		return http.StatusConflict, i18n.ErrKeyPanExists
	case errors.Is(err, service.ErrStoreUnavailable),
		errors.Is(err, service.ErrLogStoreUnavailable),
		errors.Is(err, service.ErrRepositoryNotConfigured):
		return http.StatusServiceUnavailable, i18n.ErrKeyServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, i18n.ErrKeyTimeout
	default:
		return http.StatusInternalServerError, i18n.ErrKeyInternalError
	}
}

var reasonKeys = map[string]string{
	service.ReasonNetWeightPositive:   i18n.ErrKeyNetWeightPositive,
	service.ReasonTargetRangePositive: i18n.ErrKeyTargetRangePositive,
	service.ReasonTargetMinAboveMax:   i18n.ErrKeyTargetMinAboveMax,
	service.ReasonTotalNotAboveTare:   i18n.ErrKeyTotalNotAboveTare,
	service.ReasonTargetRangeTooSmall: i18n.ErrKeyTargetRangeTooSmall,
	service.ReasonTotalWeightPositive: i18n.ErrKeyTotalWeightPositive,
	service.ReasonTareWeightPositive:  i18n.ErrKeyTareWeightPositive,
	service.ReasonCarbsNegative:       i18n.ErrKeyCarbsNegative,
}

// reasonKey finds the translation of a planner reason. Reasons without
// one (pan validation) map to ErrKeyInvalidInput.
func reasonKey(reason string) string {
	if key, ok := reasonKeys[reason]; ok {
		return key
	}
	return i18n.ErrKeyInvalidInput
}
