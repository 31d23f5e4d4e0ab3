package i18n

// Error message translation keys.
const (
	ErrKeyInvalidRequest     = "error.invalid_request"
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	ErrKeyInternalError      = "error.internal_error"
	ErrKeyUnauthorized       = "error.unauthorized"
	// ErrKeyCredentialsRequired indicates neither an API key nor a bearer token was sent.
	ErrKeyCredentialsRequired = "error.credentials_required"
	ErrKeyAPIKeyRequired      = "error.api_key_required"
	ErrKeyInvalidAPIKey       = "error.invalid_api_key"
	ErrKeyInvalidToken        = "error.invalid_token"
	ErrKeyForbidden           = "error.forbidden"
	ErrKeyNotFound            = "error.not_found"
	ErrKeyRateLimitExceeded   = "error.rate_limit_exceeded"
	ErrKeyConflict            = "error.conflict"
	ErrKeyTimeout             = "error.timeout"
	ErrKeyServiceUnavailable  = "error.service_unavailable"

	ErrKeyInvalidPanID = "error.invalid_pan_id"
	ErrKeyPanNotFound  = "error.pan_not_found"
	ErrKeyPanExists    = "error.pan_exists"
	ErrKeyInvalidInput = "error.invalid_input"
)

// Planner validation keys, one per invalid-input reason.
const (
	ErrKeyNetWeightPositive   = "error.plan.net_weight_positive"
	ErrKeyTargetRangePositive = "error.plan.target_range_positive"
	ErrKeyTargetMinAboveMax   = "error.plan.target_min_above_max"
	ErrKeyTotalNotAboveTare   = "error.plan.total_not_above_tare"
	ErrKeyTargetRangeTooSmall = "error.plan.target_range_too_small"
	ErrKeyTotalWeightPositive = "error.plan.total_weight_positive"
	ErrKeyTareWeightPositive  = "error.plan.tare_weight_positive"
	ErrKeyCarbsNegative       = "error.plan.carbs_negative"
)
