// Package i18n translates user-facing API messages.
package i18n

import (
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultLocale is the default language locale (English).
	DefaultLocale = "en"
	// AcceptLanguageHeader is the HTTP header name for language preference.
	AcceptLanguageHeader = "Accept-Language"
)

var (
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator handles message translation for different locales.
type Translator struct {
	messages map[string]map[string]string
}

// NewTranslator creates a new translator with the default messages.
func NewTranslator() *Translator {
	return &Translator{messages: catalog}
}

// GetTranslator returns the default singleton translator instance.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Translate returns the message for key in locale, falling back to
// DefaultLocale and finally to the key itself.
func (t *Translator) Translate(key, locale string) string {
	if locale == "" {
		locale = DefaultLocale
	}
	if msg, ok := t.messages[locale][key]; ok {
		return msg
	}
	if msg, ok := t.messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Supports reports whether locale has a message catalog.
func (t *Translator) Supports(locale string) bool {
	_, ok := t.messages[locale]
	return ok
}

// GetLocale picks the first language of the Accept-Language header that
// has a catalog, e.g. "pt" for "pt-BR,pt;q=0.9,en;q=0.8".
func GetLocale(c *gin.Context) string {
	header := c.GetHeader(AcceptLanguageHeader)
	if header == "" {
		return DefaultLocale
	}

	t := GetTranslator()
	for _, part := range strings.Split(header, ",") {
		lang := strings.TrimSpace(strings.Split(part, ";")[0])
		if idx := strings.Index(lang, "-"); idx > 0 {
			lang = lang[:idx]
		}
		lang = strings.ToLower(lang)
		if t.Supports(lang) {
			return lang
		}
	}
	return DefaultLocale
}

var catalog = map[string]map[string]string{
	"en": {
		"error.invalid_request":       "Invalid request",
		"error.invalid_request_body":  "Invalid request body",
		"error.internal_error":        "An unexpected error occurred",
		"error.unauthorized":          "Unauthorized",
		"error.credentials_required":  "An API key or bearer token is required",
		"error.api_key_required":      "API key is required",
		"error.invalid_api_key":       "Invalid API key",
		"error.invalid_token":         "Invalid or expired token",
		"error.forbidden":             "Forbidden",
		"error.not_found":             "Not found",
		"error.rate_limit_exceeded":   "Too many requests, please try again later",
		"error.conflict":              "Conflict",
		"error.timeout":               "Request timed out",
		"error.service_unavailable":   "Pan store is temporarily unavailable",
		"error.invalid_pan_id":        "Pan id must be a positive integer",
		"error.pan_not_found":         "Pan not found",
		"error.pan_exists":            "Pan name and capacity already exists",
		"error.invalid_input":         "Invalid input",

		"error.plan.net_weight_positive":    "Net weight must be positive",
		"error.plan.target_range_positive":  "Target range must be positive",
		"error.plan.target_min_above_max":   "Target min must be <= target max",
		"error.plan.total_not_above_tare":   "Total weight must be greater than pan weight",
		"error.plan.target_range_too_small": "Target range too small for net weight",
		"error.plan.total_weight_positive":  "Total weight must be positive",
		"error.plan.tare_weight_positive":   "Pan weight must be positive",
		"error.plan.carbs_negative":         "Total carbs must not be negative",
	},
	"pt": {
		"error.invalid_request":       "Requisição inválida",
		"error.invalid_request_body":  "Corpo da requisição inválido",
		"error.internal_error":        "Ocorreu um erro inesperado",
		"error.unauthorized":          "Não autorizado",
		"error.credentials_required":  "Chave de API ou token é obrigatório",
		"error.api_key_required":      "Chave de API é obrigatória",
		"error.invalid_api_key":       "Chave de API inválida",
		"error.invalid_token":         "Token inválido ou expirado",
		"error.forbidden":             "Proibido",
		"error.not_found":             "Não encontrado",
		"error.rate_limit_exceeded":   "Muitas requisições, tente novamente mais tarde",
		"error.conflict":              "Conflito",
		"error.timeout":               "Tempo da requisição esgotado",
		"error.service_unavailable":   "Cadastro de panelas temporariamente indisponível",
		"error.invalid_pan_id":        "O id da panela deve ser um inteiro positivo",
		"error.pan_not_found":         "Panela não encontrada",
		"error.pan_exists":            "Já existe uma panela com esse nome e capacidade",
		"error.invalid_input":         "Entrada inválida",

		"error.plan.net_weight_positive":    "O peso líquido deve ser positivo",
		"error.plan.target_range_positive":  "A faixa alvo deve ser positiva",
		"error.plan.target_min_above_max":   "O mínimo alvo deve ser <= máximo alvo",
		"error.plan.total_not_above_tare":   "O peso total deve ser maior que o peso da panela",
		"error.plan.target_range_too_small": "Faixa alvo pequena demais para o peso líquido",
		"error.plan.total_weight_positive":  "O peso total deve ser positivo",
		"error.plan.tare_weight_positive":   "O peso da panela deve ser positivo",
		"error.plan.carbs_negative":         "O total de carboidratos não pode ser negativo",
	},
	"nl": {
		"error.invalid_request":       "Ongeldig verzoek",
		"error.invalid_request_body":  "Ongeldige aanvraag body",
		"error.internal_error":        "Er is een onverwachte fout opgetreden",
		"error.unauthorized":          "Niet geautoriseerd",
		"error.credentials_required":  "API-sleutel of token is vereist",
		"error.api_key_required":      "API-sleutel is vereist",
		"error.invalid_api_key":       "Ongeldige API-sleutel",
		"error.invalid_token":         "Ongeldig of verlopen token",
		"error.forbidden":             "Verboden",
		"error.not_found":             "Niet gevonden",
		"error.rate_limit_exceeded":   "Te veel verzoeken, probeer het later opnieuw",
		"error.conflict":              "Conflict",
		"error.timeout":               "Verzoek verlopen",
		"error.service_unavailable":   "Pannenopslag is tijdelijk niet beschikbaar",
		"error.invalid_pan_id":        "Pan-id moet een positief geheel getal zijn",
		"error.pan_not_found":         "Pan niet gevonden",
		"error.pan_exists":            "Pan met deze naam en inhoud bestaat al",
		"error.invalid_input":         "Ongeldige invoer",

		"error.plan.net_weight_positive":    "Nettogewicht moet positief zijn",
		"error.plan.target_range_positive":  "Doelbereik moet positief zijn",
		"error.plan.target_min_above_max":   "Doelminimum moet <= doelmaximum zijn",
		"error.plan.total_not_above_tare":   "Totaalgewicht moet groter zijn dan het pangewicht",
		"error.plan.target_range_too_small": "Doelbereik te klein voor nettogewicht",
		"error.plan.total_weight_positive":  "Totaalgewicht moet positief zijn",
		"error.plan.tare_weight_positive":   "Pangewicht moet positief zijn",
		"error.plan.carbs_negative":         "Totale koolhydraten mogen niet negatief zijn",
	},
}
