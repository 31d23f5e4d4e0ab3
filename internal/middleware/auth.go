package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/brandonleon/carbsmart/internal/domain/dto"
	"github.com/brandonleon/carbsmart/internal/i18n"
	"github.com/brandonleon/carbsmart/internal/service"
)

const (
	// APIKeyHeader is the HTTP header name for API key authentication.
	APIKeyHeader = "X-API-Key"
	// APIKeyQuery is the query parameter name for API key authentication.
	APIKeyQuery = "api_key"
)

// CredentialsConfig lists the accepted credentials.
type CredentialsConfig struct {
	// APIKeys maps each accepted key to the label recorded as principal.
	APIKeys map[string]string
	// Tokens validates bearer tokens; nil rejects every bearer token.
	Tokens service.TokenService
}

// Credentials identifies the caller from an API key (X-API-Key header or
// api_key query) or an HS256 bearer token and stores the principal in the
// context. Invalid credentials are rejected with 401; requests without any
// pass through anonymously so RequirePrincipal can decide per route.
func Credentials(cfg CredentialsConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key := apiKey(c); key != "" {
			label, ok := cfg.lookup(key)
			if !ok {
				unauthorized(c, i18n.ErrKeyInvalidAPIKey)
				return
			}
			c.Set(string(PrincipalKey), "api-key:"+label)
			c.Next()
			return
		}

		if header := c.GetHeader("Authorization"); header != "" {
			token, ok := bearer(header)
			if !ok || cfg.Tokens == nil {
				unauthorized(c, i18n.ErrKeyInvalidToken)
				return
			}
			claims, err := cfg.Tokens.Validate(token)
			if err != nil {
				unauthorized(c, i18n.ErrKeyInvalidToken)
				return
			}
			c.Set(string(PrincipalKey), "token:"+claims.Subject)
		}
		c.Next()
	}
}

// RequirePrincipal rejects anonymous requests.
func RequirePrincipal() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetPrincipal(c) == "" {
			unauthorized(c, i18n.ErrKeyCredentialsRequired)
			return
		}
		c.Next()
	}
}

// RequireAPIKey accepts only API keys. The token exchange uses it so a
// bearer token cannot mint another one.
func RequireAPIKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.HasPrefix(GetPrincipal(c), "api-key:") {
			unauthorized(c, i18n.ErrKeyAPIKeyRequired)
			return
		}
		c.Next()
	}
}

// lookup compares key against every configured key in constant time.
func (cfg CredentialsConfig) lookup(key string) (string, bool) {
	var label string
	found := 0
	for k, l := range cfg.APIKeys {
		if subtle.ConstantTimeCompare([]byte(k), []byte(key)) == 1 {
			label = l
			found = 1
		}
	}
	return label, found == 1
}

func apiKey(c *gin.Context) string {
	if key := c.GetHeader(APIKeyHeader); key != "" {
		return key
	}
	return c.Query(APIKeyQuery)
}

func bearer(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(c *gin.Context, key string) {
	c.Header("WWW-Authenticate", `Bearer realm="carbsmart"`)
	message := i18n.GetTranslator().Translate(key, i18n.GetLocale(c))
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewError(dto.ErrCodeUnauthorized, message).WithRequestID(GetRequestID(c)))
}
