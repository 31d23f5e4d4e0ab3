package dto

// TokenResponse carries a freshly minted bearer token.
//
// @Description Bearer token issued in exchange for an API key
// @Example {"access_token": "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9...", "token_type": "Bearer", "expires_in": 86400}
type TokenResponse struct {
	AccessToken string `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	TokenType   string `json:"token_type" example:"Bearer"`
	// ExpiresIn is the token lifetime in seconds
	ExpiresIn int64 `json:"expires_in" example:"86400"`
} // @name TokenResponse

// Claims is the verified content of a bearer token.
type Claims struct {
	Subject string `json:"sub"`
}
