package models

// TokenRequest is the body of an admin token request
type TokenRequest struct {
	Password string `json:"password" binding:"required,nospaces"`
}

// TokenResponse carries an issued admin access token
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in" example:"86400"`
}
