package response

// SignupResponse echoes the registered identity, the confirmation code
// travels by mail only
type SignupResponse struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

type TokenResponse struct {
	Token string `json:"token"`
}
