package domain

// GoogleUserInfo is the verified identity asserted by Google's userinfo
// endpoint / ID token payload.
type GoogleUserInfo struct {
	ID            string `json:"id"` // stable subject id
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}
