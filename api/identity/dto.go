package identity

// AuthRequest is the body of the register and login endpoints.
type AuthRequest struct {
	Name   string `json:"name" binding:"required"`
	Secret string `json:"secret" binding:"required"`
}

// AuthResponse is returned on a successful login.
type AuthResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Quota int    `json:"quota"`
	Token string `json:"token"`
}
