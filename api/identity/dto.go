// Package identity handles admin sign in and guards protected routes.
package identity

// AuthRequest is the body of a sign in request.
type AuthRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries the issued access token.
type AuthResponse struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}
