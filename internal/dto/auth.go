package dto

// ── auth requests ──

// RegisterRequest creates an account plus its student or lecturer
// profile. StudentCode is required for student accounts.
type RegisterRequest struct {
	Name        string `json:"name"         binding:"required,min=2,max=100"`
	Email       string `json:"email"        binding:"required,email"`
	Password    string `json:"password"     binding:"required,min=8,max=64"`
	Role        string `json:"role"         binding:"required,oneof=student lecturer"`
	StudentCode string `json:"student_code" binding:"required_if=Role student"`
}

// LoginRequest authenticates by email.
type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ── auth responses ──

// TokenResponse is the token pair returned on login.
type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"` // access token TTL, seconds
	User         UserResponse `json:"user"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	StudentCode string `json:"student_code,omitempty"`
}
