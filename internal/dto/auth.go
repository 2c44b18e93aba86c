package dto

// LoginRequest defines the login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns the issued bearer token.
type LoginResponse struct {
	Token     string `json:"token"`
	UserID    string `json:"userID"`
	CompanyID string `json:"companyID"`
	Name      string `json:"name"`
}
