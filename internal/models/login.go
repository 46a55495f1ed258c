package models

// AdminLoginRequest represents the JSON body for administrator login
// swagger:model AdminLoginRequest
type AdminLoginRequest struct {
	// Administrator password
	// required: true
	// example: secret123
	Password string `json:"password"`
}

// AdminLoginResponse represents a successful login response
// swagger:model AdminLoginResponse
type AdminLoginResponse struct {
	// JWT token
	// example: JWT_TOKEN
	Token string `json:"token"`
}

// AdminLoginErrorResponse represents an error response for login
// swagger:model AdminLoginErrorResponse
type AdminLoginErrorResponse struct {
	// Error message
	// example: Invalid password
	Error string `json:"error"`
}
