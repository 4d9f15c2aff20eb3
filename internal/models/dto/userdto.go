package dto

// SignUpRequestDTO is the body of POST /api/1.0/users. The password repeat
// never leaves the form.
type SignUpRequestDTO struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUpFailureResponseDTO is the optional body of a rejected sign-up.
type SignUpFailureResponseDTO struct {
	ValidationErrors map[string]string `json:"validationErrors" mapstructure:"validationErrors"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type RateLimitResponse struct {
	Message string `json:"message"`
}
