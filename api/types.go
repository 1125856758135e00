package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	healthHandler  healthHandler
	projectHandler projectHandler
	tagHandler     tagHandler
	authHandler    authHandler
	uploadHandler  uploadHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"project not found"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"name"`
	Details string `json:"details,omitempty" example:"Additional error details"`
	Cause   string `json:"cause,omitempty" example:"Underlying error cause"`
}

// SuccessResponse is returned by delete endpoints
type SuccessResponse struct {
	Success bool `json:"success"`
}

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Password string `json:"password"`
}

// LoginResponse carries the admin token on success or an error message on failure
type LoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
	Error   string `json:"error,omitempty"`
}

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status string `json:"status"`
}

// UploadResponse is returned by POST /uploads/images
type UploadResponse struct {
	URL string `json:"url"`
}
