package http

// APIResponse represents the standard error/status envelope.
type APIResponse struct {
	Status  int         `json:"status" example:"200"`
	Message string      `json:"message" example:"OK"`
	Data    interface{} `json:"data,omitempty"`
}

// APIResponse422Err represents a validation failure response.
type APIResponse422Err struct {
	Status  int               `json:"status" example:"422"`
	Message string            `json:"message" example:"Unprocessable Entity"`
	Data    []ValidationError `json:"data,omitempty"`
}

// ValidationError represents validation error detail.
type ValidationError struct {
	Code    string                 `json:"code,omitempty" example:"ERR_REQUIRED"`
	Field   string                 `json:"field,omitempty" example:"token"`
	Message string                 `json:"message,omitempty" example:"token is required"`
	Params  map[string]interface{} `json:"params,omitempty"`
}

// StatusResponse is the body of the liveness endpoints.
type StatusResponse struct {
	Message string `json:"message,omitempty"`
	Status  string `json:"status"`
}
