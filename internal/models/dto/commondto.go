package dto

type MessageResponseDTO struct {
	Message string `json:"message"`
}

type ErrorResponseDTO struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// RateLimitResponse is sent with 429, it has the shape of ErrorResponseDTO.
type RateLimitResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type HealthResponseDTO struct {
	Status string `json:"status"`
}
