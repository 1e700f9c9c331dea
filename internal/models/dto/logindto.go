package dto

type LoginRequestDTO struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=128"`
}

type RecoverLoginRequestDTO struct {
	Username string `json:"username" validate:"required,max=64"`
	Answer   string `json:"answer" validate:"required,max=256"`
}

// NeedsRecoveryResponseDTO is sent with 401 when the password does not match an existing user.
type NeedsRecoveryResponseDTO struct {
	NeedsRecovery bool   `json:"needsRecovery"`
	Question      string `json:"question"`
	Message       string `json:"message"`
}
