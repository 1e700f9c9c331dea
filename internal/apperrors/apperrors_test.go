package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: http.StatusOK},
		{name: "bad request", err: fmt.Errorf("file is required: %w", ErrBadRequest), want: http.StatusBadRequest},
		{name: "conflict", err: fmt.Errorf("username taken: %w", ErrConflict), want: http.StatusBadRequest},
		{name: "unauthorized", err: ErrUnauthorized, want: http.StatusUnauthorized},
		{name: "recovery required", err: &RecoveryRequiredError{Question: "pet?"}, want: http.StatusUnauthorized},
		{name: "not found", err: fmt.Errorf("photo 1: %w", ErrNotFound), want: http.StatusNotFound},
		{name: "anything else", err: errors.New("connection reset"), want: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestRecoveryRequiredError_As(t *testing.T) {
	err := fmt.Errorf("login: %w", &RecoveryRequiredError{Question: "first school?"})

	var recoveryErr *RecoveryRequiredError
	assert.True(t, errors.As(err, &recoveryErr))
	assert.Equal(t, "first school?", recoveryErr.Question)
	assert.ErrorIs(t, err, ErrUnauthorized)
}
