package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/jonathan/sync-engine/internal/db"
	"github.com/jonathan/sync-engine/internal/schemas"
	"github.com/stretchr/testify/assert"
)

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "chat_id", Message: "is required"}
	assert.Equal(t, "validation error: chat_id - is required", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestErrStorage(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := &ErrStorage{Action: "store score", Err: cause}
	assert.Equal(t, "failed to store score", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(err))
	assert.Equal(t, "failed to store score", publicMessage(err))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "ErrValidation", err: &ErrValidation{Field: "chat_id", Message: "bad"}, expected: http.StatusBadRequest},
		{name: "schema validation", err: &schemas.ValidationError{Errors: []schemas.FieldError{{Field: "(root)", Message: "x"}}}, expected: http.StatusBadRequest},
		{name: "ErrNoAspects", err: &ErrNoAspects{ChatID: "c"}, expected: http.StatusBadRequest},
		{name: "ErrChartNotFound", err: &ErrChartNotFound{ChatID: "c"}, expected: http.StatusNotFound},
		{name: "ErrSyncScoreNotFound", err: &ErrSyncScoreNotFound{ChatID: "c"}, expected: http.StatusNotFound},
		{name: "ErrArchetypeNotFound", err: &ErrArchetypeNotFound{ID: "x"}, expected: http.StatusNotFound},
		{name: "conversation not found", err: db.ErrConversationNotFound, expected: http.StatusNotFound},
		{name: "wrapped conversation not found", err: fmt.Errorf("save: %w", db.ErrConversationNotFound), expected: http.StatusNotFound},
		{name: "wrapped typed error", err: fmt.Errorf("calc: %w", &ErrNoAspects{}), expected: http.StatusBadRequest},
		{name: "ErrStoreUnavailable", err: &ErrStoreUnavailable{}, expected: http.StatusServiceUnavailable},
		{name: "Unknown error", err: assert.AnError, expected: http.StatusInternalServerError},
		{name: "Nil error", err: nil, expected: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}

func TestPublicMessage(t *testing.T) {
	assert.Equal(t, "no synastry aspects found", publicMessage(&ErrNoAspects{}))
	assert.Equal(t, "could not fetch synastry data", publicMessage(&ErrChartNotFound{}))
	assert.Equal(t, "internal server error", publicMessage(fmt.Errorf("pool closed")))
	assert.Equal(t, "sync score storage is not configured", publicMessage(&ErrStoreUnavailable{}))
}
