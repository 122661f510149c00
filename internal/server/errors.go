package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/sync-engine/internal/db"
	"github.com/jonathan/sync-engine/internal/schemas"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrChartNotFound indicates no translator log with chart data exists for a chat
type ErrChartNotFound struct {
	ChatID string
}

func (e *ErrChartNotFound) Error() string {
	return "could not fetch synastry data"
}

// ErrNoAspects indicates the stored chart has no usable synastry aspects
type ErrNoAspects struct {
	ChatID string
}

func (e *ErrNoAspects) Error() string {
	return "no synastry aspects found"
}

// ErrSyncScoreNotFound indicates no score has been stored for a chat
type ErrSyncScoreNotFound struct {
	ChatID string
}

func (e *ErrSyncScoreNotFound) Error() string {
	return fmt.Sprintf("sync score not found: %s", e.ChatID)
}

// ErrArchetypeNotFound indicates an unknown archetype id
type ErrArchetypeNotFound struct {
	ID string
}

func (e *ErrArchetypeNotFound) Error() string {
	return fmt.Sprintf("archetype not found: %s", e.ID)
}

// ErrStorage wraps a database failure. Its message is safe to return to clients.
type ErrStorage struct {
	Action string
	Err    error
}

func (e *ErrStorage) Error() string {
	return "failed to " + e.Action
}

func (e *ErrStorage) Unwrap() error {
	return e.Err
}

// ErrStoreUnavailable indicates the server runs without a database
type ErrStoreUnavailable struct{}

func (e *ErrStoreUnavailable) Error() string {
	return "sync score storage is not configured"
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		schemaErr     *schemas.ValidationError
		noAspectsErr  *ErrNoAspects
		chartErr      *ErrChartNotFound
		scoreErr      *ErrSyncScoreNotFound
		archetypeErr  *ErrArchetypeNotFound
		storeErr      *ErrStoreUnavailable
	)
	switch {
	case errors.As(err, &validationErr), errors.As(err, &schemaErr), errors.As(err, &noAspectsErr):
		return http.StatusBadRequest
	case errors.As(err, &chartErr), errors.As(err, &scoreErr), errors.As(err, &archetypeErr),
		errors.Is(err, db.ErrConversationNotFound):
		return http.StatusNotFound
	case errors.As(err, &storeErr):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage returns the error text a client may see. Unexpected failures
// are reported generically.
func publicMessage(err error) string {
	var storageErr *ErrStorage
	switch {
	case errors.As(err, &storageErr):
		return storageErr.Error()
	case HTTPStatus(err) == http.StatusInternalServerError:
		return "internal server error"
	default:
		return err.Error()
	}
}
