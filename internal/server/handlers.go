package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"slices"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jonathan/sync-engine/internal/schemas"
	"github.com/jonathan/sync-engine/internal/synastry"
	"github.com/jonathan/sync-engine/internal/types"
	"go.uber.org/zap"
)

// maxProfileBodyBytes caps the SwissData document accepted by POST /profiles.
const maxProfileBodyBytes = 1 << 20

// handleCalculateSyncScore calculates and stores the sync score for a chat
func (s *Server) handleCalculateSyncScore(w http.ResponseWriter, r *http.Request) {
	if s.syncService == nil {
		s.serviceError(w, r, &ErrStoreUnavailable{})
		return
	}

	var req types.CalculateSyncScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.serviceError(w, r, chatIDValidationError(err))
		return
	}

	chatID, err := uuid.Parse(req.ChatID)
	if err != nil {
		s.serviceError(w, r, &ErrValidation{Field: "chat_id", Message: "must be a valid UUID"})
		return
	}

	record, err := s.syncService.Calculate(r.Context(), chatID)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, types.SyncScoreResponse{Success: true, Score: record})
}

// chatIDValidationError turns validator output for CalculateSyncScoreRequest
// into a client-facing ErrValidation.
func chatIDValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		if fieldErrs[0].Tag() == "required" {
			return &ErrValidation{Field: "chat_id", Message: "chat_id is required"}
		}
		return &ErrValidation{Field: "chat_id", Message: "must be a valid UUID"}
	}
	return &ErrValidation{Field: "chat_id", Message: err.Error()}
}

// handleGetSyncScore returns the stored sync score for a chat
func (s *Server) handleGetSyncScore(w http.ResponseWriter, r *http.Request) {
	if s.syncService == nil {
		s.serviceError(w, r, &ErrStoreUnavailable{})
		return
	}

	chatID, err := uuid.Parse(r.PathValue("chat_id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid chat ID")
		return
	}

	content, err := s.syncService.Get(r.Context(), chatID)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, content)
}

// handleCreateProfile runs the engine on a posted SwissData document
func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxProfileBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.errorResponse(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := schemas.ValidateSwissData(body); err != nil {
		s.serviceError(w, r, err)
		return
	}

	var data synastry.SwissData
	if err := json.Unmarshal(body, &data); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	var profile synastry.ConnectionProfile
	if s.syncService != nil {
		profile = s.syncService.Profile(&data)
	} else {
		profile = synastry.GenerateConnectionProfile(&data)
		s.recorder.ObserveProfile(profile)
	}

	content, err := json.Marshal(profile)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	if err := schemas.ValidateConnectionProfile(content); err != nil {
		s.logger.Error("generated profile failed schema validation", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "internal server error")
		return
	}

	s.jsonResponse(w, http.StatusOK, json.RawMessage(content))
}

// handleListArchetypes returns the archetype library, optionally for one theme
func (s *Server) handleListArchetypes(w http.ResponseWriter, r *http.Request) {
	theme := synastry.ThemeName(r.URL.Query().Get("theme"))
	if theme != "" && !slices.Contains(synastry.ThemeNames, theme) {
		s.serviceError(w, r, &ErrValidation{Field: "theme", Message: "unknown theme " + string(theme)})
		return
	}

	s.jsonResponse(w, http.StatusOK, types.NewArchetypeCatalog(theme))
}

// handleGetArchetype returns one archetype by id
func (s *Server) handleGetArchetype(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	archetype, ok := synastry.ArchetypeByID(synastry.ArchetypeID(id))
	if !ok {
		s.serviceError(w, r, &ErrArchetypeNotFound{ID: id})
		return
	}

	s.jsonResponse(w, http.StatusOK, archetype)
}
