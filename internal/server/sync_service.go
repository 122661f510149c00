package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/jonathan/sync-engine/internal/db"
	"github.com/jonathan/sync-engine/internal/metrics"
	"github.com/jonathan/sync-engine/internal/synastry"
	"github.com/jonathan/sync-engine/internal/types"
	"go.uber.org/zap"
)

// SyncStore is the persistence the sync score service needs. *db.DB satisfies it.
type SyncStore interface {
	LatestTranslatorLog(ctx context.Context, chatID uuid.UUID) (*db.TranslatorLog, error)
	GetConversationPersons(ctx context.Context, chatID uuid.UUID) (*db.ConversationPersons, error)
	SaveSyncScore(ctx context.Context, chatID uuid.UUID, record any) error
	GetSyncScore(ctx context.Context, chatID uuid.UUID) ([]byte, error)
}

// scoreEntry is a cached stored score along with the time it was cached.
type scoreEntry struct {
	content  []byte
	storedAt time.Time
}

// SyncService calculates, stores and serves sync scores.
type SyncService struct {
	store    SyncStore
	cache    *lru.Cache[uuid.UUID, scoreEntry] // nil when caching is disabled
	ttl      time.Duration                     // zero keeps entries until evicted
	recorder *metrics.Recorder
	logger   *zap.Logger
	now      func() time.Time
}

// NewSyncService creates a SyncService. A cacheSize of zero disables the read cache.
func NewSyncService(store SyncStore, cacheSize int, cacheTTL time.Duration, recorder *metrics.Recorder, logger *zap.Logger) (*SyncService, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &SyncService{
		store:    store,
		ttl:      cacheTTL,
		recorder: recorder,
		logger:   logger,
		now:      time.Now,
	}
	if cacheSize > 0 {
		cache, err := lru.New[uuid.UUID, scoreEntry](cacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create score cache: %w", err)
		}
		s.cache = cache
	}
	return s, nil
}

// Calculate runs the engine on the latest chart stored for a chat, persists
// the result under the conversation and returns it.
func (s *SyncService) Calculate(ctx context.Context, chatID uuid.UUID) (*types.SyncScoreRecord, error) {
	var log *db.TranslatorLog
	err := s.observe(metrics.OpLoadChart, func() error {
		var err error
		log, err = s.store.LatestTranslatorLog(ctx, chatID)
		return err
	})
	if err != nil {
		return nil, &ErrStorage{Action: "fetch synastry data", Err: err}
	}
	if log == nil {
		return nil, &ErrChartNotFound{ChatID: chatID.String()}
	}

	// A chart that is not a JSON object carries no aspects.
	var data synastry.SwissData
	if err := json.Unmarshal(log.SwissData, &data); err != nil {
		s.logger.Warn("undecodable swiss data",
			zap.String("chat_id", chatID.String()),
			zap.Error(err),
		)
		return nil, &ErrNoAspects{ChatID: chatID.String()}
	}

	profile := synastry.GenerateConnectionProfile(&data)
	if profile.Features.TotalAspects == 0 {
		return nil, &ErrNoAspects{ChatID: chatID.String()}
	}

	var persons *db.ConversationPersons
	err = s.observe(metrics.OpLoadPersons, func() error {
		var err error
		persons, err = s.store.GetConversationPersons(ctx, chatID)
		return err
	})
	if err != nil {
		return nil, &ErrStorage{Action: "load conversation", Err: err}
	}
	if persons == nil {
		return nil, fmt.Errorf("chat %s: %w", chatID, db.ErrConversationNotFound)
	}

	record := &types.SyncScoreRecord{
		ChatID:           chatID.String(),
		Profile:          profile,
		Subheadline:      synastry.Subheadline(profile.Archetype, profile.DominantTheme),
		RarityPercentile: synastry.RarityPercentile(profile.Score),
		Persons:          types.Persons{PersonA: persons.PersonA, PersonB: persons.PersonB},
		LibraryVersion:   synastry.LibraryVersion,
		CalculatedAt:     s.now().UTC(),
	}
	if err := record.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sync score record: %w", err)
	}

	content, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sync score: %w", err)
	}

	err = s.observe(metrics.OpSaveScore, func() error {
		return s.store.SaveSyncScore(ctx, chatID, json.RawMessage(content))
	})
	if err != nil {
		if errors.Is(err, db.ErrConversationNotFound) {
			return nil, fmt.Errorf("chat %s: %w", chatID, err)
		}
		return nil, &ErrStorage{Action: "store score", Err: err}
	}

	s.recorder.ObserveProfile(profile)
	s.put(chatID, content)

	s.logger.Info("sync score calculated",
		zap.String("chat_id", chatID.String()),
		zap.Int("score", profile.Score),
		zap.String("archetype", string(profile.Archetype.ID)),
		zap.Int("rarity_percentile", record.RarityPercentile),
	)
	return record, nil
}

// Get returns the stored sync score JSON for a chat, serving repeated reads
// from the cache.
func (s *SyncService) Get(ctx context.Context, chatID uuid.UUID) (json.RawMessage, error) {
	if content, ok := s.cached(chatID); ok {
		return content, nil
	}

	var content []byte
	err := s.observe(metrics.OpGetScore, func() error {
		var err error
		content, err = s.store.GetSyncScore(ctx, chatID)
		return err
	})
	if err != nil {
		return nil, &ErrStorage{Action: "load score", Err: err}
	}
	if content == nil {
		return nil, &ErrSyncScoreNotFound{ChatID: chatID.String()}
	}

	s.put(chatID, content)
	return content, nil
}

// Profile runs the engine without persistence and records metrics.
func (s *SyncService) Profile(data *synastry.SwissData) synastry.ConnectionProfile {
	profile := synastry.GenerateConnectionProfile(data)
	s.recorder.ObserveProfile(profile)
	return profile
}

func (s *SyncService) observe(op string, fn func() error) error {
	start := time.Now()
	err := fn()
	s.recorder.ObserveStore(op, time.Since(start), err)
	if err != nil {
		s.logger.Warn("store operation failed", zap.String("operation", op), zap.Error(err))
	}
	return err
}

func (s *SyncService) cached(chatID uuid.UUID) ([]byte, bool) {
	if s.cache == nil {
		return nil, false
	}
	entry, ok := s.cache.Get(chatID)
	if !ok {
		return nil, false
	}
	if s.ttl > 0 && s.now().Sub(entry.storedAt) >= s.ttl {
		s.cache.Remove(chatID)
		return nil, false
	}
	return entry.content, true
}

func (s *SyncService) put(chatID uuid.UUID, content []byte) {
	if s.cache == nil {
		return
	}
	s.cache.Add(chatID, scoreEntry{content: content, storedAt: s.now()})
}
