package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// LatestTranslatorLog returns the most recent translator log carrying chart
// data for a chat. Returns (nil, nil) when the chat has none.
func (db *DB) LatestTranslatorLog(ctx context.Context, chatID uuid.UUID) (*TranslatorLog, error) {
	log := &TranslatorLog{ChatID: chatID}
	err := db.pool.QueryRow(ctx,
		`SELECT swiss_data, created_at
		 FROM translator_logs
		 WHERE chat_id = $1 AND swiss_data IS NOT NULL
		 ORDER BY created_at DESC
		 LIMIT 1`,
		chatID,
	).Scan(&log.SwissData, &log.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get translator log for chat %s: %w", chatID, err)
	}
	return log, nil
}

// GetConversationPersons returns the display names of a conversation, with
// defaults for missing names. Returns (nil, nil) if the conversation does not exist.
func (db *DB) GetConversationPersons(ctx context.Context, chatID uuid.UUID) (*ConversationPersons, error) {
	var personA, personB *string
	err := db.pool.QueryRow(ctx,
		`SELECT meta->>'person_a_name', meta->>'person_b_name'
		 FROM conversations
		 WHERE id = $1`,
		chatID,
	).Scan(&personA, &personB)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get conversation %s: %w", chatID, err)
	}
	return personsOrDefault(personA, personB), nil
}

// SaveSyncScore stores a sync score under conversations.meta.sync_score. Other
// meta keys are preserved.
func (db *DB) SaveSyncScore(ctx context.Context, chatID uuid.UUID, record any) error {
	jsonBytes, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal sync score: %w", err)
	}

	tag, err := db.pool.Exec(ctx,
		`UPDATE conversations
		 SET meta = jsonb_set(COALESCE(meta, '{}'::jsonb), '{sync_score}', $2::jsonb, true)
		 WHERE id = $1`,
		chatID, jsonBytes,
	)
	if err != nil {
		return fmt.Errorf("failed to save sync score for chat %s: %w", chatID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrConversationNotFound
	}
	return nil
}

// GetSyncScore returns the stored sync score JSON for a chat.
// Returns (nil, nil) if the conversation or the score does not exist.
func (db *DB) GetSyncScore(ctx context.Context, chatID uuid.UUID) ([]byte, error) {
	var content []byte
	err := db.pool.QueryRow(ctx,
		`SELECT meta->'sync_score' FROM conversations WHERE id = $1`,
		chatID,
	).Scan(&content)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get sync score for chat %s: %w", chatID, err)
	}
	if len(content) == 0 {
		return nil, nil
	}
	return content, nil
}
