package sqlite

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/verdantworks/growline/internal/platform/errors"
	"github.com/verdantworks/growline/internal/progression/event"
	"github.com/verdantworks/growline/internal/storage"
	"github.com/verdantworks/growline/internal/storage/cursor"
	"github.com/verdantworks/growline/internal/storage/filter"
)

// EventStore methods (progression journal)

// AppendEvent atomically appends an event and returns it with sequence and
// hash set. Sequences are per-profile and start at 1.
func (s *Store) AppendEvent(ctx context.Context, evt event.Event) (event.Event, error) {
	if err := ctx.Err(); err != nil {
		return event.Event{}, err
	}
	if s == nil || s.sqlDB == nil {
		return event.Event{}, fmt.Errorf("storage is not configured")
	}
	if !evt.Type.IsValid() {
		return event.Event{}, fmt.Errorf("event type %q is not recognized", evt.Type)
	}
	if strings.TrimSpace(evt.ProfileID) == "" {
		return event.Event{}, fmt.Errorf("event profile id is required")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return event.Event{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now().UTC()
	}
	evt.Timestamp = evt.Timestamp.UTC().Truncate(time.Millisecond)

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO event_seqs (profile_id, next_seq) VALUES (?, 1) ON CONFLICT(profile_id) DO NOTHING`,
		evt.ProfileID,
	); err != nil {
		return event.Event{}, fmt.Errorf("init event seq: %w", err)
	}

	var seq int64
	if err := tx.QueryRowContext(ctx,
		`SELECT next_seq FROM event_seqs WHERE profile_id = ?`,
		evt.ProfileID,
	).Scan(&seq); err != nil {
		return event.Event{}, fmt.Errorf("get event seq: %w", err)
	}
	evt.Seq = uint64(seq)

	if _, err := tx.ExecContext(ctx,
		`UPDATE event_seqs SET next_seq = next_seq + 1 WHERE profile_id = ?`,
		evt.ProfileID,
	); err != nil {
		return event.Event{}, fmt.Errorf("increment event seq: %w", err)
	}

	evt.Hash = eventHash(evt)

	if _, err := tx.ExecContext(ctx, `
INSERT INTO events (profile_id, seq, event_hash, timestamp_ms, event_type, entity_type, entity_id, payload_json)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		evt.ProfileID,
		int64(evt.Seq),
		evt.Hash,
		toMillis(evt.Timestamp),
		string(evt.Type),
		evt.EntityType,
		evt.EntityID,
		evt.PayloadJSON,
	); err != nil {
		return event.Event{}, fmt.Errorf("append event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return event.Event{}, fmt.Errorf("commit: %w", err)
	}

	return evt, nil
}

// eventHash computes the content-addressed identity of an event: SHA-256
// over the canonical field encoding, truncated to 128 bits.
func eventHash(evt event.Event) string {
	canonical := strings.Join([]string{
		evt.ProfileID,
		strconv.FormatUint(evt.Seq, 10),
		strconv.FormatInt(evt.Timestamp.UTC().UnixMilli(), 10),
		string(evt.Type),
		evt.EntityType,
		evt.EntityID,
		string(evt.PayloadJSON),
	}, "\x1f")
	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:16])
}

// ListEvents returns one page of journal events in ascending sequence
// order, applying the optional AIP-160 filter.
func (s *Store) ListEvents(ctx context.Context, req storage.ListEventsRequest) (storage.ListEventsResult, error) {
	if err := ctx.Err(); err != nil {
		return storage.ListEventsResult{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.ListEventsResult{}, fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(req.ProfileID) == "" {
		return storage.ListEventsResult{}, fmt.Errorf("profile id is required")
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	cond, err := filter.ParseEventFilter(req.Filter)
	if err != nil {
		return storage.ListEventsResult{}, apperrors.Wrap(apperrors.CodeBadRequest, "parse filter", err)
	}

	afterSeq := uint64(0)
	if req.PageToken != "" {
		c, err := cursor.Decode(req.PageToken)
		if err != nil {
			return storage.ListEventsResult{}, apperrors.Wrap(apperrors.CodeBadRequest, "decode page token", err)
		}
		if err := cursor.ValidateFilterHash(c, req.Filter); err != nil {
			return storage.ListEventsResult{}, apperrors.Wrap(apperrors.CodeBadRequest, "validate page token", err)
		}
		afterSeq = c.Seq
	}

	query := `
SELECT profile_id, seq, event_hash, timestamp_ms, event_type, entity_type, entity_id, payload_json
FROM events
WHERE profile_id = ? AND seq > ?`
	params := []any{req.ProfileID, int64(afterSeq)}
	if cond.Clause != "" {
		query += " AND " + cond.Clause
		params = append(params, cond.Params...)
	}
	// Fetch one extra row to learn whether another page exists.
	query += " ORDER BY seq LIMIT ?"
	params = append(params, pageSize+1)

	rows, err := s.sqlDB.QueryContext(ctx, query, params...)
	if err != nil {
		return storage.ListEventsResult{}, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []event.Event
	for rows.Next() {
		var evt event.Event
		var seq, timestamp int64
		var eventType string
		if err := rows.Scan(
			&evt.ProfileID,
			&seq,
			&evt.Hash,
			&timestamp,
			&eventType,
			&evt.EntityType,
			&evt.EntityID,
			&evt.PayloadJSON,
		); err != nil {
			return storage.ListEventsResult{}, fmt.Errorf("scan event: %w", err)
		}
		evt.Seq = uint64(seq)
		evt.Timestamp = fromMillis(timestamp)
		evt.Type = event.Type(eventType)
		events = append(events, evt)
	}
	if err := rows.Err(); err != nil {
		return storage.ListEventsResult{}, fmt.Errorf("read events: %w", err)
	}

	result := storage.ListEventsResult{Events: events}
	if len(events) > pageSize {
		result.Events = events[:pageSize]
		last := result.Events[len(result.Events)-1]
		token, err := cursor.Encode(cursor.New(last.Seq, req.Filter))
		if err != nil {
			return storage.ListEventsResult{}, fmt.Errorf("encode page token: %w", err)
		}
		result.NextPageToken = token
	}
	return result, nil
}

var _ storage.EventStore = (*Store)(nil)
