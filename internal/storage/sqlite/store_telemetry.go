package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/verdantworks/growline/internal/storage"
)

// TelemetryStore methods

// AppendTelemetryEvent persists one operational telemetry record.
func (s *Store) AppendTelemetryEvent(ctx context.Context, evt storage.TelemetryEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now().UTC()
	}

	const query = `
INSERT INTO telemetry_events (timestamp_ms, severity, name, profile_id, detail)
VALUES (?, ?, ?, ?, ?)`

	_, err := s.sqlDB.ExecContext(ctx, query,
		toMillis(evt.Timestamp),
		evt.Severity,
		evt.Name,
		evt.ProfileID,
		evt.Detail,
	)
	if err != nil {
		return fmt.Errorf("append telemetry event: %w", err)
	}
	return nil
}

var _ storage.TelemetryStore = (*Store)(nil)
