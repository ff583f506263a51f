package repo

import (
	"context"

	"prospector/internal/platform/store"
	"prospector/internal/services/api/sequences/domain"
)

// Logs appends engagement logs to the columnar store
type Logs interface {
	Append(ctx context.Context, logs []domain.EngagementLog) error
}

type chLogs struct{ ch store.Clickhouse }

// NewLogs wires the engagement log writer onto the clickhouse seam
func NewLogs(ch store.Clickhouse) Logs { return &chLogs{ch: ch} }

const insertLogsSQL = `
INSERT INTO engagement_logs
  (id, lead_id, channel, direction, occurred_at, subject, body_preview, status, provider_ref)
`

// Append writes one batch; engagement logs are never updated after insert
func (r *chLogs) Append(ctx context.Context, logs []domain.EngagementLog) error {
	if len(logs) == 0 {
		return nil
	}
	rows := make([][]any, 0, len(logs))
	for _, l := range logs {
		rows = append(rows, []any{
			l.ID, l.LeadID, l.Channel, l.Direction, l.OccurredAt,
			l.Subject, l.BodyPreview, l.Status, l.ProviderRef,
		})
	}
	return r.ch.Insert(ctx, insertLogsSQL, rows)
}
