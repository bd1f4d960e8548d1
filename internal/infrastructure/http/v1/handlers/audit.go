package handlers

import (
	"context"
	"encoding/json"
	"time"

	"gestor/internal/core/id"
	"gestor/internal/infrastructure/storage/postgres"
)

// AuditHistorian reads back the recorded trail of an entity. Implemented by
// the postgres audit service; the history endpoints are only registered when
// the configured recorder supports read-back.
type AuditHistorian interface {
	GetEntityHistory(ctx context.Context, entityType string, entityID id.ID, limit int) ([]postgres.AuditEntry, error)
}

var _ AuditHistorian = (*postgres.AuditService)(nil)

// historicoLimit caps history pages; the trail is newest-first.
const historicoLimit = 50

// AuditEntryResponse is one audit trail entry in API responses. Changes come
// back decompressed regardless of how they were stored.
type AuditEntryResponse struct {
	ID        string          `json:"id"`
	Action    string          `json:"action"`
	UserID    string          `json:"userId,omitempty"`
	UserEmail string          `json:"userEmail,omitempty"`
	Changes   json.RawMessage `json:"changes,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

func fromAuditEntries(entries []postgres.AuditEntry) []AuditEntryResponse {
	out := make([]AuditEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = AuditEntryResponse{
			ID:        e.ID.String(),
			Action:    string(e.Action),
			UserID:    e.UserID,
			UserEmail: e.UserEmail,
			Changes:   e.Changes,
			CreatedAt: e.CreatedAt,
		}
	}
	return out
}
