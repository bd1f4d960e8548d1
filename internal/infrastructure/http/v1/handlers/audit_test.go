package handlers

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"gestor/internal/core/id"
	"gestor/internal/domain/audit"
	"gestor/internal/infrastructure/storage/postgres"
)

func TestFromAuditEntries(t *testing.T) {
	entryID := id.New()
	createdAt := time.Date(2026, 8, 30, 14, 0, 0, 0, time.UTC)

	entries := []postgres.AuditEntry{
		{
			ID:         entryID,
			EntityType: "documento",
			EntityID:   id.New(),
			Action:     audit.ActionPayment,
			UserID:     "u1",
			UserEmail:  "ana@exemplo.com.br",
			Changes:    json.RawMessage(`{"valor":"100"}`),
			CreatedAt:  createdAt,
		},
		{
			ID:        id.New(),
			Action:    audit.ActionDelete,
			CreatedAt: createdAt,
		},
	}

	got := fromAuditEntries(entries)

	assert.Len(t, got, 2)
	assert.Equal(t, entryID.String(), got[0].ID)
	assert.Equal(t, "payment", got[0].Action)
	assert.Equal(t, "ana@exemplo.com.br", got[0].UserEmail)
	assert.JSONEq(t, `{"valor":"100"}`, string(got[0].Changes))
	assert.Equal(t, createdAt, got[0].CreatedAt)

	// system entries without user identity marshal without those keys
	data, err := json.Marshal(got[1])
	assert.NoError(t, err)
	assert.NotContains(t, string(data), "userId")
	assert.NotContains(t, string(data), "changes")
}

func TestFromAuditEntries_Empty(t *testing.T) {
	got := fromAuditEntries(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
