// Package audit defines the domain-side contract for the audit trail.
// The postgres implementation persists entries into sys_audit.
package audit

import (
	"context"

	"gestor/internal/core/id"
)

// Action is the audited operation kind.
type Action string

const (
	ActionCreate  Action = "create"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
	ActionStatus  Action = "status_change"
	ActionConvert Action = "convert"
	ActionPayment Action = "payment"
)

// Entry is a single audit record. User identity is taken from context by
// the recorder.
type Entry struct {
	EntityType string
	EntityID   id.ID
	Action     Action
	Changes    map[string]any
}

// Recorder persists audit entries. Recording is best-effort: services log
// failures but never fail the business operation because of them.
type Recorder interface {
	Record(ctx context.Context, entry Entry) error
}

// Nop is a Recorder that discards entries. Used in tests.
type Nop struct{}

func (Nop) Record(ctx context.Context, entry Entry) error { return nil }
