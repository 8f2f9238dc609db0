package audit

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Decision is the recorded outcome of a guarded or administrative
// action.
type Decision string

const (
	DecisionAllow    Decision = "allow"
	DecisionDeny     Decision = "deny"
	DecisionNotFound Decision = "not_found"
	DecisionApplied  Decision = "applied" // successful administrative mutation
	DecisionRejected Decision = "rejected"
)

// Record is a single append-only audit entry. Records are never mutated
// or deleted; retention and export belong to the audit store, not this
// core.
type Record struct {
	ID            uuid.UUID       `json:"id"`
	ActorID       uuid.UUID       `json:"actor_id"`
	ActorRole     string          `json:"actor_role"` // role held at the time of the action
	Action        string          `json:"action"`
	TargetType    string          `json:"target_type"`
	TargetID      string          `json:"target_id"`
	CountryCode   string          `json:"country_code,omitempty"`
	PreviousValue json.RawMessage `json:"previous_value,omitempty"`
	NewValue      json.RawMessage `json:"new_value,omitempty"`
	Decision      Decision        `json:"decision"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Validate checks the fields every record must carry.
func (r *Record) Validate() error {
	if r.Action == "" {
		return errors.Join(ErrRecordValidation, fmt.Errorf("action is required"))
	}
	if r.Decision == "" {
		return errors.Join(ErrRecordValidation, fmt.Errorf("decision is required"))
	}
	return nil
}
