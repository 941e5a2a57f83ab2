// Package store persists rendered diagram records for the server's history
// API. The CLI does not use it; local runs write straight to files.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/planviz/planviz/pkg/errors"
)

// Record is one generated diagram: the plan text it came from, the produced
// document, and enough metadata to list and re-fetch it.
type Record struct {
	ID        string    `json:"id" bson:"_id"`
	PlanText  string    `json:"plan_text" bson:"plan_text"`
	PlanHash  string    `json:"plan_hash" bson:"plan_hash"`
	Dialect   string    `json:"dialect" bson:"dialect"`
	Document  []byte    `json:"document" bson:"document"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Store is the persistence contract. Implementations must be safe for
// concurrent use.
type Store interface {
	// Put stores a record, assigning ID and CreatedAt when unset, and
	// returns the stored record.
	Put(ctx context.Context, rec Record) (Record, error)

	// Get fetches a record by ID. A missing ID yields ErrCodeNotFound.
	Get(ctx context.Context, id string) (Record, error)

	// List returns up to limit records, newest first. limit <= 0 means a
	// backend-chosen default.
	List(ctx context.Context, limit int) ([]Record, error)

	// Delete removes a record. Deleting a missing ID yields ErrCodeNotFound.
	Delete(ctx context.Context, id string) error

	Close(ctx context.Context) error
}

const defaultListLimit = 50

// prepare fills in generated fields before a record is written.
func prepare(rec Record) Record {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	return rec
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeNotFound, "diagram %s not found", id)
}
