// Package store persists layout records for the HTTP service.
//
// A [Record] pairs a submitted form with the layout built for it. Two
// backends implement [Store]: [MemoryStore] for tests and single-process
// use, and [MongoStore] backed by MongoDB.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/rclayout/pkg/form"
)

// DefaultListLimit caps List results when no limit is given.
const DefaultListLimit = 50

// Record is one stored layout.
type Record struct {
	ID        string      `json:"id" bson:"_id"`
	Form      form.Form   `json:"form" bson:"form"`
	Layout    form.Layout `json:"layout" bson:"layout"`
	Hash      string      `json:"hash" bson:"hash"`
	CreatedAt time.Time   `json:"created_at" bson:"created_at"`
}

// NewRecord returns a record with a fresh id and creation time.
func NewRecord(f form.Form, l form.Layout, hash string) *Record {
	return &Record{
		ID:        uuid.NewString(),
		Form:      f,
		Layout:    l,
		Hash:      hash,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
}

// ListOptions filters List.
type ListOptions struct {
	// Form restricts results to one form id.
	Form string
	// Limit caps the result count; zero means DefaultListLimit.
	Limit int
}

func (o ListOptions) limit() int {
	if o.Limit <= 0 {
		return DefaultListLimit
	}
	return o.Limit
}

// Store saves and retrieves layout records. List returns newest first.
type Store interface {
	Save(ctx context.Context, rec *Record) error
	Get(ctx context.Context, id string) (*Record, error)
	List(ctx context.Context, opts ListOptions) ([]Record, error)
	Delete(ctx context.Context, id string) error
	Close(ctx context.Context) error
}

// ValidID reports whether id looks like a record id.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
