// Package repository provides the storage layer for pans and log entries.
package repository

import (
	"context"

	"github.com/brandonleon/carbsmart/internal/domain/model"
)

// PanRepository stores the pan library. Pans are uniquely identified by
// (name, capacity label); a violation fails with ErrDuplicateKey.
type PanRepository interface {
	// List returns all pans ordered by name, then capacity label.
	List(ctx context.Context) ([]model.Pan, error)
	GetByID(ctx context.Context, id int64) (*model.Pan, error)
	Create(ctx context.Context, in model.PanInput) (*model.Pan, error)
	// Update overwrites the mutable fields of pan and refreshes UpdatedAt.
	Update(ctx context.Context, pan model.Pan) (*model.Pan, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
	Ping(ctx context.Context) error
}

// LogsRepository defines the interface for logs repository operations.
type LogsRepository interface {
	Create(ctx context.Context, entry *LogEntryDocument) error
	CreateMany(ctx context.Context, entries []*LogEntryDocument) error
	Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error)
	Count(ctx context.Context, opts LogQueryOptions) (int64, error)
}
