package store

import (
	"context"
	"errors"

	"github.com/kindlinghq/kindling/internal/relay/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface for the compute service.
// Concrete drivers (sqlite) implement this.
type Store interface {
	Submissions() Submissions

	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

type Submissions interface {
	// CreateSubmission inserts a new submission (id is provided via ULID).
	CreateSubmission(ctx context.Context, sub domain.Submission) error

	// GetSubmissionByID fetches a submission by id.
	GetSubmissionByID(ctx context.Context, id string) (domain.Submission, error)

	// ListSubmissions returns submissions newest-first, capped at limit.
	// A non-positive limit applies the driver default.
	ListSubmissions(ctx context.Context, limit int) ([]domain.Submission, error)
}
