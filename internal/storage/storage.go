package storage

import (
	"context"
	"errors"

	"github.com/athlemics/athlemics/internal/models"
)

// ErrNotFound is returned by Load when no document exists for the profile.
var ErrNotFound = errors.New("storage: profile document not found")

// Document field names accepted by Save.
const (
	FieldBlocks        = "blocks"
	FieldGoals         = "goals"
	FieldProfile       = "profile"
	FieldHealthRecords = "healthRecords"
)

// Document is the persisted shape of one profile's data: the block
// collection alongside its sibling goals, profile and health fields.
type Document struct {
	Blocks        []models.Block        `json:"blocks"`
	Goals         []models.Goal         `json:"goals"`
	Profile       models.Profile        `json:"profile"`
	HealthRecords []models.HealthRecord `json:"healthRecords"`
}

// Backend persists profile documents. Save writes a single field and
// merges it into the existing document rather than replacing the whole
// thing; callers that need durability guarantees add their own retries,
// the backends do not.
type Backend interface {
	Load(ctx context.Context, profileID string) (*Document, error)
	Save(ctx context.Context, profileID, field string, value any) error
	Close() error
}
