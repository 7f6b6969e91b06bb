package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	surrealdb "github.com/surrealdb/surrealdb.go"
)

const surrealTable = "users"

// SurrealConfig holds connection details for the cloud document store.
type SurrealConfig struct {
	URL       string // websocket endpoint, e.g. ws://localhost:8000/rpc
	Namespace string
	Database  string
	User      string
	Pass      string
}

// Surreal is the cloud backend: each profile maps to one record in the
// users table, holding the whole document. Saves merge a single field into
// the record rather than replacing it.
type Surreal struct {
	db  *surrealdb.DB
	log zerolog.Logger
}

// OpenSurreal dials the database and authenticates.
func OpenSurreal(cfg SurrealConfig, log zerolog.Logger) (*Surreal, error) {
	db, err := surrealdb.New(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to surrealdb: %w", err)
	}
	if _, err := db.Signin(map[string]any{"user": cfg.User, "pass": cfg.Pass}); err != nil {
		db.Close()
		return nil, fmt.Errorf("surrealdb signin: %w", err)
	}
	if _, err := db.Use(cfg.Namespace, cfg.Database); err != nil {
		db.Close()
		return nil, fmt.Errorf("surrealdb use: %w", err)
	}
	log.Info().Str("url", cfg.URL).Msg("connected to surrealdb")
	return &Surreal{db: db, log: log}, nil
}

// Load fetches the profile's record. A missing record is ErrNotFound; a
// record that does not decode cleanly degrades to an empty document so a
// corrupt write can never block the app from rendering.
func (s *Surreal) Load(ctx context.Context, profileID string) (*Document, error) {
	res, err := s.db.Select(recordID(profileID))
	if err != nil {
		// The client reports an absent record as an access error on the
		// record id rather than a typed not-found.
		return nil, ErrNotFound
	}

	doc, err := decodeDocument(res)
	if err != nil {
		s.log.Warn().Err(err).Str("profile", profileID).Msg("stored document is malformed, starting empty")
		return &Document{}, nil
	}
	return doc, nil
}

// Save merges one field of the document into the profile's record,
// creating the record if it does not exist yet.
func (s *Surreal) Save(ctx context.Context, profileID, field string, value any) error {
	if _, err := s.db.Change(recordID(profileID), map[string]any{field: value}); err != nil {
		return fmt.Errorf("surrealdb change %s: %w", field, err)
	}
	return nil
}

// Close shuts the websocket down.
func (s *Surreal) Close() error {
	s.db.Close()
	return nil
}

func recordID(profileID string) string {
	return surrealTable + ":" + profileID
}

// decodeDocument converts the client's generic response tree into a
// Document via a JSON round-trip; the client at this version only hands
// back untyped maps.
func decodeDocument(res any) (*Document, error) {
	raw, err := json.Marshal(res)
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
