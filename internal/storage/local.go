package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/athlemics/athlemics/internal/models"
)

// Local is the on-disk backend: a SQLite database under the user's home
// directory, one set of rows per profile.
type Local struct {
	db  *gorm.DB
	log zerolog.Logger
}

// DefaultLocalPath returns the path to the SQLite database file.
func DefaultLocalPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".athlemics", "athlemics.db"), nil
}

// OpenLocal opens (creating if needed) the SQLite database at path and
// runs migrations.
func OpenLocal(path string, log zerolog.Logger) (*Local, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create athlemics directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Quiet by default
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.Block{},
		&models.Goal{},
		&models.Profile{},
		&models.HealthRecord{},
	); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Local{db: db, log: log}, nil
}

// Load assembles the profile's document from its rows. A profile with no
// profile row at all is reported as ErrNotFound so the caller can seed an
// empty document.
func (l *Local) Load(ctx context.Context, profileID string) (*Document, error) {
	db := l.db.WithContext(ctx)

	var profile models.Profile
	err := db.First(&profile, "profile_id = ?", profileID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	doc := &Document{Profile: profile}
	if err := db.Where("profile_id = ?", profileID).Find(&doc.Blocks).Error; err != nil {
		return nil, fmt.Errorf("load blocks: %w", err)
	}
	if err := db.Where("profile_id = ?", profileID).Find(&doc.Goals).Error; err != nil {
		return nil, fmt.Errorf("load goals: %w", err)
	}
	if err := db.Where("profile_id = ?", profileID).Find(&doc.HealthRecords).Error; err != nil {
		return nil, fmt.Errorf("load health records: %w", err)
	}
	return doc, nil
}

// Save writes one document field for the profile. Collection fields
// replace that profile's rows in a transaction; the profile field upserts
// its single row.
func (l *Local) Save(ctx context.Context, profileID, field string, value any) error {
	db := l.db.WithContext(ctx)

	switch field {
	case FieldBlocks:
		blocks, ok := value.([]models.Block)
		if !ok {
			return fmt.Errorf("save %s: unexpected value type %T", field, value)
		}
		return db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("profile_id = ?", profileID).Delete(&models.Block{}).Error; err != nil {
				return err
			}
			if len(blocks) == 0 {
				return nil
			}
			for i := range blocks {
				blocks[i].ProfileID = profileID
			}
			return tx.Create(&blocks).Error
		})

	case FieldGoals:
		goals, ok := value.([]models.Goal)
		if !ok {
			return fmt.Errorf("save %s: unexpected value type %T", field, value)
		}
		return db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("profile_id = ?", profileID).Delete(&models.Goal{}).Error; err != nil {
				return err
			}
			if len(goals) == 0 {
				return nil
			}
			for i := range goals {
				goals[i].ProfileID = profileID
			}
			return tx.Create(&goals).Error
		})

	case FieldProfile:
		profile, ok := value.(models.Profile)
		if !ok {
			return fmt.Errorf("save %s: unexpected value type %T", field, value)
		}
		profile.ProfileID = profileID
		return db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&profile).Error

	case FieldHealthRecords:
		records, ok := value.([]models.HealthRecord)
		if !ok {
			return fmt.Errorf("save %s: unexpected value type %T", field, value)
		}
		return db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("profile_id = ?", profileID).Delete(&models.HealthRecord{}).Error; err != nil {
				return err
			}
			if len(records) == 0 {
				return nil
			}
			for i := range records {
				records[i].ProfileID = profileID
			}
			return tx.Create(&records).Error
		})

	default:
		return fmt.Errorf("save: unknown document field %q", field)
	}
}

// Close closes the underlying database connection.
func (l *Local) Close() error {
	sqlDB, err := l.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
