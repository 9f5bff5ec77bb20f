package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/younwookim/td/internal/application/save"
)

// SaveRow is one saved game. Every save appends a row; Load reads the newest.
type SaveRow struct {
	ID             uint   `gorm:"primaryKey;autoIncrement"`
	SaveID         string `gorm:"uniqueIndex;size:36"`
	CreatedAt      time.Time
	LevelIndex     *int
	Gold           *int
	Lives          *int
	LevelTime      *float64
	Towers         datatypes.JSON
	SpawnedIndices datatypes.JSON
}

// TableName overrides the gorm default
func (SaveRow) TableName() string {
	return "saves"
}

// SQLiteStore keeps save history in a SQLite database
type SQLiteStore struct {
	db *gorm.DB
}

// NewSQLiteStore opens or creates the database at path and migrates the schema.
// An empty path opens a private in-memory database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	dsn := path
	if dsn == "" {
		dsn = "file::memory:"
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open save database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to open save database: %w", err)
	}
	// an in-memory database exists per connection
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&SaveRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate save database: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Save appends r as a new row and returns nil once it is committed
func (s *SQLiteStore) Save(ctx context.Context, r save.Record) error {
	towers, err := json.Marshal(r.Towers)
	if err != nil {
		return fmt.Errorf("failed to encode towers: %w", err)
	}
	spawned, err := json.Marshal(r.SpawnedIndices)
	if err != nil {
		return fmt.Errorf("failed to encode spawned indices: %w", err)
	}

	row := SaveRow{
		SaveID:         uuid.NewString(),
		LevelIndex:     r.LevelIndex,
		Gold:           r.Gold,
		Lives:          r.Lives,
		LevelTime:      r.LevelTime,
		Towers:         datatypes.JSON(towers),
		SpawnedIndices: datatypes.JSON(spawned),
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to insert save: %w", err)
	}
	return nil
}

// Load returns the newest save; an empty table is save.ErrNoSave
func (s *SQLiteStore) Load(ctx context.Context) (save.Record, error) {
	var row SaveRow
	err := s.db.WithContext(ctx).Order("id desc").First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return save.Record{}, save.ErrNoSave
		}
		return save.Record{}, fmt.Errorf("failed to query save: %w", err)
	}

	r := save.Record{
		LevelIndex: row.LevelIndex,
		Gold:       row.Gold,
		Lives:      row.Lives,
		LevelTime:  row.LevelTime,
	}
	if len(row.Towers) > 0 {
		if err := json.Unmarshal(row.Towers, &r.Towers); err != nil {
			return save.Record{}, fmt.Errorf("failed to decode towers of save %s: %w", row.SaveID, err)
		}
	}
	if len(row.SpawnedIndices) > 0 {
		if err := json.Unmarshal(row.SpawnedIndices, &r.SpawnedIndices); err != nil {
			return save.Record{}, fmt.Errorf("failed to decode spawned indices of save %s: %w", row.SaveID, err)
		}
	}
	return r, nil
}

// Count returns the number of stored saves
func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&SaveRow{}).Count(&n).Error
	return n, err
}

// Close releases the database handle
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
