package db

import (
  "context"
  "errors"
  "fmt"
  "gorm.io/driver/sqlite"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"
  "github.com/yungbote/taochow-backend/internal/logger"
)

// KVEntry backs the local fallback store: one row per well-known key, each
// value holding a fully serialized payload that is rewritten whole on every
// mutation.
type KVEntry struct {
  Key   string `gorm:"column:key;primaryKey"`
  Value string `gorm:"column:value;not null"`
}

func (KVEntry) TableName() string { return "kv_entry" }

type LocalKV struct {
  db *gorm.DB
  log *logger.Logger
}

func NewLocalKV(path string, log *logger.Logger) (*LocalKV, error) {
  kvLog := log.With("service", "LocalKV")

  kvLog.Info("Opening local store...", "path", path)
  gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
  if err != nil {
    kvLog.Error("Failed to open local store", "error", err)
    return nil, fmt.Errorf("Failed to open local store: %w", err)
  }
  if err := gdb.AutoMigrate(&KVEntry{}); err != nil {
    kvLog.Error("Auto migration failed for local store", "error", err)
    return nil, fmt.Errorf("Auto migration failed for local store: %w", err)
  }
  return &LocalKV{db: gdb, log: kvLog}, nil
}

// Get returns the stored value and whether the key was present.
func (kv *LocalKV) Get(ctx context.Context, key string) (string, bool, error) {
  var entry KVEntry
  err := kv.db.WithContext(ctx).First(&entry, "key = ?", key).Error
  if errors.Is(err, gorm.ErrRecordNotFound) {
    return "", false, nil
  }
  if err != nil {
    return "", false, err
  }
  return entry.Value, true, nil
}

func (kv *LocalKV) Put(ctx context.Context, key, value string) error {
  entry := KVEntry{Key: key, Value: value}
  return kv.db.WithContext(ctx).
    Clauses(clause.OnConflict{
      Columns:   []clause.Column{{Name: "key"}},
      DoUpdates: clause.AssignmentColumns([]string{"value"}),
    }).
    Create(&entry).Error
}

func (kv *LocalKV) Delete(ctx context.Context, key string) error {
  return kv.db.WithContext(ctx).Delete(&KVEntry{}, "key = ?", key).Error
}
