// Package cache keeps compiled JavaScript in a SQLite database, keyed by
// the SHA-256 of the formula source.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	stderrors "errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Entry is one cached compilation.
type Entry struct {
	Hash      string `gorm:"primaryKey;size:64"`
	Source    string
	Output    string
	Hits      int `gorm:"default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Cache is safe for use by one process at a time.
type Cache struct {
	db *gorm.DB
}

// Key returns the lookup key for source.
func Key(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}

// Open opens or creates the cache database at path. verbose logs every
// SQL statement.
func Open(path string, verbose bool) (*Cache, error) {
	level := logger.Silent
	if verbose {
		level = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("opening cache %s: %w", path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("opening cache %s: %w", path, err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&Entry{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrating cache %s: %w", path, err)
	}
	return &Cache{db: db}, nil
}

// Get returns the cached output for source and counts the hit.
func (c *Cache) Get(source string) (string, bool, error) {
	var e Entry
	err := c.db.First(&e, "hash = ?", Key(source)).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("cache lookup: %w", err)
	}

	if err := c.db.Model(&e).UpdateColumn("hits", gorm.Expr("hits + ?", 1)).Error; err != nil {
		return "", false, fmt.Errorf("cache hit: %w", err)
	}
	return e.Output, true, nil
}

// Put stores output for source, replacing any previous output.
func (c *Cache) Put(source, output string) error {
	e := Entry{Hash: Key(source), Source: source, Output: output}
	err := c.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "hash"}},
		DoUpdates: clause.AssignmentColumns([]string{"output", "updated_at"}),
	}).Create(&e).Error
	if err != nil {
		return fmt.Errorf("cache store: %w", err)
	}
	return nil
}

// Stats reports the number of entries and the total hits.
func (c *Cache) Stats() (entries int64, hits int64, err error) {
	if err = c.db.Model(&Entry{}).Count(&entries).Error; err != nil {
		return 0, 0, fmt.Errorf("cache stats: %w", err)
	}
	var total struct{ Hits int64 }
	if err = c.db.Model(&Entry{}).Select("COALESCE(SUM(hits), 0) AS hits").Scan(&total).Error; err != nil {
		return 0, 0, fmt.Errorf("cache stats: %w", err)
	}
	return entries, total.Hits, nil
}

// Prune deletes entries not written since before.
func (c *Cache) Prune(before time.Time) (int64, error) {
	res := c.db.Where("updated_at < ?", before).Delete(&Entry{})
	if res.Error != nil {
		return 0, fmt.Errorf("cache prune: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (c *Cache) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
