// Package storage keeps the server-side counter rows in sqlite through gorm.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"tarotstats/internal/models"
	"tarotstats/internal/structures"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

var ErrNotFound = errors.New("record not found")

// UpsertFunc mutates rec inside the upsert transaction. created is true when
// rec did not exist before.
type UpsertFunc func(rec *UserStat, created bool) error

type RepositoryInterface interface {
	Upsert(fid int64, fn UpsertFunc) (*models.RemoteRecord, error)
	Get(fid int64) (*models.RemoteRecord, error)
	List() ([]*models.RemoteRecord, error)
	Count() (int64, error)
	ImportIfEmpty(rows []*models.RemoteRecord) (int, error)
	Close() error
}

type Repository struct {
	db *gorm.DB
}

func NewRepository(conf *structures.Config) (RepositoryInterface, error) {
	db, err := Open(conf.Store.DatabasePath, conf.Debug)
	if err != nil {
		return nil, err
	}
	return &Repository{db: db}, nil
}

// Open connects to the sqlite database at path and migrates the schema.
func Open(path string, debug bool) (*gorm.DB, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = "tarotstats.db"
	}
	if err := ensureParentDir(path); err != nil {
		return nil, err
	}

	level := gormlogger.Silent
	if debug {
		level = gormlogger.Info
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: gormlogger.Default.LogMode(level)})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// sqlite allows one writer; a single connection serializes transactions
	sqlDB.SetMaxOpenConns(1)

	if err = db.AutoMigrate(&UserStat{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

func (r *Repository) Upsert(fid int64, fn UpsertFunc) (*models.RemoteRecord, error) {
	var rec UserStat
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("fid = ?", fid).
			First(&rec)

		created := false
		switch {
		case errors.Is(res.Error, gorm.ErrRecordNotFound):
			rec = UserStat{FID: fid}
			created = true
		case res.Error != nil:
			return res.Error
		}

		if err := fn(&rec, created); err != nil {
			return err
		}
		rec.FID = fid
		if created {
			return tx.Create(&rec).Error
		}
		return tx.Save(&rec).Error
	})
	if err != nil {
		return nil, err
	}
	return rec.ToRemote(), nil
}

func (r *Repository) Get(fid int64) (*models.RemoteRecord, error) {
	var rec UserStat
	err := r.db.Where("fid = ?", fid).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec.ToRemote(), nil
}

// List returns all rows, most recently seen first.
func (r *Repository) List() ([]*models.RemoteRecord, error) {
	var rows []UserStat
	if err := r.db.Order("last_seen_ts DESC").Order("fid ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*models.RemoteRecord, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToRemote())
	}
	return out, nil
}

func (r *Repository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&UserStat{}).Count(&n).Error
	return n, err
}

// ImportIfEmpty loads rows into an empty table. A non-empty table is left
// untouched and 0 is returned.
func (r *Repository) ImportIfEmpty(rows []*models.RemoteRecord) (int, error) {
	imported := 0
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&UserStat{}).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
		for _, row := range rows {
			if row == nil || row.FID <= 0 {
				continue
			}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(fromRemote(row)).Error; err != nil {
				return err
			}
			imported++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return imported, nil
}

func (r *Repository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.New("database path parent is not a directory")
		}
		return nil
	}

	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}

	return err
}
