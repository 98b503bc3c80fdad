package orm

import (
	"database/sql"
	"log"
	"os"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/pescuma/dailyloc/lib/consoles"
	"github.com/pescuma/dailyloc/lib/model"
	"github.com/pescuma/dailyloc/lib/storages"
)

type gormStorage struct {
	db      *gorm.DB
	console consoles.Console
}

func NewGormStorage(d gorm.Dialector, console consoles.Console) (storages.Storage, error) {
	l := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(d, &gorm.Config{
		Logger: l,
	})
	if err != nil {
		return nil, err
	}

	// Only one writer, and :memory: databases are per connection
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	result := &gormStorage{
		db:      db,
		console: console,
	}

	err = result.migrate()
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	return result, nil
}

func (s *gormStorage) migrate() error {
	m := s.db.Migrator()

	if !m.HasTable(&sqlDailyLoc{}) {
		return m.CreateTable(&sqlDailyLoc{})
	}

	if !m.HasColumn(&sqlDailyLoc{}, "Commits") {
		s.console.Printf("Adding commits column to daily_loc...\n")

		err := m.AddColumn(&sqlDailyLoc{}, "Commits")
		if err != nil {
			return errors.Wrap(err, "error adding commits column")
		}
	}

	return nil
}

func (s *gormStorage) Close() error {
	db, err := s.db.DB()
	if err != nil {
		return err
	}

	return db.Close()
}

func (s *gormStorage) LoadLastDay() (*time.Time, error) {
	var last sql.NullString

	err := s.db.Model(&sqlDailyLoc{}).Select("MAX(date)").Row().Scan(&last)
	if err != nil {
		return nil, err
	}

	if !last.Valid || last.String == "" {
		return nil, nil
	}

	day, err := model.ParseDay(last.String)
	if err != nil {
		return nil, err
	}

	return &day, nil
}

func (s *gormStorage) LoadDailyRecords(from, to *time.Time) ([]*model.DailyRecord, error) {
	q := s.db.Order("date")
	if from != nil {
		q = q.Where("date >= ?", model.FormatDay(*from))
	}
	if to != nil {
		q = q.Where("date <= ?", model.FormatDay(*to))
	}

	var rows []*sqlDailyLoc
	err := q.Find(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make([]*model.DailyRecord, 0, len(rows))
	for _, row := range rows {
		r, err := row.ToModel()
		if err != nil {
			return nil, err
		}

		result = append(result, r)
	}

	return result, nil
}

var dailyLocUpdateColumns = []string{"additions", "deletions", "commits", "net", "updated_at"}

func (s *gormStorage) WriteDailyRecord(record *model.DailyRecord) error {
	row := newSqlDailyLoc(record)

	return s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "date"}},
			DoUpdates: clause.AssignmentColumns(dailyLocUpdateColumns),
		}).Create(row).Error
	})
}

func (s *gormStorage) DeleteDailyRecordsFrom(day time.Time) (int64, error) {
	var deleted int64

	err := s.db.Transaction(func(tx *gorm.DB) error {
		r := tx.Where("date >= ?", model.FormatDay(day)).Delete(&sqlDailyLoc{})
		deleted = r.RowsAffected
		return r.Error
	})
	if err != nil {
		return 0, err
	}

	return deleted, nil
}
