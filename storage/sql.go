package storage

import (
	"errors"
	"time"

	"github.com/samber/lo"
	"gorm.io/gorm"

	"rsistrat/model"
)

type SQL struct {
	db *gorm.DB
}

// FromSQL creates a new SQL connection for the signal journal. Example of usage:
//
//	import "github.com/glebarez/sqlite"
//	storage, err := storage.FromSQL(sqlite.Open("signals.db"), &gorm.Config{})
//	if err != nil {
//	}
func FromSQL(dialect gorm.Dialector, opts ...gorm.Option) (*SQL, error) {
	db, err := gorm.Open(dialect, opts...)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	err = db.AutoMigrate(&model.SignalRecord{})
	if err != nil {
		return nil, err
	}

	return &SQL{
		db: db,
	}, nil
}

func (s *SQL) ResetTables() error {
	tables := []interface{}{
		&model.SignalRecord{},
	}

	for _, table := range tables {
		err := s.db.Migrator().DropTable(table)
		if err != nil {
			return err
		}
	}

	for _, table := range tables {
		err := s.db.AutoMigrate(table)
		if err != nil {
			return err
		}
	}
	return nil
}

// CreateSignals stores the signals, replacing a stored signal of the same
// pair, timeframe, side, settings index and bar time.
func (s *SQL) CreateSignals(signals []*model.SignalRecord) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, signal := range signals {
			og := model.SignalRecord{}
			err := tx.Where("pair=?", signal.Pair).
				Where("timeframe=?", signal.Timeframe).
				Where("side=?", signal.Side).
				Where("settings_index=?", signal.SettingsIndex).
				Where("bar_time=?", signal.BarTime).
				First(&og).Error
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			if og.ID > 0 {
				signal.ID = og.ID
				signal.CreatedAt = og.CreatedAt
				if err := tx.Save(signal).Error; err != nil {
					return err
				}
				continue
			}
			if err := tx.Create(signal).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Signals returns the stored signals in bar time order, keeping those that
// pass every filter.
func (s *SQL) Signals(filters ...SignalFilter) ([]*model.SignalRecord, error) {
	signals := make([]*model.SignalRecord, 0)
	result := s.db.Order("bar_time, settings_index").Find(&signals)
	if result.Error != nil && result.Error != gorm.ErrRecordNotFound {
		return signals, result.Error
	}

	return lo.Filter(signals, func(signal *model.SignalRecord, _ int) bool {
		for _, filter := range filters {
			if !filter(*signal) {
				return false
			}
		}
		return true
	}), nil
}
