package service

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/habitgrid/internal/db"
	"github.com/habitgrid/internal/scoring"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrInvalidBoundaryHour 在日界小时越界时返回
// 引擎本身不做防御，[0,23] 校验必须发生在这里
var ErrInvalidBoundaryHour = errors.New("day boundary hour must be between 0 and 23")

// 未配置时的默认值：午夜日界，过去的空格自动标记
const (
	defaultDayBoundaryHour = 0
	defaultAutoMarkPink    = true
)

// SettingService 提供看板配置的读取与更新能力
type SettingService struct {
	db *gorm.DB
}

// SettingsInput 用于更新看板配置
type SettingsInput struct {
	DayBoundaryHour int
	AutoMarkPink    bool
}

// NewSettingService 构造 SettingService
func NewSettingService(gdb *gorm.DB) *SettingService {
	return &SettingService{db: gdb}
}

var settingKeys = []string{
	db.SettingKeyDayBoundaryHour,
	db.SettingKeyAutoMarkPink,
}

// GetSettings 读取看板配置，如未设置将返回默认值
func (s *SettingService) GetSettings() (scoring.Settings, error) {
	result := scoring.Settings{
		DayBoundaryHour: defaultDayBoundaryHour,
		AutoMarkPink:    defaultAutoMarkPink,
	}

	var records []db.TrackerSetting
	if err := s.db.Where("key IN ?", settingKeys).Find(&records).Error; err != nil {
		return result, fmt.Errorf("load tracker settings: %w", err)
	}

	for _, record := range records {
		switch record.Key {
		case db.SettingKeyDayBoundaryHour:
			if hour, err := strconv.Atoi(record.Value); err == nil && hour >= 0 && hour <= 23 {
				result.DayBoundaryHour = hour
			}
		case db.SettingKeyAutoMarkPink:
			if enabled, err := strconv.ParseBool(record.Value); err == nil {
				result.AutoMarkPink = enabled
			}
		}
	}

	return result, nil
}

// UpdateSettings 保存看板配置，日界小时越界时拒绝写入
func (s *SettingService) UpdateSettings(input SettingsInput) (scoring.Settings, error) {
	if input.DayBoundaryHour < 0 || input.DayBoundaryHour > 23 {
		return scoring.Settings{}, ErrInvalidBoundaryHour
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := upsertSetting(tx, db.SettingKeyDayBoundaryHour, strconv.Itoa(input.DayBoundaryHour)); err != nil {
			return err
		}
		return upsertSetting(tx, db.SettingKeyAutoMarkPink, strconv.FormatBool(input.AutoMarkPink))
	})
	if err != nil {
		return scoring.Settings{}, fmt.Errorf("update tracker settings: %w", err)
	}

	return scoring.Settings{
		DayBoundaryHour: input.DayBoundaryHour,
		AutoMarkPink:    input.AutoMarkPink,
	}, nil
}

func upsertSetting(tx *gorm.DB, key, value string) error {
	setting := db.TrackerSetting{Key: key, Value: value}
	if err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      value,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&setting).Error; err != nil {
		return fmt.Errorf("upsert setting %s: %w", key, err)
	}
	return nil
}
