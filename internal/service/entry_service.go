package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/habitgrid/internal/db"
	"github.com/habitgrid/internal/scoring"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrEntryInvalidStatus 在写入未知状态时返回
	ErrEntryInvalidStatus = errors.New("invalid entry status")
	// ErrEntryOnParentHabit 父习惯不允许直接打卡
	ErrEntryOnParentHabit = errors.New("parent habits do not take entries")
)

// EntryService 负责打卡记录的写入与查询
type EntryService struct {
	db *gorm.DB
}

// EntryInput 定义打卡时的输入对象
// ClientToken 为幂等令牌，留空时由服务端生成 uuid
type EntryInput struct {
	HabitID     uint
	EntryDate   time.Time
	Status      string
	Count       int
	Note        string
	Source      string
	ClientToken string
}

// EntryFilter 指定查询区间
type EntryFilter struct {
	HabitID uint
	Start   time.Time
	End     time.Time
}

// NewEntryService 构造 EntryService
func NewEntryService(gdb *gorm.DB) *EntryService {
	return &EntryService{db: gdb}
}

// Upsert 处理幂等打卡逻辑：同习惯同日期已有记录则更新，否则创建
func (s *EntryService) Upsert(input EntryInput) (*db.HabitEntry, error) {
	// 纯计数打卡允许不带状态，由引擎按计数推导
	status := strings.TrimSpace(strings.ToLower(input.Status))
	if status != "" && !isKnownStatus(status) {
		return nil, fmt.Errorf("%w: %s", ErrEntryInvalidStatus, input.Status)
	}

	var children int64
	if err := s.db.Model(&db.Habit{}).Where("parent_id = ?", input.HabitID).Count(&children).Error; err != nil {
		return nil, fmt.Errorf("check habit children: %w", err)
	}
	if children > 0 {
		return nil, ErrEntryOnParentHabit
	}

	token := strings.TrimSpace(input.ClientToken)
	if token == "" {
		token = uuid.NewString()
	}

	record := db.HabitEntry{
		HabitID:     input.HabitID,
		EntryDate:   scoring.Normalize(input.EntryDate),
		Status:      status,
		Count:       input.Count,
		Note:        strings.TrimSpace(input.Note),
		Source:      strings.TrimSpace(input.Source),
		ClientToken: token,
	}

	if err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "habit_id"}, {Name: "entry_date"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "count", "note", "source", "client_token", "updated_at"}),
	}).Create(&record).Error; err != nil {
		return nil, fmt.Errorf("upsert habit entry: %w", err)
	}

	if err := s.db.Where("habit_id = ? AND entry_date = ?", record.HabitID, record.EntryDate).First(&record).Error; err != nil {
		return nil, fmt.Errorf("reload habit entry: %w", err)
	}

	return &record, nil
}

// Delete 删除指定打卡记录
func (s *EntryService) Delete(id uint) error {
	if err := s.db.Delete(&db.HabitEntry{}, id).Error; err != nil {
		return fmt.Errorf("delete habit entry: %w", err)
	}
	return nil
}

// ListBetween 返回指定区间内的打卡记录
func (s *EntryService) ListBetween(filter EntryFilter) ([]db.HabitEntry, error) {
	var entries []db.HabitEntry

	if filter.HabitID == 0 {
		return nil, fmt.Errorf("habit id is required")
	}

	start := scoring.Normalize(filter.Start)
	end := scoring.Normalize(filter.End)

	if err := s.db.Where("habit_id = ?", filter.HabitID).
		Where("entry_date BETWEEN ? AND ?", start, end).
		Order("entry_date ASC").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list habit entries: %w", err)
	}

	return entries, nil
}

func isKnownStatus(status string) bool {
	for _, known := range scoring.KnownStatuses {
		if status == string(known) {
			return true
		}
	}
	return false
}
