package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/habitgrid/internal/db"
	"gorm.io/gorm"
)

var (
	// ErrHabitNotFound 在指定习惯不存在时返回
	ErrHabitNotFound = errors.New("habit not found")
	// ErrHabitInvalidTarget 当低频目标配置异常时返回
	ErrHabitInvalidTarget = errors.New("invalid habit target configuration")
	// ErrHabitNestedParent 当尝试把子习惯挂到另一个子习惯下时返回
	ErrHabitNestedParent = errors.New("habit nesting is limited to one level")
)

// HabitService 负责 Habit 数据的增删改查
// 主要服务于看板数据装配，保持与 handler 解耦
// 低频目标通过 TargetTimes/TargetPeriodDays 描述，两者同时为零表示日常习惯
// Status 仅使用 active/inactive，默认 active
type HabitService struct {
	db *gorm.DB
}

// HabitFilter 描述列表过滤条件
type HabitFilter struct {
	Status     string
	CategoryID *uint
	Search     string
}

// HabitInput 定义创建/更新习惯时可配置字段
type HabitInput struct {
	Name             string
	Description      string
	CategoryID       *uint
	ParentID         *uint
	TargetTimes      int
	TargetPeriodDays int
	OnTrackWhenGray  bool
	GoalCount        int
	Position         int
	Status           string
}

// NewHabitService 构造 HabitService
func NewHabitService(gdb *gorm.DB) *HabitService {
	return &HabitService{db: gdb}
}

// List 返回习惯集合，支持基本筛选
func (s *HabitService) List(filter HabitFilter) ([]db.Habit, error) {
	var habits []db.Habit

	query := s.db.Model(&db.Habit{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.Search != "" {
		like := fmt.Sprintf("%%%s%%", strings.TrimSpace(filter.Search))
		query = query.Where("name LIKE ? OR description LIKE ?", like, like)
	}

	if err := query.Order("position ASC, created_at ASC").Find(&habits).Error; err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}

	return habits, nil
}

// Get 根据 ID 获取习惯
func (s *HabitService) Get(id uint) (*db.Habit, error) {
	var habit db.Habit
	if err := s.db.Preload("Children").First(&habit, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHabitNotFound
		}
		return nil, fmt.Errorf("get habit: %w", err)
	}
	return &habit, nil
}

// Create 新建习惯
func (s *HabitService) Create(input HabitInput) (*db.Habit, error) {
	if err := s.validateHabitInput(input); err != nil {
		return nil, err
	}

	habit := db.Habit{
		Name:             strings.TrimSpace(input.Name),
		Description:      strings.TrimSpace(input.Description),
		CategoryID:       input.CategoryID,
		ParentID:         input.ParentID,
		TargetTimes:      input.TargetTimes,
		TargetPeriodDays: input.TargetPeriodDays,
		OnTrackWhenGray:  input.OnTrackWhenGray,
		GoalCount:        input.GoalCount,
		Position:         input.Position,
		Status:           normalizeStatus(input.Status),
	}

	if err := s.db.Create(&habit).Error; err != nil {
		return nil, fmt.Errorf("create habit: %w", err)
	}
	return &habit, nil
}

// Update 更新习惯
func (s *HabitService) Update(id uint, input HabitInput) (*db.Habit, error) {
	if err := s.validateHabitInput(input); err != nil {
		return nil, err
	}

	var existing db.Habit
	if err := s.db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHabitNotFound
		}
		return nil, fmt.Errorf("find habit: %w", err)
	}

	existing.Name = strings.TrimSpace(input.Name)
	existing.Description = strings.TrimSpace(input.Description)
	existing.CategoryID = input.CategoryID
	existing.ParentID = input.ParentID
	existing.TargetTimes = input.TargetTimes
	existing.TargetPeriodDays = input.TargetPeriodDays
	existing.OnTrackWhenGray = input.OnTrackWhenGray
	existing.GoalCount = input.GoalCount
	existing.Position = input.Position
	existing.Status = normalizeStatus(input.Status)

	if err := s.db.Save(&existing).Error; err != nil {
		return nil, fmt.Errorf("update habit: %w", err)
	}
	return &existing, nil
}

// Delete 删除习惯及其打卡记录
func (s *HabitService) Delete(id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("habit_id = ?", id).Delete(&db.HabitEntry{}).Error; err != nil {
			return err
		}
		// 子习惯脱离父级而不是级联删除
		if err := tx.Model(&db.Habit{}).Where("parent_id = ?", id).Update("parent_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&db.Habit{}, id).Error
	})
	if err != nil {
		return fmt.Errorf("delete habit: %w", err)
	}
	return nil
}

func (s *HabitService) validateHabitInput(input HabitInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return fmt.Errorf("habit name is required")
	}

	// 低频目标要么都为零（日常习惯），要么都为正
	if (input.TargetTimes > 0) != (input.TargetPeriodDays > 0) {
		return fmt.Errorf("%w: times and period must be set together", ErrHabitInvalidTarget)
	}
	if input.TargetTimes < 0 || input.TargetPeriodDays < 0 || input.GoalCount < 0 {
		return fmt.Errorf("%w: negative values are not allowed", ErrHabitInvalidTarget)
	}

	if input.ParentID != nil {
		var parent db.Habit
		if err := s.db.First(&parent, *input.ParentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrHabitNotFound
			}
			return fmt.Errorf("find parent habit: %w", err)
		}
		if parent.ParentID != nil {
			return ErrHabitNestedParent
		}
	}

	return nil
}

func normalizeStatus(status string) string {
	status = strings.TrimSpace(strings.ToLower(status))
	if status != "inactive" {
		return "active"
	}
	return "inactive"
}
