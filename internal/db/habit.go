package db

import (
	"time"

	"gorm.io/gorm"
)

// Category 对应看板上的分类分组，Color/Position 仅透传给前端
type Category struct {
	gorm.Model
	Name     string
	Color    string
	Position int
}

// Habit 定义习惯模型
// TargetTimes/TargetPeriodDays 描述低频目标（每 N 天 M 次），两者同时为零表示日常习惯
// OnTrackWhenGray 控制低频习惯在节奏上时展示中性状态而不是漏打
// GoalCount 面向计数型习惯的每日数值目标
// ParentID 非空时为子习惯；父习惯自身不打卡，状态由子习惯推导，层级仅一层
// Status 预留 active/inactive 控制看板展示
type Habit struct {
	gorm.Model
	Name             string
	Description      string
	CategoryID       *uint
	Category         *Category `gorm:"constraint:OnDelete:SET NULL"`
	ParentID         *uint
	Children         []Habit `gorm:"foreignKey:ParentID"`
	TargetTimes      int
	TargetPeriodDays int
	OnTrackWhenGray  bool
	GoalCount        int
	Position         int
	Status           string
}

// HabitEntry 记录习惯某天的状态
// Habit + EntryDate 采用唯一索引保证每天至多一条；Status 为空时由 Count 推导
// Note 为 Markdown 备注，渲染在服务层完成
type HabitEntry struct {
	gorm.Model
	HabitID   uint      `gorm:"index;index:idx_habit_entry_unique,unique"`
	Habit     Habit     `gorm:"constraint:OnDelete:CASCADE"`
	EntryDate time.Time `gorm:"index:idx_habit_entry_unique,unique"`
	Status    string
	Count     int
	Note      string
	Source    string
	// ClientToken 为幂等令牌，客户端未提供时由服务端生成
	ClientToken string
}

// TableName 指定打卡记录表名
func (HabitEntry) TableName() string {
	return "habit_entries"
}
