package db

import "gorm.io/gorm"

// TrackerSetting 以键值对形式存放看板配置
type TrackerSetting struct {
	gorm.Model
	Key   string `gorm:"uniqueIndex"`
	Value string
}

// 看板配置键
const (
	SettingKeyDayBoundaryHour = "day_boundary_hour"
	SettingKeyAutoMarkPink    = "auto_mark_pink"
)
