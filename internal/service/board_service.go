package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/habitgrid/internal/db"
	"github.com/habitgrid/internal/scoring"
	"gorm.io/gorm"
)

// ErrUnknownScoreRange 在请求了未知的打分区间时返回
var ErrUnknownScoreRange = errors.New("unknown score range")

// 预设打分区间
const (
	RangeToday = "today"
	RangeMonth = "month"
	RangeYear  = "year"
	RangeAll   = "all"
)

// BoardService 把存储层的习惯和打卡记录装配成引擎快照，并驱动打分/连胜计算
// 引擎本身无状态，每次请求都基于当前数据重新计算
type BoardService struct {
	db       *gorm.DB
	settings *SettingService
}

// NewBoardService 构造 BoardService
func NewBoardService(gdb *gorm.DB) *BoardService {
	return &BoardService{db: gdb, settings: NewSettingService(gdb)}
}

// Snapshot 装配引擎消费的习惯快照：active 习惯加全量打卡记录，子习惯嵌到父习惯下
// 返回的列表只含顶层习惯（父习惯与无父级的普通习惯）
func (s *BoardService) Snapshot() ([]*scoring.Habit, error) {
	var habits []db.Habit
	if err := s.db.Where("status = ?", "active").
		Order("position ASC, created_at ASC").
		Find(&habits).Error; err != nil {
		return nil, fmt.Errorf("load habits: %w", err)
	}

	var entries []db.HabitEntry
	if err := s.db.Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("load habit entries: %w", err)
	}

	entryMap := make(map[uint]map[string]scoring.Entry)
	for _, entry := range entries {
		byDate, ok := entryMap[entry.HabitID]
		if !ok {
			byDate = make(map[string]scoring.Entry)
			entryMap[entry.HabitID] = byDate
		}
		// sqlite 往返可能把时间还原成 UTC，按本地时区取回日期键
		byDate[scoring.DateKey(entry.EntryDate.In(time.Local))] = scoring.Entry{
			Status: scoring.Status(entry.Status),
			Count:  entry.Count,
			Note:   entry.Note,
		}
	}

	snapshots := make(map[uint]*scoring.Habit, len(habits))
	for _, habit := range habits {
		snap := &scoring.Habit{
			ID:              habit.ID,
			Name:            habit.Name,
			CategoryID:      habit.CategoryID,
			OnTrackWhenGray: habit.OnTrackWhenGray,
			GoalCount:       habit.GoalCount,
			CreatedAt:       habit.CreatedAt.In(time.Local),
			Entries:         entryMap[habit.ID],
		}
		if habit.TargetTimes > 0 && habit.TargetPeriodDays > 0 {
			snap.Frequency = &scoring.Frequency{
				Times:      habit.TargetTimes,
				PeriodDays: habit.TargetPeriodDays,
			}
		}
		snapshots[habit.ID] = snap
	}

	roots := make([]*scoring.Habit, 0, len(habits))
	for _, habit := range habits {
		snap := snapshots[habit.ID]
		if habit.ParentID != nil {
			if parent, ok := snapshots[*habit.ParentID]; ok {
				parent.Children = append(parent.Children, snap)
				continue
			}
		}
		roots = append(roots, snap)
	}

	return roots, nil
}

// Matrix 返回 [start, end] 区间内所有顶层习惯的展示状态表
func (s *BoardService) Matrix(start, end, now time.Time) (map[uint]map[string]scoring.Status, error) {
	habits, err := s.Snapshot()
	if err != nil {
		return nil, err
	}

	settings, err := s.settings.GetSettings()
	if err != nil {
		return nil, err
	}

	return scoring.StatusMatrix(habits, scoring.DateRange(start, end), now, settings), nil
}

// ScoreRange 按预设区间打分：today/month/year/all
func (s *BoardService) ScoreRange(kind string, now time.Time) (scoring.CompletionScore, error) {
	habits, today, err := s.snapshotWithToday(now)
	if err != nil {
		return scoring.CompletionScore{}, err
	}

	var start time.Time
	switch kind {
	case RangeToday:
		start = today
	case RangeMonth:
		start = time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	case RangeYear:
		start = time.Date(today.Year(), 1, 1, 0, 0, 0, 0, today.Location())
	case RangeAll:
		start = earliestCreation(habits, today)
	default:
		return scoring.CompletionScore{}, fmt.Errorf("%w: %s", ErrUnknownScoreRange, kind)
	}

	return scoring.Score(habits, scoring.DateRange(start, today), today), nil
}

// ScoreDates 对调用方给定的任意日期列表打分
func (s *BoardService) ScoreDates(dates []time.Time, now time.Time) (scoring.CompletionScore, error) {
	habits, today, err := s.snapshotWithToday(now)
	if err != nil {
		return scoring.CompletionScore{}, err
	}
	return scoring.Score(habits, dates, today), nil
}

// Streaks 计算单个习惯的连胜，父习惯基于子习惯状态
func (s *BoardService) Streaks(habitID uint, now time.Time) (scoring.StreakResult, error) {
	habits, today, err := s.snapshotWithToday(now)
	if err != nil {
		return scoring.StreakResult{}, err
	}

	for _, habit := range habits {
		if habit.ID == habitID {
			return scoring.Streaks(habit, today), nil
		}
		for _, child := range habit.Children {
			if child.ID == habitID {
				return scoring.Streaks(child, today), nil
			}
		}
	}

	return scoring.StreakResult{}, ErrHabitNotFound
}

// CategoryDials 计算每个分类今天的表盘数据，键为分类 ID，0 表示未分类
func (s *BoardService) CategoryDials(now time.Time) (map[uint]scoring.DialScore, error) {
	habits, today, err := s.snapshotWithToday(now)
	if err != nil {
		return nil, err
	}

	grouped := make(map[uint][]*scoring.Habit)
	for _, habit := range habits {
		key := uint(0)
		if habit.CategoryID != nil {
			key = *habit.CategoryID
		}
		grouped[key] = append(grouped[key], habit)
	}

	dials := make(map[uint]scoring.DialScore, len(grouped))
	for categoryID, group := range grouped {
		dials[categoryID] = scoring.ScoreDial(group, today, today)
	}

	return dials, nil
}

func (s *BoardService) snapshotWithToday(now time.Time) ([]*scoring.Habit, time.Time, error) {
	habits, err := s.Snapshot()
	if err != nil {
		return nil, time.Time{}, err
	}

	settings, err := s.settings.GetSettings()
	if err != nil {
		return nil, time.Time{}, err
	}

	return habits, scoring.EffectiveDate(now, settings.DayBoundaryHour), nil
}

// earliestCreation 返回快照中最早的创建日期，空列表时回退到今天
func earliestCreation(habits []*scoring.Habit, today time.Time) time.Time {
	earliest := today
	for _, habit := range habits {
		candidates := append([]*scoring.Habit{habit}, habit.Children...)
		for _, candidate := range candidates {
			if candidate.CreatedAt.IsZero() {
				continue
			}
			created := scoring.Normalize(candidate.CreatedAt)
			if created.Before(earliest) {
				earliest = created
			}
		}
	}
	return earliest
}
