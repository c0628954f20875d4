package service

import (
	"errors"
	"testing"
	"time"

	"github.com/habitgrid/internal/db"
	"github.com/habitgrid/internal/scoring"
)

// backdate 将习惯的创建时间改写为固定日期，保证用例与真实时钟无关
func backdate(t *testing.T, habitID uint, created time.Time) {
	t.Helper()
	if err := db.DB.Model(&db.Habit{}).Where("id = ?", habitID).Update("created_at", created).Error; err != nil {
		t.Fatalf("failed to backdate habit: %v", err)
	}
}

func seedEntry(t *testing.T, svc *EntryService, habitID uint, date, status string) {
	t.Helper()
	day, err := time.ParseInLocation(scoring.DateFormat, date, time.Local)
	if err != nil {
		t.Fatalf("bad date %s: %v", date, err)
	}
	if _, err := svc.Upsert(EntryInput{HabitID: habitID, EntryDate: day, Status: status}); err != nil {
		t.Fatalf("failed to seed entry: %v", err)
	}
}

func TestBoardServiceScoreAndStreaks(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	habitSvc := NewHabitService(db.DB)
	entrySvc := NewEntryService(db.DB)
	board := NewBoardService(db.DB)

	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
	habit, err := habitSvc.Create(HabitInput{Name: "晨跑"})
	if err != nil {
		t.Fatalf("failed to create habit: %v", err)
	}
	backdate(t, habit.ID, created)

	seedEntry(t, entrySvc, habit.ID, "2024-01-01", "complete")
	seedEntry(t, entrySvc, habit.ID, "2024-01-02", "complete")
	seedEntry(t, entrySvc, habit.ID, "2024-01-03", "missed")
	seedEntry(t, entrySvc, habit.ID, "2024-01-04", "complete")

	now := time.Date(2024, 1, 5, 8, 0, 0, 0, time.Local)

	columns := []time.Time{
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local),
		time.Date(2024, 1, 2, 0, 0, 0, 0, time.Local),
		time.Date(2024, 1, 3, 0, 0, 0, 0, time.Local),
		time.Date(2024, 1, 4, 0, 0, 0, 0, time.Local),
	}
	score, err := board.ScoreDates(columns, now)
	if err != nil {
		t.Fatalf("ScoreDates returned error: %v", err)
	}
	if score.TotalCount != 4 || score.CompletedCount != 3 || score.Percentage != 75 {
		t.Fatalf("unexpected score: %+v", score)
	}

	streaks, err := board.Streaks(habit.ID, now)
	if err != nil {
		t.Fatalf("Streaks returned error: %v", err)
	}
	if streaks.Best != 2 || streaks.Current != 1 {
		t.Fatalf("unexpected streaks: %+v", streaks)
	}
}

func TestBoardServiceScoreRange(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	habitSvc := NewHabitService(db.DB)
	entrySvc := NewEntryService(db.DB)
	board := NewBoardService(db.DB)

	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
	habit, err := habitSvc.Create(HabitInput{Name: "写日记"})
	if err != nil {
		t.Fatalf("failed to create habit: %v", err)
	}
	backdate(t, habit.ID, created)

	seedEntry(t, entrySvc, habit.ID, "2024-01-01", "complete")
	seedEntry(t, entrySvc, habit.ID, "2024-01-02", "complete")

	now := time.Date(2024, 1, 3, 8, 0, 0, 0, time.Local)

	monthly, err := board.ScoreRange(RangeMonth, now)
	if err != nil {
		t.Fatalf("ScoreRange returned error: %v", err)
	}
	// 01-01 与 01-02 完成，01-03 是今天且为空，不计入
	if monthly.TotalCount != 2 || monthly.Percentage != 100 {
		t.Fatalf("unexpected monthly score: %+v", monthly)
	}

	all, err := board.ScoreRange(RangeAll, now)
	if err != nil {
		t.Fatalf("ScoreRange returned error: %v", err)
	}
	if all.TotalCount != 2 || all.Percentage != 100 {
		t.Fatalf("unexpected all-time score: %+v", all)
	}

	if _, err := board.ScoreRange("decade", now); !errors.Is(err, ErrUnknownScoreRange) {
		t.Fatalf("expected ErrUnknownScoreRange, got %v", err)
	}
}

func TestBoardServiceMatrixWithParent(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	habitSvc := NewHabitService(db.DB)
	entrySvc := NewEntryService(db.DB)
	board := NewBoardService(db.DB)

	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)

	parent, err := habitSvc.Create(HabitInput{Name: "任意运动"})
	if err != nil {
		t.Fatalf("failed to create parent: %v", err)
	}
	swim, err := habitSvc.Create(HabitInput{Name: "游泳", ParentID: &parent.ID})
	if err != nil {
		t.Fatalf("failed to create child: %v", err)
	}
	backdate(t, parent.ID, created)
	backdate(t, swim.ID, created)

	seedEntry(t, entrySvc, swim.ID, "2024-01-02", "complete")

	now := time.Date(2024, 1, 3, 8, 0, 0, 0, time.Local)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
	end := time.Date(2024, 1, 3, 0, 0, 0, 0, time.Local)

	matrix, err := board.Matrix(start, end, now)
	if err != nil {
		t.Fatalf("Matrix returned error: %v", err)
	}

	row, ok := matrix[parent.ID]
	if !ok {
		t.Fatal("expected parent row in matrix")
	}
	if row["2024-01-02"] != scoring.StatusComplete {
		t.Fatalf("parent should derive complete from child, got %s", row["2024-01-02"])
	}

	// 子习惯不单独出现在看板顶层
	if _, ok := matrix[swim.ID]; ok {
		t.Fatal("child habits must not appear as top-level rows")
	}

	streaks, err := board.Streaks(swim.ID, now)
	if err != nil {
		t.Fatalf("child streaks returned error: %v", err)
	}
	if streaks.Best != 1 {
		t.Fatalf("expected child best streak 1, got %d", streaks.Best)
	}
}

func TestBoardServiceCategoryDials(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	habitSvc := NewHabitService(db.DB)
	entrySvc := NewEntryService(db.DB)
	board := NewBoardService(db.DB)

	category := db.Category{Name: "健康"}
	if err := db.DB.Create(&category).Error; err != nil {
		t.Fatalf("failed to create category: %v", err)
	}

	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)

	done, err := habitSvc.Create(HabitInput{Name: "晨跑", CategoryID: &category.ID})
	if err != nil {
		t.Fatalf("failed to create habit: %v", err)
	}
	resting, err := habitSvc.Create(HabitInput{
		Name:             "游泳",
		CategoryID:       &category.ID,
		TargetTimes:      1,
		TargetPeriodDays: 7,
		OnTrackWhenGray:  true,
	})
	if err != nil {
		t.Fatalf("failed to create habit: %v", err)
	}
	backdate(t, done.ID, created)
	backdate(t, resting.ID, created)

	seedEntry(t, entrySvc, done.ID, "2024-01-05", "complete")
	seedEntry(t, entrySvc, resting.ID, "2024-01-04", "complete")

	now := time.Date(2024, 1, 5, 8, 0, 0, 0, time.Local)

	dials, err := board.CategoryDials(now)
	if err != nil {
		t.Fatalf("CategoryDials returned error: %v", err)
	}

	dial, ok := dials[category.ID]
	if !ok {
		t.Fatal("expected dial for category")
	}
	if dial.Percentage != 100 {
		t.Fatalf("expected 100%% for expected habits, got %d", dial.Percentage)
	}
	if dial.NotExpectedCount != 1 {
		t.Fatalf("expected 1 not-expected habit, got %d", dial.NotExpectedCount)
	}
}
