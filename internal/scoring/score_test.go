package scoring

import (
	"reflect"
	"testing"
	"time"
)

func dates(values ...string) []time.Time {
	list := make([]time.Time, 0, len(values))
	for _, value := range values {
		list = append(list, day(value))
	}
	return list
}

func TestScoreBasicScenario(t *testing.T) {
	habit := newTestHabit("2024-01-01", map[string]Status{
		"2024-01-01": StatusComplete,
		"2024-01-02": StatusComplete,
		"2024-01-03": StatusMissed,
		"2024-01-04": StatusComplete,
	})
	today := day("2024-01-05")

	score := Score([]*Habit{habit}, dates("2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04"), today)

	if score.TotalCount != 4 {
		t.Fatalf("expected 4 counted cells, got %d", score.TotalCount)
	}
	if score.CompletedCount != 3 {
		t.Fatalf("expected 3 completed, got %d", score.CompletedCount)
	}
	if score.Percentage != 75 {
		t.Fatalf("expected 75%%, got %d", score.Percentage)
	}
}

func TestScoreRounding(t *testing.T) {
	habit := newTestHabit("2024-01-01", map[string]Status{
		"2024-01-01": StatusComplete,
		"2024-01-02": StatusMissed,
		"2024-01-03": StatusMissed,
	})
	today := day("2024-01-10")
	columns := dates("2024-01-01", "2024-01-02", "2024-01-03")

	if got := Score([]*Habit{habit}, columns, today).Percentage; got != 33 {
		t.Fatalf("1 of 3 should round to 33, got %d", got)
	}

	habit.Entries["2024-01-02"] = Entry{Status: StatusComplete}
	if got := Score([]*Habit{habit}, columns, today).Percentage; got != 67 {
		t.Fatalf("2 of 3 should round to 67, got %d", got)
	}
}

func TestScoreExclusionInvariant(t *testing.T) {
	habit := newTestHabit("2024-01-01", map[string]Status{
		"2024-01-01": StatusNA,
		"2024-01-02": StatusExempt,
		"2024-01-03": StatusComplete,
	})
	today := day("2024-01-10")

	score := Score([]*Habit{habit}, dates("2024-01-01", "2024-01-02", "2024-01-03"), today)

	if score.ExcludedCount != 2 {
		t.Fatalf("expected 2 excluded cells, got %d", score.ExcludedCount)
	}
	if score.TotalCount != 1 {
		t.Fatalf("na/exempt must stay out of the denominator, got %d", score.TotalCount)
	}
	if score.Percentage != 100 {
		t.Fatalf("expected 100%%, got %d", score.Percentage)
	}
}

func TestScorePartialCredit(t *testing.T) {
	habit := newTestHabit("2024-01-01", map[string]Status{
		"2024-01-01": StatusPartial,
		"2024-01-02": StatusComplete,
	})
	today := day("2024-01-10")

	score := Score([]*Habit{habit}, dates("2024-01-01", "2024-01-02"), today)

	if score.PartialCount != 1 {
		t.Fatalf("expected 1 partial, got %d", score.PartialCount)
	}
	// 0.5 + 1 分 / 2 格 = 75%
	if score.Percentage != 75 {
		t.Fatalf("expected 75%%, got %d", score.Percentage)
	}
}

func TestScoreTodayEmptySkipped(t *testing.T) {
	habit := newTestHabit("2024-01-01", map[string]Status{
		"2024-01-01": StatusComplete,
	})
	today := day("2024-01-02")

	score := Score([]*Habit{habit}, dates("2024-01-01", "2024-01-02"), today)

	if score.TotalCount != 1 {
		t.Fatalf("today's empty cell should not be counted, got %d", score.TotalCount)
	}
	if score.Percentage != 100 {
		t.Fatalf("expected 100%%, got %d", score.Percentage)
	}

	// 过去的空格照常计 0 分
	pastScore := Score([]*Habit{habit}, dates("2024-01-01", "2024-01-02"), day("2024-01-05"))
	if pastScore.TotalCount != 2 || pastScore.Percentage != 50 {
		t.Fatalf("past empty should count as zero: total=%d percentage=%d", pastScore.TotalCount, pastScore.Percentage)
	}
}

func TestScoreEmptyInputs(t *testing.T) {
	if got := Score(nil, nil, day("2024-01-01")).Percentage; got != 0 {
		t.Fatalf("no cells should score 0, got %d", got)
	}
}

func TestScoreIdempotent(t *testing.T) {
	habit := newTestHabit("2024-01-01", map[string]Status{
		"2024-01-01": StatusComplete,
		"2024-01-02": StatusPartial,
		"2024-01-03": StatusNA,
	})
	today := day("2024-01-05")
	columns := dates("2024-01-01", "2024-01-02", "2024-01-03")

	first := Score([]*Habit{habit}, columns, today)
	second := Score([]*Habit{habit}, columns, today)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical inputs must score identically: %+v vs %+v", first, second)
	}
}

func TestScoreDialNotExpectedBucket(t *testing.T) {
	today := day("2024-01-05")

	done := newTestHabit("2024-01-01", map[string]Status{"2024-01-05": StatusComplete})
	done.ID = 1

	// 低频且在节奏上：今天不需要做
	resting := newTestHabit("2024-01-01", map[string]Status{"2024-01-04": StatusComplete})
	resting.ID = 2
	resting.Frequency = &Frequency{Times: 1, PeriodDays: 7}
	resting.OnTrackWhenGray = true

	failed := newTestHabit("2024-01-01", map[string]Status{"2024-01-05": StatusMissed})
	failed.ID = 3

	dial := ScoreDial([]*Habit{done, resting, failed}, today, today)

	if dial.NotExpectedCount != 1 {
		t.Fatalf("expected 1 not-expected habit, got %d", dial.NotExpectedCount)
	}
	if dial.TotalCount != 2 {
		t.Fatalf("expected 2 expected cells, got %d", dial.TotalCount)
	}
	if dial.Percentage != 50 {
		t.Fatalf("expected percentage should ignore not-expected habits: got %d", dial.Percentage)
	}
	if dial.NotExpectedPercentage != 33 {
		t.Fatalf("expected 33%% not-expected arc, got %d", dial.NotExpectedPercentage)
	}
}
