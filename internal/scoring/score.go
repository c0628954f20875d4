package scoring

import (
	"math"
	"time"
)

// Score 对一组习惯在给定日期列表上的完成度打分
// na/exempt 不进入分母；有效今天的空格不计入（尚未打卡不算失败也不算完成）；
// complete/extra 记 1 分，partial 记 0.5 分，百分比四舍五入，分母为零时为 0
func Score(habits []*Habit, dates []time.Time, effectiveToday time.Time) CompletionScore {
	var score CompletionScore
	today := Normalize(effectiveToday)
	points := 0.0

	for _, h := range habits {
		for _, date := range dates {
			day := Normalize(date)
			status := cellStatus(h, day)

			if isExcluded(status) {
				score.ExcludedCount++
				continue
			}
			if status == StatusEmpty && day.Equal(today) {
				continue
			}

			score.TotalCount++
			switch status {
			case StatusComplete, StatusExtra:
				score.CompletedCount++
				points++
			case StatusPartial:
				score.PartialCount++
				points += 0.5
			}
		}
	}

	score.Percentage = roundPercent(points, score.TotalCount)
	return score
}

// ScoreDial 是分类表盘使用的单日打分：
// "今天还不需要做"的习惯不再被静默丢弃，而是落入 NotExpected 桶；
// 完成率依旧只在"今天确实需要做"的习惯上计算
func ScoreDial(habits []*Habit, date, effectiveToday time.Time) DialScore {
	var dial DialScore
	day := Normalize(date)
	today := Normalize(effectiveToday)
	points := 0.0

	for _, h := range habits {
		status := cellStatus(h, day)

		if isExcluded(status) {
			dial.ExcludedCount++
			continue
		}
		if status == StatusEmpty && day.Equal(today) {
			if h != nil && h.OnTrackWhenGray && h.Frequency != nil && IsOnTrack(h, day) {
				dial.NotExpectedCount++
			}
			continue
		}

		dial.TotalCount++
		switch status {
		case StatusComplete, StatusExtra:
			dial.CompletedCount++
			points++
		case StatusPartial:
			dial.PartialCount++
			points += 0.5
		}
	}

	dial.Percentage = roundPercent(points, dial.TotalCount)
	dial.NotExpectedPercentage = roundPercent(float64(dial.NotExpectedCount), dial.TotalCount+dial.NotExpectedCount)
	return dial
}

// roundPercent 计算四舍五入后的整数百分比，counted 为零时返回 0 而不是 NaN
func roundPercent(points float64, counted int) int {
	if counted <= 0 {
		return 0
	}
	return int(math.Floor(100*points/float64(counted) + 0.5))
}
