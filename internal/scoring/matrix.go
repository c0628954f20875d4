package scoring

import "time"

// StatusMatrix 为一组习惯和日期列计算展示状态表，供看板渲染
// 外层键为习惯 ID，内层键为 "2006-01-02" 日期
// 父习惯走 ComputedStatus，未来日期同样被压成 empty
func StatusMatrix(habits []*Habit, dates []time.Time, now time.Time, settings Settings) map[uint]map[string]Status {
	today := EffectiveDate(now, settings.DayBoundaryHour)

	matrix := make(map[uint]map[string]Status, len(habits))
	for _, h := range habits {
		row := make(map[string]Status, len(dates))
		for _, date := range dates {
			day := Normalize(date)
			if h.IsParent() {
				if day.After(today) {
					row[DateKey(day)] = StatusEmpty
				} else {
					row[DateKey(day)] = ComputedStatus(h, day)
				}
				continue
			}
			row[DateKey(day)] = DisplayStatus(h, day, today, settings.AutoMarkPink)
		}
		matrix[h.ID] = row
	}

	return matrix
}

// DateRange 展开 [start, end] 区间内的每一天，end 早于 start 时返回空列表
func DateRange(start, end time.Time) []time.Time {
	first := Normalize(start)
	last := Normalize(end)
	if last.Before(first) {
		return nil
	}

	days := make([]time.Time, 0, daysBetween(first, last)+1)
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		days = append(days, day)
	}
	return days
}
