package scoring

import "time"

// Streaks 计算习惯的当前连胜与历史最长连胜
// 两个值都按"连续的日历天"逐日扫描，而不是只看已有记录：
// complete/extra 延长连胜，na/exempt 对连胜不可见，其余状态打断；
// 唯一的例外是有效今天允许为空（今天还没打卡不算断）
func Streaks(h *Habit, effectiveToday time.Time) StreakResult {
	var result StreakResult
	if h == nil {
		return result
	}

	today := Normalize(effectiveToday)
	start := streakStart(h)
	if start.IsZero() || start.After(today) {
		return result
	}

	// 最长连胜：从起点正向扫描
	run := 0
	for day := start; !day.After(today); day = day.AddDate(0, 0, 1) {
		status := cellStatus(h, day)
		switch {
		case isSuccess(status):
			run++
			if run > result.Best {
				result.Best = run
			}
		case isExcluded(status):
			// 不延长也不打断
		default:
			run = 0
		}
	}

	// 当前连胜：从有效今天反向回溯
	for day := today; !day.Before(start); day = day.AddDate(0, 0, -1) {
		status := cellStatus(h, day)
		if isSuccess(status) {
			result.Current++
			continue
		}
		if isExcluded(status) {
			continue
		}
		if status == StatusEmpty && day.Equal(today) {
			continue
		}
		break
	}

	return result
}

// streakStart 返回连胜扫描的起点：优先用创建日期，缺失时回退到最早的记录日期
// 父习惯没有自身记录，回退时取所有子习惯中最早的一条
func streakStart(h *Habit) time.Time {
	if h == nil {
		return time.Time{}
	}

	if !h.CreatedAt.IsZero() {
		return Normalize(h.CreatedAt)
	}

	earliest := earliestEntryDate(h.Entries)
	for _, child := range h.Children {
		if childEarliest := earliestEntryDate(child.Entries); !childEarliest.IsZero() {
			if earliest.IsZero() || childEarliest.Before(earliest) {
				earliest = childEarliest
			}
		}
	}
	return earliest
}

func earliestEntryDate(entries map[string]Entry) time.Time {
	var earliest time.Time
	for key := range entries {
		day, err := time.ParseInLocation(DateFormat, key, time.Local)
		if err != nil {
			continue
		}
		if earliest.IsZero() || day.Before(earliest) {
			earliest = day
		}
	}
	return earliest
}
