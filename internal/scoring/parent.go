package scoring

import "time"

// ComputedStatus 从子习惯推导父习惯在指定日期的状态
// 优先级：任一子习惯 complete/extra 即为 complete（多个可选习惯完成其一即可）；
// 全部 na/exempt 时为 na；任一 partial 时为 partial；
// 否则有记录为 missed，完全无记录为 empty
func ComputedStatus(parent *Habit, date time.Time) Status {
	if !parent.IsParent() {
		return RawStatus(parent, date)
	}

	day := Normalize(date)
	allExcluded := true
	hasPartial := false
	hasEntry := false

	for _, child := range parent.Children {
		status := RawStatus(child, day)
		if isSuccess(status) {
			return StatusComplete
		}
		if !isExcluded(status) {
			allExcluded = false
		}
		if status == StatusPartial {
			hasPartial = true
		}
		if status != StatusEmpty {
			hasEntry = true
		}
	}

	if allExcluded {
		return StatusNA
	}
	if hasPartial {
		return StatusPartial
	}
	if hasEntry {
		return StatusMissed
	}
	return StatusEmpty
}
