package scoring

import "time"

// RawStatus 返回习惯在指定日期的原始状态，没有记录时为 empty
// 计数型习惯（GoalCount>0）在记录未显式标状态时按计数推导：达标为 complete，未达标但大于零为 partial
func RawStatus(h *Habit, date time.Time) Status {
	if h == nil || len(h.Entries) == 0 {
		return StatusEmpty
	}

	entry, ok := h.Entries[DateKey(Normalize(date))]
	if !ok {
		return StatusEmpty
	}

	if entry.Status != "" && entry.Status != StatusEmpty {
		return entry.Status
	}

	if h.GoalCount > 0 && entry.Count > 0 {
		if entry.Count >= h.GoalCount {
			return StatusComplete
		}
		return StatusPartial
	}

	return StatusEmpty
}

// DisplayStatus 计算某个格子的展示状态
// 分支顺序即优先级：未来日期永远不做推断；过去的空格只受 autoMarkPink 约束；
// gray_missed 推断只对有效今天生效
func DisplayStatus(h *Habit, date, effectiveToday time.Time, autoMarkPink bool) Status {
	day := Normalize(date)
	today := Normalize(effectiveToday)

	if day.After(today) {
		return StatusEmpty
	}

	raw := RawStatus(h, day)
	if raw != StatusEmpty {
		return raw
	}

	if day.Before(today) {
		if autoMarkPink {
			return StatusPink
		}
		return StatusEmpty
	}

	// day == today：低频且仍在节奏上的习惯展示为"今天还不需要做"
	if h != nil && h.OnTrackWhenGray && h.Frequency != nil && IsOnTrack(h, day) {
		return StatusGrayMissed
	}

	return StatusEmpty
}

// cellStatus 返回参与打分/连胜的状态：父习惯用子习惯推导，其余取原始状态
func cellStatus(h *Habit, date time.Time) Status {
	if h.IsParent() {
		return ComputedStatus(h, date)
	}
	return RawStatus(h, date)
}
