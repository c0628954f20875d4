package scoring

import (
	"math"
	"time"
)

// IsOnTrack 判断低频习惯截至 asOf 是否仍在节奏上
// 统计以 asOf 前一天为终点、长度为 PeriodDays 的滑动窗口内的 complete/extra 次数：
// 已达到目标次数即视为在节奏上；否则看当前周期（以创建日为锚点切分）剩余天数是否仍够补齐目标。
// 无频率配置的日常习惯永远返回 false
func IsOnTrack(h *Habit, asOf time.Time) bool {
	if h == nil || h.Frequency == nil {
		return false
	}

	times := h.Frequency.Times
	period := h.Frequency.PeriodDays
	if times <= 0 || period <= 0 {
		return false
	}

	day := Normalize(asOf)

	done := 0
	for i := 1; i <= period; i++ {
		if isSuccess(RawStatus(h, day.AddDate(0, 0, -i))) {
			done++
		}
	}
	if done >= times {
		return true
	}

	// 当前周期从最近一个锚点日开始，asOf 当天还可以打卡
	elapsed := 0
	anchor := streakStart(h)
	if !anchor.IsZero() && anchor.Before(day) {
		elapsed = daysBetween(anchor, day) % period
	}
	remaining := period - elapsed

	donePeriod := 0
	for i := 1; i <= elapsed; i++ {
		if isSuccess(RawStatus(h, day.AddDate(0, 0, -i))) {
			donePeriod++
		}
	}

	return donePeriod+remaining >= times
}

// daysBetween 返回两个零点日期间隔的整天数
func daysBetween(from, to time.Time) int {
	return int(math.Round(to.Sub(from).Hours() / 24))
}
