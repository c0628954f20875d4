package scoring

import "time"

// EffectiveDate 根据日界小时把一个时刻折算为"有效日期"
// 当本地小时早于 boundaryHour 时仍算作前一天，boundaryHour=0 退化为普通的午夜边界
func EffectiveDate(now time.Time, boundaryHour int) time.Time {
	if now.Hour() < boundaryHour {
		now = now.AddDate(0, 0, -1)
	}
	return Normalize(now)
}

// IsEffectiveToday 判断给定日期是否就是 now 对应的有效今天
func IsEffectiveToday(date, now time.Time, boundaryHour int) bool {
	return Normalize(date).Equal(EffectiveDate(now, boundaryHour))
}
