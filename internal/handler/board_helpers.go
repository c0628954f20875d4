package handler

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/habitgrid/internal/scoring"
)

// resolveNow 默认取当前时刻；now 参数（RFC3339）允许调用方固定时钟，保证可测
func resolveNow(c *gin.Context) time.Time {
	if raw := strings.TrimSpace(c.Query("now")); raw != "" {
		if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
			return parsed.In(time.Local)
		}
		if parsed, err := time.ParseInLocation(dateFormat, raw, time.Local); err == nil {
			return parsed
		}
	}
	return time.Now().In(time.Local)
}

// resolveRange 根据视图解析日期区间：weekly 对齐到周一，monthly 对齐到月初
func resolveRange(startStr, view string) (time.Time, time.Time) {
	var start time.Time
	var err error

	if startStr != "" {
		start, err = time.ParseInLocation(dateFormat, startStr, time.Local)
	}
	if err != nil || startStr == "" {
		today := time.Now()
		start = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	}

	switch strings.ToLower(view) {
	case "weekly":
		weekday := int(start.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		start = start.AddDate(0, 0, -weekday+1)
		end := start.AddDate(0, 0, 6)
		return start, end
	default:
		start = time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, start.Location())
		end := start.AddDate(0, 1, -1)
		return start, end
	}
}

func serializeScore(score scoring.CompletionScore) gin.H {
	return gin.H{
		"percentage":      score.Percentage,
		"completed_count": score.CompletedCount,
		"partial_count":   score.PartialCount,
		"total_count":     score.TotalCount,
		"excluded_count":  score.ExcludedCount,
	}
}

func uintKey(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
