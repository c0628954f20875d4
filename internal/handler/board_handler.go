package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/habitgrid/internal/service"
)

const defaultBoardView = "monthly"

// GetBoardMatrix 返回看板网格的展示状态表
// view=weekly|monthly 决定默认区间，start 可选指定区间起点
func (a *API) GetBoardMatrix(c *gin.Context) {
	view := c.DefaultQuery("view", defaultBoardView)
	start, end := resolveRange(c.Query("start"), view)
	now := resolveNow(c)

	matrix, err := a.board.Matrix(start, end, now)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "计算看板状态失败")
		return
	}

	rows := make(gin.H, len(matrix))
	for habitID, row := range matrix {
		cells := make(gin.H, len(row))
		for date, status := range row {
			cells[date] = string(status)
		}
		rows[uintKey(habitID)] = cells
	}

	c.JSON(http.StatusOK, gin.H{
		"range": gin.H{"start": start.Format(dateFormat), "end": end.Format(dateFormat), "view": view},
		"rows":  rows,
	})
}

// GetScores 返回完成度打分
// range=today|month|year|all 使用预设区间；dates=2006-01-02,... 指定任意日期列表
func (a *API) GetScores(c *gin.Context) {
	now := resolveNow(c)

	if rawDates := strings.TrimSpace(c.Query("dates")); rawDates != "" {
		dates := make([]time.Time, 0)
		for _, value := range strings.Split(rawDates, ",") {
			date, err := time.ParseInLocation(dateFormat, strings.TrimSpace(value), time.Local)
			if err != nil {
				respondError(c, http.StatusBadRequest, "无效的日期列表")
				return
			}
			dates = append(dates, date)
		}

		score, err := a.board.ScoreDates(dates, now)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "计算完成度失败")
			return
		}
		c.JSON(http.StatusOK, gin.H{"score": serializeScore(score)})
		return
	}

	kind := c.DefaultQuery("range", service.RangeToday)
	score, err := a.board.ScoreRange(kind, now)
	if err != nil {
		if errors.Is(err, service.ErrUnknownScoreRange) {
			respondError(c, http.StatusBadRequest, "未知的打分区间")
			return
		}
		respondError(c, http.StatusInternalServerError, "计算完成度失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"range": kind, "score": serializeScore(score)})
}

// GetStreaks 返回单个习惯的连胜统计
func (a *API) GetStreaks(c *gin.Context) {
	habitID, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的习惯ID")
		return
	}

	streaks, err := a.board.Streaks(habitID, resolveNow(c))
	if err != nil {
		if errors.Is(err, service.ErrHabitNotFound) {
			respondError(c, http.StatusNotFound, "习惯不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "计算连胜失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"habit_id": habitID,
		"streaks":  gin.H{"current": streaks.Current, "best": streaks.Best},
	})
}

// GetCategoryDials 返回每个分类今天的表盘数据
func (a *API) GetCategoryDials(c *gin.Context) {
	dials, err := a.board.CategoryDials(resolveNow(c))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "计算分类表盘失败")
		return
	}

	items := make(gin.H, len(dials))
	for categoryID, dial := range dials {
		items[uintKey(categoryID)] = gin.H{
			"score":                   serializeScore(dial.CompletionScore),
			"not_expected_count":      dial.NotExpectedCount,
			"not_expected_percentage": dial.NotExpectedPercentage,
		}
	}

	c.JSON(http.StatusOK, gin.H{"dials": items})
}
