package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/habitgrid/internal/db"
	"github.com/habitgrid/internal/service"
)

const dateFormat = "2006-01-02"

type habitPayload struct {
	Name             string `json:"name"`
	Description      string `json:"description"`
	CategoryID       *uint  `json:"category_id"`
	ParentID         *uint  `json:"parent_id"`
	TargetTimes      int    `json:"target_times"`
	TargetPeriodDays int    `json:"target_period_days"`
	OnTrackWhenGray  bool   `json:"on_track_when_gray"`
	GoalCount        int    `json:"goal_count"`
	Position         int    `json:"position"`
	Status           string `json:"status"`
}

type entryPayload struct {
	EntryDate   string `json:"entry_date"` // 2006-01-02
	Status      string `json:"status"`
	Count       int    `json:"count"`
	Note        string `json:"note"`
	ClientToken string `json:"client_token"`
}

// ListHabits 返回习惯列表 JSON
func (a *API) ListHabits(c *gin.Context) {
	filter := service.HabitFilter{
		Status: c.Query("status"),
		Search: c.Query("search"),
	}

	habits, err := a.habits.List(filter)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取习惯列表失败")
		return
	}

	items := make([]gin.H, 0, len(habits))
	for _, habit := range habits {
		items = append(items, habitToPayload(habit))
	}

	c.JSON(http.StatusOK, gin.H{"habits": items})
}

// GetHabit 返回单个习惯详情
func (a *API) GetHabit(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的习惯ID")
		return
	}

	habit, err := a.habits.Get(id)
	if err != nil {
		handleHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"habit": habitToPayload(*habit)})
}

// CreateHabit 创建习惯
func (a *API) CreateHabit(c *gin.Context) {
	var payload habitPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	habit, err := a.habits.Create(habitInputFromPayload(payload))
	if err != nil {
		handleHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"habit": habitToPayload(*habit)})
}

// UpdateHabit 更新习惯
func (a *API) UpdateHabit(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的习惯ID")
		return
	}

	var payload habitPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	habit, err := a.habits.Update(id, habitInputFromPayload(payload))
	if err != nil {
		handleHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"habit": habitToPayload(*habit)})
}

// DeleteHabit 删除习惯
func (a *API) DeleteHabit(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的习惯ID")
		return
	}

	if err := a.habits.Delete(id); err != nil {
		respondError(c, http.StatusInternalServerError, "删除习惯失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// UpsertEntry 提供快速打卡能力，同日期重复提交走更新
func (a *API) UpsertEntry(c *gin.Context) {
	habitID, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的习惯ID")
		return
	}

	var payload entryPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	if strings.TrimSpace(payload.EntryDate) == "" {
		respondError(c, http.StatusBadRequest, "请选择打卡日期")
		return
	}

	entryDate, err := time.ParseInLocation(dateFormat, payload.EntryDate, time.Local)
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的打卡日期")
		return
	}

	entry, err := a.entries.Upsert(service.EntryInput{
		HabitID:     habitID,
		EntryDate:   entryDate,
		Status:      payload.Status,
		Count:       payload.Count,
		Note:        payload.Note,
		Source:      "api",
		ClientToken: payload.ClientToken,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEntryInvalidStatus):
			respondError(c, http.StatusBadRequest, "无效的打卡状态")
		case errors.Is(err, service.ErrEntryOnParentHabit):
			respondError(c, http.StatusBadRequest, "父习惯不能直接打卡")
		default:
			respondError(c, http.StatusInternalServerError, "保存打卡记录失败")
		}
		return
	}

	serialized, err := serializeEntry(*entry)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "渲染打卡备注失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"entry": serialized})
}

// DeleteEntry 删除单条打卡
func (a *API) DeleteEntry(c *gin.Context) {
	habitID, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的习惯ID")
		return
	}

	entryID, err := parseUintParam(c, "entryId")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的打卡记录ID")
		return
	}

	if err := a.entries.Delete(entryID); err != nil {
		respondError(c, http.StatusInternalServerError, "删除打卡记录失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true, "habit_id": habitID})
}

// ListEntries 返回日期区间内的打卡记录
func (a *API) ListEntries(c *gin.Context) {
	habitID, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的习惯ID")
		return
	}

	start, err := time.ParseInLocation(dateFormat, c.Query("start"), time.Local)
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的开始日期")
		return
	}
	end, err := time.ParseInLocation(dateFormat, c.Query("end"), time.Local)
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的结束日期")
		return
	}

	entries, err := a.entries.ListBetween(service.EntryFilter{HabitID: habitID, Start: start, End: end})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取打卡记录失败")
		return
	}

	items := make([]gin.H, 0, len(entries))
	for _, entry := range entries {
		serialized, err := serializeEntry(entry)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "渲染打卡备注失败")
			return
		}
		items = append(items, serialized)
	}

	c.JSON(http.StatusOK, gin.H{"entries": items})
}

func habitInputFromPayload(payload habitPayload) service.HabitInput {
	return service.HabitInput{
		Name:             payload.Name,
		Description:      payload.Description,
		CategoryID:       payload.CategoryID,
		ParentID:         payload.ParentID,
		TargetTimes:      payload.TargetTimes,
		TargetPeriodDays: payload.TargetPeriodDays,
		OnTrackWhenGray:  payload.OnTrackWhenGray,
		GoalCount:        payload.GoalCount,
		Position:         payload.Position,
		Status:           payload.Status,
	}
}

func habitToPayload(habit db.Habit) gin.H {
	item := gin.H{
		"id":                 habit.ID,
		"name":               habit.Name,
		"description":        habit.Description,
		"target_times":       habit.TargetTimes,
		"target_period_days": habit.TargetPeriodDays,
		"on_track_when_gray": habit.OnTrackWhenGray,
		"goal_count":         habit.GoalCount,
		"position":           habit.Position,
		"status":             habit.Status,
	}

	if habit.CategoryID != nil {
		item["category_id"] = *habit.CategoryID
	}
	if habit.ParentID != nil {
		item["parent_id"] = *habit.ParentID
	}

	return item
}

func serializeEntry(entry db.HabitEntry) (gin.H, error) {
	noteHTML, err := service.RenderNote(entry.Note)
	if err != nil {
		return nil, err
	}

	item := gin.H{
		"id":           entry.ID,
		"habit_id":     entry.HabitID,
		"entry_date":   entry.EntryDate.In(time.Local).Format(dateFormat),
		"status":       entry.Status,
		"count":        entry.Count,
		"note":         entry.Note,
		"source":       entry.Source,
		"client_token": entry.ClientToken,
	}
	if noteHTML != "" {
		item["note_html"] = noteHTML
	}

	return item, nil
}

func handleHabitError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrHabitNotFound):
		respondError(c, http.StatusNotFound, "习惯不存在")
	case errors.Is(err, service.ErrHabitInvalidTarget):
		respondError(c, http.StatusBadRequest, "目标配置无效")
	case errors.Is(err, service.ErrHabitNestedParent):
		respondError(c, http.StatusBadRequest, "子习惯不能再嵌套")
	default:
		respondError(c, http.StatusInternalServerError, "操作失败")
	}
}
