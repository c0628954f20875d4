package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/habitgrid/internal/service"
)

type settingsPayload struct {
	DayBoundaryHour int  `json:"day_boundary_hour"`
	AutoMarkPink    bool `json:"auto_mark_pink"`
}

// GetSettings 返回看板配置
func (a *API) GetSettings(c *gin.Context) {
	settings, err := a.settings.GetSettings()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "读取配置失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settingsPayload{
		DayBoundaryHour: settings.DayBoundaryHour,
		AutoMarkPink:    settings.AutoMarkPink,
	}})
}

// UpdateSettings 更新看板配置
func (a *API) UpdateSettings(c *gin.Context) {
	var payload settingsPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	settings, err := a.settings.UpdateSettings(service.SettingsInput{
		DayBoundaryHour: payload.DayBoundaryHour,
		AutoMarkPink:    payload.AutoMarkPink,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidBoundaryHour) {
			respondError(c, http.StatusBadRequest, "日界小时必须在 0 到 23 之间")
			return
		}
		respondError(c, http.StatusInternalServerError, "保存配置失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settingsPayload{
		DayBoundaryHour: settings.DayBoundaryHour,
		AutoMarkPink:    settings.AutoMarkPink,
	}})
}
