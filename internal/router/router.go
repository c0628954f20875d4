package router

import (
	"github.com/gin-gonic/gin"
	"github.com/habitgrid/internal/handler"
)

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(api *handler.API) *gin.Engine {
	r := gin.Default()

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// 看板与打分 API
	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/board/matrix", api.GetBoardMatrix)
		apiGroup.GET("/scores", api.GetScores)
		apiGroup.GET("/categories/dials", api.GetCategoryDials)

		apiGroup.GET("/habits", api.ListHabits)
		apiGroup.POST("/habits", api.CreateHabit)
		apiGroup.GET("/habits/:id", api.GetHabit)
		apiGroup.PUT("/habits/:id", api.UpdateHabit)
		apiGroup.DELETE("/habits/:id", api.DeleteHabit)

		apiGroup.GET("/habits/:id/streaks", api.GetStreaks)
		apiGroup.GET("/habits/:id/entries", api.ListEntries)
		apiGroup.POST("/habits/:id/entries", api.UpsertEntry)
		apiGroup.DELETE("/habits/:id/entries/:entryId", api.DeleteEntry)

		apiGroup.GET("/settings", api.GetSettings)
		apiGroup.PUT("/settings", api.UpdateSettings)
	}

	return r
}
