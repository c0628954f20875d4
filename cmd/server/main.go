package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/habitgrid/internal/config"
	"github.com/habitgrid/internal/db"
	"github.com/habitgrid/internal/handler"
	"github.com/habitgrid/internal/router"
)

func main() {
	cfg := config.Load()

	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// 设置并运行 Gin 服务器
	api := handler.NewAPI(db.DB)
	r := router.SetupRouter(api)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
