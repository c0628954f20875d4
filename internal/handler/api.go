package handler

import (
	"github.com/habitgrid/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db       *gorm.DB
	habits   *service.HabitService
	entries  *service.EntryService
	board    *service.BoardService
	settings *service.SettingService
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB) *API {
	return &API{
		db:       gdb,
		habits:   service.NewHabitService(gdb),
		entries:  service.NewEntryService(gdb),
		board:    service.NewBoardService(gdb),
		settings: service.NewSettingService(gdb),
	}
}

// DB exposes the underlying gorm instance for legacy paths.
func (a *API) DB() *gorm.DB {
	return a.db
}
