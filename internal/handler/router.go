package handler

import "github.com/gin-gonic/gin"

// Handlers groups the handlers mounted under the API prefix.
type Handlers struct {
	Board    *BoardHandler
	Period   *PeriodHandler
	Subject  *SubjectHandler
	Snapshot *SnapshotHandler
	Export   *ExportHandler
	Metrics  *MetricsHandler
}

// RegisterRoutes mounts the planner API on api.
func RegisterRoutes(api *gin.RouterGroup, h Handlers) {
	board := api.Group("/board")
	board.GET("/cells/:periodId/:date/:slot", h.Board.Cell)
	board.POST("/drop", h.Board.Drop)
	board.POST("/assign", h.Board.Assign)
	board.POST("/unassign", h.Board.Unassign)
	board.POST("/move", h.Board.Move)
	board.POST("/commands", h.Board.Commands)
	board.GET("/used", h.Board.Used)
	board.GET("/available", h.Board.Available)

	periods := api.Group("/periods")
	periods.GET("", h.Period.List)
	periods.POST("", h.Period.Create)
	periods.GET("/:id", h.Period.Get)
	periods.DELETE("/:id", h.Period.Delete)
	periods.PUT("/:id/range", h.Period.UpdateRange)
	periods.PUT("/:id/meta", h.Period.UpdateMeta)
	periods.POST("/:id/activate", h.Period.Activate)
	periods.POST("/:id/prune", h.Period.Prune)
	periods.GET("/:id/calendar", h.Period.Calendar)
	periods.POST("/:id/slots", h.Period.AddSlot)
	periods.PUT("/:id/slots/:index", h.Period.UpdateSlot)
	periods.DELETE("/:id/slots/:index", h.Period.DeleteSlot)

	subjects := api.Group("/subjects")
	subjects.GET("", h.Subject.List)
	subjects.PUT("", h.Subject.Replace)
	subjects.POST("", h.Subject.Create)
	subjects.POST("/import", h.Subject.Import)
	subjects.PUT("/:id", h.Subject.Update)

	snapshot := api.Group("/snapshot")
	snapshot.GET("", h.Snapshot.Export)
	snapshot.PUT("", h.Snapshot.Import)
	snapshot.POST("/preset", h.Snapshot.Preset)
	snapshot.GET("/archives", h.Snapshot.ListArchives)
	snapshot.POST("/archives", h.Snapshot.CreateArchive)
	snapshot.POST("/archives/:id/restore", h.Snapshot.RestoreArchive)

	exports := api.Group("/exports")
	exports.GET("/files/:token", h.Export.Download)
	exports.DELETE("/cache", h.Export.PurgeCache)
	exports.GET("/:format", h.Export.Export)

	if h.Metrics != nil {
		api.GET("/stats", h.Metrics.Stats)
	}
}
