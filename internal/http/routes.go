package http

import (
	"github.com/gin-gonic/gin"

	"github.com/brandonleon/carbsmart/internal/middleware"
)

// registerAPIRoutes registers the JSON API. Reads and plans are public;
// pan mutations and the audit log need a principal when authentication is
// enabled.
func registerAPIRoutes(api *gin.RouterGroup, handler *Handler, cfg *RouterConfig) {
	if handler == nil {
		return
	}

	api.GET("/pans", handler.ListPans)
	api.GET("/pans/:id", handler.GetPan)
	api.POST("/calc", handler.Calc)
	api.POST("/serving-plan", handler.ServingPlan)

	private := api.Group("")
	if cfg.AuthEnabled {
		private.Use(middleware.RequirePrincipal())
	}
	private.POST("/pans", handler.CreatePan)
	private.PUT("/pans/:id", handler.UpdatePan)
	private.PATCH("/pans/:id", handler.UpdatePan)
	private.DELETE("/pans/:id", handler.DeletePan)

	if cfg.Logs != nil {
		private.GET("/logs", NewLogsHandler(cfg.Logs).List)
	}

	if cfg.AuthEnabled && cfg.Tokens != nil {
		api.POST("/auth/token", middleware.RequireAPIKey(), NewTokenHandler(cfg.Tokens).Issue)
	}
}

// registerWebRoutes registers the HTML pages. A read-only handler gets no
// form submission routes except the calculator.
func registerWebRoutes(router *gin.Engine, web *WebHandler) {
	router.GET("/", web.Index)
	router.GET("/pans", web.PansPage)
	router.GET("/calc", web.CalcPage)
	router.POST("/calc", web.CalcForm)

	if web.readOnly {
		return
	}
	router.POST("/pans", web.CreatePanForm)
	router.GET("/pans/:id/edit", web.EditPanPage)
	router.POST("/pans/:id", web.UpdatePanForm)
}
