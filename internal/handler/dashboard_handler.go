package handler

import (
	"net/http"

	"paroquia_connect/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

func (h *DashboardHandler) Get(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	d, err := h.service.Get(c.Request.Context(), actor)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *DashboardHandler) RegisterDashboardRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.GET("/dashboard", authMW, h.Get)
}
