package handler

import (
	"fmt"
	"net/http"

	"paroquia_connect/internal/model"
	"paroquia_connect/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminHandler handles account management; every route requires an admin
type AdminHandler struct {
	service service.AdminService
}

func NewAdminHandler(s service.AdminService) *AdminHandler {
	return &AdminHandler{service: s}
}

func (h *AdminHandler) List(c *gin.Context) {
	views, err := h.service.List(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (h *AdminHandler) Create(c *gin.Context) {
	var req model.CreateAccountRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Administrador criado", "id": user.ID})
}

func (h *AdminHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req model.UpdateAccountRequest
	if !bindJSON(c, &req) {
		return
	}
	if _, err := h.service.Update(c.Request.Context(), id, req); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Administrador %d atualizado com sucesso", id)})
}

func (h *AdminHandler) Delete(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), actor, id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Administrador %d excluído com sucesso", id)})
}

// RegisterAdminRoutes registers account management routes behind the given middlewares
func (h *AdminHandler) RegisterAdminRoutes(rg *gin.RouterGroup, mw ...gin.HandlerFunc) {
	admins := rg.Group("/admin_management/admins", mw...)
	{
		admins.GET("", h.List)
		admins.POST("", h.Create)
		admins.PUT("/:id", h.Update)
		admins.DELETE("/:id", h.Delete)
	}
}
