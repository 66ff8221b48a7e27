package handler

import (
	"net/http"

	"paroquia_connect/internal/model"
	"paroquia_connect/internal/service"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	service service.ContactService
}

func NewContactHandler(s service.ContactService) *ContactHandler {
	return &ContactHandler{service: s}
}

// Send forwards the public contact form by email
func (h *ContactHandler) Send(c *gin.Context) {
	var req model.ContactRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.service.Send(c.Request.Context(), req); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Email enviado com sucesso!"})
}

func (h *ContactHandler) RegisterContactRoutes(rg *gin.RouterGroup) {
	rg.POST("/enviar-email", h.Send)
}
