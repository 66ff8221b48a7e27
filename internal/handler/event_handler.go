package handler

import (
	"net/http"

	"paroquia_connect/internal/model"
	"paroquia_connect/internal/service"

	"github.com/gin-gonic/gin"
)

// EventHandler handles events and their registrations
type EventHandler struct {
	service service.EventService
}

func NewEventHandler(s service.EventService) *EventHandler {
	return &EventHandler{service: s}
}

func (h *EventHandler) List(c *gin.Context) {
	events, err := h.service.List(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	event, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) Create(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	var req model.EventRequest
	if !bindJSON(c, &req) {
		return
	}

	event, err := h.service.Create(c.Request.Context(), actor, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Evento criado com sucesso!", "id": event.ID})
}

func (h *EventHandler) Update(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req model.EventRequest
	if !bindJSON(c, &req) {
		return
	}

	if _, err := h.service.Update(c.Request.Context(), actor, id, req); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Evento atualizado com sucesso!"})
}

func (h *EventHandler) Delete(c *gin.Context) {
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
	c.JSON(http.StatusOK, gin.H{"message": "Evento excluído"})
}

// Register signs a visitor up for an event; no login required
func (h *EventHandler) Register(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req model.RegistrationRequest
	if !bindJSON(c, &req) {
		return
	}

	if _, err := h.service.RegisterForEvent(c.Request.Context(), id, req); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Inscrição realizada com sucesso!"})
}

func (h *EventHandler) ListRegistrations(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	regs, err := h.service.ListRegistrations(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, regs)
}

// RegisterEventRoutes registers event routes
func (h *EventHandler) RegisterEventRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	events := rg.Group("/eventos")
	{
		events.GET("", h.List)
		events.GET("/:id", h.Get)
		events.POST("", authMW, h.Create)
		events.PUT("/:id", authMW, h.Update)
		events.DELETE("/:id", authMW, h.Delete)
		events.POST("/:id/inscricao", h.Register)
		events.GET("/:id/inscricoes", authMW, h.ListRegistrations)
	}
}
