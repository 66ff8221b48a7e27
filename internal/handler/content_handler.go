package handler

import (
	"net/http"

	"paroquia_connect/internal/model"
	"paroquia_connect/internal/service"

	"github.com/gin-gonic/gin"
)

// AgendaHandler handles the shared calendar
type AgendaHandler struct {
	service service.AgendaService
}

func NewAgendaHandler(s service.AgendaService) *AgendaHandler {
	return &AgendaHandler{service: s}
}

func (h *AgendaHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *AgendaHandler) Create(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	var req model.AgendaRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.service.Create(c.Request.Context(), actor, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Agendamento criado com sucesso!", "id": item.ID})
}

func (h *AgendaHandler) Update(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req model.AgendaRequest
	if !bindJSON(c, &req) {
		return
	}
	if _, err := h.service.Update(c.Request.Context(), actor, id, req); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Agendamento atualizado com sucesso!"})
}

func (h *AgendaHandler) Delete(c *gin.Context) {
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
	c.JSON(http.StatusOK, gin.H{"message": "Removido com sucesso!"})
}

func (h *AgendaHandler) RegisterAgendaRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	agenda := rg.Group("/agenda")
	{
		agenda.GET("", h.List)
		agenda.POST("", authMW, h.Create)
		agenda.PUT("/:id", authMW, h.Update)
		agenda.DELETE("/:id", authMW, h.Delete)
	}
}

// ScheduleHandler handles the public schedule
type ScheduleHandler struct {
	service service.ScheduleService
}

func NewScheduleHandler(s service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: s}
}

func (h *ScheduleHandler) List(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ScheduleHandler) Create(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	var req model.CreateScheduleRequest
	if !bindJSON(c, &req) {
		return
	}
	s, err := h.service.Create(c.Request.Context(), actor, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Horário público criado!", "id": s.ID})
}

func (h *ScheduleHandler) Update(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req model.UpdateScheduleRequest
	if !bindJSON(c, &req) {
		return
	}
	if _, err := h.service.Update(c.Request.Context(), actor, id, req); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Horário atualizado!"})
}

func (h *ScheduleHandler) Delete(c *gin.Context) {
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
	c.JSON(http.StatusOK, gin.H{"message": "Horário removido!"})
}

func (h *ScheduleHandler) RegisterScheduleRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	schedules := rg.Group("/horarios")
	{
		schedules.GET("", h.List)
		schedules.POST("", authMW, h.Create)
		schedules.PUT("/:id", authMW, h.Update)
		schedules.DELETE("/:id", authMW, h.Delete)
	}
}

// AnnouncementHandler handles announcements
type AnnouncementHandler struct {
	service service.AnnouncementService
}

func NewAnnouncementHandler(s service.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{service: s}
}

func (h *AnnouncementHandler) List(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *AnnouncementHandler) Create(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	var req model.CreateAnnouncementRequest
	if !bindJSON(c, &req) {
		return
	}
	a, err := h.service.Create(c.Request.Context(), actor, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Aviso criado com sucesso!", "id": a.ID})
}

func (h *AnnouncementHandler) Update(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req model.UpdateAnnouncementRequest
	if !bindJSON(c, &req) {
		return
	}
	if _, err := h.service.Update(c.Request.Context(), actor, id, req); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Aviso atualizado com sucesso!"})
}

func (h *AnnouncementHandler) Delete(c *gin.Context) {
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
	c.JSON(http.StatusOK, gin.H{"message": "Aviso deletado!"})
}

func (h *AnnouncementHandler) RegisterAnnouncementRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	announcements := rg.Group("/avisos")
	{
		announcements.GET("", h.List)
		announcements.POST("", authMW, h.Create)
		announcements.PUT("/:id", authMW, h.Update)
		announcements.DELETE("/:id", authMW, h.Delete)
	}
}
