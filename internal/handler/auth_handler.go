package handler

import (
	"errors"
	"net/http"
	"time"

	"paroquia_connect/internal/middleware"
	"paroquia_connect/internal/model"
	"paroquia_connect/internal/service"

	"github.com/gin-gonic/gin"
)

// CookieConfig controls the session cookie attributes
type CookieConfig struct {
	TTL    time.Duration
	Secure bool
}

// AuthHandler handles authentication requests
type AuthHandler struct {
	service service.AuthService
	cookie  CookieConfig
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(s service.AuthService, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{service: s, cookie: cookie}
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, token, maxAge, "/", "", h.cookie.Secure, true)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrDelivery) {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Conta criada, mas não foi possível enviar o código de verificação. Tente novamente mais tarde.",
			})
			return
		}
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Usuário registrado! Verifique seu e-mail para ativar a conta.",
		"id":      user.ID,
		"status":  "pending_verification",
	})
}

func (h *AuthHandler) Verify(c *gin.Context) {
	var req model.VerifyRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.service.Verify(c.Request.Context(), req.Email, req.Code); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "E-mail verificado com sucesso!"})
}

// ResendCode mails a new code to an account still pending verification
func (h *AuthHandler) ResendCode(c *gin.Context) {
	var req model.ResendCodeRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.service.ResendCode(c.Request.Context(), req.Email); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Novo código de verificação enviado."})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, token, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	h.setSessionCookie(c, token, int(h.cookie.TTL.Seconds()))
	c.JSON(http.StatusOK, gin.H{
		"message": "Login realizado",
		"user":    user.Summary(),
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.service.Logout(c.Request.Context(), middleware.SessionID(c)); err != nil {
		writeServiceError(c, err)
		return
	}
	h.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "Logout realizado"})
}

// Me reports who is logged in; anonymous callers get is_authenticated=false
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusOK, model.CurrentUserResponse{IsAuthenticated: false})
		return
	}
	c.JSON(http.StatusOK, model.CurrentUserResponse{IsAuthenticated: true, User: user.Summary()})
}

// RegisterAuthRoutes registers auth routes
func (h *AuthHandler) RegisterAuthRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/verify", h.Verify)
		authGroup.POST("/resend", h.ResendCode)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/logout", authMW, h.Logout)
		authGroup.GET("/me", h.Me)
	}
}
