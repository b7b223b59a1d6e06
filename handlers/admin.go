package handlers

import (
	"net/http"

	"coolrentals/middleware"
	"coolrentals/models"
	"coolrentals/services/admin"

	"github.com/gin-gonic/gin"
)

// AdminHandler handles back-office sign in and sign out.
type AdminHandler struct {
	Svc admin.AdminService
}

func NewAdminHandler(svc admin.AdminService) *AdminHandler {
	return &AdminHandler{Svc: svc}
}

// Login handles POST /admin/login.
func (h *AdminHandler) Login(c *gin.Context) {
	var req models.AdminLoginRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}
	auth, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.Error(err)
		return
	}
	respond(c, http.StatusOK, "Login successful", auth)
}

// Logout revokes the bearer token the request was authorized with.
func (h *AdminHandler) Logout(c *gin.Context) {
	claims, _ := middleware.AdminClaims(c)
	if err := h.Svc.Logout(c.Request.Context(), claims); err != nil {
		c.Error(err)
		return
	}
	respond(c, http.StatusOK, "Logged out successfully", nil)
}
