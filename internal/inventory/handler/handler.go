package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ngocnhu100/keycloak-poc/internal/inventory/entity"
	"github.com/ngocnhu100/keycloak-poc/internal/inventory/repository"
	"github.com/ngocnhu100/keycloak-poc/internal/inventory/service"
	"github.com/ngocnhu100/keycloak-poc/internal/middleware"
	"go.uber.org/zap"
)

// Handlers holds every HTTP handler.
type Handlers struct {
	Material *MaterialHandler
	Lot      *LotHandler

	users  *repository.UserRepository
	logger *zap.Logger
}

// NewHandlers creates the handler set.
func NewHandlers(svc *service.Services, repos *repository.Repositories, logger *zap.Logger) *Handlers {
	return &Handlers{
		Material: NewMaterialHandler(svc.Material),
		Lot:      NewLotHandler(svc.Ledger, svc.Status),
		users:    repos.User,
		logger:   logger,
	}
}

// RegisterRoutes mounts the inventory API. Every route requires a valid
// token; writes are additionally gated per role, mirroring the capability
// checks inside the services.
func (h *Handlers) RegisterRoutes(r *gin.Engine, jwtSecret string) {
	anyRole := []string{
		service.RoleViewer,
		service.RoleInventoryManager,
		service.RoleQualityControl,
		service.RoleProduction,
	}

	api := r.Group("/api/inventory", middleware.JWTAuth(jwtSecret), h.syncUser())

	api.GET("/materials", middleware.RequireRole(anyRole...), h.Material.List)

	api.GET("/lots", middleware.RequireRole(anyRole...), h.Lot.List)
	api.GET("/lots/export", middleware.RequireRole(anyRole...), h.Lot.Export)
	api.GET("/lots/:lotNumber", middleware.RequireRole(anyRole...), h.Lot.Get)
	api.GET("/lots/:lotNumber/transactions", middleware.RequireRole(anyRole...), h.Lot.Transactions)

	api.POST("/lots",
		middleware.RequireRole(service.RoleInventoryManager),
		h.Lot.Create)
	api.POST("/lots/:lotNumber/transactions",
		middleware.RequireRole(service.RoleInventoryManager, service.RoleProduction),
		h.Lot.RecordTransaction)
	api.PATCH("/lots/:lotNumber/status",
		middleware.RequireRole(service.RoleQualityControl, service.RoleProduction, service.RoleInventoryManager),
		h.Lot.UpdateStatus)
}

// syncUser refreshes the caller's user snapshot so ledger entries can be
// joined to a username later.
func (h *Handlers) syncUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			c.Next()
			return
		}
		username := c.GetString("user_name")
		if username == "" {
			username = userID
		}
		user := &entity.User{
			UserID:   userID,
			Username: username,
			Email:    c.GetString("user_email"),
		}
		if err := h.users.Upsert(c.Request.Context(), user); err != nil {
			h.logger.Error("Failed to sync user snapshot", zap.String("user_id", userID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{
				"code":    50002,
				"error":   "UserSyncFailed",
				"message": "Failed to sync user snapshot",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// actorFromContext rebuilds the verified caller identity set by JWTAuth.
func actorFromContext(c *gin.Context) service.Actor {
	actor := service.Actor{
		ID:       c.GetString("user_id"),
		Username: c.GetString("user_name"),
	}
	if raw, exists := c.Get("roles"); exists {
		if roles, ok := raw.([]string); ok {
			actor.Roles = roles
		}
	}
	return actor
}

// respondError maps service errors to stable machine-readable kinds.
func respondError(c *gin.Context, err error) {
	var (
		status int
		code   int
		kind   string
	)
	switch {
	case errors.Is(err, service.ErrValidation):
		status, code, kind = http.StatusBadRequest, 40001, "ValidationError"
	case errors.Is(err, service.ErrInvalidStatus):
		status, code, kind = http.StatusBadRequest, 40002, "InvalidStatus"
	case errors.Is(err, service.ErrMaterialNotFound):
		status, code, kind = http.StatusNotFound, 40401, "MaterialNotFound"
	case errors.Is(err, service.ErrLotNotFound):
		status, code, kind = http.StatusNotFound, 40402, "LotNotFound"
	case errors.Is(err, service.ErrForbidden):
		status, code, kind = http.StatusForbidden, 40313, "Forbidden"
	case errors.Is(err, service.ErrInsufficientQuantity):
		status, code, kind = http.StatusConflict, 40901, "InsufficientQuantity"
	case errors.Is(err, service.ErrInvalidTransition):
		status, code, kind = http.StatusConflict, 40902, "InvalidStatus"
	default:
		status, code, kind = http.StatusInternalServerError, 50001, "PersistenceError"
	}
	c.JSON(status, gin.H{"code": code, "error": kind, "message": err.Error()})
}
