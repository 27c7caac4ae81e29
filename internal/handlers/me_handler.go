package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/delivery-scheduler/internal/httperr"
	"github.com/BruksfildServices01/delivery-scheduler/internal/middleware"
	"github.com/BruksfildServices01/delivery-scheduler/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	var user models.User
	err := h.db.WithContext(c.Request.Context()).First(&user, actor.UserID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "user_not_found", "Usuário não encontrado.")
		return
	}
	if err != nil {
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}

	resp := gin.H{
		"user": gin.H{
			"id":              user.ID,
			"name":            user.Name,
			"email":           user.Email,
			"phone":           user.Phone,
			"role":            string(actor.Role),
			"organization_id": actor.OrganizationID,
		},
	}

	// super_admin / oversight não têm organização
	if actor.OrganizationID != 0 {
		var org models.Organization
		if err := h.db.WithContext(c.Request.Context()).First(&org, actor.OrganizationID).Error; err == nil {
			resp["organization"] = gin.H{
				"id":       org.ID,
				"name":     org.Name,
				"slug":     org.Slug,
				"timezone": org.Timezone,
			}
		}
	}

	c.JSON(http.StatusOK, resp)
}
