package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/delivery-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/delivery-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/delivery-scheduler/internal/httperr"
	"github.com/BruksfildServices01/delivery-scheduler/internal/middleware"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	logs *audit.Logger
}

func NewAuditLogsHandler(logs *audit.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs}
}

// List: GET /audit-logs?action=&entity=&from=&to=&page=&limit=
// Administradores da organização e perfis de supervisão.
func (h *AuditLogsHandler) List(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	orgID, ok := organizationFor(c, actor)
	if !ok {
		return
	}

	if actor.Role != domain.RoleOversight && !domain.CanManageOrganization(actor, orgID) {
		httperr.FromError(c, httperr.ErrBusiness(httperr.CodeForbidden))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	f := audit.Filter{
		OrganizationID: orgID,
		Action:         c.Query("action"),
		Entity:         c.Query("entity"),
		Page:           page,
		Limit:          limit,
	}

	// --------------------------------------------------
	// Período (datas inteiras, "to" inclusivo)
	// --------------------------------------------------

	if fromStr := c.Query("from"); fromStr != "" {
		if from, err := time.Parse("2006-01-02", fromStr); err == nil {
			f.From = &from
		}
	}
	if toStr := c.Query("to"); toStr != "" {
		if to, err := time.Parse("2006-01-02", toStr); err == nil {
			to = to.Add(24 * time.Hour)
			f.To = &to
		}
	}

	logs, total, err := h.logs.List(c.Request.Context(), f)
	if err != nil {
		httperr.Internal(c, "audit_list_failed", "Erro ao listar logs.")
		return
	}

	f.Normalize()
	c.JSON(200, gin.H{
		"page":  f.Page,
		"limit": f.Limit,
		"total": total,
		"logs":  logs,
	})
}
