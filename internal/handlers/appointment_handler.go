package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/delivery-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/delivery-scheduler/internal/httperr"
	"github.com/BruksfildServices01/delivery-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/delivery-scheduler/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/delivery-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	engine *ucAppointment.Engine
}

func NewAppointmentHandler(engine *ucAppointment.Engine) *AppointmentHandler {
	return &AppointmentHandler{engine: engine}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ServiceOfferingID uint   `json:"service_offering_id" binding:"required"`
	Date              string `json:"date" binding:"required"`
	Time              string `json:"time" binding:"required"`
	Notes             string `json:"notes" binding:"max=255"`
}

// TransitionBody serve para todas as operações; cada uma lê só o que usa
type TransitionBody struct {
	NewDate *time.Time `json:"new_date"`
	Reason  string     `json:"reason"`
	Content string     `json:"content"`
}

// ======================================================
// HELPERS
// ======================================================

func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "ID inválido.")
		return 0, false
	}
	return uint(id), true
}

// organizationFor usa a organização do token; perfis sem organização
// informam ?organization_id=.
func organizationFor(c *gin.Context, actor domain.Actor) (uint, bool) {
	if raw := c.Query("organization_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			httperr.BadRequest(c, httperr.CodeInvalidRequest, "Organização inválida.")
			return 0, false
		}
		return uint(id), true
	}

	if actor.OrganizationID == 0 {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Informe organization_id.")
		return 0, false
	}
	return actor.OrganizationID, true
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Dados inválidos.")
		return
	}

	ap, err := h.engine.Create(c.Request.Context(), actor, ucAppointment.CreateInput{
		ServiceOfferingID: req.ServiceOfferingID,
		Date:              req.Date,
		Time:              req.Time,
		Notes:             req.Notes,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// READ
// ======================================================

// List aceita ?date=YYYY-MM-DD ou ?year=&month=
func (h *AppointmentHandler) List(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	orgID, ok := organizationFor(c, actor)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	if date := c.Query("date"); date != "" {
		list, err := h.engine.ListByDate(ctx, actor, orgID, date)
		if err != nil {
			httperr.FromError(c, err)
			return
		}
		httpresp.List(c, list)
		return
	}

	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	if errY != nil || errM != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Informe date ou year e month.")
		return
	}

	list, err := h.engine.ListByMonth(ctx, actor, orgID, year, month)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, list)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ap, err := h.engine.Get(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Activities(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	acts, err := h.engine.ListActivities(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, acts)
}

// ======================================================
// LIFECYCLE
// ======================================================

// Transition devolve o handler de uma operação do ciclo de vida. O corpo
// é opcional para operações que não leem nada dele.
func (h *AppointmentHandler) Transition(op domain.Operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}

		var body TransitionBody
		if c.Request.ContentLength != 0 {
			if err := c.ShouldBindJSON(&body); err != nil {
				httperr.BadRequest(c, httperr.CodeInvalidRequest, "Dados inválidos.")
				return
			}
		}

		req := ucAppointment.TransitionRequest{
			Operation:     op,
			AppointmentID: id,
			Actor:         middleware.ActorFrom(c),
			Reason:        body.Reason,
			Content:       body.Content,
		}

		switch op {
		case domain.OpRequestReschedule, domain.OpReschedule:
			if body.NewDate == nil {
				httperr.BadRequest(c, httperr.CodeInvalidRequest, "Informe new_date.")
				return
			}
			req.NewDate = *body.NewDate
		}

		ap, err := h.engine.Apply(c.Request.Context(), req)
		if err != nil {
			httperr.FromError(c, err)
			return
		}
		httpresp.OK(c, ap)
	}
}
