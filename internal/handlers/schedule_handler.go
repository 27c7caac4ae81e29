package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	availability "github.com/BruksfildServices01/delivery-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/delivery-scheduler/internal/dto"
	"github.com/BruksfildServices01/delivery-scheduler/internal/httperr"
	"github.com/BruksfildServices01/delivery-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/delivery-scheduler/internal/middleware"
	"github.com/BruksfildServices01/delivery-scheduler/internal/models"
	ucAvailability "github.com/BruksfildServices01/delivery-scheduler/internal/usecase/availability"
)

// ======================================================
// HANDLER
// ======================================================

type ScheduleHandler struct {
	slots    *ucAvailability.GetAvailableSlots
	schedule *ucAvailability.ManageSchedule
}

func NewScheduleHandler(
	slots *ucAvailability.GetAvailableSlots,
	schedule *ucAvailability.ManageSchedule,
) *ScheduleHandler {
	return &ScheduleHandler{slots: slots, schedule: schedule}
}

// ======================================================
// REQUESTS
// ======================================================

type WorkingDayConfig struct {
	Weekday   int    `json:"weekday" binding:"min=0,max=6"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

// Dias ausentes ficam fechados
type WeeklyScheduleRequest struct {
	Days []WorkingDayConfig `json:"days" binding:"dive"`
}

type ExceptionRuleRequest struct {
	Kind        string `json:"kind" binding:"required"`
	Scope       string `json:"scope"`
	Date        string `json:"date"`
	Weekday     *int   `json:"weekday"`
	WeekOfMonth string `json:"week_of_month"`
	Recurring   bool   `json:"recurring"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Weekdays    []int  `json:"weekdays"`
	// só para escopo ORGANIZATION
	ServiceOfferingIDs []uint `json:"service_offering_ids"`
	Reason             string `json:"reason" binding:"max=255"`
}

// parseEndHM aceita "24:00" (e "00:00") como fim do dia
func parseEndHM(hm string) (int, error) {
	if hm == "24:00" {
		return availability.MinutesPerDay, nil
	}
	m, err := availability.ParseHM(hm)
	if err != nil {
		return 0, err
	}
	if m == 0 {
		m = availability.MinutesPerDay
	}
	return m, nil
}

// ======================================================
// SLOTS
// ======================================================

// Slots: GET /offerings/:id/slots?date=YYYY-MM-DD[&duration=][&lunch_start=HH:MM&lunch_end=HH:MM]
func (h *ScheduleHandler) Slots(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Informe a data.")
		return
	}

	in := ucAvailability.SlotsInput{
		ServiceOfferingID: id,
		Date:              date,
	}

	if raw := c.Query("duration"); raw != "" {
		d, err := strconv.Atoi(raw)
		if err != nil || d <= 0 {
			httperr.BadRequest(c, httperr.CodeInvalidRequest, "Duração inválida.")
			return
		}
		in.DurationMinutes = d
	}

	ls, le := c.Query("lunch_start"), c.Query("lunch_end")
	if ls != "" || le != "" {
		start, err1 := availability.ParseHM(ls)
		end, err2 := availability.ParseHM(le)
		if err1 != nil || err2 != nil {
			httperr.BadRequest(c, httperr.CodeInvalidRequest, "Almoço inválido.")
			return
		}
		in.Lunch = &availability.Block{Start: start, End: end}
	}

	slots, err := h.slots.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  date,
		"slots": dto.FromSlots(slots),
	})
}

// ======================================================
// WEEKLY SCHEDULE
// ======================================================

func scheduleResponse(rows []models.WeeklySchedule) []WorkingDayConfig {
	out := make([]WorkingDayConfig, 0, len(rows))
	for _, r := range rows {
		out = append(out, WorkingDayConfig{
			Weekday:   r.Weekday,
			StartTime: availability.FormatHM(r.StartMinute),
			EndTime:   availability.FormatHM(r.EndMinute),
		})
	}
	return out
}

func (h *ScheduleHandler) GetWeeklySchedule(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	rows, err := h.schedule.WeeklySchedule(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"days": scheduleResponse(rows)})
}

func (h *ScheduleHandler) UpdateWeeklySchedule(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req WeeklyScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Dados inválidos.")
		return
	}

	rows := make([]models.WeeklySchedule, 0, len(req.Days))
	for _, d := range req.Days {
		start, err1 := availability.ParseHM(d.StartTime)
		end, err2 := parseEndHM(d.EndTime)
		if err1 != nil || err2 != nil {
			httperr.BadRequest(c, httperr.CodeInvalidRequest, "Horário inválido.")
			return
		}
		rows = append(rows, models.WeeklySchedule{
			Weekday:     d.Weekday,
			StartMinute: start,
			EndMinute:   end,
		})
	}

	if err := h.schedule.ReplaceWeeklySchedule(c.Request.Context(), middleware.ActorFrom(c), id, rows); err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"days": scheduleResponse(rows)})
}

// ======================================================
// EXCEPTION RULES
// ======================================================

func (h *ScheduleHandler) ListRules(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	rules, err := h.schedule.Rules(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, rules)
}

func (h *ScheduleHandler) CreateRule(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req ExceptionRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Dados inválidos.")
		return
	}

	rule := models.ExceptionRule{
		Kind:          req.Kind,
		Scope:         req.Scope,
		Weekday:       req.Weekday,
		WeekOfMonth:   req.WeekOfMonth,
		Recurring:     req.Recurring,
		Weekdays:      req.Weekdays,
		DeliveryTypes: req.ServiceOfferingIDs,
		Reason:        req.Reason,
	}
	if req.Date != "" {
		rule.Date = &req.Date
	}

	if req.Kind == models.RuleKindTimeRange {
		start, err1 := availability.ParseHM(req.StartTime)
		end, err2 := parseEndHM(req.EndTime)
		if err1 != nil || err2 != nil {
			httperr.BadRequest(c, httperr.CodeInvalidRequest, "Horário inválido.")
			return
		}
		rule.StartMinute, rule.EndMinute = start, end
	}

	if err := h.schedule.CreateRule(c.Request.Context(), middleware.ActorFrom(c), id, &rule); err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, rule)
}

func (h *ScheduleHandler) DeleteRule(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.schedule.DeleteRule(c.Request.Context(), middleware.ActorFrom(c), id); err != nil {
		httperr.FromError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
