package availability

import (
	"context"

	"github.com/rs/zerolog"

	appointment "github.com/BruksfildServices01/delivery-scheduler/internal/domain/appointment"
	domain "github.com/BruksfildServices01/delivery-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/delivery-scheduler/internal/httperr"
	"github.com/BruksfildServices01/delivery-scheduler/internal/models"
)

type ScheduleRepository interface {
	GetServiceOffering(ctx context.Context, offeringID uint) (*models.ServiceOffering, error)
	ListWeeklySchedule(ctx context.Context, offeringID uint) ([]models.WeeklySchedule, error)
	ReplaceWeeklySchedule(ctx context.Context, offeringID uint, rows []models.WeeklySchedule) error
	ListRulesForOffering(ctx context.Context, offering *models.ServiceOffering) ([]models.ExceptionRule, error)
	CreateExceptionRule(ctx context.Context, rule *models.ExceptionRule) error
	GetExceptionRule(ctx context.Context, ruleID uint) (*models.ExceptionRule, error)
	DeleteExceptionRule(ctx context.Context, ruleID uint) error
	ListOfferingIDs(ctx context.Context, organizationID uint) ([]uint, error)
}

// OfferingInvalidator descarta todo o cache de disponibilidade da oferta
type OfferingInvalidator interface {
	InvalidateOffering(ctx context.Context, offeringID uint) error
}

// ManageSchedule administra horário semanal e regras de exceção de uma
// oferta. Toda escrita descarta o cache das ofertas afetadas.
type ManageSchedule struct {
	repo   ScheduleRepository
	slots  OfferingInvalidator
	logger zerolog.Logger
}

func NewManageSchedule(
	repo ScheduleRepository,
	slots OfferingInvalidator,
	logger zerolog.Logger,
) *ManageSchedule {
	return &ManageSchedule{repo: repo, slots: slots, logger: logger}
}

// invalidate só loga falhas; o TTL cobre o que sobrar
func (uc *ManageSchedule) invalidate(ctx context.Context, offeringIDs ...uint) {
	if uc.slots == nil {
		return
	}
	for _, id := range offeringIDs {
		if err := uc.slots.InvalidateOffering(ctx, id); err != nil {
			uc.logger.Warn().Err(err).
				Uint("offering_id", id).
				Msg("slot cache invalidation failed")
		}
	}
}

// invalidateRule descarta o cache de quem a regra alcança
func (uc *ManageSchedule) invalidateRule(ctx context.Context, rule *models.ExceptionRule) {
	if uc.slots == nil {
		return
	}
	if rule.Scope != models.RuleScopeOrganization && rule.ServiceOfferingID != nil {
		uc.invalidate(ctx, *rule.ServiceOfferingID)
		return
	}

	ids, err := uc.repo.ListOfferingIDs(ctx, rule.OrganizationID)
	if err != nil {
		uc.logger.Warn().Err(err).
			Uint("organization_id", rule.OrganizationID).
			Msg("slot cache invalidation failed")
		return
	}
	uc.invalidate(ctx, ids...)
}

func (uc *ManageSchedule) offering(
	ctx context.Context,
	actor appointment.Actor,
	offeringID uint,
	write bool,
) (*models.ServiceOffering, error) {

	offering, err := uc.repo.GetServiceOffering(ctx, offeringID)
	if err != nil {
		return nil, err
	}

	allowed := appointment.CanViewOrganization(actor, offering.OrganizationID)
	if write {
		allowed = appointment.CanManageOrganization(actor, offering.OrganizationID)
	}
	if !allowed {
		return nil, httperr.ErrBusiness(httperr.CodeForbidden)
	}

	return offering, nil
}

// ===============================
// Weekly schedule
// ===============================

func (uc *ManageSchedule) WeeklySchedule(
	ctx context.Context,
	actor appointment.Actor,
	offeringID uint,
) ([]models.WeeklySchedule, error) {

	if _, err := uc.offering(ctx, actor, offeringID, false); err != nil {
		return nil, err
	}
	return uc.repo.ListWeeklySchedule(ctx, offeringID)
}

func (uc *ManageSchedule) ReplaceWeeklySchedule(
	ctx context.Context,
	actor appointment.Actor,
	offeringID uint,
	rows []models.WeeklySchedule,
) error {

	if _, err := uc.offering(ctx, actor, offeringID, true); err != nil {
		return err
	}

	seen := map[int]bool{}
	for _, row := range rows {
		if row.Weekday < 0 || row.Weekday > 6 || seen[row.Weekday] {
			return httperr.ErrBusiness(httperr.CodeInvalidRequest)
		}
		if row.StartMinute < 0 || row.EndMinute > domain.MinutesPerDay || row.StartMinute >= row.EndMinute {
			return httperr.ErrBusiness(httperr.CodeInvalidRequest)
		}
		seen[row.Weekday] = true
	}

	if err := uc.repo.ReplaceWeeklySchedule(ctx, offeringID, rows); err != nil {
		return err
	}

	uc.invalidate(ctx, offeringID)
	return nil
}

// ===============================
// Exception rules
// ===============================

func (uc *ManageSchedule) Rules(
	ctx context.Context,
	actor appointment.Actor,
	offeringID uint,
) ([]models.ExceptionRule, error) {

	offering, err := uc.offering(ctx, actor, offeringID, false)
	if err != nil {
		return nil, err
	}

	rows, err := uc.repo.ListRulesForOffering(ctx, offering)
	if err != nil {
		return nil, err
	}

	out := make([]models.ExceptionRule, 0, len(rows))
	for _, r := range rows {
		if domain.AppliesTo(r, offering.ID) {
			out = append(out, r)
		}
	}
	return out, nil
}

// CreateRule grava a regra no escopo da oferta ou da organização dela
func (uc *ManageSchedule) CreateRule(
	ctx context.Context,
	actor appointment.Actor,
	offeringID uint,
	rule *models.ExceptionRule,
) error {

	offering, err := uc.offering(ctx, actor, offeringID, true)
	if err != nil {
		return err
	}

	rule.ID = 0
	rule.OrganizationID = offering.OrganizationID

	switch rule.Scope {
	case "", models.RuleScopeOffering:
		rule.Scope = models.RuleScopeOffering
		rule.ServiceOfferingID = &offering.ID
		rule.DeliveryTypes = nil
	case models.RuleScopeOrganization:
		rule.ServiceOfferingID = nil
	default:
		return httperr.ErrBusiness(httperr.CodeInvalidRequest)
	}

	if _, err := domain.RuleFromModel(*rule); err != nil {
		return httperr.ErrBusiness(httperr.CodeInvalidRequest)
	}

	if err := uc.repo.CreateExceptionRule(ctx, rule); err != nil {
		return err
	}

	uc.invalidateRule(ctx, rule)
	return nil
}

func (uc *ManageSchedule) DeleteRule(
	ctx context.Context,
	actor appointment.Actor,
	ruleID uint,
) error {

	rule, err := uc.repo.GetExceptionRule(ctx, ruleID)
	if err != nil {
		return err
	}

	if !appointment.CanManageOrganization(actor, rule.OrganizationID) {
		return httperr.ErrBusiness(httperr.CodeForbidden)
	}

	if err := uc.repo.DeleteExceptionRule(ctx, ruleID); err != nil {
		return err
	}

	uc.invalidateRule(ctx, rule)
	return nil
}
