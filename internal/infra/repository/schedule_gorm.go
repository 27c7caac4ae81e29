package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/delivery-scheduler/internal/httperr"
	"github.com/BruksfildServices01/delivery-scheduler/internal/models"
)

// ScheduleGormRepository guarda horário semanal e regras de exceção
type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

func (r *ScheduleGormRepository) GetServiceOffering(
	ctx context.Context,
	offeringID uint,
) (*models.ServiceOffering, error) {

	var offering models.ServiceOffering
	if err := r.db.WithContext(ctx).First(&offering, offeringID).Error; err != nil {
		return nil, notFound(err, httperr.CodeOfferingNotFound)
	}
	return &offering, nil
}

// ListOfferingIDs lista as ofertas da organização (regras de escopo
// ORGANIZATION afetam todas).
func (r *ScheduleGormRepository) ListOfferingIDs(
	ctx context.Context,
	organizationID uint,
) ([]uint, error) {

	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.ServiceOffering{}).
		Where("organization_id = ?", organizationID).
		Order("id ASC").
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// --------------------------------------------------
// Weekly schedule
// --------------------------------------------------

func (r *ScheduleGormRepository) ListWeeklySchedule(
	ctx context.Context,
	offeringID uint,
) ([]models.WeeklySchedule, error) {

	var rows []models.WeeklySchedule
	if err := r.db.WithContext(ctx).
		Where("service_offering_id = ?", offeringID).
		Order("weekday ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ReplaceWeeklySchedule troca todas as linhas da oferta; dias ausentes
// ficam fechados.
func (r *ScheduleGormRepository) ReplaceWeeklySchedule(
	ctx context.Context,
	offeringID uint,
	rows []models.WeeklySchedule,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("service_offering_id = ?", offeringID).
			Delete(&models.WeeklySchedule{}).Error; err != nil {
			return err
		}

		if len(rows) == 0 {
			return nil
		}

		for i := range rows {
			rows[i].ID = 0
			rows[i].ServiceOfferingID = offeringID
		}

		return tx.Create(&rows).Error
	})
}

// --------------------------------------------------
// Exception rules
// --------------------------------------------------

// ListRulesForOffering devolve as regras da oferta e as da organização
func (r *ScheduleGormRepository) ListRulesForOffering(
	ctx context.Context,
	offering *models.ServiceOffering,
) ([]models.ExceptionRule, error) {

	var rules []models.ExceptionRule
	if err := r.db.WithContext(ctx).
		Where(
			"(scope = ? AND service_offering_id = ?) OR (scope = ? AND organization_id = ?)",
			models.RuleScopeOffering, offering.ID,
			models.RuleScopeOrganization, offering.OrganizationID,
		).
		Order("id ASC").
		Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *ScheduleGormRepository) CreateExceptionRule(
	ctx context.Context,
	rule *models.ExceptionRule,
) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *ScheduleGormRepository) GetExceptionRule(
	ctx context.Context,
	ruleID uint,
) (*models.ExceptionRule, error) {

	var rule models.ExceptionRule
	err := r.db.WithContext(ctx).First(&rule, ruleID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

// DeleteExceptionRule é lógico (DeletedAt)
func (r *ScheduleGormRepository) DeleteExceptionRule(
	ctx context.Context,
	ruleID uint,
) error {
	return r.db.WithContext(ctx).Delete(&models.ExceptionRule{}, ruleID).Error
}
