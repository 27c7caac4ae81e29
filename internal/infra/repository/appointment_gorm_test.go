package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/delivery-scheduler/internal/db/dbtest"
	domain "github.com/BruksfildServices01/delivery-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/delivery-scheduler/internal/httperr"
	"github.com/BruksfildServices01/delivery-scheduler/internal/models"
)

func at(hour, minute int) time.Time {
	return time.Date(2030, time.March, 12, hour, minute, 0, 0, time.UTC)
}

func setup(t *testing.T) (*gorm.DB, dbtest.Fixture, *AppointmentGormRepository) {
	t.Helper()
	gdb := dbtest.New(t)
	f := dbtest.Seed(t, gdb, "UTC")
	return gdb, f, NewAppointmentGormRepository(gdb)
}

func TestGetAppointmentMissing(t *testing.T) {
	_, _, repo := setup(t)

	_, err := repo.GetAppointment(context.Background(), 999)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeAppointmentNotFound))
}

func TestGetAppointmentForUpdateLoadsOffering(t *testing.T) {
	gdb, f, repo := setup(t)
	ap := dbtest.Appointment(t, gdb, f, f.Supplier, at(10, 0), string(domain.StatusConfirmed))

	got, err := repo.GetAppointmentForUpdate(context.Background(), ap.ID)
	require.NoError(t, err)
	assert.Equal(t, f.Offering.ID, got.ServiceOffering.ID)
	assert.Equal(t, f.Org.ID, got.ServiceOffering.OrganizationID)
}

func TestUpdateAppointmentBumpsVersion(t *testing.T) {
	gdb, f, repo := setup(t)
	ap := dbtest.Appointment(t, gdb, f, f.Supplier, at(10, 0), string(domain.StatusPendingConfirmation))
	ctx := context.Background()

	ap.Status = string(domain.StatusConfirmed)
	require.NoError(t, repo.UpdateAppointment(ctx, &ap))
	assert.Equal(t, 2, ap.Version)

	stored, err := repo.GetAppointment(ctx, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), stored.Status)
	assert.Equal(t, 2, stored.Version)
}

func TestUpdateAppointmentStaleVersion(t *testing.T) {
	gdb, f, repo := setup(t)
	ap := dbtest.Appointment(t, gdb, f, f.Supplier, at(10, 0), string(domain.StatusPendingConfirmation))
	ctx := context.Background()

	stale := ap
	ap.Status = string(domain.StatusConfirmed)
	require.NoError(t, repo.UpdateAppointment(ctx, &ap))

	stale.Status = string(domain.StatusRejected)
	err := repo.UpdateAppointment(ctx, &stale)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeConcurrentModification))

	stored, err := repo.GetAppointment(ctx, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), stored.Status)
}

func TestUpdateAppointmentClearsPendingFields(t *testing.T) {
	gdb, f, repo := setup(t)
	ap := dbtest.Appointment(t, gdb, f, f.Supplier, at(10, 0), string(domain.StatusConfirmed))
	ctx := context.Background()

	prev := string(domain.StatusConfirmed)
	newDate := at(14, 0)
	ap.Status = string(domain.StatusRescheduleRequested)
	ap.PendingPreviousStatus = &prev
	ap.PendingDate = &newDate
	require.NoError(t, repo.UpdateAppointment(ctx, &ap))

	stored, err := repo.GetAppointment(ctx, ap.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.PendingPreviousStatus)
	require.NotNil(t, stored.PendingDate)
	assert.True(t, newDate.Equal(*stored.PendingDate))

	ap.Status = string(domain.StatusConfirmed)
	ap.PendingPreviousStatus = nil
	ap.PendingDate = nil
	require.NoError(t, repo.UpdateAppointment(ctx, &ap))

	stored, err = repo.GetAppointment(ctx, ap.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.PendingPreviousStatus)
	assert.Nil(t, stored.PendingDate)
}

func TestListBookedAppointments(t *testing.T) {
	gdb, f, repo := setup(t)

	confirmed := dbtest.Appointment(t, gdb, f, f.Supplier, at(9, 0), string(domain.StatusConfirmed))
	pending := dbtest.Appointment(t, gdb, f, f.Supplier, at(11, 0), string(domain.StatusPendingConfirmation))
	dbtest.Appointment(t, gdb, f, f.Supplier, at(13, 0), string(domain.StatusCancelled))
	dbtest.Appointment(t, gdb, f, f.Supplier, at(15, 0), string(domain.StatusCompleted))
	dbtest.Appointment(t, gdb, f, f.Supplier, at(10, 0).AddDate(0, 0, 1), string(domain.StatusConfirmed))

	dayStart := at(0, 0)
	dayEnd := dayStart.AddDate(0, 0, 1)

	apps, err := repo.ListBookedAppointments(context.Background(), f.Offering.ID, dayStart, dayEnd, 0)
	require.NoError(t, err)
	require.Len(t, apps, 2)
	assert.Equal(t, confirmed.ID, apps[0].ID)
	assert.Equal(t, pending.ID, apps[1].ID)

	apps, err = repo.ListBookedAppointments(context.Background(), f.Offering.ID, dayStart, dayEnd, confirmed.ID)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, pending.ID, apps[0].ID)
}

func TestListExceptionRulesScope(t *testing.T) {
	gdb, f, repo := setup(t)

	other := models.ServiceOffering{OrganizationID: f.Org.ID, Name: "Other", DurationMinutes: 30}
	require.NoError(t, gdb.Create(&other).Error)

	otherOrg := models.Organization{Name: "Beta", Slug: "beta", Timezone: "UTC"}
	require.NoError(t, gdb.Create(&otherOrg).Error)

	date := "2030-03-12"
	mine := models.ExceptionRule{Kind: models.RuleKindWholeDay, Scope: models.RuleScopeOffering, OrganizationID: f.Org.ID, ServiceOfferingID: &f.Offering.ID, Date: &date}
	theirs := models.ExceptionRule{Kind: models.RuleKindWholeDay, Scope: models.RuleScopeOffering, OrganizationID: f.Org.ID, ServiceOfferingID: &other.ID, Date: &date}
	orgWide := models.ExceptionRule{Kind: models.RuleKindWholeDay, Scope: models.RuleScopeOrganization, OrganizationID: f.Org.ID, Date: &date}
	foreign := models.ExceptionRule{Kind: models.RuleKindWholeDay, Scope: models.RuleScopeOrganization, OrganizationID: otherOrg.ID, Date: &date}

	for _, r := range []*models.ExceptionRule{&mine, &theirs, &orgWide, &foreign} {
		require.NoError(t, gdb.Create(r).Error)
	}

	rules, err := repo.ListExceptionRules(context.Background(), f.Offering.ID, f.Org.ID)
	require.NoError(t, err)

	ids := make([]uint, 0, len(rules))
	for _, r := range rules {
		ids = append(ids, r.ID)
	}
	assert.ElementsMatch(t, []uint{mine.ID, orgWide.ID}, ids)
}

func TestLatestActivityWithStatus(t *testing.T) {
	gdb, f, repo := setup(t)
	ap := dbtest.Appointment(t, gdb, f, f.Supplier, at(10, 0), string(domain.StatusConfirmed))
	ctx := context.Background()

	act, err := repo.LatestActivityWithStatus(ctx, ap.ID, string(domain.StatusRescheduleRequested))
	require.NoError(t, err)
	assert.Nil(t, act)

	base := time.Date(2030, time.March, 1, 8, 0, 0, 0, time.UTC)
	for i, date := range []string{"2030-03-13T10:00:00Z", "2030-03-14T10:00:00Z"} {
		require.NoError(t, repo.AppendActivity(ctx, &models.AppointmentActivity{
			AppointmentID: ap.ID,
			ActorUserID:   f.Supplier.ID,
			Type:          string(domain.ActivityRescheduleRequested),
			NewStatus:     string(domain.StatusRescheduleRequested),
			Metadata:      map[string]any{domain.MetadataNewDate: date},
			CreatedAt:     base.Add(time.Duration(i) * time.Hour),
		}))
	}

	act, err = repo.LatestActivityWithStatus(ctx, ap.ID, string(domain.StatusRescheduleRequested))
	require.NoError(t, err)
	require.NotNil(t, act)
	assert.Equal(t, "2030-03-14T10:00:00Z", act.Metadata[domain.MetadataNewDate])
}

func TestTransactionRollsBack(t *testing.T) {
	gdb, f, repo := setup(t)
	ap := dbtest.Appointment(t, gdb, f, f.Supplier, at(10, 0), string(domain.StatusPendingConfirmation))
	ctx := context.Background()
	boom := errors.New("boom")

	err := repo.Transaction(ctx, func(tx domain.TxRepository) error {
		locked, err := tx.GetAppointmentForUpdate(ctx, ap.ID)
		if err != nil {
			return err
		}
		locked.Status = string(domain.StatusConfirmed)
		if err := tx.UpdateAppointment(ctx, locked); err != nil {
			return err
		}
		if err := tx.AppendActivity(ctx, &models.AppointmentActivity{
			AppointmentID: ap.ID,
			Type:          string(domain.ActivityStatusChange),
		}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	stored, err := repo.GetAppointment(ctx, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPendingConfirmation), stored.Status)
	assert.Equal(t, 1, stored.Version)

	acts, err := repo.ListActivities(ctx, ap.ID)
	require.NoError(t, err)
	assert.Empty(t, acts)
}

func TestListAppointmentsForPeriodScopesOrganization(t *testing.T) {
	gdb, f, repo := setup(t)
	mine := dbtest.Appointment(t, gdb, f, f.Supplier, at(10, 0), string(domain.StatusConfirmed))

	otherOrg := models.Organization{Name: "Beta", Slug: "beta", Timezone: "UTC"}
	require.NoError(t, gdb.Create(&otherOrg).Error)
	foreign := dbtest.Appointment(t, gdb, f, f.Supplier, at(12, 0), string(domain.StatusConfirmed))
	require.NoError(t, gdb.Model(&foreign).Update("organization_id", otherOrg.ID).Error)

	apps, err := repo.ListAppointmentsForPeriod(context.Background(), f.Org.ID, at(0, 0), at(0, 0).AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, mine.ID, apps[0].ID)
	assert.Equal(t, f.Offering.Name, apps[0].ServiceOffering.Name)
}
