// Package dbtest opens migrated in-memory SQLite databases for tests.
package dbtest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/delivery-scheduler/internal/db"
	"github.com/BruksfildServices01/delivery-scheduler/internal/models"
)

// New returns a fresh database private to t.
func New(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	// cada conexão ":memory:" é um banco novo
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Migrate(gdb))
	return gdb
}

// Fixture is the minimal graph every booking needs.
type Fixture struct {
	Org      models.Organization
	Offering models.ServiceOffering
	Admin    models.User
	Staff    models.User
	Supplier models.User
	Other    models.User
}

// Seed creates one organization in tz with an offering open 09:00-17:00
// every day and one user per organization role.
func Seed(t *testing.T, gdb *gorm.DB, tz string) Fixture {
	t.Helper()

	f := Fixture{
		Org: models.Organization{Name: "Acme", Slug: "acme", Timezone: tz},
	}
	require.NoError(t, gdb.Create(&f.Org).Error)

	f.Offering = models.ServiceOffering{
		OrganizationID:  f.Org.ID,
		Name:            "Pallet delivery",
		DurationMinutes: 60,
		Active:          true,
	}
	require.NoError(t, gdb.Create(&f.Offering).Error)

	for wd := 0; wd < 7; wd++ {
		require.NoError(t, gdb.Create(&models.WeeklySchedule{
			ServiceOfferingID: f.Offering.ID,
			Weekday:           wd,
			StartMinute:       9 * 60,
			EndMinute:         17 * 60,
		}).Error)
	}

	users := []*models.User{&f.Admin, &f.Staff, &f.Supplier, &f.Other}
	roles := []string{"org_admin", "org_staff", "supplier", "supplier"}
	for i, u := range users {
		*u = models.User{
			OrganizationID: f.Org.ID,
			Name:           roles[i],
			Email:          roles[i] + string(rune('a'+i)) + "@acme.test",
			Role:           roles[i],
		}
		require.NoError(t, gdb.Create(u).Error)
	}

	return f
}

// Appointment inserts an appointment directly, bypassing the engine.
func Appointment(
	t *testing.T,
	gdb *gorm.DB,
	f Fixture,
	owner models.User,
	date time.Time,
	status string,
) models.Appointment {
	t.Helper()

	ap := models.Appointment{
		ServiceOfferingID: f.Offering.ID,
		OrganizationID:    f.Org.ID,
		UserID:            owner.ID,
		Date:              date.UTC(),
		DurationMinutes:   f.Offering.DurationMinutes,
		Status:            status,
		Version:           1,
	}
	require.NoError(t, gdb.Omit("ServiceOffering", "User").Create(&ap).Error)
	return ap
}
