package db

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/delivery-scheduler/internal/config"
	"github.com/BruksfildServices01/delivery-scheduler/internal/models"
	"github.com/BruksfildServices01/delivery-scheduler/internal/timezone"
)

func NewDB(cfg *config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		PrepareStmt: true,
	}
	if cfg.IsProduction() {
		gormCfg.Logger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(postgres.Open(cfg.DBUrl), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	return db, nil
}

// Models na ordem de criação das tabelas
func Models() []any {
	return []any{
		&models.Organization{},
		&models.User{},
		&models.ServiceOffering{},
		&models.WeeklySchedule{},
		&models.ExceptionRule{},
		&models.Appointment{},
		&models.AppointmentActivity{},
		&models.AuditLog{},
	}
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	return db.Model(&models.Organization{}).
		Where("timezone IS NULL OR timezone = ''").
		Update("timezone", timezone.DefaultTimezone).Error
}
