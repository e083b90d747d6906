package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"catering-api/logger"
	"catering-api/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

// roleDefinitions maps role name to permissions and default flag
var roleDefinitions = map[string]struct {
	Permissions models.Permission
	IsDefault   bool
}{
	models.RoleCustomer: {models.PermissionCustomer, true},
	models.RoleAdmin:    {models.PermissionCaterer, false},
}

func InitDB() {
	var err error

	const maxAttempts = 5
	for i := 1; i <= maxAttempts; i++ {
		DB, err = Open(AppConfig.DBDriver, AppConfig.DBDSN)
		if err == nil {
			break
		}
		logger.Default.Warn("db_connect", "", "failed to connect to database",
			slog.Int("attempt", i), slog.String("error", err.Error()))
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		logger.Default.Error("db_connect", "", "giving up on database", err)
		os.Exit(1)
	}

	if err := Migrate(DB); err != nil {
		logger.Default.Error("db_migrate", "", "failed to migrate database", err)
		os.Exit(1)
	}
	if err := SeedRoles(DB); err != nil {
		logger.Default.Error("db_seed", "", "failed to seed roles", err)
		os.Exit(1)
	}

	logger.Default.Info("db_connect", "", "database connected and migrated",
		slog.String("driver", AppConfig.DBDriver))
}

// Open connects with the named driver ("sqlite" or "postgres").
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "", "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping: %w", err)
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Catering{},
		&models.Meal{},
		&models.Menu{},
		&models.Order{},
	)
}

// SeedRoles inserts or refreshes the Customer and Admin roles.
func SeedRoles(db *gorm.DB) error {
	for name, def := range roleDefinitions {
		var role models.Role
		err := db.Where(models.Role{Name: name}).
			Assign(map[string]interface{}{
				"permissions": def.Permissions,
				"is_default":  def.IsDefault,
			}).
			FirstOrCreate(&role).Error
		if err != nil {
			return fmt.Errorf("seed role %s: %w", name, err)
		}
	}
	return nil
}

func CloseDB() {
	if DB == nil {
		return
	}
	if sqlDB, err := DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
