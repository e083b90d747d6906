package config

import (
	"testing"
	"time"

	"catering-api/models"
)

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("JWT_EXPIRY", "2h")
	t.Setenv("ORDER_EXPIRES_IN", "15")
	t.Setenv("PASSWORD_HASHER", "argon2")

	cfg := Load()
	t.Cleanup(func() { AppConfig = Default() })

	if cfg.Port != "9090" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.DBDriver != "postgres" {
		t.Errorf("DBDriver = %q", cfg.DBDriver)
	}
	if cfg.JWTExpiry != 2*time.Hour {
		t.Errorf("JWTExpiry = %v", cfg.JWTExpiry)
	}
	if cfg.OrderExpiresIn != 15*time.Minute {
		t.Errorf("OrderExpiresIn = %v", cfg.OrderExpiresIn)
	}
	if cfg.PasswordHasher != "argon2" {
		t.Errorf("PasswordHasher = %q", cfg.PasswordHasher)
	}
	if AppConfig != cfg {
		t.Errorf("Load did not set AppConfig")
	}
}

func TestLoadFallsBackOnInvalidValues(t *testing.T) {
	t.Setenv("ORDER_EXPIRES_IN", "soon")
	t.Setenv("JWT_EXPIRY", "-1h")

	cfg := Load()
	t.Cleanup(func() { AppConfig = Default() })

	if cfg.OrderExpiresIn != 5*time.Minute {
		t.Errorf("OrderExpiresIn = %v, want default", cfg.OrderExpiresIn)
	}
	if cfg.JWTExpiry != 100*time.Hour {
		t.Errorf("JWTExpiry = %v, want default", cfg.JWTExpiry)
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	if _, err := Open("oracle", "x"); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestSeedRolesIsIdempotent(t *testing.T) {
	db, err := Open("sqlite", "file:seedroles?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := SeedRoles(db); err != nil {
			t.Fatalf("SeedRoles run %d: %v", i, err)
		}
	}

	var count int64
	db.Model(&models.Role{}).Count(&count)
	if count != 2 {
		t.Fatalf("role count = %d, want 2", count)
	}

	var customer models.Role
	if err := db.Where("is_default = ?", true).First(&customer).Error; err != nil {
		t.Fatalf("no default role: %v", err)
	}
	if customer.Name != models.RoleCustomer || customer.Permissions != models.PermissionCustomer {
		t.Errorf("default role = %+v", customer)
	}

	var admin models.Role
	db.Where("name = ?", models.RoleAdmin).First(&admin)
	if admin.Permissions&models.PermissionCaterer == 0 {
		t.Errorf("admin role lacks caterer bit: %+v", admin)
	}
}
