package database

import (
	"fmt"
	"log"

	"github.com/maghsala/maghsala-api/internal/config"
	"github.com/maghsala/maghsala-api/internal/domain/entity"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// User-related entities
		&entity.User{},
		&entity.Role{},
		&entity.Permission{},
		&entity.PasswordResetToken{},

		// Tenant entities
		&entity.Laundry{},
		&entity.Branch{},

		// Catalog entities
		&entity.ServiceCategory{},
		&entity.Service{},

		// POS entities
		&entity.Customer{},
		&entity.Invoice{},
		&entity.InvoiceItem{},
		&entity.CashSession{},

		// Back-office entities
		&entity.AuditLog{},
		&entity.Plan{},
		&entity.Subscription{},

		// System entities
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Invoice numbers are unique per laundry; the per-laundry sequence table
	// backs atomic number allocation.
	if err := db.Exec(`CREATE TABLE IF NOT EXISTS invoice_sequences (
		laundry_id uuid PRIMARY KEY,
		last_value bigint NOT NULL DEFAULT 0
	)`).Error; err != nil {
		return fmt.Errorf("failed to create invoice_sequences: %w", err)
	}

	// One open drawer per (laundry, branch, cashier). The service checks
	// first, but only this index makes concurrent opens safe.
	if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_cash_sessions_one_open
		ON cash_sessions (laundry_id, branch_id, user_id)
		WHERE status = 'open' AND deleted_at IS NULL`).Error; err != nil {
		return fmt.Errorf("failed to create open-session index: %w", err)
	}

	// Customer phones are unique within a laundry.
	if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_customers_laundry_phone
		ON customers (laundry_id, phone)
		WHERE deleted_at IS NULL`).Error; err != nil {
		return fmt.Errorf("failed to create customer phone index: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the database with default data (roles, permissions, plans)
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	// Create default permissions
	permissions := []entity.Permission{
		{Name: "view-dashboard", GuardName: "web"},
		{Name: "manage-laundry", GuardName: "web"},
		{Name: "manage-branches", GuardName: "web"},
		{Name: "manage-services", GuardName: "web"},
		{Name: "manage-customers", GuardName: "web"},
		{Name: "manage-invoices", GuardName: "web"},
		{Name: "cancel-invoices", GuardName: "web"},
		{Name: "apply-discounts", GuardName: "web"},
		{Name: "manage-cash-sessions", GuardName: "web"},
		{Name: "manage-users", GuardName: "web"},
		{Name: "view-audit-logs", GuardName: "web"},
		{Name: "view-reports", GuardName: "web"},
	}

	for i := range permissions {
		var existing entity.Permission
		if err := db.Where("name = ?", permissions[i].Name).First(&existing).Error; err != nil {
			if err := db.Create(&permissions[i]).Error; err != nil {
				log.Printf("Warning: failed to create permission %s: %v", permissions[i].Name, err)
			}
		}
	}

	// Reload permissions with IDs
	var allPermissions []entity.Permission
	db.Find(&allPermissions)

	pick := func(names ...string) []entity.Permission {
		var out []entity.Permission
		for _, name := range names {
			for _, p := range allPermissions {
				if p.Name == name {
					out = append(out, p)
					break
				}
			}
		}
		return out
	}

	roles := []struct {
		name  string
		perms []entity.Permission
	}{
		{"super-admin", allPermissions},
		{"owner", allPermissions},
		{"manager", pick(
			"view-dashboard", "manage-branches", "manage-services",
			"manage-customers", "manage-invoices", "cancel-invoices",
			"apply-discounts", "manage-cash-sessions", "view-audit-logs",
			"view-reports",
		)},
		{"cashier", pick(
			"view-dashboard", "manage-customers", "manage-invoices",
			"apply-discounts", "manage-cash-sessions",
		)},
	}

	for _, r := range roles {
		var existing entity.Role
		if err := db.Where("name = ?", r.name).First(&existing).Error; err != nil {
			role := entity.Role{
				Name:        r.name,
				GuardName:   "web",
				Permissions: r.perms,
			}
			if err := db.Create(&role).Error; err != nil {
				log.Printf("Warning: failed to create %s role: %v", r.name, err)
			}
		}
	}

	// Default subscription plans
	plans := []entity.Plan{
		{Name: "starter", MonthlyPrice: 99, MaxBranches: 1, MaxUsers: 3},
		{Name: "growth", MonthlyPrice: 249, MaxBranches: 3, MaxUsers: 10},
		{Name: "enterprise", MonthlyPrice: 599, MaxBranches: 20, MaxUsers: 100},
	}
	for i := range plans {
		var existing entity.Plan
		if err := db.Where("name = ?", plans[i].Name).First(&existing).Error; err != nil {
			if err := db.Create(&plans[i]).Error; err != nil {
				log.Printf("Warning: failed to create plan %s: %v", plans[i].Name, err)
			}
		}
	}

	// Create super admin user if configured via environment variables
	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	adminName := viper.GetString("ADMIN_NAME")

	if adminEmail != "" && adminPassword != "" {
		var existingAdmin entity.User
		if err := db.Where("email = ?", adminEmail).First(&existingAdmin).Error; err != nil {
			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
			if err != nil {
				log.Printf("Warning: failed to hash admin password: %v", err)
			} else {
				var saRole entity.Role
				if err := db.Where("name = ?", "super-admin").First(&saRole).Error; err == nil {
					if adminName == "" {
						adminName = "Super Admin"
					}
					firstName := adminName
					lastName := ""
					for i, c := range adminName {
						if c == ' ' {
							firstName = adminName[:i]
							lastName = adminName[i+1:]
							break
						}
					}
					adminUser := entity.User{
						FirstName: firstName,
						LastName:  lastName,
						Email:     adminEmail,
						Password:  string(hashedPassword),
						IsActive:  true,
						Roles:     []entity.Role{saRole},
					}
					if err := db.Create(&adminUser).Error; err != nil {
						log.Printf("Warning: failed to create super admin user: %v", err)
					} else {
						log.Printf("Super admin user created: %s", adminEmail)
					}
				}
			}
		} else {
			log.Printf("Super admin user already exists: %s", adminEmail)
		}
	}

	log.Println("Default data seeding completed")
	return nil
}
