package database

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jmuthomi/tillpoint-api/internal/config"
	"github.com/jmuthomi/tillpoint-api/internal/domain/entity"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	logLevel := logger.Warn

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

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Info("connected to PostgreSQL database", zap.String("host", cfg.Host), zap.String("database", cfg.Name))
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("running database migrations")

	err := db.AutoMigrate(
		// Staff and access control
		&entity.User{},
		&entity.Role{},
		&entity.Permission{},

		// Catalog
		&entity.Category{},
		&entity.Product{},

		// Parties
		&entity.Customer{},
		&entity.Supplier{},

		// Transactions
		&entity.Sale{},
		&entity.SaleItem{},
		&entity.InvoiceCounter{},
		&entity.Purchase{},
		&entity.PurchaseDetail{},
		&entity.Expense{},

		// System
		&entity.IdempotencyKey{},
		&entity.StoreSettings{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("database migrations completed")
	return nil
}

// SeedDefaultData seeds roles, permissions and the initial admin account
func SeedDefaultData(db *gorm.DB, cfg *config.AdminConfig, log *zap.Logger) error {
	log.Info("seeding default data")

	permissions := []entity.Permission{
		{Name: "view-dashboard"},
		{Name: "manage-products"},
		{Name: "manage-sales"},
		{Name: "refund-sales"},
		{Name: "manage-purchases"},
		{Name: "manage-customers"},
		{Name: "manage-suppliers"},
		{Name: "manage-categories"},
		{Name: "manage-expenses"},
		{Name: "manage-users"},
		{Name: "manage-settings"},
		{Name: "view-reports"},
	}

	for i := range permissions {
		var existing entity.Permission
		if err := db.Where("name = ?", permissions[i].Name).First(&existing).Error; err != nil {
			if err := db.Create(&permissions[i]).Error; err != nil {
				log.Warn("failed to create permission", zap.String("name", permissions[i].Name), zap.Error(err))
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

	ensureRole := func(name string, perms []entity.Permission) {
		var role entity.Role
		if err := db.Where("name = ?", name).First(&role).Error; err != nil {
			role = entity.Role{Name: name, Permissions: perms}
			if err := db.Create(&role).Error; err != nil {
				log.Warn("failed to create role", zap.String("name", name), zap.Error(err))
			}
		}
	}

	// Admin gets everything
	ensureRole("admin", allPermissions)

	// Managers run the floor but cannot administer accounts
	ensureRole("manager", pick(
		"view-dashboard",
		"manage-products",
		"manage-sales",
		"refund-sales",
		"manage-purchases",
		"manage-customers",
		"manage-suppliers",
		"manage-categories",
		"manage-expenses",
		"view-reports",
	))

	// Cashiers only sell
	ensureRole("cashier", pick(
		"view-dashboard",
		"manage-sales",
		"manage-customers",
	))

	// Create the initial admin account when configured
	if cfg != nil && cfg.Email != "" && cfg.Password != "" {
		var existingAdmin entity.User
		if err := db.Where("email = ?", cfg.Email).First(&existingAdmin).Error; err != nil {
			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
			if err != nil {
				log.Warn("failed to hash admin password", zap.Error(err))
			} else {
				var adminRole entity.Role
				if err := db.Where("name = ?", "admin").First(&adminRole).Error; err == nil {
					firstName := cfg.Name
					lastName := ""
					if firstName == "" {
						firstName = "Admin"
					}
					for i, c := range firstName {
						if c == ' ' {
							lastName = firstName[i+1:]
							firstName = firstName[:i]
							break
						}
					}
					adminUser := entity.User{
						ID:        uuid.New(),
						FirstName: firstName,
						LastName:  lastName,
						Email:     cfg.Email,
						Password:  string(hashedPassword),
						Roles:     []entity.Role{adminRole},
					}
					if err := db.Create(&adminUser).Error; err != nil {
						log.Warn("failed to create admin user", zap.Error(err))
					} else {
						log.Info("admin user created", zap.String("email", cfg.Email))
					}
				}
			}
		}
	}

	log.Info("default data seeding completed")
	return nil
}
