package service

import (
	"testing"

	"github.com/sayajuli/money-management/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Transaction{},
		&models.Asset{},
		&models.Debt{},
		&models.Budget{},
		&models.AuditLog{},
		&models.Session{},
	))
	return db
}

func newTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

// newServices builds the full service graph over one test database.
func newServices(db *gorm.DB) (*AssetService, *TransactionService, *DebtService, *BudgetService, *HealthService) {
	assets := NewAssetService(db)
	transactions := NewTransactionService(db, assets)
	debts := NewDebtService(db, transactions)
	budgets := NewBudgetService(db, transactions)
	health := NewHealthService(db, transactions, assets, debts)
	return assets, transactions, debts, budgets, health
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}
