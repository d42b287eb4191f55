package credits_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"fitmind/internal/repositories"
	"fitmind/internal/services"
)

var Module = fx.Provide(provideCreditService)

func provideCreditService(db *gorm.DB, ledgerRepo repositories.LedgerRepository) services.CreditServiceInterface {
	return services.NewCreditService(db, ledgerRepo)
}
