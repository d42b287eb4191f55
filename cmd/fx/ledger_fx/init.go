package ledger_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"fitmind/internal/repositories"
)

var Module = fx.Provide(provideLedgerRepo)

func provideLedgerRepo(db *gorm.DB) repositories.LedgerRepository {
	return repositories.NewLedgerRepository(db)
}
