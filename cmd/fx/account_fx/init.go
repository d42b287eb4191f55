package account_fx

import (
	"go.uber.org/fx"

	"fitmind/internal/repositories"
	"fitmind/internal/services"
	mem "fitmind/pkg/memcache"
)

var Module = fx.Provide(provideAccountService)

func provideAccountService(ledgerRepo repositories.LedgerRepository, mailService services.IMailService, memcache mem.ResetTokenStore) services.AccountServiceInterface {
	return services.NewAccountService(ledgerRepo, mailService, memcache)
}
