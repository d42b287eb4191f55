package plans_fx

import (
	"go.uber.org/fx"

	"fitmind/internal/repositories"
	"fitmind/internal/services"
)

var Module = fx.Provide(
	providePlanService, providePlanRepo)

func providePlanRepo() repositories.IPlanRepository {
	return repositories.NewPlanRepository()
}

func providePlanService(planRepo repositories.IPlanRepository, ledgerRepo repositories.LedgerRepository, creditService services.CreditServiceInterface) services.PlanServiceInterface {
	return services.NewPlanService(planRepo, ledgerRepo, creditService)
}
