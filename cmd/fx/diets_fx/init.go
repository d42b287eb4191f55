package diets_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"fitmind/internal/repositories"
	"fitmind/internal/services"
	"fitmind/pkg/utils"
)

var Module = fx.Provide(
	provideDietService, provideDietRepo)

func provideDietRepo(db *gorm.DB) repositories.IDietRepository {
	return repositories.NewDietRepository(db)
}

func provideDietService(dietRepo repositories.IDietRepository, creditService services.CreditServiceInterface, generator utils.GeneratorClientInterface) services.DietServiceInterface {
	return services.NewDietService(dietRepo, creditService, generator)
}
