package workouts_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"fitmind/internal/repositories"
	"fitmind/internal/services"
	"fitmind/pkg/utils"
)

var Module = fx.Provide(
	provideWorkoutService, provideWorkoutRepo)

func provideWorkoutRepo(db *gorm.DB) repositories.IWorkoutRepository {
	return repositories.NewWorkoutRepository(db)
}

func provideWorkoutService(workoutRepo repositories.IWorkoutRepository, creditService services.CreditServiceInterface, generator utils.GeneratorClientInterface) services.WorkoutServiceInterface {
	return services.NewWorkoutService(workoutRepo, creditService, generator)
}
