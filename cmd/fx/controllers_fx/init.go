package controllers_fx

import (
	"go.uber.org/fx"

	"fitmind/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewCreditsController),
	fx.Provide(controllers.NewPlansController),
	fx.Provide(controllers.NewWorkoutsController),
	fx.Provide(controllers.NewDietsController),
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewPaymentController))
