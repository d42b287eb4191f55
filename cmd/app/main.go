package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"fitmind/cmd/fx/account_fx"
	"fitmind/cmd/fx/controllers_fx"
	"fitmind/cmd/fx/credits_fx"
	"fitmind/cmd/fx/db_fx"
	"fitmind/cmd/fx/diets_fx"
	"fitmind/cmd/fx/generator_fx"
	"fitmind/cmd/fx/ledger_fx"
	"fitmind/cmd/fx/mail_fx"
	"fitmind/cmd/fx/memcache_fx"
	"fitmind/cmd/fx/payment_service_fx"
	"fitmind/cmd/fx/plans_fx"
	"fitmind/cmd/fx/workouts_fx"
	"fitmind/internal/api/controllers"
	"fitmind/pkg/middleware"
)

// @title FitMind API
// @version 1.0
// @description Credit-metered fitness planning backend.
// @BasePath /
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	app := fx.New(
		db_fx.Module,
		ledger_fx.Module,
		credits_fx.Module,
		plans_fx.Module,
		generator_fx.Module,
		workouts_fx.Module,
		diets_fx.Module,
		memcache_fx.Module,
		mail_fx.Module,
		account_fx.Module,
		payment_service_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := os.Getenv("PORT")
				if port == "" {
					port = "8080"
				}
				log.Printf("Starting HTTP server at :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	creditsController *controllers.CreditsController,
	plansController *controllers.PlansController,
	workoutsController *controllers.WorkoutsController,
	dietsController *controllers.DietsController,
	accountController *controllers.AccountController,
	paymentController *controllers.PaymentController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r,
		creditsController,
		plansController,
		workoutsController,
		dietsController,
		accountController,
		paymentController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	creditsController *controllers.CreditsController,
	plansController *controllers.PlansController,
	workoutsController *controllers.WorkoutsController,
	dietsController *controllers.DietsController,
	accountController *controllers.AccountController,
	paymentController *controllers.PaymentController) {

	// Legacy credits API, flat JSON bodies keyed by userId query/body params.
	creditsGroup := r.Group("/api/credits")
	creditsGroup.GET("", creditsController.GetCredits)
	creditsGroup.POST("", creditsController.AddCredits)
	creditsGroup.PUT("", creditsController.DebitCredits)
	creditsGroup.GET("/actions", creditsController.GetActionLogs)

	plansGroup := r.Group("/plans")
	plansGroup.GET("", plansController.ListPlans)
	plansGroup.GET("/:id", plansController.GetPlan)
	plansGroup.POST("/upgrade", middleware.JWTAuthMiddleware(), plansController.UpgradePlan)

	packagesGroup := r.Group("/packages")
	packagesGroup.GET("", plansController.ListPackages)
	packagesGroup.POST("/purchase", middleware.JWTAuthMiddleware(), plansController.PurchasePackage)

	accountsGroup := r.Group("/accounts")
	accountsGroup.POST("/signup", accountController.SignUp)
	accountsGroup.POST("/login", accountController.Login)
	accountsGroup.POST("/password/forgot", accountController.RequestPasswordReset)
	accountsGroup.POST("/password/reset", accountController.ResetPassword)
	accountsGroup.GET("/me", middleware.JWTAuthMiddleware(), accountController.Profile)

	workoutsGroup := r.Group("/workouts", middleware.JWTAuthMiddleware())
	workoutsGroup.POST("/generate", workoutsController.GenerateWorkout)
	workoutsGroup.POST("", workoutsController.SaveWorkout)
	workoutsGroup.GET("", workoutsController.ListWorkouts)
	workoutsGroup.GET("/similar", workoutsController.FindSimilarWorkouts)

	dietsGroup := r.Group("/diets", middleware.JWTAuthMiddleware())
	dietsGroup.POST("/generate", dietsController.GenerateDiet)
	dietsGroup.POST("", dietsController.SaveDiet)
	dietsGroup.GET("", dietsController.ListDiets)

	paymentsGroup := r.Group("/payments")
	paymentsGroup.POST("/create-checkout", middleware.JWTAuthMiddleware(), paymentController.CreateCheckout)
	paymentsGroup.POST("/webhook", paymentController.HandleWebhook)
}
