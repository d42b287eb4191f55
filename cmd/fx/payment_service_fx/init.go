package payment_service_fx

import (
	"log"
	"os"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"fitmind/internal/repositories"
	"fitmind/internal/services"
)

var Module = fx.Provide(providePaymentService)

func providePaymentService(db *gorm.DB, planRepo repositories.IPlanRepository, mailService services.IMailService) services.PaymentServiceInterface {
	cfg := services.PayOSConfig{
		ClientID:     os.Getenv("PAYOS_CLIENT_ID"),
		ApiKey:       os.Getenv("PAYOS_API_KEY"),
		ChecksumKey:  os.Getenv("PAYOS_CHECKSUM_KEY"),
		ReturnURL:    os.Getenv("PAYOS_RETURN_URL"),
		CancelURL:    os.Getenv("PAYOS_CANCEL_URL"),
		ProviderName: "payos",
	}

	instance, err := services.NewPaymentService(db, cfg, planRepo, mailService)
	if err != nil {
		log.Printf("Error initializing PaymentService: %v", err)
	}

	return instance
}
