package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/payOSHQ/payos-lib-golang"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"fitmind/internal/models/db_models"
	"fitmind/internal/models/response_models"
	"fitmind/internal/repositories"
	"fitmind/pkg/utils"
)

type PayOSConfig struct {
	ClientID     string
	ApiKey       string
	ChecksumKey  string
	ReturnURL    string
	CancelURL    string
	ProviderName string // stored on Payment.Provider
}

type PaymentServiceInterface interface {
	// CreateCheckoutForPackage creates a pending Payment and returns the
	// provider payment link for a credit package.
	CreateCheckoutForPackage(ctx context.Context, userID, packageID string) (*response_models.CreateCheckoutResponse, error)

	// HandleWebhook verifies the provider callback and, exactly once, marks
	// the payment paid and grants the purchased credits.
	HandleWebhook(c *gin.Context)
}

type paymentService struct {
	db          *gorm.DB
	cfg         PayOSConfig
	planRepo    repositories.IPlanRepository
	mailService IMailService
}

func NewPaymentService(
	db *gorm.DB,
	cfg PayOSConfig,
	planRepo repositories.IPlanRepository,
	mailService IMailService,
) (PaymentServiceInterface, error) {
	if cfg.ClientID == "" || cfg.ApiKey == "" || cfg.ChecksumKey == "" {
		return nil, errors.New("missing payOS credentials")
	}
	if cfg.ProviderName == "" {
		cfg.ProviderName = "payos"
	}
	return &paymentService{
		db:          db,
		cfg:         cfg,
		planRepo:    planRepo,
		mailService: mailService,
	}, nil
}

func (p *paymentService) CreateCheckoutForPackage(ctx context.Context, userID, packageID string) (*response_models.CreateCheckoutResponse, error) {
	pkg, err := p.planRepo.GetPackageByID(ctx, packageID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if pkg == nil {
		return nil, utils.ErrPackageNotFound
	}

	// payOS expects an int64 order code; unix seconds plus a short random
	// suffix keeps it unique enough across concurrent checkouts.
	orderCode := time.Now().Unix()%1_000_000_000 + int64(rand.Intn(9000)+1000)

	payment := &db_models.Payment{
		UserID:        userID,
		PackageID:     pkg.ID,
		Credits:       pkg.Credits,
		AmountMinor:   pkg.PriceMinor,
		Currency:      strings.ToUpper(pkg.Currency),
		Status:        db_models.PaymentStatusPending,
		Provider:      p.cfg.ProviderName,
		ProviderTxnID: fmt.Sprintf("payos:%d", orderCode),
		Metadata: jsonRaw(map[string]any{
			"package_id": pkg.ID,
			"credits":    pkg.Credits,
		}),
	}
	if err := p.db.WithContext(ctx).Create(payment).Error; err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}

	if err := payos.Key(p.cfg.ClientID, p.cfg.ApiKey, p.cfg.ChecksumKey); err != nil {
		return nil, fmt.Errorf("payos client init: %w", err)
	}

	body := payos.CheckoutRequestType{
		OrderCode: orderCode,
		Amount:    int(pkg.PriceMinor),
		Items: []payos.Item{{
			Name:     fmt.Sprintf("%s (%d credits)", pkg.Name, pkg.Credits),
			Price:    int(pkg.PriceMinor),
			Quantity: 1,
		}},
		Description: fmt.Sprintf("Credit package %s", pkg.ID),
		CancelUrl:   p.cfg.CancelURL,
		ReturnUrl:   p.cfg.ReturnURL,
	}

	resp, err := payos.CreatePaymentLink(body)
	if err != nil {
		_ = p.db.WithContext(ctx).Model(payment).
			Update("status", db_models.PaymentStatusFailed).Error
		return nil, fmt.Errorf("payos create link: %w", err)
	}

	return &response_models.CreateCheckoutResponse{
		OrderCode:    orderCode,
		AmountMinor:  pkg.PriceMinor,
		Credits:      pkg.Credits,
		PaymentURL:   resp.CheckoutUrl,
		ProviderName: p.cfg.ProviderName,
	}, nil
}

func (p *paymentService) HandleWebhook(c *gin.Context) {
	if err := payos.Key(p.cfg.ClientID, p.cfg.ApiKey, p.cfg.ChecksumKey); err != nil {
		log.Printf("payos key init failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Payment provider unavailable"})
		return
	}

	rawBody, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	var body payos.WebhookType
	if err := json.Unmarshal(rawBody, &body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid webhook payload"})
		return
	}

	data, payosErr := payos.VerifyPaymentWebhookData(body)
	if payosErr != nil {
		log.Printf("webhook verification failed: %v", payosErr)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Failed to verify webhook data"})
		return
	}

	providerTxn := fmt.Sprintf("payos:%d", data.OrderCode)

	var payment db_models.Payment
	if err := p.db.Where("provider_txn_id = ?", providerTxn).First(&payment).Error; err != nil {
		// Ack to avoid a retry storm; log for investigation.
		log.Printf("webhook: payment not found for order %d", data.OrderCode)
		c.JSON(http.StatusOK, gin.H{"message": "ignored"})
		return
	}

	// Idempotency: a paid payment is never granted twice.
	if payment.Status != db_models.PaymentStatusPaid {
		now := time.Now().Unix()
		err = p.db.Transaction(func(tx *gorm.DB) error {
			res := tx.Model(&db_models.Payment{}).
				Where("id = ? AND status <> ?", payment.ID, db_models.PaymentStatusPaid).
				Updates(map[string]interface{}{
					"status":  db_models.PaymentStatusPaid,
					"paid_at": now,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return nil // lost the race to a concurrent delivery
			}
			return p.grantPackageCredits(tx, &payment)
		})
		if err != nil {
			log.Printf("webhook: failed to settle order %d: %v", data.OrderCode, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process payment"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

func (p *paymentService) grantPackageCredits(tx *gorm.DB, payment *db_models.Payment) error {
	pkg, err := p.planRepo.GetPackageByID(context.Background(), payment.PackageID)
	if err != nil || pkg == nil {
		return fmt.Errorf("package %s not found while settling", payment.PackageID)
	}

	res := tx.Model(&db_models.User{}).
		Where("id = ?", payment.UserID).
		Updates(map[string]interface{}{
			"credits":    gorm.Expr("credits + ?", pkg.Credits),
			"updated_at": time.Now().Unix(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user %s not found while settling", payment.UserID)
	}

	txn := &db_models.CreditTransaction{
		UserID:      payment.UserID,
		Type:        db_models.TxnTypePurchased,
		Amount:      pkg.Credits,
		Description: fmt.Sprintf("Purchased %s (%d credits)", pkg.Name, pkg.Credits),
	}
	if err := repositories.AppendTransaction(tx, txn); err != nil {
		return err
	}

	p.sendReceipt(payment, pkg.Name, pkg.Credits)
	return nil
}

// sendReceipt is best effort; settlement must not fail on mail problems.
func (p *paymentService) sendReceipt(payment *db_models.Payment, packageName string, credits int) {
	var user db_models.User
	if err := p.db.First(&user, "id = ?", payment.UserID).Error; err != nil || user.Email == "" {
		return
	}
	if err := p.mailService.SendPurchaseReceipt(user.Email, packageName, credits); err != nil {
		log.Printf("receipt mail to %s failed: %v", user.Email, err)
	}
}

func jsonRaw(v any) datatypes.JSON {
	b, _ := json.Marshal(v)
	return datatypes.JSON(b)
}
