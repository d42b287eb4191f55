package services

import (
	"context"
	"fmt"

	"fitmind/internal/catalog"
	"fitmind/internal/models/db_models"
	"fitmind/internal/repositories"
	"fitmind/pkg/utils"
)

type PlanServiceInterface interface {
	GetPlans(ctx context.Context) ([]catalog.Plan, error)
	GetPlanByID(ctx context.Context, planID string) (*catalog.Plan, error)
	GetPackages(ctx context.Context) ([]catalog.CreditPackage, error)

	// UpgradePlan switches the user to the plan and grants its monthly credit
	// allotment as an earned transaction. No proration, no downgrade path.
	UpgradePlan(ctx context.Context, userID, planID string) (*AddReceipt, error)

	// PurchasePackage grants a package's credits immediately as a purchased
	// transaction (the non-gateway path; checkout goes through PaymentService).
	PurchasePackage(ctx context.Context, userID, packageID string) (*AddReceipt, error)
}

func NewPlanService(planRepo repositories.IPlanRepository, ledgerRepo repositories.LedgerRepository, creditService CreditServiceInterface) PlanServiceInterface {
	return &PlanService{
		planRepo:      planRepo,
		ledgerRepo:    ledgerRepo,
		creditService: creditService,
	}
}

type PlanService struct {
	planRepo      repositories.IPlanRepository
	ledgerRepo    repositories.LedgerRepository
	creditService CreditServiceInterface
}

func (p *PlanService) GetPlans(ctx context.Context) ([]catalog.Plan, error) {
	return p.planRepo.GetAllPlans(ctx)
}

func (p *PlanService) GetPlanByID(ctx context.Context, planID string) (*catalog.Plan, error) {
	plan, err := p.planRepo.GetPlanByID(ctx, planID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if plan == nil {
		return nil, utils.ErrPlanNotFound
	}
	return plan, nil
}

func (p *PlanService) GetPackages(ctx context.Context) ([]catalog.CreditPackage, error) {
	return p.planRepo.GetAllPackages(ctx)
}

func (p *PlanService) UpgradePlan(ctx context.Context, userID, planID string) (*AddReceipt, error) {
	plan, err := p.planRepo.GetPlanByID(ctx, planID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if plan == nil {
		return nil, utils.ErrPlanNotFound
	}

	user, err := p.ledgerRepo.GetOrCreateUser(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	if err := p.ledgerRepo.UpdatePlan(ctx, user.ID, plan.ID); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return p.creditService.Add(ctx, userID, plan.MonthlyCredits,
		db_models.TxnTypeEarned,
		fmt.Sprintf("Monthly credits for %s plan", plan.Name))
}

func (p *PlanService) PurchasePackage(ctx context.Context, userID, packageID string) (*AddReceipt, error) {
	pkg, err := p.planRepo.GetPackageByID(ctx, packageID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if pkg == nil {
		return nil, utils.ErrPackageNotFound
	}

	return p.creditService.Add(ctx, userID, pkg.Credits,
		db_models.TxnTypePurchased,
		fmt.Sprintf("Purchased %s (%d credits)", pkg.Name, pkg.Credits))
}
