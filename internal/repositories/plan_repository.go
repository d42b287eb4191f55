package repositories

import (
	"context"

	"fitmind/internal/catalog"
)

// IPlanRepository fronts the static plan/package catalog. Plans are immutable
// configuration, so there is no database table behind this repository; the
// interface keeps catalog access mockable like every other store.
type IPlanRepository interface {
	GetPlanByID(ctx context.Context, planID string) (*catalog.Plan, error)
	GetAllPlans(ctx context.Context) ([]catalog.Plan, error)
	GetPackageByID(ctx context.Context, packageID string) (*catalog.CreditPackage, error)
	GetAllPackages(ctx context.Context) ([]catalog.CreditPackage, error)
}

type PlanRepository struct{}

func NewPlanRepository() IPlanRepository {
	return &PlanRepository{}
}

func (p PlanRepository) GetPlanByID(ctx context.Context, planID string) (*catalog.Plan, error) {
	plan, ok := catalog.PlanByID(planID)
	if !ok {
		return nil, nil
	}
	return &plan, nil
}

func (p PlanRepository) GetAllPlans(ctx context.Context) ([]catalog.Plan, error) {
	return catalog.Plans, nil
}

func (p PlanRepository) GetPackageByID(ctx context.Context, packageID string) (*catalog.CreditPackage, error) {
	pkg, ok := catalog.PackageByID(packageID)
	if !ok {
		return nil, nil
	}
	return &pkg, nil
}

func (p PlanRepository) GetAllPackages(ctx context.Context) ([]catalog.CreditPackage, error) {
	return catalog.CreditPackages, nil
}
