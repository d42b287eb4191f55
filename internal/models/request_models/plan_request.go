package request_models

type UpgradePlanRequest struct {
	PlanID string `json:"plan_id" binding:"required"`
}

type PurchasePackageRequest struct {
	PackageID string `json:"package_id" binding:"required"`
}
