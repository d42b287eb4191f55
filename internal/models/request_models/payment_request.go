package request_models

type CreateCheckoutRequest struct {
	PackageID string `json:"package_id" binding:"required"`
}
