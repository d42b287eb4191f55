package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fitmind/internal/models/request_models"
	"fitmind/internal/services"
	"fitmind/pkg/utils"
)

type PlansController struct {
	planService services.PlanServiceInterface
}

func NewPlansController(planService services.PlanServiceInterface) *PlansController {
	return &PlansController{
		planService: planService,
	}
}

// ListPlans godoc
// @Summary List subscription plans
// @Tags Plans
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /plans [get]
func (p *PlansController) ListPlans(c *gin.Context) {
	plans, err := p.planService.GetPlans(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, plans, "Plans fetched successfully")
}

// GetPlan godoc
// @Summary Get one plan by id
// @Tags Plans
// @Produce json
// @Param id path string true "Plan ID"
// @Success 200 {object} utils.APIResponse
// @Router /plans/{id} [get]
func (p *PlansController) GetPlan(c *gin.Context) {
	plan, err := p.planService.GetPlanByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, plan, "Plan fetched successfully")
}

// ListPackages godoc
// @Summary List credit top-up packages
// @Tags Plans
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /packages [get]
func (p *PlansController) ListPackages(c *gin.Context) {
	packages, err := p.planService.GetPackages(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, packages, "Packages fetched successfully")
}

// UpgradePlan godoc
// @Summary Upgrade the user's plan and grant its monthly credits
// @Tags Plans
// @Accept json
// @Produce json
// @Param request body request_models.UpgradePlanRequest true "Upgrade Plan Request"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /plans/upgrade [post]
func (p *PlansController) UpgradePlan(c *gin.Context) {
	var req request_models.UpgradePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	userID := c.GetString("user_id")
	if userID == "" {
		utils.RespondError(c, http.StatusBadRequest, "user_id is required")
		return
	}

	receipt, err := p.planService.UpgradePlan(c.Request.Context(), userID, req.PlanID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, receipt, "Plan upgraded successfully")
}

// PurchasePackage godoc
// @Summary Purchase a credit package (direct grant)
// @Tags Plans
// @Accept json
// @Produce json
// @Param request body request_models.PurchasePackageRequest true "Purchase Package Request"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /packages/purchase [post]
func (p *PlansController) PurchasePackage(c *gin.Context) {
	var req request_models.PurchasePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	userID := c.GetString("user_id")
	if userID == "" {
		utils.RespondError(c, http.StatusBadRequest, "user_id is required")
		return
	}

	receipt, err := p.planService.PurchasePackage(c.Request.Context(), userID, req.PackageID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, receipt, "Package purchased successfully")
}
