package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fitmind/internal/models/db_models"
	"fitmind/internal/models/request_models"
	"fitmind/internal/models/response_models"
	"fitmind/internal/services"
	"fitmind/pkg/utils"
)

type DietsController struct {
	dietService services.DietServiceInterface
}

func NewDietsController(dietService services.DietServiceInterface) *DietsController {
	return &DietsController{
		dietService: dietService,
	}
}

// GenerateDiet godoc
// @Summary Generate a diet plan (costs 2 credits)
// @Tags Diets
// @Accept json
// @Produce json
// @Param request body request_models.GenerateDietRequest true "Generate Diet Request"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /diets/generate [post]
func (d *DietsController) GenerateDiet(c *gin.Context) {
	var req request_models.GenerateDietRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	userID := c.GetString("user_id")
	if userID == "" {
		utils.RespondError(c, http.StatusBadRequest, "user_id is required")
		return
	}

	diet, receipt, err := d.dietService.Generate(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"diet": diet, "credits": receipt}, "Diet generated successfully")
}

// SaveDiet godoc
// @Summary Save a diet plan (costs 1 credit)
// @Tags Diets
// @Accept json
// @Produce json
// @Param request body request_models.SaveDietRequest true "Save Diet Request"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /diets [post]
func (d *DietsController) SaveDiet(c *gin.Context) {
	var req request_models.SaveDietRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	userID := c.GetString("user_id")
	if userID == "" {
		utils.RespondError(c, http.StatusBadRequest, "user_id is required")
		return
	}

	diet, receipt, err := d.dietService.Save(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	saved := response_models.ToSavedDietResponses([]db_models.SavedDiet{*diet})
	utils.RespondSuccess(c, gin.H{
		"diet":    saved[0],
		"credits": receipt,
	}, "Diet saved successfully")
}

// ListDiets godoc
// @Summary List the user's saved diet plans
// @Tags Diets
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /diets [get]
func (d *DietsController) ListDiets(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		utils.RespondError(c, http.StatusBadRequest, "user_id is required")
		return
	}

	diets, err := d.dietService.List(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.ToSavedDietResponses(diets), "Diets fetched successfully")
}
