package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fitmind/internal/models/db_models"
	"fitmind/internal/models/request_models"
	"fitmind/internal/models/response_models"
	"fitmind/internal/services"
	"fitmind/pkg/utils"
)

type WorkoutsController struct {
	workoutService services.WorkoutServiceInterface
}

func NewWorkoutsController(workoutService services.WorkoutServiceInterface) *WorkoutsController {
	return &WorkoutsController{
		workoutService: workoutService,
	}
}

// GenerateWorkout godoc
// @Summary Generate a workout plan (costs 1 credit)
// @Tags Workouts
// @Accept json
// @Produce json
// @Param request body request_models.GenerateWorkoutRequest true "Generate Workout Request"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /workouts/generate [post]
func (w *WorkoutsController) GenerateWorkout(c *gin.Context) {
	var req request_models.GenerateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	userID := c.GetString("user_id")
	if userID == "" {
		utils.RespondError(c, http.StatusBadRequest, "user_id is required")
		return
	}

	workout, receipt, err := w.workoutService.Generate(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"workout": workout, "credits": receipt}, "Workout generated successfully")
}

// SaveWorkout godoc
// @Summary Save a workout (costs 1 credit)
// @Tags Workouts
// @Accept json
// @Produce json
// @Param request body request_models.SaveWorkoutRequest true "Save Workout Request"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /workouts [post]
func (w *WorkoutsController) SaveWorkout(c *gin.Context) {
	var req request_models.SaveWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	userID := c.GetString("user_id")
	if userID == "" {
		utils.RespondError(c, http.StatusBadRequest, "user_id is required")
		return
	}

	workout, receipt, err := w.workoutService.Save(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	saved := response_models.ToSavedWorkoutResponses([]db_models.SavedWorkout{*workout})
	utils.RespondSuccess(c, gin.H{
		"workout": saved[0],
		"credits": receipt,
	}, "Workout saved successfully")
}

// ListWorkouts godoc
// @Summary List the user's saved workouts
// @Tags Workouts
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /workouts [get]
func (w *WorkoutsController) ListWorkouts(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		utils.RespondError(c, http.StatusBadRequest, "user_id is required")
		return
	}

	workouts, err := w.workoutService.List(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.ToSavedWorkoutResponses(workouts), "Workouts fetched successfully")
}

// FindSimilarWorkouts godoc
// @Summary Find saved workouts similar to a free-text query
// @Tags Workouts
// @Produce json
// @Param q query string true "Search query"
// @Param limit query int false "Result limit"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /workouts/similar [get]
func (w *WorkoutsController) FindSimilarWorkouts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		utils.RespondError(c, http.StatusBadRequest, "q is required")
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	matches, err := w.workoutService.FindSimilar(c.Request.Context(), query, limit)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, matches, "Similar workouts fetched successfully")
}
