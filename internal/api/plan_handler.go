package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"fitplan/planner-app/internal/domain"
	"fitplan/planner-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanHandler holds the plan service dependency.
type PlanHandler struct {
	planService service.PlanService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// --- DTOs ---

type CreatePlanRequest struct {
	Name string `json:"name" binding:"required"`
}

type RenamePlanRequest struct {
	Name string `json:"name" binding:"required"`
}

// PlanResponse is the DTO for returning plan details.
type PlanResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	IsCurrent       bool      `json:"isCurrent"`
	CurrentDayOrder *int      `json:"currentDayOrder,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// MapPlanToResponse converts a domain.Plan to PlanResponse DTO.
func MapPlanToResponse(plan *domain.Plan) PlanResponse {
	if plan == nil {
		return PlanResponse{}
	}
	return PlanResponse{
		ID:              plan.ID.Hex(),
		Name:            plan.Name,
		IsCurrent:       plan.IsCurrent,
		CurrentDayOrder: plan.CurrentDayOrder,
		CreatedAt:       plan.CreatedAt,
		UpdatedAt:       plan.UpdatedAt,
	}
}

func planIDFromPath(c *gin.Context) (primitive.ObjectID, bool) {
	planID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format.")
		return primitive.NilObjectID, false
	}
	return planID, true
}

func weekFromQuery(c *gin.Context) (int, bool) {
	weekStr := c.DefaultQuery("week", "1")
	week, err := strconv.Atoi(weekStr)
	if err != nil || week < 1 {
		abortWithError(c, http.StatusBadRequest, "Week must be a positive integer.")
		return 0, false
	}
	return week, true
}

func (h *PlanHandler) abortWithPlanError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrPlanNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrPlanAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrPlanNameRequired), errors.Is(err, service.ErrDayNotFound):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}

// --- Handler Methods ---

// CreatePlan creates an empty plan outside the draft flow.
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, ok := getUserObjectID(c)
	if !ok {
		return
	}

	plan, err := h.planService.CreatePlan(c.Request.Context(), userID, req.Name)
	if err != nil {
		h.abortWithPlanError(c, err, "Failed to create plan.")
		return
	}
	c.JSON(http.StatusCreated, MapPlanToResponse(plan))
}

// GetPlans lists the caller's plans, newest first.
func (h *PlanHandler) GetPlans(c *gin.Context) {
	userID, ok := getUserObjectID(c)
	if !ok {
		return
	}

	plans, err := h.planService.GetPlans(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve plans.")
		return
	}

	responses := make([]PlanResponse, len(plans))
	for i := range plans {
		responses[i] = MapPlanToResponse(&plans[i])
	}
	c.JSON(http.StatusOK, responses)
}

// GetPlan returns one plan the caller owns.
func (h *PlanHandler) GetPlan(c *gin.Context) {
	userID, ok := getUserObjectID(c)
	if !ok {
		return
	}
	planID, ok := planIDFromPath(c)
	if !ok {
		return
	}

	plan, err := h.planService.GetPlan(c.Request.Context(), userID, planID)
	if err != nil {
		h.abortWithPlanError(c, err, "Failed to retrieve plan.")
		return
	}
	c.JSON(http.StatusOK, MapPlanToResponse(plan))
}

// RenamePlan updates the plan's name.
func (h *PlanHandler) RenamePlan(c *gin.Context) {
	var req RenamePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, ok := getUserObjectID(c)
	if !ok {
		return
	}
	planID, ok := planIDFromPath(c)
	if !ok {
		return
	}

	plan, err := h.planService.RenamePlan(c.Request.Context(), userID, planID, req.Name)
	if err != nil {
		h.abortWithPlanError(c, err, "Failed to rename plan.")
		return
	}
	c.JSON(http.StatusOK, MapPlanToResponse(plan))
}

// SetCurrentPlan marks the plan as the caller's current one.
func (h *PlanHandler) SetCurrentPlan(c *gin.Context) {
	userID, ok := getUserObjectID(c)
	if !ok {
		return
	}
	planID, ok := planIDFromPath(c)
	if !ok {
		return
	}

	if err := h.planService.SetCurrentPlan(c.Request.Context(), userID, planID); err != nil {
		h.abortWithPlanError(c, err, "Failed to set current plan.")
		return
	}
	c.Status(http.StatusNoContent)
}

// SetCurrentDay marks the day the caller is on within a plan.
func (h *PlanHandler) SetCurrentDay(c *gin.Context) {
	userID, ok := getUserObjectID(c)
	if !ok {
		return
	}
	planID, ok := planIDFromPath(c)
	if !ok {
		return
	}
	dayOrder, err := strconv.Atoi(c.Param("order"))
	if err != nil || dayOrder < 0 {
		abortWithError(c, http.StatusBadRequest, "Day order must be a non-negative integer.")
		return
	}

	if err := h.planService.SetCurrentDay(c.Request.Context(), userID, planID, dayOrder); err != nil {
		h.abortWithPlanError(c, err, "Failed to set current day.")
		return
	}
	c.Status(http.StatusNoContent)
}

// GetDays returns the plan's days for one week, grouped and ordered.
func (h *PlanHandler) GetDays(c *gin.Context) {
	userID, ok := getUserObjectID(c)
	if !ok {
		return
	}
	planID, ok := planIDFromPath(c)
	if !ok {
		return
	}
	week, ok := weekFromQuery(c)
	if !ok {
		return
	}

	days, err := h.planService.GetDays(c.Request.Context(), userID, planID, week)
	if err != nil {
		h.abortWithPlanError(c, err, "Failed to retrieve plan days.")
		return
	}
	c.JSON(http.StatusOK, days)
}
