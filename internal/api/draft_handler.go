package api

import (
	"errors"
	"net/http"
	"strconv"

	"fitplan/planner-app/internal/draft"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DraftHandler exposes the plan draft manager over HTTP. Each request
// loads the caller's draft session for the scope, applies one operation
// and persists the result.
type DraftHandler struct {
	manager *draft.Manager
}

// NewDraftHandler creates a new DraftHandler.
func NewDraftHandler(manager *draft.Manager) *DraftHandler {
	return &DraftHandler{manager: manager}
}

// --- DTOs ---

type SetDraftNameRequest struct {
	Name string `json:"name" binding:"required"`
}

type SetDayNameRequest struct {
	Name string `json:"name" binding:"required"`
}

type AddDraftExerciseRequest struct {
	ExerciseID  string `json:"exerciseId" binding:"required"`
	Sets        int    `json:"sets" binding:"required,min=1"`
	Reps        int    `json:"reps" binding:"required,min=1"`
	RestSeconds int    `json:"restSeconds" binding:"min=0"`
}

// DraftResponse is the DTO for returning the working draft state. Day keys
// are serialized as decimal strings (JSON object keys).
type DraftResponse struct {
	Scope          string                   `json:"scope"`
	Week           int                      `json:"week"`
	Name           string                   `json:"name"`
	DayNames       map[int]string           `json:"dayNames"`
	DayExercises   map[int][]draft.Exercise `json:"dayExercises"`
	PendingChanges bool                     `json:"pendingChanges"`
	// LoadError reports a failed remote seed; the draft is then empty but
	// still editable (soft failure, surfaced rather than swallowed).
	LoadError string `json:"loadError,omitempty"`
}

func (h *DraftHandler) mapSessionToResponse(s *draft.Session, loadErr error) DraftResponse {
	response := DraftResponse{
		Scope:          s.Scope,
		Week:           s.Week,
		Name:           s.Name,
		DayNames:       s.DayNames,
		DayExercises:   s.DayExercises,
		PendingChanges: h.manager.HasPendingChanges(s),
	}
	if loadErr != nil {
		response.LoadError = loadErr.Error()
	}
	return response
}

// loadSession resolves scope/week from the request and loads the draft,
// aborting on errors that should not fall through to the handler.
func (h *DraftHandler) loadSession(c *gin.Context) (*draft.Session, bool) {
	userID, ok := getUserObjectID(c)
	if !ok {
		return nil, false
	}
	scope := c.Param("scope")
	if scope != draft.ScopeCreate {
		if _, err := primitive.ObjectIDFromHex(scope); err != nil {
			abortWithError(c, http.StatusBadRequest, "Scope must be 'new' or a plan ID.")
			return nil, false
		}
	}
	week, ok := weekFromQuery(c)
	if !ok {
		return nil, false
	}

	session, err := h.manager.Load(c.Request.Context(), userID, scope, week)
	if err != nil {
		switch {
		case errors.Is(err, draft.ErrPlanNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, draft.ErrPlanAccessDenied):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to load draft.")
		}
		return nil, false
	}
	return session, true
}

// --- Handler Methods ---

// GetDraft loads (or seeds) the draft for a scope.
func (h *DraftHandler) GetDraft(c *gin.Context) {
	userID, ok := getUserObjectID(c)
	if !ok {
		return
	}
	scope := c.Param("scope")
	if scope != draft.ScopeCreate {
		if _, err := primitive.ObjectIDFromHex(scope); err != nil {
			abortWithError(c, http.StatusBadRequest, "Scope must be 'new' or a plan ID.")
			return
		}
	}
	week, ok := weekFromQuery(c)
	if !ok {
		return
	}

	session, err := h.manager.Load(c.Request.Context(), userID, scope, week)
	switch {
	case errors.Is(err, draft.ErrPlanNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
		return
	case errors.Is(err, draft.ErrPlanAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
		return
	}
	// Any other load error degrades to an empty-but-editable draft with
	// the failure reported alongside.
	c.JSON(http.StatusOK, h.mapSessionToResponse(session, err))
}

// SetName updates the draft's plan name.
func (h *DraftHandler) SetName(c *gin.Context) {
	var req SetDraftNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	session, ok := h.loadSession(c)
	if !ok {
		return
	}

	h.manager.SetName(c.Request.Context(), session, req.Name)
	c.JSON(http.StatusOK, h.mapSessionToResponse(session, nil))
}

// SetDayName names a day slot in the draft.
func (h *DraftHandler) SetDayName(c *gin.Context) {
	var req SetDayNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	dayOrder, err := strconv.Atoi(c.Param("order"))
	if err != nil || dayOrder < 0 {
		abortWithError(c, http.StatusBadRequest, "Day order must be a non-negative integer.")
		return
	}
	session, ok := h.loadSession(c)
	if !ok {
		return
	}

	h.manager.SetDayName(c.Request.Context(), session, dayOrder, req.Name)
	c.JSON(http.StatusOK, h.mapSessionToResponse(session, nil))
}

// AddExercise appends an exercise placement to a draft day.
func (h *DraftHandler) AddExercise(c *gin.Context) {
	var req AddDraftExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	dayOrder, err := strconv.Atoi(c.Param("order"))
	if err != nil || dayOrder < 0 {
		abortWithError(c, http.StatusBadRequest, "Day order must be a non-negative integer.")
		return
	}
	exerciseID, err := primitive.ObjectIDFromHex(req.ExerciseID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format.")
		return
	}
	session, ok := h.loadSession(c)
	if !ok {
		return
	}

	err = h.manager.AddExercise(c.Request.Context(), session, dayOrder, draft.Exercise{
		ExerciseID:  exerciseID,
		Sets:        req.Sets,
		Reps:        req.Reps,
		RestSeconds: req.RestSeconds,
	})
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, h.mapSessionToResponse(session, nil))
}

// RemoveExercise removes one exercise placement from a draft day.
func (h *DraftHandler) RemoveExercise(c *gin.Context) {
	dayOrder, err := strconv.Atoi(c.Param("order"))
	if err != nil || dayOrder < 0 {
		abortWithError(c, http.StatusBadRequest, "Day order must be a non-negative integer.")
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		abortWithError(c, http.StatusBadRequest, "Exercise index must be a non-negative integer.")
		return
	}
	session, ok := h.loadSession(c)
	if !ok {
		return
	}

	if err := h.manager.RemoveExercise(c.Request.Context(), session, dayOrder, index); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, h.mapSessionToResponse(session, nil))
}

// GetChanges reports whether the draft differs from the committed state.
func (h *DraftHandler) GetChanges(c *gin.Context) {
	session, ok := h.loadSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"pendingChanges": h.manager.HasPendingChanges(session)})
}

// Save validates and promotes the draft to persisted rows.
func (h *DraftHandler) Save(c *gin.Context) {
	session, ok := h.loadSession(c)
	if !ok {
		return
	}

	plan, err := h.manager.Save(c.Request.Context(), session)
	if err != nil {
		switch {
		case errors.Is(err, draft.ErrEmptyPlanName),
			errors.Is(err, draft.ErrMissingDayName),
			errors.Is(err, draft.ErrInvalidParameters):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, draft.ErrPlanNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, draft.ErrPlanAccessDenied):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to save plan.")
		}
		return
	}
	c.JSON(http.StatusOK, MapPlanToResponse(plan))
}

// Discard rolls the draft back without touching persisted rows.
func (h *DraftHandler) Discard(c *gin.Context) {
	session, ok := h.loadSession(c)
	if !ok {
		return
	}

	if err := h.manager.Discard(c.Request.Context(), session); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to discard draft.")
		return
	}
	c.Status(http.StatusNoContent)
}
