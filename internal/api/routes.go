package api

import (
	"net/http"

	"fitplan/planner-app/internal/draft"
	"fitplan/planner-app/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	exerciseService service.ExerciseService,
	planService service.PlanService,
	mediaService service.MediaService,
	draftManager *draft.Manager,
) {
	authHandler := NewAuthHandler(authService)
	exerciseHandler := NewExerciseHandler(exerciseService, mediaService)
	planHandler := NewPlanHandler(planService)
	draftHandler := NewDraftHandler(draftManager)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userIDStr, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			c.JSON(http.StatusOK, gin.H{"userId": userIDStr})
		})

		// --- Exercise Library ---
		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.POST("", exerciseHandler.CreateExercise)
			// GET /api/v1/exercises?search=bench does a picker-style search
			exerciseGroup.GET("", exerciseHandler.ListExercises)
			exerciseGroup.GET("/:id", exerciseHandler.GetExercise)
			exerciseGroup.PUT("/:id", exerciseHandler.UpdateExercise)
			exerciseGroup.DELETE("/:id", exerciseHandler.DeleteExercise)

			// Demo media: presigned direct-to-S3 upload, then confirm
			exerciseGroup.POST("/:id/media", exerciseHandler.RequestMediaUpload)
			exerciseGroup.POST("/:id/media/confirm", exerciseHandler.ConfirmMediaUpload)
			exerciseGroup.GET("/:id/media", exerciseHandler.GetMediaDownloadURL)
		}

		// --- Plans ---
		planGroup := protected.Group("/plans")
		{
			planGroup.POST("", planHandler.CreatePlan)
			planGroup.GET("", planHandler.GetPlans)
			planGroup.GET("/:id", planHandler.GetPlan)
			planGroup.PATCH("/:id", planHandler.RenamePlan)
			planGroup.POST("/:id/current", planHandler.SetCurrentPlan)
			planGroup.POST("/:id/days/:order/current", planHandler.SetCurrentDay)
			planGroup.GET("/:id/days", planHandler.GetDays)
		}

		// --- Plan Drafts ---
		// Scope is "new" while composing a plan, or a plan ID while editing.
		draftGroup := protected.Group("/drafts")
		{
			draftGroup.GET("/:scope", draftHandler.GetDraft)
			draftGroup.PUT("/:scope/name", draftHandler.SetName)
			draftGroup.PUT("/:scope/days/:order/name", draftHandler.SetDayName)
			draftGroup.POST("/:scope/days/:order/exercises", draftHandler.AddExercise)
			draftGroup.DELETE("/:scope/days/:order/exercises/:index", draftHandler.RemoveExercise)
			draftGroup.GET("/:scope/changes", draftHandler.GetChanges)
			draftGroup.POST("/:scope/save", draftHandler.Save)
			draftGroup.POST("/:scope/discard", draftHandler.Discard)
		}
	}
}
