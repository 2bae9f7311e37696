package router

import (
	"hireflow-api/core/middleware"
	"hireflow-api/modules/scheduling/controller"

	"github.com/labstack/echo/v4"
)

// SchedulingRouter handles scheduling routes
type SchedulingRouter struct {
	SchedulingController *controller.SchedulingController
}

// NewSchedulingRouter creates a new router
func NewSchedulingRouter(schedulingController *controller.SchedulingController) *SchedulingRouter {
	return &SchedulingRouter{
		SchedulingController: schedulingController,
	}
}

// Setup registers scheduling routes
func (r *SchedulingRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	// Recruiter routes (all protected)
	scheduleRoutes := v1.Group("/private/schedules", mw.AuthMiddleware())
	scheduleRoutes.POST("", r.SchedulingController.CreateSchedule)
	scheduleRoutes.GET("", r.SchedulingController.GetMySchedules)
	scheduleRoutes.GET("/:id", r.SchedulingController.GetSchedule)
	scheduleRoutes.POST("/:id/confirm", r.SchedulingController.ConfirmSlot)

	// Participant routes, authenticated by vote token only
	availabilityRoutes := v1.Group("/public/availability")
	availabilityRoutes.GET("/:token", r.SchedulingController.GetVotingPage)
	availabilityRoutes.POST("/:token", r.SchedulingController.SubmitAvailability)
}
