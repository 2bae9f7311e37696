package scheduling

import (
	"hireflow-api/core/cache"
	"hireflow-api/core/database"
	"hireflow-api/core/middleware"
	"hireflow-api/modules/mailer"
	"hireflow-api/modules/scheduling/controller"
	"hireflow-api/modules/scheduling/repository"
	"hireflow-api/modules/scheduling/router"
	"hireflow-api/modules/scheduling/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the scheduling module and registers routes
func Init(e *echo.Echo, db database.Database, c cache.Cache, enq mailer.Enqueuer, notifier service.Notifier, mw *middleware.Middleware) {
	repo := repository.NewSchedulingRepository(db)
	svc := service.NewSchedulingService(repo, enq, notifier, c)
	ctrl := controller.NewSchedulingController(svc)
	rtr := router.NewSchedulingRouter(ctrl)

	rtr.Setup(e, mw)
}
