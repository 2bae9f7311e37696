package notification

import (
	"hireflow-api/core/database"
	"hireflow-api/core/middleware"
	"hireflow-api/modules/notification/controller"
	"hireflow-api/modules/notification/repository"
	"hireflow-api/modules/notification/router"
	"hireflow-api/modules/notification/service"

	"github.com/labstack/echo/v4"
)

// Init wires the notification module and returns its service for other
// modules to emit notifications through.
func Init(e *echo.Group, db database.Database, mw *middleware.Middleware) *service.NotificationService {
	repo := repository.NewNotificationRepository(db)
	svc := service.NewNotificationService(repo)
	ctrl := controller.NewNotificationController(svc)

	router.NewNotificationRouter(ctrl).Register(e, mw)

	return svc
}
