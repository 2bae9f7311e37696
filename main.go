package main

import (
	"hireflow-api/core/logger"
	"hireflow-api/core/server"
)

// @title HireFlow Scheduling API
// @version 1.0
// @description Interview availability scheduling: slot generation, participant voting and slot confirmation.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:7070
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Example: "Bearer {token}"

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", err)
	}
}
