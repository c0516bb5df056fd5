package main

import (
	"gclub-api/core/logger"
	"gclub-api/core/server"
)

// @title GClub API
// @version 1.0
// @description Game session recruitment backend for the club community.

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
