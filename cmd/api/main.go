package main

import (
	"os"
	"time"

	"hrconnect/internal/app"
	"hrconnect/internal/bootstrap"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	logger := zap.Must(zap.NewDevelopment())
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	bootstrap.RegisterJSONTagNames()

	router := gin.Default()
	if err := app.BuildApp(router); err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	bootstrap.StartHTTPServer(
		router,
		bootstrap.ServerConfig{
			Port:         port,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		bootstrap.NewStdoutAuditLogger(),
	)
}
