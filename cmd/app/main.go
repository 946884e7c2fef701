package main

import (
	"clinicbook/config"
	"clinicbook/di"
	"clinicbook/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
