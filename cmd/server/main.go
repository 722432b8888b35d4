package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/monitool/backend/internal/server"
)

// Version is set via ldflags at build time
var Version = "dev"

// @title Monitool API
// @version 1.0
// @description Toolbox access tracking backend for NFC-carded field technicians
// @BasePath /api/v1
// @securityDefinitions.apikey APIKeyAuth
// @in header
// @name X-API-Key
func main() {
	port := flag.Int("port", 0, "Port to run the server on (overrides config)")
	flag.Parse()

	if err := server.RunWithSignalHandling(server.Config{
		Port:    *port,
		Version: Version,
	}); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}
