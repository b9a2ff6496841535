package main

import (
	"os"

	"taskboard/cmd/server/commands"

	log "github.com/sirupsen/logrus"
)

// Version information - set during build
var version = "dev"

// @title           Task Board API
// @version         1.0
// @description     Collaborative task boards with invitations, assignments and live notifications.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @schemes http
func main() {
	commands.SetVersion(version)

	if err := commands.Execute(); err != nil {
		log.WithError(err).Error("command failed")
		os.Exit(1)
	}
}
