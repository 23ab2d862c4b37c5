package main

import (
	"github.com/nyayarakshak/backend/internal/server"
	"github.com/nyayarakshak/backend/internal/util"
	"github.com/nyayarakshak/backend/pkg/logger"
	"github.com/nyayarakshak/backend/pkg/logger/console"

	_ "github.com/lib/pq"
)

func main() {
	util.LoadEnv()

	debug := util.GetEnvBool("DEBUG", false)

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug:  debug,
		Prefix: "server",
	})
	logger.Init(consoleLogger)

	server.Init()
}
