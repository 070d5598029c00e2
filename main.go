package main

import (
	"os"

	"github.com/avstrong/hostelscout/internal/app"
	"github.com/avstrong/hostelscout/internal/logger"
)

func main() {
	l := logger.New()

	var exitCode int

	if err := app.Run(l); err != nil {
		l.LogErrorf("Failed to run app: %v", err.Error())

		exitCode = 1
	}

	os.Exit(exitCode)
}
