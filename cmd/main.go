// Package main is the entry point for the focus timer.
package main

import (
	"log"
	"os"

	"github.com/zenlizolet/Focus-Timer/internal/app"
	"github.com/zenlizolet/Focus-Timer/internal/cli"
	"github.com/zenlizolet/Focus-Timer/internal/logging"
)

// version is set at build time using -ldflags.
var version = "dev"

func main() {
	root := cli.NewRootCommand(version, launch)
	if err := root.Execute(); err != nil {
		log.Printf("focustimer: %v", err)
		os.Exit(1)
	}
}

func launch(options cli.Options) error {
	return app.Run(app.Options{
		AppName:          cli.AppName,
		Settings:         options.Settings,
		SettingsPath:     options.SettingsPath,
		TickInterval:     options.TickInterval,
		DecimalSeparator: options.DecimalSeparator,
		Logger:           logging.New(os.Stderr, options.LogLevel),
	})
}
