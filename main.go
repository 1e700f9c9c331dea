package main

import (
	"github.com/haguru/shashin/config"
	"github.com/haguru/shashin/internal/app"
)

func main() {
	// create and initialize the app
	app, err := app.NewApp(config.CONFIG_PATH)
	if err != nil {
		panic(err)
	}

	// serve until SIGINT/SIGTERM
	if err := app.Run(); err != nil {
		panic(err)
	}
}
