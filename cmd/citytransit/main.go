package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

var version = "develop"

func main() {
	// .env is optional; real environment variables take precedence
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Failed to load .env file: %v\n", err)
		os.Exit(1)
	}

	app := &cli.App{
		Name:    "citytransit",
		Usage:   "Live bus tracking view backed by a simulated feed",
		Version: version,
		Commands: []*cli.Command{
			serveCommand(),
			simulateCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "citytransit: %v\n", err)
		os.Exit(1)
	}
}
