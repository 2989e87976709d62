// Package main is the CLI command itself.
package main

import (
	"log"
	"os"

	"go.viam.com/collide/cli"
)

func main() {
	app := cli.NewApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
