// main.go
//
// Entry point: loads an optional .env file, then runs the cobra command tree
// defined in commands.go.

package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
