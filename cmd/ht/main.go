package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/bnema/hamster-tapper-cli/cmd"
)

func main() {
	// optional; settings usually come from the environment or config.toml
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
