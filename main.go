package main

import (
	"brand_server/internal/cli"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if exists (for local development)
	_ = godotenv.Load()

	cli.Execute()
}
