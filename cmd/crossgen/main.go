package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/wordforge/crossgen/cmd/crossgen/cmd"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
