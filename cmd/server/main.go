package main

import (
	"log"
	"os"

	"github.com/banachtech/quantmodeling/api"
	"github.com/banachtech/quantmodeling/pricer"
	"github.com/joho/godotenv"
)

func main() {
	// Optional .env for local runs; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	addr := os.Getenv("PRICER_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	server := api.NewServer(pricer.Default(), os.Getenv("PRICER_API_KEY_HASH"))
	if err := server.Start(addr); err != nil {
		log.Fatal("cannot start server:", err)
	}
}
