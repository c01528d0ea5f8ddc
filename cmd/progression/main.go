package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	progressioncmd "github.com/verdantworks/growline/internal/cmd/progression"
)

func main() {
	cfg, err := progressioncmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[PROGRESSION] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := progressioncmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
