package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"

	"github.com/eventhub/eventhub/migrations"
)

var allowedCommands = map[string]bool{
	"up":        true,
	"up-by-one": true,
	"down":      true,
	"redo":      true,
	"reset":     true,
	"status":    true,
	"version":   true,
}

func main() {
	mode := flag.String("mode", "up", "migration command: up, up-by-one, down, redo, reset, status, version")
	flag.Parse()

	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	command := strings.ToLower(*mode)
	if !allowedCommands[command] {
		log.Fatalf("unknown mode: %s", *mode)
	}

	if err := run(context.Background(), dsn, command, flag.Args()...); err != nil {
		log.Fatalf("migration %s failed: %v", command, err)
	}
	log.Printf("Migration %s completed successfully", command)
}

func run(ctx context.Context, dsn, command string, args ...string) error {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}
	defer db.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	goose.SetLogger(logger)
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	return goose.RunContext(ctx, command, db, ".", args...)
}
