package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"nightlife-booking-platform/internal/config"
	"nightlife-booking-platform/internal/database"

	"github.com/spf13/pflag"
)

func main() {
	flags := pflag.NewFlagSet("migrate", pflag.ExitOnError)
	statusFlag := flags.Bool("status", false, "Show migration status")
	upFlag := flags.Bool("up", false, "Run pending migrations")
	flags.Parse(os.Args[1:])

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewConnection(database.Config{
		URL:      cfg.Database.URL,
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()

	switch {
	case *statusFlag:
		states, err := db.GetMigrationStatus(ctx)
		if err != nil {
			log.Fatalf("Failed to get migration status: %v", err)
		}
		fmt.Println("Migration Status:")
		fmt.Println("================")
		for _, state := range states {
			status := "PENDING"
			if state.Applied {
				status = "APPLIED"
			}
			fmt.Printf("%03d: %s [%s]\n", state.Version, state.Name, status)
		}
	case *upFlag:
		if err := db.RunMigrations(ctx); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		fmt.Println("All migrations completed successfully!")
	default:
		fmt.Println("Usage:")
		fmt.Println("  migrate --status   # Show migration status")
		fmt.Println("  migrate --up       # Run pending migrations")
		os.Exit(1)
	}
}
