package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"nightlife-booking-platform/internal/config"
	"nightlife-booking-platform/internal/database"
	"nightlife-booking-platform/internal/models"
	"nightlife-booking-platform/internal/repositories"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// catalog is the layout of the seed file
type catalog struct {
	Clubs []catalogClub `yaml:"clubs"`
}

type catalogClub struct {
	models.Club `yaml:",inline"`
	Promotions  []models.PromotionalAd `yaml:"promotions"`
}

func main() {
	flags := pflag.NewFlagSet("seed-clubs", pflag.ExitOnError)
	file := flags.StringP("file", "f", "data/clubs.yaml", "YAML catalog of clubs and promotions")
	migrate := flags.Bool("migrate", true, "run pending migrations first")
	flags.Parse(os.Args[1:])

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", *file, err)
	}

	var c catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		log.Fatalf("Failed to parse %s: %v", *file, err)
	}
	if len(c.Clubs) == 0 {
		log.Fatalf("No clubs found in %s", *file)
	}

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
	if *migrate {
		if err := db.RunMigrations(ctx); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	}

	clubRepo := repositories.NewClubRepository(db.DB)
	promoRepo := repositories.NewPromotionRepository(db.DB)

	promotions := 0
	for _, entry := range c.Clubs {
		club := entry.Club
		if err := clubRepo.Upsert(ctx, &club); err != nil {
			log.Fatalf("Failed to seed club: %v", err)
		}

		ads := make([]*models.PromotionalAd, 0, len(entry.Promotions))
		for i := range entry.Promotions {
			ads = append(ads, &entry.Promotions[i])
		}
		if err := promoRepo.ReplaceForClub(ctx, club.ID, ads); err != nil {
			log.Fatalf("Failed to seed promotions of %s: %v", club.Name, err)
		}
		promotions += len(ads)

		fmt.Printf("Seeded %s (%s) as club %d with %d promotions\n", club.Name, club.Location, club.ID, len(ads))
	}

	fmt.Printf("Done: %d clubs, %d promotions\n", len(c.Clubs), promotions)
}
