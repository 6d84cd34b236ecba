package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"nightlife-booking-platform/internal/config"
	"nightlife-booking-platform/internal/database"
	"nightlife-booking-platform/internal/models"
	"nightlife-booking-platform/internal/repositories"
	"nightlife-booking-platform/internal/utils"

	"github.com/spf13/pflag"
)

const generateAttempts = 5

func main() {
	flags := pflag.NewFlagSet("create-invite", pflag.ExitOnError)
	code := flags.String("code", "", "4-character invite code (random when empty)")
	maxUses := flags.Int("max-uses", 0, "maximum number of uses (0 for unlimited)")
	expiresIn := flags.Duration("expires-in", 0, "time until the code expires, e.g. 72h (0 for never)")
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

	req := &models.InviteCodeCreateRequest{Code: models.NormalizeInviteCode(*code)}
	if *maxUses > 0 {
		req.MaxUses = maxUses
	}
	if *expiresIn > 0 {
		expires := time.Now().Add(*expiresIn)
		req.ExpiresAt = &expires
	}

	repo := repositories.NewInviteCodeRepository(db.DB)
	invite, err := create(context.Background(), repo, req, *code == "")
	if err != nil {
		log.Fatalf("Failed to create invite code: %v", err)
	}

	fmt.Printf("Invite code created: %s\n", invite.Code)
	if invite.MaxUses != nil {
		fmt.Printf("  Max uses:   %d\n", *invite.MaxUses)
	}
	if invite.ExpiresAt != nil {
		fmt.Printf("  Expires at: %s\n", invite.ExpiresAt.Format(time.RFC1123))
	}
}

// create stores the code, drawing a fresh random one on collisions when
// the caller did not pick it
func create(ctx context.Context, repo *repositories.InviteCodeRepository, req *models.InviteCodeCreateRequest, random bool) (*models.InviteCode, error) {
	for attempt := 0; ; attempt++ {
		if random {
			generated, err := utils.GenerateInviteCode(4)
			if err != nil {
				return nil, err
			}
			req.Code = generated
		}

		invite, err := repo.Create(ctx, req)
		if err == nil {
			return invite, nil
		}
		if !random || !errors.Is(err, models.ErrInviteCodeExists) || attempt+1 >= generateAttempts {
			return nil, err
		}
		log.Printf("Code %s already taken, retrying", req.Code)
	}
}
