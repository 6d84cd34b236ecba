package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"nightlife-booking-platform/internal/models"

	"github.com/lib/pq"
)

// ClubRepository handles club data operations
type ClubRepository struct {
	db *sql.DB
}

// NewClubRepository creates a new club repository
func NewClubRepository(db *sql.DB) *ClubRepository {
	return &ClubRepository{db: db}
}

const clubColumns = `id, name, location, description, category, type, rating, image_url, tags, is_active, created_at`

func scanClub(row rowScanner) (*models.Club, error) {
	club := &models.Club{}
	err := row.Scan(
		&club.ID,
		&club.Name,
		&club.Location,
		&club.Description,
		&club.Category,
		&club.Type,
		&club.Rating,
		&club.ImageURL,
		pq.Array(&club.Tags),
		&club.IsActive,
		&club.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return club, nil
}

func (r *ClubRepository) queryClubs(ctx context.Context, query string, args ...any) ([]*models.Club, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get clubs: %w", err)
	}
	defer rows.Close()

	var clubs []*models.Club
	for rows.Next() {
		club, err := scanClub(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan club: %w", err)
		}
		clubs = append(clubs, club)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate clubs: %w", err)
	}

	return clubs, nil
}

// GetAllActive returns the active clubs, best rated first
func (r *ClubRepository) GetAllActive(ctx context.Context) ([]*models.Club, error) {
	return r.queryClubs(ctx, `SELECT `+clubColumns+` FROM clubs WHERE is_active ORDER BY rating DESC, name`)
}

// GetByCategory returns the active clubs of a category
func (r *ClubRepository) GetByCategory(ctx context.Context, category string) ([]*models.Club, error) {
	return r.queryClubs(ctx, `SELECT `+clubColumns+` FROM clubs WHERE is_active AND LOWER(category) = LOWER($1) ORDER BY rating DESC, name`, category)
}

// GetByID retrieves an active club
func (r *ClubRepository) GetByID(ctx context.Context, id int) (*models.Club, error) {
	club, err := scanClub(r.db.QueryRowContext(ctx, `SELECT `+clubColumns+` FROM clubs WHERE id = $1 AND is_active`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: id %d", models.ErrClubNotFound, id)
		}
		return nil, fmt.Errorf("failed to get club: %w", err)
	}
	return club, nil
}

// Upsert inserts a club or refreshes the one with the same name and location
func (r *ClubRepository) Upsert(ctx context.Context, club *models.Club) error {
	if club.Name == "" || club.Location == "" {
		return fmt.Errorf("%w: club name and location are required", models.ErrInvalidInput)
	}

	query := `
		INSERT INTO clubs (name, location, description, category, type, rating, image_url, tags, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE, $9)
		ON CONFLICT (name, location) DO UPDATE SET
			description = EXCLUDED.description,
			category = EXCLUDED.category,
			type = EXCLUDED.type,
			rating = EXCLUDED.rating,
			image_url = EXCLUDED.image_url,
			tags = EXCLUDED.tags,
			is_active = TRUE
		RETURNING id, is_active, created_at`

	tags := club.Tags
	if tags == nil {
		tags = []string{}
	}

	err := r.db.QueryRowContext(ctx, query,
		club.Name,
		club.Location,
		club.Description,
		club.Category,
		club.Type,
		club.Rating,
		club.ImageURL,
		pq.Array(tags),
		time.Now(),
	).Scan(&club.ID, &club.IsActive, &club.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save club %q: %w", club.Name, err)
	}

	return nil
}
