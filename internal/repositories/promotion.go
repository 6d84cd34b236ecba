package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"nightlife-booking-platform/internal/models"
)

// PromotionRepository handles promotional ad data operations
type PromotionRepository struct {
	db *sql.DB
}

// NewPromotionRepository creates a new promotion repository
func NewPromotionRepository(db *sql.DB) *PromotionRepository {
	return &PromotionRepository{db: db}
}

const promotionColumns = `p.id, p.club_id, p.title, p.description, p.image_url, p.original_price, p.special_price, p.is_active, p.created_at`

func scanPromotion(row rowScanner) (*models.PromotionalAd, error) {
	ad := &models.PromotionalAd{}
	err := row.Scan(
		&ad.ID,
		&ad.ClubID,
		&ad.Title,
		&ad.Description,
		&ad.ImageURL,
		&ad.OriginalPrice,
		&ad.SpecialPrice,
		&ad.IsActive,
		&ad.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return ad, nil
}

// GetActive returns active promotions of active clubs, newest first
func (r *PromotionRepository) GetActive(ctx context.Context) ([]*models.PromotionalAd, error) {
	query := `
		SELECT ` + promotionColumns + `
		FROM promotional_ads p
		JOIN clubs c ON c.id = p.club_id
		WHERE p.is_active AND c.is_active
		ORDER BY p.created_at DESC, p.id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get promotions: %w", err)
	}
	defer rows.Close()

	var ads []*models.PromotionalAd
	for rows.Next() {
		ad, err := scanPromotion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan promotion: %w", err)
		}
		ads = append(ads, ad)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate promotions: %w", err)
	}

	return ads, nil
}

// GetByID retrieves an active promotion
func (r *PromotionRepository) GetByID(ctx context.Context, id int) (*models.PromotionalAd, error) {
	query := `SELECT ` + promotionColumns + ` FROM promotional_ads p WHERE p.id = $1 AND p.is_active`

	ad, err := scanPromotion(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: id %d", models.ErrPromotionNotFound, id)
		}
		return nil, fmt.Errorf("failed to get promotion: %w", err)
	}
	return ad, nil
}

// ReplaceForClub swaps the promotions of a club for the given set
func (r *PromotionRepository) ReplaceForClub(ctx context.Context, clubID int, ads []*models.PromotionalAd) error {
	for _, ad := range ads {
		if ad.SpecialPrice <= 0 || ad.OriginalPrice <= 0 {
			return fmt.Errorf("%w: promotion %q needs positive prices", models.ErrInvalidInput, ad.Title)
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM promotional_ads WHERE club_id = $1`, clubID); err != nil {
		return fmt.Errorf("failed to clear promotions: %w", err)
	}

	query := `
		INSERT INTO promotional_ads (club_id, title, description, image_url, original_price, special_price, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE, $7)
		RETURNING id, is_active, created_at`

	for _, ad := range ads {
		ad.ClubID = clubID
		err := tx.QueryRowContext(ctx, query,
			clubID, ad.Title, ad.Description, ad.ImageURL, ad.OriginalPrice, ad.SpecialPrice, time.Now(),
		).Scan(&ad.ID, &ad.IsActive, &ad.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to create promotion %q: %w", ad.Title, err)
		}
	}

	return tx.Commit()
}
