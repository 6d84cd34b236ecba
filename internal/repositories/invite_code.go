package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"nightlife-booking-platform/internal/models"

	"github.com/lib/pq"
)

// InviteCodeRepository handles invite code data operations
type InviteCodeRepository struct {
	db *sql.DB
}

// NewInviteCodeRepository creates a new invite code repository
func NewInviteCodeRepository(db *sql.DB) *InviteCodeRepository {
	return &InviteCodeRepository{db: db}
}

const uniqueViolation = "23505"

func scanInviteCode(row rowScanner) (*models.InviteCode, error) {
	code := &models.InviteCode{}
	var maxUses sql.NullInt64
	var expiresAt sql.NullTime

	err := row.Scan(&code.ID, &code.Code, &code.IsActive, &maxUses, &code.CurrentUses, &expiresAt, &code.CreatedAt)
	if err != nil {
		return nil, err
	}

	if maxUses.Valid {
		n := int(maxUses.Int64)
		code.MaxUses = &n
	}
	if expiresAt.Valid {
		t := expiresAt.Time
		code.ExpiresAt = &t
	}
	return code, nil
}

// GetActiveByCode looks up an active code
func (r *InviteCodeRepository) GetActiveByCode(ctx context.Context, code string) (*models.InviteCode, error) {
	query := `
		SELECT id, code, is_active, max_uses, current_uses, expires_at, created_at
		FROM invite_codes
		WHERE code = $1 AND is_active`

	invite, err := scanInviteCode(r.db.QueryRowContext(ctx, query, code))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrInvalidInviteCode
		}
		return nil, fmt.Errorf("failed to get invite code: %w", err)
	}
	return invite, nil
}

// IncrementUses records one more use of the code
func (r *InviteCodeRepository) IncrementUses(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `UPDATE invite_codes SET current_uses = current_uses + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to update invite code usage: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return models.ErrInvalidInviteCode
	}
	return nil
}

// Create stores a new active code
func (r *InviteCodeRepository) Create(ctx context.Context, req *models.InviteCodeCreateRequest) (*models.InviteCode, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO invite_codes (code, is_active, max_uses, current_uses, expires_at, created_at)
		VALUES ($1, TRUE, $2, 0, $3, $4)
		RETURNING id, code, is_active, max_uses, current_uses, expires_at, created_at`

	var maxUses sql.NullInt64
	if req.MaxUses != nil {
		maxUses = sql.NullInt64{Int64: int64(*req.MaxUses), Valid: true}
	}
	var expiresAt sql.NullTime
	if req.ExpiresAt != nil {
		expiresAt = sql.NullTime{Time: *req.ExpiresAt, Valid: true}
	}

	invite, err := scanInviteCode(r.db.QueryRowContext(ctx, query, req.Code, maxUses, expiresAt, time.Now()))
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, fmt.Errorf("%w: %s", models.ErrInviteCodeExists, req.Code)
		}
		return nil, fmt.Errorf("failed to create invite code: %w", err)
	}
	return invite, nil
}
