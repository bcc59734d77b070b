package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"scentstock/internal/domain"
)

var (
	ErrPerfumeNotFound = errors.New("perfume not found")
)

// PerfumeRepository defines the interface for perfume data access.
// All reads exclude soft-deleted rows (is_available = false).
type PerfumeRepository interface {
	Create(ctx context.Context, perfume *domain.Perfume) error
	Update(ctx context.Context, perfume *domain.Perfume) error
	SoftDelete(ctx context.Context, id int64) error
	FindActiveByID(ctx context.Context, id int64) (*domain.Perfume, error)
	ListActive(ctx context.Context) ([]*domain.Perfume, error)
	Search(ctx context.Context, term string) ([]*domain.Perfume, error)
}

type perfumeRepository struct {
	db *sql.DB
}

// NewPerfumeRepository creates a new instance of PerfumeRepository
func NewPerfumeRepository(db *sql.DB) PerfumeRepository {
	return &perfumeRepository{db: db}
}

const perfumeColumns = `id, name, brand, description, price, volume, category,
	notes_top, notes_middle, notes_base, gender, image_url,
	stock_quantity, is_available, created_at, updated_at`

// Create inserts a new perfume using parameterized queries. The store assigns
// the id and both timestamps; they are written back into the caller's struct.
func (r *perfumeRepository) Create(ctx context.Context, perfume *domain.Perfume) error {
	query := `
		INSERT INTO perfumes (
			name, brand, description, price, volume, category,
			notes_top, notes_middle, notes_base, gender, image_url,
			stock_quantity, is_available, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id
	`

	now := time.Now().UTC()
	err := r.db.QueryRowContext(
		ctx,
		query,
		perfume.Name,
		perfume.Brand,
		perfume.Description,
		perfume.Price,
		perfume.Volume,
		perfume.Category,
		perfume.NotesTop,
		perfume.NotesMiddle,
		perfume.NotesBase,
		perfume.Gender,
		perfume.ImageURL,
		perfume.StockQuantity,
		perfume.IsAvailable,
		now,
		now,
	).Scan(&perfume.ID)

	if err != nil {
		return fmt.Errorf("failed to create perfume: %w", err)
	}

	perfume.CreatedAt = now
	perfume.UpdatedAt = now

	return nil
}

// Update overwrites every mutable field unconditionally and bumps updated_at.
// There is no partial-patch path: callers supply the full replacement row.
func (r *perfumeRepository) Update(ctx context.Context, perfume *domain.Perfume) error {
	query := `
		UPDATE perfumes
		SET name = $2, brand = $3, description = $4, price = $5, volume = $6,
		    category = $7, notes_top = $8, notes_middle = $9, notes_base = $10,
		    gender = $11, image_url = $12, stock_quantity = $13,
		    is_available = $14, updated_at = $15
		WHERE id = $1
	`

	now := time.Now().UTC()
	result, err := r.db.ExecContext(
		ctx,
		query,
		perfume.ID,
		perfume.Name,
		perfume.Brand,
		perfume.Description,
		perfume.Price,
		perfume.Volume,
		perfume.Category,
		perfume.NotesTop,
		perfume.NotesMiddle,
		perfume.NotesBase,
		perfume.Gender,
		perfume.ImageURL,
		perfume.StockQuantity,
		perfume.IsAvailable,
		now,
	)

	if err != nil {
		return fmt.Errorf("failed to update perfume: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrPerfumeNotFound
	}

	perfume.UpdatedAt = now

	return nil
}

// SoftDelete flips is_available off. The row is retained; repeated calls on
// the same id report ErrPerfumeNotFound once the first has landed.
func (r *perfumeRepository) SoftDelete(ctx context.Context, id int64) error {
	query := `UPDATE perfumes SET is_available = FALSE WHERE id = $1 AND is_available = TRUE`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete perfume: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrPerfumeNotFound
	}

	return nil
}

// FindActiveByID retrieves an active perfume by ID using parameterized queries
func (r *perfumeRepository) FindActiveByID(ctx context.Context, id int64) (*domain.Perfume, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM perfumes
		WHERE id = $1 AND is_available = TRUE
	`, perfumeColumns)

	perfume := &domain.Perfume{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(scanTargets(perfume)...)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrPerfumeNotFound
		}
		return nil, fmt.Errorf("failed to find perfume by ID: %w", err)
	}

	return perfume, nil
}

// ListActive retrieves all active perfumes, newest first
func (r *perfumeRepository) ListActive(ctx context.Context) ([]*domain.Perfume, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM perfumes
		WHERE is_available = TRUE
		ORDER BY created_at DESC
	`, perfumeColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list perfumes: %w", err)
	}
	defer rows.Close()

	return collectPerfumes(rows)
}

// Search performs a case-insensitive substring match against name, brand,
// description and category, restricted to active rows, newest first. A blank
// term is equivalent to ListActive.
func (r *perfumeRepository) Search(ctx context.Context, term string) ([]*domain.Perfume, error) {
	if strings.TrimSpace(term) == "" {
		return r.ListActive(ctx)
	}

	searchPattern := "%" + term + "%"

	query := fmt.Sprintf(`
		SELECT %s
		FROM perfumes
		WHERE is_available = TRUE AND (
			name ILIKE $1 OR
			brand ILIKE $1 OR
			description ILIKE $1 OR
			category ILIKE $1
		)
		ORDER BY created_at DESC
	`, perfumeColumns)

	rows, err := r.db.QueryContext(ctx, query, searchPattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search perfumes: %w", err)
	}
	defer rows.Close()

	return collectPerfumes(rows)
}

func scanTargets(p *domain.Perfume) []interface{} {
	return []interface{}{
		&p.ID,
		&p.Name,
		&p.Brand,
		&p.Description,
		&p.Price,
		&p.Volume,
		&p.Category,
		&p.NotesTop,
		&p.NotesMiddle,
		&p.NotesBase,
		&p.Gender,
		&p.ImageURL,
		&p.StockQuantity,
		&p.IsAvailable,
		&p.CreatedAt,
		&p.UpdatedAt,
	}
}

func collectPerfumes(rows *sql.Rows) ([]*domain.Perfume, error) {
	perfumes := []*domain.Perfume{}
	for rows.Next() {
		perfume := &domain.Perfume{}
		if err := rows.Scan(scanTargets(perfume)...); err != nil {
			return nil, fmt.Errorf("failed to scan perfume: %w", err)
		}
		perfumes = append(perfumes, perfume)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating perfumes: %w", err)
	}

	return perfumes, nil
}
