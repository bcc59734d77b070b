package service

import (
	"context"
	"fmt"

	"scentstock/internal/domain"
	"scentstock/internal/repository"
)

// PerfumeService defines the interface for catalog business logic.
// Inputs are assumed to have passed schema validation at the transport edge.
type PerfumeService interface {
	List(ctx context.Context, search string) ([]*domain.Perfume, error)
	Get(ctx context.Context, id int64) (*domain.Perfume, error)
	Create(ctx context.Context, input domain.PerfumeInput) (*domain.Perfume, error)
	Update(ctx context.Context, id int64, input domain.PerfumeInput) (*domain.Perfume, error)
	Delete(ctx context.Context, id int64) error
}

type perfumeService struct {
	perfumeRepo repository.PerfumeRepository
}

// NewPerfumeService creates a new instance of PerfumeService
func NewPerfumeService(perfumeRepo repository.PerfumeRepository) PerfumeService {
	return &perfumeService{perfumeRepo: perfumeRepo}
}

// List returns active listings, newest first. A non-empty search term routes
// to the substring search; otherwise the full active list is returned.
func (s *perfumeService) List(ctx context.Context, search string) ([]*domain.Perfume, error) {
	if search != "" {
		perfumes, err := s.perfumeRepo.Search(ctx, search)
		if err != nil {
			return nil, fmt.Errorf("failed to search perfumes: %w", err)
		}
		return perfumes, nil
	}

	perfumes, err := s.perfumeRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list perfumes: %w", err)
	}
	return perfumes, nil
}

// Get returns a single active listing by id
func (s *perfumeService) Get(ctx context.Context, id int64) (*domain.Perfume, error) {
	perfume, err := s.perfumeRepo.FindActiveByID(ctx, id)
	if err != nil {
		if err == repository.ErrPerfumeNotFound {
			return nil, repository.ErrPerfumeNotFound
		}
		return nil, fmt.Errorf("failed to get perfume: %w", err)
	}
	return perfume, nil
}

// Create persists a new listing. Defaults for omitted optionals come from the
// input schema; the store assigns id and both timestamps.
func (s *perfumeService) Create(ctx context.Context, input domain.PerfumeInput) (*domain.Perfume, error) {
	perfume := input.ToPerfume()

	if err := s.perfumeRepo.Create(ctx, perfume); err != nil {
		return nil, fmt.Errorf("failed to create perfume: %w", err)
	}

	return perfume, nil
}

// Update replaces every mutable field of an existing active listing. Omitted
// optionals fall back to schema defaults, not to the previously stored values.
// The existence pre-check keeps a vanished row (deleted between check and
// write) indistinguishable from a missing one: both report ErrPerfumeNotFound.
func (s *perfumeService) Update(ctx context.Context, id int64, input domain.PerfumeInput) (*domain.Perfume, error) {
	existing, err := s.perfumeRepo.FindActiveByID(ctx, id)
	if err != nil {
		if err == repository.ErrPerfumeNotFound {
			return nil, repository.ErrPerfumeNotFound
		}
		return nil, fmt.Errorf("failed to check perfume existence: %w", err)
	}

	perfume := input.ToPerfume()
	perfume.ID = existing.ID
	perfume.CreatedAt = existing.CreatedAt

	if err := s.perfumeRepo.Update(ctx, perfume); err != nil {
		if err == repository.ErrPerfumeNotFound {
			return nil, repository.ErrPerfumeNotFound
		}
		return nil, fmt.Errorf("failed to update perfume: %w", err)
	}

	return perfume, nil
}

// Delete soft-deletes an active listing. A second delete of the same id finds
// no active row and reports ErrPerfumeNotFound.
func (s *perfumeService) Delete(ctx context.Context, id int64) error {
	if _, err := s.perfumeRepo.FindActiveByID(ctx, id); err != nil {
		if err == repository.ErrPerfumeNotFound {
			return repository.ErrPerfumeNotFound
		}
		return fmt.Errorf("failed to check perfume existence: %w", err)
	}

	if err := s.perfumeRepo.SoftDelete(ctx, id); err != nil {
		if err == repository.ErrPerfumeNotFound {
			return repository.ErrPerfumeNotFound
		}
		return fmt.Errorf("failed to delete perfume: %w", err)
	}

	return nil
}
