package service

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/pkordes/footprint/backend/internal/domain"
	"github.com/pkordes/footprint/backend/internal/repo"
)

// ProductService records product scans. The first scan of a barcode is
// stored; repeated scans return the stored record untouched.
type ProductService struct {
	repo repo.ProductRepo
}

// NewProductService constructs a ProductService backed by the provided ProductRepo.
func NewProductService(r repo.ProductRepo) *ProductService {
	return &ProductService{repo: r}
}

// Save validates and stores p unless its barcode is already known.
// created reports whether a new record was written.
// Returns domain.ErrValidation if required fields are missing.
func (s *ProductService) Save(ctx context.Context, p domain.ProductScan) (domain.ProductScan, bool, error) {
	p = normalizeProduct(p)
	if err := validateProduct(p); err != nil {
		return domain.ProductScan{}, false, fmt.Errorf("service.ProductService.Save: %w", err)
	}

	result, created, err := s.repo.CreateIfAbsent(ctx, p)
	if err != nil {
		return domain.ProductScan{}, false, fmt.Errorf("service.ProductService.Save: %w", err)
	}
	return result, created, nil
}

// GetByBarcode returns the stored scan for barcode.
// Returns domain.ErrNotFound if the barcode was never scanned.
func (s *ProductService) GetByBarcode(ctx context.Context, barcode string) (domain.ProductScan, error) {
	result, err := s.repo.GetByBarcode(ctx, strings.TrimSpace(barcode))
	if err != nil {
		return domain.ProductScan{}, fmt.Errorf("service.ProductService.GetByBarcode: %w", err)
	}
	return result, nil
}

// ListPaged returns one page of scans and the total count.
func (s *ProductService) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.ProductScan, int64, error) {
	products, total, err := s.repo.ListPaged(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.ProductService.ListPaged: %w", err)
	}
	if products == nil {
		products = []domain.ProductScan{}
	}
	return products, total, nil
}

// normalizeProduct trims text fields and maps the upstream "N/A" grade to nil.
// Impact grades are stored upper-case.
func normalizeProduct(p domain.ProductScan) domain.ProductScan {
	p.Barcode = strings.TrimSpace(p.Barcode)
	p.Name = strings.TrimSpace(p.Name)
	p.Brand = strings.TrimSpace(p.Brand)
	p.Category = strings.TrimSpace(p.Category)
	p.ImageURL = strings.TrimSpace(p.ImageURL)

	if p.ImpactGrade != nil {
		g := strings.ToUpper(strings.TrimSpace(*p.ImpactGrade))
		if g == "" || g == domain.Unavailable {
			p.ImpactGrade = nil
		} else {
			p.ImpactGrade = &g
		}
	}
	return p
}

// validateProduct enforces:
//   - Barcode, Name and Brand are non-empty.
//   - Barcode contains only digits.
//   - GreenScore, when known, is within 0..100.
//   - ImpactGrade, when known, is a single letter.
func validateProduct(p domain.ProductScan) error {
	switch {
	case p.Barcode == "":
		return fmt.Errorf("%w: barcode is required", domain.ErrValidation)
	case p.Name == "":
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	case p.Brand == "":
		return fmt.Errorf("%w: brand is required", domain.ErrValidation)
	}
	for _, r := range p.Barcode {
		if !unicode.IsDigit(r) {
			return fmt.Errorf("%w: barcode must contain only digits", domain.ErrValidation)
		}
	}
	if p.GreenScore != nil && (*p.GreenScore < 0 || *p.GreenScore > 100) {
		return fmt.Errorf("%w: green_score must be between 0 and 100", domain.ErrValidation)
	}
	if p.ImpactGrade != nil {
		g := []rune(*p.ImpactGrade)
		if len(g) != 1 || !unicode.IsLetter(g[0]) {
			return fmt.Errorf("%w: impact_grade must be a single letter", domain.ErrValidation)
		}
	}
	return nil
}
