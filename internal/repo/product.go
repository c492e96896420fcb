package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/pkordes/footprint/backend/internal/domain"
)

// ProductRepo defines the persistence operations for product scans.
// Barcode is unique; rows are never updated or deleted.
type ProductRepo interface {
	// CreateIfAbsent inserts p unless a scan with the same barcode exists.
	// It returns the stored row (new or existing) and whether it was created.
	CreateIfAbsent(ctx context.Context, p domain.ProductScan) (domain.ProductScan, bool, error)

	// GetByBarcode returns the scan for barcode or domain.ErrNotFound.
	GetByBarcode(ctx context.Context, barcode string) (domain.ProductScan, error)

	// ListPaged returns one page of scans, newest first, and the total count.
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.ProductScan, int64, error)

	// ListBetween returns scans with created_at in [from, to), oldest first.
	ListBetween(ctx context.Context, from, to time.Time) ([]domain.ProductScan, error)
}

// pgProductRepo is the Postgres implementation of ProductRepo.
type pgProductRepo struct {
	db db
}

// NewProductRepo constructs a ProductRepo backed by the provided db connection.
func NewProductRepo(db db) ProductRepo {
	return &pgProductRepo{db: db}
}

const productColumns = `id, barcode, name, brand, category, image_url,
	green_score, impact_grade, carbon_footprint_kg, created_at`

// CreateIfAbsent relies on ON CONFLICT DO NOTHING for atomicity: when the
// insert returns no row the barcode already existed and the original is
// read back unchanged.
func (r *pgProductRepo) CreateIfAbsent(ctx context.Context, p domain.ProductScan) (domain.ProductScan, bool, error) {
	const q = `
		INSERT INTO product_scans (barcode, name, brand, category, image_url,
		                           green_score, impact_grade, carbon_footprint_kg, created_at)
		VALUES (@barcode, @name, @brand, @category, @image_url,
		        @green_score, @impact_grade, @carbon_footprint_kg, COALESCE(@created_at, now()))
		ON CONFLICT (barcode) DO NOTHING
		RETURNING ` + productColumns

	args := pgx.NamedArgs{
		"barcode":             p.Barcode,
		"name":                p.Name,
		"brand":               p.Brand,
		"category":            p.Category,
		"image_url":           p.ImageURL,
		"green_score":         p.GreenScore,
		"impact_grade":        p.ImpactGrade,
		"carbon_footprint_kg": carbonToNumeric(p.CarbonFootprint),
		"created_at":          nullableTime(p.CreatedAt),
	}

	created, err := scanProduct(r.db.QueryRow(ctx, q, args))
	if err == nil {
		return created, true, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.ProductScan{}, false, fmt.Errorf("repo.ProductRepo.CreateIfAbsent: %w", err)
	}

	existing, err := r.GetByBarcode(ctx, p.Barcode)
	if err != nil {
		return domain.ProductScan{}, false, fmt.Errorf("repo.ProductRepo.CreateIfAbsent: %w", err)
	}
	return existing, false, nil
}

// GetByBarcode retrieves a scan by its barcode.
func (r *pgProductRepo) GetByBarcode(ctx context.Context, barcode string) (domain.ProductScan, error) {
	const q = `SELECT ` + productColumns + ` FROM product_scans WHERE barcode = @barcode`

	result, err := scanProduct(r.db.QueryRow(ctx, q, pgx.NamedArgs{"barcode": barcode}))
	if err != nil {
		return domain.ProductScan{}, fmt.Errorf("repo.ProductRepo.GetByBarcode: %w", err)
	}
	return result, nil
}

// ListPaged returns one page of scans ordered by created_at descending.
func (r *pgProductRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.ProductScan, int64, error) {
	const countQ = `SELECT count(*) FROM product_scans`
	const q = `
		SELECT ` + productColumns + `
		FROM product_scans
		ORDER BY created_at DESC, barcode
		LIMIT @limit OFFSET @offset`

	var total int64
	if err := r.db.QueryRow(ctx, countQ).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.ProductRepo.ListPaged: count: %w", err)
	}

	products, err := r.collect(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.ProductRepo.ListPaged: %w", err)
	}
	return products, total, nil
}

// ListBetween returns scans created inside [from, to) ordered by created_at.
func (r *pgProductRepo) ListBetween(ctx context.Context, from, to time.Time) ([]domain.ProductScan, error) {
	const q = `
		SELECT ` + productColumns + `
		FROM product_scans
		WHERE created_at >= @from AND created_at < @to
		ORDER BY created_at, barcode`

	products, err := r.collect(ctx, q, pgx.NamedArgs{"from": from, "to": to})
	if err != nil {
		return nil, fmt.Errorf("repo.ProductRepo.ListBetween: %w", err)
	}
	return products, nil
}

func (r *pgProductRepo) collect(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.ProductScan, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []domain.ProductScan{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return products, nil
}

// scanProduct maps a single database row into a domain.ProductScan.
// A NULL carbon_footprint_kg becomes an unknown CarbonValue.
func scanProduct(s scanner) (domain.ProductScan, error) {
	var (
		p      domain.ProductScan
		id     pgtype.UUID
		score  pgtype.Int4
		grade  pgtype.Text
		carbon pgtype.Numeric
	)

	err := s.Scan(&id, &p.Barcode, &p.Name, &p.Brand, &p.Category, &p.ImageURL,
		&score, &grade, &carbon, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ProductScan{}, domain.ErrNotFound
		}
		return domain.ProductScan{}, err
	}

	p.ID = uuid.UUID(id.Bytes)
	if score.Valid {
		v := int(score.Int32)
		p.GreenScore = &v
	}
	if grade.Valid {
		p.ImpactGrade = &grade.String
	}
	p.CarbonFootprint = numericToCarbon(carbon)
	return p, nil
}

// carbonToNumeric encodes an unknown value as NULL.
func carbonToNumeric(v domain.CarbonValue) pgtype.Numeric {
	kg, ok := v.Kg()
	if !ok {
		return pgtype.Numeric{}
	}
	return pgtype.Numeric{Int: kg.Coefficient(), Exp: kg.Exponent(), Valid: true}
}

func numericToCarbon(n pgtype.Numeric) domain.CarbonValue {
	if !n.Valid || n.NaN || n.InfinityModifier != pgtype.Finite || n.Int == nil {
		return domain.UnknownCarbon()
	}
	return domain.KnownCarbon(decimal.NewFromBigInt(n.Int, n.Exp))
}
