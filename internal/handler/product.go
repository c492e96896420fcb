package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/footprint/backend/internal/domain"
)

// SaveProductRequest is the body of POST /products, as looked up by the
// client from the product database. carbon_footprint may be a number, a
// numeric string, "N/A" or absent.
type SaveProductRequest struct {
	Barcode         string             `json:"barcode" validate:"required,numeric,max=64"`
	Name            string             `json:"name" validate:"required,max=256"`
	Brand           string             `json:"brand" validate:"required,max=256"`
	Category        string             `json:"category" validate:"max=256"`
	ImageURL        string             `json:"image_url" validate:"omitempty,url"`
	GreenScore      *int               `json:"green_score" validate:"omitempty,gte=0,lte=100"`
	ImpactGrade     *string            `json:"impact_grade" validate:"omitempty,max=8"`
	CarbonFootprint domain.CarbonValue `json:"carbon_footprint"`
}

// SaveProduct handles POST /products.
// The first scan of a barcode returns 201; repeat scans return 200 with the
// record stored on first scan.
func (s *Server) SaveProduct(w http.ResponseWriter, r *http.Request) {
	var body SaveProductRequest
	if !decodeBody(w, r, &body) {
		return
	}

	product, created, err := s.products.Save(r.Context(), domain.ProductScan{
		Barcode:         body.Barcode,
		Name:            body.Name,
		Brand:           body.Brand,
		Category:        body.Category,
		ImageURL:        body.ImageURL,
		GreenScore:      body.GreenScore,
		ImpactGrade:     body.ImpactGrade,
		CarbonFootprint: body.CarbonFootprint,
	})
	if err != nil {
		s.serviceError(w, r, err, "product not found")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, product)
}

// ListProducts handles GET /products.
func (s *Server) ListProducts(w http.ResponseWriter, r *http.Request) {
	params, err := paginationParams(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	products, total, err := s.products.ListPaged(r.Context(), params)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ListResponse[domain.ProductScan]{
		Data:       products,
		Pagination: Pagination{Page: params.Page, Limit: params.Limit, Total: total},
	})
}

// GetProduct handles GET /products/{barcode}.
func (s *Server) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := s.products.GetByBarcode(r.Context(), chi.URLParam(r, "barcode"))
	if err != nil {
		s.serviceError(w, r, err, "product not found")
		return
	}
	writeJSON(w, http.StatusOK, product)
}
