package handler

import (
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/footprint/backend/internal/domain"
)

// CreateEnergyRequest is the body of POST /energy. Unknown or missing
// regions use the global grid factor.
type CreateEnergyRequest struct {
	AccountName    string              `json:"account_name" validate:"max=256"`
	BillDate       *openapi_types.Date `json:"bill_date"`
	BilledUnitsKWh *float64            `json:"billed_units_kwh" validate:"required,gte=0,lte=10000000"`
	Region         string              `json:"region" validate:"max=64"`
}

// CreateEnergyReading handles POST /energy.
func (s *Server) CreateEnergyReading(w http.ResponseWriter, r *http.Request) {
	var body CreateEnergyRequest
	if !decodeBody(w, r, &body) {
		return
	}

	reading := domain.EnergyReading{
		AccountName:    body.AccountName,
		BilledUnitsKWh: *body.BilledUnitsKWh,
		Region:         domain.Region(body.Region),
	}
	if body.BillDate != nil {
		d := body.BillDate.Time
		reading.BillDate = &d
	}

	created, err := s.energy.Create(r.Context(), reading)
	if err != nil {
		s.serviceError(w, r, err, "energy reading not found")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ListEnergyReadings handles GET /energy.
func (s *Server) ListEnergyReadings(w http.ResponseWriter, r *http.Request) {
	params, err := paginationParams(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	readings, total, err := s.energy.ListPaged(r.Context(), params)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ListResponse[domain.EnergyReading]{
		Data:       readings,
		Pagination: Pagination{Page: params.Page, Limit: params.Limit, Total: total},
	})
}
