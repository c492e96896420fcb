package handler

import (
	"net/http"

	"github.com/pkordes/footprint/backend/internal/domain"
	"github.com/pkordes/footprint/backend/internal/emissions"
)

// SummaryResponse is the body of GET /summary.
type SummaryResponse struct {
	domain.Summary
	Period           emissions.Period        `json:"period"`
	DominantCategory string                  `json:"dominant_category,omitempty"`
	Equivalencies    []emissions.Equivalency `json:"equivalencies"`
	EquivalencyText  string                  `json:"equivalency_text,omitempty"`
}

// TravelSummaryResponse is the body of GET /summary/travel.
type TravelSummaryResponse struct {
	domain.TravelSummary
	Period emissions.Period `json:"period"`
}

// GetSummary handles GET /summary.
// With no parameters it totals today's records; ?period=week|month widens
// the window and ?date=YYYY-MM-DD selects the period containing that date.
func (s *Server) GetSummary(w http.ResponseWriter, r *http.Request) {
	period, date, err := windowParams(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	summary, err := s.summary.Summarize(r.Context(), period, date)
	if err != nil {
		s.serviceError(w, r, err, "summary not found")
		return
	}

	eqs := emissions.Equivalencies(summary.Total)
	writeJSON(w, http.StatusOK, SummaryResponse{
		Summary:          summary,
		Period:           period,
		DominantCategory: summary.Dominant(),
		Equivalencies:    eqs,
		EquivalencyText:  emissions.EquivalencyText(eqs),
	})
}

// GetTravelSummary handles GET /summary/travel.
func (s *Server) GetTravelSummary(w http.ResponseWriter, r *http.Request) {
	period, date, err := windowParams(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	travel, err := s.summary.Travel(r.Context(), period, date)
	if err != nil {
		s.serviceError(w, r, err, "summary not found")
		return
	}

	writeJSON(w, http.StatusOK, TravelSummaryResponse{TravelSummary: travel, Period: period})
}
