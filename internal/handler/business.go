package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/playventures/bizlab/internal/catalog"
	"github.com/playventures/bizlab/internal/domain"
)

// BusinessSource is the slice of the catalog the HTTP layer needs
type BusinessSource interface {
	Get(businessID string) (*domain.BusinessSimulation, error)
	List() []domain.BusinessSimulation
}

// BusinessSummary is the listing view of a business config
type BusinessSummary struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	GameType domain.GameType `json:"game_type"`
	Icon     string          `json:"icon,omitempty"`
}

// HandleListBusinesses lists all playable businesses
// @Summary List businesses
// @Description Lists every loaded business config, sorted by name
// @Tags business
// @Produce json
// @Success 200 {array} BusinessSummary
// @Router /api/v1/businesses [get]
func HandleListBusinesses(businesses BusinessSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all := businesses.List()
		summaries := make([]BusinessSummary, 0, len(all))
		for _, b := range all {
			summaries = append(summaries, BusinessSummary{
				ID:       b.ID,
				Name:     b.Name,
				Category: catalog.DisplayCategory(b.Category),
				GameType: b.GameType,
				Icon:     b.VisualConfig.Icon,
			})
		}
		respondJSON(w, http.StatusOK, summaries)
	}
}

// HandleGetBusiness returns one full business config
// @Summary Get a business config
// @Tags business
// @Produce json
// @Param businessID path string true "Business ID"
// @Success 200 {object} domain.BusinessSimulation
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/businesses/{businessID} [get]
func HandleGetBusiness(businesses BusinessSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		businessID := chi.URLParam(r, "businessID")

		biz, err := businesses.Get(businessID)
		if err != nil {
			respondServiceError(w, r, "Get business", err)
			return
		}

		respondJSON(w, http.StatusOK, biz)
	}
}
