package catalog

import (
	"fmt"
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/playventures/bizlab/internal/domain"
)

// Catalog is the read-only, ID-keyed set of loaded business configs
type Catalog struct {
	businesses map[string]domain.BusinessSimulation
	ordered    []domain.BusinessSimulation
}

var titleCaser = cases.Title(language.English)

func newCatalog(businesses map[string]domain.BusinessSimulation) *Catalog {
	ordered := make([]domain.BusinessSimulation, 0, len(businesses))
	for _, b := range businesses {
		ordered = append(ordered, b)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Name < ordered[j].Name })

	return &Catalog{businesses: businesses, ordered: ordered}
}

// Get returns the business config for an ID
func (c *Catalog) Get(businessID string) (*domain.BusinessSimulation, error) {
	biz, ok := c.businesses[businessID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrBusinessNotFound, businessID)
	}
	return &biz, nil
}

// Exists reports whether a business config is loaded
func (c *Catalog) Exists(businessID string) bool {
	_, ok := c.businesses[businessID]
	return ok
}

// List returns all business configs sorted by name
func (c *Catalog) List() []domain.BusinessSimulation {
	out := make([]domain.BusinessSimulation, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// Len returns the number of loaded configs
func (c *Catalog) Len() int {
	return len(c.businesses)
}

// DisplayCategory returns a category slug in title case for presentation,
// e.g. "food_service" becomes "Food Service"
func DisplayCategory(category string) string {
	out := make([]byte, 0, len(category))
	for i := 0; i < len(category); i++ {
		if category[i] == '_' || category[i] == '-' {
			out = append(out, ' ')
			continue
		}
		out = append(out, category[i])
	}
	return titleCaser.String(string(out))
}
