package stubserver

import "github.com/gridboard/mobile-core/models"

// defaultCatalog is the tier catalog the stub publishes. Shapes match what
// the production backend serves; numbers are arbitrary but stable so tests
// can rely on them.
func defaultCatalog() models.TiersResponse {
	return models.TiersResponse{
		Tiers: map[string]models.TierInfo{
			"free": {
				Name:        "Free",
				Price:       "$0",
				MaxElements: 3,
				Features:    []string{"boards"},
				Description: "Get started",
			},
			"pro": {
				Name:        "Pro",
				Price:       "$9.99/mo",
				MaxElements: 25,
				Features:    []string{"boards", "export", "share"},
				Description: "For regular use",
			},
			"premium": {
				Name:        "Premium",
				Price:       "$19.99/mo",
				MaxElements: 100,
				Features:    []string{models.FeatureAll},
				Description: "Everything included",
			},
		},
		PaymentMethods: []models.PaymentMethod{
			{ID: "card", Name: "Card"},
			{ID: "invoice", Name: "Invoice"},
		},
	}
}
