package models

// FeatureAll is the sentinel feature value granting every feature of a tier.
const FeatureAll = "all"

// TierInfo describes a single subscription tier as published by the backend.
type TierInfo struct {
	// Name is the human-readable tier name (e.g. "Pro").
	Name string `json:"name"`

	// Price is the display price string; the client never parses it.
	Price string `json:"price"`

	// MaxElements is the default element quota granted by the tier.
	MaxElements int `json:"max_elements"`

	// Features lists feature keys enabled for the tier. The sentinel
	// [FeatureAll] grants every feature.
	Features []string `json:"features"`

	// Description is optional marketing copy for the tier.
	Description string `json:"description,omitempty"`
}

// HasFeature reports whether the tier grants feature. Matching is exact and
// case-sensitive; [FeatureAll] matches anything.
func (t TierInfo) HasFeature(feature string) bool {
	for _, f := range t.Features {
		if f == FeatureAll || f == feature {
			return true
		}
	}
	return false
}

// PaymentMethod is one of the payment options accepted by the upgrade
// endpoint.
type PaymentMethod struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TiersResponse is the body of GET /api/subscription/tiers. It is cached
// verbatim on the client and consulted for all entitlement queries.
type TiersResponse struct {
	Tiers          map[string]TierInfo `json:"tiers"`
	PaymentMethods []PaymentMethod     `json:"payment_methods"`
}
