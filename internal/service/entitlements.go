package service

import "github.com/gridboard/mobile-core/models"

const (
	// defaultMaxElements is the conservative quota for anonymous sessions
	// and for any tier the catalog cannot resolve.
	defaultMaxElements = 3

	// adminMaxElements is the fixed quota of the privileged administrative
	// roles, independent of catalog contents.
	adminMaxElements = 20
)

// MaxElements implements [SessionService]. Resolution order: administrative
// short-circuit, then the per-user override, then the tier catalog, then the
// conservative default.
func (s *sessionService) MaxElements() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return defaultMaxElements
	}

	switch s.user.SubscriptionTier {
	case models.TierAdmin, models.TierSuperAdmin:
		return adminMaxElements
	}

	if s.user.MaxElements != nil {
		return *s.user.MaxElements
	}

	if s.tiers != nil {
		if tier, ok := s.tiers.Tiers[s.user.SubscriptionTier]; ok {
			return tier.MaxElements
		}
	}

	return defaultMaxElements
}

// FeatureAvailable implements [SessionService]. Conservative: no user, no
// catalog or an unknown tier key all resolve to false.
func (s *sessionService) FeatureAvailable(feature string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil || s.tiers == nil {
		return false
	}

	tier, ok := s.tiers.Tiers[s.user.SubscriptionTier]
	if !ok {
		return false
	}

	return tier.HasFeature(feature)
}
