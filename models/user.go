package models

// User is the identity and entitlement record returned by the backend.
// It is created or replaced wholesale on every successful login, registration
// or user-info fetch and is never mutated field by field on the client.
type User struct {
	// ID is the backend-assigned unique identifier of the account.
	ID string `json:"id"`

	// Email is the login identifier of the account.
	Email string `json:"email"`

	// Name is the display name of the user. Non-sensitive, shown in UI.
	Name string `json:"name"`

	// SubscriptionTier is the key into the tier catalog. Privileged keys
	// (admin roles) bypass catalog lookup entirely.
	SubscriptionTier string `json:"subscription_tier"`

	// SubscriptionExpires is subscription lifecycle metadata, opaque to the
	// client: it is displayed, never computed on.
	SubscriptionExpires string `json:"subscription_expires,omitempty"`

	// IsTrial and TrialStarted describe trial state; opaque like the above.
	IsTrial      bool   `json:"is_trial,omitempty"`
	TrialStarted string `json:"trial_started,omitempty"`

	// IsActive and StatusMessage are account-status hints, informational only.
	IsActive      bool   `json:"is_active"`
	StatusMessage string `json:"status_message,omitempty"`

	// MaxElements is an optional per-user quota override. When present it
	// takes precedence over the tier catalog's quota for the user's tier.
	MaxElements *int `json:"max_elements,omitempty"`
}

// Subscription tier keys with special handling on the client.
const (
	// TierAdmin and TierSuperAdmin are privileged administrative roles that
	// resolve to a fixed elevated quota regardless of catalog contents.
	TierAdmin      = "admin"
	TierSuperAdmin = "super_admin"
)
