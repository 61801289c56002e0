package models

// Credentials is the body of POST /api/auth/login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// AuthResponse is the success body of both login and registration.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// UpgradeRequest is the body of POST /api/subscription/upgrade. Reference is
// an optional payment reference (e.g. an external transaction id).
type UpgradeRequest struct {
	Tier          string `json:"tier"`
	PaymentMethod string `json:"payment_method"`
	Reference     string `json:"reference,omitempty"`
}

// APIError is the error body the backend attaches to non-2xx responses.
type APIError struct {
	Detail string `json:"detail"`
}
