package domain

// User is an authenticated wallet owner. The ledger trusts the user reference
// supplied by the session layer and never re-verifies credentials itself.
type User struct {
	UserID       string `json:"userID"`
	Name         string `json:"name"`
	PhoneNumber  string `json:"phoneNumber"` // normalized to digits only
	PasswordHash string `json:"-"`
	IsActive     bool   `json:"isActive"`
	AuditFields
}
