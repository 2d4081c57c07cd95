package models

// DefaultDisplayName is used when the identity provider
// doesn't supply a username.
const DefaultDisplayName = "Unknown"

type User struct {
	ID int64
	// ExternalID is the stable subject assigned by the identity provider.
	ExternalID  string
	DisplayName string
}
