package domain

// User is the session identity supplied by the identity collaborator.
// Read-only from the assistant's perspective.
type User struct {
	Name   string
	Email  string
	Avatar *string
}
