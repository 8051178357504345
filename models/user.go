package models

// User is an identity handed to us by the external provider. The backend
// never creates or deletes users on its own; /users/sync mirrors them.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}
