package domain

// User is the minimal identity kept per session. There is no credential
// backend; see the session package.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
