package domain

// User is the merged record published to clients: identity fields from the
// auth provider combined with name/avatar fields from the profile document.
// A nil *User means signed out.
type User struct {
	UID           string `json:"uid"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"emailVerified"`
	DisplayName   string `json:"displayName"`
	PhotoURL      string `json:"photoURL"`
}
