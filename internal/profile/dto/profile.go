package dto

// UpdateProfileRequest carries a partial profile edit; nil fields are left
// untouched.
type UpdateProfileRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	PhotoURL  *string `json:"photoURL"`
}
