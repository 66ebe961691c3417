package models

// Person is the single resource served by the API.
type Person struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Image    string `json:"image"`
	Title    string `json:"title"`
	Username string `json:"username,omitempty"` // owner; empty when auth is disabled
}

// PersonPatch carries a partial update. Nil fields are left untouched.
type PersonPatch struct {
	Name  *string `json:"name,omitempty"`
	Image *string `json:"image,omitempty"`
	Title *string `json:"title,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p PersonPatch) Empty() bool {
	return p.Name == nil && p.Image == nil && p.Title == nil
}
