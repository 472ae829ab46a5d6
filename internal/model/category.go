package model

// CategoryCodeMaxLen is the maximum length of a category code.
const CategoryCodeMaxLen = 6

// Category maps a short code to a display name, e.g. "FRENOS" -> "Sistema de
// Frenos". The code is the primary key and is what products reference.
type Category struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
