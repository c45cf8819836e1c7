package models

// Show is the normalized record for one TV series returned by a search.
// Summary may contain markup from the API.
type Show struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Summary string `json:"summary"`
	Image   string `json:"image"`
}
