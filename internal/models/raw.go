package models

// RawSearchHit is one element of the array returned by GET /search/shows.
type RawSearchHit struct {
	Score float64  `json:"score"`
	Show  *RawShow `json:"show"`
}

// RawShow is the show object embedded in a search hit. Only a subset of the
// API fields is decoded; the normalizer keeps four of them.
type RawShow struct {
	ID        int       `json:"id"`
	URL       string    `json:"url"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Language  string    `json:"language"`
	Genres    []string  `json:"genres"`
	Status    string    `json:"status"`
	Premiered string    `json:"premiered"`
	Summary   string    `json:"summary"`
	Image     *RawImage `json:"image"`
}

// RawImage holds the image variants TVmaze exposes. The whole object is null
// when a show has no artwork.
type RawImage struct {
	Medium   string `json:"medium"`
	Original string `json:"original"`
}

// RawEpisode is one element of the array returned by GET /shows/<id>/episodes.
// Specials carry a null number, which decodes as 0.
type RawEpisode struct {
	ID      int       `json:"id"`
	URL     string    `json:"url"`
	Name    string    `json:"name"`
	Season  int       `json:"season"`
	Number  int       `json:"number"`
	Airdate string    `json:"airdate"`
	Runtime int       `json:"runtime"`
	Summary string    `json:"summary"`
	Image   *RawImage `json:"image"`
}
