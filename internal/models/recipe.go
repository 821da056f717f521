package models

// RecipeSummary is a recipe search hit merged with its detail lookup
// It is rebuilt on every query and never persisted
type RecipeSummary struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	SourceURL string `json:"sourceUrl"`
	Image     string `json:"image"`
}
