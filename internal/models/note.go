package models

import (
	"github.com/julianstephens/lifetracks/internal/richtext"
)

// Note is a free-form quick note. Tags are always derived from Content.
type Note struct {
	ID        string            `json:"id"`
	Content   richtext.Document `json:"content"`
	Tags      []string          `json:"tags"`
	CreatedAt Timestamp         `json:"createdAt"`
}

// NotebookItem is a note living inside a NOTE widget.
type NotebookItem Note

// PlaylistItem is one entry of a LIST widget.
type PlaylistItem struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	Starred   bool   `json:"starred,omitempty"`
	Category  string `json:"category"`
}

// RatingItem is one entry of a RATING widget. Cover is an inline data: URL
// (or, for seeded data, a plain URL).
type RatingItem struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Rating   float64 `json:"rating"`
	Category string  `json:"category"`
	Cover    string  `json:"cover,omitempty"`
	Review   string  `json:"review,omitempty"`
}

// PlanQuestion is a journaling prompt of a PLAN widget.
type PlanQuestion struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// PlanRecords maps YYYY-MM-DD to question ID to answer text.
type PlanRecords map[string]map[string]string

// DataPoint is one dated value of a DATA widget.
type DataPoint struct {
	Date  string  `json:"date"` // YYYY-MM-DD format
	Value float64 `json:"value"`
}
