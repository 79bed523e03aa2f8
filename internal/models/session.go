package models

// Session is the controller-owned view state shown by the presentation layer.
type Session struct {
	Busy     bool             `json:"busy"`      // A capture cycle is in progress
	DarkMode bool             `json:"dark_mode"` // Display-mode flag
	History  []LocationRecord `json:"history"`   // Captured positions, oldest first
}
