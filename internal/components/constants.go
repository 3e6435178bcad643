package components

// UI component constants
const (
	// MinWidth and MinHeight are the smallest terminal the dashboard renders in
	MinWidth  = 80
	MinHeight = 30

	// ListWidthPercent is the share of a row given to its list pane
	ListWidthPercent = 30

	// StatusLineHeight is the number of lines below the panes
	StatusLineHeight = 1

	// Redacted replaces identifiers when redaction is on
	Redacted = "<REDACTED>"
)
