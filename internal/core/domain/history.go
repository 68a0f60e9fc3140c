package domain

import "time"

// QueryRecord is a query kept in the local history.
type QueryRecord struct {
	// ID is the unique identifier (uuid).
	ID string

	// Query is the submitted text.
	Query string

	// Filters are the filters the query ran with.
	Filters AskFilters

	// TotalResults is the number of hits returned.
	TotalResults int

	// ThemeCount is the number of non-empty themes returned.
	ThemeCount int

	// CreatedAt is when the query completed.
	CreatedAt time.Time
}
