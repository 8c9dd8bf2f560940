package model

// Status is the closed set of reading states. The labels are persisted
// as reference rows (seeded at startup) but exposed as a value type so
// status handling stays exhaustive at compile time.
type Status string

const (
	StatusNotStarted Status = "Not started"
	StatusReading    Status = "Reading"
	StatusFinished   Status = "Finished"
)

// AllStatuses returns the fixed label universe in seed order.
func AllStatuses() []Status {
	return []Status{StatusNotStarted, StatusReading, StatusFinished}
}

// ParseStatus matches a label against the fixed universe. The match is
// exact: callers supply the label as stored.
func ParseStatus(label string) (Status, bool) {
	switch Status(label) {
	case StatusNotStarted, StatusReading, StatusFinished:
		return Status(label), true
	}
	return "", false
}

const DefaultCategoryName = "Uncategorized"

type Author struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ReadingStatus struct {
	ID     int64  `json:"id"`
	Status Status `json:"status"`
}

// Book is the catalog entity. Reference data is held as foreign keys;
// the display fields next to them are populated by the repository's
// join queries so callers get the canonical flattened view without a
// second round trip.
type Book struct {
	ID        int64   `json:"id"`
	Title     string  `json:"title"`
	Publisher *string `json:"publisher"`
	ISBN      *string `json:"isbn"`
	Pages     *int    `json:"pages"`
	PagesRead int     `json:"pages_read"`
	CoverURL  *string `json:"cover_url"`

	AuthorID        int64  `json:"author_id"`
	AuthorFirstName string `json:"author_first_name"`
	AuthorLastName  string `json:"author_last_name"`

	CategoryID   *int64  `json:"category_id"`
	CategoryName *string `json:"category_name"`

	StatusID    *int64  `json:"status_id"`
	StatusLabel *string `json:"status_label"`
}
