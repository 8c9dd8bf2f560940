package googlebooks

// volumesResponse is the shape of GET /volumes?q=isbn:<isbn>.
// Only the fields the catalog consumes are declared; everything else
// in the payload is ignored.
type volumesResponse struct {
	TotalItems int    `json:"totalItems"`
	Items      []item `json:"items"`
}

type item struct {
	VolumeInfo volumeInfo `json:"volumeInfo"`
}

type volumeInfo struct {
	Title      string        `json:"title"`
	Authors    []string      `json:"authors"`
	Publisher  string        `json:"publisher"`
	PageCount  int           `json:"pageCount"`
	Categories []interface{} `json:"categories"`
	ImageLinks *imageLinks   `json:"imageLinks"`
}

type imageLinks struct {
	Thumbnail      string `json:"thumbnail"`
	SmallThumbnail string `json:"smallThumbnail"`
}

// ExternalBook is the normalized record handed to the catalog. Missing
// source fields degrade to zero values rather than failing the lookup.
type ExternalBook struct {
	Title           string
	AuthorFirstName string
	AuthorLastName  string
	Categories      []string
	ISBN            string
	Pages           int
	Publisher       string
	CoverURL        string
}
