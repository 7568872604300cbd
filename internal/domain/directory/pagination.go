package directory

// Meta represents pagination information for a directory page.
type Meta struct {
	Total int64 `json:"total"` // Total number of records
	Page  int64 `json:"page"`  // Current page number (1-based)
	Size  int64 `json:"size"`  // Number of records per page
	Pages int64 `json:"pages"` // Total number of pages
}

// NewMeta creates a Meta with the page count derived from total and size.
func NewMeta(total, page, size int64) Meta {
	var pages int64
	if size > 0 {
		pages = (total + size - 1) / size
	}

	return Meta{
		Total: total,
		Page:  page,
		Size:  size,
		Pages: pages,
	}
}
