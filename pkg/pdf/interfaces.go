package pdf

// Document represents a decoded PDF document
type Document interface {
	// GetPages returns all pages in the document
	GetPages() []Page

	// GetPage returns a specific page by index (0-based)
	GetPage(index int) (Page, error)

	// PageCount returns the total number of pages
	PageCount() int

	// Path returns the file the document was opened from
	Path() string

	// Close releases resources associated with the document
	Close() error
}

// Page represents a single page in a PDF document.
// Coordinates use a top-left origin measured in points.
type Page interface {
	// GetPageNumber returns the page number (1-based)
	GetPageNumber() int

	// GetWidth returns the page width
	GetWidth() float64

	// GetHeight returns the page height
	GetHeight() float64

	// GetBBox returns the page bounding box
	GetBBox() BoundingBox

	// GetObjects returns all objects on the page
	GetObjects() Objects

	// WithinBBox returns the objects whose centre lies inside bbox
	WithinBBox(bbox BoundingBox) Objects

	// ExtractText extracts text from the page, one line per text row
	ExtractText() string

	// ExtractWords extracts individual words from the page
	ExtractWords(opts ...WordExtractionOption) []Word
}

// Extractor turns a fixed region of a document into rows of text cells.
// Implementations must return one PageTable per selected page, in page order.
type Extractor interface {
	Extract(doc Document, region Region) ([]PageTable, error)
}
