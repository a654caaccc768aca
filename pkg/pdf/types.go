package pdf

// BoundingBox represents a rectangular area with coordinates
type BoundingBox struct {
	X0 float64 `koanf:"left"`   // Left
	Y0 float64 `koanf:"top"`    // Top
	X1 float64 `koanf:"right"`  // Right
	Y1 float64 `koanf:"bottom"` // Bottom
}

// Area builds a BoundingBox from tabula-style (top, left, bottom, right) points.
func Area(top, left, bottom, right float64) BoundingBox {
	return BoundingBox{X0: left, Y0: top, X1: right, Y1: bottom}
}

// Width returns the width of the bounding box
func (b BoundingBox) Width() float64 {
	return b.X1 - b.X0
}

// Height returns the height of the bounding box
func (b BoundingBox) Height() float64 {
	return b.Y1 - b.Y0
}

// Contains checks if a point is within the bounding box
func (b BoundingBox) Contains(x, y float64) bool {
	return x >= b.X0 && x <= b.X1 && y >= b.Y0 && y <= b.Y1
}

// Intersects checks if two bounding boxes intersect
func (b BoundingBox) Intersects(other BoundingBox) bool {
	return !(b.X1 < other.X0 || b.X0 > other.X1 || b.Y1 < other.Y0 || b.Y0 > other.Y1)
}

// Empty reports whether the box has no area
func (b BoundingBox) Empty() bool {
	return b.X1 <= b.X0 || b.Y1 <= b.Y0
}

// Objects represents a collection of PDF objects
type Objects struct {
	Chars []CharObject
}

// CharObject represents a character in the PDF
type CharObject struct {
	Text     string
	Font     string
	FontSize float64
	X0       float64
	Y0       float64
	X1       float64
	Y1       float64
	Width    float64
	Height   float64
}

// GetBBox returns the character's bounding box
func (c CharObject) GetBBox() BoundingBox {
	return BoundingBox{X0: c.X0, Y0: c.Y0, X1: c.X1, Y1: c.Y1}
}

// Center returns the midpoint of the character's bounding box
func (c CharObject) Center() (float64, float64) {
	return (c.X0 + c.X1) / 2, (c.Y0 + c.Y1) / 2
}

// Word represents a run of characters separated from its neighbours by a gap
type Word struct {
	Text       string
	X0         float64
	Y0         float64
	X1         float64
	Y1         float64
	Characters []CharObject
}

// Region is a fixed rectangle on a page split into columns at absolute x positions.
type Region struct {
	Name string `koanf:"name"`

	// Area uses top-left origin points.
	Area BoundingBox `koanf:"area"`

	// Columns are the x positions separating cells; n boundaries give n+1 cells.
	Columns []float64 `koanf:"columns"`

	// MaxPages limits extraction to the first n pages; 0 means all pages.
	MaxPages int `koanf:"max_pages"`
}

// PageTable holds the rows a region produced on one page
type PageTable struct {
	Page int
	Rows [][]string
}

// WordExtractionOption is a function that modifies word extraction behavior
type WordExtractionOption func(*wordExtractionConfig)

type wordExtractionConfig struct {
	XTolerance float64
	YTolerance float64
}

// WithXTolerance sets the horizontal tolerance for text grouping
func WithXTolerance(tolerance float64) WordExtractionOption {
	return func(c *wordExtractionConfig) {
		c.XTolerance = tolerance
	}
}

// WithYTolerance sets the vertical tolerance for text grouping
func WithYTolerance(tolerance float64) WordExtractionOption {
	return func(c *wordExtractionConfig) {
		c.YTolerance = tolerance
	}
}

func newWordExtractionConfig(opts []WordExtractionOption) *wordExtractionConfig {
	config := &wordExtractionConfig{
		XTolerance: 3.0,
		YTolerance: 3.0,
	}
	for _, opt := range opts {
		opt(config)
	}
	return config
}
