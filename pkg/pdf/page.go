package pdf

import (
	"math"
	"sort"
	"strings"
)

// charPage implements the Page interface over a decoded set of characters.
// Both text backends decode into it, so every page behaves the same way
// regardless of which library read the file.
type charPage struct {
	pageNumber int
	width      float64
	height     float64
	bbox       BoundingBox
	objects    Objects
}

// NewPage creates a page from already positioned characters
func NewPage(pageNumber int, width, height float64, chars []CharObject) Page {
	return &charPage{
		pageNumber: pageNumber,
		width:      width,
		height:     height,
		bbox:       BoundingBox{X0: 0, Y0: 0, X1: width, Y1: height},
		objects:    Objects{Chars: chars},
	}
}

// GetPageNumber returns the page number (1-based)
func (p *charPage) GetPageNumber() int {
	return p.pageNumber
}

// GetWidth returns the page width
func (p *charPage) GetWidth() float64 {
	return p.width
}

// GetHeight returns the page height
func (p *charPage) GetHeight() float64 {
	return p.height
}

// GetBBox returns the page bounding box
func (p *charPage) GetBBox() BoundingBox {
	return p.bbox
}

// GetObjects returns all objects on the page
func (p *charPage) GetObjects() Objects {
	return p.objects
}

// WithinBBox filters characters whose centre lies within the bounding box
func (p *charPage) WithinBBox(bbox BoundingBox) Objects {
	filtered := Objects{Chars: []CharObject{}}
	for _, char := range p.objects.Chars {
		if bbox.Contains(char.Center()) {
			filtered.Chars = append(filtered.Chars, char)
		}
	}
	return filtered
}

// ExtractText extracts text from the page
func (p *charPage) ExtractText() string {
	lines := groupCharsIntoLines(p.objects.Chars, 3.0)

	var text strings.Builder
	for i, line := range lines {
		text.WriteString(joinChars(line, 3.0))
		if i < len(lines)-1 {
			text.WriteString("\n")
		}
	}
	return text.String()
}

// ExtractWords extracts individual words from the page
func (p *charPage) ExtractWords(opts ...WordExtractionOption) []Word {
	config := newWordExtractionConfig(opts)

	var words []Word
	for _, line := range groupCharsIntoLines(p.objects.Chars, config.YTolerance) {
		words = append(words, extractWordsFromLine(line, config.XTolerance)...)
	}
	return words
}

// groupCharsIntoLines groups characters into text lines ordered top to bottom,
// each line ordered left to right.
func groupCharsIntoLines(chars []CharObject, yTolerance float64) [][]CharObject {
	if len(chars) == 0 {
		return nil
	}

	sortedChars := make([]CharObject, len(chars))
	copy(sortedChars, chars)
	sort.SliceStable(sortedChars, func(i, j int) bool {
		return sortedChars[i].Y0 < sortedChars[j].Y0
	})

	var lines [][]CharObject
	currentLine := []CharObject{sortedChars[0]}
	currentY := sortedChars[0].Y0

	for _, char := range sortedChars[1:] {
		if math.Abs(char.Y0-currentY) <= yTolerance {
			currentLine = append(currentLine, char)
			continue
		}
		lines = append(lines, sortLine(currentLine))
		currentLine = []CharObject{char}
		currentY = char.Y0
	}
	lines = append(lines, sortLine(currentLine))

	return lines
}

func sortLine(line []CharObject) []CharObject {
	sort.SliceStable(line, func(i, j int) bool {
		return line[i].X0 < line[j].X0
	})
	return line
}

// joinChars concatenates an x-sorted run of characters, inserting a single
// space wherever the horizontal gap looks like a word break.
func joinChars(chars []CharObject, xTolerance float64) string {
	var text strings.Builder
	for i, char := range chars {
		if i > 0 && isWordGap(chars[i-1], char, xTolerance) {
			text.WriteString(" ")
		}
		text.WriteString(char.Text)
	}
	return text.String()
}

func isWordGap(prev, next CharObject, xTolerance float64) bool {
	gap := next.X0 - prev.X1
	return gap > xTolerance || gap > next.Width*0.5
}

// extractWordsFromLine extracts words from a single line of characters
func extractWordsFromLine(lineChars []CharObject, xTolerance float64) []Word {
	if len(lineChars) == 0 {
		return nil
	}

	var words []Word
	currentWord := []CharObject{lineChars[0]}

	for i := 1; i < len(lineChars); i++ {
		if isWordGap(lineChars[i-1], lineChars[i], xTolerance) {
			words = append(words, createWord(currentWord))
			currentWord = []CharObject{lineChars[i]}
			continue
		}
		currentWord = append(currentWord, lineChars[i])
	}
	words = append(words, createWord(currentWord))

	return words
}

// createWord creates a Word from a group of characters
func createWord(chars []CharObject) Word {
	var text strings.Builder
	minX, minY := chars[0].X0, chars[0].Y0
	maxX, maxY := chars[0].X1, chars[0].Y1

	for _, char := range chars {
		text.WriteString(char.Text)
		minX = math.Min(minX, char.X0)
		minY = math.Min(minY, char.Y0)
		maxX = math.Max(maxX, char.X1)
		maxY = math.Max(maxY, char.Y1)
	}

	return Word{
		Text:       text.String(),
		X0:         minX,
		Y0:         minY,
		X1:         maxX,
		Y1:         maxY,
		Characters: chars,
	}
}
