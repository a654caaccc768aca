// Command regiondump prints the rows a configured region yields for a PDF,
// for checking a layout template against a sheet.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/pyhub-apps/motopace/internal/config"
	"github.com/pyhub-apps/motopace/pkg/pdf"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: regiondump <pdf_file> [classification|practice-left|practice-right]")
		os.Exit(1)
	}
	pdfPath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	regions := []pdf.Region{cfg.Classification.Region, cfg.Practice.Left, cfg.Practice.Right}
	if len(os.Args) > 2 {
		regions = selectRegion(regions, os.Args[2])
		if len(regions) == 0 {
			fmt.Fprintf(os.Stderr, "Unknown region %q\n", os.Args[2])
			os.Exit(1)
		}
	}

	pages, err := pdf.Validate(pdfPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	} else {
		fmt.Printf("Structurally valid, %d pages\n", pages)
	}

	doc, err := pdf.Open(pdfPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open PDF: %v\n", err)
		os.Exit(1)
	}
	defer doc.Close()

	extractor := pdf.NewRegionExtractor()
	for _, region := range regions {
		tables, err := extractor.Extract(doc, region)
		if err != nil {
			fmt.Printf("=== %s: %v\n", region.Name, err)
			continue
		}
		for _, table := range tables {
			fmt.Printf("=== %s, page %d (%d rows) ===\n", region.Name, table.Page, len(table.Rows))
			for _, row := range table.Rows {
				fmt.Println(strings.Join(row, " | "))
			}
		}
		fmt.Println()
	}
}

func selectRegion(regions []pdf.Region, name string) []pdf.Region {
	for _, r := range regions {
		if r.Name == name {
			return []pdf.Region{r}
		}
	}
	return nil
}
