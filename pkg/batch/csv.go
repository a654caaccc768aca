package batch

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/pyhub-apps/motopace/pkg/reconcile"
)

// WriteCSV writes pairs to path as an indexed two-column table:
// a header of ",fp,race" followed by "i,fp,race" rows counting from 0.
func WriteCSV(path string, pairs []reconcile.Pair) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("%w: %w", ErrWriteOutput, closeErr)
		}
	}()

	w := csv.NewWriter(f)
	records := make([][]string, 0, len(pairs)+1)
	records = append(records, []string{"", "fp", "race"})
	for i, p := range pairs {
		records = append(records, []string{strconv.Itoa(i), p.FP, p.Race})
	}
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}
