// Package export reads and writes the journal as CSV.
package export

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"

	"tradebook/internal/errors"
	"tradebook/internal/models"
)

// WriteCSV writes the trades as CSV. Numeric fields are emitted exactly as
// stored, so a journal round-trips through export and import unchanged.
func WriteCSV(w io.Writer, trades []models.TradeRecord) error {
	if err := gocsv.Marshal(trades, w); err != nil {
		return errors.Wrap(err, "failed to write csv")
	}
	return nil
}

// ReadCSV parses trades from CSV. Records missing an id are assigned one.
func ReadCSV(r io.Reader) ([]models.TradeRecord, error) {
	var trades []models.TradeRecord
	if err := gocsv.Unmarshal(r, &trades); err != nil {
		return nil, errors.Wrap(err, "failed to parse csv")
	}

	now := time.Now()
	for i := range trades {
		if trades[i].ID == "" {
			trades[i].ID = models.NewTradeID()
		}
		if trades[i].CreatedAt.IsZero() {
			trades[i].CreatedAt = now
		}
		if trades[i].UpdatedAt.IsZero() {
			trades[i].UpdatedAt = now
		}
	}
	return trades, nil
}

// ExportFile writes the trades to a CSV file under dir and returns its path.
// The filename carries the trade type and export date.
func ExportFile(dir string, tradeType models.TradeType, trades []models.TradeRecord) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrap(err, "failed to create export directory")
	}

	name := "tradebook_" + string(tradeType) + "_" + time.Now().Format("2006-01-02") + ".csv"
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrap(err, "failed to create export file")
	}
	defer f.Close()

	if err := WriteCSV(f, trades); err != nil {
		return "", err
	}
	return path, nil
}

// ImportFile reads trades from a CSV file.
func ImportFile(path string) ([]models.TradeRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open import file")
	}
	defer f.Close()

	return ReadCSV(f)
}
