/* persist.go
 * Contains the save/load codec for the matchup table. The artifact is a
 * comma-separated text file with four sections split by blank rows: the card
 * name <-> index pairs, then the wins, total games and winrates matrices,
 * one row per card with the row index as the first field. encoding/csv is
 * not used because its reader silently skips the blank rows that act as
 * section delimiters here.
 */

package matchup

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrMalformedArtifact is wrapped by every structural load failure so
// callers can distinguish a corrupt artifact from an I/O error
var ErrMalformedArtifact = errors.New("malformed matchup table artifact")

// Save writes the index mappings and all three tables to w in the rigid
// format that Load expects. Floats are written with strconv's shortest
// round-trippable representation, so a load of this output reproduces the
// exact same values.
func (t *Table) Save(w io.Writer) error {
	bw := bufio.NewWriter(w)

	// card name <-> index mappings, in index order for determinism
	for i := 0; i < t.Size(); i++ {
		name, ok := t.IndexToCardName[i]
		if !ok {
			return fmt.Errorf("index %d has no card name, mappings are not contiguous", i)
		}
		fmt.Fprintf(bw, "%s,%d\n", name, i)
	}

	for _, table := range [][][]float64{t.Wins, t.TotalGames, t.Winrates} {
		// blank row divider needed by Load
		fmt.Fprintln(bw)
		for i, row := range table {
			fields := make([]string, 0, len(row)+1)
			fields = append(fields, strconv.Itoa(i))
			for _, v := range row {
				fields = append(fields, strconv.FormatFloat(v, 'g', -1, 64))
			}
			fmt.Fprintln(bw, strings.Join(fields, ","))
		}
	}

	return bw.Flush()
}

// SaveToFile saves the table to the file at path, creating or truncating it
func (t *Table) SaveToFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create table file: %w", err)
	}
	defer f.Close()

	if err := t.Save(f); err != nil {
		return fmt.Errorf("failed to write table to %s: %w", path, err)
	}
	return nil
}

// Load reads an artifact written by Save and returns the reconstructed
// table. The number of blank dividers seen so far selects what a row means:
// 0 = name/index pairs, 1 = wins rows, 2 = total games rows, 3 = winrates
// rows. Anything that does not fit that structure is a structural error.
func Load(r io.Reader) (*Table, error) {
	t := &Table{
		CardNameToIndex: make(map[string]int),
		IndexToCardName: make(map[int]string),
	}

	var winsRows, totalRows, winrateRows [][]float64

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	dividersHit := 0
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			dividersHit++
			continue
		}

		fields := strings.Split(line, ",")
		switch dividersHit {
		case 0:
			if len(fields) != 2 {
				return nil, fmt.Errorf("%w: mapping row %q needs exactly name and index", ErrMalformedArtifact, line)
			}
			index, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("%w: bad index for card %q: %v", ErrMalformedArtifact, fields[0], err)
			}
			t.CardNameToIndex[fields[0]] = index
			t.IndexToCardName[index] = fields[0]
		case 1, 2, 3:
			// matrix row: [row index, v0, v1, ...]
			row, err := parseMatrixRow(fields)
			if err != nil {
				return nil, err
			}
			switch dividersHit {
			case 1:
				winsRows = append(winsRows, row)
			case 2:
				totalRows = append(totalRows, row)
			case 3:
				winrateRows = append(winrateRows, row)
			}
		default:
			return nil, fmt.Errorf("%w: unexpected content after the winrates section", ErrMalformedArtifact)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read artifact: %w", err)
	}

	n := len(t.CardNameToIndex)
	for _, section := range []struct {
		name string
		rows [][]float64
	}{
		{"wins", winsRows},
		{"total games", totalRows},
		{"winrates", winrateRows},
	} {
		if err := checkMatrixShape(section.name, section.rows, n); err != nil {
			return nil, err
		}
	}

	t.Wins = winsRows
	t.TotalGames = totalRows
	t.Winrates = winrateRows
	return t, nil
}

// LoadFromFile loads a table from the file at path
func LoadFromFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open table file: %w", err)
	}
	defer f.Close()

	t, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load table from %s: %w", path, err)
	}
	return t, nil
}

// parseMatrixRow drops the leading row index field and parses the rest as
// float64 cells
func parseMatrixRow(fields []string) ([]float64, error) {
	if len(fields) < 2 {
		return nil, fmt.Errorf("%w: matrix row %q has no values", ErrMalformedArtifact, strings.Join(fields, ","))
	}
	row := make([]float64, 0, len(fields)-1)
	for _, field := range fields[1:] {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: non-numeric cell %q: %v", ErrMalformedArtifact, field, err)
		}
		row = append(row, v)
	}
	return row, nil
}

// checkMatrixShape rejects missing or ragged matrix sections. Every section
// must be exactly n x n where n is the number of index mappings.
func checkMatrixShape(name string, rows [][]float64, n int) error {
	if len(rows) != n {
		return fmt.Errorf("%w: %s section has %d rows, expected %d", ErrMalformedArtifact, name, len(rows), n)
	}
	for i, row := range rows {
		if len(row) != n {
			return fmt.Errorf("%w: %s row %d has %d values, expected %d", ErrMalformedArtifact, name, i, len(row), n)
		}
	}
	return nil
}
