package runinfo

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Table is a raw RunInfo export: the header plus data rows, all comma-split.
// Kept verbatim (after column truncation) for the provenance CSV.
type Table struct {
	Header []string
	Rows   [][]string
	Cols   *Columns
}

// ReadTable loads a RunInfo CSV. Fields are split on plain commas and each
// row is truncated to MaxColumns: the trailing free-text columns of the
// export embed unquoted commas, so anything past that width is untrustworthy.
func ReadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open runinfo: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var table Table
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) > MaxColumns {
			fields = fields[:MaxColumns]
		}

		if table.Header == nil {
			// The export may open with a UTF-8 BOM.
			fields[0] = strings.TrimPrefix(fields[0], "\ufeff")
			table.Header = fields
			cols, err := NewColumns(fields)
			if err != nil {
				return nil, err
			}
			table.Cols = cols
			continue
		}
		table.Rows = append(table.Rows, fields)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read runinfo: %w", err)
	}
	if table.Header == nil {
		return nil, fmt.Errorf("%w: empty runinfo file", ErrMalformedRow)
	}

	return &table, nil
}

// FilterByScientificName drops rows whose ScientificName does not contain the
// taxon, case-insensitively. The portal search matches more loosely than the
// taxon string, so the export needs this second pass.
func (t *Table) FilterByScientificName(taxon string) {
	taxonLC := strings.ToLower(taxon)
	kept := t.Rows[:0]
	for _, row := range t.Rows {
		name := strings.ToLower(t.Cols.Get(row, ColScientificName))
		if strings.Contains(name, taxonLC) {
			kept = append(kept, row)
		}
	}
	t.Rows = kept
}

// WriteTo writes the table back out as plain CSV
func (t *Table) WriteTo(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(f)
	writeLine := func(fields []string) {
		w.WriteString(strings.Join(fields, ","))
		w.WriteByte('\n')
	}
	writeLine(t.Header)
	for _, row := range t.Rows {
		writeLine(row)
	}

	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
