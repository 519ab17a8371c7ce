package csvtable

import (
	"encoding/csv"
	"os"
	"strings"

	"github.com/matrusri/standup/core"
)

// Well-known column names shared by every table.
const (
	ColTimestamp = "Timestamp"
	ColDate      = "Date"
)

type (
	// Column declares one schema column and the value backfilled into
	// pre-existing rows when the column is introduced by a migration.
	Column struct {
		Name    string
		Default string
		// BackfillFromTimestamp derives the backfill value from the
		// row's Timestamp instead of Default; when the timestamp does
		// not parse, the backfill falls back to today (fail-open).
		BackfillFromTimestamp bool
	}

	// Schema is the declared current shape of a table, in column order.
	Schema []Column

	// Record is one loaded row, keyed by column name via the header it
	// was read under.
	Record struct {
		fields []string
		index  map[string]int
	}

	// Table is one append-only CSV table. There is no in-memory state:
	// every operation re-reads the whole file and mutating operations
	// rewrite it whole. Correct under a single writer only; concurrent
	// writers race at whole-table granularity (last write wins).
	Table struct {
		path   string
		schema Schema
		clock  core.Clock
	}
)

func (s Schema) Header() []string {
	header := make([]string, len(s))
	for i, col := range s {
		header[i] = col.Name
	}
	return header
}

func (s Schema) column(name string) (Column, bool) {
	for _, col := range s {
		if col.Name == name {
			return col, true
		}
	}
	return Column{}, false
}

// Get returns the record's value for the named column, or "" when the
// column (or the field) is absent.
func (r Record) Get(col string) string {
	if i, ok := r.index[col]; ok && i < len(r.fields) {
		return r.fields[i]
	}
	return ""
}

func New(path string, schema Schema, clock core.Clock) *Table {
	return &Table{path: path, schema: schema, clock: clock}
}

func (t *Table) Path() string { return t.path }

// Initialize creates an empty table with the schema header, or upgrades
// an existing one to the declared schema. Idempotent: a second call on an
// up-to-date table is a no-op.
func (t *Table) Initialize() error {
	if _, err := os.Stat(t.path); err != nil {
		if os.IsNotExist(err) {
			return t.write(t.schema.Header(), nil)
		}
		return newFault("stat", t.path, err)
	}
	// loading migrates and persists a stale shape as a side effect
	_, _, err := t.loadRaw()
	return err
}

// Load reads the whole table in insertion order, migrating a stale shape
// (and persisting the upgrade) as a side effect. A missing file is an
// empty table, not an error.
func (t *Table) Load() ([]Record, error) {
	header, rows, err := t.loadRaw()
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		index[col] = i
	}
	records := make([]Record, len(rows))
	for i, row := range rows {
		records[i] = Record{fields: row, index: index}
	}
	return records, nil
}

// Append stamps Timestamp (and Date, when the schema has that column)
// from the clock and writes the new row as the last row of the table.
// Fields absent from `fields` get their column default.
func (t *Table) Append(fields map[string]string) error {
	now := t.clock.Now()
	row := make([]string, len(t.schema))
	for i, col := range t.schema {
		switch col.Name {
		case ColTimestamp:
			row[i] = now.Format(core.TimestampLayout)
		case ColDate:
			row[i] = now.Format(core.DateLayout)
		default:
			if v, ok := fields[col.Name]; ok {
				row[i] = v
			} else {
				row[i] = col.Default
			}
		}
	}

	if _, err := os.Stat(t.path); err != nil {
		if os.IsNotExist(err) {
			return t.write(t.schema.Header(), [][]string{row})
		}
		return newFault("stat", t.path, err)
	}

	f, err := os.OpenFile(t.path, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return newFault("append", t.path, err)
	}
	w := csv.NewWriter(f)
	_ = w.Write(row)
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return newFault("append", t.path, err)
	}
	if err := f.Close(); err != nil {
		return newFault("append", t.path, err)
	}
	return nil
}

// ExistsForIdentityToday reports whether any row whose identity column
// matches `identity` (case-insensitively, whitespace-trimmed) carries
// today's date. Rows with a malformed or missing date never match.
func (t *Table) ExistsForIdentityToday(identityCol, identity string) (bool, error) {
	records, err := t.Load()
	if err != nil {
		return false, err
	}

	identity = strings.ToLower(strings.TrimSpace(identity))
	today := t.clock.Now().Format(core.DateLayout)
	for _, rec := range records {
		if strings.ToLower(strings.TrimSpace(rec.Get(identityCol))) != identity {
			continue
		}
		if strings.TrimSpace(rec.Get(ColDate)) == today {
			return true, nil
		}
	}
	return false, nil
}

// UpdateField sets `field` to `value` on every row whose Timestamp
// exactly equals `key` (expected: exactly one) and rewrites the table.
// No matching row is a silent no-op: nothing is rewritten.
func (t *Table) UpdateField(key, field, value string) error {
	header, rows, err := t.loadRaw()
	if err != nil {
		return err
	}

	tsIdx := indexOf(header, ColTimestamp)
	fldIdx := indexOf(header, field)
	if tsIdx < 0 || fldIdx < 0 {
		return nil
	}

	var matched bool
	for i := range rows {
		if rowGet(rows[i], tsIdx) == key {
			rows[i][fldIdx] = value
			matched = true
		}
	}
	if !matched {
		return nil
	}
	return t.write(header, rows)
}

// MoveRecord moves the first row whose Timestamp equals `key` into dst,
// mapping fields by column name. The destination table is persisted
// before the source: a crash in between leaves the row in both tables
// (a duplicate) rather than in neither.
func (t *Table) MoveRecord(dst *Table, key string) (bool, error) {
	srcHeader, srcRows, err := t.loadRaw()
	if err != nil {
		return false, err
	}

	tsIdx := indexOf(srcHeader, ColTimestamp)
	if tsIdx < 0 {
		return false, nil
	}
	rowIdx := -1
	for i := range srcRows {
		if rowGet(srcRows[i], tsIdx) == key {
			rowIdx = i
			break
		}
	}
	if rowIdx < 0 {
		return false, nil
	}

	dstHeader, dstRows, err := dst.loadRaw()
	if err != nil {
		return false, err
	}

	srcIdx := make(map[string]int, len(srcHeader))
	for i, col := range srcHeader {
		srcIdx[col] = i
	}
	moved := make([]string, len(dstHeader))
	for i, colName := range dstHeader {
		if j, ok := srcIdx[colName]; ok {
			moved[i] = rowGet(srcRows[rowIdx], j)
		} else if col, ok := dst.schema.column(colName); ok {
			moved[i] = col.Default
		}
	}

	// destination first, source second
	if err := dst.write(dstHeader, append(dstRows, moved)); err != nil {
		return false, err
	}
	srcRows = append(srcRows[:rowIdx], srcRows[rowIdx+1:]...)
	if err := t.write(srcHeader, srcRows); err != nil {
		return false, err
	}
	return true, nil
}

// Clear irreversibly truncates the table to an empty table whose header
// is the schema header.
func (t *Table) Clear() error {
	return t.write(t.schema.Header(), nil)
}

// loadRaw reads header+rows, migrating a stale shape to the declared
// schema and persisting the upgrade once. A missing file yields the
// schema header and no rows without creating anything.
func (t *Table) loadRaw() ([]string, [][]string, error) {
	f, err := os.Open(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			return t.schema.Header(), nil, nil
		}
		return nil, nil, newFault("read", t.path, err)
	}
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // rows may predate newer columns
	all, err := r.ReadAll()
	_ = f.Close()
	if err != nil {
		return nil, nil, newFault("read", t.path, err)
	}
	if len(all) == 0 {
		return t.schema.Header(), nil, nil
	}

	today := t.clock.Now().Format(core.DateLayout)
	header, rows, changed := Migrate(all[0], all[1:], t.schema, today)
	if changed {
		if err := t.write(header, rows); err != nil {
			return nil, nil, err
		}
	}
	return header, rows, nil
}

func (t *Table) write(header []string, rows [][]string) error {
	f, err := os.Create(t.path)
	if err != nil {
		return newFault("write", t.path, err)
	}
	w := csv.NewWriter(f)
	_ = w.Write(header)
	for _, row := range rows {
		_ = w.Write(row)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return newFault("write", t.path, err)
	}
	if err := f.Close(); err != nil {
		return newFault("write", t.path, err)
	}
	return nil
}

func indexOf(header []string, col string) int {
	for i, name := range header {
		if name == col {
			return i
		}
	}
	return -1
}

func rowGet(row []string, i int) string {
	if i >= 0 && i < len(row) {
		return row[i]
	}
	return ""
}
