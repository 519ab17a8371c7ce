package csvtable

import (
	"time"

	"github.com/matrusri/standup/core"
)

// Migrate computes the upgrade of a stored table shape to the declared
// schema. It is pure: no I/O, inputs are not mutated.
//
// Each declared column absent from the stored header is inserted just
// before the next declared column the stored header already has, or
// appended when none follows, and backfilled into every row (with its
// default, or with a date derived from the row's Timestamp for
// BackfillFromTimestamp columns; an unparseable timestamp falls back to
// `today` rather than failing the load). Stored columns unknown to the
// schema are preserved in place, and short rows are padded to the header
// width, so no data is lost. Migrate is idempotent: running it on its
// own output reports changed == false.
func Migrate(storedHeader []string, rows [][]string, schema Schema, today string) (header []string, out [][]string, changed bool) {
	header = append([]string(nil), storedHeader...)
	out = make([][]string, len(rows))
	for i, row := range rows {
		out[i] = append([]string(nil), row...)
	}

	// pad rows that predate the stored header's width
	for i := range out {
		for len(out[i]) < len(header) {
			out[i] = append(out[i], "")
			changed = true
		}
	}

	for _, col := range schema {
		if indexOf(header, col.Name) >= 0 {
			continue
		}
		insertAt := insertPos(header, schema, col.Name)

		tsIdx := indexOf(header, ColTimestamp)
		header = insertStr(header, insertAt, col.Name)
		for i := range out {
			val := col.Default
			if col.BackfillFromTimestamp {
				val = deriveDate(rowGet(out[i], tsIdx), today)
			}
			out[i] = insertStr(out[i], insertAt, val)
		}
		changed = true
	}
	return header, out, changed
}

// deriveDate extracts the date part of a stored timestamp; a timestamp
// that does not parse yields `today` (fail-open on schema drift).
func deriveDate(timestamp, today string) string {
	ts, err := time.Parse(core.TimestampLayout, timestamp)
	if err != nil {
		return today
	}
	return ts.Format(core.DateLayout)
}

// insertPos places a missing declared column immediately before the
// next declared column the stored header already has, keeping unknown
// stored columns where they are. A missing trailing column (Comment on
// a legacy table) therefore lands after everything stored, matching how
// the tables historically grew.
func insertPos(header []string, schema Schema, name string) int {
	seen := false
	for _, col := range schema {
		if col.Name == name {
			seen = true
			continue
		}
		if !seen {
			continue
		}
		if i := indexOf(header, col.Name); i >= 0 {
			return i
		}
	}
	return len(header)
}

func insertStr(s []string, i int, v string) []string {
	s = append(s, "")
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}
