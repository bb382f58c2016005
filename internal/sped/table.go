package sped

import (
	"encoding/binary"

	"github.com/zeebo/xxh3"
)

// NoParent is the ParentID of a root-level record.
const NoParent int64 = -1

// Record is one physical line of a SPED file after hierarchy resolution.
//
// RowID values start at 0 and increase strictly in file order within one
// parse, so a record's RowID doubles as its index into the table. ParentID,
// when not NoParent, always references a record emitted earlier in file
// order whose register code is this record's declared parent under the
// active Policy.
type Record struct {
	RowID    int64
	ParentID int64
	Reg      string   // register code; always equal to Fields[0]
	Fields   []string // ordered field values, index 0 is the register code
	Line     int      // 1-based physical line in the source
}

// FieldRow is the by-register view of one record: positional field access
// plus hierarchy links, with no business interpretation.
type FieldRow struct {
	RowID    int64
	ParentID int64
	Fields   []string
}

// Field returns the value at positional index i, or "" when i is out of
// range. Ragged permissive-mode rows make out-of-range lookups routine, so
// the accessor is bounds-safe rather than panicking.
func (fr FieldRow) Field(i int) string {
	if i < 0 || i >= len(fr.Fields) {
		return ""
	}
	return fr.Fields[i]
}

// Table is the append-only collection of resolved records for one parse
// run. It is created empty, appended to chunk by chunk, and never mutated
// once a record is in. A Table is not safe for concurrent mutation, but any
// number of goroutines may read a completed one.
type Table struct {
	records []Record
	byReg   map[string][]int
	diags   []Diagnostic
}

func newTable() *Table {
	return &Table{byReg: make(map[string][]int)}
}

// append adds one resolved chunk, keeping the per-register index current.
func (t *Table) append(recs []Record) {
	for _, r := range recs {
		t.byReg[r.Reg] = append(t.byReg[r.Reg], len(t.records))
		t.records = append(t.records, r)
	}
}

// Len returns the number of records in the table.
func (t *Table) Len() int { return len(t.records) }

// Raw returns all records in file order. The returned slice is the table's
// backing store; callers must treat it as read-only.
func (t *Table) Raw() []Record { return t.records }

// Get returns the record with the given row id. Row ids are dense and
// 0-based, so this is a constant-time slice lookup.
func (t *Table) Get(rowID int64) (Record, bool) {
	if rowID < 0 || rowID >= int64(len(t.records)) {
		return Record{}, false
	}
	return t.records[rowID], true
}

// Filter returns the records matching pred, in file order. It is the
// lowest-level escape hatch; prefer ByRegister for code lookups.
func (t *Table) Filter(pred func(Record) bool) []Record {
	var out []Record
	for _, r := range t.records {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

// ByRegister returns the records whose register code equals code, in file
// order, as positional field rows.
func (t *Table) ByRegister(code string) []FieldRow {
	idx := t.byReg[code]
	if len(idx) == 0 {
		return nil
	}
	out := make([]FieldRow, len(idx))
	for i, j := range idx {
		r := t.records[j]
		out[i] = FieldRow{RowID: r.RowID, ParentID: r.ParentID, Fields: r.Fields}
	}
	return out
}

// Diagnostics returns the ordered non-fatal findings collected during the
// parse. A successful parse with diagnostics is still a usable table.
func (t *Table) Diagnostics() []Diagnostic { return t.diags }

// Fingerprint returns an xxh3 hash over every record's row id, parent id,
// register code and field values. Two tables with identical content hash
// identically regardless of the batch sizes used to build them.
func (t *Table) Fingerprint() uint64 {
	h := xxh3.New()
	var buf [8]byte
	writeInt := func(v int64) {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		_, _ = h.Write(buf[:])
	}
	for _, r := range t.records {
		writeInt(r.RowID)
		writeInt(r.ParentID)
		_, _ = h.WriteString(r.Reg)
		_, _ = h.Write([]byte{0x1e})
		for _, f := range r.Fields {
			_, _ = h.WriteString(f)
			_, _ = h.Write([]byte{0x1f})
		}
	}
	return h.Sum64()
}
