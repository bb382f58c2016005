package sped

import "testing"

func buildTable() *Table {
	t := newTable()
	t.append([]Record{
		{RowID: 0, ParentID: NoParent, Reg: "0000", Fields: []string{"0000", "01"}, Line: 1},
		{RowID: 1, ParentID: NoParent, Reg: "C100", Fields: []string{"C100", "0"}, Line: 2},
		{RowID: 2, ParentID: 1, Reg: "C170", Fields: []string{"C170", "A"}, Line: 3},
		{RowID: 3, ParentID: 1, Reg: "C170", Fields: []string{"C170", "B"}, Line: 4},
	})
	return t
}

func TestTableGet(t *testing.T) {
	table := buildTable()

	rec, ok := table.Get(2)
	if !ok || rec.Reg != "C170" || rec.Fields[1] != "A" {
		t.Fatalf("Get(2) = %+v, %v", rec, ok)
	}
	if _, ok := table.Get(-1); ok {
		t.Fatal("Get(-1) should miss")
	}
	if _, ok := table.Get(99); ok {
		t.Fatal("Get(99) should miss")
	}
}

func TestTableFilter(t *testing.T) {
	table := buildTable()

	children := table.Filter(func(r Record) bool { return r.ParentID == 1 })
	if len(children) != 2 {
		t.Fatalf("got %d children, want 2", len(children))
	}
	if children[0].RowID != 2 || children[1].RowID != 3 {
		t.Fatal("filter results out of file order")
	}

	if got := table.Filter(func(r Record) bool { return false }); got != nil {
		t.Fatalf("empty filter = %v, want nil", got)
	}
}

func TestTableByRegister(t *testing.T) {
	table := buildTable()

	rows := table.ByRegister("C170")
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].Field(0) != "C170" || rows[0].Field(1) != "A" {
		t.Fatalf("row 0 = %+v", rows[0])
	}
	if table.ByRegister("ZZZZ") != nil {
		t.Fatal("unknown register should return nil")
	}
}

// Out-of-range positional access returns "" rather than panicking; ragged
// permissive rows make that a routine lookup.
func TestFieldRowBounds(t *testing.T) {
	fr := FieldRow{Fields: []string{"C170", "A"}}
	if fr.Field(1) != "A" {
		t.Fatalf("Field(1) = %q", fr.Field(1))
	}
	if fr.Field(5) != "" || fr.Field(-1) != "" {
		t.Fatal("out-of-range access must return the empty string")
	}
}

func TestFingerprintSensitivity(t *testing.T) {
	a := buildTable()
	b := buildTable()
	if a.Fingerprint() != b.Fingerprint() {
		t.Fatal("identical tables must hash identically")
	}

	c := newTable()
	c.append([]Record{
		{RowID: 0, ParentID: NoParent, Reg: "0000", Fields: []string{"0000", "02"}, Line: 1},
	})
	d := newTable()
	d.append([]Record{
		{RowID: 0, ParentID: NoParent, Reg: "0000", Fields: []string{"0000", "0", "2"}, Line: 1},
	})
	if c.Fingerprint() == d.Fingerprint() {
		t.Fatal("field boundaries must affect the fingerprint")
	}
}
