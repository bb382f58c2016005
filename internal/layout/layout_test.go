package layout

import "testing"

func TestByName(t *testing.T) {
	for _, name := range []string{"fiscal", "Fiscal", " FISCAL "} {
		v, err := ByName(name)
		if err != nil {
			t.Fatalf("ByName(%q): %v", name, err)
		}
		if v.Name != "fiscal" || v.Columns != 42 || v.EndMarker != "9999" {
			t.Fatalf("ByName(%q) = %+v", name, v)
		}
	}

	ecd, err := ByName("ecd")
	if err != nil {
		t.Fatal(err)
	}
	if ecd.EndMarker != "I990" {
		t.Fatalf("ECD end marker = %q, want I990", ecd.EndMarker)
	}

	if _, err := ByName("nfe"); err == nil {
		t.Fatal("expected error for unknown variant")
	}
}

func TestPolicies(t *testing.T) {
	cases := []struct {
		variant Variant
		child   string
		parent  string
	}{
		{Fiscal, "C170", "C100"},
		{Fiscal, "C190", "C100"},
		{Fiscal, "E110", "E100"},
		{Contribuicoes, "C170", "C100"},
		{Contribuicoes, "A170", "A100"},
		{ECD, "I051", "I050"},
		{ECD, "I355", "I350"},
		{ECD, "I155", "I150"},
	}
	for _, c := range cases {
		got, ok := c.variant.Policy.Parent(c.child)
		if !ok || got != c.parent {
			t.Errorf("%s: Parent(%s) = %q, %v; want %q", c.variant.Name, c.child, got, ok, c.parent)
		}
	}

	// opening registers and the end markers are root-level
	for _, v := range []Variant{Fiscal, Contribuicoes, ECD} {
		if _, ok := v.Policy.Parent("0000"); ok {
			t.Errorf("%s: 0000 must be root", v.Name)
		}
		if _, ok := v.Policy.Parent(v.EndMarker); ok {
			t.Errorf("%s: end marker must be root", v.Name)
		}
	}
}

func TestVariantOptions(t *testing.T) {
	opts := Contribuicoes.Options()
	if opts.Columns != 40 || opts.EndMarker != "9999" {
		t.Fatalf("options = %+v", opts)
	}
	if p, _ := opts.Policy.Parent("C170"); p != "C100" {
		t.Fatal("options must carry the variant policy")
	}
}

func TestUFFromCodMun(t *testing.T) {
	cases := map[string]string{
		"3550308": "SP",
		"3304557": "RJ",
		"1100205": "RO",
		"5300108": "DF",
		"99":      "",
		"1":       "",
		"":        "",
	}
	for codMun, want := range cases {
		if got := UFFromCodMun(codMun); got != want {
			t.Errorf("UFFromCodMun(%q) = %q, want %q", codMun, got, want)
		}
	}
}
