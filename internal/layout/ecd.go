package layout

import "spedetl/internal/sped"

// ECD is the Escrituração Contábil Digital variant: accounting records
// rather than fiscal documents. Its I355 balances feed expense extraction.
// ECD files close with I990, not 9999.
var ECD = Variant{
	Name:      "ecd",
	Columns:   40,
	EndMarker: "I990",
	Policy:    ecdPolicy,
}

var ecdPolicy = sped.Policy{
	// Bloco 0
	"0001": "0000",
	"0007": "0001",

	// Bloco C: recovered bookkeeping
	"C001": "0000",
	"C040": "C001",
	"C050": "C040",
	"C051": "C050",
	"C150": "C040",
	"C155": "C150",

	// Bloco I: chart of accounts, balances and P&L
	"I001": "0000",
	"I010": "I001",
	"I050": "I010",
	"I051": "I050",
	"I052": "I050",
	"I150": "I010",
	"I155": "I150",
	"I350": "I010",
	"I355": "I350",

	// Bloco J: statements
	"J001": "0000",
	"J005": "J001",
	"J100": "J005",
	"J150": "J005",
}

// ECD0000 holds field positions for the file-opening register.
var ECD0000 = struct {
	LECD, DtIni, DtFin, Nome, CNPJ, UF, IE, CodMun, IM, IndSitEsp, IndSitIniPer, IndNIRE, IndFinEsc, CodHashSub, NIRE int
}{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}

// ECDI050 holds field positions for chart-of-accounts entries.
var ECDI050 = struct {
	DtAlt, CodNat, IndCta, Nivel, CodCta, NomeCta int
}{1, 2, 3, 4, 5, 6}

// ECDI051 holds field positions for reference-plan mappings. An I051 row
// links its parent I050 account to a reference chart code.
var ECDI051 = struct {
	CodCcus, CodCtaRef int
}{1, 2}

// ECDI155 holds field positions for detailed periodic balances.
var ECDI155 = struct {
	CodCta, CodCcus, VlSldIni, IndDcIni, VlDeb, VlCred, VlSldFin, IndDcFin int
}{1, 2, 3, 4, 5, 6, 7, 8}

// ECDI355 holds field positions for P&L closing balances.
var ECDI355 = struct {
	CodCta, CodCcus, VlCta, IndVl int
}{1, 2, 3, 4}
