// Package extract builds typed business objects from a parsed register
// table. It walks the by-register views plus parent linkage; all positional
// knowledge lives in internal/layout. Monetary values use arbitrary-precision
// decimals, never floats.
package extract

import (
	"time"

	"github.com/shopspring/decimal"
)

// Header is the identification block of a SPED file, taken from its first
// 0000 register.
type Header struct {
	FileType    string    `json:"file_type"`
	CNPJ        string    `json:"cnpj"` // zero-padded to 14 digits
	CompanyName string    `json:"company_name"`
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
	UF          string    `json:"uf"`
}

// Item is one document item: a C170 goods line or an A170 service line.
// Optional monetary fields are zero when the source field is empty.
type Item struct {
	NCM         string `json:"ncm"`  // zero-padded to 8 digits; "00000000" when unknown
	CFOP        string `json:"cfop"` // zero-padded to 4 digits
	ItemCode    string `json:"item_code"`
	Description string `json:"description"`

	TotalValue decimal.Decimal `json:"total_value"`
	Quantity   decimal.Decimal `json:"quantity"`
	Unit       string          `json:"unit,omitempty"`

	ICMSValue   decimal.Decimal `json:"icms_value"`
	PISValue    decimal.Decimal `json:"pis_value"`
	COFINSValue decimal.Decimal `json:"cofins_value"`
	IPIValue    decimal.Decimal `json:"ipi_value"`

	AliqICMS   decimal.Decimal `json:"aliq_icms"`
	AliqPIS    decimal.Decimal `json:"aliq_pis"`
	AliqCOFINS decimal.Decimal `json:"aliq_cofins"`

	VlBcICMS   decimal.Decimal `json:"vl_bc_icms"`
	VlBcPIS    decimal.Decimal `json:"vl_bc_pis"`
	VlBcCOFINS decimal.Decimal `json:"vl_bc_cofins"`

	CstICMS   string `json:"cst_icms,omitempty"`
	CstPIS    string `json:"cst_pis,omitempty"`
	CstCOFINS string `json:"cst_cofins,omitempty"`

	// NatBcCred classifies the credit base on service items; empty on goods.
	NatBcCred string `json:"nat_bc_cred,omitempty"`

	// Operation is "entrada" for purchases and "saida" for sales.
	Operation string `json:"operation"`

	// ParticipantUF is the supplier state, derived from the participant's
	// municipality code; empty when the document has no linked participant.
	ParticipantUF string `json:"participant_uf,omitempty"`

	DocumentNumber string    `json:"document_number,omitempty"`
	DocumentKey    string    `json:"document_key,omitempty"`
	DocumentDate   time.Time `json:"document_date"`
}

// Expense is one P&L account balance from an ECD I355 register.
type Expense struct {
	AccountCode        string          `json:"account_code"`
	AccountDescription string          `json:"account_description,omitempty"`
	ReferenceCode      string          `json:"reference_code,omitempty"`
	Value              decimal.Decimal `json:"value"`
	IsDebit            bool            `json:"is_debit"`
}

// Data is the typed result of extraction over one file. Fiscal files fill
// PurchaseItems, Contribuições files fill SalesItems, ECD files fill
// Expenses; the other slices stay empty.
type Data struct {
	FileType      string    `json:"file_type"`
	Header        Header    `json:"header"`
	SalesItems    []Item    `json:"sales_items"`
	PurchaseItems []Item    `json:"purchase_items"`
	Expenses      []Expense `json:"expenses"`
}
