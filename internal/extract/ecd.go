package extract

import (
	"fmt"
	"log"
	"strings"

	"spedetl/internal/layout"
	"spedetl/internal/sped"
)

type account struct {
	name string
	ref  string
}

// ECD extracts P&L account balances from an ECD table. Every I355 register
// becomes one Expense, enriched with the account name from its I050 chart
// entry and the reference-plan code from the I050's I051 children.
func ECD(t *sped.Table) (*Data, error) {
	header, err := ecdHeader(t)
	if err != nil {
		return nil, err
	}

	accounts := ecdAccounts(t)

	var expenses []Expense
	for _, row := range t.ByRegister("I355") {
		codCta := row.Field(layout.ECDI355.CodCta)
		acc := accounts[codCta]
		expenses = append(expenses, Expense{
			AccountCode:        codCta,
			AccountDescription: acc.name,
			ReferenceCode:      acc.ref,
			Value:              toDecimal(row.Field(layout.ECDI355.VlCta)),
			IsDebit:            strings.EqualFold(row.Field(layout.ECDI355.IndVl), "D"),
		})
	}

	log.Printf("extracted %d I355 expense accounts", len(expenses))

	return &Data{
		FileType: "ecd",
		Header:   header,
		Expenses: expenses,
	}, nil
}

func ecdHeader(t *sped.Table) (Header, error) {
	rows := t.ByRegister("0000")
	if len(rows) == 0 {
		return Header{}, fmt.Errorf("no 0000 record found in file")
	}
	row := rows[0]
	return Header{
		FileType:    "ecd",
		CNPJ:        zfill(row.Field(layout.ECD0000.CNPJ), 14),
		CompanyName: row.Field(layout.ECD0000.Nome),
		PeriodStart: parseDate(row.Field(layout.ECD0000.DtIni)),
		PeriodEnd:   parseDate(row.Field(layout.ECD0000.DtFin)),
		UF:          row.Field(layout.ECD0000.UF),
	}, nil
}

// ecdAccounts builds the chart-of-accounts lookup. I051 rows are children
// of their I050 account, so the reference code is joined through parent
// linkage rather than any field value.
func ecdAccounts(t *sped.Table) map[string]account {
	i050Code := make(map[int64]string)
	out := make(map[string]account)
	for _, row := range t.ByRegister("I050") {
		code := row.Field(layout.ECDI050.CodCta)
		i050Code[row.RowID] = code
		if _, ok := out[code]; ok {
			continue
		}
		out[code] = account{name: row.Field(layout.ECDI050.NomeCta)}
	}
	for _, row := range t.ByRegister("I051") {
		code, ok := i050Code[row.ParentID]
		if !ok {
			continue
		}
		acc := out[code]
		if acc.ref == "" {
			acc.ref = row.Field(layout.ECDI051.CodCtaRef)
			out[code] = acc
		}
	}
	return out
}
