package extract

import (
	"fmt"
	"log"

	"spedetl/internal/layout"
	"spedetl/internal/sped"
)

type product struct {
	descr string
	ncm   string
}

type participant struct {
	nome string
	uf   string
}

type docHeader struct {
	indOper string
	codPart string
	numDoc  string
	chvNFe  string
	dtDoc   string
}

// Fiscal extracts purchase items from an EFD Fiscal table. Only incoming
// documents (IND_OPER 0) become items; the Fiscal file is the authoritative
// source for purchases, sales come from the Contribuições file.
func Fiscal(t *sped.Table) (*Data, error) {
	header, err := fiscalHeader(t)
	if err != nil {
		return nil, err
	}

	products := fiscalProducts(t)
	participants := fiscalParticipants(t)

	c100 := make(map[int64]docHeader)
	for _, row := range t.ByRegister("C100") {
		c100[row.RowID] = docHeader{
			indOper: row.Field(layout.FiscalC100.IndOper),
			codPart: row.Field(layout.FiscalC100.CodPart),
			numDoc:  row.Field(layout.FiscalC100.NumDoc),
			chvNFe:  row.Field(layout.FiscalC100.ChvNFe),
			dtDoc:   row.Field(layout.FiscalC100.DtDoc),
		}
	}

	var purchases []Item
	for _, row := range t.ByRegister("C170") {
		doc, ok := c100[row.ParentID]
		if !ok {
			// orphaned item, already diagnosed by the parser
			continue
		}
		if doc.indOper != "0" {
			continue
		}

		codItem := row.Field(layout.FiscalC170.CodItem)
		prod := products[codItem]
		descr := prod.descr
		if descr == "" {
			descr = row.Field(layout.FiscalC170.DescrCompl)
		}
		ncm := zfill(prod.ncm, 8)
		if prod.ncm == "" {
			ncm = "00000000"
		}

		item := Item{
			NCM:            ncm,
			CFOP:           zfill(row.Field(layout.FiscalC170.CFOP), 4),
			ItemCode:       codItem,
			Description:    descr,
			TotalValue:     toDecimal(row.Field(layout.FiscalC170.VlItem)),
			Quantity:       toDecimal(row.Field(layout.FiscalC170.Qtd)),
			Unit:           row.Field(layout.FiscalC170.Unid),
			ICMSValue:      toDecimal(row.Field(layout.FiscalC170.VlICMS)),
			PISValue:       toDecimal(row.Field(layout.FiscalC170.VlPIS)),
			COFINSValue:    toDecimal(row.Field(layout.FiscalC170.VlCOFINS)),
			IPIValue:       toDecimal(row.Field(layout.FiscalC170.VlIPI)),
			AliqICMS:       toDecimal(row.Field(layout.FiscalC170.AliqICMS)),
			AliqPIS:        toDecimal(row.Field(layout.FiscalC170.AliqPIS)),
			AliqCOFINS:     toDecimal(row.Field(layout.FiscalC170.AliqCOFINS)),
			VlBcICMS:       toDecimal(row.Field(layout.FiscalC170.VlBcICMS)),
			VlBcPIS:        toDecimal(row.Field(layout.FiscalC170.VlBcPIS)),
			VlBcCOFINS:     toDecimal(row.Field(layout.FiscalC170.VlBcCOFINS)),
			CstICMS:        row.Field(layout.FiscalC170.CstICMS),
			CstPIS:         row.Field(layout.FiscalC170.CstPIS),
			CstCOFINS:      row.Field(layout.FiscalC170.CstCOFINS),
			Operation:      "entrada",
			ParticipantUF:  participants[doc.codPart].uf,
			DocumentNumber: doc.numDoc,
			DocumentKey:    doc.chvNFe,
			DocumentDate:   parseDate(doc.dtDoc),
		}
		purchases = append(purchases, item)
	}

	log.Printf("extracted %d C170 purchase items", len(purchases))

	return &Data{
		FileType:      "fiscal",
		Header:        header,
		PurchaseItems: purchases,
	}, nil
}

func fiscalHeader(t *sped.Table) (Header, error) {
	rows := t.ByRegister("0000")
	if len(rows) == 0 {
		return Header{}, fmt.Errorf("no 0000 record found in file")
	}
	row := rows[0]
	return Header{
		FileType:    "fiscal",
		CNPJ:        zfill(row.Field(layout.Fiscal0000.CNPJ), 14),
		CompanyName: row.Field(layout.Fiscal0000.Nome),
		PeriodStart: parseDate(row.Field(layout.Fiscal0000.DtIni)),
		PeriodEnd:   parseDate(row.Field(layout.Fiscal0000.DtFin)),
		UF:          row.Field(layout.Fiscal0000.UF),
	}, nil
}

// fiscalProducts indexes 0200 catalog entries by item code, first entry
// wins on duplicates.
func fiscalProducts(t *sped.Table) map[string]product {
	out := make(map[string]product)
	for _, row := range t.ByRegister("0200") {
		code := row.Field(layout.Fiscal0200.CodItem)
		if _, ok := out[code]; ok {
			continue
		}
		out[code] = product{
			descr: row.Field(layout.Fiscal0200.DescrItem),
			ncm:   row.Field(layout.Fiscal0200.CodNCM),
		}
	}
	return out
}

// fiscalParticipants indexes 0150 entries by participant code, deriving the
// supplier UF from the IBGE municipality code.
func fiscalParticipants(t *sped.Table) map[string]participant {
	out := make(map[string]participant)
	for _, row := range t.ByRegister("0150") {
		code := row.Field(layout.Fiscal0150.CodPart)
		if _, ok := out[code]; ok {
			continue
		}
		out[code] = participant{
			nome: row.Field(layout.Fiscal0150.Nome),
			uf:   layout.UFFromCodMun(row.Field(layout.Fiscal0150.CodMun)),
		}
	}
	return out
}
