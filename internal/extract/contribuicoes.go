package extract

import (
	"fmt"
	"log"

	"spedetl/internal/layout"
	"spedetl/internal/sped"
)

// Contribuicoes extracts sales items from an EFD Contribuições table: C170
// goods lines and A170 service lines whose document header is an outgoing
// operation (IND_OPER 1). Purchases are deliberately left out; the Fiscal
// file carries the complete incoming side.
func Contribuicoes(t *sped.Table) (*Data, error) {
	header, err := contribHeader(t)
	if err != nil {
		return nil, err
	}

	products := contribProducts(t)
	goods := contribGoodsSales(t, products)
	services := contribServiceSales(t, products)

	log.Printf("extracted %d C170 sales items + %d A170 service items", len(goods), len(services))

	return &Data{
		FileType:   "contribuicoes",
		Header:     header,
		SalesItems: append(goods, services...),
	}, nil
}

func contribHeader(t *sped.Table) (Header, error) {
	rows := t.ByRegister("0000")
	if len(rows) == 0 {
		return Header{}, fmt.Errorf("no 0000 record found in file")
	}
	row := rows[0]
	return Header{
		FileType:    "contribuicoes",
		CNPJ:        zfill(row.Field(layout.Contrib0000.CNPJ), 14),
		CompanyName: row.Field(layout.Contrib0000.Nome),
		PeriodStart: parseDate(row.Field(layout.Contrib0000.DtIni)),
		PeriodEnd:   parseDate(row.Field(layout.Contrib0000.DtFin)),
		UF:          row.Field(layout.Contrib0000.UF),
	}, nil
}

func contribProducts(t *sped.Table) map[string]product {
	out := make(map[string]product)
	for _, row := range t.ByRegister("0200") {
		code := row.Field(layout.Contrib0200.CodItem)
		if _, ok := out[code]; ok {
			continue
		}
		out[code] = product{
			descr: row.Field(layout.Contrib0200.DescrItem),
			ncm:   row.Field(layout.Contrib0200.CodNCM),
		}
	}
	return out
}

func contribGoodsSales(t *sped.Table, products map[string]product) []Item {
	c100 := make(map[int64]docHeader)
	for _, row := range t.ByRegister("C100") {
		c100[row.RowID] = docHeader{
			indOper: row.Field(layout.ContribC100.IndOper),
			numDoc:  row.Field(layout.ContribC100.NumDoc),
			chvNFe:  row.Field(layout.ContribC100.ChvNFe),
			dtDoc:   row.Field(layout.ContribC100.DtDoc),
		}
	}

	var sales []Item
	for _, row := range t.ByRegister("C170") {
		doc, ok := c100[row.ParentID]
		if !ok || doc.indOper != "1" {
			continue
		}

		codItem := row.Field(layout.ContribC170.CodItem)
		prod := products[codItem]
		descr := prod.descr
		if descr == "" {
			descr = row.Field(layout.ContribC170.DescrCompl)
		}
		ncm := zfill(prod.ncm, 8)
		if prod.ncm == "" {
			ncm = "00000000"
		}

		sales = append(sales, Item{
			NCM:            ncm,
			CFOP:           zfill(row.Field(layout.ContribC170.CFOP), 4),
			ItemCode:       codItem,
			Description:    descr,
			TotalValue:     toDecimal(row.Field(layout.ContribC170.VlItem)),
			Quantity:       toDecimal(row.Field(layout.ContribC170.Qtd)),
			Unit:           row.Field(layout.ContribC170.Unid),
			ICMSValue:      toDecimal(row.Field(layout.ContribC170.VlICMS)),
			PISValue:       toDecimal(row.Field(layout.ContribC170.VlPIS)),
			COFINSValue:    toDecimal(row.Field(layout.ContribC170.VlCOFINS)),
			AliqICMS:       toDecimal(row.Field(layout.ContribC170.AliqICMS)),
			AliqPIS:        toDecimal(row.Field(layout.ContribC170.AliqPIS)),
			AliqCOFINS:     toDecimal(row.Field(layout.ContribC170.AliqCOFINS)),
			VlBcICMS:       toDecimal(row.Field(layout.ContribC170.VlBcICMS)),
			VlBcPIS:        toDecimal(row.Field(layout.ContribC170.VlBcPIS)),
			VlBcCOFINS:     toDecimal(row.Field(layout.ContribC170.VlBcCOFINS)),
			CstICMS:        row.Field(layout.ContribC170.CstICMS),
			CstPIS:         row.Field(layout.ContribC170.CstPIS),
			CstCOFINS:      row.Field(layout.ContribC170.CstCOFINS),
			Operation:      "saida",
			DocumentNumber: doc.numDoc,
			DocumentKey:    doc.chvNFe,
			DocumentDate:   parseDate(doc.dtDoc),
		})
	}
	return sales
}

func contribServiceSales(t *sped.Table, products map[string]product) []Item {
	a100 := make(map[int64]docHeader)
	for _, row := range t.ByRegister("A100") {
		a100[row.RowID] = docHeader{
			indOper: row.Field(layout.ContribA100.IndOper),
			numDoc:  row.Field(layout.ContribA100.NumDoc),
			chvNFe:  row.Field(layout.ContribA100.ChvNFSe),
			dtDoc:   row.Field(layout.ContribA100.DtDoc),
		}
	}

	var sales []Item
	for _, row := range t.ByRegister("A170") {
		doc, ok := a100[row.ParentID]
		if !ok || doc.indOper != "1" {
			continue
		}

		codItem := row.Field(layout.ContribA170.CodItem)
		prod := products[codItem]
		descr := prod.descr
		if descr == "" {
			descr = row.Field(layout.ContribA170.DescrCompl)
		}
		// services rarely carry an NCM
		ncm := zfill(prod.ncm, 8)
		if prod.ncm == "" {
			ncm = "00000000"
		}

		sales = append(sales, Item{
			NCM:            ncm,
			CFOP:           "5933", // default CFOP for services
			ItemCode:       codItem,
			Description:    descr,
			TotalValue:     toDecimal(row.Field(layout.ContribA170.VlItem)),
			PISValue:       toDecimal(row.Field(layout.ContribA170.VlPIS)),
			COFINSValue:    toDecimal(row.Field(layout.ContribA170.VlCOFINS)),
			AliqPIS:        toDecimal(row.Field(layout.ContribA170.AliqPIS)),
			AliqCOFINS:     toDecimal(row.Field(layout.ContribA170.AliqCOFINS)),
			VlBcPIS:        toDecimal(row.Field(layout.ContribA170.VlBcPIS)),
			VlBcCOFINS:     toDecimal(row.Field(layout.ContribA170.VlBcCOFINS)),
			CstPIS:         row.Field(layout.ContribA170.CstPIS),
			CstCOFINS:      row.Field(layout.ContribA170.CstCOFINS),
			NatBcCred:      row.Field(layout.ContribA170.NatBcCred),
			Operation:      "saida",
			DocumentNumber: doc.numDoc,
			DocumentKey:    doc.chvNFe,
			DocumentDate:   parseDate(doc.dtDoc),
		})
	}
	return sales
}
