package layout

import "spedetl/internal/sped"

// Fiscal is the EFD Fiscal (ICMS/IPI) variant. Its C170 items describe
// incoming goods, which is the purchase side of the ledger; sales come from
// the Contribuições variant.
var Fiscal = Variant{
	Name:      "fiscal",
	Columns:   42,
	EndMarker: "9999",
	Policy:    fiscalPolicy,
}

// fiscalPolicy encodes the block structure of the EFD Fiscal layout for the
// registers this module works with. Registers absent from the map are
// treated as root-level; that includes the block closers (x990) and the
// 9999 trailer.
var fiscalPolicy = sped.Policy{
	// Bloco 0
	"0001": "0000",
	"0005": "0001",
	"0100": "0001",
	"0150": "0001",
	"0190": "0001",
	"0200": "0001",
	"0220": "0200",

	// Bloco C: goods documents
	"C001": "0000",
	"C100": "C001",
	"C170": "C100",
	"C190": "C100",

	// Bloco D: transport and communication services
	"D001": "0000",
	"D100": "D001",
	"D190": "D100",

	// Bloco E: ICMS/IPI assessment
	"E001": "0000",
	"E100": "E001",
	"E110": "E100",
	"E111": "E110",
	"E116": "E110",

	// Bloco K: production and inventory
	"K001": "0000",
	"K100": "K001",
	"K200": "K100",
	"K230": "K100",
	"K235": "K230",
}

// Fiscal0000 holds field positions for the file-opening register.
var Fiscal0000 = struct {
	CodVer, CodFin, DtIni, DtFin, Nome, CNPJ, CPF, UF, IE, CodMun, IM, Suframa, IndPerfil, IndAtiv int
}{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14}

// Fiscal0150 holds field positions for participant records.
var Fiscal0150 = struct {
	CodPart, Nome, CodPais, CNPJ, CPF, IE, CodMun, Suframa, End, Num, Compl, Bairro int
}{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}

// Fiscal0200 holds field positions for item catalog records.
var Fiscal0200 = struct {
	CodItem, DescrItem, CodBarra, CodAntItem, UnidInv, TipoItem, CodNCM, ExIPI, CodGen, CodLst, AliqICMS int
}{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}

// FiscalC100 holds field positions for goods document headers.
var FiscalC100 = struct {
	IndOper, IndEmit, CodPart, CodMod, CodSit, Ser, NumDoc, ChvNFe, DtDoc, DtES int
	VlDoc, IndPgto, VlDesc, VlAbatNT, VlMerc, IndFrt, VlFrt, VlSeg, VlOutDA     int
	VlBcICMS, VlICMS, VlBcICMSST, VlICMSST, VlIPI, VlPIS, VlCOFINS              int
}{
	1, 2, 3, 4, 5, 6, 7, 8, 9, 10,
	11, 12, 13, 14, 15, 16, 17, 18, 19,
	20, 21, 22, 23, 24, 25, 26,
}

// FiscalC170 holds field positions for goods document items.
var FiscalC170 = struct {
	NumItem, CodItem, DescrCompl, Qtd, Unid, VlItem, VlDesc, IndMov             int
	CstICMS, CFOP, CodNat, VlBcICMS, AliqICMS, VlICMS, VlBcICMSST, AliqST       int
	VlICMSST, IndApur, CstIPI, CodEnq, VlBcIPI, AliqIPI, VlIPI                  int
	CstPIS, VlBcPIS, AliqPIS, QuantBcPIS, AliqPISQuant, VlPIS                   int
	CstCOFINS, VlBcCOFINS, AliqCOFINS, QuantBcCOFINS, AliqCOFINSQuant, VlCOFINS int
	CodCta                                                                      int
}{
	1, 2, 3, 4, 5, 6, 7, 8,
	9, 10, 11, 12, 13, 14, 15, 16,
	17, 18, 19, 20, 21, 22, 23,
	24, 25, 26, 27, 28, 29,
	30, 31, 32, 33, 34, 35,
	36,
}

// FiscalC190 holds field positions for the per-CST/CFOP analytic rollup.
var FiscalC190 = struct {
	CstICMS, CFOP, AliqICMS, VlOpr, VlBcICMS, VlICMS, VlBcICMSST, VlICMSST, VlRedBc, VlIPI, CodObs int
}{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}

// FiscalE110 holds field positions for the ICMS assessment totals.
var FiscalE110 = struct {
	VlTotDebitos, VlAjDebitos, VlTotAjDebitos, VlEstornosCred, VlTotCreditos    int
	VlAjCreditos, VlTotAjCreditos, VlEstornosDeb, VlSldCredorAnt, VlSldApurado  int
	VlTotDed, VlICMSRecolher, VlSldCredorTransportar, DebEsp                    int
}{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14}
