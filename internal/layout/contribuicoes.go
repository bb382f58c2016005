package layout

import "spedetl/internal/sped"

// Contribuicoes is the EFD Contribuições (PIS/COFINS) variant. Its C170 and
// A170 items describe outgoing goods and services, which is the sales side
// of the ledger.
var Contribuicoes = Variant{
	Name:      "contribuicoes",
	Columns:   40,
	EndMarker: "9999",
	Policy:    contribuicoesPolicy,
}

var contribuicoesPolicy = sped.Policy{
	// Bloco 0: identification; 0140 opens one establishment's scope
	"0001": "0000",
	"0140": "0001",
	"0150": "0140",
	"0190": "0140",
	"0200": "0140",

	// Bloco A: service documents
	"A001": "0000",
	"A010": "A001",
	"A100": "A010",
	"A170": "A100",

	// Bloco C: goods documents
	"C001": "0000",
	"C010": "C001",
	"C100": "C010",
	"C170": "C100",

	// Bloco F: other documents and operations
	"F001": "0000",
	"F010": "F001",
	"F100": "F010",

	// Bloco M: PIS/COFINS assessment
	"M001": "0000",
	"M100": "M001",
	"M105": "M100",
	"M200": "M001",
	"M210": "M200",
	"M500": "M001",
	"M600": "M001",
}

// Contrib0000 holds field positions for the file-opening register.
var Contrib0000 = struct {
	CodVer, TipoEscrit, IndSitEsp, NumRecAnterior, DtIni, DtFin, Nome, CNPJ, UF, CodMun, Suframa, IndNatPJ, IndAtiv int
}{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13}

// Contrib0140 holds field positions for establishment records.
var Contrib0140 = struct {
	CodEst, Nome, CNPJ, UF, IE, CodMun, IM, Suframa int
}{1, 2, 3, 4, 5, 6, 7, 8}

// Contrib0200 holds field positions for item catalog records.
var Contrib0200 = struct {
	CodItem, DescrItem, CodBarra, CodAntItem, UnidInv, TipoItem, CodNCM, ExIPI, CodGen int
}{1, 2, 3, 4, 5, 6, 7, 8, 9}

// ContribA100 holds field positions for service document headers.
var ContribA100 = struct {
	IndOper, IndEmit, CodPart, CodSit, Ser, Sub, NumDoc, ChvNFSe, DtDoc, DtExeServ int
	VlDoc, IndPgto, VlDesc, VlPIS, VlCOFINS, VlPISRet, VlCOFINSRet, VlISS          int
}{
	1, 2, 3, 4, 5, 6, 7, 8, 9, 10,
	11, 12, 13, 14, 15, 16, 17, 18,
}

// ContribA170 holds field positions for service document items.
var ContribA170 = struct {
	NumItem, CodItem, DescrCompl, VlItem, VlDesc, NatBcCred, IndOrigCred int
	CstPIS, VlBcPIS, AliqPIS, VlPIS                                      int
	CstCOFINS, VlBcCOFINS, AliqCOFINS, VlCOFINS, CodCta, CodCcus         int
}{
	1, 2, 3, 4, 5, 6, 7,
	8, 9, 10, 11,
	12, 13, 14, 15, 16, 17,
}

// ContribC100 holds field positions for goods document headers.
var ContribC100 = struct {
	IndOper, IndEmit, CodPart, CodMod, CodSit, Ser, NumDoc, ChvNFe, DtDoc, DtES int
	VlDoc, IndPgto, VlDesc, VlAbatNT, VlMerc, IndFrt, VlFrt, VlSeg, VlOutDA     int
	VlBcICMS, VlICMS, VlBcICMSST, VlICMSST, VlIPI, VlPIS, VlCOFINS              int
}{
	1, 2, 3, 4, 5, 6, 7, 8, 9, 10,
	11, 12, 13, 14, 15, 16, 17, 18, 19,
	20, 21, 22, 23, 24, 25, 26,
}

// ContribC170 holds field positions for goods document items. The
// Contribuições item omits the IPI columns the Fiscal variant carries, so
// the PIS/COFINS block sits five positions earlier.
var ContribC170 = struct {
	NumItem, CodItem, DescrCompl, Qtd, Unid, VlItem, VlDesc, IndMov             int
	CstICMS, CFOP, CodNat, VlBcICMS, AliqICMS, VlICMS, VlBcICMSST, AliqST       int
	VlICMSST, IndApur                                                           int
	CstPIS, VlBcPIS, AliqPIS, QuantBcPIS, AliqPISQuant, VlPIS                   int
	CstCOFINS, VlBcCOFINS, AliqCOFINS, QuantBcCOFINS, AliqCOFINSQuant, VlCOFINS int
	CodCta                                                                      int
}{
	1, 2, 3, 4, 5, 6, 7, 8,
	9, 10, 11, 12, 13, 14, 15, 16,
	17, 18,
	19, 20, 21, 22, 23, 24,
	25, 26, 27, 28, 29, 30,
	31,
}

// ContribM100 holds field positions for the PIS credit assessment.
var ContribM100 = struct {
	CodCred, IndCredOri, VlBcCOFINS, AliqCOFINS, QuantBcCOFINS, AliqCOFINSQuant int
	VlCred, VlAjusAcres, VlAjusReduc, VlCredDif, VlCredDisp                     int
	IndDescCred, VlCredDesc, SldCred                                            int
}{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14}
