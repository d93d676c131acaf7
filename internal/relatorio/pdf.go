package relatorio

import (
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/RegistroOS/api-controle/internal/registroos"
)

// GerarPDF monta um relatório com uma seção por ordem de serviço
func GerarPDF(registros []registroos.RegistroOS) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	tradutor := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, tradutor("Relatório de Ordens de Serviço"), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("%d registro(s)", len(registros)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	linha := func(rotulo, valor string) {
		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(55, 5, tradutor(rotulo), "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		pdf.MultiCell(0, 5, tradutor(valor), "", "L", false)
	}

	for _, r := range registros {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetFillColor(31, 78, 120)
		pdf.SetTextColor(255, 255, 255)
		pdf.CellFormat(0, 8, tradutor(fmt.Sprintf("OS %d - %s", r.NumeroOS, r.NomeCliente)), "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(1)

		linha("Contrato:", r.NumeroContrato)
		linha("Unidade / Setor:", fmt.Sprintf("%s / %s", r.UnidadeCliente, r.SetorUnidadeCliente))
		linha("Diligenciador:", r.NomeDiligenciadorOS)
		linha("Status OS:", r.StatusOS)
		linha("Levantamento / Produção:", fmt.Sprintf("%s / %s", r.StatusLevantamento, r.StatusProducao))
		linha("Data solicitação:", formataData(r.DataSolicitacaoOS))
		linha("Prazo execução:", formataData(r.PrazoExecucaoServico))
		linha("Soma de valores:", r.SomaValores.StringFixed(2))
		linha("Soma de notas fiscais:", r.SomaNotasFiscais.StringFixed(2))
		linha("Saldo final:", r.SaldoFinal.StringFixed(2))
		if r.DescricaoResumida != "" {
			linha("Descrição:", r.DescricaoResumida)
		}
		pdf.Ln(4)
	}

	return pdf
}
