package relatorio

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/RegistroOS/api-controle/internal/registroos"
)

const (
	abaRegistros = "Relatório OS"
	abaResumo    = "Resumo"
)

var cabecalhoExcel = []string{
	"Número OS",
	"Cliente",
	"Contrato",
	"Unidade",
	"Setor",
	"Diligenciador",
	"Status OS",
	"Status Levantamento",
	"Status Produção",
	"Data Solicitação",
	"Data Emissão",
	"Prazo Execução",
	"Soma Valores",
	"Soma Notas Fiscais",
	"Saldo Final",
	"Descrição Resumida",
}

func formataData(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("02/01/2006")
}

func valorFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

// GerarExcel monta a planilha de registros mais uma aba de resumo por status
func GerarExcel(registros []registroos.RegistroOS) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", abaRegistros)

	estiloCabecalho, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"1F4E78"}},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return nil, err
	}

	for i, titulo := range cabecalhoExcel {
		celula, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(abaRegistros, celula, titulo); err != nil {
			return nil, err
		}
	}
	ultimaColuna, err := excelize.CoordinatesToCellName(len(cabecalhoExcel), 1)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(abaRegistros, "A1", ultimaColuna, estiloCabecalho); err != nil {
		return nil, err
	}

	for linha, r := range registros {
		valores := []any{
			r.NumeroOS,
			r.NomeCliente,
			r.NumeroContrato,
			r.UnidadeCliente,
			r.SetorUnidadeCliente,
			r.NomeDiligenciadorOS,
			r.StatusOS,
			r.StatusLevantamento,
			r.StatusProducao,
			formataData(r.DataSolicitacaoOS),
			formataData(r.DataEmissaoOS),
			formataData(r.PrazoExecucaoServico),
			valorFloat(r.SomaValores),
			valorFloat(r.SomaNotasFiscais),
			valorFloat(r.SaldoFinal),
			r.DescricaoResumida,
		}
		for col, v := range valores {
			celula, err := excelize.CoordinatesToCellName(col+1, linha+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(abaRegistros, celula, v); err != nil {
				return nil, err
			}
		}
	}

	if err := f.SetColWidth(abaRegistros, "A", "P", 20); err != nil {
		return nil, err
	}
	if err := f.SetPanes(abaRegistros, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, err
	}

	if err := montarResumo(f, registros); err != nil {
		return nil, err
	}
	return f, nil
}

func montarResumo(f *excelize.File, registros []registroos.RegistroOS) error {
	if _, err := f.NewSheet(abaResumo); err != nil {
		return err
	}

	porStatus := map[string]int{}
	somaValores := decimal.Zero
	somaNotas := decimal.Zero
	for _, r := range registros {
		status := r.StatusOS
		if status == "" {
			status = "SEM STATUS"
		}
		porStatus[status]++
		somaValores = somaValores.Add(r.SomaValores)
		somaNotas = somaNotas.Add(r.SomaNotasFiscais)
	}

	linhas := [][]any{
		{"Total de registros", len(registros)},
		{"Soma de valores", valorFloat(somaValores)},
		{"Soma de notas fiscais", valorFloat(somaNotas)},
		{"Saldo consolidado", valorFloat(somaNotas.Sub(somaValores))},
	}
	for status, quantidade := range porStatus {
		linhas = append(linhas, []any{fmt.Sprintf("OS %s", status), quantidade})
	}

	for i, linha := range linhas {
		celulaA, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		celulaB, err := excelize.CoordinatesToCellName(2, i+1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(abaResumo, celulaA, linha[0]); err != nil {
			return err
		}
		if err := f.SetCellValue(abaResumo, celulaB, linha[1]); err != nil {
			return err
		}
	}
	return f.SetColWidth(abaResumo, "A", "B", 28)
}
