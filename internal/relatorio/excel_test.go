package relatorio

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RegistroOS/api-controle/internal/registroos"
)

func registrosExemplo() []registroos.RegistroOS {
	solicitacao := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	return []registroos.RegistroOS{
		{
			NumeroOS:          123456,
			NomeCliente:       "Petrobras",
			NumeroContrato:    "CT-1",
			StatusOS:          "APROVADA",
			DataSolicitacaoOS: &solicitacao,
			SomaValores:       decimal.NewFromFloat(1000.50),
			SomaNotasFiscais:  decimal.NewFromFloat(1500.00),
			SaldoFinal:        decimal.NewFromFloat(499.50),
			DescricaoResumida: "Fabricação de suportes",
		},
		{
			NumeroOS:    654321,
			NomeCliente: "Vale",
			StatusOS:    "EM ANDAMENTO",
		},
	}
}

func TestGerarExcelPreencheLinhas(t *testing.T) {
	f, err := GerarExcel(registrosExemplo())
	require.NoError(t, err)
	defer f.Close()

	titulo, err := f.GetCellValue(abaRegistros, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Número OS", titulo)

	numero, err := f.GetCellValue(abaRegistros, "A2")
	require.NoError(t, err)
	assert.Equal(t, "123456", numero)

	cliente, err := f.GetCellValue(abaRegistros, "B3")
	require.NoError(t, err)
	assert.Equal(t, "Vale", cliente)

	data, err := f.GetCellValue(abaRegistros, "J2")
	require.NoError(t, err)
	assert.Equal(t, "10/01/2026", data)
}

func TestGerarExcelResumo(t *testing.T) {
	f, err := GerarExcel(registrosExemplo())
	require.NoError(t, err)
	defer f.Close()

	assert.NotEqual(t, -1, func() int { i, _ := f.GetSheetIndex(abaResumo); return i }())

	total, err := f.GetCellValue(abaResumo, "B1")
	require.NoError(t, err)
	assert.Equal(t, "2", total)
}

func TestGerarPDFNaoVazio(t *testing.T) {
	pdf := GerarPDF(registrosExemplo())
	require.NotNil(t, pdf)
	assert.NoError(t, pdf.Error())
}
