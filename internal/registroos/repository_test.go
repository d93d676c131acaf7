package registroos

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/RegistroOS/api-controle/internal/auth"
)

func TestGerarNumeroOSDentroDaFaixa(t *testing.T) {
	db := abrirBanco(t)
	repo := NewRepository()

	numero, err := repo.GerarNumeroOS(db)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, numero, uint(numeroOSMin))
	assert.LessOrEqual(t, numero, uint(numeroOSMax))
}

func TestCriarGravaEscalaresEColecoes(t *testing.T) {
	db := abrirBanco(t)
	repo := NewRepository()

	payload := map[string]any{
		"nome_cliente":            "Petrobras",
		"descricao_resumida":      "Fabricação de suportes",
		"havera_valor_fabricacao": SimValor,
		"valor_fabricacao":        1000.50,
		"havera_valor_montagem":   NaoValor,
		"valor_montagem":          777.77,
		"materiais": []any{
			map[string]any{"tipo_material": "ACO_CARBONO"},
		},
	}

	registro, err := repo.Criar(db, payload, 7, false)
	require.NoError(t, err)

	assert.NotZero(t, registro.OSID)
	assert.GreaterOrEqual(t, registro.NumeroOS, uint(numeroOSMin))
	require.NotNil(t, registro.UsuarioID)
	assert.Equal(t, uint(7), *registro.UsuarioID)
	assert.Equal(t, "Petrobras", registro.NomeCliente)
	assert.Len(t, registro.Materiais, 1)

	// montagem tem flag NAO, então o valor foi zerado e fica fora da soma
	assert.Equal(t, "0.00", registro.ValorMontagem.StringFixed(2))
	assert.Equal(t, "1000.50", registro.SomaValores.StringFixed(2))
	assert.Equal(t, "-1000.50", registro.SaldoFinal.StringFixed(2))
}

func TestCriarPreenchePrazoPelaEmissao(t *testing.T) {
	db := abrirBanco(t)
	repo := NewRepository()

	registro, err := repo.Criar(db, map[string]any{"data_emissao_os": "2026-01-10"}, 1, false)
	require.NoError(t, err)
	require.NotNil(t, registro.PrazoExecucaoServico)
	assert.Equal(t, "2026-02-09", registro.PrazoExecucaoServico.Format("2006-01-02"))
}

func TestAtualizarRecalculaTotais(t *testing.T) {
	db := abrirBanco(t)
	repo := NewRepository()

	registro, err := repo.Criar(db, map[string]any{
		"havera_valor_fabricacao": SimValor,
		"valor_fabricacao":        500,
	}, 1, false)
	require.NoError(t, err)
	assert.Equal(t, "500.00", registro.SomaValores.StringFixed(2))

	registro, err = repo.Atualizar(db, registro, map[string]any{
		"notas_fiscais_venda": []any{
			map[string]any{
				"numero_nota_fiscal_venda":        "NF-1",
				"preco_nota_fiscal_venda":         800.00,
				"arquivo_anexo_nota_fiscal_venda": "nf1.pdf",
				"data_nota_fiscal_venda":          "2026-03-01",
			},
		},
	}, false)
	require.NoError(t, err)

	assert.Equal(t, "500.00", registro.SomaValores.StringFixed(2))
	assert.Equal(t, "800.00", registro.SomaNotasFiscais.StringFixed(2))
	assert.Equal(t, "300.00", registro.SaldoFinal.StringFixed(2))
}

func TestRecalcularTotaisIdempotente(t *testing.T) {
	db := abrirBanco(t)
	repo := NewRepository()

	registro, err := repo.Criar(db, map[string]any{
		"havera_valor_fabricacao": SimValor,
		"valor_fabricacao":        250,
	}, 1, false)
	require.NoError(t, err)

	require.NoError(t, repo.RecalcularTotais(db, registro))
	primeira := registro.SomaValores
	saldo := registro.SaldoFinal

	require.NoError(t, repo.RecalcularTotais(db, registro))
	assert.True(t, registro.SomaValores.Equal(primeira))
	assert.True(t, registro.SaldoFinal.Equal(saldo))
}

func TestNumeroOSNaoMudaEmUpdate(t *testing.T) {
	db := abrirBanco(t)
	repo := NewRepository()

	registro, err := repo.Criar(db, map[string]any{"nome_cliente": "Vale"}, 1, false)
	require.NoError(t, err)
	numero := registro.NumeroOS

	registro, err = repo.Atualizar(db, registro, map[string]any{"nome_cliente": "Gerdau"}, false)
	require.NoError(t, err)
	assert.Equal(t, numero, registro.NumeroOS)
	assert.Equal(t, "Gerdau", registro.NomeCliente)
}

func TestEscopoBasicoVeApenasOsSeus(t *testing.T) {
	db := abrirBanco(t)
	repo := NewRepository()

	meu, err := repo.Criar(db, map[string]any{"nome_cliente": "A"}, 1, false)
	require.NoError(t, err)
	deOutro, err := repo.Criar(db, map[string]any{"nome_cliente": "B"}, 2, false)
	require.NoError(t, err)

	basico := []string{auth.GrupoBasico}

	lista, err := repo.ListarVisiveis(db, 1, basico, Filtros{})
	require.NoError(t, err)
	require.Len(t, lista, 1)
	assert.Equal(t, meu.ID, lista[0].ID)

	_, err = repo.BuscarVisivel(db, deOutro.ID, 1, basico)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	// papéis elevados enxergam tudo
	lista, err = repo.ListarVisiveis(db, 1, []string{auth.GrupoQualidade}, Filtros{})
	require.NoError(t, err)
	assert.Len(t, lista, 2)
}

func TestFiltrosDeListagem(t *testing.T) {
	db := abrirBanco(t)
	repo := NewRepository()

	_, err := repo.Criar(db, map[string]any{"nome_cliente": "Petrobras", "status_os": "EM ANDAMENTO"}, 1, false)
	require.NoError(t, err)
	aprovada, err := repo.Criar(db, map[string]any{"nome_cliente": "Petrobras", "status_os": StatusOSAprovada}, 1, false)
	require.NoError(t, err)

	lista, err := repo.ListarVisiveis(db, 1, []string{auth.GrupoAdministrador}, Filtros{StatusOS: StatusOSAprovada})
	require.NoError(t, err)
	require.Len(t, lista, 1)
	assert.Equal(t, aprovada.ID, lista[0].ID)

	lista, err = repo.ListarVisiveis(db, 1, []string{auth.GrupoAdministrador}, Filtros{NomeCliente: "Vale"})
	require.NoError(t, err)
	assert.Empty(t, lista)
}

func TestFiltroClienteAceitaTrechoDoNome(t *testing.T) {
	db := abrirBanco(t)
	repo := NewRepository()

	alvo, err := repo.Criar(db, map[string]any{"nome_cliente": "Petrobras S.A."}, 1, false)
	require.NoError(t, err)
	_, err = repo.Criar(db, map[string]any{"nome_cliente": "Vale"}, 1, false)
	require.NoError(t, err)

	admin := []string{auth.GrupoAdministrador}

	lista, err := repo.ListarVisiveis(db, 1, admin, Filtros{NomeCliente: "Petrobras"})
	require.NoError(t, err)
	require.Len(t, lista, 1)
	assert.Equal(t, alvo.ID, lista[0].ID)

	// o casamento ignora maiúsculas e minúsculas
	lista, err = repo.ListarVisiveis(db, 1, admin, Filtros{NomeCliente: "petrobras"})
	require.NoError(t, err)
	assert.Len(t, lista, 1)
}

func TestDeletarRemoveFilhas(t *testing.T) {
	db := abrirBanco(t)
	repo := NewRepository()

	registro, err := repo.Criar(db, map[string]any{
		"materiais": []any{map[string]any{"tipo_material": "ACO"}},
	}, 1, false)
	require.NoError(t, err)

	require.NoError(t, repo.Deletar(db, registro.ID))

	var materiais []Material
	require.NoError(t, db.Where("registro_id = ?", registro.ID).Find(&materiais).Error)
	assert.Empty(t, materiais)

	_, err = repo.BuscarPorID(db, registro.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}
