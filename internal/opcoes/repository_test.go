package opcoes

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func abrirBanco(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(Modelos()...))
	return db
}

func TestAdicionarEListarItemSelect(t *testing.T) {
	db := abrirBanco(t)
	repo := NewRepository()

	_, err := repo.AdicionarItem(db, "TipoCQ", "DIMENSIONAL")
	require.NoError(t, err)
	_, err = repo.AdicionarItem(db, "TipoCQ", "VISUAL")
	require.NoError(t, err)

	itens, err := repo.ListarModelo(db, "TipoCQ")
	require.NoError(t, err)
	tipos, ok := itens.([]TipoCQ)
	require.True(t, ok)
	assert.Len(t, tipos, 2)
}

func TestAdicionarItemModeloDesconhecido(t *testing.T) {
	db := abrirBanco(t)
	repo := NewRepository()

	_, err := repo.AdicionarItem(db, "ModeloQueNaoExiste", "x")
	assert.True(t, errors.Is(err, ErrModeloDesconhecido))

	_, err = repo.ListarModelo(db, "ModeloQueNaoExiste")
	assert.True(t, errors.Is(err, ErrModeloDesconhecido))
}

func TestEditarItemSelect(t *testing.T) {
	db := abrirBanco(t)
	repo := NewRepository()

	criado, err := repo.AdicionarItem(db, "StatusOS", "EM ANDAMENTO")
	require.NoError(t, err)
	status, ok := criado.(*StatusOS)
	require.True(t, ok)

	require.NoError(t, repo.EditarItem(db, "StatusOS", status.ID, "APROVADA"))

	itens, err := repo.ListarModelo(db, "StatusOS")
	require.NoError(t, err)
	lista := itens.([]StatusOS)
	require.Len(t, lista, 1)
	assert.Equal(t, "APROVADA", lista[0].Nome)
}

func TestEditarItemInexistente(t *testing.T) {
	db := abrirBanco(t)
	repo := NewRepository()

	err := repo.EditarItem(db, "StatusOS", 999, "APROVADA")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestExcluirItemSelect(t *testing.T) {
	db := abrirBanco(t)
	repo := NewRepository()

	criado, err := repo.AdicionarItem(db, "Demanda", "DEM-1")
	require.NoError(t, err)
	demanda := criado.(*Demanda)

	require.NoError(t, repo.ExcluirItem(db, "Demanda", demanda.ID))

	itens, err := repo.ListarModelo(db, "Demanda")
	require.NoError(t, err)
	assert.Empty(t, itens.([]Demanda))
}

func TestPercentualCoagidoParaInteiro(t *testing.T) {
	db := abrirBanco(t)
	repo := NewRepository()

	criado, err := repo.AdicionarItem(db, "PercentualCQ", "100")
	require.NoError(t, err)
	percentual := criado.(*PercentualCQ)
	assert.Equal(t, 100, percentual.Percentual)

	_, err = repo.AdicionarItem(db, "PercentualCQ", "abc")
	assert.Error(t, err)
}

func TestDadosClienteFiltraPorClienteEAtivo(t *testing.T) {
	db := abrirBanco(t)
	repo := NewRepository()

	cliente := Cliente{Nome: "Petrobras"}
	outro := Cliente{Nome: "Vale"}
	require.NoError(t, db.Create(&cliente).Error)
	require.NoError(t, db.Create(&outro).Error)

	require.NoError(t, db.Create(&Contrato{ClienteID: cliente.ID, Numero: "CT-1", Ativo: true}).Error)
	require.NoError(t, db.Create(&Contrato{ClienteID: cliente.ID, Numero: "CT-2", Ativo: false}).Error)
	require.NoError(t, db.Create(&Contrato{ClienteID: outro.ID, Numero: "CT-3", Ativo: true}).Error)
	require.NoError(t, db.Create(&UnidadeCliente{ClienteID: cliente.ID, Nome: "REDUC", Ativo: true}).Error)

	achado, err := repo.BuscarClientePorNome(db, "Petrobras")
	require.NoError(t, err)
	assert.Equal(t, cliente.ID, achado.ID)

	dados, err := repo.DadosCliente(db, cliente.ID)
	require.NoError(t, err)

	contratos := dados["contratos"].([]Contrato)
	require.Len(t, contratos, 1)
	assert.Equal(t, "CT-1", contratos[0].Numero)

	unidades := dados["unidades"].([]UnidadeCliente)
	assert.Len(t, unidades, 1)
}

func TestListarTudoCobreTodosOsModelos(t *testing.T) {
	db := abrirBanco(t)
	repo := NewRepository()

	tudo, err := repo.ListarTudo(db)
	require.NoError(t, err)
	assert.Len(t, tudo, len(selectModelos))
}
