package usuario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/RegistroOS/api-controle/internal/auth"
)

func abrirBanco(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Grupo{}, &Usuario{}))
	return db
}

func TestSeedGruposIdempotente(t *testing.T) {
	db := abrirBanco(t)

	require.NoError(t, SeedGrupos(db))
	require.NoError(t, SeedGrupos(db))

	var grupos []Grupo
	require.NoError(t, db.Find(&grupos).Error)
	assert.Len(t, grupos, 4)
}

func TestDefinirGruposSubstitui(t *testing.T) {
	db := abrirBanco(t)
	require.NoError(t, SeedGrupos(db))
	repo := NewRepository()

	u := Usuario{Username: "maria", Email: "maria@exemplo.com", Senha: "hash", Ativo: true}
	require.NoError(t, repo.Salvar(db, &u))

	basico, err := repo.BuscarGrupoPorNome(db, auth.GrupoBasico)
	require.NoError(t, err)
	require.NoError(t, repo.DefinirGrupos(db, &u, []Grupo{*basico}))

	qualidade, err := repo.BuscarGrupoPorNome(db, auth.GrupoQualidade)
	require.NoError(t, err)
	require.NoError(t, repo.DefinirGrupos(db, &u, []Grupo{*qualidade}))

	achado, err := repo.BuscarPorUsername(db, "maria")
	require.NoError(t, err)
	assert.Equal(t, []string{auth.GrupoQualidade}, achado.NomesGrupos())
}

func TestUsernameEEmailExistem(t *testing.T) {
	db := abrirBanco(t)
	repo := NewRepository()

	u := Usuario{Username: "joao", Email: "joao@exemplo.com", Senha: "hash"}
	require.NoError(t, repo.Salvar(db, &u))

	assert.True(t, repo.UsernameExiste(db, "joao"))
	assert.False(t, repo.UsernameExiste(db, "outro"))
	assert.True(t, repo.EmailExiste(db, "joao@exemplo.com"))
	assert.False(t, repo.EmailExiste(db, "x@exemplo.com"))
}

func TestListarAtivosFiltraDesativados(t *testing.T) {
	db := abrirBanco(t)
	repo := NewRepository()

	require.NoError(t, repo.Salvar(db, &Usuario{Username: "ativa", Email: "a@e.com", Senha: "h", Ativo: true}))
	require.NoError(t, repo.Salvar(db, &Usuario{Username: "inativa", Email: "i@e.com", Senha: "h", Ativo: false}))

	ativos, err := repo.ListarAtivos(db)
	require.NoError(t, err)
	require.Len(t, ativos, 1)
	assert.Equal(t, "ativa", ativos[0].Username)

	todos, err := repo.ListarTodos(db)
	require.NoError(t, err)
	assert.Len(t, todos, 2)
}
