package usuario

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/RegistroOS/api-controle/internal/auth"
)

func requisicaoComGrupos(metodo, alvo, corpo string, grupos []string) *http.Request {
	r := httptest.NewRequest(metodo, alvo, strings.NewReader(corpo))
	ctx := context.WithValue(r.Context(), auth.CtxUserID, uint(1))
	ctx = context.WithValue(ctx, auth.CtxUsername, "teste")
	ctx = context.WithValue(ctx, auth.CtxGrupos, grupos)
	return r.WithContext(ctx)
}

func novoHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repository: NewRepository()}
}

func TestListarUsuariosExigeAdminOuSuperior(t *testing.T) {
	db := abrirBanco(t)
	h := novoHandler(db)

	w := httptest.NewRecorder()
	h.ListarUsuarios(w, requisicaoComGrupos("GET", "/usuarios", "", []string{auth.GrupoBasico}))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	h.ListarUsuarios(w, requisicaoComGrupos("GET", "/usuarios", "", []string{auth.GrupoSuperior}))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCriarUsuarioExigeAdminOuSuperior(t *testing.T) {
	db := abrirBanco(t)
	require.NoError(t, SeedGrupos(db))
	h := novoHandler(db)

	corpo := `{"username":"intruso","email":"i@e.com","password":"senha12345","grupos":["Administrador"]}`

	w := httptest.NewRecorder()
	h.CriarUsuario(w, requisicaoComGrupos("POST", "/usuarios", corpo, []string{auth.GrupoBasico}))
	assert.Equal(t, http.StatusForbidden, w.Code)

	// a conta não pode ter sido criada
	assert.False(t, h.Repository.UsernameExiste(db, "intruso"))

	corpo = `{"username":"gerente","email":"g@e.com","password":"senha12345","grupos":["Qualidade"]}`
	w = httptest.NewRecorder()
	h.CriarUsuario(w, requisicaoComGrupos("POST", "/usuarios", corpo, []string{auth.GrupoAdministrador}))
	assert.Equal(t, http.StatusCreated, w.Code)

	criado, err := h.Repository.BuscarPorUsername(db, "gerente")
	require.NoError(t, err)
	assert.Equal(t, []string{auth.GrupoQualidade}, criado.NomesGrupos())
}

func TestConfiguracoesUsamIDDaRota(t *testing.T) {
	db := abrirBanco(t)
	require.NoError(t, SeedGrupos(db))
	h := novoHandler(db)
	repo := NewRepository()

	alvo := Usuario{Username: "alvo", Email: "alvo@e.com", Senha: "h", Ativo: true}
	require.NoError(t, repo.Salvar(db, &alvo))
	idDaRota := map[string]string{"id": "1"}

	r := requisicaoComGrupos("PUT", "/configuracoes/usuarios/1/grupo", `{"grupos":["Superior"]}`, []string{auth.GrupoAdministrador})
	w := httptest.NewRecorder()
	h.ConfiguracoesAlterarGrupo(w, mux.SetURLVars(r, idDaRota))
	require.Equal(t, http.StatusOK, w.Code)

	achado, err := repo.BuscarPorUsername(db, "alvo")
	require.NoError(t, err)
	assert.Equal(t, []string{auth.GrupoSuperior}, achado.NomesGrupos())

	r = requisicaoComGrupos("PUT", "/configuracoes/usuarios/1/ativar", `{"ativo":false}`, []string{auth.GrupoAdministrador})
	w = httptest.NewRecorder()
	h.ConfiguracoesAtivarUsuario(w, mux.SetURLVars(r, idDaRota))
	require.Equal(t, http.StatusOK, w.Code)

	achado, err = repo.BuscarPorUsername(db, "alvo")
	require.NoError(t, err)
	assert.False(t, achado.Ativo)

	r = requisicaoComGrupos("DELETE", "/configuracoes/usuarios/1", "", []string{auth.GrupoAdministrador})
	w = httptest.NewRecorder()
	h.ConfiguracoesExcluirUsuario(w, mux.SetURLVars(r, idDaRota))
	require.Equal(t, http.StatusNoContent, w.Code)

	_, err = repo.BuscarPorUsername(db, "alvo")
	assert.Error(t, err)

	// id que não é número responde 400
	r = requisicaoComGrupos("DELETE", "/configuracoes/usuarios/abc", "", []string{auth.GrupoAdministrador})
	w = httptest.NewRecorder()
	h.ConfiguracoesExcluirUsuario(w, mux.SetURLVars(r, map[string]string{"id": "abc"}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
