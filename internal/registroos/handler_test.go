package registroos

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RegistroOS/api-controle/internal/auth"
)

func requisicaoComGrupos(metodo, alvo, corpo string, grupos []string) *http.Request {
	r := httptest.NewRequest(metodo, alvo, strings.NewReader(corpo))
	ctx := context.WithValue(r.Context(), auth.CtxUserID, uint(1))
	ctx = context.WithValue(ctx, auth.CtxUsername, "teste")
	ctx = context.WithValue(ctx, auth.CtxGrupos, grupos)
	return r.WithContext(ctx)
}

// TestAtualizarAceitaPutEPatch garante que o update responde igual nos dois
// métodos registrados para /registros/{id}
func TestAtualizarAceitaPutEPatch(t *testing.T) {
	db := abrirBanco(t)
	h := &Handler{DB: db, Repository: NewRepository()}

	registro, err := h.Repository.Criar(db, map[string]any{"nome_cliente": "Vale"}, 1, false)
	require.NoError(t, err)

	r := mux.NewRouter()
	r.HandleFunc("/registros/{id}", h.Atualizar).Methods("PUT", "PATCH")

	alvo := fmt.Sprintf("/registros/%d", registro.ID)
	admin := []string{auth.GrupoAdministrador}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, requisicaoComGrupos("PATCH", alvo, `{"observacao":"via patch"}`, admin))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, requisicaoComGrupos("PUT", alvo, `{"observacao":"via put"}`, admin))
	require.Equal(t, http.StatusOK, w.Code)

	atualizado, err := h.Repository.BuscarPorID(db, registro.ID)
	require.NoError(t, err)
	assert.Equal(t, "via put", atualizado.Observacao)
}

func TestDeletarSomenteAdministrador(t *testing.T) {
	db := abrirBanco(t)
	h := &Handler{DB: db, Repository: NewRepository()}

	registro, err := h.Repository.Criar(db, map[string]any{"nome_cliente": "Vale"}, 1, false)
	require.NoError(t, err)

	r := requisicaoComGrupos("DELETE", "/registros/1", "", []string{auth.GrupoSuperior})
	w := httptest.NewRecorder()
	h.Deletar(w, mux.SetURLVars(r, map[string]string{"id": fmt.Sprint(registro.ID)}))
	assert.Equal(t, http.StatusForbidden, w.Code)

	r = requisicaoComGrupos("DELETE", "/registros/1", "", []string{auth.GrupoAdministrador})
	w = httptest.NewRecorder()
	h.Deletar(w, mux.SetURLVars(r, map[string]string{"id": fmt.Sprint(registro.ID)}))
	assert.Equal(t, http.StatusNoContent, w.Code)

	_, err = h.Repository.BuscarPorID(db, registro.ID)
	assert.Error(t, err)
}
