package relatorio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/RegistroOS/api-controle/internal/auth"
	"github.com/RegistroOS/api-controle/internal/registroos"
)

func abrirBanco(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(registroos.Modelos()...))
	return db
}

func requisicaoComGrupos(alvo string, grupos []string) *http.Request {
	r := httptest.NewRequest("GET", alvo, nil)
	ctx := context.WithValue(r.Context(), auth.CtxUserID, uint(1))
	ctx = context.WithValue(ctx, auth.CtxGrupos, grupos)
	return r.WithContext(ctx)
}

func TestRelatoriosExigemAdminOuSuperior(t *testing.T) {
	db := abrirBanco(t)
	h := NewHandler(db)

	basico := []string{auth.GrupoBasico}
	rotas := map[string]http.HandlerFunc{
		"/relatorios/registros":      h.RegistrosPaginados,
		"/relatorios/exportar-excel": h.ExportarExcel,
		"/relatorios/exportar-pdf":   h.ExportarPDF,
	}
	for alvo, handler := range rotas {
		w := httptest.NewRecorder()
		handler(w, requisicaoComGrupos(alvo, basico))
		assert.Equal(t, http.StatusForbidden, w.Code, alvo)
	}
}

func TestRelatoriosLiberadosParaSuperior(t *testing.T) {
	db := abrirBanco(t)
	h := NewHandler(db)

	_, err := h.Registros.Criar(db, map[string]any{"nome_cliente": "Petrobras"}, 1, false)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	h.RegistrosPaginados(w, requisicaoComGrupos("/relatorios/registros", []string{auth.GrupoSuperior}))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":1`)

	// estatísticas continuam acessíveis a qualquer autenticado
	w = httptest.NewRecorder()
	h.Estatisticas(w, requisicaoComGrupos("/estatisticas", []string{auth.GrupoBasico}))
	assert.Equal(t, http.StatusOK, w.Code)
}
