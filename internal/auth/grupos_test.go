package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTemGrupo(t *testing.T) {
	grupos := []string{GrupoBasico, GrupoQualidade}
	assert.True(t, TemGrupo(grupos, GrupoQualidade))
	assert.False(t, TemGrupo(grupos, GrupoAdministrador))
	assert.False(t, TemGrupo(nil, GrupoBasico))
}

func TestPapeisElevados(t *testing.T) {
	assert.True(t, IsAdmin([]string{GrupoAdministrador}))
	assert.False(t, IsAdmin([]string{GrupoSuperior}))

	assert.True(t, IsAdminOuSuperior([]string{GrupoSuperior}))
	assert.False(t, IsAdminOuSuperior([]string{GrupoQualidade}))

	assert.True(t, VeTodasOS([]string{GrupoQualidade}))
	assert.False(t, VeTodasOS([]string{GrupoBasico}))
}
