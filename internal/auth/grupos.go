package auth

// Grupos de permissão reconhecidos pelo sistema
const (
	GrupoAdministrador = "Administrador"
	GrupoSuperior      = "Superior"
	GrupoQualidade     = "Qualidade"
	GrupoBasico        = "Básico"
)

// TemGrupo verifica se o grupo está presente na lista
func TemGrupo(grupos []string, nome string) bool {
	for _, g := range grupos {
		if g == nome {
			return true
		}
	}
	return false
}

// IsAdmin indica se o chamador pertence ao grupo Administrador
func IsAdmin(grupos []string) bool {
	return TemGrupo(grupos, GrupoAdministrador)
}

// IsAdminOuSuperior cobre as operações restritas a gestão (relatórios, usuários, selects)
func IsAdminOuSuperior(grupos []string) bool {
	return TemGrupo(grupos, GrupoAdministrador) || TemGrupo(grupos, GrupoSuperior)
}

// VeTodasOS indica se o chamador enxerga todas as ordens de serviço.
// Demais grupos (inclusive usuários sem grupo) só enxergam as próprias.
func VeTodasOS(grupos []string) bool {
	return TemGrupo(grupos, GrupoAdministrador) ||
		TemGrupo(grupos, GrupoSuperior) ||
		TemGrupo(grupos, GrupoQualidade)
}
