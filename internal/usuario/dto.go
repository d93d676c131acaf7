package usuario

type UsuarioDTO struct {
	ID        uint     `json:"id"`
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	Nome      string   `json:"nome"`
	Sobrenome string   `json:"sobrenome"`
	Ativo     bool     `json:"ativo"`
	Grupos    []string `json:"grupos"`
}

func ParaDTO(u *Usuario) UsuarioDTO {
	return UsuarioDTO{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Nome:      u.Nome,
		Sobrenome: u.Sobrenome,
		Ativo:     u.Ativo,
		Grupos:    u.NomesGrupos(),
	}
}

func ParaDTOs(usuarios []Usuario) []UsuarioDTO {
	dtos := make([]UsuarioDTO, 0, len(usuarios))
	for i := range usuarios {
		dtos = append(dtos, ParaDTO(&usuarios[i]))
	}
	return dtos
}
