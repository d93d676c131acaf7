package usuario

import "time"

type Grupo struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Nome string `gorm:"size:100;uniqueIndex" json:"nome"`
}

type Usuario struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:150;uniqueIndex" json:"username"`
	Email     string    `gorm:"size:254;uniqueIndex" json:"email"`
	Senha     string    `gorm:"size:128" json:"-"`
	Nome      string    `gorm:"size:150" json:"nome"`
	Sobrenome string    `gorm:"size:150" json:"sobrenome"`
	Ativo     bool      `json:"ativo"`
	Grupos    []Grupo   `gorm:"many2many:usuario_grupos" json:"grupos"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NomesGrupos devolve apenas os nomes dos grupos do usuário
func (u *Usuario) NomesGrupos() []string {
	nomes := make([]string, 0, len(u.Grupos))
	for _, g := range u.Grupos {
		nomes = append(nomes, g.Nome)
	}
	return nomes
}

// TemGrupo verifica se o usuário pertence ao grupo informado
func (u *Usuario) TemGrupo(nome string) bool {
	for _, g := range u.Grupos {
		if g.Nome == nome {
			return true
		}
	}
	return false
}
