package usuario

import (
	"gorm.io/gorm"

	"github.com/RegistroOS/api-controle/internal/auth"
)

type Repository interface {
	BuscarPorUsername(db *gorm.DB, username string) (*Usuario, error)
	BuscarPorID(db *gorm.DB, id uint) (*Usuario, error)
	ListarAtivos(db *gorm.DB) ([]Usuario, error)
	ListarTodos(db *gorm.DB) ([]Usuario, error)
	Salvar(db *gorm.DB, u *Usuario) error
	Deletar(db *gorm.DB, id uint) error
	ListarGrupos(db *gorm.DB) ([]Grupo, error)
	BuscarGrupoPorNome(db *gorm.DB, nome string) (*Grupo, error)
	DefinirGrupos(db *gorm.DB, u *Usuario, grupos []Grupo) error
	UsernameExiste(db *gorm.DB, username string) bool
	EmailExiste(db *gorm.DB, email string) bool
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) BuscarPorUsername(db *gorm.DB, username string) (*Usuario, error) {
	var u Usuario
	err := db.Preload("Grupos").Where("username = ?", username).First(&u).Error
	return &u, err
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Usuario, error) {
	var u Usuario
	err := db.Preload("Grupos").First(&u, id).Error
	return &u, err
}

func (r *repositoryImpl) ListarAtivos(db *gorm.DB) ([]Usuario, error) {
	var usuarios []Usuario
	err := db.Preload("Grupos").Where("ativo = ?", true).Find(&usuarios).Error
	return usuarios, err
}

func (r *repositoryImpl) ListarTodos(db *gorm.DB) ([]Usuario, error) {
	var usuarios []Usuario
	err := db.Preload("Grupos").Find(&usuarios).Error
	return usuarios, err
}

func (r *repositoryImpl) Salvar(db *gorm.DB, u *Usuario) error {
	return db.Save(u).Error
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	return db.Select("Grupos").Delete(&Usuario{ID: id}).Error
}

func (r *repositoryImpl) ListarGrupos(db *gorm.DB) ([]Grupo, error) {
	var grupos []Grupo
	err := db.Order("id").Find(&grupos).Error
	return grupos, err
}

func (r *repositoryImpl) BuscarGrupoPorNome(db *gorm.DB, nome string) (*Grupo, error) {
	var g Grupo
	err := db.Where("nome = ?", nome).First(&g).Error
	return &g, err
}

func (r *repositoryImpl) DefinirGrupos(db *gorm.DB, u *Usuario, grupos []Grupo) error {
	return db.Model(u).Association("Grupos").Replace(grupos)
}

func (r *repositoryImpl) UsernameExiste(db *gorm.DB, username string) bool {
	var count int64
	db.Model(&Usuario{}).Where("username = ?", username).Count(&count)
	return count > 0
}

func (r *repositoryImpl) EmailExiste(db *gorm.DB, email string) bool {
	var count int64
	db.Model(&Usuario{}).Where("email = ?", email).Count(&count)
	return count > 0
}

// SeedGrupos garante que os quatro grupos padrão existam após a migração
func SeedGrupos(db *gorm.DB) error {
	for _, nome := range []string{auth.GrupoAdministrador, auth.GrupoSuperior, auth.GrupoQualidade, auth.GrupoBasico} {
		var g Grupo
		if err := db.Where(Grupo{Nome: nome}).FirstOrCreate(&g).Error; err != nil {
			return err
		}
	}
	return nil
}
