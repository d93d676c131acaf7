package auth

import (
	"strings"
	"time"
)

type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index"`
	FamilyID  string `gorm:"index"`
	Hash      string `gorm:"uniqueIndex"`
	Username  string
	Grupos    string    // nomes separados por vírgula, preservados para o refresh
	ExpiresAt time.Time `gorm:"index"`
	RevokedAt *time.Time
	CreatedAt time.Time
}

func (rt *RefreshToken) ListaGrupos() []string {
	if rt.Grupos == "" {
		return nil
	}
	return strings.Split(rt.Grupos, ",")
}
