package opcoes

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tabelas de referência simples: só um valor exibido nos selects do frontend.
// O valor é gravado de forma desnormalizada na OS, então o nome é único.

type TipoCQ struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Nome string `gorm:"size:100;uniqueIndex" json:"nome"`
}

type NivelCQ struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Nome string `gorm:"size:100;uniqueIndex" json:"nome"`
}

type EnsaioCQ struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Nome string `gorm:"size:100;uniqueIndex" json:"nome"`
}

type PercentualCQ struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	Percentual int  `gorm:"uniqueIndex" json:"percentual"`
}

type AcaoSolicitacaoOption struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Descricao string `gorm:"size:200;uniqueIndex" json:"descricao"`
}

type Demanda struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Nome string `gorm:"size:100;uniqueIndex" json:"nome"`
}

type TipoMaterial struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Nome string `gorm:"size:100;uniqueIndex" json:"nome"`
}

type StatusDMS struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Status string `gorm:"size:100;uniqueIndex" json:"status"`
}

type StatusBMS struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Status string `gorm:"size:100;uniqueIndex" json:"status"`
}

type StatusFRS struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Status string `gorm:"size:100;uniqueIndex" json:"status"`
}

type NomeDiligenciadorOS struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Nome string `gorm:"size:100;uniqueIndex" json:"nome"`
}

type NomeResponsavelExecucaoServico struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Nome string `gorm:"size:100;uniqueIndex" json:"nome"`
}

type ResponsavelMaterial struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Nome string `gorm:"size:100;uniqueIndex" json:"nome"`
}

type StatusOS struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Nome string `gorm:"size:100;uniqueIndex" json:"nome"`
}

type StatusOSManual struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Nome string `gorm:"size:100;uniqueIndex" json:"nome"`
}

type StatusOSEletronica struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Nome string `gorm:"size:100;uniqueIndex" json:"nome"`
}

type StatusLevantamento struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Nome string `gorm:"size:100;uniqueIndex" json:"nome"`
}

type StatusProducao struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Nome string `gorm:"size:100;uniqueIndex" json:"nome"`
}

type RegimeOS struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Nome string `gorm:"size:100;uniqueIndex" json:"nome"`
}

type StatusMaterial struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Nome string `gorm:"size:100;uniqueIndex" json:"nome"`
}

type TipoDocumentoSolicitacao struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Nome string `gorm:"size:100;uniqueIndex" json:"nome"`
}

// Cliente carrega as taxas de HH por tipo de serviço além do nome
type Cliente struct {
	ID                                uint            `gorm:"primaryKey" json:"id"`
	Nome                              string          `gorm:"size:100;uniqueIndex" json:"nome"`
	HHValorFabricacao                 decimal.Decimal `gorm:"type:decimal(10,2)" json:"hh_valor_fabricacao"`
	HHValorLevantamento               decimal.Decimal `gorm:"type:decimal(10,2)" json:"hh_valor_levantamento"`
	HHValorServicoPinturaRevestimento decimal.Decimal `gorm:"type:decimal(10,2)" json:"hh_valor_servico_pintura_revestimento"`
	HHValorMontagem                   decimal.Decimal `gorm:"type:decimal(10,2)" json:"hh_valor_montagem"`
	HHValorInspecao                   decimal.Decimal `gorm:"type:decimal(10,2)" json:"hh_valor_inspecao"`
}

// Cadastros vinculados a um cliente; exclusão é lógica (ativo=false)

type Contrato struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ClienteID uint      `gorm:"index;uniqueIndex:idx_contrato_cliente_numero" json:"cliente_id"`
	Numero    string    `gorm:"size:100;uniqueIndex:idx_contrato_cliente_numero" json:"numero"`
	Descricao string    `gorm:"size:200" json:"descricao"`
	Ativo     bool      `gorm:"default:true" json:"ativo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UnidadeCliente struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ClienteID uint      `gorm:"index" json:"cliente_id"`
	Nome      string    `gorm:"size:100" json:"nome"`
	Descricao string    `gorm:"size:200" json:"descricao"`
	Ativo     bool      `gorm:"default:true" json:"ativo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SetorUnidadeCliente struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ClienteID uint      `gorm:"index" json:"cliente_id"`
	Nome      string    `gorm:"size:100" json:"nome"`
	Descricao string    `gorm:"size:200" json:"descricao"`
	Ativo     bool      `gorm:"default:true" json:"ativo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AprovadorCliente struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ClienteID uint      `gorm:"index" json:"cliente_id"`
	Nome      string    `gorm:"size:100" json:"nome"`
	Descricao string    `gorm:"size:200" json:"descricao"`
	Ativo     bool      `gorm:"default:true" json:"ativo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SolicitanteCliente struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ClienteID uint      `gorm:"index" json:"cliente_id"`
	Nome      string    `gorm:"size:100" json:"nome"`
	Descricao string    `gorm:"size:200" json:"descricao"`
	Ativo     bool      `gorm:"default:true" json:"ativo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type OpcaoEspecCQ struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ClienteID uint      `gorm:"index" json:"cliente_id"`
	Nome      string    `gorm:"size:100" json:"nome"`
	Descricao string    `gorm:"size:200" json:"descricao"`
	Ativo     bool      `gorm:"default:true" json:"ativo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Modelos devolve todos os modelos do pacote para o AutoMigrate
func Modelos() []any {
	return []any{
		&TipoCQ{}, &NivelCQ{}, &EnsaioCQ{}, &PercentualCQ{}, &AcaoSolicitacaoOption{},
		&Demanda{}, &TipoMaterial{}, &StatusDMS{}, &StatusBMS{}, &StatusFRS{},
		&NomeDiligenciadorOS{}, &NomeResponsavelExecucaoServico{}, &ResponsavelMaterial{},
		&StatusOS{}, &StatusOSManual{}, &StatusOSEletronica{}, &StatusLevantamento{},
		&StatusProducao{}, &RegimeOS{}, &StatusMaterial{}, &TipoDocumentoSolicitacao{},
		&Cliente{}, &Contrato{}, &UnidadeCliente{}, &SetorUnidadeCliente{},
		&AprovadorCliente{}, &SolicitanteCliente{}, &OpcaoEspecCQ{},
	}
}
