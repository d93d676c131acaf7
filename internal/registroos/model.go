package registroos

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RegistroOS é a ordem de serviço com todas as coleções filhas.
// Valores monetários usam decimal para não acumular erro de ponto flutuante.
type RegistroOS struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	OSID     uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"os_id"`
	NumeroOS uint      `gorm:"uniqueIndex" json:"numero_os"`

	DataSolicitacaoOS    *time.Time `json:"data_solicitacao_os"`
	DataEmissaoOS        *time.Time `json:"data_emissao_os"`
	PrazoExecucaoServico *time.Time `json:"prazo_execucao_servico"`

	NomeCliente                       string `gorm:"size:255" json:"nome_cliente"`
	NumeroContrato                    string `gorm:"size:255" json:"numero_contrato"`
	UnidadeCliente                    string `gorm:"size:255" json:"unidade_cliente"`
	SetorUnidadeCliente               string `gorm:"size:255" json:"setor_unidade_cliente"`
	StatusRegimeOS                    string `gorm:"size:100" json:"status_regime_os"`
	NomeDiligenciadorOS               string `gorm:"size:255" json:"nome_diligenciador_os"`
	NomeSolicitanteCliente            string `gorm:"size:255" json:"nome_solicitante_cliente"`
	NomeResponsavelAprovacaoOSCliente string `gorm:"size:255" json:"nome_responsavel_aprovacao_os_cliente"`
	NomeResponsavelExecucaoServico    string `gorm:"size:255" json:"nome_responsavel_execucao_servico"`
	IDDemanda                         string `gorm:"size:255" json:"id_demanda"`

	DescricaoResumida  string `gorm:"type:text" json:"descricao_resumida"`
	DescricaoDetalhada string `gorm:"type:text" json:"descricao_detalhada"`

	ExisteOrcamento                  string          `gorm:"size:10" json:"existe_orcamento"`
	PesoFabricacao                   decimal.Decimal `gorm:"type:decimal(14,2)" json:"peso_fabricacao"`
	MetroQuadradoPinturaRevestimento decimal.Decimal `gorm:"type:decimal(14,2)" json:"metro_quadrado_pintura_revestimento"`

	HaveraValorFabricacao                 string          `gorm:"size:10" json:"havera_valor_fabricacao"`
	ValorFabricacao                       decimal.Decimal `gorm:"type:decimal(14,2)" json:"valor_fabricacao"`
	HaveraValorLevantamento               string          `gorm:"size:10" json:"havera_valor_levantamento"`
	ValorLevantamento                     decimal.Decimal `gorm:"type:decimal(14,2)" json:"valor_levantamento"`
	HaveraValorMaterialFabricacao         string          `gorm:"size:10" json:"havera_valor_material_fabricacao"`
	ValorMaterialFabricacao               decimal.Decimal `gorm:"type:decimal(14,2)" json:"valor_material_fabricacao"`
	HaveraValorMaterialPintura            string          `gorm:"size:10" json:"havera_valor_material_pintura"`
	ValorMaterialPintura                  decimal.Decimal `gorm:"type:decimal(14,2)" json:"valor_material_pintura"`
	HaveraValorServicoPinturaRevestimento string          `gorm:"size:10" json:"havera_valor_servico_pintura_revestimento"`
	ValorServicoPinturaRevestimento       decimal.Decimal `gorm:"type:decimal(14,2)" json:"valor_servico_pintura_revestimento"`
	HaveraValorMaterialMontagem           string          `gorm:"size:10" json:"havera_valor_material_montagem"`
	ValorMaterialMontagem                 decimal.Decimal `gorm:"type:decimal(14,2)" json:"valor_material_montagem"`
	HaveraValorMontagem                   string          `gorm:"size:10" json:"havera_valor_montagem"`
	ValorMontagem                         decimal.Decimal `gorm:"type:decimal(14,2)" json:"valor_montagem"`
	HaveraValorInspecao                   string          `gorm:"size:10" json:"havera_valor_inspecao"`
	ValorInspecao                         decimal.Decimal `gorm:"type:decimal(14,2)" json:"valor_inspecao"`
	HaveraValorHH                         string          `gorm:"size:10" json:"havera_valor_hh"`
	ValorHH                               decimal.Decimal `gorm:"type:decimal(14,2)" json:"valor_hh"`
	HaveraValorManutencaoValvula          string          `gorm:"size:10" json:"havera_valor_manutencao_valvula"`
	ValorManutencaoValvula                decimal.Decimal `gorm:"type:decimal(14,2)" json:"valor_manutencao_valvula"`
	HaveraValorServicoTerceiros           string          `gorm:"size:10" json:"havera_valor_servico_terceiros"`
	ValorServicoTerceiros                 decimal.Decimal `gorm:"type:decimal(14,2)" json:"valor_servico_terceiros"`

	SomaValores decimal.Decimal `gorm:"type:decimal(14,2)" json:"soma_valores"`
	HHPrevisao  decimal.Decimal `gorm:"type:decimal(14,2)" json:"hh_previsao"`

	StatusOS                      string     `gorm:"size:100" json:"status_os"`
	StatusOSManual                string     `gorm:"size:100" json:"status_os_manual"`
	DataAprovacaoAssinaturaManual *time.Time `json:"data_aprovacao_assinatura_manual"`
	StatusOSEletronica            string     `gorm:"size:100" json:"status_os_eletronica"`
	DataAssinaturaEletronicaOS    *time.Time `json:"data_assinatura_eletronica_os"`
	NumeroOSEletronica            *int       `json:"numero_os_eletronica"`

	StatusLevantamento string `gorm:"size:100" json:"status_levantamento"`
	StatusProducao     string `gorm:"size:100" json:"status_producao"`

	OpcoesDMS string `gorm:"size:10" json:"opcoes_dms"`
	OpcoesBMS string `gorm:"size:10" json:"opcoes_bms"`
	OpcoesFRS string `gorm:"size:10" json:"opcoes_frs"`
	OpcoesNF  string `gorm:"size:10" json:"opcoes_nf"`

	SomaNotasFiscais decimal.Decimal `gorm:"type:decimal(14,2)" json:"soma_notas_fiscais"`
	SaldoFinal       decimal.Decimal `gorm:"type:decimal(14,2)" json:"saldo_final"`

	Observacao string `gorm:"type:text" json:"observacao"`

	UsuarioID *uint `gorm:"index" json:"usuario_id"`

	DocumentosSolicitacao []DocumentoSolicitacao `gorm:"foreignKey:RegistroID;constraint:OnDelete:CASCADE" json:"documentos_solicitacao"`
	DatasPrevistas        []DataPrevistaEntrega  `gorm:"foreignKey:RegistroID;constraint:OnDelete:CASCADE" json:"datas_previstas"`
	AcoesSolicitacao      []AcaoSolicitacao      `gorm:"foreignKey:RegistroID;constraint:OnDelete:CASCADE" json:"acoes_solicitacao"`
	ControlesQualidade    []ControleQualidade    `gorm:"foreignKey:RegistroID;constraint:OnDelete:CASCADE" json:"controles_qualidade"`
	OrdensCliente         []OrdemCliente         `gorm:"foreignKey:RegistroID;constraint:OnDelete:CASCADE" json:"ordens_cliente"`
	DocumentosEntrada     []DocumentoEntrada     `gorm:"foreignKey:RegistroID;constraint:OnDelete:CASCADE" json:"documentos_entrada"`
	Levantamentos         []Levantamento         `gorm:"foreignKey:RegistroID;constraint:OnDelete:CASCADE" json:"levantamentos"`
	Materiais             []Material             `gorm:"foreignKey:RegistroID;constraint:OnDelete:CASCADE" json:"materiais"`
	Gmis                  []Gmi                  `gorm:"foreignKey:RegistroID;constraint:OnDelete:CASCADE" json:"gmis"`
	Gmes                  []Gme                  `gorm:"foreignKey:RegistroID;constraint:OnDelete:CASCADE" json:"gmes"`
	Rtips                 []Rtip                 `gorm:"foreignKey:RegistroID;constraint:OnDelete:CASCADE" json:"rtips"`
	Rtms                  []Rtm                  `gorm:"foreignKey:RegistroID;constraint:OnDelete:CASCADE" json:"rtms"`
	Dms                   []Dms                  `gorm:"foreignKey:RegistroID;constraint:OnDelete:CASCADE" json:"dms"`
	Bms                   []Bms                  `gorm:"foreignKey:RegistroID;constraint:OnDelete:CASCADE" json:"bms"`
	Frs                   []Frs                  `gorm:"foreignKey:RegistroID;constraint:OnDelete:CASCADE" json:"frs"`
	NotasFiscaisSaida     []NfSaida              `gorm:"foreignKey:RegistroID;constraint:OnDelete:CASCADE" json:"notas_fiscais_saida"`
	NotasFiscaisVenda     []NfVenda              `gorm:"foreignKey:RegistroID;constraint:OnDelete:CASCADE" json:"notas_fiscais_venda"`

	CriadoEm     time.Time `gorm:"autoCreateTime" json:"criado_em"`
	AtualizadoEm time.Time `gorm:"autoUpdateTime" json:"atualizado_em"`
}

func (RegistroOS) TableName() string { return "registros_os" }

func (r *RegistroOS) BeforeCreate(tx *gorm.DB) error {
	if r.OSID == uuid.Nil {
		r.OSID = uuid.New()
	}
	return nil
}

type DocumentoSolicitacao struct {
	ID                       uint   `gorm:"primaryKey" json:"id"`
	RegistroID               uint   `gorm:"index" json:"registro_id"`
	DocumentoSolicitacao     string `gorm:"size:500" json:"documento_solicitacao"`
	TipoDocumentoSolicitacao string `gorm:"size:255" json:"tipo_documento_solicitacao"`
}

type DataPrevistaEntrega struct {
	ID                  uint       `gorm:"primaryKey" json:"id"`
	RegistroID          uint       `gorm:"index" json:"registro_id"`
	DataPrevistaEntrega *time.Time `json:"data_prevista_entrega"`
	Descricao           string     `gorm:"type:text" json:"descricao"`
}

type AcaoSolicitacao struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	RegistroID      uint   `gorm:"index" json:"registro_id"`
	AcaoSolicitacao string `gorm:"type:text" json:"acao_solicitacao"`
}

type ControleQualidade struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	RegistroID      uint   `gorm:"index" json:"registro_id"`
	TipoCQ          string `gorm:"size:255" json:"tipo_cq"`
	OpcoesEspecCQ   string `gorm:"size:255" json:"opcoes_espec_cq"`
	NivelInspecaoCQ string `gorm:"size:255" json:"nivel_inspecao_cq"`
	TipoEnsaioCQ    string `gorm:"size:255" json:"tipo_ensaio_cq"`
	PercentualCQ    *int   `json:"percentual_cq"`
	QuantidadeCQ    *int   `json:"quantidade_cq"`
	TamanhoCQ       string `gorm:"size:255" json:"tamanho_cq"`
	TextoTamanhoCQ  string `gorm:"size:255" json:"texto_tamanho_cq"`
}

type OrdemCliente struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	RegistroID  uint   `gorm:"index" json:"registro_id"`
	NumeroOrdem string `gorm:"size:255" json:"numero_ordem"`
	Descricao   string `gorm:"type:text" json:"descricao"`
}

type DocumentoEntrada struct {
	ID                     uint       `gorm:"primaryKey" json:"id"`
	RegistroID             uint       `gorm:"index" json:"registro_id"`
	DocumentoEntrada       string     `gorm:"size:500" json:"documento_entrada"`
	NumeroDocumentoEntrada string     `gorm:"size:255" json:"numero_documento_entrada"`
	DataDocumentoEntrada   *time.Time `json:"data_documento_entrada"`
}

type Levantamento struct {
	ID                       uint       `gorm:"primaryKey" json:"id"`
	RegistroID               uint       `gorm:"index" json:"registro_id"`
	DataLevantamento         *time.Time `json:"data_levantamento"`
	DescricaoLevantamento    string     `gorm:"type:text" json:"descricao_levantamento"`
	ArquivoAnexoLevantamento string     `gorm:"size:500" json:"arquivo_anexo_levantamento"`
}

type Material struct {
	ID                  uint   `gorm:"primaryKey" json:"id"`
	RegistroID          uint   `gorm:"index" json:"registro_id"`
	TipoMaterial        string `gorm:"size:255" json:"tipo_material"`
	StatusMaterial      string `gorm:"size:100" json:"status_material"`
	ResponsavelMaterial string `gorm:"size:255" json:"responsavel_material"`
}

type Gmi struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	RegistroID      uint       `gorm:"index" json:"registro_id"`
	DataGmi         *time.Time `json:"data_gmi"`
	DescricaoGmi    string     `gorm:"type:text" json:"descricao_gmi"`
	ArquivoAnexoGmi string     `gorm:"size:500" json:"arquivo_anexo_gmi"`
}

type Gme struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	RegistroID      uint       `gorm:"index" json:"registro_id"`
	DataGme         *time.Time `json:"data_gme"`
	DescricaoGme    string     `gorm:"type:text" json:"descricao_gme"`
	ArquivoAnexoGme string     `gorm:"size:500" json:"arquivo_anexo_gme"`
}

type Rtip struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	RegistroID       uint       `gorm:"index" json:"registro_id"`
	DataRtip         *time.Time `json:"data_rtip"`
	DescricaoRtip    string     `gorm:"type:text" json:"descricao_rtip"`
	ArquivoAnexoRtip string     `gorm:"size:500" json:"arquivo_anexo_rtip"`
}

type Rtm struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	RegistroID      uint       `gorm:"index" json:"registro_id"`
	DataRtm         *time.Time `json:"data_rtm"`
	DescricaoRtm    string     `gorm:"type:text" json:"descricao_rtm"`
	ArquivoAnexoRtm string     `gorm:"size:500" json:"arquivo_anexo_rtm"`
}

type Dms struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	RegistroID       uint       `gorm:"index" json:"registro_id"`
	NumeroDMS        string     `gorm:"size:255" json:"numero_dms"`
	DataAprovacaoDMS *time.Time `json:"data_aprovacao_dms"`
	StatusDMS        string     `gorm:"size:100" json:"status_dms"`
}

type Bms struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	RegistroID       uint       `gorm:"index" json:"registro_id"`
	NumeroBMS        string     `gorm:"size:255" json:"numero_bms"`
	DataAprovacaoBMS *time.Time `json:"data_aprovacao_bms"`
	StatusBMS        string     `gorm:"size:100" json:"status_bms"`
}

type Frs struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	RegistroID       uint       `gorm:"index" json:"registro_id"`
	NumeroFRS        string     `gorm:"size:255" json:"numero_frs"`
	DataAprovacaoFRS *time.Time `json:"data_aprovacao_frs"`
	StatusFRS        string     `gorm:"size:100" json:"status_frs"`
}

type NfSaida struct {
	ID                                 uint       `gorm:"primaryKey" json:"id"`
	RegistroID                         uint       `gorm:"index" json:"registro_id"`
	NumeroNotaFiscalRemessaSaida       string     `gorm:"size:255" json:"numero_nota_fiscal_remessa_saida"`
	ArquivoAnexoNotaFiscalRemessaSaida string     `gorm:"size:500" json:"arquivo_anexo_nota_fiscal_remessa_saida"`
	DataNotaFiscalRemessaSaida         *time.Time `json:"data_nota_fiscal_remessa_saida"`
}

type NfVenda struct {
	ID                          uint            `gorm:"primaryKey" json:"id"`
	RegistroID                  uint            `gorm:"index" json:"registro_id"`
	NumeroNotaFiscalVenda       string          `gorm:"size:255" json:"numero_nota_fiscal_venda"`
	PrecoNotaFiscalVenda        decimal.Decimal `gorm:"type:decimal(14,2)" json:"preco_nota_fiscal_venda"`
	ArquivoAnexoNotaFiscalVenda string          `gorm:"size:500" json:"arquivo_anexo_nota_fiscal_venda"`
	DataNotaFiscalVenda         *time.Time      `json:"data_nota_fiscal_venda"`
}

// Modelos devolve todos os modelos do pacote para a migração
func Modelos() []any {
	return []any{
		&RegistroOS{},
		&DocumentoSolicitacao{},
		&DataPrevistaEntrega{},
		&AcaoSolicitacao{},
		&ControleQualidade{},
		&OrdemCliente{},
		&DocumentoEntrada{},
		&Levantamento{},
		&Material{},
		&Gmi{},
		&Gme{},
		&Rtip{},
		&Rtm{},
		&Dms{},
		&Bms{},
		&Frs{},
		&NfSaida{},
		&NfVenda{},
	}
}
