package opcoes

import (
	"errors"
	"strconv"

	"gorm.io/gorm"
)

var ErrModeloDesconhecido = errors.New("modelo desconhecido")

// selectModelo descreve um select gerenciável: qual coluna carrega o valor e
// como listar/criar o registro correspondente.
type selectModelo struct {
	Campo string
	Novo  func(valor string) (any, error)
	Lista func(db *gorm.DB) (any, error)
	Vazio func() any
}

func listaDe[T any](db *gorm.DB) (any, error) {
	var itens []T
	err := db.Order("id").Find(&itens).Error
	return itens, err
}

// Mapa de despacho por nome de modelo, usado pelos endpoints de
// gerenciamento de selects e pelas listas simples.
var selectModelos = map[string]selectModelo{
	"TipoCQ": {
		Campo: "nome",
		Novo:  func(v string) (any, error) { return &TipoCQ{Nome: v}, nil },
		Lista: listaDe[TipoCQ],
		Vazio: func() any { return &TipoCQ{} },
	},
	"NivelCQ": {
		Campo: "nome",
		Novo:  func(v string) (any, error) { return &NivelCQ{Nome: v}, nil },
		Lista: listaDe[NivelCQ],
		Vazio: func() any { return &NivelCQ{} },
	},
	"EnsaioCQ": {
		Campo: "nome",
		Novo:  func(v string) (any, error) { return &EnsaioCQ{Nome: v}, nil },
		Lista: listaDe[EnsaioCQ],
		Vazio: func() any { return &EnsaioCQ{} },
	},
	"PercentualCQ": {
		Campo: "percentual",
		Novo: func(v string) (any, error) {
			p, err := strconv.Atoi(v)
			if err != nil {
				return nil, errors.New("percentual deve ser numérico")
			}
			return &PercentualCQ{Percentual: p}, nil
		},
		Lista: listaDe[PercentualCQ],
		Vazio: func() any { return &PercentualCQ{} },
	},
	"AcaoSolicitacaoOption": {
		Campo: "descricao",
		Novo:  func(v string) (any, error) { return &AcaoSolicitacaoOption{Descricao: v}, nil },
		Lista: listaDe[AcaoSolicitacaoOption],
		Vazio: func() any { return &AcaoSolicitacaoOption{} },
	},
	"Demanda": {
		Campo: "nome",
		Novo:  func(v string) (any, error) { return &Demanda{Nome: v}, nil },
		Lista: listaDe[Demanda],
		Vazio: func() any { return &Demanda{} },
	},
	"TipoMaterial": {
		Campo: "nome",
		Novo:  func(v string) (any, error) { return &TipoMaterial{Nome: v}, nil },
		Lista: listaDe[TipoMaterial],
		Vazio: func() any { return &TipoMaterial{} },
	},
	"StatusDMS": {
		Campo: "status",
		Novo:  func(v string) (any, error) { return &StatusDMS{Status: v}, nil },
		Lista: listaDe[StatusDMS],
		Vazio: func() any { return &StatusDMS{} },
	},
	"StatusBMS": {
		Campo: "status",
		Novo:  func(v string) (any, error) { return &StatusBMS{Status: v}, nil },
		Lista: listaDe[StatusBMS],
		Vazio: func() any { return &StatusBMS{} },
	},
	"StatusFRS": {
		Campo: "status",
		Novo:  func(v string) (any, error) { return &StatusFRS{Status: v}, nil },
		Lista: listaDe[StatusFRS],
		Vazio: func() any { return &StatusFRS{} },
	},
	"NomeDiligenciadorOS": {
		Campo: "nome",
		Novo:  func(v string) (any, error) { return &NomeDiligenciadorOS{Nome: v}, nil },
		Lista: listaDe[NomeDiligenciadorOS],
		Vazio: func() any { return &NomeDiligenciadorOS{} },
	},
	"NomeResponsavelExecucaoServico": {
		Campo: "nome",
		Novo:  func(v string) (any, error) { return &NomeResponsavelExecucaoServico{Nome: v}, nil },
		Lista: listaDe[NomeResponsavelExecucaoServico],
		Vazio: func() any { return &NomeResponsavelExecucaoServico{} },
	},
	"ResponsavelMaterial": {
		Campo: "nome",
		Novo:  func(v string) (any, error) { return &ResponsavelMaterial{Nome: v}, nil },
		Lista: listaDe[ResponsavelMaterial],
		Vazio: func() any { return &ResponsavelMaterial{} },
	},
	"Cliente": {
		Campo: "nome",
		Novo:  func(v string) (any, error) { return &Cliente{Nome: v}, nil },
		Lista: listaDe[Cliente],
		Vazio: func() any { return &Cliente{} },
	},
	"StatusOS": {
		Campo: "nome",
		Novo:  func(v string) (any, error) { return &StatusOS{Nome: v}, nil },
		Lista: listaDe[StatusOS],
		Vazio: func() any { return &StatusOS{} },
	},
	"StatusOSManual": {
		Campo: "nome",
		Novo:  func(v string) (any, error) { return &StatusOSManual{Nome: v}, nil },
		Lista: listaDe[StatusOSManual],
		Vazio: func() any { return &StatusOSManual{} },
	},
	"StatusOSEletronica": {
		Campo: "nome",
		Novo:  func(v string) (any, error) { return &StatusOSEletronica{Nome: v}, nil },
		Lista: listaDe[StatusOSEletronica],
		Vazio: func() any { return &StatusOSEletronica{} },
	},
	"StatusLevantamento": {
		Campo: "nome",
		Novo:  func(v string) (any, error) { return &StatusLevantamento{Nome: v}, nil },
		Lista: listaDe[StatusLevantamento],
		Vazio: func() any { return &StatusLevantamento{} },
	},
	"StatusProducao": {
		Campo: "nome",
		Novo:  func(v string) (any, error) { return &StatusProducao{Nome: v}, nil },
		Lista: listaDe[StatusProducao],
		Vazio: func() any { return &StatusProducao{} },
	},
	"RegimeOS": {
		Campo: "nome",
		Novo:  func(v string) (any, error) { return &RegimeOS{Nome: v}, nil },
		Lista: listaDe[RegimeOS],
		Vazio: func() any { return &RegimeOS{} },
	},
	"StatusMaterial": {
		Campo: "nome",
		Novo:  func(v string) (any, error) { return &StatusMaterial{Nome: v}, nil },
		Lista: listaDe[StatusMaterial],
		Vazio: func() any { return &StatusMaterial{} },
	},
	"TipoDocumentoSolicitacao": {
		Campo: "nome",
		Novo:  func(v string) (any, error) { return &TipoDocumentoSolicitacao{Nome: v}, nil },
		Lista: listaDe[TipoDocumentoSolicitacao],
		Vazio: func() any { return &TipoDocumentoSolicitacao{} },
	},
}

type Repository interface {
	ListarModelo(db *gorm.DB, modelo string) (any, error)
	AdicionarItem(db *gorm.DB, modelo, valor string) (any, error)
	EditarItem(db *gorm.DB, modelo string, id uint, valor string) error
	ExcluirItem(db *gorm.DB, modelo string, id uint) error
	ListarTudo(db *gorm.DB) (map[string]any, error)
	BuscarClientePorNome(db *gorm.DB, nome string) (*Cliente, error)
	DadosCliente(db *gorm.DB, clienteID uint) (map[string]any, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) ListarModelo(db *gorm.DB, modelo string) (any, error) {
	m, ok := selectModelos[modelo]
	if !ok {
		return nil, ErrModeloDesconhecido
	}
	return m.Lista(db)
}

func (r *repositoryImpl) AdicionarItem(db *gorm.DB, modelo, valor string) (any, error) {
	m, ok := selectModelos[modelo]
	if !ok {
		return nil, ErrModeloDesconhecido
	}
	item, err := m.Novo(valor)
	if err != nil {
		return nil, err
	}
	if err := db.Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (r *repositoryImpl) EditarItem(db *gorm.DB, modelo string, id uint, valor string) error {
	m, ok := selectModelos[modelo]
	if !ok {
		return ErrModeloDesconhecido
	}
	var v any = valor
	if m.Campo == "percentual" {
		p, err := strconv.Atoi(valor)
		if err != nil {
			return errors.New("percentual deve ser numérico")
		}
		v = p
	}
	res := db.Model(m.Vazio()).Where("id = ?", id).Update(m.Campo, v)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repositoryImpl) ExcluirItem(db *gorm.DB, modelo string, id uint) error {
	m, ok := selectModelos[modelo]
	if !ok {
		return ErrModeloDesconhecido
	}
	res := db.Where("id = ?", id).Delete(m.Vazio())
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repositoryImpl) ListarTudo(db *gorm.DB) (map[string]any, error) {
	tudo := make(map[string]any, len(selectModelos))
	for nome, m := range selectModelos {
		itens, err := m.Lista(db)
		if err != nil {
			return nil, err
		}
		tudo[nome] = itens
	}
	return tudo, nil
}

func (r *repositoryImpl) BuscarClientePorNome(db *gorm.DB, nome string) (*Cliente, error) {
	var c Cliente
	err := db.Where("nome = ?", nome).First(&c).Error
	return &c, err
}

// DadosCliente devolve os cadastros ativos vinculados ao cliente
func (r *repositoryImpl) DadosCliente(db *gorm.DB, clienteID uint) (map[string]any, error) {
	dados := map[string]any{}

	var contratos []Contrato
	if err := db.Where("cliente_id = ? AND ativo = ?", clienteID, true).Find(&contratos).Error; err != nil {
		return nil, err
	}
	dados["contratos"] = contratos

	var unidades []UnidadeCliente
	if err := db.Where("cliente_id = ? AND ativo = ?", clienteID, true).Find(&unidades).Error; err != nil {
		return nil, err
	}
	dados["unidades"] = unidades

	var setores []SetorUnidadeCliente
	if err := db.Where("cliente_id = ? AND ativo = ?", clienteID, true).Find(&setores).Error; err != nil {
		return nil, err
	}
	dados["setores"] = setores

	var aprovadores []AprovadorCliente
	if err := db.Where("cliente_id = ? AND ativo = ?", clienteID, true).Find(&aprovadores).Error; err != nil {
		return nil, err
	}
	dados["aprovadores"] = aprovadores

	var solicitantes []SolicitanteCliente
	if err := db.Where("cliente_id = ? AND ativo = ?", clienteID, true).Find(&solicitantes).Error; err != nil {
		return nil, err
	}
	dados["solicitantes"] = solicitantes

	var especs []OpcaoEspecCQ
	if err := db.Where("cliente_id = ? AND ativo = ?", clienteID, true).Find(&especs).Error; err != nil {
		return nil, err
	}
	dados["opcoes_espec_cq"] = especs

	return dados, nil
}
