package registroos

import (
	"errors"
	"math/rand"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/RegistroOS/api-controle/internal/auth"
)

// ErrNumeroEsgotado indica que não foi possível sortear um número de OS livre
var ErrNumeroEsgotado = errors.New("não foi possível gerar um número de OS único")

const (
	numeroOSMin      = 100000
	numeroOSMax      = 999999
	tentativasNumero = 50
)

var camposDataOS = []string{
	"data_solicitacao_os",
	"data_emissao_os",
	"prazo_execucao_servico",
	"data_aprovacao_assinatura_manual",
	"data_assinatura_eletronica_os",
}

var camposDecimalOS = []string{
	"peso_fabricacao",
	"metro_quadrado_pintura_revestimento",
	"valor_fabricacao",
	"valor_levantamento",
	"valor_material_fabricacao",
	"valor_material_pintura",
	"valor_servico_pintura_revestimento",
	"valor_material_montagem",
	"valor_montagem",
	"valor_inspecao",
	"valor_hh",
	"valor_manutencao_valvula",
	"valor_servico_terceiros",
	"hh_previsao",
}

var camposTextoOS = []string{
	"nome_cliente",
	"numero_contrato",
	"unidade_cliente",
	"setor_unidade_cliente",
	"status_regime_os",
	"nome_diligenciador_os",
	"nome_solicitante_cliente",
	"nome_responsavel_aprovacao_os_cliente",
	"nome_responsavel_execucao_servico",
	"id_demanda",
	"descricao_resumida",
	"descricao_detalhada",
	"existe_orcamento",
	"havera_valor_fabricacao",
	"havera_valor_levantamento",
	"havera_valor_material_fabricacao",
	"havera_valor_material_pintura",
	"havera_valor_servico_pintura_revestimento",
	"havera_valor_material_montagem",
	"havera_valor_montagem",
	"havera_valor_inspecao",
	"havera_valor_hh",
	"havera_valor_manutencao_valvula",
	"havera_valor_servico_terceiros",
	"status_os",
	"status_os_manual",
	"status_os_eletronica",
	"status_levantamento",
	"status_producao",
	"opcoes_dms",
	"opcoes_bms",
	"opcoes_frs",
	"opcoes_nf",
	"observacao",
}

var nomesPreload = []string{
	"DocumentosSolicitacao",
	"DatasPrevistas",
	"AcoesSolicitacao",
	"ControlesQualidade",
	"OrdensCliente",
	"DocumentosEntrada",
	"Levantamentos",
	"Materiais",
	"Gmis",
	"Gmes",
	"Rtips",
	"Rtms",
	"Dms",
	"Bms",
	"Frs",
	"NotasFiscaisSaida",
	"NotasFiscaisVenda",
}

func preloadTudo(db *gorm.DB) *gorm.DB {
	for _, nome := range nomesPreload {
		db = db.Preload(nome)
	}
	return db
}

// camposEscalares extrai do payload somente as colunas escalares graváveis,
// já coagidas. Nunca deixa passar id, os_id, numero_os ou usuario_id.
func camposEscalares(payload map[string]any) map[string]any {
	campos := map[string]any{}

	for _, nome := range camposTextoOS {
		if v, ok := payload[nome]; ok {
			if s, ok := v.(string); ok {
				campos[nome] = s
			} else if v == nil {
				campos[nome] = ""
			}
		}
	}

	for _, nome := range camposDataOS {
		v, ok := payload[nome]
		if !ok {
			continue
		}
		if v == nil {
			campos[nome] = nil
			continue
		}
		if t, ok := parseData(v); ok {
			campos[nome] = t
		}
	}

	for _, nome := range camposDecimalOS {
		v, ok := payload[nome]
		if !ok {
			continue
		}
		switch n := v.(type) {
		case float64:
			campos[nome] = decimal.NewFromFloat(n)
		case int:
			campos[nome] = decimal.NewFromInt(int64(n))
		case string:
			if d, err := decimal.NewFromString(n); err == nil {
				campos[nome] = d
			}
		case nil:
			campos[nome] = decimal.Zero
		}
	}

	if v, ok := payload["numero_os_eletronica"]; ok {
		switch n := v.(type) {
		case float64:
			campos["numero_os_eletronica"] = int(n)
		case nil:
			campos["numero_os_eletronica"] = nil
		}
	}

	return campos
}

// Filtros de listagem e relatório
type Filtros struct {
	NomeCliente string
	StatusOS    string
	NumeroOS    uint
	DataInicio  *time.Time
	DataFim     *time.Time
}

func (f Filtros) aplicar(q *gorm.DB) *gorm.DB {
	if f.NomeCliente != "" {
		q = q.Where("LOWER(nome_cliente) LIKE ?", "%"+strings.ToLower(f.NomeCliente)+"%")
	}
	if f.StatusOS != "" {
		q = q.Where("status_os = ?", f.StatusOS)
	}
	if f.NumeroOS > 0 {
		q = q.Where("numero_os = ?", f.NumeroOS)
	}
	if f.DataInicio != nil {
		q = q.Where("data_solicitacao_os >= ?", *f.DataInicio)
	}
	if f.DataFim != nil {
		q = q.Where("data_solicitacao_os <= ?", *f.DataFim)
	}
	return q
}

type Repository interface {
	GerarNumeroOS(db *gorm.DB) (uint, error)
	Criar(db *gorm.DB, payload map[string]any, usuarioID uint, tolerante bool) (*RegistroOS, error)
	Atualizar(db *gorm.DB, registro *RegistroOS, payload map[string]any, tolerante bool) (*RegistroOS, error)
	RecalcularTotais(db *gorm.DB, registro *RegistroOS) error
	ListarVisiveis(db *gorm.DB, usuarioID uint, grupos []string, filtros Filtros) ([]RegistroOS, error)
	BuscarVisivel(db *gorm.DB, id uint, usuarioID uint, grupos []string) (*RegistroOS, error)
	BuscarPorID(db *gorm.DB, id uint) (*RegistroOS, error)
	Deletar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

// GerarNumeroOS sorteia em [100000, 999999] e tenta de novo em colisão.
// O número é atribuído uma única vez e nunca regenerado.
func (r *repositoryImpl) GerarNumeroOS(db *gorm.DB) (uint, error) {
	for i := 0; i < tentativasNumero; i++ {
		numero := uint(numeroOSMin + rand.Intn(numeroOSMax-numeroOSMin+1))
		var count int64
		if err := db.Model(&RegistroOS{}).Where("numero_os = ?", numero).Count(&count).Error; err != nil {
			return 0, err
		}
		if count == 0 {
			return numero, nil
		}
	}
	return 0, ErrNumeroEsgotado
}

func (r *repositoryImpl) Criar(db *gorm.DB, payload map[string]any, usuarioID uint, tolerante bool) (*RegistroOS, error) {
	AplicarAjustes(payload)

	numero, err := r.GerarNumeroOS(db)
	if err != nil {
		return nil, err
	}

	registro := RegistroOS{
		NumeroOS:  numero,
		UsuarioID: &usuarioID,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&registro).Error; err != nil {
			return err
		}
		campos := camposEscalares(payload)
		if len(campos) > 0 {
			if err := tx.Model(&registro).Updates(campos).Error; err != nil {
				return err
			}
		}
		if err := ReconciliarColecoes(tx, registro.ID, payload, true, tolerante); err != nil {
			return err
		}
		if err := tx.First(&registro, registro.ID).Error; err != nil {
			return err
		}
		return r.RecalcularTotais(tx, &registro)
	})
	if err != nil {
		return nil, err
	}
	return r.BuscarPorID(db, registro.ID)
}

func (r *repositoryImpl) Atualizar(db *gorm.DB, registro *RegistroOS, payload map[string]any, tolerante bool) (*RegistroOS, error) {
	AplicarAjustes(payload)

	err := db.Transaction(func(tx *gorm.DB) error {
		campos := camposEscalares(payload)
		if len(campos) > 0 {
			if err := tx.Model(registro).Updates(campos).Error; err != nil {
				return err
			}
		}
		if err := ReconciliarColecoes(tx, registro.ID, payload, false, tolerante); err != nil {
			return err
		}
		if err := tx.First(registro, registro.ID).Error; err != nil {
			return err
		}
		return r.RecalcularTotais(tx, registro)
	})
	if err != nil {
		return nil, err
	}
	return r.BuscarPorID(db, registro.ID)
}

// RecalcularTotais refaz soma_valores, soma_notas_fiscais e saldo_final.
// Idempotente: rodar duas vezes sem mudança de entrada dá o mesmo resultado.
func (r *repositoryImpl) RecalcularTotais(db *gorm.DB, registro *RegistroOS) error {
	soma := decimal.Zero
	pares := []struct {
		Flag  string
		Valor decimal.Decimal
	}{
		{registro.HaveraValorFabricacao, registro.ValorFabricacao},
		{registro.HaveraValorLevantamento, registro.ValorLevantamento},
		{registro.HaveraValorMaterialFabricacao, registro.ValorMaterialFabricacao},
		{registro.HaveraValorMaterialPintura, registro.ValorMaterialPintura},
		{registro.HaveraValorServicoPinturaRevestimento, registro.ValorServicoPinturaRevestimento},
		{registro.HaveraValorMaterialMontagem, registro.ValorMaterialMontagem},
		{registro.HaveraValorMontagem, registro.ValorMontagem},
		{registro.HaveraValorInspecao, registro.ValorInspecao},
		{registro.HaveraValorHH, registro.ValorHH},
		{registro.HaveraValorManutencaoValvula, registro.ValorManutencaoValvula},
		{registro.HaveraValorServicoTerceiros, registro.ValorServicoTerceiros},
	}
	for _, par := range pares {
		if par.Flag == SimValor {
			soma = soma.Add(par.Valor)
		}
	}

	var notas []NfVenda
	if err := db.Where("registro_id = ?", registro.ID).Find(&notas).Error; err != nil {
		return err
	}
	somaNotas := decimal.Zero
	for _, nota := range notas {
		somaNotas = somaNotas.Add(nota.PrecoNotaFiscalVenda)
	}

	registro.SomaValores = soma
	registro.SomaNotasFiscais = somaNotas
	registro.SaldoFinal = somaNotas.Sub(soma)

	return db.Model(registro).Updates(map[string]any{
		"soma_valores":       registro.SomaValores,
		"soma_notas_fiscais": registro.SomaNotasFiscais,
		"saldo_final":        registro.SaldoFinal,
	}).Error
}

func escopoVisivel(q *gorm.DB, usuarioID uint, grupos []string) *gorm.DB {
	if auth.VeTodasOS(grupos) {
		return q
	}
	return q.Where("usuario_id = ?", usuarioID)
}

func (r *repositoryImpl) ListarVisiveis(db *gorm.DB, usuarioID uint, grupos []string, filtros Filtros) ([]RegistroOS, error) {
	var registros []RegistroOS
	q := escopoVisivel(preloadTudo(db), usuarioID, grupos)
	q = filtros.aplicar(q)
	err := q.Order("id DESC").Find(&registros).Error
	return registros, err
}

func (r *repositoryImpl) BuscarVisivel(db *gorm.DB, id uint, usuarioID uint, grupos []string) (*RegistroOS, error) {
	var registro RegistroOS
	q := escopoVisivel(preloadTudo(db), usuarioID, grupos)
	if err := q.First(&registro, id).Error; err != nil {
		return nil, err
	}
	return &registro, nil
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*RegistroOS, error) {
	var registro RegistroOS
	if err := preloadTudo(db).First(&registro, id).Error; err != nil {
		return nil, err
	}
	return &registro, nil
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	return db.Select(clause.Associations).Delete(&RegistroOS{ID: id}).Error
}
