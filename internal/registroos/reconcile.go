package registroos

import (
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// colecaoDef descreve uma coleção filha para o motor de reconciliação:
// quais campos aceita, quais são obrigatórios e como coagir tipos vindos
// do JSON.
type colecaoDef struct {
	Nome          string
	Modelo        any
	Obrigatorios  []string
	Opcionais     []string
	CamposData    []string
	CamposDecimal []string
	CamposInt     []string
	CamposArquivo []string
}

var colecoes = []colecaoDef{
	{
		Nome:         "documentos_solicitacao",
		Modelo:       &DocumentoSolicitacao{},
		Obrigatorios: []string{"documento_solicitacao"},
		Opcionais:    []string{"tipo_documento_solicitacao"},
	},
	{
		Nome:         "datas_previstas",
		Modelo:       &DataPrevistaEntrega{},
		Obrigatorios: []string{"data_prevista_entrega"},
		Opcionais:    []string{"descricao"},
		CamposData:   []string{"data_prevista_entrega"},
	},
	{
		Nome:      "acoes_solicitacao",
		Modelo:    &AcaoSolicitacao{},
		Opcionais: []string{"acao_solicitacao"},
	},
	{
		Nome:   "controles_qualidade",
		Modelo: &ControleQualidade{},
		Opcionais: []string{
			"tipo_cq", "opcoes_espec_cq", "nivel_inspecao_cq", "tipo_ensaio_cq",
			"percentual_cq", "quantidade_cq", "tamanho_cq", "texto_tamanho_cq",
		},
		CamposInt: []string{"percentual_cq", "quantidade_cq"},
	},
	{
		Nome:         "ordens_cliente",
		Modelo:       &OrdemCliente{},
		Obrigatorios: []string{"numero_ordem"},
		Opcionais:    []string{"descricao"},
	},
	{
		Nome:         "documentos_entrada",
		Modelo:       &DocumentoEntrada{},
		Obrigatorios: []string{"documento_entrada", "numero_documento_entrada", "data_documento_entrada"},
		CamposData:   []string{"data_documento_entrada"},
	},
	{
		Nome:          "levantamentos",
		Modelo:        &Levantamento{},
		Obrigatorios:  []string{"data_levantamento", "descricao_levantamento", "arquivo_anexo_levantamento"},
		CamposData:    []string{"data_levantamento"},
		CamposArquivo: []string{"arquivo_anexo_levantamento"},
	},
	{
		Nome:      "materiais",
		Modelo:    &Material{},
		Opcionais: []string{"tipo_material", "status_material", "responsavel_material"},
	},
	{
		Nome:          "gmis",
		Modelo:        &Gmi{},
		Obrigatorios:  []string{"data_gmi", "descricao_gmi", "arquivo_anexo_gmi"},
		CamposData:    []string{"data_gmi"},
		CamposArquivo: []string{"arquivo_anexo_gmi"},
	},
	{
		Nome:          "gmes",
		Modelo:        &Gme{},
		Obrigatorios:  []string{"data_gme", "descricao_gme", "arquivo_anexo_gme"},
		CamposData:    []string{"data_gme"},
		CamposArquivo: []string{"arquivo_anexo_gme"},
	},
	{
		Nome:          "rtips",
		Modelo:        &Rtip{},
		Obrigatorios:  []string{"data_rtip", "descricao_rtip", "arquivo_anexo_rtip"},
		CamposData:    []string{"data_rtip"},
		CamposArquivo: []string{"arquivo_anexo_rtip"},
	},
	{
		Nome:          "rtms",
		Modelo:        &Rtm{},
		Obrigatorios:  []string{"data_rtm", "descricao_rtm", "arquivo_anexo_rtm"},
		CamposData:    []string{"data_rtm"},
		CamposArquivo: []string{"arquivo_anexo_rtm"},
	},
	{
		Nome:         "dms",
		Modelo:       &Dms{},
		Obrigatorios: []string{"numero_dms", "data_aprovacao_dms"},
		Opcionais:    []string{"status_dms"},
		CamposData:   []string{"data_aprovacao_dms"},
	},
	{
		Nome:         "bms",
		Modelo:       &Bms{},
		Obrigatorios: []string{"numero_bms", "data_aprovacao_bms"},
		Opcionais:    []string{"status_bms"},
		CamposData:   []string{"data_aprovacao_bms"},
	},
	{
		Nome:         "frs",
		Modelo:       &Frs{},
		Obrigatorios: []string{"numero_frs", "data_aprovacao_frs"},
		Opcionais:    []string{"status_frs"},
		CamposData:   []string{"data_aprovacao_frs"},
	},
	{
		Nome:   "notas_fiscais_saida",
		Modelo: &NfSaida{},
		Obrigatorios: []string{
			"numero_nota_fiscal_remessa_saida",
			"arquivo_anexo_nota_fiscal_remessa_saida",
			"data_nota_fiscal_remessa_saida",
		},
		CamposData:    []string{"data_nota_fiscal_remessa_saida"},
		CamposArquivo: []string{"arquivo_anexo_nota_fiscal_remessa_saida"},
	},
	{
		Nome:   "notas_fiscais_venda",
		Modelo: &NfVenda{},
		Obrigatorios: []string{
			"numero_nota_fiscal_venda",
			"preco_nota_fiscal_venda",
			"arquivo_anexo_nota_fiscal_venda",
			"data_nota_fiscal_venda",
		},
		CamposData:    []string{"data_nota_fiscal_venda"},
		CamposDecimal: []string{"preco_nota_fiscal_venda"},
		CamposArquivo: []string{"arquivo_anexo_nota_fiscal_venda"},
	},
}

// NomesColecoes lista as chaves de payload tratadas como coleções filhas
func NomesColecoes() []string {
	nomes := make([]string, len(colecoes))
	for i, c := range colecoes {
		nomes[i] = c.Nome
	}
	return nomes
}

func contem(lista []string, campo string) bool {
	for _, c := range lista {
		if c == campo {
			return true
		}
	}
	return false
}

// coagir converte o valor JSON para o tipo da coluna; se a conversão falha
// o campo é descartado
func (def colecaoDef) coagir(campo string, v any) (any, bool) {
	switch {
	case contem(def.CamposData, campo):
		if t, ok := parseData(v); ok {
			return t, true
		}
		return nil, false
	case contem(def.CamposDecimal, campo):
		switch n := v.(type) {
		case float64:
			return decimal.NewFromFloat(n), true
		case string:
			if d, err := decimal.NewFromString(n); err == nil {
				return d, true
			}
		}
		return nil, false
	case contem(def.CamposInt, campo):
		switch n := v.(type) {
		case float64:
			return int(n), true
		case string:
			if i, err := strconv.Atoi(n); err == nil {
				return i, true
			}
		}
		return nil, false
	default:
		return v, true
	}
}

// camposDoItem filtra o item para os campos conhecidos, descarta vazios e
// coage os tipos. Campos de arquivo passam pela lista de extensões do campo.
// O id nunca entra no resultado.
func (def colecaoDef) camposDoItem(item map[string]any) (map[string]any, error) {
	campos := map[string]any{}
	for _, nome := range append(append([]string{}, def.Obrigatorios...), def.Opcionais...) {
		v, ok := item[nome]
		if !ok || !preenchido(v) {
			continue
		}
		if contem(def.CamposArquivo, nome) {
			s, _ := v.(string)
			if err := ValidarExtensao(nome, s); err != nil {
				return nil, err
			}
		}
		if coagido, ok := def.coagir(nome, v); ok {
			campos[nome] = coagido
		}
	}
	return campos, nil
}

// itemAproveitavel decide se o item de formulário tem conteúdo suficiente
// para virar linha. Linhas dinâmicas vazias são toleradas e descartadas.
func (def colecaoDef) itemAproveitavel(campos map[string]any) bool {
	if len(def.Obrigatorios) > 0 {
		for _, nome := range def.Obrigatorios {
			if _, ok := campos[nome]; ok {
				return true
			}
		}
		return false
	}
	for _, nome := range def.Opcionais {
		if _, ok := campos[nome]; ok {
			return true
		}
	}
	return false
}

func itemID(item map[string]any) (uint, bool) {
	switch v := item["id"].(type) {
	case float64:
		if v > 0 {
			return uint(v), true
		}
	case string:
		if id, err := strconv.ParseUint(v, 10, 32); err == nil && id > 0 {
			return uint(id), true
		}
	}
	return 0, false
}

// reconciliarColecao converge as linhas persistidas de uma coleção para o
// array submetido. Em modo tolerante, falhas de persistência por item são
// registradas e o processamento segue.
func reconciliarColecao(tx *gorm.DB, def colecaoDef, registroID uint, itens []map[string]any, criacao, tolerante bool) error {
	log := logrus.WithFields(logrus.Fields{"colecao": def.Nome, "registro_id": registroID})

	inserir := func(item map[string]any) error {
		campos, err := def.camposDoItem(item)
		if err != nil {
			if tolerante {
				log.WithError(err).Warn("item da coleção descartado, seguindo")
				return nil
			}
			return err
		}
		if !def.itemAproveitavel(campos) {
			return nil
		}
		campos["registro_id"] = registroID
		if err := tx.Model(def.Modelo).Create(campos).Error; err != nil {
			if tolerante {
				log.WithError(err).Warn("falha ao inserir item da coleção, seguindo")
				return nil
			}
			return err
		}
		return nil
	}

	if criacao {
		for _, item := range itens {
			if err := inserir(item); err != nil {
				return err
			}
		}
		return nil
	}

	var existentes []uint
	if err := tx.Model(def.Modelo).Where("registro_id = ?", registroID).Pluck("id", &existentes).Error; err != nil {
		return err
	}
	conhecido := map[uint]bool{}
	for _, id := range existentes {
		conhecido[id] = true
	}

	submetidos := map[uint]bool{}
	for _, item := range itens {
		if id, ok := itemID(item); ok && conhecido[id] {
			submetidos[id] = true
		}
	}

	// A coleção submetida é a verdade: o que não veio, sai
	var remover []uint
	for _, id := range existentes {
		if !submetidos[id] {
			remover = append(remover, id)
		}
	}
	if len(remover) > 0 {
		if err := tx.Where("id IN ?", remover).Delete(def.Modelo).Error; err != nil {
			return err
		}
	}

	for _, item := range itens {
		id, temID := itemID(item)
		if temID && conhecido[id] {
			campos, err := def.camposDoItem(item)
			if err != nil {
				if tolerante {
					log.WithError(err).WithField("item_id", id).Warn("item da coleção descartado, seguindo")
					continue
				}
				return err
			}
			if len(campos) == 0 {
				continue
			}
			if err := tx.Model(def.Modelo).Where("id = ?", id).Updates(campos).Error; err != nil {
				if tolerante {
					log.WithError(err).WithField("item_id", id).Warn("falha ao atualizar item da coleção, seguindo")
					continue
				}
				return err
			}
			continue
		}
		if err := inserir(item); err != nil {
			return err
		}
	}
	return nil
}

// ReconciliarColecoes aplica a reconciliação das 17 coleções dentro da
// transação corrente. Coleção ausente ou vazia no payload preserva as
// linhas existentes.
func ReconciliarColecoes(tx *gorm.DB, registroID uint, payload map[string]any, criacao, tolerante bool) error {
	for _, def := range colecoes {
		itens := colecaoSubmetida(payload, def.Nome)
		if len(itens) == 0 {
			continue
		}
		if err := reconciliarColecao(tx, def, registroID, itens, criacao, tolerante); err != nil {
			return err
		}
	}
	return nil
}
