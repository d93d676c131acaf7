package registroos

import (
	"fmt"
	"time"

	"github.com/RegistroOS/api-controle/internal/auth"
)

const (
	SimValor = "SIM"
	NaoValor = "NAO"

	StatusOSAprovada       = "APROVADA"
	StatusEtapaConcluido   = "CONCLUIDO"
	StatusMaterialEntregue = "ENTREGUE"
)

const msgObrigatorio = "Este campo é obrigatório."

// paresValor relaciona cada flag "haverá valor" ao campo monetário correspondente
var paresValor = []struct {
	Flag  string
	Valor string
}{
	{"havera_valor_fabricacao", "valor_fabricacao"},
	{"havera_valor_levantamento", "valor_levantamento"},
	{"havera_valor_material_fabricacao", "valor_material_fabricacao"},
	{"havera_valor_material_pintura", "valor_material_pintura"},
	{"havera_valor_servico_pintura_revestimento", "valor_servico_pintura_revestimento"},
	{"havera_valor_material_montagem", "valor_material_montagem"},
	{"havera_valor_montagem", "valor_montagem"},
	{"havera_valor_inspecao", "valor_inspecao"},
	{"havera_valor_hh", "valor_hh"},
	{"havera_valor_manutencao_valvula", "valor_manutencao_valvula"},
	{"havera_valor_servico_terceiros", "valor_servico_terceiros"},
}

// camposSegurosUpdate podem ser atualizados isoladamente sem disparar as
// demais regras de obrigatoriedade
var camposSegurosUpdate = map[string]bool{
	"observacao":                    true,
	"descricao_detalhada":           true,
	"data_assinatura_eletronica_os": true,
	"numero_os_eletronica":          true,
	"soma_valores":                  true,
	"soma_notas_fiscais":            true,
	"saldo_final":                   true,
}

var obrigatoriosBasicoCriacao = []string{
	"data_solicitacao_os",
	"data_emissao_os",
	"nome_cliente",
	"numero_contrato",
	"unidade_cliente",
	"setor_unidade_cliente",
	"prazo_execucao_servico",
	"status_regime_os",
	"nome_diligenciador_os",
	"nome_solicitante_cliente",
	"nome_responsavel_aprovacao_os_cliente",
	"nome_responsavel_execucao_servico",
	"id_demanda",
	"descricao_resumida",
	"existe_orcamento",
	"status_os",
	"status_levantamento",
	"status_producao",
	"opcoes_dms",
	"opcoes_bms",
	"opcoes_frs",
}

var obrigatoriosOrcamento = []string{
	"peso_fabricacao",
	"metro_quadrado_pintura_revestimento",
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
}

var obrigatoriosAprovacao = []string{
	"status_os_manual",
	"data_aprovacao_assinatura_manual",
	"status_os_eletronica",
	"data_assinatura_eletronica_os",
	"numero_os_eletronica",
}

var obrigatoriosControleQualidade = []string{
	"tipo_cq",
	"opcoes_espec_cq",
	"nivel_inspecao_cq",
	"tipo_ensaio_cq",
	"percentual_cq",
	"quantidade_cq",
	"tamanho_cq",
	"texto_tamanho_cq",
}

// preenchido decide se um valor de payload conta como informado
func preenchido(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}

func campoPreenchido(payload map[string]any, campo string) bool {
	v, ok := payload[campo]
	return ok && preenchido(v)
}

func colecaoSubmetida(payload map[string]any, nome string) []map[string]any {
	v, ok := payload[nome]
	if !ok {
		return nil
	}
	itens, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(itens))
	for _, item := range itens {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

func texto(payload map[string]any, campo string) string {
	s, _ := payload[campo].(string)
	return s
}

// apenasCamposSeguros verifica a saída antecipada de updates parciais
func apenasCamposSeguros(payload map[string]any) bool {
	for campo := range payload {
		if !camposSegurosUpdate[campo] {
			return false
		}
	}
	return true
}

// Validar aplica as regras condicionais de obrigatoriedade e devolve um
// mapa campo -> mensagem. Mapa vazio significa payload válido. As regras
// são acumulativas, não param no primeiro erro.
func Validar(grupos []string, payload map[string]any, criacao bool) map[string]string {
	erros := map[string]string{}

	// Administrador e Superior não têm campo obrigatório
	if auth.IsAdminOuSuperior(grupos) {
		return erros
	}

	// Update contendo apenas campos seguros passa sem validação
	if !criacao && apenasCamposSeguros(payload) {
		return erros
	}

	if auth.TemGrupo(grupos, auth.GrupoQualidade) {
		cqs := colecaoSubmetida(payload, "controles_qualidade")
		if len(cqs) == 0 {
			erros["controles_qualidade"] = "Pelo menos um controle de qualidade é obrigatório."
		}
		for i, cq := range cqs {
			for _, campo := range obrigatoriosControleQualidade {
				if !campoPreenchido(cq, campo) {
					erros[fmt.Sprintf("controles_qualidade[%d].%s", i, campo)] = msgObrigatorio
				}
			}
		}
	}

	if auth.TemGrupo(grupos, auth.GrupoBasico) && criacao {
		for _, campo := range obrigatoriosBasicoCriacao {
			if !campoPreenchido(payload, campo) {
				erros[campo] = msgObrigatorio
			}
		}
		if texto(payload, "existe_orcamento") == SimValor {
			for _, campo := range obrigatoriosOrcamento {
				if !campoPreenchido(payload, campo) {
					erros[campo] = msgObrigatorio
				}
			}
		}
	}

	// Pares flag/valor valem para qualquer papel não privilegiado
	for _, par := range paresValor {
		if texto(payload, par.Flag) == SimValor && !campoPreenchido(payload, par.Valor) {
			erros[par.Valor] = msgObrigatorio
		}
	}

	if texto(payload, "status_os") == StatusOSAprovada {
		for _, campo := range obrigatoriosAprovacao {
			if !campoPreenchido(payload, campo) {
				erros[campo] = msgObrigatorio
			}
		}
		if len(colecaoSubmetida(payload, "ordens_cliente")) == 0 {
			erros["ordens_cliente"] = "Pelo menos uma ordem do cliente é obrigatória quando a OS está aprovada."
		}
		if len(colecaoSubmetida(payload, "documentos_entrada")) == 0 {
			erros["documentos_entrada"] = "Pelo menos um documento de entrada é obrigatório quando a OS está aprovada."
		}
	}

	if texto(payload, "status_levantamento") == StatusEtapaConcluido &&
		texto(payload, "status_producao") == StatusEtapaConcluido {
		if len(colecaoSubmetida(payload, "levantamentos")) == 0 {
			erros["levantamentos"] = "Pelo menos um levantamento é obrigatório quando levantamento e produção estão concluídos."
		}
	}

	for opcao, colecao := range map[string]string{
		"opcoes_dms": "dms",
		"opcoes_bms": "bms",
		"opcoes_frs": "frs",
	} {
		if texto(payload, opcao) == SimValor && len(colecaoSubmetida(payload, colecao)) == 0 {
			erros[colecao] = "Pelo menos um item é obrigatório quando a opção correspondente é SIM."
		}
	}

	for i, doc := range colecaoSubmetida(payload, "documentos_solicitacao") {
		if campoPreenchido(doc, "tipo_documento_solicitacao") && !campoPreenchido(doc, "documento_solicitacao") {
			erros[fmt.Sprintf("documentos_solicitacao[%d].documento_solicitacao", i)] =
				"O arquivo é obrigatório quando o tipo de documento é informado."
		}
	}

	return erros
}

const formatoData = "2006-01-02"

func parseData(v any) (time.Time, bool) {
	s, ok := v.(string)
	if !ok || s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(formatoData, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// AplicarAjustes altera o payload antes da persistência: preenche o prazo
// a partir da emissão e zera valores cuja flag é NAO
func AplicarAjustes(payload map[string]any) {
	if emissao, ok := payload["data_emissao_os"]; ok {
		if data, valida := parseData(emissao); valida {
			if !campoPreenchido(payload, "prazo_execucao_servico") {
				payload["prazo_execucao_servico"] = data.AddDate(0, 0, 30).Format(formatoData)
			}
		} else if !campoPreenchido(payload, "prazo_execucao_servico") {
			// emissão limpa explicitamente arrasta o prazo junto
			payload["prazo_execucao_servico"] = nil
		}
	}

	for _, par := range paresValor {
		if texto(payload, par.Flag) == NaoValor {
			payload[par.Valor] = 0
		}
	}
}
