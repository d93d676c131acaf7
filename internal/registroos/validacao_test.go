package registroos

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RegistroOS/api-controle/internal/auth"
)

func payloadBasicoCompleto() map[string]any {
	p := map[string]any{
		"data_solicitacao_os":                   "2026-01-10",
		"data_emissao_os":                       "2026-01-12",
		"nome_cliente":                          "Petrobras",
		"numero_contrato":                       "CT-2026-001",
		"unidade_cliente":                       "REDUC",
		"setor_unidade_cliente":                 "Caldeiraria",
		"prazo_execucao_servico":                "2026-02-11",
		"status_regime_os":                      "NORMAL",
		"nome_diligenciador_os":                 "Carlos Silva",
		"nome_solicitante_cliente":              "Maria Souza",
		"nome_responsavel_aprovacao_os_cliente": "João Pereira",
		"nome_responsavel_execucao_servico":     "Pedro Lima",
		"id_demanda":                            "DEM-123",
		"descricao_resumida":                    "Fabricação de suportes",
		"existe_orcamento":                      "NAO",
		"status_os":                             "EM ANDAMENTO",
		"status_levantamento":                   "PENDENTE",
		"status_producao":                       "PENDENTE",
		"opcoes_dms":                            "NAO",
		"opcoes_bms":                            "NAO",
		"opcoes_frs":                            "NAO",
	}
	return p
}

func TestValidarAdminSemCampoObrigatorio(t *testing.T) {
	erros := Validar([]string{auth.GrupoAdministrador}, map[string]any{}, true)
	assert.Empty(t, erros)

	erros = Validar([]string{auth.GrupoSuperior}, map[string]any{"status_os": StatusOSAprovada}, true)
	assert.Empty(t, erros)
}

func TestValidarBasicoCriacaoCompleta(t *testing.T) {
	erros := Validar([]string{auth.GrupoBasico}, payloadBasicoCompleto(), true)
	assert.Empty(t, erros)
}

func TestValidarBasicoCriacaoIncompleta(t *testing.T) {
	p := payloadBasicoCompleto()
	delete(p, "nome_cliente")
	delete(p, "id_demanda")

	erros := Validar([]string{auth.GrupoBasico}, p, true)
	assert.Equal(t, msgObrigatorio, erros["nome_cliente"])
	assert.Equal(t, msgObrigatorio, erros["id_demanda"])
}

func TestValidarOrcamentoSimExigeCamposExtras(t *testing.T) {
	p := payloadBasicoCompleto()
	p["existe_orcamento"] = SimValor

	erros := Validar([]string{auth.GrupoBasico}, p, true)
	require.NotEmpty(t, erros)
	assert.Equal(t, msgObrigatorio, erros["peso_fabricacao"])
	assert.Equal(t, msgObrigatorio, erros["metro_quadrado_pintura_revestimento"])
	assert.Equal(t, msgObrigatorio, erros["havera_valor_hh"])
	assert.Equal(t, msgObrigatorio, erros["havera_valor_servico_terceiros"])
}

func TestValidarParFlagSimExigeValor(t *testing.T) {
	p := map[string]any{"havera_valor_fabricacao": SimValor}

	erros := Validar([]string{auth.GrupoBasico}, p, false)
	assert.Equal(t, msgObrigatorio, erros["valor_fabricacao"])

	p["valor_fabricacao"] = 1500.50
	erros = Validar([]string{auth.GrupoBasico}, p, false)
	assert.NotContains(t, erros, "valor_fabricacao")
}

func TestValidarUpdateApenasCamposSeguros(t *testing.T) {
	p := map[string]any{"observacao": "apenas uma nota"}
	erros := Validar([]string{auth.GrupoBasico}, p, false)
	assert.Empty(t, erros)

	p = map[string]any{}
	erros = Validar([]string{auth.GrupoBasico}, p, false)
	assert.Empty(t, erros)
}

func TestValidarStatusAprovadaExigeAprovacao(t *testing.T) {
	p := map[string]any{"status_os": StatusOSAprovada}

	erros := Validar([]string{auth.GrupoBasico}, p, false)
	for _, campo := range obrigatoriosAprovacao {
		assert.Equal(t, msgObrigatorio, erros[campo], campo)
	}
	assert.Contains(t, erros, "ordens_cliente")
	assert.Contains(t, erros, "documentos_entrada")
}

func TestValidarQualidadeExigeControles(t *testing.T) {
	erros := Validar([]string{auth.GrupoQualidade}, map[string]any{"status_os": "EM ANDAMENTO"}, false)
	assert.Contains(t, erros, "controles_qualidade")

	p := map[string]any{
		"controles_qualidade": []any{
			map[string]any{
				"tipo_cq":           "DIMENSIONAL",
				"opcoes_espec_cq":   "N-133",
				"nivel_inspecao_cq": "II",
				"tipo_ensaio_cq":    "VISUAL",
				"percentual_cq":     float64(100),
				"quantidade_cq":     float64(10),
				"tamanho_cq":        "10",
				"texto_tamanho_cq":  "dez",
			},
		},
	}
	erros = Validar([]string{auth.GrupoQualidade}, p, false)
	assert.Empty(t, erros)
}

func TestValidarQualidadeControleIncompleto(t *testing.T) {
	p := map[string]any{
		"controles_qualidade": []any{
			map[string]any{"tipo_cq": "DIMENSIONAL"},
		},
	}
	erros := Validar([]string{auth.GrupoQualidade}, p, false)
	assert.Contains(t, erros, "controles_qualidade[0].percentual_cq")
	assert.Contains(t, erros, "controles_qualidade[0].texto_tamanho_cq")
}

func TestValidarLevantamentoProducaoConcluidos(t *testing.T) {
	p := map[string]any{
		"status_levantamento": StatusEtapaConcluido,
		"status_producao":     StatusEtapaConcluido,
	}
	erros := Validar([]string{auth.GrupoBasico}, p, false)
	assert.Contains(t, erros, "levantamentos")
}

func TestValidarOpcaoDmsSimExigeColecao(t *testing.T) {
	p := map[string]any{"opcoes_dms": SimValor}
	erros := Validar([]string{auth.GrupoBasico}, p, false)
	assert.Contains(t, erros, "dms")

	p["dms"] = []any{map[string]any{"numero_dms": "DMS-1", "data_aprovacao_dms": "2026-01-10"}}
	erros = Validar([]string{auth.GrupoBasico}, p, false)
	assert.NotContains(t, erros, "dms")
}

func TestValidarDocumentoSolicitacaoConsistencia(t *testing.T) {
	p := map[string]any{
		"documentos_solicitacao": []any{
			map[string]any{"tipo_documento_solicitacao": "RM"},
		},
	}
	erros := Validar([]string{auth.GrupoBasico}, p, false)
	assert.Contains(t, erros, "documentos_solicitacao[0].documento_solicitacao")
}

func TestAplicarAjustesPrazoPadrao(t *testing.T) {
	p := map[string]any{"data_emissao_os": "2026-01-10"}
	AplicarAjustes(p)
	assert.Equal(t, "2026-02-09", p["prazo_execucao_servico"])

	// prazo informado não é sobrescrito
	p = map[string]any{"data_emissao_os": "2026-01-10", "prazo_execucao_servico": "2026-03-01"}
	AplicarAjustes(p)
	assert.Equal(t, "2026-03-01", p["prazo_execucao_servico"])
}

func TestAplicarAjustesEmissaoLimpaArrastaPrazo(t *testing.T) {
	p := map[string]any{"data_emissao_os": nil}
	AplicarAjustes(p)
	v, ok := p["prazo_execucao_servico"]
	assert.True(t, ok)
	assert.Nil(t, v)
}

func TestAplicarAjustesFlagNaoZeraValor(t *testing.T) {
	p := map[string]any{
		"havera_valor_fabricacao": NaoValor,
		"valor_fabricacao":        9999.99,
	}
	AplicarAjustes(p)
	assert.Equal(t, 0, p["valor_fabricacao"])
}
