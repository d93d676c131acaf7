package relatorio

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/RegistroOS/api-controle/internal/auth"
	"github.com/RegistroOS/api-controle/internal/registroos"
	"github.com/RegistroOS/api-controle/internal/utils"
)

type Handler struct {
	DB        *gorm.DB
	Registros registroos.Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:        db,
		Registros: registroos.NewRepository(),
	}
}

func filtrosDaQuery(r *http.Request) registroos.Filtros {
	q := r.URL.Query()
	f := registroos.Filtros{
		NomeCliente: q.Get("cliente"),
		StatusOS:    q.Get("status_os"),
	}
	if v := q.Get("data_inicio"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			f.DataInicio = &t
		}
	}
	if v := q.Get("data_fim"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			f.DataFim = &t
		}
	}
	return f
}

// idsSelecionados interpreta ?registros_selecionados=1,2,3
func idsSelecionados(r *http.Request) map[uint]bool {
	v := r.URL.Query().Get("registros_selecionados")
	if v == "" {
		return nil
	}
	ids := map[uint]bool{}
	for _, parte := range strings.Split(v, ",") {
		if id, err := strconv.ParseUint(strings.TrimSpace(parte), 10, 32); err == nil {
			ids[uint(id)] = true
		}
	}
	return ids
}

func (h *Handler) buscarParaRelatorio(r *http.Request) ([]registroos.RegistroOS, error) {
	registros, err := h.Registros.ListarVisiveis(
		h.DB,
		auth.UserIDDoContexto(r.Context()),
		auth.GruposDoContexto(r.Context()),
		filtrosDaQuery(r),
	)
	if err != nil {
		return nil, err
	}
	selecionados := idsSelecionados(r)
	if selecionados == nil {
		return registros, nil
	}
	filtrados := registros[:0]
	for _, reg := range registros {
		if selecionados[reg.ID] {
			filtrados = append(filtrados, reg)
		}
	}
	return filtrados, nil
}

// RegistrosPaginados lista os registros do relatório com paginação simples
func (h *Handler) RegistrosPaginados(w http.ResponseWriter, r *http.Request) {
	if !auth.IsAdminOuSuperior(auth.GruposDoContexto(r.Context())) {
		utils.RespondErro(w, http.StatusForbidden, "Acesso negado. Apenas administradores e superiores podem acessar relatórios.")
		return
	}
	registros, err := h.buscarParaRelatorio(r)
	if err != nil {
		logrus.WithError(err).Error("erro ao montar relatório")
		utils.RespondErro(w, http.StatusInternalServerError, "Erro ao montar relatório")
		return
	}

	pagina, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if pagina < 1 {
		pagina = 1
	}
	tamanho, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	if tamanho < 1 || tamanho > 100 {
		tamanho = 20
	}

	inicio := (pagina - 1) * tamanho
	if inicio > len(registros) {
		inicio = len(registros)
	}
	fim := inicio + tamanho
	if fim > len(registros) {
		fim = len(registros)
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"count":     len(registros),
		"page":      pagina,
		"page_size": tamanho,
		"results":   registroos.ParaResumos(registros[inicio:fim]),
	})
}

// ExportarExcel gera e transmite a planilha dos registros filtrados
func (h *Handler) ExportarExcel(w http.ResponseWriter, r *http.Request) {
	if !auth.IsAdminOuSuperior(auth.GruposDoContexto(r.Context())) {
		utils.RespondErro(w, http.StatusForbidden, "Acesso negado. Apenas administradores e superiores podem acessar relatórios.")
		return
	}
	registros, err := h.buscarParaRelatorio(r)
	if err != nil {
		logrus.WithError(err).Error("erro ao exportar excel")
		utils.RespondErro(w, http.StatusInternalServerError, "Erro ao gerar relatório")
		return
	}
	if len(registros) == 0 {
		utils.RespondErro(w, http.StatusNotFound, "Nenhum registro encontrado para os filtros informados")
		return
	}

	planilha, err := GerarExcel(registros)
	if err != nil {
		logrus.WithError(err).Error("erro ao gerar planilha")
		utils.RespondErro(w, http.StatusInternalServerError, "Erro ao gerar relatório")
		return
	}

	nome := fmt.Sprintf("relatorio_os_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, nome))
	if err := planilha.Write(w); err != nil {
		logrus.WithError(err).Error("erro ao transmitir planilha")
	}
}

// ExportarPDF gera e transmite o relatório em PDF
func (h *Handler) ExportarPDF(w http.ResponseWriter, r *http.Request) {
	if !auth.IsAdminOuSuperior(auth.GruposDoContexto(r.Context())) {
		utils.RespondErro(w, http.StatusForbidden, "Acesso negado. Apenas administradores e superiores podem acessar relatórios.")
		return
	}
	registros, err := h.buscarParaRelatorio(r)
	if err != nil {
		logrus.WithError(err).Error("erro ao exportar pdf")
		utils.RespondErro(w, http.StatusInternalServerError, "Erro ao gerar relatório")
		return
	}
	if len(registros) == 0 {
		utils.RespondErro(w, http.StatusNotFound, "Nenhum registro encontrado para os filtros informados")
		return
	}

	pdf := GerarPDF(registros)
	nome := fmt.Sprintf("relatorio_os_%s.pdf", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, nome))
	if err := pdf.Output(w); err != nil {
		logrus.WithError(err).Error("erro ao transmitir pdf")
	}
}

// Estatisticas resume os registros visíveis por status e totais financeiros
func (h *Handler) Estatisticas(w http.ResponseWriter, r *http.Request) {
	registros, err := h.Registros.ListarVisiveis(
		h.DB,
		auth.UserIDDoContexto(r.Context()),
		auth.GruposDoContexto(r.Context()),
		registroos.Filtros{},
	)
	if err != nil {
		logrus.WithError(err).Error("erro ao montar estatísticas")
		utils.RespondErro(w, http.StatusInternalServerError, "Erro ao montar estatísticas")
		return
	}

	porStatusOS := map[string]int{}
	porLevantamento := map[string]int{}
	porProducao := map[string]int{}
	somaValores := 0.0
	somaNotas := 0.0
	saldo := 0.0
	for _, reg := range registros {
		porStatusOS[reg.StatusOS]++
		porLevantamento[reg.StatusLevantamento]++
		porProducao[reg.StatusProducao]++
		somaValores += valorFloat(reg.SomaValores)
		somaNotas += valorFloat(reg.SomaNotasFiscais)
		saldo += valorFloat(reg.SaldoFinal)
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"total_registros":         len(registros),
		"por_status_os":           porStatusOS,
		"por_status_levantamento": porLevantamento,
		"por_status_producao":     porProducao,
		"soma_valores":            somaValores,
		"soma_notas_fiscais":      somaNotas,
		"saldo_final":             saldo,
	})
}
