package registroos

import (
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/RegistroOS/api-controle/internal/auth"
	"github.com/RegistroOS/api-controle/internal/notificacao"
	"github.com/RegistroOS/api-controle/internal/utils"
)

const (
	StatusOSConcluida = "CONCLUIDA"
	StatusOSCancelada = "CANCELADA"
)

type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Tolerante  bool
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
		// Em modo tolerante, falha de persistência de item filho é logada
		// e o restante da gravação segue
		Tolerante: os.Getenv("RECONCILIACAO_TOLERANTE") == "true",
	}
}

func filtrosDaQuery(r *http.Request) Filtros {
	q := r.URL.Query()
	f := Filtros{
		NomeCliente: q.Get("nome_cliente"),
		StatusOS:    q.Get("status_os"),
	}
	if v := q.Get("numero_os"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 32); err == nil {
			f.NumeroOS = uint(n)
		}
	}
	if v := q.Get("data_inicio"); v != "" {
		if t, err := time.Parse(formatoData, v); err == nil {
			f.DataInicio = &t
		}
	}
	if v := q.Get("data_fim"); v != "" {
		if t, err := time.Parse(formatoData, v); err == nil {
			f.DataFim = &t
		}
	}
	return f
}

// Listar devolve os registros visíveis para o papel do chamador
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	usuarioID := auth.UserIDDoContexto(r.Context())
	grupos := auth.GruposDoContexto(r.Context())

	registros, err := h.Repository.ListarVisiveis(h.DB, usuarioID, grupos, filtrosDaQuery(r))
	if err != nil {
		logrus.WithError(err).Error("erro ao listar registros")
		utils.RespondErro(w, http.StatusInternalServerError, "Erro ao listar registros")
		return
	}
	utils.RespondJSON(w, http.StatusOK, ParaResumos(registros))
}

// Buscar devolve o registro completo. Registro fora do escopo do chamador
// responde 404, não 403.
func (h *Handler) Buscar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "id inválido")
		return
	}
	registro, err := h.Repository.BuscarVisivel(h.DB, uint(id), auth.UserIDDoContexto(r.Context()), auth.GruposDoContexto(r.Context()))
	if err != nil {
		utils.RespondErro(w, http.StatusNotFound, "Registro não encontrado")
		return
	}
	utils.RespondJSON(w, http.StatusOK, registro)
}

// Criar valida o payload, grava a OS com as coleções filhas e recalcula
// os totais, tudo na mesma transação
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}

	usuarioID := auth.UserIDDoContexto(r.Context())
	grupos := auth.GruposDoContexto(r.Context())

	// O preenchimento automático do prazo roda antes da checagem de
	// obrigatoriedade, então emissão sem prazo não reprova
	AplicarAjustes(payload)
	if erros := Validar(grupos, payload, true); len(erros) > 0 {
		utils.RespondErros(w, http.StatusBadRequest, erros)
		return
	}

	registro, err := h.Repository.Criar(h.DB, payload, usuarioID, h.Tolerante)
	if err != nil {
		logrus.WithError(err).Error("erro ao criar registro")
		utils.RespondErro(w, http.StatusInternalServerError, "Erro ao criar registro")
		return
	}

	logrus.WithFields(logrus.Fields{
		"registro_id": registro.ID,
		"numero_os":   registro.NumeroOS,
		"usuario_id":  usuarioID,
	}).Info("registro criado")

	h.dispararEventos(registro, "", payload)
	utils.RespondJSON(w, http.StatusCreated, registro)
}

// Atualizar aplica escalares e reconciliação das coleções filhas
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "id inválido")
		return
	}

	usuarioID := auth.UserIDDoContexto(r.Context())
	grupos := auth.GruposDoContexto(r.Context())

	registro, err := h.Repository.BuscarVisivel(h.DB, uint(id), usuarioID, grupos)
	if err != nil {
		utils.RespondErro(w, http.StatusNotFound, "Registro não encontrado")
		return
	}

	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}

	AplicarAjustes(payload)
	if erros := Validar(grupos, payload, false); len(erros) > 0 {
		utils.RespondErros(w, http.StatusBadRequest, erros)
		return
	}

	statusAnterior := registro.StatusOS

	registro, err = h.Repository.Atualizar(h.DB, registro, payload, h.Tolerante)
	if err != nil {
		logrus.WithError(err).WithField("registro_id", id).Error("erro ao atualizar registro")
		utils.RespondErro(w, http.StatusInternalServerError, "Erro ao atualizar registro")
		return
	}

	h.dispararEventos(registro, statusAnterior, payload)
	utils.RespondJSON(w, http.StatusOK, registro)
}

// Deletar remove a OS e todas as filhas. Restrito ao administrador.
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	if !auth.IsAdmin(auth.GruposDoContexto(r.Context())) {
		utils.RespondErro(w, http.StatusForbidden, "Acesso negado. Apenas administradores podem excluir registros.")
		return
	}
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "id inválido")
		return
	}
	if _, err := h.Repository.BuscarPorID(h.DB, uint(id)); err != nil {
		utils.RespondErro(w, http.StatusNotFound, "Registro não encontrado")
		return
	}
	if err := h.Repository.Deletar(h.DB, uint(id)); err != nil {
		logrus.WithError(err).WithField("registro_id", id).Error("erro ao excluir registro")
		utils.RespondErro(w, http.StatusInternalServerError, "Erro ao excluir registro")
		return
	}
	logrus.WithField("registro_id", id).Info("registro excluído")
	w.WriteHeader(http.StatusNoContent)
}

// Recalcular refaz os totais derivados do registro sob demanda
func (h *Handler) Recalcular(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "id inválido")
		return
	}
	registro, err := h.Repository.BuscarVisivel(h.DB, uint(id), auth.UserIDDoContexto(r.Context()), auth.GruposDoContexto(r.Context()))
	if err != nil {
		utils.RespondErro(w, http.StatusNotFound, "Registro não encontrado")
		return
	}
	if err := h.Repository.RecalcularTotais(h.DB, registro); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "Erro ao recalcular totais")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"soma_valores":       registro.SomaValores,
		"soma_notas_fiscais": registro.SomaNotasFiscais,
		"saldo_final":        registro.SaldoFinal,
	})
}

// PreviewValores calcula os totais de um payload sem persistir nada
func (h *Handler) PreviewValores(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}

	soma := decimal.Zero
	for _, par := range paresValor {
		if texto(payload, par.Flag) != SimValor {
			continue
		}
		switch v := payload[par.Valor].(type) {
		case float64:
			soma = soma.Add(decimal.NewFromFloat(v))
		case string:
			if d, err := decimal.NewFromString(v); err == nil {
				soma = soma.Add(d)
			}
		}
	}

	somaNotas := decimal.Zero
	for _, nota := range colecaoSubmetida(payload, "notas_fiscais_venda") {
		switch v := nota["preco_nota_fiscal_venda"].(type) {
		case float64:
			somaNotas = somaNotas.Add(decimal.NewFromFloat(v))
		case string:
			if d, err := decimal.NewFromString(v); err == nil {
				somaNotas = somaNotas.Add(d)
			}
		}
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"soma_valores":       soma,
		"soma_notas_fiscais": somaNotas,
		"saldo_final":        somaNotas.Sub(soma),
	})
}

func payloadEvento(registro *RegistroOS) map[string]any {
	return map[string]any{
		"registro_id":  registro.ID,
		"os_id":        registro.OSID.String(),
		"numero_os":    registro.NumeroOS,
		"nome_cliente": registro.NomeCliente,
		"status_os":    registro.StatusOS,
		"saldo_final":  registro.SaldoFinal,
	}
}

// dispararEventos compara o status anterior com o atual e dispara os
// webhooks de transição, mais o evento de material entregue quando o
// payload trouxe materiais nesse status
func (h *Handler) dispararEventos(registro *RegistroOS, statusAnterior string, payload map[string]any) {
	if registro.StatusOS != statusAnterior {
		switch registro.StatusOS {
		case StatusOSAprovada:
			notificacao.Disparar(notificacao.EventoOSAprovada, payloadEvento(registro))
		case StatusOSConcluida:
			notificacao.Disparar(notificacao.EventoOSConcluida, payloadEvento(registro))
		case StatusOSCancelada:
			notificacao.Disparar(notificacao.EventoOSCancelada, payloadEvento(registro))
		}
	}

	for _, material := range colecaoSubmetida(payload, "materiais") {
		if texto(material, "status_material") != StatusMaterialEntregue {
			continue
		}
		evento := payloadEvento(registro)
		evento["tipo_material"] = texto(material, "tipo_material")
		evento["responsavel_material"] = texto(material, "responsavel_material")
		notificacao.Disparar(notificacao.EventoMaterialAprovado, evento)
	}
}
