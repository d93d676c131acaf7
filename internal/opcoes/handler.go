package opcoes

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/RegistroOS/api-controle/internal/utils"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Handler encapsula DB e repository
type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
	}
}

// Listar devolve um handler que lista um único modelo de select.
// Usado para as rotas simples (/tipos-cq, /status-os, ...).
func (h *Handler) Listar(modelo string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itens, err := h.Repository.ListarModelo(h.DB, modelo)
		if err != nil {
			utils.RespondErro(w, http.StatusInternalServerError, "Erro ao listar opções")
			return
		}
		utils.RespondJSON(w, http.StatusOK, itens)
	}
}

// Opcoes devolve todas as listas de referência de uma vez
func (h *Handler) Opcoes(w http.ResponseWriter, r *http.Request) {
	tudo, err := h.Repository.ListarTudo(h.DB)
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "Erro ao listar opções")
		return
	}
	utils.RespondJSON(w, http.StatusOK, tudo)
}

// DadosCliente devolve contratos, unidades, setores, aprovadores,
// solicitantes e opções de especificação ativos do cliente informado
func (h *Handler) DadosCliente(w http.ResponseWriter, r *http.Request) {
	nome := mux.Vars(r)["nome"]
	cliente, err := h.Repository.BuscarClientePorNome(h.DB, nome)
	if err != nil {
		utils.RespondErro(w, http.StatusNotFound, "Cliente não encontrado")
		return
	}
	dados, err := h.Repository.DadosCliente(h.DB, cliente.ID)
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "Erro ao buscar dados do cliente")
		return
	}
	dados["cliente"] = cliente
	utils.RespondJSON(w, http.StatusOK, dados)
}

// --- Gerenciamento de selects (Administrador e Superior) ---

type itemSelectRequest struct {
	Modelo string `json:"modelo"`
	ID     uint   `json:"id"`
	Valor  string `json:"valor"`
}

// GerenciarSelects lista todos os selects gerenciáveis
func (h *Handler) GerenciarSelects(w http.ResponseWriter, r *http.Request) {
	tudo, err := h.Repository.ListarTudo(h.DB)
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "Erro ao listar selects")
		return
	}
	utils.RespondJSON(w, http.StatusOK, tudo)
}

// AdicionarItemSelect cria um item no select informado
func (h *Handler) AdicionarItemSelect(w http.ResponseWriter, r *http.Request) {
	var req itemSelectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}
	if req.Modelo == "" || req.Valor == "" {
		utils.RespondErro(w, http.StatusBadRequest, "Modelo e valor são obrigatórios")
		return
	}
	item, err := h.Repository.AdicionarItem(h.DB, req.Modelo, req.Valor)
	if err != nil {
		if errors.Is(err, ErrModeloDesconhecido) {
			utils.RespondErro(w, http.StatusBadRequest, "Modelo desconhecido: "+req.Modelo)
			return
		}
		utils.RespondErro(w, http.StatusBadRequest, err.Error())
		return
	}
	logrus.WithFields(logrus.Fields{"modelo": req.Modelo, "valor": req.Valor}).Info("item de select adicionado")
	utils.RespondJSON(w, http.StatusCreated, item)
}

// EditarItemSelect altera o valor de um item existente
func (h *Handler) EditarItemSelect(w http.ResponseWriter, r *http.Request) {
	var req itemSelectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}
	if err := h.Repository.EditarItem(h.DB, req.Modelo, req.ID, req.Valor); err != nil {
		switch {
		case errors.Is(err, ErrModeloDesconhecido):
			utils.RespondErro(w, http.StatusBadRequest, "Modelo desconhecido: "+req.Modelo)
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.RespondErro(w, http.StatusNotFound, "Item não encontrado")
		default:
			utils.RespondErro(w, http.StatusBadRequest, err.Error())
		}
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "Item atualizado com sucesso"})
}

// ExcluirItemSelect remove um item de select
func (h *Handler) ExcluirItemSelect(w http.ResponseWriter, r *http.Request) {
	var req itemSelectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}
	if err := h.Repository.ExcluirItem(h.DB, req.Modelo, req.ID); err != nil {
		switch {
		case errors.Is(err, ErrModeloDesconhecido):
			utils.RespondErro(w, http.StatusBadRequest, "Modelo desconhecido: "+req.Modelo)
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.RespondErro(w, http.StatusNotFound, "Item não encontrado")
		default:
			utils.RespondErro(w, http.StatusInternalServerError, "Erro ao excluir item")
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Cadastros vinculados a cliente ---

type cadastroClienteRequest struct {
	ClienteID uint   `json:"cliente_id"`
	Nome      string `json:"nome"`
	Numero    string `json:"numero"`
	Descricao string `json:"descricao"`
}

type recursoCliente struct {
	lista     func(db *gorm.DB, clienteID uint) (any, error)
	criar     func(db *gorm.DB, req cadastroClienteRequest) (any, error)
	atualizar func(db *gorm.DB, id uint, req cadastroClienteRequest) error
	excluir   func(db *gorm.DB, id uint) error
}

func listaEscopo[T any](db *gorm.DB, clienteID uint) (any, error) {
	var itens []T
	q := db.Where("ativo = ?", true)
	if clienteID > 0 {
		q = q.Where("cliente_id = ?", clienteID)
	}
	err := q.Order("id").Find(&itens).Error
	return itens, err
}

func desativa[T any](db *gorm.DB, id uint) error {
	res := db.Model(new(T)).Where("id = ?", id).Update("ativo", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func atualizaEscopo[T any](db *gorm.DB, id uint, campos map[string]any) error {
	res := db.Model(new(T)).Where("id = ?", id).Updates(campos)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

var recursosCliente = map[string]recursoCliente{
	"contratos": {
		lista: listaEscopo[Contrato],
		criar: func(db *gorm.DB, req cadastroClienteRequest) (any, error) {
			c := Contrato{ClienteID: req.ClienteID, Numero: req.Numero, Descricao: req.Descricao, Ativo: true}
			return &c, db.Create(&c).Error
		},
		atualizar: func(db *gorm.DB, id uint, req cadastroClienteRequest) error {
			return atualizaEscopo[Contrato](db, id, map[string]any{"numero": req.Numero, "descricao": req.Descricao})
		},
		excluir: desativa[Contrato],
	},
	"unidades-cliente": {
		lista: listaEscopo[UnidadeCliente],
		criar: func(db *gorm.DB, req cadastroClienteRequest) (any, error) {
			u := UnidadeCliente{ClienteID: req.ClienteID, Nome: req.Nome, Descricao: req.Descricao, Ativo: true}
			return &u, db.Create(&u).Error
		},
		atualizar: func(db *gorm.DB, id uint, req cadastroClienteRequest) error {
			return atualizaEscopo[UnidadeCliente](db, id, map[string]any{"nome": req.Nome, "descricao": req.Descricao})
		},
		excluir: desativa[UnidadeCliente],
	},
	"setores-unidade-cliente": {
		lista: listaEscopo[SetorUnidadeCliente],
		criar: func(db *gorm.DB, req cadastroClienteRequest) (any, error) {
			s := SetorUnidadeCliente{ClienteID: req.ClienteID, Nome: req.Nome, Descricao: req.Descricao, Ativo: true}
			return &s, db.Create(&s).Error
		},
		atualizar: func(db *gorm.DB, id uint, req cadastroClienteRequest) error {
			return atualizaEscopo[SetorUnidadeCliente](db, id, map[string]any{"nome": req.Nome, "descricao": req.Descricao})
		},
		excluir: desativa[SetorUnidadeCliente],
	},
	"aprovadores-cliente": {
		lista: listaEscopo[AprovadorCliente],
		criar: func(db *gorm.DB, req cadastroClienteRequest) (any, error) {
			a := AprovadorCliente{ClienteID: req.ClienteID, Nome: req.Nome, Descricao: req.Descricao, Ativo: true}
			return &a, db.Create(&a).Error
		},
		atualizar: func(db *gorm.DB, id uint, req cadastroClienteRequest) error {
			return atualizaEscopo[AprovadorCliente](db, id, map[string]any{"nome": req.Nome, "descricao": req.Descricao})
		},
		excluir: desativa[AprovadorCliente],
	},
	"solicitantes-cliente": {
		lista: listaEscopo[SolicitanteCliente],
		criar: func(db *gorm.DB, req cadastroClienteRequest) (any, error) {
			s := SolicitanteCliente{ClienteID: req.ClienteID, Nome: req.Nome, Descricao: req.Descricao, Ativo: true}
			return &s, db.Create(&s).Error
		},
		atualizar: func(db *gorm.DB, id uint, req cadastroClienteRequest) error {
			return atualizaEscopo[SolicitanteCliente](db, id, map[string]any{"nome": req.Nome, "descricao": req.Descricao})
		},
		excluir: desativa[SolicitanteCliente],
	},
	"opcoes-espec-cq": {
		lista: listaEscopo[OpcaoEspecCQ],
		criar: func(db *gorm.DB, req cadastroClienteRequest) (any, error) {
			o := OpcaoEspecCQ{ClienteID: req.ClienteID, Nome: req.Nome, Descricao: req.Descricao, Ativo: true}
			return &o, db.Create(&o).Error
		},
		atualizar: func(db *gorm.DB, id uint, req cadastroClienteRequest) error {
			return atualizaEscopo[OpcaoEspecCQ](db, id, map[string]any{"nome": req.Nome, "descricao": req.Descricao})
		},
		excluir: desativa[OpcaoEspecCQ],
	},
}

// ListarCadastros lista um cadastro vinculado a cliente, com filtro ?cliente_id=
func (h *Handler) ListarCadastros(recurso string) http.HandlerFunc {
	rc := recursosCliente[recurso]
	return func(w http.ResponseWriter, r *http.Request) {
		var clienteID uint
		if v := r.URL.Query().Get("cliente_id"); v != "" {
			id, err := strconv.ParseUint(v, 10, 32)
			if err != nil {
				utils.RespondErro(w, http.StatusBadRequest, "cliente_id inválido")
				return
			}
			clienteID = uint(id)
		}
		itens, err := rc.lista(h.DB, clienteID)
		if err != nil {
			utils.RespondErro(w, http.StatusInternalServerError, "Erro ao listar cadastros")
			return
		}
		utils.RespondJSON(w, http.StatusOK, itens)
	}
}

// CriarCadastro cria um cadastro vinculado a cliente
func (h *Handler) CriarCadastro(recurso string) http.HandlerFunc {
	rc := recursosCliente[recurso]
	return func(w http.ResponseWriter, r *http.Request) {
		var req cadastroClienteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
			return
		}
		if req.ClienteID == 0 {
			utils.RespondErro(w, http.StatusBadRequest, "cliente_id é obrigatório")
			return
		}
		item, err := rc.criar(h.DB, req)
		if err != nil {
			utils.RespondErro(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.RespondJSON(w, http.StatusCreated, item)
	}
}

// AtualizarCadastro altera um cadastro vinculado a cliente
func (h *Handler) AtualizarCadastro(recurso string) http.HandlerFunc {
	rc := recursosCliente[recurso]
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
		if err != nil {
			utils.RespondErro(w, http.StatusBadRequest, "id inválido")
			return
		}
		var req cadastroClienteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
			return
		}
		if err := rc.atualizar(h.DB, uint(id), req); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondErro(w, http.StatusNotFound, "Cadastro não encontrado")
				return
			}
			utils.RespondErro(w, http.StatusInternalServerError, "Erro ao atualizar cadastro")
			return
		}
		utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "Cadastro atualizado com sucesso"})
	}
}

// ExcluirCadastro desativa um cadastro (exclusão lógica)
func (h *Handler) ExcluirCadastro(recurso string) http.HandlerFunc {
	rc := recursosCliente[recurso]
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
		if err != nil {
			utils.RespondErro(w, http.StatusBadRequest, "id inválido")
			return
		}
		if err := rc.excluir(h.DB, uint(id)); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondErro(w, http.StatusNotFound, "Cadastro não encontrado")
				return
			}
			utils.RespondErro(w, http.StatusInternalServerError, "Erro ao excluir cadastro")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
