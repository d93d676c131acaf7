package usuario

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/RegistroOS/api-controle/internal/auth"
	"github.com/RegistroOS/api-controle/internal/utils"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type criarUsuarioRequest struct {
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	Password  string   `json:"password"`
	Nome      string   `json:"nome"`
	Sobrenome string   `json:"sobrenome"`
	Grupos    []string `json:"grupos"`
}

type alterarSenhaRequest struct {
	SenhaAtual     string `json:"senha_atual"`
	NovaSenha      string `json:"nova_senha"`
	ConfirmarSenha string `json:"confirmar_senha"`
}

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

// Login valida credenciais e emite o par de tokens.
// Contas sem grupo são rejeitadas: sem grupo não há permissão alguma no sistema.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}
	if req.Username == "" || req.Password == "" {
		utils.RespondErro(w, http.StatusBadRequest, "Username e password são obrigatórios")
		return
	}

	user, err := h.Repository.BuscarPorUsername(h.DB, req.Username)
	if err != nil {
		logrus.WithField("username", req.Username).Warn("tentativa de login com usuário inexistente")
		utils.RespondErro(w, http.StatusUnauthorized, "Usuário não encontrado")
		return
	}

	if !utils.CheckSenha(user.Senha, req.Password) {
		logrus.WithField("username", req.Username).Warn("senha incorreta")
		utils.RespondErro(w, http.StatusUnauthorized, "Senha incorreta")
		return
	}

	if !user.Ativo {
		utils.RespondErro(w, http.StatusUnauthorized, "Conta de usuário desativada")
		return
	}

	grupos := user.NomesGrupos()
	if len(grupos) == 0 {
		logrus.WithField("username", req.Username).Warn("usuário sem grupos de permissão")
		utils.RespondErro(w, http.StatusUnauthorized, "Usuário não possui permissão para acessar o sistema")
		return
	}

	access, err := auth.IssueTokensOnLogin(h.DB, w, user.ID, user.Username, grupos)
	if err != nil {
		logrus.WithError(err).Error("falha ao emitir tokens")
		utils.RespondErro(w, http.StatusInternalServerError, "Erro interno do servidor")
		return
	}

	logrus.WithField("username", user.Username).Info("login realizado com sucesso")
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"access": access,
		"user":   ParaDTO(user),
		"groups": grupos,
	})
}

// Perfil devolve o usuário logado, seus grupos e permissões derivadas
func (h *Handler) Perfil(w http.ResponseWriter, r *http.Request) {
	user, err := h.Repository.BuscarPorID(h.DB, auth.UserIDDoContexto(r.Context()))
	if err != nil {
		utils.RespondErro(w, http.StatusNotFound, "Usuário não encontrado")
		return
	}
	grupos := user.NomesGrupos()
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"user":   ParaDTO(user),
		"groups": grupos,
		"permissions": map[string]bool{
			"can_delete":   auth.IsAdmin(grupos),
			"can_edit_all": auth.IsAdminOuSuperior(grupos),
			"is_admin":     auth.IsAdmin(grupos),
			"is_superior":  auth.TemGrupo(grupos, auth.GrupoSuperior),
			"is_qualidade": auth.TemGrupo(grupos, auth.GrupoQualidade),
			"is_basico":    auth.TemGrupo(grupos, auth.GrupoBasico),
		},
	})
}

// AlterarSenha permite ao usuário trocar a própria senha
func (h *Handler) AlterarSenha(w http.ResponseWriter, r *http.Request) {
	var req alterarSenhaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}
	if req.SenhaAtual == "" || req.NovaSenha == "" || req.ConfirmarSenha == "" {
		utils.RespondErro(w, http.StatusBadRequest, "Todos os campos são obrigatórios")
		return
	}
	if req.NovaSenha != req.ConfirmarSenha {
		utils.RespondErro(w, http.StatusBadRequest, "Nova senha e confirmação não coincidem")
		return
	}
	if len(req.NovaSenha) < 8 {
		utils.RespondErro(w, http.StatusBadRequest, "A nova senha deve ter pelo menos 8 caracteres")
		return
	}

	user, err := h.Repository.BuscarPorID(h.DB, auth.UserIDDoContexto(r.Context()))
	if err != nil {
		utils.RespondErro(w, http.StatusNotFound, "Usuário não encontrado")
		return
	}
	if !utils.CheckSenha(user.Senha, req.SenhaAtual) {
		utils.RespondErro(w, http.StatusBadRequest, "Senha atual incorreta")
		return
	}

	hash, err := utils.HashSenha(req.NovaSenha)
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "Erro interno do servidor")
		return
	}
	user.Senha = hash
	if err := h.Repository.Salvar(h.DB, user); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "Erro interno do servidor")
		return
	}

	logrus.WithField("username", user.Username).Info("senha alterada")
	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "Senha alterada com sucesso"})
}

// VerificarToken confirma a validade do access token
func (h *Handler) VerificarToken(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"valid":  true,
		"user":   auth.UsernameDoContexto(r.Context()),
		"groups": auth.GruposDoContexto(r.Context()),
	})
}

// VerificarAdmin informa se o chamador é administrador ou superior
func (h *Handler) VerificarAdmin(w http.ResponseWriter, r *http.Request) {
	grupos := auth.GruposDoContexto(r.Context())
	utils.RespondJSON(w, http.StatusOK, map[string]bool{
		"is_admin":    auth.IsAdmin(grupos),
		"is_superior": auth.TemGrupo(grupos, auth.GrupoSuperior),
		"can_manage":  auth.IsAdminOuSuperior(grupos),
	})
}

// ListarUsuarios lista usuários ativos (Administrador e Superior)
func (h *Handler) ListarUsuarios(w http.ResponseWriter, r *http.Request) {
	if !auth.IsAdminOuSuperior(auth.GruposDoContexto(r.Context())) {
		utils.RespondErro(w, http.StatusForbidden, "Acesso negado. Apenas administradores e superiores podem gerenciar usuários.")
		return
	}
	usuarios, err := h.Repository.ListarAtivos(h.DB)
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "Erro ao listar usuários")
		return
	}
	utils.RespondJSON(w, http.StatusOK, ParaDTOs(usuarios))
}

// CriarUsuario cria um usuário e o adiciona aos grupos informados
func (h *Handler) CriarUsuario(w http.ResponseWriter, r *http.Request) {
	if !auth.IsAdminOuSuperior(auth.GruposDoContexto(r.Context())) {
		utils.RespondErro(w, http.StatusForbidden, "Acesso negado. Apenas administradores e superiores podem gerenciar usuários.")
		return
	}
	var req criarUsuarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		utils.RespondErro(w, http.StatusBadRequest, "Username, email e password são obrigatórios")
		return
	}
	if h.Repository.UsernameExiste(h.DB, req.Username) {
		utils.RespondErro(w, http.StatusBadRequest, "Username já existe")
		return
	}
	if h.Repository.EmailExiste(h.DB, req.Email) {
		utils.RespondErro(w, http.StatusBadRequest, "Email já existe")
		return
	}

	hash, err := utils.HashSenha(req.Password)
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "Erro interno do servidor")
		return
	}

	novo := Usuario{
		Username:  req.Username,
		Email:     req.Email,
		Senha:     hash,
		Nome:      req.Nome,
		Sobrenome: req.Sobrenome,
		Ativo:     true,
	}
	for _, nome := range req.Grupos {
		g, err := h.Repository.BuscarGrupoPorNome(h.DB, nome)
		if err != nil {
			logrus.WithField("grupo", nome).Warn("grupo não encontrado")
			continue
		}
		novo.Grupos = append(novo.Grupos, *g)
	}

	if err := h.Repository.Salvar(h.DB, &novo); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "Erro ao criar usuário")
		return
	}

	logrus.WithFields(logrus.Fields{
		"username":  novo.Username,
		"criadoPor": auth.UsernameDoContexto(r.Context()),
	}).Info("usuário criado")
	utils.RespondJSON(w, http.StatusCreated, ParaDTO(&novo))
}

// ListarGrupos lista os grupos disponíveis
func (h *Handler) ListarGrupos(w http.ResponseWriter, r *http.Request) {
	grupos, err := h.Repository.ListarGrupos(h.DB)
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "Erro ao listar grupos")
		return
	}
	utils.RespondJSON(w, http.StatusOK, grupos)
}

// Cadastro é o registro público: cria a conta sem grupo algum.
// Um administrador precisa atribuir um grupo antes do primeiro login.
func (h *Handler) Cadastro(w http.ResponseWriter, r *http.Request) {
	var req criarUsuarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		utils.RespondErro(w, http.StatusBadRequest, "Username, email e password são obrigatórios")
		return
	}
	if h.Repository.UsernameExiste(h.DB, req.Username) {
		utils.RespondErro(w, http.StatusBadRequest, "Username já existe")
		return
	}
	if h.Repository.EmailExiste(h.DB, req.Email) {
		utils.RespondErro(w, http.StatusBadRequest, "Email já existe")
		return
	}

	hash, err := utils.HashSenha(req.Password)
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "Erro interno do servidor")
		return
	}
	novo := Usuario{
		Username:  req.Username,
		Email:     req.Email,
		Senha:     hash,
		Nome:      req.Nome,
		Sobrenome: req.Sobrenome,
		Ativo:     true,
	}
	if err := h.Repository.Salvar(h.DB, &novo); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "Erro ao criar usuário")
		return
	}
	utils.RespondJSON(w, http.StatusCreated, ParaDTO(&novo))
}

// --- Configurações (somente Administrador) ---

// ConfiguracoesListarUsuarios lista todos os usuários, inclusive inativos
func (h *Handler) ConfiguracoesListarUsuarios(w http.ResponseWriter, r *http.Request) {
	usuarios, err := h.Repository.ListarTodos(h.DB)
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "Erro ao listar usuários")
		return
	}
	utils.RespondJSON(w, http.StatusOK, ParaDTOs(usuarios))
}

// ConfiguracoesAlterarGrupo substitui os grupos de um usuário
func (h *Handler) ConfiguracoesAlterarGrupo(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "id inválido")
		return
	}
	var req struct {
		Grupos []string `json:"grupos"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}
	user, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		utils.RespondErro(w, http.StatusNotFound, "Usuário não encontrado")
		return
	}

	grupos := make([]Grupo, 0, len(req.Grupos))
	for _, nome := range req.Grupos {
		g, err := h.Repository.BuscarGrupoPorNome(h.DB, nome)
		if err != nil {
			utils.RespondErro(w, http.StatusBadRequest, "Grupo não encontrado: "+nome)
			return
		}
		grupos = append(grupos, *g)
	}
	if err := h.Repository.DefinirGrupos(h.DB, user, grupos); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "Erro ao alterar grupos")
		return
	}

	logrus.WithFields(logrus.Fields{"usuario": user.Username, "grupos": req.Grupos}).Info("grupos alterados")
	user, _ = h.Repository.BuscarPorID(h.DB, uint(id))
	utils.RespondJSON(w, http.StatusOK, ParaDTO(user))
}

// ConfiguracoesAtivarUsuario ativa ou desativa uma conta
func (h *Handler) ConfiguracoesAtivarUsuario(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "id inválido")
		return
	}
	var req struct {
		Ativo bool `json:"ativo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}
	user, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		utils.RespondErro(w, http.StatusNotFound, "Usuário não encontrado")
		return
	}
	user.Ativo = req.Ativo
	if err := h.Repository.Salvar(h.DB, user); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "Erro ao atualizar usuário")
		return
	}
	utils.RespondJSON(w, http.StatusOK, ParaDTO(user))
}

// ConfiguracoesExcluirUsuario remove a conta definitivamente
func (h *Handler) ConfiguracoesExcluirUsuario(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "id inválido")
		return
	}
	if _, err := h.Repository.BuscarPorID(h.DB, uint(id)); err != nil {
		utils.RespondErro(w, http.StatusNotFound, "Usuário não encontrado")
		return
	}
	if err := h.Repository.Deletar(h.DB, uint(id)); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "Erro ao excluir usuário")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
