package main

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/RegistroOS/api-controle/internal/auth"
	"github.com/RegistroOS/api-controle/internal/notificacao"
	"github.com/RegistroOS/api-controle/internal/opcoes"
	"github.com/RegistroOS/api-controle/internal/registroos"
	"github.com/RegistroOS/api-controle/internal/relatorio"
	"github.com/RegistroOS/api-controle/internal/usuario"
	"github.com/RegistroOS/api-controle/internal/utils/db"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("arquivo .env não encontrado, usando variáveis do ambiente")
	}

	logrus.SetFormatter(&logrus.JSONFormatter{})
	if os.Getenv("LOG_DEBUG") == "true" {
		logrus.SetLevel(logrus.DebugLevel)
	}

	conexao, err := db.GetDB()
	if err != nil {
		logrus.Fatal("Erro ao conectar no banco: ", err)
	}

	// AutoMigrate para todos os modelos
	modelos := []any{
		&usuario.Grupo{},
		&usuario.Usuario{},
		&auth.RefreshToken{},
	}
	modelos = append(modelos, opcoes.Modelos()...)
	modelos = append(modelos, registroos.Modelos()...)
	if err := conexao.AutoMigrate(modelos...); err != nil {
		logrus.Fatal("Erro no AutoMigrate: ", err)
	}

	if err := usuario.SeedGrupos(conexao); err != nil {
		logrus.Fatal("Erro ao criar grupos padrão: ", err)
	}

	// Handlers
	usuarioHandler := usuario.NewHandler(conexao)
	opcoesHandler := opcoes.NewHandler(conexao)
	registroHandler := registroos.NewHandler(conexao)
	relatorioHandler := relatorio.NewHandler(conexao)
	notificacaoHandler := notificacao.NewHandler()

	// Router
	r := mux.NewRouter()

	// Rotas públicas
	r.HandleFunc("/auth/login", usuarioHandler.Login).Methods("POST")
	r.HandleFunc("/auth/refresh", auth.RefreshHTTPHandler(conexao)).Methods("POST")
	r.HandleFunc("/auth/logout", auth.LogoutHTTPHandler(conexao)).Methods("POST")
	r.HandleFunc("/auth/cadastro", usuarioHandler.Cadastro).Methods("POST")
	r.HandleFunc("/.well-known/jwks.json", auth.JWKSHandler).Methods("GET")

	// Rotas autenticadas
	api := r.NewRoute().Subrouter()
	api.Use(auth.MiddlewareAutenticacao)

	// Conta e usuários
	api.HandleFunc("/auth/perfil", usuarioHandler.Perfil).Methods("GET")
	api.HandleFunc("/auth/alterar-senha", usuarioHandler.AlterarSenha).Methods("POST")
	api.HandleFunc("/auth/verificar-token", usuarioHandler.VerificarToken).Methods("GET")
	api.HandleFunc("/auth/verificar-admin", usuarioHandler.VerificarAdmin).Methods("GET")
	api.HandleFunc("/usuarios", usuarioHandler.ListarUsuarios).Methods("GET")
	api.HandleFunc("/usuarios", usuarioHandler.CriarUsuario).Methods("POST")
	api.HandleFunc("/grupos", usuarioHandler.ListarGrupos).Methods("GET")

	// Configurações de usuários (somente administrador)
	cfg := api.NewRoute().Subrouter()
	cfg.Use(auth.RequireAdmin)
	cfg.HandleFunc("/configuracoes/usuarios", usuarioHandler.ConfiguracoesListarUsuarios).Methods("GET")
	cfg.HandleFunc("/configuracoes/usuarios/{id}/grupo", usuarioHandler.ConfiguracoesAlterarGrupo).Methods("PUT")
	cfg.HandleFunc("/configuracoes/usuarios/{id}/ativar", usuarioHandler.ConfiguracoesAtivarUsuario).Methods("PUT")
	cfg.HandleFunc("/configuracoes/usuarios/{id}", usuarioHandler.ConfiguracoesExcluirUsuario).Methods("DELETE")

	// Registros de OS
	api.HandleFunc("/registros", registroHandler.Listar).Methods("GET")
	api.HandleFunc("/registros", registroHandler.Criar).Methods("POST")
	api.HandleFunc("/registros/preview-valores", registroHandler.PreviewValores).Methods("POST")
	api.HandleFunc("/registros/{id}", registroHandler.Buscar).Methods("GET")
	api.HandleFunc("/registros/{id}", registroHandler.Atualizar).Methods("PUT", "PATCH")
	api.HandleFunc("/registros/{id}", registroHandler.Deletar).Methods("DELETE")
	api.HandleFunc("/registros/{id}/recalcular", registroHandler.Recalcular).Methods("POST")
	api.HandleFunc("/upload/teste", registroHandler.TesteUpload).Methods("POST")

	// Opções e selects
	api.HandleFunc("/opcoes", opcoesHandler.Opcoes).Methods("GET")
	api.HandleFunc("/dados-cliente/{nome}", opcoesHandler.DadosCliente).Methods("GET")

	selects := map[string]string{
		"/tipos-cq":                    "TipoCQ",
		"/niveis-cq":                   "NivelCQ",
		"/ensaios-cq":                  "EnsaioCQ",
		"/percentuais-cq":              "PercentualCQ",
		"/acoes-solicitacao-opcoes":    "AcaoSolicitacaoOption",
		"/demandas":                    "Demanda",
		"/tipos-material":              "TipoMaterial",
		"/status-dms":                  "StatusDMS",
		"/status-bms":                  "StatusBMS",
		"/status-frs":                  "StatusFRS",
		"/nomes-diligenciador":         "NomeDiligenciadorOS",
		"/nomes-responsavel-execucao":  "NomeResponsavelExecucaoServico",
		"/responsaveis-material":       "ResponsavelMaterial",
		"/clientes":                    "Cliente",
		"/status-os":                   "StatusOS",
		"/status-os-manual":            "StatusOSManual",
		"/status-os-eletronica":        "StatusOSEletronica",
		"/status-levantamento":         "StatusLevantamento",
		"/status-producao":             "StatusProducao",
		"/regimes-os":                  "RegimeOS",
		"/status-material":             "StatusMaterial",
		"/tipos-documento-solicitacao": "TipoDocumentoSolicitacao",
	}
	for rota, modelo := range selects {
		api.HandleFunc(rota, opcoesHandler.Listar(modelo)).Methods("GET")
	}

	// Gerenciamento de selects (administrador e superior)
	gerencia := api.NewRoute().Subrouter()
	gerencia.Use(auth.RequireAdminOuSuperior)
	gerencia.HandleFunc("/gerenciar-selects", opcoesHandler.GerenciarSelects).Methods("GET")
	gerencia.HandleFunc("/adicionar-item-select", opcoesHandler.AdicionarItemSelect).Methods("POST")
	gerencia.HandleFunc("/editar-item-select", opcoesHandler.EditarItemSelect).Methods("PUT")
	gerencia.HandleFunc("/excluir-item-select", opcoesHandler.ExcluirItemSelect).Methods("DELETE")

	// Cadastros vinculados a cliente
	cadastros := []string{
		"contratos",
		"unidades-cliente",
		"setores-unidade-cliente",
		"aprovadores-cliente",
		"solicitantes-cliente",
		"opcoes-espec-cq",
	}
	for _, recurso := range cadastros {
		base := "/cadastros/" + recurso
		api.HandleFunc(base, opcoesHandler.ListarCadastros(recurso)).Methods("GET")
		gerencia.HandleFunc(base, opcoesHandler.CriarCadastro(recurso)).Methods("POST")
		gerencia.HandleFunc(base+"/{id}", opcoesHandler.AtualizarCadastro(recurso)).Methods("PUT")
		gerencia.HandleFunc(base+"/{id}", opcoesHandler.ExcluirCadastro(recurso)).Methods("DELETE")
	}

	// Relatórios
	api.HandleFunc("/relatorios/registros", relatorioHandler.RegistrosPaginados).Methods("GET")
	api.HandleFunc("/relatorios/exportar-excel", relatorioHandler.ExportarExcel).Methods("GET")
	api.HandleFunc("/relatorios/exportar-pdf", relatorioHandler.ExportarPDF).Methods("GET")
	api.HandleFunc("/estatisticas", relatorioHandler.Estatisticas).Methods("GET")

	// Webhooks
	api.HandleFunc("/webhooks/teste", notificacaoHandler.Teste).Methods("POST")
	api.HandleFunc("/webhooks/historico", notificacaoHandler.Historico).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{os.Getenv("CORS_ORIGIN")},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	porta := os.Getenv("PORT")
	if porta == "" {
		porta = "8080"
	}

	logrus.Info("Servidor rodando em http://localhost:", porta)
	logrus.Fatal(http.ListenAndServe(":"+porta, c.Handler(r)))
}
