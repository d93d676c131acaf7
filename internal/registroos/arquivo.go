package registroos

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/RegistroOS/api-controle/internal/utils"
	"github.com/sirupsen/logrus"
)

// Limite para o upload genérico de teste
const MaxUploadBytes = 10 << 20

var (
	extensoesPadrao       = []string{".pdf", ".doc", ".docx", ".jpg", ".jpeg", ".png"}
	extensoesLevantamento = []string{".pdf", ".doc", ".docx", ".jpg", ".jpeg", ".png", ".dwg"}
	extensoesNotaFiscal   = []string{".pdf", ".jpg", ".jpeg", ".png"}
)

// ExtensoesPermitidas devolve a lista válida para o campo de arquivo informado
func ExtensoesPermitidas(campo string) []string {
	switch campo {
	case "arquivo_anexo_levantamento":
		return extensoesLevantamento
	case "arquivo_anexo_nota_fiscal_remessa_saida", "arquivo_anexo_nota_fiscal_venda":
		return extensoesNotaFiscal
	default:
		return extensoesPadrao
	}
}

// ValidarExtensao verifica o nome de arquivo contra a lista do campo
func ValidarExtensao(campo, nomeArquivo string) error {
	ext := strings.ToLower(filepath.Ext(nomeArquivo))
	for _, permitida := range ExtensoesPermitidas(campo) {
		if ext == permitida {
			return nil
		}
	}
	return fmt.Errorf("extensão de arquivo não permitida: %s (permitidas: %s)",
		ext, strings.Join(ExtensoesPermitidas(campo), ", "))
}

// TesteUpload recebe um multipart "arquivo" e valida tamanho e extensão
func (h *Handler) TesteUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes)
	if err := r.ParseMultipartForm(MaxUploadBytes); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "Arquivo excede o limite de 10 MB")
		return
	}
	arquivo, header, err := r.FormFile("arquivo")
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "Arquivo não enviado")
		return
	}
	defer arquivo.Close()

	if header.Size > MaxUploadBytes {
		utils.RespondErro(w, http.StatusBadRequest, "Arquivo excede o limite de 10 MB")
		return
	}
	if err := ValidarExtensao("arquivo", header.Filename); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, err.Error())
		return
	}

	logrus.WithFields(logrus.Fields{
		"arquivo": header.Filename,
		"tamanho": header.Size,
	}).Info("upload de teste recebido")

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"message": "Upload validado com sucesso",
		"arquivo": header.Filename,
		"tamanho": header.Size,
	})
}
