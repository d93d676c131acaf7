package notificacao

import (
	"encoding/json"
	"net/http"

	"github.com/RegistroOS/api-controle/internal/auth"
	"github.com/RegistroOS/api-controle/internal/utils"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// Teste dispara um webhook de teste com o payload recebido
func (h *Handler) Teste(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		payload = map[string]any{}
	}
	payload["disparado_por"] = auth.UsernameDoContexto(r.Context())

	disparo := Disparar(EventoTeste, payload)
	utils.RespondJSON(w, http.StatusOK, disparo)
}

// Historico lista os webhooks disparados desde o início do processo
func (h *Handler) Historico(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, Historico())
}
