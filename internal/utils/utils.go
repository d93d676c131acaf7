package utils

import (
	"encoding/json"
	"net/http"
)

// RespondJSON serializa o payload e escreve a resposta com o status informado
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// RespondErro escreve um erro JSON no formato {"error": "..."}
func RespondErro(w http.ResponseWriter, status int, msg string) {
	RespondJSON(w, status, map[string]string{"error": msg})
}

// RespondErros escreve um mapa de erros de validação por campo
func RespondErros(w http.ResponseWriter, status int, erros map[string]string) {
	RespondJSON(w, status, erros)
}
