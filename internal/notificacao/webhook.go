package notificacao

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Evento identifica o tipo de webhook disparado
type Evento string

const (
	EventoOSAprovada       Evento = "os_aprovada"
	EventoOSConcluida      Evento = "os_concluida"
	EventoOSCancelada      Evento = "os_cancelada"
	EventoMaterialAprovado Evento = "material_aprovado"
	EventoTeste            Evento = "teste"
)

// Disparo é um webhook registrado no histórico
type Disparo struct {
	Evento    Evento         `json:"evento"`
	Payload   map[string]any `json:"payload"`
	DisparoEm time.Time      `json:"disparo_em"`
}

// Os disparos são simulados: o payload é montado e registrado em log,
// sem chamada HTTP de saída. O formato do payload por evento é estável
// para quando houver um destino real.
var (
	mu        sync.Mutex
	historico []Disparo
)

// Disparar registra o webhook no log estruturado e no histórico em memória
func Disparar(evento Evento, payload map[string]any) Disparo {
	d := Disparo{
		Evento:    evento,
		Payload:   payload,
		DisparoEm: time.Now(),
	}

	mu.Lock()
	historico = append(historico, d)
	mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"evento":  string(evento),
		"payload": payload,
	}).Info("webhook disparado")

	return d
}

// Historico devolve os disparos registrados desde o início do processo
func Historico() []Disparo {
	mu.Lock()
	defer mu.Unlock()
	out := make([]Disparo, len(historico))
	copy(out, historico)
	return out
}

// LimparHistorico descarta os disparos acumulados
func LimparHistorico() {
	mu.Lock()
	defer mu.Unlock()
	historico = nil
}
