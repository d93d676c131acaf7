package registroos

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RegistroResumoDTO é a projeção usada nas listagens
type RegistroResumoDTO struct {
	ID                 uint            `json:"id"`
	OSID               uuid.UUID       `json:"os_id"`
	NumeroOS           uint            `json:"numero_os"`
	NomeCliente        string          `json:"nome_cliente"`
	DescricaoResumida  string          `json:"descricao_resumida"`
	StatusOS           string          `json:"status_os"`
	StatusLevantamento string          `json:"status_levantamento"`
	StatusProducao     string          `json:"status_producao"`
	DataSolicitacaoOS  *time.Time      `json:"data_solicitacao_os"`
	PrazoExecucao      *time.Time      `json:"prazo_execucao_servico"`
	SomaValores        decimal.Decimal `json:"soma_valores"`
	SomaNotasFiscais   decimal.Decimal `json:"soma_notas_fiscais"`
	SaldoFinal         decimal.Decimal `json:"saldo_final"`
	CriadoEm           time.Time       `json:"criado_em"`
}

func ParaResumo(r *RegistroOS) RegistroResumoDTO {
	return RegistroResumoDTO{
		ID:                 r.ID,
		OSID:               r.OSID,
		NumeroOS:           r.NumeroOS,
		NomeCliente:        r.NomeCliente,
		DescricaoResumida:  r.DescricaoResumida,
		StatusOS:           r.StatusOS,
		StatusLevantamento: r.StatusLevantamento,
		StatusProducao:     r.StatusProducao,
		DataSolicitacaoOS:  r.DataSolicitacaoOS,
		PrazoExecucao:      r.PrazoExecucaoServico,
		SomaValores:        r.SomaValores,
		SomaNotasFiscais:   r.SomaNotasFiscais,
		SaldoFinal:         r.SaldoFinal,
		CriadoEm:           r.CriadoEm,
	}
}

func ParaResumos(registros []RegistroOS) []RegistroResumoDTO {
	resumos := make([]RegistroResumoDTO, len(registros))
	for i := range registros {
		resumos[i] = ParaResumo(&registros[i])
	}
	return resumos
}
