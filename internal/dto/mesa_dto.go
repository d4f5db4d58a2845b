package dto

type CriarMesaRequest struct {
	Numero    string  `json:"numero"    validate:"required,min=1,max=20"`
	Descricao *string `json:"descricao"`
}

type AtualizarMesaRequest struct {
	Descricao *string `json:"descricao"`
	Ativo     *bool   `json:"ativo"`
}

type MesaResponse struct {
	ID        string  `json:"id"`
	Numero    string  `json:"numero"`
	Descricao *string `json:"descricao"`
	Ativo     bool    `json:"ativo"`
	CriadoEm  string  `json:"criado_em"`
}
