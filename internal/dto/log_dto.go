package dto

// LogFilter is bound from the query string of GET /v1/logs.
type LogFilter struct {
	Usuario    string `form:"usuario"`
	Acao       string `form:"acao"`
	DataInicio string `form:"data_inicio"`
	DataFim    string `form:"data_fim"`
	Limit      int    `form:"limit,default=100" validate:"min=1,max=500"`
}

type LogResponse struct {
	ID       string  `json:"id"`
	Usuario  string  `json:"usuario"`
	Acao     string  `json:"acao"`
	Detalhe  *string `json:"detalhe"`
	IP       *string `json:"ip"`
	DataHora string  `json:"data_hora"`
}
