// Package apierror padroniza o envelope de erro de todas as respostas 4xx/5xx.
// Nenhum detalhe interno (stack trace, erro de banco) passa por aqui: a
// mensagem é sempre texto legível para o operador do caixa.
package apierror

// APIError é o envelope canônico de erro da API.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError agrega erros de campo do validador.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Erro de validacao", Fields: fields}
}
