package service

import "errors"

// Mensagens de negócio devolvidas ao front exatamente como escritas aqui.
var (
	ErrCaixaJaAberto = errors.New("Ja existe um caixa aberto.")
	ErrCaixaFechado  = errors.New("Nenhum caixa aberto.")
)
