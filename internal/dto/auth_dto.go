package dto

type LoginRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=4"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	Usuario     UsuarioBrief `json:"usuario"`
}

type UsuarioBrief struct {
	ID       string `json:"id"`
	Nome     string `json:"nome"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// ─── Administração de usuários ──────────────────────────────────────────────

type CriarUsuarioRequest struct {
	Nome     string `json:"nome"     validate:"required,min=3"`
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=4"`
	Role     string `json:"role"     validate:"required,oneof=ADMIN VENDEDOR CAIXA"`
}

type AtualizarUsuarioRequest struct {
	Nome     *string `json:"nome"     validate:"omitempty,min=3"`
	Password *string `json:"password" validate:"omitempty,min=4"`
	Role     *string `json:"role"     validate:"omitempty,oneof=ADMIN VENDEDOR CAIXA"`
	Ativo    *bool   `json:"ativo"`
}

type UsuarioResponse struct {
	ID       string `json:"id"`
	Nome     string `json:"nome"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Ativo    bool   `json:"ativo"`
	CriadoEm string `json:"criado_em"`
}
