package service

import (
	"context"
	"testing"

	"barcontrol/internal/config"
	"barcontrol/internal/dto"
	"barcontrol/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginSenhaCorreta(t *testing.T) {
	repo := newFakeUsuarioRepo()
	svc := NewAuthService(repo, &config.Config{JWTSecret: "test-secret", JWTExpirationHours: 1})
	ctx := context.Background()

	criado, err := svc.CriarUsuario(ctx, dto.CriarUsuarioRequest{
		Nome: "Joana", Username: "joana", Password: "segredo", Role: model.RoleVendedor,
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleVendedor, criado.Role)

	resp, err := svc.Login(ctx, dto.LoginRequest{Username: "joana", Password: "segredo"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, "joana", resp.Usuario.Username)
	assert.Equal(t, model.RoleVendedor, resp.Usuario.Role)
}

func TestLoginSenhaErrada(t *testing.T) {
	repo := newFakeUsuarioRepo()
	svc := NewAuthService(repo, &config.Config{JWTSecret: "test-secret", JWTExpirationHours: 1})
	ctx := context.Background()

	_, err := svc.CriarUsuario(ctx, dto.CriarUsuarioRequest{
		Nome: "Joana", Username: "joana", Password: "segredo", Role: model.RoleVendedor,
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, dto.LoginRequest{Username: "joana", Password: "errada"})
	require.Error(t, err)
	assert.Equal(t, "Usuario ou senha invalidos.", err.Error())
}

func TestLoginUsuarioDesativado(t *testing.T) {
	repo := newFakeUsuarioRepo()
	svc := NewAuthService(repo, &config.Config{JWTSecret: "test-secret", JWTExpirationHours: 1})
	ctx := context.Background()

	criado, err := svc.CriarUsuario(ctx, dto.CriarUsuarioRequest{
		Nome: "Rui", Username: "rui", Password: "segredo", Role: model.RoleCaixa,
	})
	require.NoError(t, err)

	u, err := repo.FindByUsername(ctx, "rui")
	require.NoError(t, err)
	require.Equal(t, criado.ID, u.ID.String())
	require.NoError(t, svc.DesativarUsuario(ctx, u.ID))

	_, err = svc.Login(ctx, dto.LoginRequest{Username: "rui", Password: "segredo"})
	require.Error(t, err)
	assert.Equal(t, "Usuario ou senha invalidos.", err.Error())
}
