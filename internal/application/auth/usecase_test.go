package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pukassein/teysa/internal/application/auth"
	"github.com/pukassein/teysa/internal/domain"
	"github.com/pukassein/teysa/internal/domain/entity"
	"github.com/pukassein/teysa/pkg/config"
	pkgjwt "github.com/pukassein/teysa/pkg/jwt"
	"github.com/pukassein/teysa/pkg/logger"
)

type fakeUserRepo struct {
	users map[string]*entity.User // por email
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	copied := *u
	r.users[u.Email] = &copied
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*entity.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func newAuthUseCase() (*auth.UseCase, *fakeUserRepo) {
	repo := newFakeUserRepo()
	cfg := config.JWTConfig{Secret: "secreto-de-test-suficiente", Issuer: "teysa-test", Expiration: 60}
	return auth.NewUseCase(repo, cfg, logger.Nop()), repo
}

func TestRegister_YLoginExitoso(t *testing.T) {
	uc, _ := newAuthUseCase()
	ctx := context.Background()

	user, err := uc.Register(ctx, auth.RegisterInput{
		Email:    "Teysa@Ejemplo.Com",
		Password: "contraseña-larga",
		Name:     "Teysa",
	})
	require.NoError(t, err)
	assert.Equal(t, "teysa@ejemplo.com", user.Email, "el email se normaliza a minúsculas")
	assert.Equal(t, entity.RoleOperario, user.Role, "rol por defecto")
	assert.NotEqual(t, "contraseña-larga", user.PasswordHash, "la contraseña nunca se guarda en claro")

	session, err := uc.Login(ctx, "teysa@ejemplo.com", "contraseña-larga")
	require.NoError(t, err)
	require.NotEmpty(t, session.Token)

	userID, role, err := pkgjwt.Parse("secreto-de-test-suficiente", session.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Equal(t, entity.RoleOperario, role)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc, _ := newAuthUseCase()
	ctx := context.Background()

	_, err := uc.Register(ctx, auth.RegisterInput{Email: "a@b.com", Password: "12345678x", Name: "A"})
	require.NoError(t, err)

	_, err = uc.Register(ctx, auth.RegisterInput{Email: "A@B.com", Password: "12345678x", Name: "B"})
	require.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_EntradasInvalidas(t *testing.T) {
	uc, _ := newAuthUseCase()
	ctx := context.Background()

	cases := []auth.RegisterInput{
		{Email: "", Password: "12345678x", Name: "A"},
		{Email: "a@b.com", Password: "corta", Name: "A"},
		{Email: "a@b.com", Password: "12345678x", Name: ""},
		{Email: "a@b.com", Password: "12345678x", Name: "A", Role: "superusuario"},
	}
	for _, in := range cases {
		_, err := uc.Register(ctx, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "entrada %+v", in)
	}
}

// Contraseña incorrecta, email inexistente y cuenta deshabilitada responden
// el mismo error: el login no filtra qué emails existen.
func TestLogin_RechazosIndistinguibles(t *testing.T) {
	uc, repo := newAuthUseCase()
	ctx := context.Background()

	_, err := uc.Register(ctx, auth.RegisterInput{Email: "a@b.com", Password: "12345678x", Name: "A"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, "a@b.com", "incorrecta")
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, "nadie@b.com", "12345678x")
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	repo.users["a@b.com"].Status = "disabled"
	_, err = uc.Login(ctx, "a@b.com", "12345678x")
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestMe_UsuarioInexistente(t *testing.T) {
	uc, _ := newAuthUseCase()
	_, err := uc.Me(context.Background(), "no-existe")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}
