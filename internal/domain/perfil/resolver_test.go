package perfil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gestor/internal/core/apperror"
	"gestor/internal/core/id"
	"gestor/internal/core/tenant"
	"gestor/internal/domain/catalogs/empresa"
)

type mockRepo struct {
	byUser map[id.ID]*empresa.Empresa
}

func (m *mockRepo) GetEmpresaForUser(ctx context.Context, userID id.ID) (*empresa.Empresa, error) {
	if e, ok := m.byUser[userID]; ok {
		return e, nil
	}
	return nil, apperror.NewNotFound("perfil", userID.String())
}

func TestResolve_ReturnsBoundEmpresa(t *testing.T) {
	userID := id.New()
	e := empresa.NewEmpresa("Oficina do Zé", tenant.RamoAuto)

	r := NewResolver(&mockRepo{byUser: map[id.ID]*empresa.Empresa{userID: e}})

	resolved, err := r.Resolve(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, e.ID, resolved.ID)
	assert.Equal(t, "Oficina do Zé", resolved.Nome)
	assert.Equal(t, tenant.RamoAuto, resolved.Ramo)
}

func TestResolve_UnboundUserIsConfigurationError(t *testing.T) {
	r := NewResolver(&mockRepo{byUser: map[id.ID]*empresa.Empresa{}})

	_, err := r.Resolve(context.Background(), id.New())
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeConfiguration, appErr.Code)
	assert.Equal(t, 500, appErr.HTTPStatus)
}

func TestResolve_InactiveEmpresaIsConfigurationError(t *testing.T) {
	userID := id.New()
	e := empresa.NewEmpresa("Fechada ME", tenant.RamoGeral)
	e.Ativo = false

	r := NewResolver(&mockRepo{byUser: map[id.ID]*empresa.Empresa{userID: e}})

	_, err := r.Resolve(context.Background(), userID)
	require.Error(t, err)
	assert.True(t, apperror.IsConfiguration(err))
}
