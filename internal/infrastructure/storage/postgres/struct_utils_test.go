package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gestor/internal/core/entity"
	"gestor/internal/core/id"
)

type mockCatalog struct {
	entity.Catalog
	entity.Tenanted
	Documento string  `db:"documento" json:"documento"`
	Email     *string `db:"email" json:"email,omitempty"`
	Ignored   string  `db:"-" json:"ignored"`
}

func TestExtractDBColumns_EmbeddedStructs(t *testing.T) {
	cols := ExtractDBColumns[mockCatalog]()

	expected := []string{"id", "version", "created_at", "nome", "empresa_id", "documento", "email"}
	for _, col := range expected {
		assert.Contains(t, cols, col)
	}
	assert.NotContains(t, cols, "-")
	assert.NotContains(t, cols, "ignored")
}

func TestStructToMap_EmbeddedStructs(t *testing.T) {
	empresaID := id.New()
	email := "maria@exemplo.com.br"

	c := mockCatalog{
		Documento: "123.456.789-00",
		Email:     &email,
		Ignored:   "nunca persistido",
	}
	c.Catalog = entity.NewCatalog("Maria Silva")
	c.EmpresaID = empresaID

	m := StructToMap(c)

	assert.Equal(t, c.ID, m["id"])
	assert.Equal(t, 1, m["version"])
	assert.Equal(t, "Maria Silva", m["nome"])
	assert.Equal(t, empresaID, m["empresa_id"])
	assert.Equal(t, "123.456.789-00", m["documento"])
	assert.Equal(t, &email, m["email"])
	assert.NotContains(t, m, "ignored")
}
