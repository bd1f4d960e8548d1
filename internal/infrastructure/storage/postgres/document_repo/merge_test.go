package document_repo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gestor/internal/core/id"
)

type row struct {
	id   id.ID
	nome string
}

func TestMergeByID(t *testing.T) {
	a := row{id: id.New(), nome: "a"}
	b := row{id: id.New(), nome: "b"}
	c := row{id: id.New(), nome: "c"}

	key := func(r row) id.ID { return r.id }

	t.Run("appends plate-only matches", func(t *testing.T) {
		got := mergeByID([]row{a, b}, []row{b, c}, key)
		assert.Equal(t, []row{a, b, c}, got)
	})

	t.Run("no extras", func(t *testing.T) {
		got := mergeByID([]row{a, b}, nil, key)
		assert.Equal(t, []row{a, b}, got)
	})

	t.Run("empty primary", func(t *testing.T) {
		got := mergeByID(nil, []row{c}, key)
		assert.Equal(t, []row{c}, got)
	})

	t.Run("all duplicates", func(t *testing.T) {
		got := mergeByID([]row{a, b}, []row{a, b}, key)
		assert.Equal(t, []row{a, b}, got)
	})
}

func TestPaginate(t *testing.T) {
	a := row{id: id.New(), nome: "a"}
	b := row{id: id.New(), nome: "b"}
	c := row{id: id.New(), nome: "c"}

	t.Run("limit caps the merged page", func(t *testing.T) {
		got := paginate([]row{a, b, c}, 2, 0)
		assert.Equal(t, []row{a, b}, got)
	})

	t.Run("offset walks the union consistently", func(t *testing.T) {
		got := paginate([]row{a, b, c}, 2, 2)
		assert.Equal(t, []row{c}, got)
	})

	t.Run("offset past the end", func(t *testing.T) {
		got := paginate([]row{a, b}, 2, 5)
		assert.Empty(t, got)
	})

	t.Run("zero limit returns everything", func(t *testing.T) {
		got := paginate([]row{a, b, c}, 0, 0)
		assert.Equal(t, []row{a, b, c}, got)
	})
}
