package catalog_repo

import (
	"strings"
	"testing"

	"github.com/Masterminds/squirrel"

	"gestor/internal/core/id"
)

func testRepo() *BaseCatalogRepo[any] {
	return NewBaseCatalogRepo(BaseCatalogRepoConfig[any]{
		TableName:  "test_table",
		EntityName: "test",
		SelectCols: []string{"id", "empresa_id", "nome", "version", "created_at"},
		SearchCols: []string{"nome", "documento"},
		HasAtivo:   true,
		NewFn:      func() any { return nil },
	})
}

func TestBaseSelect_ScopesByEmpresa(t *testing.T) {
	repo := testRepo()
	empresaID := id.New()

	sql, args, err := repo.baseSelect(empresaID).ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	want := "SELECT id, empresa_id, nome, version, created_at FROM test_table WHERE empresa_id = $1"
	if sql != want {
		t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", want, sql)
	}
	if len(args) != 1 || args[0] != empresaID {
		t.Errorf("Args mismatch: %v", args)
	}
}

func TestSearch_MatchesAllSearchCols(t *testing.T) {
	repo := testRepo()
	empresaID := id.New()

	q := repo.baseSelect(empresaID)
	pattern := "%maria%"
	or := make(squirrel.Or, 0, len(repo.searchCols))
	for _, col := range repo.searchCols {
		or = append(or, squirrel.ILike{col: pattern})
	}
	q = q.Where(or)

	sql, args, err := q.ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	if !strings.Contains(sql, "nome ILIKE $2 OR documento ILIKE $3") {
		t.Errorf("expected ILIKE over search cols, got: %s", sql)
	}
	if len(args) != 3 || args[1] != pattern || args[2] != pattern {
		t.Errorf("Args mismatch: %v", args)
	}
}

func TestParseOrderBy(t *testing.T) {
	repo := testRepo()

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "nome ASC", false},
		{"nome", "nome ASC", false},
		{"-created_at", "created_at DESC", false},
		{"+nome", "nome ASC", false},
		{"senha_hash", "", true},
		{"nome; DROP TABLE test_table", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := repo.parseOrderBy(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseOrderBy(%q) failed: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("parseOrderBy(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
