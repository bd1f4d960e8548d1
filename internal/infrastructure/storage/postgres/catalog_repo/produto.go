package catalog_repo

import (
	"gestor/internal/domain/catalogs/produto"
	"gestor/internal/infrastructure/storage/postgres"
)

const produtoTable = "cat_produtos"

// ProdutoRepo implements produto.Repository.
type ProdutoRepo struct {
	*BaseCatalogRepo[*produto.Produto]
}

// NewProdutoRepo creates a new produto repository.
func NewProdutoRepo(txManager *postgres.TxManager) *ProdutoRepo {
	return &ProdutoRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(BaseCatalogRepoConfig[*produto.Produto]{
			TxManager:  txManager,
			TableName:  produtoTable,
			EntityName: "produto",
			SelectCols: postgres.ExtractDBColumns[produto.Produto](),
			SearchCols: []string{"nome", "descricao"},
			HasAtivo:   true,
			NewFn:      func() *produto.Produto { return &produto.Produto{} },
		}),
	}
}
