package catalog_repo

import (
	"gestor/internal/domain/catalogs/servico"
	"gestor/internal/infrastructure/storage/postgres"
)

const servicoTable = "cat_servicos"

// ServicoRepo implements servico.Repository.
type ServicoRepo struct {
	*BaseCatalogRepo[*servico.Servico]
}

// NewServicoRepo creates a new servico repository.
func NewServicoRepo(txManager *postgres.TxManager) *ServicoRepo {
	return &ServicoRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(BaseCatalogRepoConfig[*servico.Servico]{
			TxManager:  txManager,
			TableName:  servicoTable,
			EntityName: "servico",
			SelectCols: postgres.ExtractDBColumns[servico.Servico](),
			SearchCols: []string{"nome", "descricao"},
			HasAtivo:   true,
			NewFn:      func() *servico.Servico { return &servico.Servico{} },
		}),
	}
}
