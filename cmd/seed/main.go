// Package main provides a CLI tool for seeding the database with initial data.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"gestor/internal/core/apperror"
	"gestor/internal/core/tenant"
	"gestor/internal/core/types"
	"gestor/internal/domain/auth"
	"gestor/internal/domain/catalogs/cliente"
	"gestor/internal/domain/catalogs/empresa"
	"gestor/internal/domain/catalogs/produto"
	"gestor/internal/domain/catalogs/servico"
	"gestor/internal/infrastructure/storage/postgres"
	"gestor/internal/infrastructure/storage/postgres/auth_repo"
	"gestor/internal/infrastructure/storage/postgres/catalog_repo"
	"gestor/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	txManager := postgres.NewTxManager(pool)

	emp, err := seedEmpresa(ctx, txManager, log)
	if err != nil {
		log.Fatalw("failed to seed empresa", "error", err)
	}

	if err := seedAdminUser(ctx, txManager, emp, log); err != nil {
		log.Fatalw("failed to seed admin user", "error", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, txManager, emp.Resolved(), log); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

// seedEmpresa creates the empresa the admin user will be bound to.
// EMPRESA_RAMO=AUTO enables the placa-oriented workflow.
func seedEmpresa(ctx context.Context, txManager *postgres.TxManager, log *logger.Logger) (*empresa.Empresa, error) {
	nome := os.Getenv("EMPRESA_NOME")
	if nome == "" {
		nome = "Empresa Demo"
	}

	ramo := tenant.Ramo(os.Getenv("EMPRESA_RAMO"))
	if ramo == "" {
		ramo = tenant.RamoGeral
	}

	repo := catalog_repo.NewEmpresaRepo(txManager)
	service := empresa.NewService(repo, txManager)

	emp := empresa.NewEmpresa(nome, ramo)
	if err := service.Create(ctx, emp); err != nil {
		return nil, err
	}

	log.Infow("empresa created", "id", emp.ID, "nome", emp.Nome, "ramo", emp.Ramo)
	return emp, nil
}

// seedAdminUser registers the admin login and binds it to the empresa.
func seedAdminUser(ctx context.Context, txManager *postgres.TxManager, emp *empresa.Empresa, log *logger.Logger) error {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@gestor.local"
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "Admin123!"
	}

	userRepo := auth_repo.NewUserRepo(txManager)
	authService := auth.NewService(userRepo, txManager, nil)

	user, err := authService.Register(ctx, adminEmail, adminPassword, "Administrador")
	if err != nil {
		if !apperror.IsConflict(err) && !apperror.IsDuplicate(err) {
			return err
		}
		log.Infow("admin user already exists", "email", adminEmail)
		user, err = userRepo.GetByEmail(ctx, adminEmail)
		if err != nil {
			return err
		}
	} else {
		log.Infow("admin user created", "email", adminEmail)
	}

	perfilRepo := auth_repo.NewPerfilRepo(txManager)
	if err := perfilRepo.SetEmpresaForUser(ctx, user.ID, emp.ID); err != nil {
		return err
	}

	log.Infow("admin user bound to empresa", "usuario_id", user.ID, "empresa_id", emp.ID)
	return nil
}

// seedDemoData populates sample catalog entries for exploration.
func seedDemoData(ctx context.Context, txManager *postgres.TxManager, emp *tenant.Empresa, log *logger.Logger) error {
	clienteService := cliente.NewService(catalog_repo.NewClienteRepo(txManager), txManager, nil)
	produtoService := produto.NewService(catalog_repo.NewProdutoRepo(txManager), txManager, nil)
	servicoService := servico.NewService(catalog_repo.NewServicoRepo(txManager), txManager, nil)

	clientes := []*cliente.Cliente{
		cliente.NewCliente(emp.ID, "João da Silva"),
		cliente.NewCliente(emp.ID, "Maria Oliveira"),
		cliente.NewCliente(emp.ID, "Transportes Andrade Ltda"),
	}
	telefone := "(11) 98765-4321"
	clientes[0].Telefone = &telefone

	for _, c := range clientes {
		if err := clienteService.Create(ctx, emp, c); err != nil {
			return fmt.Errorf("seed cliente %q: %w", c.Nome, err)
		}
	}
	log.Infow("clientes seeded", "count", len(clientes))

	produtos := []*produto.Produto{
		produto.NewProduto(emp.ID, "Óleo de motor 5W30 (litro)", types.MustMoney("52.90")),
		produto.NewProduto(emp.ID, "Filtro de óleo", types.MustMoney("35.00")),
		produto.NewProduto(emp.ID, "Pastilha de freio (jogo)", types.MustMoney("189.90")),
	}
	produtos[0].ControlaEstoque = true
	produtos[0].EstoqueAtual = types.MustMoney("24")

	for _, p := range produtos {
		if err := produtoService.Create(ctx, emp, p); err != nil {
			return fmt.Errorf("seed produto %q: %w", p.Nome, err)
		}
	}
	log.Infow("produtos seeded", "count", len(produtos))

	servicos := []*servico.Servico{
		servico.NewServico(emp.ID, "Troca de óleo", types.MustMoney("80.00")),
		servico.NewServico(emp.ID, "Alinhamento e balanceamento", types.MustMoney("150.00")),
		servico.NewServico(emp.ID, "Revisão completa", types.MustMoney("450.00")),
	}
	duracao := 45
	servicos[0].DuracaoMinutos = &duracao

	for _, sv := range servicos {
		if err := servicoService.Create(ctx, emp, sv); err != nil {
			return fmt.Errorf("seed servico %q: %w", sv.Nome, err)
		}
	}
	log.Infow("servicos seeded", "count", len(servicos))

	return nil
}
