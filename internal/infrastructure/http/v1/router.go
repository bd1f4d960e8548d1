// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"gestor/internal/domain/audit"
	"gestor/internal/domain/auth"
	"gestor/internal/domain/catalogs/cliente"
	"gestor/internal/domain/catalogs/empresa"
	"gestor/internal/domain/catalogs/produto"
	"gestor/internal/domain/catalogs/servico"
	"gestor/internal/domain/documents/conversao"
	"gestor/internal/domain/documents/documento"
	"gestor/internal/domain/documents/orcamento"
	"gestor/internal/domain/perfil"
	"gestor/internal/domain/reports"
	"gestor/internal/infrastructure/http/v1/handlers"
	"gestor/internal/infrastructure/http/v1/middleware"
	"gestor/internal/infrastructure/storage/postgres"
	"gestor/internal/infrastructure/storage/postgres/auth_repo"
	"gestor/internal/infrastructure/storage/postgres/catalog_repo"
	"gestor/internal/infrastructure/storage/postgres/document_repo"
	"gestor/internal/infrastructure/storage/postgres/report_repo"
	"gestor/pkg/logger"
	"gestor/pkg/numerator"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Pool is the database connection pool (health checks)
	Pool *postgres.Pool

	// TxManager handles transactions; repos derive their querier from it
	TxManager *postgres.TxManager

	// Logger for request logging
	Logger *logger.Logger

	// JWTValidator for token validation
	JWTValidator middleware.JWTValidator

	// AuthService for authentication endpoints
	AuthService *auth.Service

	// Numerator issues orçamento/documento numbers
	Numerator *numerator.Service

	// Auditor records entity changes; nil disables auditing
	Auditor audit.Recorder
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	resolver := perfil.NewResolver(auth_repo.NewPerfilRepo(cfg.TxManager))

	// API v1
	v1 := router.Group("/api/v1")
	{
		registerAuthRoutes(v1, cfg)

		// Protected endpoints: JWT first, then the perfil→empresa binding.
		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))
		protected.Use(middleware.Empresa(resolver))

		registerCatalogRoutes(protected, cfg)
		registerEmpresaRoutes(protected, cfg)
		registerDocumentRoutes(protected, cfg)
		registerReportRoutes(protected, cfg)
	}

	return router
}

// registerAuthRoutes registers authentication endpoints.
func registerAuthRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.AuthService == nil {
		return
	}

	baseHandler := handlers.NewBaseHandler()
	authHandler := handlers.NewAuthHandler(baseHandler, cfg.AuthService)

	publicAuth := rg.Group("/auth")

	protectedAuth := rg.Group("/auth")
	protectedAuth.Use(middleware.Auth(cfg.JWTValidator))

	authHandler.RegisterRoutes(publicAuth, protectedAuth)
}

// registerCatalogRoutes registers catalog endpoints.
func registerCatalogRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	catalogs := rg.Group("/catalog")
	baseHandler := handlers.NewBaseHandler()

	// --- CLIENTES ---
	{
		repo := catalog_repo.NewClienteRepo(cfg.TxManager)
		service := cliente.NewService(repo, cfg.TxManager, cfg.Auditor)
		handler := handlers.NewClienteHandler(baseHandler, service)
		RegisterCatalogRoutes(catalogs.Group("/clientes"), handler)
	}

	// --- PRODUTOS ---
	{
		repo := catalog_repo.NewProdutoRepo(cfg.TxManager)
		service := produto.NewService(repo, cfg.TxManager, cfg.Auditor)
		handler := handlers.NewProdutoHandler(baseHandler, service)
		RegisterCatalogRoutes(catalogs.Group("/produtos"), handler)
	}

	// --- SERVICOS ---
	{
		repo := catalog_repo.NewServicoRepo(cfg.TxManager)
		service := servico.NewService(repo, cfg.TxManager, cfg.Auditor)
		handler := handlers.NewServicoHandler(baseHandler, service)
		RegisterCatalogRoutes(catalogs.Group("/servicos"), handler)
	}
}

// registerEmpresaRoutes registers the own-empresa endpoint.
func registerEmpresaRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	baseHandler := handlers.NewBaseHandler()

	repo := catalog_repo.NewEmpresaRepo(cfg.TxManager)
	service := empresa.NewService(repo, cfg.TxManager)
	handler := handlers.NewEmpresaHandler(baseHandler, service)

	rg.GET("/empresa", handler.Get)
}

// registerDocumentRoutes registers quote and documento endpoints.
func registerDocumentRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	docsGroup := rg.Group("/document")
	baseHandler := handlers.NewBaseHandler()

	clienteRepo := catalog_repo.NewClienteRepo(cfg.TxManager)
	orcamentoRepo := document_repo.NewOrcamentoRepo(cfg.TxManager)
	documentoRepo := document_repo.NewDocumentoRepo(cfg.TxManager)

	// History endpoints need a recorder that can read the trail back.
	historian, _ := cfg.Auditor.(handlers.AuditHistorian)

	// --- ORCAMENTOS ---
	{
		service := orcamento.NewService(orcamentoRepo, clienteRepo, cfg.Numerator, cfg.TxManager, cfg.Auditor)
		converter := conversao.NewService(orcamentoRepo, documentoRepo, cfg.Numerator, cfg.TxManager, cfg.Auditor)
		handler := handlers.NewOrcamentoHandler(baseHandler, service, converter, historian)

		group := docsGroup.Group("/orcamentos")
		group.GET("", handler.List)
		group.POST("", handler.Create)
		group.GET("/:id", handler.Get)
		group.PUT("/:id", handler.Update)
		group.DELETE("/:id", handler.Delete)
		group.POST("/:id/status", handler.SetStatus)
		group.POST("/:id/duplicar", handler.Duplicar)
		group.POST("/:id/converter", handler.Converter)
		if historian != nil {
			group.GET("/:id/historico", handler.Historico)
		}
	}

	// --- DOCUMENTOS ---
	{
		service := documento.NewService(documentoRepo, clienteRepo, cfg.TxManager, cfg.Auditor)
		handler := handlers.NewDocumentoHandler(baseHandler, service, historian)

		group := docsGroup.Group("/documentos")
		group.GET("", handler.List)
		group.GET("/:id", handler.Get)
		group.POST("/:id/pagamentos", handler.AddPagamento)
		group.DELETE("/:id/pagamentos/:pagamentoId", handler.DeletePagamento)
		if historian != nil {
			group.GET("/:id/historico", handler.Historico)
		}
	}
}

// registerReportRoutes registers report endpoints.
func registerReportRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	reportsGroup := rg.Group("/reports")
	baseHandler := handlers.NewBaseHandler()

	reportRepo := report_repo.NewReportRepo(cfg.TxManager)
	reportService := reports.NewService(reportRepo)
	reportHandler := handlers.NewReportsHandler(baseHandler, reportService)

	reportsGroup.GET("/dashboard", reportHandler.Dashboard)
}
