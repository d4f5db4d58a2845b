package router

import (
	"time"

	"barcontrol/internal/config"
	"barcontrol/internal/handler"
	"barcontrol/internal/middleware"
	"barcontrol/internal/model"
	"barcontrol/internal/repository"
	"barcontrol/internal/service"
	"barcontrol/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute))

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	produtoRepo := repository.NewProdutoRepository(db)
	caixaRepo := repository.NewCaixaRepository(db)
	comandaRepo := repository.NewComandaRepository(db)
	estoqueRepo := repository.NewMovEstoqueRepository(db)
	mesaRepo := repository.NewMesaRepository(db)
	logRepo := repository.NewLogRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	produtoSvc := service.NewProdutoService(produtoRepo, estoqueRepo, rdb, dispatcher, cfg)
	caixaSvc := service.NewCaixaService(caixaRepo, produtoRepo, estoqueRepo, rdb, dispatcher, cfg)
	comandaSvc := service.NewComandaService(comandaRepo, produtoRepo, estoqueRepo, usuarioRepo, caixaSvc, rdb, dispatcher, cfg)
	mesaSvc := service.NewMesaService(mesaRepo)
	logSvc := service.NewLogService(logRepo, cfg)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	produtosH := handler.NewProdutoHandler(produtoSvc)
	caixaH := handler.NewCaixaHandler(caixaSvc)
	comandasH := handler.NewComandaHandler(comandaSvc)
	adminH := handler.NewAdminHandler(authSvc, mesaSvc)
	logsH := handler.NewLogHandler(logSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.GET("/me", middleware.JWTAuth(cfg.JWTSecret), authH.Me)
	}

	// Protected routes. Escada de papéis: ADMIN engloba VENDEDOR, que
	// engloba CAIXA nas rotas de venda.
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	todos := []string{model.RoleAdmin, model.RoleVendedor, model.RoleCaixa}
	vendas := []string{model.RoleAdmin, model.RoleVendedor}

	v1 := r.Group("/v1", jwtMW)
	{
		// Produtos: leitura para todos, escrita só para ADMIN
		v1.GET("/produtos", middleware.RequireRole(todos...), produtosH.Listar)
		v1.GET("/produtos/movimentos", middleware.RequireRole(model.RoleAdmin), produtosH.Movimentos)
		v1.GET("/produtos/:id", middleware.RequireRole(todos...), produtosH.Obter)
		prods := v1.Group("/produtos", middleware.RequireRole(model.RoleAdmin))
		{
			prods.POST("", produtosH.Criar)
			prods.PUT("/:id", produtosH.Atualizar)
			prods.DELETE("/:id", produtosH.Desativar)
			prods.POST("/:id/entrada", produtosH.Entrada)
			prods.POST("/:id/saida", produtosH.Saida)
		}

		caixa := v1.Group("/caixa", middleware.RequireRole(todos...))
		{
			caixa.GET("/atual", caixaH.Atual)
			caixa.POST("/abrir", caixaH.Abrir)
			caixa.POST("/fechar", caixaH.Fechar)
			caixa.POST("/movimentos", caixaH.RegistrarMovimento)
			caixa.GET("/movimentos", caixaH.Movimentos)
			caixa.POST("/venda", caixaH.VendaBalcao)
			caixa.GET("/resumo", caixaH.Resumo)
			caixa.GET("/:id/relatorio", caixaH.Relatorio)
		}

		comandas := v1.Group("/comandas", middleware.RequireRole(vendas...))
		{
			comandas.POST("", comandasH.Criar)
			comandas.GET("", comandasH.Listar)
			comandas.GET("/resumo-dia", comandasH.ResumoDia)
			comandas.GET("/:id", comandasH.Obter)
			comandas.POST("/:id/itens", comandasH.AdicionarItem)
			comandas.DELETE("/:id/itens/:itemId", comandasH.RemoverItem)
			comandas.POST("/:id/cancelar", comandasH.Cancelar)
			comandas.POST("/:id/finalizar", comandasH.Finalizar)
		}

		usuarios := v1.Group("/usuarios", middleware.RequireRole(model.RoleAdmin))
		{
			usuarios.POST("", adminH.CriarUsuario)
			usuarios.GET("", adminH.ListarUsuarios)
			usuarios.PUT("/:id", adminH.AtualizarUsuario)
			usuarios.DELETE("/:id", adminH.DesativarUsuario)
		}

		v1.GET("/mesas", middleware.RequireRole(vendas...), adminH.ListarMesas)
		mesas := v1.Group("/mesas", middleware.RequireRole(model.RoleAdmin))
		{
			mesas.POST("", adminH.CriarMesa)
			mesas.PUT("/:id", adminH.AtualizarMesa)
		}

		v1.GET("/logs", middleware.RequireRole(model.RoleAdmin), logsH.Listar)
	}

	// Swagger UI only runs outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
