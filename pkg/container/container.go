package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"library-backend/internal/config"
	infraCache "library-backend/internal/infrastructure/cache"
	"library-backend/internal/infrastructure/database"
	"library-backend/pkg/cache"

	bookHandler "library-backend/internal/domains/book/handler"
	bookRepo "library-backend/internal/domains/book/repository"
	bookService "library-backend/internal/domains/book/service"
	catalogClient "library-backend/internal/domains/catalog/client"
	catalogHandler "library-backend/internal/domains/catalog/handler"
	catalogService "library-backend/internal/domains/catalog/service"
	loanHandler "library-backend/internal/domains/loan/handler"
	loanRepo "library-backend/internal/domains/loan/repository"
	loanService "library-backend/internal/domains/loan/service"
	memberHandler "library-backend/internal/domains/member/handler"
	memberRepo "library-backend/internal/domains/member/repository"
	memberService "library-backend/internal/domains/member/service"
	reportHandler "library-backend/internal/domains/report/handler"
	reportRepo "library-backend/internal/domains/report/repository"
	reportService "library-backend/internal/domains/report/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds the whole dependency graph, built once at startup.
// Everything in it is a singleton.
type Container struct {
	// Infrastructure layer
	Config  *config.Config
	DB      *database.PostgresDB
	Cache   cache.Cache
	Catalog *catalogClient.OpenLibraryClient

	// Repository layer
	BookRepo   bookRepo.BookRepository
	MemberRepo memberRepo.MemberRepository
	LoanStore  loanRepo.LoanStore
	ReportRepo reportRepo.ReportRepository

	// Service layer
	BookService    bookService.BookService
	MemberService  memberService.MemberService
	LoanService    loanService.LoanService
	ReportService  reportService.ReportService
	CatalogService catalogService.CatalogService

	// Handler layer
	BookHandler    *bookHandler.BookHandler
	MemberHandler  *memberHandler.MemberHandler
	LoanHandler    *loanHandler.LoanHandler
	ReportHandler  *reportHandler.ReportHandler
	CatalogHandler *catalogHandler.CatalogHandler
}

// NewContainer builds the dependency graph in order:
// config -> infrastructure -> repositories -> services -> handlers.
func NewContainer() (*Container, error) {
	log.Println("[CONTAINER] Initializing...")

	c := &Container{}

	// Step 1: configuration
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("[CONTAINER] Config loaded (environment: %s)", cfg.App.Environment)

	// Step 2: database
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}

	if err := db.InitSchema(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	c.DB = db
	log.Println("[CONTAINER] Database ready")

	// Step 3: cache
	// Redis failure is non-critical: the populate flow falls back to
	// live fetches, everything else never touches the cache
	redisCache := infraCache.NewRedisCache(
		cfg.Redis.Host,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)
	if rc, ok := redisCache.(*infraCache.RedisCache); ok {
		if err := rc.Connect(context.Background()); err != nil {
			log.Printf("[CONTAINER] Redis connection failed (non-critical): %v", err)
		}
	}
	c.Cache = redisCache

	// Step 4: external catalog client
	c.Catalog = catalogClient.NewOpenLibraryClient(
		cfg.OpenLibrary.BaseURL,
		cfg.OpenLibrary.CoversBaseURL,
		time.Duration(cfg.OpenLibrary.TimeoutSecs)*time.Second,
	)

	// Steps 5-7: repositories, services, handlers
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Println("[CONTAINER] Initialized successfully")
	return c, nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.BookRepo = bookRepo.NewPostgresBookRepository(pool)
	c.MemberRepo = memberRepo.NewPostgresMemberRepository(pool)
	c.LoanStore = loanRepo.NewPostgresLoanStore(pool)
	c.ReportRepo = reportRepo.NewPostgresReportRepository(pool)
}

func (c *Container) initServices() {
	c.BookService = bookService.NewBookService(c.BookRepo)
	c.MemberService = memberService.NewMemberService(c.MemberRepo)
	c.LoanService = loanService.NewLoanService(c.LoanStore)
	c.ReportService = reportService.NewReportService(c.ReportRepo)
	c.CatalogService = catalogService.NewCatalogService(
		c.BookRepo,
		c.Catalog,
		c.Cache,
		time.Duration(c.Config.OpenLibrary.CacheTTLMins)*time.Minute,
		c.Catalog.CoverURL,
	)
}

func (c *Container) initHandlers() {
	c.BookHandler = bookHandler.NewBookHandler(c.BookService)
	c.MemberHandler = memberHandler.NewMemberHandler(c.MemberService)
	c.LoanHandler = loanHandler.NewLoanHandler(c.LoanService)
	c.ReportHandler = reportHandler.NewReportHandler(c.ReportService)
	c.CatalogHandler = catalogHandler.NewCatalogHandler(c.CatalogService)
}

// Cleanup releases infrastructure resources, called during
// graceful shutdown
func (c *Container) Cleanup() {
	log.Println("[CONTAINER] Cleaning up...")

	if c.Cache != nil {
		if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
			if err := rc.Close(); err != nil {
				log.Printf("[CONTAINER] Failed to close Redis: %v", err)
			}
		}
	}

	if c.DB != nil {
		c.DB.Close()
	}
}
