package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/employerapp/api/internal/db"
	"github.com/employerapp/api/internal/handlers"
	"github.com/employerapp/api/internal/handlers/middleware"
	"github.com/employerapp/api/internal/logger"
	"github.com/employerapp/api/internal/repository/postgres"
	"github.com/employerapp/api/internal/service/auth"
	"github.com/employerapp/api/internal/service/auth/tokenmanager"
	"github.com/employerapp/api/internal/service/document"
	"github.com/employerapp/api/internal/service/employee"
)

type ServerApp struct {
	ListenAddr string
	Handler    http.Handler
	Logger     logger.Logger

	closeDB func()
}

func NewServerApp(ctx context.Context, c *Config) (*ServerApp, error) {
	// Initialize logger
	log, err := logger.New(c.Environment, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("error while initializing logger: %w", err)
	}

	// Connect to the database and run migrations
	pool, err := db.ConnectAndMigrate(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("error while connecting to db. Err: %w", err)
	}

	// Initialize repositories
	storage := postgres.NewStorage(pool)

	// Initialize services
	tokenManager, err := tokenmanager.New(tokenmanager.Config{
		SecretKey: c.SecretKey,
		Issuer:    c.TokenIssuer,
		Audience:  c.TokenAudience,
		AccessTTL: c.AccessTokenTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("error while creating token manager. Err: %w", err)
	}

	authService, err := auth.NewService(auth.Config{}, tokenManager, storage)
	if err != nil {
		return nil, fmt.Errorf("error while creating auth service. Err: %w", err)
	}

	employeeService := employee.NewService(storage)
	documentService := document.NewService(storage)

	// Complete all together as router
	router := handlers.NewRouter(
		handlers.NewAuth(authService),
		handlers.NewEmployee(employeeService),
		handlers.NewDocumentType(documentService),
		handlers.NewDocument(documentService),
		middleware.NewAuth(authService),
		middleware.LoggerMiddleware(log),
	)

	return &ServerApp{
		ListenAddr: c.ListenAddr,
		Handler:    router,
		Logger:     log,
		closeDB:    pool.Close,
	}, nil
}

// Run starts http server and closes gracefully on context cancellation
func (s *ServerApp) Run(ctx context.Context) error {
	defer s.closeDB()

	httpServer := &http.Server{
		Addr:    s.ListenAddr,
		Handler: s.Handler,
	}

	idleConnsClosed := make(chan struct{})
	srvCtx, srvCtxCancel := context.WithCancel(ctx)
	defer srvCtxCancel()

	go func() {
		<-srvCtx.Done()

		timeoutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(timeoutCtx); err == context.DeadlineExceeded {
			s.Logger.Error("HTTP server shutdown timeout exceeded, forcing shutdown...")
		}
		s.Logger.Info("HTTP server stopped")
		close(idleConnsClosed)
	}()

	// Listen and serve until context is cancelled; then close gracefully connections
	s.Logger.Info("Starting server", "address", s.ListenAddr)
	err := httpServer.ListenAndServe()
	srvCtxCancel()
	<-idleConnsClosed

	return err
}
