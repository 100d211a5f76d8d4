package app

import (
	"net/http"

	"family-talk-go/internal/config"
	"family-talk-go/internal/db"
	familydomain "family-talk-go/internal/domain/family"
	messagedomain "family-talk-go/internal/domain/message"
	scheduledomain "family-talk-go/internal/domain/schedule"
	userdomain "family-talk-go/internal/domain/user"
	"family-talk-go/internal/repository/inmemory"
	familyrepo "family-talk-go/internal/repository/postgres/family"
	messagerepo "family-talk-go/internal/repository/postgres/message"
	schedulerepo "family-talk-go/internal/repository/postgres/schedule"
	userrepo "family-talk-go/internal/repository/postgres/user"
	"family-talk-go/internal/transport/httpserver"
	"family-talk-go/internal/transport/httpserver/handler"
	"family-talk-go/pkg/logger"
	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
}

func New(log logger.Logger) (*App, error) {
	cfg := config.Load(log)

	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(dbConn); err != nil {
		return nil, err
	}

	users := userdomain.NewService(userrepo.NewPostgres(dbConn))
	families := familydomain.NewService(familyrepo.NewPostgres(dbConn)).
		WithCache(inmemory.NewFamilyCache(), cfg.FamilyCacheTTL)
	messages := messagedomain.NewService(messagerepo.NewPostgres(dbConn))
	schedules := scheduledomain.NewService(schedulerepo.NewPostgres(dbConn))

	handlers := handler.New(users, families, messages, schedules, log)
	router := httpserver.NewRouter(cfg, handlers)

	return &App{
		cfg:        cfg,
		httpServer: httpserver.New(cfg, router),
		db:         dbConn,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
