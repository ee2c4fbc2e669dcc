package wire

import (
	"Darugi/internal/api"
	"Darugi/internal/api/config"
	"Darugi/internal/api/handler"
	"Darugi/internal/pkg/database"
	"Darugi/internal/pkg/markdown"
	"Darugi/internal/pkg/security"
	"Darugi/internal/pkg/view"
	"Darugi/internal/repository"
	"Darugi/internal/repository/boltdb"
	"Darugi/internal/repository/memory"
	"Darugi/internal/service"
	"errors"
	"fmt"
	log "log/slog"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	Handler http.Handler // Router 外加传输层包装（gzip）
	DB      *gorm.DB     // 仅 SQL 驱动下非空
	closers []func() error
}

// Repositories 存储层实现
type Repositories struct {
	Post    repository.PostRepo
	Comment repository.CommentRepo
}

// BuildApplication 按 database.driver 打开存储并组装路由
func BuildApplication(cfg *config.Config) (*ApplicationContainer, error) {
	app := &ApplicationContainer{}
	repos, err := app.openRepositories(&cfg.DB)
	if err != nil {
		return nil, err
	}

	router, err := BuildRouter(repos, cfg)
	if err != nil {
		_ = app.Close()
		return nil, err
	}

	app.Router = router
	app.Handler = router
	if cfg.Server.Gzip {
		app.Handler = gzhttp.GzipHandler(router)
	}
	return app, nil
}

// Close 释放存储连接
func (a *ApplicationContainer) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *ApplicationContainer) openRepositories(cfg *config.DBConfig) (Repositories, error) {
	switch cfg.Driver {
	case database.DriverMemory:
		log.Warn("Using in-memory store, data will be lost on restart")
		store := memory.New()
		return Repositories{Post: store, Comment: store}, nil

	case database.DriverBolt:
		store, err := boltdb.Open(cfg.DSN)
		if err != nil {
			return Repositories{}, fmt.Errorf("failed to open bolt store: %w", err)
		}
		a.closers = append(a.closers, store.Close)
		log.Info("Bolt store opened successfully.", "path", cfg.DSN)
		return Repositories{Post: store, Comment: store}, nil

	default:
		db, err := database.NewGormDB(cfg)
		if err != nil {
			return Repositories{}, err
		}
		a.DB = db
		a.closers = append(a.closers, func() error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		})
		return Repositories{
			Post:    repository.NewPostRepository(db),
			Comment: repository.NewCommentRepo(db),
		}, nil
	}
}

// BuildRouter 组装 service、handler 与路由
func BuildRouter(repos Repositories, cfg *config.Config) (*gin.Engine, error) {
	md := markdown.New(markdown.Options{
		Style:      cfg.Site.HighlightStyle,
		UnsafeHTML: cfg.Site.UnsafeHTML,
	})

	renderer, err := view.New(view.Site{
		Name:         cfg.Site.Name,
		BaseURL:      cfg.Site.BaseURL,
		Description:  cfg.Site.Description,
		DefaultImage: cfg.Site.DefaultImage,
		Locale:       cfg.Site.Locale,
	}, view.Options{
		Minify:       cfg.Site.MinifyHTML,
		HighlightCSS: md.HighlightCSS(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init view renderer: %w", err)
	}

	postService := service.NewPostService(repos.Post, repos.Comment, md)
	postActionService := service.NewPostActionService(repos.Post, repos.Comment)

	handlers := &api.HandlersGroup{
		PostHandler:       handler.NewPostHandler(postService, renderer),
		PostActionHandler: handler.NewPostActionHandler(postActionService),
		AdminHandler:      handler.NewAdminHandler(postService, renderer),
		SeoHandler:        handler.NewSeoHandler(postService, cfg.Site),
	}

	return api.SetupRouter(handlers, api.RouterOptions{
		SiteOrigin: siteOrigin(cfg.Site.BaseURL),
		Admin: security.Credentials{
			Username: cfg.Admin.Username,
			Password: cfg.Admin.Password,
			Hash:     cfg.Admin.PasswordHash,
		},
	}), nil
}

// siteOrigin scheme://host 形式的站点来源
func siteOrigin(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
