package handlers

import (
	"database/sql"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"photofeed/internal/config"
	"photofeed/internal/middleware"
	"photofeed/internal/moderation"
	"photofeed/internal/repository"
	"photofeed/internal/service"
	"photofeed/internal/storage"
)

type HandlerSet struct {
	log       zerolog.Logger
	cfg       *config.AppConfig
	auth      *service.AuthService
	upload    *service.UploadService
	moderator *moderation.Moderator
	db        *sql.DB
	users     *repository.UserRepository
	photos    *repository.PhotoRepository
	likes     *repository.ReactionRepository
	saves     *repository.ReactionRepository
	comments  *repository.CommentRepository
}

func NewHandlerSet(log zerolog.Logger, db *sql.DB, sink storage.Sink, moderator *moderation.Moderator, cfg *config.AppConfig) HandlerSet {
	userRepo := repository.NewUserRepository(db)
	photoRepo := repository.NewPhotoRepository(db)

	return HandlerSet{
		log:       log,
		cfg:       cfg,
		auth:      service.NewAuthService(userRepo, log),
		upload:    service.NewUploadService(photoRepo, sink, log),
		moderator: moderator,
		db:        db,
		users:     userRepo,
		photos:    photoRepo,
		likes:     repository.NewLikeRepository(db),
		saves:     repository.NewSaveRepository(db),
		comments:  repository.NewCommentRepository(db),
	}
}

func (h HandlerSet) Register(router *gin.Engine) {
	router.GET("/", h.Home)
	router.GET("/healthz", h.Health)

	router.GET("/register", h.RegisterForm)
	router.POST("/register", h.RegisterSubmit)
	router.GET("/login", h.LoginForm)
	router.POST("/login", h.LoginSubmit)
	router.GET("/logout", h.Logout)

	pages := router.Group("")
	pages.Use(middleware.Auth(h.cfg, h.users))
	pages.GET("/feed", h.Feed)
	pages.GET("/u/:username", h.Profile)
	pages.GET("/upload", h.UploadForm)
	pages.POST("/upload", h.UploadSubmit)

	api := router.Group("")
	api.Use(middleware.AuthJSON(h.cfg, h.users))
	api.POST("/like/:photoID", h.ToggleLike)
	api.POST("/save/:photoID", h.ToggleSave)
	api.POST("/comment/:photoID", h.PostComment)
}
