package server

import (
	"html/template"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/dbrown13/home-harmony/internal/config"
	"github.com/dbrown13/home-harmony/internal/handler"
	"github.com/dbrown13/home-harmony/internal/middleware"
	"github.com/dbrown13/home-harmony/internal/repository"
	"github.com/dbrown13/home-harmony/internal/service"
)

type Server struct {
	router *gin.Engine
	db     *sqlx.DB
	cfg    *config.Config
	logger *zap.Logger
}

func NewServer(db *sqlx.DB, cfg *config.Config, logger *zap.Logger) *Server {
	router := gin.Default()
	// html/template refuses data: URIs by default; inline base64 images need
	// an explicit template.URL
	router.SetFuncMap(template.FuncMap{
		"imgsrc": func(imageType, data string) template.URL {
			return template.URL("data:image/" + imageType + ";base64," + data)
		},
	})
	router.LoadHTMLGlob("templates/*.html")
	router.Static("/static", "./static")

	s := &Server{
		router: router,
		db:     db,
		cfg:    cfg,
		logger: logger,
	}

	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	userRepo := repository.NewUserRepository(s.db, s.logger)
	roomRepo := repository.NewRoomRepository(s.db, s.logger)
	imageRepo := repository.NewImageRepository(s.db, s.logger)

	authService := service.NewAuthService(userRepo, s.logger)
	tokenService := service.NewTokenService(s.cfg.Auth.Secret, time.Duration(s.cfg.Auth.TokenTTLSeconds)*time.Second)

	keyFunc := service.PrefixedKey
	if s.cfg.Uploads.RandomKeys {
		keyFunc = service.RandomKey
	}
	imageService := service.NewImageService(imageRepo, s.cfg.Uploads.Dir, keyFunc, service.KeepOrphans{}, s.logger)
	sweeper := service.NewSweeper(s.cfg.Uploads.Dir, s.logger)
	mailer := service.NewMailer(s.cfg.SMTP.Host, s.cfg.SMTP.Port, s.cfg.SMTP.Username, s.cfg.SMTP.Password, s.cfg.SMTP.To, s.logger)

	authHandler := handler.NewAuthHandler(authService, tokenService, sweeper, s.logger)
	accountHandler := handler.NewAccountHandler(authService, s.logger)
	roomHandler := handler.NewRoomHandler(roomRepo, imageService, s.logger)
	imageHandler := handler.NewImageHandler(imageService, roomRepo, s.logger)
	contactHandler := handler.NewContactHandler(mailer, s.logger)

	s.router.Use(middleware.CurrentUser(tokenService))

	// Login, signup, logout
	s.router.GET("/", authHandler.LoginPage)
	s.router.POST("/login", authHandler.Login)
	s.router.GET("/signup", authHandler.SignupPage)
	s.router.POST("/signup", authHandler.Signup)
	s.router.GET("/logout", authHandler.Logout)

	// Rooms; the listing pages tolerate anonymous visitors, every mutation
	// requires a principal
	s.router.GET("/home", roomHandler.Home)
	s.router.GET("/rooms", roomHandler.Rooms)

	s.router.GET("/contact", contactHandler.ContactPage)
	s.router.POST("/contact", contactHandler.SubmitContact)

	authRequired := s.router.Group("/")
	authRequired.Use(middleware.RequireAuth())
	{
		authRequired.GET("/get_account", accountHandler.AccountPage)
		authRequired.POST("/get_account", accountHandler.VerifyAccount)
		authRequired.POST("/account", accountHandler.UpdateAccount)
		authRequired.GET("/delete_account", accountHandler.DeleteAccount)

		authRequired.GET("/add_room", roomHandler.AddRoomPage)
		authRequired.POST("/add_room", roomHandler.AddRoom)
		authRequired.GET("/edit_room/:room_id", roomHandler.EditRoomPage)
		authRequired.POST("/edit_room/:room_id", roomHandler.EditRoom)
		authRequired.GET("/delete_room/:room_id", roomHandler.DeleteRoom)

		authRequired.GET("/room_images/:room_id", imageHandler.RoomImages)
		authRequired.GET("/all_images", imageHandler.AllImages)
		authRequired.POST("/upload_image_form/:room_id", imageHandler.UploadForm)
		authRequired.POST("/upload_image/:room_id", imageHandler.Upload)
		authRequired.GET("/edit_image/:room_id/:image_id", imageHandler.EditImagePage)
		authRequired.POST("/edit_image/:room_id/:image_id", imageHandler.EditImage)
		authRequired.GET("/delete_image/:room_id/:image_id", imageHandler.DeleteImage)
	}
}

func (s *Server) Run(addr string) {
	s.logger.Info("Server starting", zap.String("addr", addr))
	if err := s.router.Run(addr); err != nil {
		s.logger.Fatal("Server failed to start", zap.Error(err))
	}
}
