package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gatherly/gatherly-api/docs"
	v1 "github.com/gatherly/gatherly-api/internal/api/handler/v1"
	"github.com/gatherly/gatherly-api/internal/api/middleware"
	"github.com/gatherly/gatherly-api/internal/config"
	"github.com/gatherly/gatherly-api/internal/mailer"
	"github.com/gatherly/gatherly-api/internal/notifier"
	"github.com/gatherly/gatherly-api/internal/repository"
	"github.com/gatherly/gatherly-api/internal/repository/dao"
	"github.com/gatherly/gatherly-api/internal/service"
)

type Server struct {
	Config   *config.AppConfig
	Router   *gin.Engine
	Notifier *notifier.Notifier
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	smtpMailer, err := mailer.NewSMTPMailer(conf.SMTP, zap.L())
	if err != nil {
		zap.L().Fatal("failed to initialize mailer", zap.Error(err))
	}
	s.Notifier = notifier.New(smtpMailer, zap.L())
	s.Notifier.Start()

	authHandler := s.initAuthHandler(db)
	participantHandler := s.initParticipantHandler(db)
	eventHandler := s.initEventHandler(db)
	participationHandler := s.initParticipationHandler(db)
	s.MountHandlers(authHandler, participantHandler, eventHandler, participationHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	participantDAO := dao.NewParticipantDAO(db)
	repo := repository.NewParticipantRepository(participantDAO)
	svc := service.NewAuthService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initParticipantHandler(db *gorm.DB) *v1.ParticipantHandler {
	participantDAO := dao.NewParticipantDAO(db)
	repo := repository.NewParticipantRepository(participantDAO)
	svc := service.NewParticipantService(repo)
	authSvc := service.NewAuthService(repo)
	handler := v1.NewParticipantHandler(svc, authSvc)

	return handler
}

func (s *Server) initEventHandler(db *gorm.DB) *v1.EventHandler {
	pRepo := repository.NewParticipantRepository(dao.NewParticipantDAO(db))
	repo := repository.NewEventRepository(dao.NewEventDAO(db), pRepo)
	organizers := repository.NewParticipationRepository(dao.NewParticipationDAO(db), pRepo)
	svc := service.NewEventService(repo, organizers)
	handler := v1.NewEventHandler(svc)

	return handler
}

func (s *Server) initParticipationHandler(db *gorm.DB) *v1.ParticipationHandler {
	pRepo := repository.NewParticipantRepository(dao.NewParticipantDAO(db))
	repo := repository.NewParticipationRepository(dao.NewParticipationDAO(db), pRepo)
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db), pRepo)
	svc := service.NewParticipationService(repo, eventRepo, s.Notifier)
	handler := v1.NewParticipationHandler(svc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(authHandler *v1.AuthHandler, participantHandler *v1.ParticipantHandler, eventHandler *v1.EventHandler, participationHandler *v1.ParticipationHandler) {
	const basePath = "/api/v1"

	open := s.Router.Group(basePath)
	{
		open.POST("/auth/login", authHandler.HandleLogin)
		// Self-registration is the one unauthenticated entity route.
		open.POST("/participants/", participantHandler.HandleRegisterParticipant)
	}

	authed := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		authed.GET("/events/", eventHandler.HandleListEvents)
		authed.POST("/events/", eventHandler.HandleCreateEvent)
		authed.POST("/events/join/", participationHandler.HandleJoinEvent)
		authed.GET("/events/:eventID", eventHandler.HandleGetEvent)
		authed.PUT("/events/:eventID", eventHandler.HandleUpdateEvent)
		authed.DELETE("/events/:eventID", eventHandler.HandleDeleteEvent)
		authed.GET("/events/:eventID/participants", eventHandler.HandleListEventParticipants)

		authed.GET("/participants/", participantHandler.HandleListParticipants)
		authed.GET("/participants/:participantID", participantHandler.HandleGetParticipant)
		authed.PUT("/participants/:participantID", participantHandler.HandleUpdateParticipant)
		authed.DELETE("/participants/:participantID", participantHandler.HandleDeleteParticipant)

		authed.GET("/participations/", participationHandler.HandleListParticipations)
		authed.POST("/participations/", participationHandler.HandleCreateParticipation)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Gatherly API"
	docs.SwaggerInfo.Description = "Event-registration backend: participants, events and the join workflow."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
