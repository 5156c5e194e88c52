package api

import (
	"context"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/sekolahvote/pemira-api/docs"
	v1 "github.com/sekolahvote/pemira-api/internal/api/handler/v1"
	"github.com/sekolahvote/pemira-api/internal/api/middleware"
	"github.com/sekolahvote/pemira-api/internal/config"
	"github.com/sekolahvote/pemira-api/internal/repository"
	"github.com/sekolahvote/pemira-api/internal/repository/dao"
	"github.com/sekolahvote/pemira-api/internal/service"
	"github.com/sekolahvote/pemira-api/internal/tally"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB, rdb *redis.Client, uploader service.ObjectUploader) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	feed := tally.NewFeed(rdb)

	authHandler := s.initAuthHandler(db)
	ballotHandler := s.initBallotHandler(db, feed)
	candidateHandler := s.initCandidateHandler(db, uploader, feed)
	schoolHandler := s.initSchoolHandler(db, uploader)
	tokenHandler := s.initTokenHandler(db, feed)
	reportHandler := s.initReportHandler(db)
	liveHandler := s.initLiveHandler(db, feed)

	go liveHandler.Run(context.Background())

	s.MountHandlers(authHandler, ballotHandler, candidateHandler, schoolHandler, tokenHandler, reportHandler, liveHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	adminDAO := dao.NewAdminDAO(db)
	repo := repository.NewAdminRepository(adminDAO)
	svc := service.NewAuthService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initBallotHandler(db *gorm.DB, feed *tally.Feed) *v1.BallotHandler {
	svc := newBallotService(db, feed)
	handler := v1.NewBallotHandler(s.Config.Ballot, svc)

	return handler
}

func (s *Server) initCandidateHandler(db *gorm.DB, uploader service.ObjectUploader, feed *tally.Feed) *v1.CandidateHandler {
	repo := repository.NewCandidateRepository(dao.NewCandidateDAO(db))
	electionRepo := repository.NewElectionRepository(dao.NewElectionDAO(db))
	svc := service.NewCandidateService(repo, electionRepo, uploader, feed)
	handler := v1.NewCandidateHandler(svc)

	return handler
}

func (s *Server) initSchoolHandler(db *gorm.DB, uploader service.ObjectUploader) *v1.SchoolHandler {
	repo := repository.NewSchoolInfoRepository(dao.NewSchoolInfoDAO(db))
	svc := service.NewSchoolService(repo, uploader)
	handler := v1.NewSchoolHandler(svc)

	return handler
}

func (s *Server) initTokenHandler(db *gorm.DB, feed *tally.Feed) *v1.TokenHandler {
	repo := repository.NewTokenRepository(dao.NewTokenDAO(db))
	candidateRepo := repository.NewCandidateRepository(dao.NewCandidateDAO(db))
	electionRepo := repository.NewElectionRepository(dao.NewElectionDAO(db))
	svc := service.NewTokenService(repo, candidateRepo, electionRepo, feed)
	handler := v1.NewTokenHandler(svc)

	return handler
}

func (s *Server) initReportHandler(db *gorm.DB) *v1.ReportHandler {
	candidateRepo := repository.NewCandidateRepository(dao.NewCandidateDAO(db))
	schoolRepo := repository.NewSchoolInfoRepository(dao.NewSchoolInfoDAO(db))
	svc := service.NewReportService(candidateRepo, schoolRepo)
	schoolSvc := service.NewSchoolService(schoolRepo, nil)
	handler := v1.NewReportHandler(svc, schoolSvc)

	return handler
}

func (s *Server) initLiveHandler(db *gorm.DB, feed *tally.Feed) *v1.LiveResultsHandler {
	svc := newBallotService(db, feed)
	handler := v1.NewLiveResultsHandler(svc, feed)

	return handler
}

func newBallotService(db *gorm.DB, feed *tally.Feed) *service.BallotService {
	tokenRepo := repository.NewTokenRepository(dao.NewTokenDAO(db))
	candidateRepo := repository.NewCandidateRepository(dao.NewCandidateDAO(db))
	electionRepo := repository.NewElectionRepository(dao.NewElectionDAO(db))

	return service.NewBallotService(tokenRepo, candidateRepo, electionRepo, feed)
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	ballotHandler *v1.BallotHandler,
	candidateHandler *v1.CandidateHandler,
	schoolHandler *v1.SchoolHandler,
	tokenHandler *v1.TokenHandler,
	reportHandler *v1.ReportHandler,
	liveHandler *v1.LiveResultsHandler,
) {
	const basePath = "/api/v1"

	public := s.Router.Group(basePath)
	{
		public.POST("/auth/login", authHandler.HandleLogin)

		public.GET("/school", schoolHandler.HandleGetSchoolInfo)
		public.GET("/candidates", candidateHandler.HandleListCandidates)
		public.GET("/candidates/:candidateID", candidateHandler.HandleGetCandidate)

		public.POST("/ballot/validate", ballotHandler.HandleValidateToken)
		public.POST("/ballot/confirm", ballotHandler.HandleConfirmVote)

		public.GET("/results", ballotHandler.HandleGetResults)
		public.GET("/results/live", liveHandler.HandleLiveResults)
	}

	admin := s.Router.Group(basePath+"/admin", middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		admin.GET("/candidates", candidateHandler.HandleListCandidatesAdmin)
		admin.POST("/candidates", candidateHandler.HandleCreateCandidate)
		admin.PATCH("/candidates/:candidateID", candidateHandler.HandleUpdateCandidate)
		admin.PUT("/candidates/:candidateID/photo", candidateHandler.HandleUploadCandidatePhoto)
		admin.DELETE("/candidates/:candidateID", candidateHandler.HandleDeleteCandidate)
		admin.DELETE("/candidates", candidateHandler.HandleDeleteAllCandidates)
		admin.POST("/votes/reset", candidateHandler.HandleResetVotes)

		admin.PUT("/school", schoolHandler.HandleUpdateSchoolInfo)
		admin.PUT("/school/logo", schoolHandler.HandleUploadSchoolLogo)

		admin.POST("/tokens/generate", tokenHandler.HandleGenerateTokens)
		admin.GET("/tokens", tokenHandler.HandleListTokens)
		admin.GET("/tokens/export", tokenHandler.HandleExportTokens)
		admin.PATCH("/tokens/:tokenID", tokenHandler.HandleUpdateToken)
		admin.DELETE("/tokens/:tokenID", tokenHandler.HandleDeleteToken)
		admin.DELETE("/tokens", tokenHandler.HandleDeleteAllTokens)

		admin.GET("/report", reportHandler.HandleGetReport)
		admin.GET("/report/export", reportHandler.HandleExportReport)

		admin.POST("/admins", authHandler.HandleCreateAdmin)
		admin.GET("/admins", authHandler.HandleListAdmins)
		admin.GET("/admins/:adminID", authHandler.HandleGetAdmin)
		admin.DELETE("/admins/:adminID", authHandler.HandleDeleteAdmin)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Pemira API"
	docs.SwaggerInfo.Description = "API for a school council (OSIS) election: token-gated ballots, live results and admin tooling."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
