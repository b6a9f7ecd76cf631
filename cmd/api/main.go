package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"badmintok/internal/config"
	"badmintok/internal/database"
	"badmintok/internal/middleware"
	"badmintok/internal/modules/account"
	"badmintok/internal/modules/admin"
	"badmintok/internal/modules/auth"
	"badmintok/internal/modules/band"
	"badmintok/internal/modules/community"
	"badmintok/internal/modules/contest"
	"badmintok/internal/modules/notification"
	"badmintok/internal/modules/schedule"
	"badmintok/internal/modules/social"
	jwtsvc "badmintok/internal/pkg/jwt"
	"badmintok/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	var cache *redis.Client
	if cfg.RedisAddr != "" {
		cache = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := cache.Ping(context.Background()).Err(); err != nil {
			log.Printf("redis unavailable, continuing without cache: %v", err)
			cache = nil
		}
	}

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	tokenRepo := repository.NewRefreshTokenRepository(db)
	bandRepo := repository.NewBandRepository(db)
	bandPostRepo := repository.NewBandPostRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	communityRepo := repository.NewCommunityRepository(db)
	contestRepo := repository.NewContestRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	supportRepo := repository.NewSupportRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	hub := notification.NewHub()
	var mailer notification.Mailer
	if cfg.SMTPHost != "" {
		mailer = notification.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)
	}
	notificationService := notification.NewService(notificationRepo, userRepo, hub, mailer)
	notificationHandler := notification.NewHandler(notificationService, hub)

	authService := auth.NewService(userRepo, tokenRepo, j, cfg.RefreshTokenPepper, cfg.RefreshTTL)
	authHandler := auth.NewHandler(authService)

	var providers []*social.Provider
	if cfg.Kakao.Configured() {
		providers = append(providers, social.NewKakaoProvider(cfg.Kakao))
	}
	if cfg.Naver.Configured() {
		providers = append(providers, social.NewNaverProvider(cfg.Naver))
	}
	if cfg.Google.Configured() {
		providers = append(providers, social.NewGoogleProvider(cfg.Google))
	}
	socialService := social.NewService(
		providers,
		userRepo,
		profileRepo,
		authService,
		social.NewLocalImageStore("static/images/userprofile"),
	)
	socialHandler := social.NewHandler(socialService)

	accountService := account.NewService(userRepo, profileRepo, supportRepo, tokenRepo)
	accountHandler := account.NewHandler(accountService)

	bandService := band.NewService(bandRepo, userRepo, notificationService)
	bandPostService := band.NewPostService(bandRepo, bandPostRepo)
	bandHandler := band.NewHandler(bandService, bandPostService)

	scheduleService := schedule.NewService(scheduleRepo, bandRepo, notificationService)
	scheduleHandler := schedule.NewHandler(scheduleService)

	communityService := community.NewService(communityRepo, cache)
	communityHandler := community.NewHandler(communityService)

	contestService := contest.NewService(contestRepo)
	contestHandler := contest.NewHandler(contestService)

	adminService := admin.NewService(bandRepo, userRepo, supportRepo, statsRepo, tokenRepo, notificationService)
	adminHandler := admin.NewHandler(adminService)

	r := gin.Default()
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS())

	// The OAuth state parameter lives in a cookie session between the
	// redirect and the provider callback.
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int((10 * time.Minute).Seconds()),
		HttpOnly: true,
	})
	r.Use(sessions.Sessions("badmintok_session", store))

	r.Static("/static", "./static")

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)
		socialHandler.RegisterPublicRoutes(v1)
		bandHandler.RegisterPublicRoutes(v1)
		contestHandler.RegisterPublicRoutes(v1)

		// Post reads are public but identity-aware: authors see their own
		// drafts and logged-in views dedup by user instead of IP.
		withIdentity := v1.Group("/")
		withIdentity.Use(middleware.OptionalJWTAuth(j))
		communityHandler.RegisterPublicRoutes(withIdentity)

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			accountHandler.RegisterProtectedRoutes(protected)
			bandHandler.RegisterProtectedRoutes(protected)
			scheduleHandler.RegisterProtectedRoutes(protected)
			communityHandler.RegisterProtectedRoutes(protected)
			contestHandler.RegisterProtectedRoutes(protected)
			notificationHandler.RegisterProtectedRoutes(protected)
		}

		// admin
		adminGroup := v1.Group("/admin")
		adminGroup.Use(middleware.JWTAuth(j), middleware.AdminOnly())
		{
			adminHandler.RegisterRoutes(adminGroup)
			contestHandler.RegisterAdminRoutes(adminGroup)
		}
	}

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: r,
	}

	go func() {
		log.Printf("listening on %s", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")
	hub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("forced shutdown: %v", err)
	}
}
