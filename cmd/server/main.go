package main

import (
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"airrvie/config"
	"airrvie/database"
	"airrvie/router"

	"airrvie/pkg/ai"
	"airrvie/pkg/jsonx"
	"airrvie/pkg/otp"
	"airrvie/pkg/ownership"
	"airrvie/pkg/storage"

	authCtrlImp "airrvie/pkg/auth/controllerImp"
	authRepoImp "airrvie/pkg/auth/repositoryImp"

	userCtrlImp "airrvie/pkg/user/controllerImp"
	userRepoImp "airrvie/pkg/user/repositoryImp"

	farmCtrlImp "airrvie/pkg/farm/controllerImp"
	farmRepoImp "airrvie/pkg/farm/repositoryImp"

	plotCtrlImp "airrvie/pkg/plot/controllerImp"
	plotRepoImp "airrvie/pkg/plot/repositoryImp"

	taskCtrlImp "airrvie/pkg/task/controllerImp"
	taskRepoImp "airrvie/pkg/task/repositoryImp"

	journalCtrlImp "airrvie/pkg/journal/controllerImp"
	journalRepoImp "airrvie/pkg/journal/repositoryImp"

	uploadCtrlImp "airrvie/pkg/upload/controllerImp"
	uploadRepoImp "airrvie/pkg/upload/repositoryImp"

	assistantCtrlImp "airrvie/pkg/assistant/controllerImp"
	assistantRepoImp "airrvie/pkg/assistant/repositoryImp"

	knowledgeCtrlImp "airrvie/pkg/knowledge/controllerImp"
	knowledgeRepoImp "airrvie/pkg/knowledge/repositoryImp"

	weatherCtrlImp "airrvie/pkg/weather/controllerImp"
	weatherRepoImp "airrvie/pkg/weather/repositoryImp"

	healthCtrlImp "airrvie/pkg/health/controllerImp"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg := config.Load()
	db := database.OpenSQLite(cfg.DBPath)

	store, err := storage.NewLocal(cfg.UploadDir, cfg.UploadBaseURL)
	if err != nil {
		logrus.WithError(err).Fatal("storage init")
	}

	e := echo.New()
	e.HideBanner = true
	e.JSONSerializer = jsonx.Serializer{}
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	guard := ownership.New(db)

	var responder ai.Responder
	if cfg.AIEndpoint != "" && cfg.AIKey != "" {
		responder = ai.NewOpenAI(cfg.AIEndpoint, cfg.AIKey, cfg.AIModel)
	} else {
		responder = ai.NewRules()
	}

	authCtrl := authCtrlImp.New(authRepoImp.New(db), otp.NewStore(), cfg.JWTSecret, cfg.TokenTTL, cfg.OTPDebug)
	farmRepo := farmRepoImp.New(db)
	userCtrl := userCtrlImp.New(userRepoImp.New(db), farmRepo)
	farmCtrl := farmCtrlImp.New(farmRepo)
	plotCtrl := plotCtrlImp.New(plotRepoImp.New(db), guard)
	taskCtrl := taskCtrlImp.New(taskRepoImp.New(db), guard)
	journalCtrl := journalCtrlImp.New(journalRepoImp.New(db), guard)
	uploadCtrl := uploadCtrlImp.New(uploadRepoImp.New(db), store)
	assistantCtrl := assistantCtrlImp.New(assistantRepoImp.New(db), responder)
	knowledgeCtrl := knowledgeCtrlImp.New(knowledgeRepoImp.New(db), cfg.KBAllowedDomains)
	weatherCtrl := weatherCtrlImp.New(weatherRepoImp.NewOpenWeather(cfg.WeatherAPIKey), weatherRepoImp.NewLocations(db))
	healthCtrl := healthCtrlImp.New(db)

	r := router.New(
		e,
		cfg.JWTSecret,
		cfg.UploadDir,
		authCtrl,
		userCtrl,
		farmCtrl,
		plotCtrl,
		taskCtrl,
		journalCtrl,
		uploadCtrl,
		assistantCtrl,
		knowledgeCtrl,
		weatherCtrl,
		healthCtrl,
	)

	logrus.WithField("port", cfg.Port).Info("listening")
	if err := r.Start(":" + cfg.Port); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}
