package router

import (
	"github.com/labstack/echo/v4"

	"airrvie/pkg/middleware"
)

// New wires every controller onto the echo instance. Anything below the
// bearer group requires a valid token; auth, health and general weather
// stay public.
func New(
	e *echo.Echo,
	jwtSecret string,
	uploadDir string,
	authCtrl interface {
		Register(echo.Context) error
		Login(echo.Context) error
		Logout(echo.Context) error
		Me(echo.Context) error
		RequestOTP(echo.Context) error
		VerifyOTP(echo.Context) error
	},
	userCtrl interface {
		List(echo.Context) error
		Me(echo.Context) error
		UpdateMe(echo.Context) error
		Stats(echo.Context) error
		Profile(echo.Context) error
	},
	farmCtrl interface {
		List(echo.Context) error
		Create(echo.Context) error
		Update(echo.Context) error
		Delete(echo.Context) error
	},
	plotCtrl interface {
		List(echo.Context) error
		Create(echo.Context) error
		Update(echo.Context) error
		Delete(echo.Context) error
	},
	taskCtrl interface {
		List(echo.Context) error
		Upcoming(echo.Context) error
		Create(echo.Context) error
		Update(echo.Context) error
		Complete(echo.Context) error
		Delete(echo.Context) error
		Stats(echo.Context) error
	},
	journalCtrl interface {
		List(echo.Context) error
		ListByPlot(echo.Context) error
		Create(echo.Context) error
		Update(echo.Context) error
		Delete(echo.Context) error
		Stats(echo.Context) error
		Export(echo.Context) error
	},
	uploadCtrl interface {
		Image(echo.Context) error
		Audio(echo.Context) error
		Delete(echo.Context) error
	},
	assistantCtrl interface {
		ListConversations(echo.Context) error
		CreateConversation(echo.Context) error
		GetConversation(echo.Context) error
		SendMessage(echo.Context) error
		DeleteConversation(echo.Context) error
		Suggestions(echo.Context) error
	},
	knowledgeCtrl interface {
		IngestText(echo.Context) error
		IngestURL(echo.Context) error
		Search(echo.Context) error
	},
	weatherCtrl interface {
		Get(echo.Context) error
		ForPlot(echo.Context) error
		Forecast(echo.Context) error
	},
	healthCtrl interface{ Health(echo.Context) error },
) *echo.Echo {
	e.GET("/health", healthCtrl.Health)
	e.Static("/uploads", uploadDir)

	api := e.Group("/api")

	api.POST("/auth/register", authCtrl.Register)
	api.POST("/auth/login", authCtrl.Login)
	api.POST("/auth/otp/request", authCtrl.RequestOTP)
	api.POST("/auth/otp/verify", authCtrl.VerifyOTP)

	api.GET("/weather", weatherCtrl.Get)
	api.GET("/weather/forecast", weatherCtrl.Forecast)

	auth := api.Group("", middleware.Bearer(jwtSecret))

	auth.POST("/auth/logout", authCtrl.Logout)
	auth.GET("/auth/me", authCtrl.Me)

	auth.GET("/users", userCtrl.List)
	auth.GET("/users/me", userCtrl.Me)
	auth.PUT("/users/me", userCtrl.UpdateMe)
	auth.GET("/users/stats", userCtrl.Stats)
	auth.GET("/users/profile", userCtrl.Profile)

	auth.GET("/farms", farmCtrl.List)
	auth.POST("/farms", farmCtrl.Create)
	auth.PUT("/farms/:id", farmCtrl.Update)
	auth.DELETE("/farms/:id", farmCtrl.Delete)

	auth.GET("/plots", plotCtrl.List)
	auth.POST("/plots", plotCtrl.Create)
	auth.PUT("/plots/:id", plotCtrl.Update)
	auth.DELETE("/plots/:id", plotCtrl.Delete)

	auth.GET("/tasks", taskCtrl.List)
	auth.GET("/tasks/upcoming", taskCtrl.Upcoming)
	auth.GET("/tasks/stats", taskCtrl.Stats)
	auth.POST("/tasks", taskCtrl.Create)
	auth.PUT("/tasks/:id", taskCtrl.Update)
	auth.PUT("/tasks/:id/complete", taskCtrl.Complete)
	auth.DELETE("/tasks/:id", taskCtrl.Delete)

	auth.GET("/journal", journalCtrl.List)
	auth.GET("/journal/plot/:plot_id", journalCtrl.ListByPlot)
	auth.GET("/journal/stats", journalCtrl.Stats)
	auth.GET("/journal/export", journalCtrl.Export)
	auth.POST("/journal", journalCtrl.Create)
	auth.PUT("/journal/:id", journalCtrl.Update)
	auth.DELETE("/journal/:id", journalCtrl.Delete)

	auth.POST("/uploads/image", uploadCtrl.Image)
	auth.POST("/uploads/audio", uploadCtrl.Audio)
	auth.DELETE("/uploads/:id", uploadCtrl.Delete)

	auth.GET("/assistant/conversations", assistantCtrl.ListConversations)
	auth.POST("/assistant/conversations", assistantCtrl.CreateConversation)
	auth.GET("/assistant/conversations/:id", assistantCtrl.GetConversation)
	auth.POST("/assistant/conversations/:id/messages", assistantCtrl.SendMessage)
	auth.DELETE("/assistant/conversations/:id", assistantCtrl.DeleteConversation)
	auth.GET("/assistant/suggestions", assistantCtrl.Suggestions)
	auth.GET("/assistant/knowledge", knowledgeCtrl.Search)

	auth.POST("/kb/ingest", knowledgeCtrl.IngestText)
	auth.POST("/kb/ingest/url", knowledgeCtrl.IngestURL)
	auth.GET("/kb/search", knowledgeCtrl.Search)

	auth.GET("/weather/plot/:id", weatherCtrl.ForPlot)

	return e
}
