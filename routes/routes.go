package routes

import (
	"github.com/RehanAli357/baby-food/controllers"
	"github.com/RehanAli357/baby-food/middlewares"
	"github.com/RehanAli357/baby-food/services"
	"github.com/RehanAli357/baby-food/views"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Deps is everything the handlers share.
type Deps struct {
	Catalog  *services.Catalog
	Hub      *services.RealtimeHub
	Renderer *views.Renderer
	Log      *zap.Logger
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(middlewares.Recovery(d.Log), middlewares.RequestLogger(d.Log))
	r.SetHTMLTemplate(d.Renderer.Template())

	page := controllers.NewPageController(d.Catalog)
	foods := controllers.NewFoodController(d.Catalog)
	rt := controllers.NewRealtimeController(d.Catalog, d.Hub, d.Renderer, d.Log)

	r.GET("/", page.Home)
	r.GET("/healthz", controllers.Health(d.Catalog, d.Hub))
	r.GET("/ws/view", rt.ViewWS)

	api := r.Group("/api")
	{
		api.GET("/foods", foods.ListFoods)
		api.GET("/age-groups", foods.AgeGroups)
		api.POST("/foods/filter", foods.FilterFoods)
	}

	return r
}
