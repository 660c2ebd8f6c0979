package controllers

import (
	"net/http"

	"github.com/RehanAli357/baby-food/services"
	"github.com/RehanAli357/baby-food/views"
	"github.com/gin-gonic/gin"
)

type PageController struct {
	Catalog *services.Catalog
}

func NewPageController(c *services.Catalog) *PageController {
	return &PageController{Catalog: c}
}

// GET /
// The page always opens in the initial state; later changes travel over
// the view socket.
func (pc *PageController) Home(c *gin.Context) {
	c.HTML(http.StatusOK, "page.html", views.NewPageData(pc.Catalog, services.InitialViewState()))
}
