package controllers

import (
	"net/http"

	"github.com/RehanAli357/baby-food/services"
	"github.com/gin-gonic/gin"
)

type FoodController struct {
	Catalog *services.Catalog
}

func NewFoodController(c *services.Catalog) *FoodController {
	return &FoodController{Catalog: c}
}

// GET /api/foods
func (fc *FoodController) ListFoods(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"count": fc.Catalog.Len(),
		"foods": fc.Catalog.Foods(),
	})
}

// GET /api/age-groups
func (fc *FoodController) AgeGroups(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"options": fc.Catalog.Options()})
}

type filterReq struct {
	AgeGroup *string `json:"age_group"`
	Search   string  `json:"search"`
}

// POST /api/foods/filter  { "age_group": "6-8 months", "search": "iron" }
func (fc *FoodController) FilterFoods(c *gin.Context) {
	var req filterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// an omitted age group means no age filter
	state := services.InitialViewState().SetSearch(req.Search)
	if req.AgeGroup != nil {
		state = state.SelectAgeGroup(*req.AgeGroup)
	}

	foods := fc.Catalog.FilterState(state)
	c.JSON(http.StatusOK, gin.H{
		"state": state,
		"count": len(foods),
		"empty": len(foods) == 0,
		"foods": foods,
	})
}
