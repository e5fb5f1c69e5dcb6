package api

import (
	"net/http"

	"foodgram-api/service"

	"github.com/gin-gonic/gin"
)

// NewRouter wires every endpoint under /api/v1. When mediaDir is non-empty
// the filesystem media directory is served under /media.
func NewRouter(svc *service.Service, mediaDir string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if mediaDir != "" {
		router.Static("/media", mediaDir)
	}

	authHandler := NewAuthHandler(svc)
	userHandler := NewUserHandler(svc)
	recipeHandler := NewRecipeHandler(svc)
	engagementHandler := NewEngagementHandler(svc)
	catalogHandler := NewCatalogHandler(svc)

	v1 := router.Group("/api/v1")
	authed := v1.Group("", RequireAuth(svc))

	v1.POST("/auth/register", authHandler.Register)
	v1.POST("/auth/login", authHandler.Login)
	v1.POST("/auth/refresh", authHandler.Refresh)

	v1.GET("/users", userHandler.List)
	v1.GET("/users/:id", userHandler.Get)
	v1.GET("/users/:id/stats", userHandler.Stats)
	v1.GET("/users/:id/recipes", recipeHandler.ListByAuthor)
	v1.GET("/users/:id/followers", userHandler.ListFollowers)
	authed.GET("/me", userHandler.GetMe)
	authed.PATCH("/me", userHandler.UpdateMe)
	authed.POST("/users/:id/subscribe", userHandler.Subscribe)
	authed.DELETE("/users/:id/subscribe", userHandler.Unsubscribe)
	authed.GET("/subscriptions", userHandler.ListSubscriptions)

	v1.GET("/tags", catalogHandler.ListTags)
	v1.GET("/tags/:id", catalogHandler.GetTag)
	authed.POST("/tags", catalogHandler.CreateTag)
	authed.PATCH("/tags/:id", catalogHandler.UpdateTag)
	authed.DELETE("/tags/:id", catalogHandler.DeleteTag)

	v1.GET("/ingredients", catalogHandler.ListIngredients)
	v1.GET("/ingredients/:id", catalogHandler.GetIngredient)
	authed.POST("/ingredients", catalogHandler.CreateIngredient)

	v1.GET("/recipes", recipeHandler.List)
	v1.GET("/recipes/:id", recipeHandler.Get)
	v1.GET("/recipes/:id/stats", recipeHandler.Stats)
	authed.POST("/recipes", recipeHandler.Create)
	authed.PATCH("/recipes/:id", recipeHandler.Update)
	authed.DELETE("/recipes/:id", recipeHandler.Delete)

	authed.POST("/recipes/:id/favorite", engagementHandler.AddFavorite)
	authed.DELETE("/recipes/:id/favorite", engagementHandler.RemoveFavorite)
	authed.GET("/favorites", engagementHandler.ListFavorites)

	authed.POST("/recipes/:id/shopping_cart", engagementHandler.AddToShoppingList)
	authed.DELETE("/recipes/:id/shopping_cart", engagementHandler.RemoveFromShoppingList)
	authed.GET("/shopping_cart", engagementHandler.ListShoppingList)
	authed.GET("/shopping_cart/aggregate", engagementHandler.AggregateShoppingList)

	authed.POST("/recipes/:id/rate", engagementHandler.Rate)
	v1.GET("/recipes/:id/ratings", engagementHandler.ListRatings)

	authed.POST("/recipes/:id/comments", engagementHandler.CreateComment)
	v1.GET("/recipes/:id/comments", engagementHandler.ListComments)
	authed.PATCH("/comments/:id", engagementHandler.UpdateComment)
	authed.DELETE("/comments/:id", engagementHandler.DeleteComment)

	return router
}
