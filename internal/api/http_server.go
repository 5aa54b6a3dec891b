// Package api provides handlers for external APIs and interfaces
package api

import (
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/greenspace/garden-bot/internal/entities"
	"github.com/greenspace/garden-bot/internal/repository"
	"github.com/greenspace/garden-bot/internal/usecases"
)

// HTTPServer exposes the garden engine over a JSON API
type HTTPServer struct {
	useCase         *usecases.GardenUseCase
	defaultLocation string
	engine          *gin.Engine
}

// NewHTTPServer creates the server and registers all routes
func NewHTTPServer(useCase *usecases.GardenUseCase, defaultLocation string) *HTTPServer {
	s := &HTTPServer{
		useCase:         useCase,
		defaultLocation: defaultLocation,
		engine:          gin.Default(),
	}

	s.engine.GET("/health", s.health)

	apiGroup := s.engine.Group("/api")
	{
		apiGroup.GET("/weather", s.getWeather)
		apiGroup.GET("/recommendation", s.getRecommendation)
		apiGroup.POST("/chat", s.postChat)
		apiGroup.GET("/plants", s.listPlants)
		apiGroup.POST("/plants", s.createPlant)
		apiGroup.POST("/plants/:id/water", s.waterPlant)
	}

	return s
}

// Run starts listening on addr
func (s *HTTPServer) Run(addr string) error {
	log.Printf("Garden API listening on %s", addr)
	return s.engine.Run(addr)
}

// Engine exposes the router for tests
func (s *HTTPServer) Engine() *gin.Engine {
	return s.engine
}

func (s *HTTPServer) health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// getWeather returns the normalized snapshot for ?location=. The response
// body is the snapshot itself, matching the dashboard contract.
func (s *HTTPServer) getWeather(c *gin.Context) {
	location := c.DefaultQuery("location", s.defaultLocation)
	snapshot, err := s.useCase.CurrentWeather(c.Request.Context(), location)
	if err != nil {
		log.Printf("Weather fetch failed for %q: %v", location, err)
		BadGateway(c, "Failed to fetch weather data")
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// getRecommendation derives the global watering recommendation for
// ?location=. Provider failures degrade to the awaiting-data state.
func (s *HTTPServer) getRecommendation(c *gin.Context) {
	location := c.DefaultQuery("location", s.defaultLocation)
	recommendation, snapshot := s.useCase.RecommendFor(c.Request.Context(), location)
	c.JSON(http.StatusOK, gin.H{
		"recommendation": recommendation,
		"weather":        snapshot,
	})
}

// chatRequest carries the user's question plus the dashboard's current state
type chatRequest struct {
	Message string                    `json:"message"`
	Weather *entities.WeatherSnapshot `json:"weather"`
	Plants  []entities.Plant          `json:"plants"`
}

// postChat answers a gardening question. Assistant failures never produce an
// error body; every failure path resolves to a message string.
func (s *HTTPServer) postChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid chat payload: "+err.Error())
		return
	}
	if req.Message == "" {
		BadRequest(c, "message must not be empty")
		return
	}

	reply := s.useCase.Ask(c.Request.Context(), req.Message, req.Weather, req.Plants)
	c.JSON(http.StatusOK, gin.H{"message": reply})
}

func (s *HTTPServer) listPlants(c *gin.Context) {
	reports, err := s.useCase.ListPlants(time.Now())
	if err != nil {
		InternalServerError(c, err.Error())
		return
	}
	Success(c, reports)
}

type createPlantRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

func (s *HTTPServer) createPlant(c *gin.Context) {
	var req createPlantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid plant payload: "+err.Error())
		return
	}

	plant, err := s.useCase.AddPlant(req.Name, entities.PlantType(req.Type))
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	Created(c, plant)
}

// waterPlantRequest distinguishes an omitted amount (default applies) from an
// explicit non-positive one (rejected).
type waterPlantRequest struct {
	AmountMl *int `json:"amountMl"`
}

func (s *HTTPServer) waterPlant(c *gin.Context) {
	// An empty body is fine, the default amount applies.
	var req waterPlantRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		BadRequest(c, "invalid watering payload: "+err.Error())
		return
	}

	amount := usecases.DefaultWaterAmountMl
	if req.AmountMl != nil {
		amount = *req.AmountMl
	}
	if amount <= 0 {
		BadRequest(c, "water amount must be positive")
		return
	}

	plant, err := s.useCase.WaterPlant(c.Param("id"), amount, time.Now())
	if err != nil {
		if errors.Is(err, repository.ErrPlantNotFound) {
			NotFound(c, err.Error())
			return
		}
		InternalServerError(c, err.Error())
		return
	}
	Success(c, plant)
}
