// Package api exposes the simulation to presentation collaborators over
// HTTP: a read-only JSON snapshot, action endpoints that funnel into the
// engine's action API, and a websocket feed of drained domain events.
// The API never mutates simulation state directly.
package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/veldtworks/marchlands/internal/catalog"
	"github.com/veldtworks/marchlands/internal/engine"
	"github.com/veldtworks/marchlands/internal/entity"
	"github.com/veldtworks/marchlands/internal/world"
)

// Server serves the world state and action endpoints.
type Server struct {
	Eng  *engine.Engine
	Hub  *Hub
	Port int
}

// Start launches the HTTP server on its own goroutine.
func (s *Server) Start() {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	limiter := NewRateLimiter(30, time.Minute)

	v1 := r.Group("/api/v1")
	v1.GET("/status", s.handleStatus)
	v1.GET("/snapshot", s.handleSnapshot)

	actions := v1.Group("/actions")
	actions.Use(RateLimitMiddleware(limiter))
	actions.POST("/build-road", s.handleBuildRoad)
	actions.POST("/remove-road", s.handleRemoveRoad)
	actions.POST("/build-building", s.handleBuildBuilding)
	actions.POST("/build-in-settlement", s.handleBuildInSettlement)
	actions.POST("/remove-building", s.handleRemoveBuilding)
	actions.POST("/create-army", s.handleCreateArmy)
	actions.POST("/move-army", s.handleMoveArmy)
	actions.POST("/set-tax-rate", s.handleSetTaxRate)
	actions.POST("/set-public-investment", s.handleSetPublicInvestment)
	actions.POST("/train-unit", s.handleTrainUnit)
	actions.POST("/start-research", s.handleStartResearch)
	actions.POST("/toggle-pause", s.handleTogglePause)
	actions.POST("/set-speed", s.handleSetSpeed)

	r.GET("/ws", s.Hub.Handle)

	addr := fmt.Sprintf(":%d", s.Port)
	go func() {
		slog.Info("api server listening", "addr", addr)
		if err := r.Run(addr); err != nil {
			slog.Error("api server stopped", "error", err)
		}
	}()
}

func (s *Server) handleStatus(c *gin.Context) {
	var tick uint64
	var winner *engine.GameResult
	s.Eng.Do(func(sim *engine.Simulation) {
		tick = sim.LastTick
		winner = sim.Winner
	})
	c.JSON(http.StatusOK, gin.H{
		"tick":             tick,
		"ticks_per_second": s.Eng.Speed(),
		"paused":           s.Eng.Paused(),
		"winner":           winner,
	})
}

func (s *Server) handleSnapshot(c *gin.Context) {
	var snap engine.Snapshot
	s.Eng.Do(func(sim *engine.Simulation) {
		snap = sim.Snapshot()
	})
	c.JSON(http.StatusOK, snap)
}

// respond converts an action result into a JSON response. Action rejections
// come back as 422 with the reason; they are domain no-ops, not faults.
func respond(c *gin.Context, err error, body gin.H) {
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	if body == nil {
		body = gin.H{"ok": true}
	}
	c.JSON(http.StatusOK, body)
}

type buildRoadRequest struct {
	Owner     string       `json:"owner" binding:"required"`
	Waypoints []world.Vec2 `json:"waypoints" binding:"required"`
	RoadType  string       `json:"road_type" binding:"required"`
}

func (s *Server) handleBuildRoad(c *gin.Context) {
	var req buildRoadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var road *entity.Road
	var err error
	s.Eng.Do(func(sim *engine.Simulation) {
		road, err = sim.BuildRoad(entity.PlayerID(req.Owner), req.Waypoints, catalog.RoadType(req.RoadType))
	})
	if err != nil {
		respond(c, err, nil)
		return
	}
	respond(c, nil, gin.H{"road_id": road.ID})
}

type idRequest struct {
	Owner string `json:"owner" binding:"required"`
	ID    string `json:"id" binding:"required"`
}

func (s *Server) handleRemoveRoad(c *gin.Context) {
	var req idRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var err error
	s.Eng.Do(func(sim *engine.Simulation) {
		err = sim.RemoveRoad(entity.PlayerID(req.Owner), req.ID)
	})
	respond(c, err, nil)
}

type buildBuildingRequest struct {
	Owner      string     `json:"owner" binding:"required"`
	Type       string     `json:"type" binding:"required"`
	Pos        world.Vec2 `json:"pos"`
	ResourceID string     `json:"resource_id"`
}

func (s *Server) handleBuildBuilding(c *gin.Context) {
	var req buildBuildingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var b *entity.Building
	var err error
	s.Eng.Do(func(sim *engine.Simulation) {
		b, err = sim.BuildBuilding(entity.PlayerID(req.Owner), catalog.BuildingType(req.Type), req.Pos, req.ResourceID)
	})
	if err != nil {
		respond(c, err, nil)
		return
	}
	respond(c, nil, gin.H{"building_id": b.ID})
}

type settlementBuildRequest struct {
	Owner        string `json:"owner" binding:"required"`
	SettlementID string `json:"settlement_id" binding:"required"`
	Type         string `json:"type" binding:"required"`
}

func (s *Server) handleBuildInSettlement(c *gin.Context) {
	var req settlementBuildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var err error
	s.Eng.Do(func(sim *engine.Simulation) {
		err = sim.BuildInSettlement(entity.PlayerID(req.Owner), req.SettlementID, catalog.BuildingType(req.Type))
	})
	respond(c, err, nil)
}

func (s *Server) handleRemoveBuilding(c *gin.Context) {
	var req idRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var err error
	s.Eng.Do(func(sim *engine.Simulation) {
		err = sim.RemoveBuilding(entity.PlayerID(req.Owner), req.ID)
	})
	respond(c, err, nil)
}

type createArmyRequest struct {
	Owner        string         `json:"owner" binding:"required"`
	SettlementID string         `json:"settlement_id" binding:"required"`
	Units        map[string]int `json:"units" binding:"required"`
}

func (s *Server) handleCreateArmy(c *gin.Context) {
	var req createArmyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	units := make(map[catalog.UnitType]int, len(req.Units))
	for ut, n := range req.Units {
		units[catalog.UnitType(ut)] = n
	}
	var army *entity.Army
	var err error
	s.Eng.Do(func(sim *engine.Simulation) {
		army, err = sim.CreateArmy(entity.PlayerID(req.Owner), req.SettlementID, units)
	})
	if err != nil {
		respond(c, err, nil)
		return
	}
	respond(c, nil, gin.H{"army_id": army.ID})
}

type moveArmyRequest struct {
	Owner  string     `json:"owner" binding:"required"`
	ArmyID string     `json:"army_id" binding:"required"`
	Dest   world.Vec2 `json:"dest"`
}

func (s *Server) handleMoveArmy(c *gin.Context) {
	var req moveArmyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var err error
	s.Eng.Do(func(sim *engine.Simulation) {
		err = sim.MoveArmy(entity.PlayerID(req.Owner), req.ArmyID, req.Dest)
	})
	respond(c, err, nil)
}

type taxRequest struct {
	Owner        string  `json:"owner" binding:"required"`
	SettlementID string  `json:"settlement_id" binding:"required"`
	Rate         float64 `json:"rate"`
}

func (s *Server) handleSetTaxRate(c *gin.Context) {
	var req taxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var err error
	s.Eng.Do(func(sim *engine.Simulation) {
		err = sim.SetTaxRate(entity.PlayerID(req.Owner), req.SettlementID, req.Rate)
	})
	respond(c, err, nil)
}

func (s *Server) handleSetPublicInvestment(c *gin.Context) {
	var req taxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var err error
	s.Eng.Do(func(sim *engine.Simulation) {
		err = sim.SetPublicInvestment(entity.PlayerID(req.Owner), req.SettlementID, req.Rate)
	})
	respond(c, err, nil)
}

type trainRequest struct {
	Owner        string `json:"owner" binding:"required"`
	SettlementID string `json:"settlement_id" binding:"required"`
	Unit         string `json:"unit" binding:"required"`
}

func (s *Server) handleTrainUnit(c *gin.Context) {
	var req trainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var err error
	s.Eng.Do(func(sim *engine.Simulation) {
		err = sim.TrainUnit(entity.PlayerID(req.Owner), req.SettlementID, catalog.UnitType(req.Unit))
	})
	respond(c, err, nil)
}

type researchRequest struct {
	Player string `json:"player" binding:"required"`
	Tech   string `json:"tech" binding:"required"`
}

func (s *Server) handleStartResearch(c *gin.Context) {
	var req researchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var err error
	s.Eng.Do(func(sim *engine.Simulation) {
		err = sim.StartResearch(entity.PlayerID(req.Player), catalog.TechID(req.Tech))
	})
	respond(c, err, nil)
}

func (s *Server) handleTogglePause(c *gin.Context) {
	paused := s.Eng.TogglePause()
	c.JSON(http.StatusOK, gin.H{"paused": paused})
}

type speedRequest struct {
	TicksPerSecond float64 `json:"ticks_per_second" binding:"required"`
}

func (s *Server) handleSetSpeed(c *gin.Context) {
	var req speedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.Eng.SetSpeed(req.TicksPerSecond)
	c.JSON(http.StatusOK, gin.H{"ticks_per_second": req.TicksPerSecond})
}
