package handlers

import (
	"honeytrap-lab/internal/domain/services"
	"honeytrap-lab/internal/infrastructure/cache"
	"honeytrap-lab/internal/infrastructure/database"
	"honeytrap-lab/pkg/logger"
)

// Handlers holds all API handlers
type Handlers struct {
	Health   *HealthHandler
	Honeypot *HoneypotHandler
	Sessions *SessionsHandler
}

// Dependencies holds dependencies for handlers
type Dependencies struct {
	Engine *services.Engine
	Cache  *cache.RedisCache
	DB     *database.PostgresDB
	Logger *logger.Logger
}

// NewHandlers creates all handlers
func NewHandlers(deps Dependencies) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(deps.Cache, deps.DB, deps.Logger),
		Honeypot: NewHoneypotHandler(deps.Engine, deps.Logger),
		Sessions: NewSessionsHandler(deps.Engine, deps.Logger),
	}
}
