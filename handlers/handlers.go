package handlers

import (
	"marketpulse/database"
	"marketpulse/intelligence"
)

// Handler carries the dependencies every route needs. It is constructed
// once in main and registered by routes.SetupRoutes.
type Handler struct {
	Store  *database.Store
	Engine *intelligence.Engine
}

// New builds a Handler with its injected dependencies.
func New(store *database.Store, engine *intelligence.Engine) *Handler {
	return &Handler{Store: store, Engine: engine}
}
