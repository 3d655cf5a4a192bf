package matching

import (
	"github.com/gorilla/mux"
	"github.com/lusotown/lusotown-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/matches").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("/search", handler.SearchMatches).Methods("POST")
	api.HandleFunc("/compatibility/{profileId}", handler.GetCompatibility).Methods("GET")
}
