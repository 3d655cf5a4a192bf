package connections

import (
	"github.com/gorilla/mux"

	"github.com/lusotown/lusotown-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, hub *Hub, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/connections").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("/requests", handler.CreateRequest).Methods("POST")
	api.HandleFunc("/requests", handler.ListRequests).Methods("GET")
	api.HandleFunc("/requests/{id}/respond", handler.RespondToRequest).Methods("POST")

	api.HandleFunc("", handler.ListConnections).Methods("GET")
	api.HandleFunc("/check/{memberId}", handler.CheckConnection).Methods("GET")

	api.HandleFunc("/ws", hub.ServeWS).Methods("GET")
}
