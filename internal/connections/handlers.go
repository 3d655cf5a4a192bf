package connections

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/lusotown/lusotown-backend/internal/auth"
	"github.com/lusotown/lusotown-backend/internal/common/utils"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// CreateRequest handles POST /requests
func (h *Handler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	memberID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var dto CreateConnectionRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := utils.ValidateStruct(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	request, err := h.service.CreateRequest(r.Context(), memberID, &dto)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	utils.RespondWithData(w, http.StatusCreated, "Connection request sent", request)
}

// RespondToRequest handles POST /requests/{id}/respond
func (h *Handler) RespondToRequest(w http.ResponseWriter, r *http.Request) {
	memberID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	requestID := mux.Vars(r)["id"]

	var dto RespondConnectionRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := utils.ValidateStruct(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	request, err := h.service.RespondToRequest(r.Context(), requestID, memberID, &dto)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	utils.RespondWithData(w, http.StatusOK, "Connection request updated", request)
}

// ListRequests handles GET /requests?direction=received|sent
func (h *Handler) ListRequests(w http.ResponseWriter, r *http.Request) {
	memberID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	direction := r.URL.Query().Get("direction")
	requests, err := h.service.ListRequests(r.Context(), memberID, direction)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	utils.RespondWithData(w, http.StatusOK, "Requests retrieved", requests)
}

// ListConnections handles GET /
func (h *Handler) ListConnections(w http.ResponseWriter, r *http.Request) {
	memberID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	conns, err := h.service.ListConnections(r.Context(), memberID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	utils.RespondWithData(w, http.StatusOK, "Connections retrieved", conns)
}

// CheckConnection handles GET /check/{memberId}
func (h *Handler) CheckConnection(w http.ResponseWriter, r *http.Request) {
	memberID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	otherID := mux.Vars(r)["memberId"]
	connected, err := h.service.AreConnected(r.Context(), memberID, otherID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	utils.RespondWithData(w, http.StatusOK, "Connection checked", map[string]bool{
		"connected": connected,
	})
}

func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrRequestNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "Connection request not found")
	case errors.Is(err, ErrMemberNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "Member not found")
	case errors.Is(err, ErrCannotRequestSelf):
		utils.RespondWithError(w, http.StatusBadRequest, "Cannot send a connection request to yourself")
	case errors.Is(err, ErrAlreadyRequested):
		utils.RespondWithError(w, http.StatusConflict, "Connection request already sent")
	case errors.Is(err, ErrAlreadyConnected):
		utils.RespondWithError(w, http.StatusConflict, "Already connected with this member")
	case errors.Is(err, ErrAlreadyResponded):
		utils.RespondWithError(w, http.StatusConflict, "Request has already been responded to")
	case errors.Is(err, ErrUnauthorized):
		utils.RespondWithError(w, http.StatusForbidden, "Not allowed to respond to this request")
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
