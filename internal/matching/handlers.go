package matching

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/lusotown/lusotown-backend/internal/common/utils"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) SearchMatches(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req SearchMatchesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		respondEngineError(w, http.StatusBadRequest, ErrorKindInvalidCriteria, err.Error())
		return
	}

	resp, err := h.service.SearchMatches(r.Context(), userID, &req)
	if err != nil {
		h.respondSearchError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetCompatibility(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	vars := mux.Vars(r)
	profileID := vars["profileId"]
	if profileID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing profile ID")
		return
	}

	pref := LanguagePreference(r.URL.Query().Get("language"))
	if pref == "" {
		pref = LanguageBilingual
	}

	summary, err := h.service.GetCompatibility(r.Context(), userID, profileID, pref)
	if err != nil {
		h.respondSearchError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, summary)
}

func (h *Handler) respondSearchError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidCriteria):
		respondEngineError(w, http.StatusBadRequest, ErrorKindInvalidCriteria, err.Error())
	case errors.Is(err, ErrRequesterIneligible):
		respondEngineError(w, http.StatusForbidden, ErrorKindRequesterIneligible, err.Error())
	case errors.Is(err, ErrProfileNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "Profile not found")
	case errors.Is(err, ErrSearchRateLimited):
		utils.RespondWithError(w, http.StatusTooManyRequests, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to search matches")
	}
}

func respondEngineError(w http.ResponseWriter, code int, kind, message string) {
	utils.RespondWithJSON(w, code, map[string]string{
		"error_kind": kind,
		"message":    message,
	})
}
