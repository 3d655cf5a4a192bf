package profile

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lusotown/lusotown-backend/internal/auth"
	"github.com/lusotown/lusotown-backend/internal/common/utils"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// SetupProfile handles POST /setup
func (h *Handler) SetupProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req SetupMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	member, err := h.service.SetupProfile(r.Context(), userID, &req)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	utils.RespondWithData(w, http.StatusCreated, "Profile created", member)
}

// GetMyProfile handles GET /me
func (h *Handler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	member, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	utils.RespondWithData(w, http.StatusOK, "Profile retrieved", member)
}

// GetMember handles GET /{memberId}
func (h *Handler) GetMember(w http.ResponseWriter, r *http.Request) {
	memberID := chi.URLParam(r, "memberId")
	if memberID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Member ID is required")
		return
	}

	member, err := h.service.GetProfile(r.Context(), memberID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	utils.RespondWithData(w, http.StatusOK, "Profile retrieved", member)
}

// UpdateProfile handles PUT /me
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req UpdateMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	member, err := h.service.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	utils.RespondWithData(w, http.StatusOK, "Profile updated", member)
}

// UploadProfilePicture handles POST /me/picture
func (h *Handler) UploadProfilePicture(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := r.ParseMultipartForm(maxPhotoSizeBytes); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("picture")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Picture file is required")
		return
	}
	defer file.Close()

	url, err := h.service.UploadProfilePicture(r.Context(), userID, file, header)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	utils.RespondWithData(w, http.StatusOK, "Picture uploaded", map[string]string{
		"profile_picture": url,
	})
}

func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrProfileNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "Profile not found")
	case errors.Is(err, ErrProfileExists):
		utils.RespondWithError(w, http.StatusConflict, "Profile already set up")
	case errors.Is(err, ErrUnderage):
		utils.RespondWithError(w, http.StatusForbidden, "Members must be at least 18")
	case errors.Is(err, ErrInvalidBirth):
		utils.RespondWithError(w, http.StatusBadRequest, "Date of birth must be YYYY-MM-DD")
	case errors.Is(err, ErrFileTooLarge):
		utils.RespondWithError(w, http.StatusRequestEntityTooLarge, "File exceeds the 5MB limit")
	case errors.Is(err, ErrInvalidFiletype):
		utils.RespondWithError(w, http.StatusUnsupportedMediaType, "Only JPEG, PNG and WebP images are accepted")
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
