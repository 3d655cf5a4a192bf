package profile

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"time"
)

var (
	ErrProfileExists   = errors.New("profile already set up")
	ErrUnderage        = errors.New("members must be at least 18")
	ErrInvalidBirth    = errors.New("invalid date of birth")
	ErrFileTooLarge    = errors.New("file exceeds the size limit")
	ErrInvalidFiletype = errors.New("unsupported file type")
)

const (
	maxPhotoSizeBytes = 5 << 20
	minMemberAge      = 18
)

var allowedPhotoTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

type Service interface {
	SetupProfile(ctx context.Context, userID string, req *SetupMemberRequest) (*Member, error)
	GetProfile(ctx context.Context, id string) (*Member, error)
	UpdateProfile(ctx context.Context, userID string, req *UpdateMemberRequest) (*Member, error)
	UploadProfilePicture(ctx context.Context, userID string, file multipart.File, header *multipart.FileHeader) (string, error)
	TouchLastActive(ctx context.Context, userID string) error
}

type service struct {
	repo   Repository
	upload UploadService
}

func NewService(repo Repository, upload UploadService) Service {
	return &service{repo: repo, upload: upload}
}

func (s *service) SetupProfile(ctx context.Context, userID string, req *SetupMemberRequest) (*Member, error) {
	if _, err := s.repo.GetMember(ctx, userID); err == nil {
		return nil, ErrProfileExists
	}

	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return nil, ErrInvalidBirth
	}

	member := &Member{
		ID:                 userID,
		DisplayName:        req.DisplayName,
		DateOfBirth:        dob,
		City:               req.City,
		Latitude:           req.Latitude,
		Longitude:          req.Longitude,
		Interests:          req.Interests,
		CulturalBackground: req.CulturalBackground,
		LanguageSkills:     LanguageSkills(req.LanguageSkills),
	}
	if req.Bio != "" {
		member.Bio = &req.Bio
	}

	if member.Age() < minMemberAge {
		return nil, ErrUnderage
	}

	if err := s.repo.CreateMember(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

func (s *service) GetProfile(ctx context.Context, id string) (*Member, error) {
	return s.repo.GetMember(ctx, id)
}

func (s *service) UpdateProfile(ctx context.Context, userID string, req *UpdateMemberRequest) (*Member, error) {
	return s.repo.UpdateMember(ctx, userID, req)
}

func (s *service) UploadProfilePicture(ctx context.Context, userID string, file multipart.File, header *multipart.FileHeader) (string, error) {
	if header.Size > maxPhotoSizeBytes {
		return "", ErrFileTooLarge
	}
	if !allowedPhotoTypes[header.Header.Get("Content-Type")] {
		return "", ErrInvalidFiletype
	}

	member, err := s.repo.GetMember(ctx, userID)
	if err != nil {
		return "", err
	}

	url, err := s.upload.UploadFile(ctx, file, header, "profiles")
	if err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}

	if err := s.repo.UpdateProfilePicture(ctx, userID, url); err != nil {
		return "", err
	}

	// Replaced photos are removed on a best-effort basis.
	if member.ProfilePicture != nil && *member.ProfilePicture != "" {
		_ = s.upload.DeleteFile(ctx, *member.ProfilePicture)
	}
	return url, nil
}

func (s *service) TouchLastActive(ctx context.Context, userID string) error {
	return s.repo.TouchLastActive(ctx, userID)
}
