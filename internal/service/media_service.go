package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"fitplan/planner-app/internal/domain"
	"fitplan/planner-app/internal/repository"
	"fitplan/planner-app/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrMediaNotFound      = errors.New("no media uploaded for this exercise")
	ErrInvalidContentType = errors.New("media must be an image or a video")
	ErrUploadURLError     = errors.New("failed to generate upload URL")
	ErrDownloadURLError   = errors.New("failed to generate download URL")
)

// UploadURLResponse carries the presigned PUT URL and the object key the
// client must echo back on confirm.
type UploadURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

// MediaService handles demo image/video uploads for library exercises. The
// client uploads directly to S3 via a presigned URL; this service only
// issues URLs and records metadata on confirm.
type MediaService interface {
	RequestUpload(ctx context.Context, uploaderID, exerciseID primitive.ObjectID, contentType string) (*UploadURLResponse, error)
	ConfirmUpload(ctx context.Context, uploaderID, exerciseID primitive.ObjectID, objectKey, fileName, contentType string, size int64) (*domain.ExerciseMedia, error)
	GetDownloadURL(ctx context.Context, exerciseID primitive.ObjectID) (string, error)
}

// mediaService implements the MediaService interface.
type mediaService struct {
	exerciseRepo repository.ExerciseRepository
	mediaRepo    repository.MediaRepository
	fileStorage  storage.FileStorage
}

// NewMediaService creates a new instance of mediaService.
func NewMediaService(exerciseRepo repository.ExerciseRepository, mediaRepo repository.MediaRepository, fileStorage storage.FileStorage) MediaService {
	return &mediaService{
		exerciseRepo: exerciseRepo,
		mediaRepo:    mediaRepo,
		fileStorage:  fileStorage,
	}
}

func validMediaContentType(contentType string) bool {
	lower := strings.ToLower(contentType)
	return strings.HasPrefix(lower, "image/") || strings.HasPrefix(lower, "video/")
}

// RequestUpload verifies the exercise and returns a presigned PUT URL with
// a unique object key.
func (s *mediaService) RequestUpload(ctx context.Context, uploaderID, exerciseID primitive.ObjectID, contentType string) (*UploadURLResponse, error) {
	if uploaderID == primitive.NilObjectID || exerciseID == primitive.NilObjectID {
		return nil, errors.New("uploader ID and exercise ID are required")
	}
	if !validMediaContentType(contentType) {
		return nil, ErrInvalidContentType
	}

	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	if exercise.CreatorID != uploaderID {
		return nil, ErrExerciseAccessDenied
	}

	uniqueID := uuid.NewString()
	fileExtension := ""
	if parts := strings.Split(contentType, "/"); len(parts) == 2 {
		fileExtension = parts[1]
	}
	objectKey := path.Join("exercises", exerciseID.Hex(), fmt.Sprintf("%s.%s", uniqueID, fileExtension))

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, ErrUploadURLError
	}

	return &UploadURLResponse{
		UploadURL: uploadURL,
		ObjectKey: objectKey,
	}, nil
}

// ConfirmUpload records the metadata after the client finished the PUT.
func (s *mediaService) ConfirmUpload(ctx context.Context, uploaderID, exerciseID primitive.ObjectID, objectKey, fileName, contentType string, size int64) (*domain.ExerciseMedia, error) {
	if uploaderID == primitive.NilObjectID || exerciseID == primitive.NilObjectID || objectKey == "" {
		return nil, errors.New("uploader ID, exercise ID, and object key are required")
	}

	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	if exercise.CreatorID != uploaderID {
		return nil, ErrExerciseAccessDenied
	}

	media := &domain.ExerciseMedia{
		ExerciseID:  exerciseID,
		UploaderID:  uploaderID,
		S3ObjectKey: objectKey,
		FileName:    fileName,
		ContentType: contentType,
		Size:        size,
	}
	mediaID, err := s.mediaRepo.Create(ctx, media)
	if err != nil {
		return nil, err
	}
	media.ID = mediaID
	return media, nil
}

// GetDownloadURL returns a presigned GET URL for the exercise's most recent
// media upload.
func (s *mediaService) GetDownloadURL(ctx context.Context, exerciseID primitive.ObjectID) (string, error) {
	media, err := s.mediaRepo.GetLatestByExerciseID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrMediaNotFound
		}
		return "", err
	}

	downloadURL, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, media.S3ObjectKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", ErrDownloadURLError
	}
	return downloadURL, nil
}
