package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// allowed deliverable types, matching what the review flow can open
var allowedWorkExtensions = map[string]bool{
	".pdf": true,
	".zip": true,
	".mp4": true,
	".mp3": true,
}

// StorageService stores work deliverables in Cloudinary and hands back a
// stable URL; nothing in the platform ever inspects the file bytes.
type StorageService struct {
	cld *cloudinary.Cloudinary
}

type UploadResult struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
	Bytes    int    `json:"bytes"`
}

func NewStorageService() (*StorageService, error) {
	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")

	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("Cloudinary credentials not set in environment variables")
	}

	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}

	return &StorageService{cld: cld}, nil
}

// UploadWorkFile uploads a deliverable for the given project.
func (s *StorageService) UploadWorkFile(ctx context.Context, file *multipart.FileHeader, projectID int64) (*UploadResult, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedWorkExtensions[ext] {
		return nil, validation("Invalid file type. Allowed types: PDF, ZIP, MP4, MP3")
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer src.Close()

	base := strings.TrimSuffix(file.Filename, ext)
	publicID := fmt.Sprintf("%s_%s", base, uuid.NewString()[:8])

	result, err := s.cld.Upload.Upload(ctx, src, uploader.UploadParams{
		Folder:       fmt.Sprintf("musiclancer/project_work/%d", projectID),
		PublicID:     publicID,
		ResourceType: "auto",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to Cloudinary: %w", err)
	}

	return &UploadResult{
		URL:      result.SecureURL,
		PublicID: result.PublicID,
		Bytes:    result.Bytes,
	}, nil
}

// DeleteFile removes a previously uploaded deliverable.
func (s *StorageService) DeleteFile(ctx context.Context, publicID string) error {
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("failed to delete file from Cloudinary: %w", err)
	}
	return nil
}
