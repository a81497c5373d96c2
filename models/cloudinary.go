package models

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Cloudinary folder names, kept in one place so upload and cleanup agree.
const (
	FolderProductImages     = "products_images"
	FolderCourseImages      = "course_images"
	FolderCourseShortVideos = "course_short_videos"
	FolderCourseVideos      = "course_videos"
	FolderCourseVideoCovers = "course_video_covers"
	FolderAdImages          = "ads_images"
)

type CloudinaryService struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryService() (*CloudinaryService, error) {
	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")

	if cloudName == "" || apiKey == "" || apiSecret == "" {
		if cldURL := os.Getenv("CLOUDINARY_URL"); cldURL != "" {
			cld, err := cloudinary.NewFromURL(cldURL)
			if err != nil {
				return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
			}
			return &CloudinaryService{cld: cld}, nil
		}
		return nil, errors.New("cloudinary credentials not configured")
	}

	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	return &CloudinaryService{cld: cld}, nil
}

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

func (s *CloudinaryService) ValidateImageFile(file *multipart.FileHeader) error {
	if file.Size > 10*1024*1024 {
		return errors.New("file too large (max 10MB)")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		return errors.New("invalid file type. Only jpg, jpeg, png, gif, webp allowed")
	}

	return nil
}

func (s *CloudinaryService) UploadImage(ctx context.Context, fileHeader *multipart.FileHeader, folder string) (AssetRef, error) {
	return s.upload(ctx, fileHeader, folder, "image")
}

func (s *CloudinaryService) UploadVideo(ctx context.Context, fileHeader *multipart.FileHeader, folder string) (AssetRef, error) {
	return s.upload(ctx, fileHeader, folder, "video")
}

func (s *CloudinaryService) upload(ctx context.Context, fileHeader *multipart.FileHeader, folder, resourceType string) (AssetRef, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return AssetRef{}, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	timestamp := time.Now().Unix()
	publicID := fmt.Sprintf("%d_%s", timestamp, strings.ReplaceAll(fileHeader.Filename, " ", "_"))
	publicID = strings.TrimSuffix(publicID, filepath.Ext(publicID))

	uploadResult, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:     publicID,
		Folder:       folder,
		ResourceType: resourceType,
	})
	if err != nil {
		return AssetRef{}, fmt.Errorf("failed to upload to cloudinary: %w", err)
	}

	return AssetRef{PublicID: uploadResult.PublicID, URL: uploadResult.SecureURL}, nil
}

func (s *CloudinaryService) DeleteImage(ctx context.Context, publicID string) error {
	return s.destroy(ctx, publicID, "image")
}

func (s *CloudinaryService) DeleteVideo(ctx context.Context, publicID string) error {
	return s.destroy(ctx, publicID, "video")
}

func (s *CloudinaryService) destroy(ctx context.Context, publicID, resourceType string) error {
	if publicID == "" {
		return nil
	}

	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: resourceType,
	})
	if err != nil {
		return fmt.Errorf("failed to delete from cloudinary: %w", err)
	}

	return nil
}
