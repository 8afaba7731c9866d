// Package upload pushes finished videos to YouTube.
package upload

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"quotereel/config"
)

// Metadata is the per-video listing information.
type Metadata struct {
	Title       string
	Description string
	Tags        []string
	CategoryID  string
}

// Uploader wraps an authorized YouTube service.
type Uploader struct {
	service *youtube.Service
}

// NewUploader authorizes against YouTube using the installed-app OAuth flow
// (client secret + cached token from cfg).
func NewUploader(ctx context.Context, cfg config.Config) (*Uploader, error) {
	oauthCfg, tok, err := credentials(ctx, cfg.ClientSecretFile, cfg.TokenFile)
	if err != nil {
		return nil, err
	}

	service, err := youtube.NewService(ctx, option.WithHTTPClient(oauthCfg.Client(ctx, tok)))
	if err != nil {
		return nil, fmt.Errorf("unable to create YouTube service: %w", err)
	}

	return &Uploader{service: service}, nil
}

// UploadVideo performs a resumable insert and returns the platform video ID.
func (u *Uploader) UploadVideo(ctx context.Context, videoPath string, metadata Metadata) (string, error) {
	file, err := os.Open(videoPath)
	if err != nil {
		return "", fmt.Errorf("failed to open video file: %w", err)
	}
	defer file.Close()

	fileInfo, err := file.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat video file: %w", err)
	}

	log.Printf("Uploading: %s (%.2f MB)", videoPath, float64(fileInfo.Size())/(1024*1024))

	video := &youtube.Video{
		Snippet: &youtube.VideoSnippet{
			Title:       metadata.Title,
			Description: metadata.Description,
			Tags:        metadata.Tags,
			CategoryId:  metadata.CategoryID,
		},
		Status: &youtube.VideoStatus{
			PrivacyStatus:           config.YouTubePrivacyStatus,
			SelfDeclaredMadeForKids: false,
		},
	}

	call := u.service.Videos.Insert([]string{"snippet", "status"}, video)
	call = call.Media(file)

	response, err := call.Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to upload video: %w", err)
	}

	log.Printf("Uploaded! https://www.youtube.com/watch?v=%s", response.Id)
	return response.Id, nil
}

// DefaultMetadata builds the fixed listing used for generated quote reels.
func DefaultMetadata() Metadata {
	return Metadata{
		Title:       "Haunting Horror Movie Quotes",
		Description: "A collection of the most spine-chilling quotes from classic horror films",
		Tags:        []string{"horror", "movie quotes", "scary", "horror films", "shorts"},
		CategoryID:  config.YouTubeCategoryID,
	}
}

// ParseTags splits a comma-separated tag list, dropping empties.
func ParseTags(raw string) []string {
	var tags []string
	for _, tag := range strings.Split(raw, ",") {
		if clean := strings.TrimSpace(tag); clean != "" {
			tags = append(tags, clean)
		}
	}
	return tags
}
