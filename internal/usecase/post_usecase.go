package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"chitrashala/internal/entity"
	"chitrashala/internal/repo/persistent"
	"chitrashala/pkg/logger"
	"chitrashala/pkg/mediastore"
	"chitrashala/pkg/queue"

	"github.com/redis/go-redis/v9"
)

// videoExtensions are the extensions the media host generates companion
// .jpg thumbnails for. The substitution is a naming convention with the
// host, not a generated thumbnail.
var videoExtensions = []string{".mp4", ".mov", ".avi"}

// MediaStore is the external binary host the ingestion pipeline uploads to.
type MediaStore interface {
	Store(ctx context.Context, data []byte, folder string) (*mediastore.UploadResult, error)
}

type CreatePostInput struct {
	FileData       []byte
	FileName       string
	Title          string
	Description    string
	Visibility     string
	AccessType     string
	Price          string
	IsDownloadable bool
	Tags           string // JSON array of strings, or comma-separated
}

type PostUseCase interface {
	CreatePost(ctx context.Context, userID string, in CreatePostInput) (*entity.PostSummary, error)
	GetPost(postID, viewerID string) (*entity.Post, error)
	GetUserPosts(userID string, limit, offset int) ([]*entity.Post, error)
	SearchPosts(query string) ([]*entity.Post, error)
}

type postUseCase struct {
	postRepo    persistent.PostRepository
	tagRepo     persistent.TagRepository
	mediaStore  MediaStore
	redisClient *redis.Client
	queueClient *queue.Client
	logger      *logger.Logger
}

func NewPostUseCase(
	postRepo persistent.PostRepository,
	tagRepo persistent.TagRepository,
	mediaStore MediaStore,
	redisClient *redis.Client,
	queueClient *queue.Client,
	logger *logger.Logger,
) PostUseCase {
	return &postUseCase{
		postRepo:    postRepo,
		tagRepo:     tagRepo,
		mediaStore:  mediaStore,
		redisClient: redisClient,
		queueClient: queueClient,
		logger:      logger,
	}
}

// CreatePost runs the ingestion pipeline: validate, upload to the media
// host, reconcile tags, then persist the post row and its tag links in one
// transaction. The uploaded binary is not cleaned up if a later step fails.
func (uc *postUseCase) CreatePost(ctx context.Context, userID string, in CreatePostInput) (*entity.PostSummary, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}

	if len(in.FileData) == 0 {
		return nil, NewValidationError("file required")
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, NewValidationError("title is required")
	}

	visibility := entity.VisibilityPublic
	if in.Visibility == string(entity.VisibilityPrivate) {
		visibility = entity.VisibilityPrivate
	}

	accessType := entity.AccessTypeFree
	if in.AccessType == string(entity.AccessTypePaid) {
		accessType = entity.AccessTypePaid
	}

	var price *string
	if accessType == entity.AccessTypePaid {
		trimmed := strings.TrimSpace(in.Price)
		if trimmed == "" {
			return nil, NewValidationError("price is required for paid posts")
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil || parsed <= 0 {
			return nil, NewValidationError("price must be a positive number")
		}
		// Stored as the given string, never coerced to a number.
		price = &trimmed
	}

	tagNames := parseTags(in.Tags)

	uc.logger.Info("Uploading %s (%d bytes) for user %s", in.FileName, len(in.FileData), userID)
	result, err := uc.mediaStore.Store(ctx, in.FileData, fmt.Sprintf("posts/%s", userID))
	if err != nil {
		uc.logger.Error("Failed to upload media: %v", err)
		return nil, err
	}

	var thumbnailURL *string
	if result.Kind == mediastore.KindVideo {
		thumbnailURL = videoThumbnailURL(result.URL)
	}

	tagIDs, err := uc.reconcileTags(tagNames)
	if err != nil {
		uc.logger.Error("Failed to reconcile tags (media already uploaded to %s): %v", result.URL, err)
		return nil, fmt.Errorf("failed to reconcile tags: %w", err)
	}

	post := &entity.Post{
		UserID:         userID,
		Type:           entity.MediaType(result.Kind),
		Title:          title,
		Description:    in.Description,
		MediaURL:       result.URL,
		ThumbnailURL:   thumbnailURL,
		Visibility:     visibility,
		AccessType:     accessType,
		Price:          price,
		IsDownloadable: in.IsDownloadable,
	}

	if err := uc.postRepo.CreateWithTags(post, tagIDs); err != nil {
		uc.logger.Error("Failed to save post (media orphaned at %s): %v", result.URL, err)
		return nil, fmt.Errorf("failed to save post: %w", err)
	}

	uc.cachePost(post)

	if uc.queueClient != nil {
		go uc.publishNewPost(post)
	}

	return &entity.PostSummary{
		PostID:   post.ID,
		MediaURL: post.MediaURL,
		Type:     post.Type,
	}, nil
}

// reconcileTags resolves freeform tag names to stable tag ids, creating rows
// for unseen names. Lookup-then-insert races with concurrent requests; the
// name's unique index rejects the loser, which then re-fetches the winner's
// row instead of failing the request.
func (uc *postUseCase) reconcileTags(names []string) ([]string, error) {
	seen := make(map[string]bool)
	var tagIDs []string

	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		tag, err := uc.tagRepo.GetByName(name)
		if err == nil {
			tagIDs = append(tagIDs, tag.ID)
			continue
		}
		if !errors.Is(err, persistent.ErrNotFound) {
			return nil, err
		}

		newTag := &entity.Tag{Name: name}
		err = uc.tagRepo.Create(newTag)
		if err == nil {
			tagIDs = append(tagIDs, newTag.ID)
			continue
		}
		if !errors.Is(err, persistent.ErrTagExists) {
			return nil, err
		}

		// Lost the insert race; another request created the tag first.
		tag, err = uc.tagRepo.GetByName(name)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch tag %q after conflict: %w", name, err)
		}
		tagIDs = append(tagIDs, tag.ID)
	}

	return tagIDs, nil
}

func (uc *postUseCase) GetPost(postID, viewerID string) (*entity.Post, error) {
	post, err := uc.postRepo.GetByID(postID)
	if err != nil {
		return nil, err
	}

	// A private post exists only for its owner.
	if post.Visibility == entity.VisibilityPrivate && post.UserID != viewerID {
		return nil, persistent.ErrNotFound
	}

	return post, nil
}

func (uc *postUseCase) GetUserPosts(userID string, limit, offset int) ([]*entity.Post, error) {
	return uc.postRepo.GetByUserID(userID, limit, offset)
}

// SearchPosts matches public posts by title or tag substring. A blank query
// returns no results rather than listing everything.
func (uc *postUseCase) SearchPosts(query string) ([]*entity.Post, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*entity.Post{}, nil
	}
	return uc.postRepo.Search(query)
}

func (uc *postUseCase) cachePost(post *entity.Post) {
	if uc.redisClient == nil {
		return
	}

	ctx := context.Background()
	postKey := fmt.Sprintf("post:%s", post.ID)
	postData := map[string]interface{}{
		"id":         post.ID,
		"user_id":    post.UserID,
		"title":      post.Title,
		"type":       string(post.Type),
		"media_url":  post.MediaURL,
		"visibility": string(post.Visibility),
	}

	for k, v := range postData {
		uc.redisClient.HSet(ctx, postKey, k, v)
	}
	uc.redisClient.Expire(ctx, postKey, 24*time.Hour)
}

func (uc *postUseCase) publishNewPost(post *entity.Post) {
	event := map[string]interface{}{
		"type":       "new_post",
		"post_id":    post.ID,
		"user_id":    post.UserID,
		"media_type": string(post.Type),
		"visibility": string(post.Visibility),
	}

	if err := uc.queueClient.PublishNewPost(event); err != nil {
		uc.logger.Error("Failed to publish new post event: %v (post_id=%s)", err, post.ID)
	}
}

// parseTags accepts either a JSON array of strings or a comma-separated
// list. Malformed JSON falls back to comma splitting rather than failing
// the request.
func parseTags(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var names []string
	var parsed []string
	if err := json.Unmarshal([]byte(raw), &parsed); err == nil {
		names = parsed
	} else {
		names = strings.Split(raw, ",")
	}

	var result []string
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name != "" {
			result = append(result, name)
		}
	}
	return result
}

// videoThumbnailURL swaps a known video extension for .jpg. URLs without
// one of those extensions get no thumbnail.
func videoThumbnailURL(mediaURL string) *string {
	for _, ext := range videoExtensions {
		if strings.HasSuffix(mediaURL, ext) {
			thumbnail := strings.TrimSuffix(mediaURL, ext) + ".jpg"
			return &thumbnail
		}
	}
	return nil
}
