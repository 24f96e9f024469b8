package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"chitrashala/internal/repo/persistent"
	"chitrashala/internal/usecase"
	"chitrashala/pkg/logger"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postUseCase usecase.PostUseCase
	logger      *logger.Logger
}

func NewPostHandler(postUseCase usecase.PostUseCase, logger *logger.Logger) *PostHandler {
	return &PostHandler{
		postUseCase: postUseCase,
		logger:      logger,
	}
}

// CreatePost godoc
// @Summary      Upload media and create a post
// @Description  Upload an image or video with metadata. Media kind is detected from the file content. Tags accept a JSON array of strings or a comma-separated list.
// @Tags         posts
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file formData file true "Media file (image or video)"
// @Param        title formData string true "Post title"
// @Param        description formData string false "Post description"
// @Param        visibility formData string false "public or private (default public)"
// @Param        accessType formData string false "free or paid (default free)"
// @Param        price formData string false "Decimal price, required when accessType=paid"
// @Param        isDownloadable formData string false "true to allow downloads"
// @Param        tags formData string false "JSON array or comma-separated tag names"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	input := usecase.CreatePostInput{
		Title:          c.PostForm("title"),
		Description:    c.PostForm("description"),
		Visibility:     c.PostForm("visibility"),
		AccessType:     c.PostForm("accessType"),
		Price:          c.PostForm("price"),
		IsDownloadable: c.PostForm("isDownloadable") == "true",
		Tags:           c.PostForm("tags"),
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		// MaxBytesReader tripping while the form is read means the body was
		// oversized, not that the file part was missing.
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Request body too large"})
			return
		}
	} else {
		src, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
			return
		}
		defer src.Close()

		data, err := io.ReadAll(src)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
			return
		}
		input.FileData = data
		input.FileName = fileHeader.Filename
	}

	summary, err := h.postUseCase.CreatePost(c.Request.Context(), userID, input)
	if err != nil {
		var validationErr *usecase.ValidationError
		switch {
		case errors.Is(err, usecase.ErrUnauthorized):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		case errors.As(err, &validationErr):
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message})
		default:
			h.logger.Error("Failed to create post: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Post creation failed: %v", err)})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Media uploaded and post created successfully!",
		"postId":   summary.PostID,
		"mediaUrl": summary.MediaURL,
		"type":     summary.Type,
	})
}

// GetPost godoc
// @Summary      Get post by ID
// @Description  Get post details. Private posts are only visible to their owner.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Success      200  {object}  entity.Post
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	postID := c.Param("id")
	viewerID := c.GetString("user_id")

	post, err := h.postUseCase.GetPost(postID, viewerID)
	if err != nil {
		if errors.Is(err, persistent.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		h.logger.Error("Failed to get post: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch post"})
		return
	}

	c.JSON(http.StatusOK, post)
}

// SearchPosts godoc
// @Summary      Search public posts
// @Description  Case-insensitive substring match against titles and tags of public posts. An empty query returns no results.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        q query string true "Search query"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /posts/search [get]
func (h *PostHandler) SearchPosts(c *gin.Context) {
	query := c.Query("q")

	posts, err := h.postUseCase.SearchPosts(query)
	if err != nil {
		h.logger.Error("Failed to search posts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts, "count": len(posts)})
}

// GetMyPosts godoc
// @Summary      List the authenticated user's posts
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Number of posts to return (max 100)"
// @Param        offset query int false "Offset for pagination"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /posts/mine [get]
func (h *PostHandler) GetMyPosts(c *gin.Context) {
	userID := c.GetString("user_id")
	limit := 20
	offset := 0

	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	if offsetStr := c.Query("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}

	posts, err := h.postUseCase.GetUserPosts(userID, limit, offset)
	if err != nil {
		h.logger.Error("Failed to list posts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts, "count": len(posts), "offset": offset})
}
