package persistent

import (
	"errors"
	"strings"

	"chitrashala/internal/entity"
	"chitrashala/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostRepository interface {
	CreateWithTags(post *entity.Post, tagIDs []string) error
	GetByID(id string) (*entity.Post, error)
	GetByUserID(userID string, limit, offset int) ([]*entity.Post, error)
	Search(query string) ([]*entity.Post, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// CreateWithTags persists the post row and one link row per tag id in a
// single transaction. An existing (post, tag) pair is skipped rather than
// violating the composite key.
func (r *postRepository) CreateWithTags(post *entity.Post, tagIDs []string) error {
	postModel := ToPostModel(post)
	if postModel.ID == "" {
		postModel.ID = uuid.New().String()
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(postModel).Error; err != nil {
			return err
		}

		for _, tagID := range tagIDs {
			var existing model.PostTagModel
			err := tx.Where("post_id = ? AND tag_id = ?", postModel.ID, tagID).First(&existing).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			link := &model.PostTagModel{PostID: postModel.ID, TagID: tagID}
			if err := tx.Create(link).Error; err != nil {
				return err
			}
		}

		*post = *ToPostEntity(postModel)
		return nil
	})
}

func (r *postRepository) GetByID(id string) (*entity.Post, error) {
	var postModel model.PostModel
	if err := r.db.Preload("Tags").Where("id = ?", id).First(&postModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return ToPostEntity(&postModel), nil
}

func (r *postRepository) GetByUserID(userID string, limit, offset int) ([]*entity.Post, error) {
	var postModels []model.PostModel
	query := r.db.Preload("Tags").Where("user_id = ?", userID).Order("created_at DESC, id ASC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&postModels).Error; err != nil {
		return nil, err
	}
	return toPostEntities(postModels), nil
}

// Search matches the query case-insensitively against titles and tag names
// of public posts. Private posts are excluded unconditionally.
func (r *postRepository) Search(query string) ([]*entity.Post, error) {
	pattern := "%" + strings.ToLower(query) + "%"

	taggedPostIDs := r.db.Table("post_tags").
		Select("post_tags.post_id").
		Joins("INNER JOIN tags ON tags.id = post_tags.tag_id").
		Where("LOWER(tags.name) LIKE ?", pattern)

	var postModels []model.PostModel
	err := r.db.Preload("Tags").
		Where("visibility = ?", string(entity.VisibilityPublic)).
		Where("LOWER(title) LIKE ? OR id IN (?)", pattern, taggedPostIDs).
		Order("created_at DESC, id ASC").
		Find(&postModels).Error
	if err != nil {
		return nil, err
	}
	return toPostEntities(postModels), nil
}

func toPostEntities(postModels []model.PostModel) []*entity.Post {
	posts := make([]*entity.Post, len(postModels))
	for i := range postModels {
		posts[i] = ToPostEntity(&postModels[i])
	}
	return posts
}
