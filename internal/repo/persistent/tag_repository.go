package persistent

import (
	"errors"

	"chitrashala/internal/entity"
	"chitrashala/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TagRepository interface {
	GetByName(name string) (*entity.Tag, error)
	Create(tag *entity.Tag) error
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) GetByName(name string) (*entity.Tag, error) {
	var tagModel model.TagModel
	if err := r.db.Where("name = ?", name).First(&tagModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return ToTagEntity(&tagModel), nil
}

// Create inserts a new tag row. A unique violation on the name, from a
// concurrent request inserting the same tag, comes back as ErrTagExists so
// the caller can re-fetch the winner's row.
func (r *tagRepository) Create(tag *entity.Tag) error {
	tagModel := ToTagModel(tag)
	if tagModel.ID == "" {
		tagModel.ID = uuid.New().String()
	}

	if err := r.db.Create(tagModel).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrTagExists
		}
		return err
	}

	*tag = *ToTagEntity(tagModel)
	return nil
}
