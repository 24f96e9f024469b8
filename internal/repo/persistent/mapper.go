package persistent

import (
	"chitrashala/internal/entity"
	"chitrashala/internal/model"
)

func ToPostEntity(m *model.PostModel) *entity.Post {
	if m == nil {
		return nil
	}

	post := &entity.Post{
		ID:             m.ID,
		UserID:         m.UserID,
		Type:           entity.MediaType(m.Type),
		Title:          m.Title,
		Description:    m.Description,
		MediaURL:       m.MediaURL,
		ThumbnailURL:   m.ThumbnailURL,
		Visibility:     entity.Visibility(m.Visibility),
		AccessType:     entity.AccessType(m.AccessType),
		Price:          m.Price,
		IsDownloadable: m.IsDownloadable,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}

	if len(m.Tags) > 0 {
		post.Tags = make([]entity.Tag, len(m.Tags))
		for i, tag := range m.Tags {
			post.Tags[i] = *ToTagEntity(&tag)
		}
	}

	return post
}

func ToPostModel(e *entity.Post) *model.PostModel {
	if e == nil {
		return nil
	}

	return &model.PostModel{
		ID:             e.ID,
		UserID:         e.UserID,
		Type:           string(e.Type),
		Title:          e.Title,
		Description:    e.Description,
		MediaURL:       e.MediaURL,
		ThumbnailURL:   e.ThumbnailURL,
		Visibility:     string(e.Visibility),
		AccessType:     string(e.AccessType),
		Price:          e.Price,
		IsDownloadable: e.IsDownloadable,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

func ToTagEntity(m *model.TagModel) *entity.Tag {
	if m == nil {
		return nil
	}

	return &entity.Tag{
		ID:        m.ID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
	}
}

func ToTagModel(e *entity.Tag) *model.TagModel {
	if e == nil {
		return nil
	}

	return &model.TagModel{
		ID:        e.ID,
		Name:      e.Name,
		CreatedAt: e.CreatedAt,
	}
}

func ToUserEntity(m *model.UserModel) *entity.User {
	if m == nil {
		return nil
	}

	return &entity.User{
		ID:        m.ID,
		Email:     m.Email,
		Username:  m.Username,
		Password:  m.Password,
		Role:      entity.UserRole(m.Role),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToUserModel(e *entity.User) *model.UserModel {
	if e == nil {
		return nil
	}

	return &model.UserModel{
		ID:        e.ID,
		Email:     e.Email,
		Username:  e.Username,
		Password:  e.Password,
		Role:      string(e.Role),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
