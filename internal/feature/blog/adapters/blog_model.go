package adapters

import "blog_backend/internal/feature/blog/domain/entity"

// BlogModel is the GORM model for the blog-list2 table.
type BlogModel struct {
	ID       uint   `gorm:"column:id;primaryKey"`
	Title    string `gorm:"column:title"`
	Category string `gorm:"column:category"`
	Date     string `gorm:"column:date"`
	ReadTime string `gorm:"column:readTime"`
	Image    string `gorm:"column:image"`
}

// TableName returns the table name for GORM.
func (BlogModel) TableName() string {
	return "blog-list2"
}

// ToEntity converts the GORM model to a domain entity.
func (m *BlogModel) ToEntity() entity.Blog {
	return entity.Blog{
		ID:       m.ID,
		Title:    m.Title,
		Category: m.Category,
		Date:     m.Date,
		ReadTime: m.ReadTime,
		Image:    m.Image,
	}
}

// BlogModelFromEntity converts a domain entity to a GORM model.
func BlogModelFromEntity(b *entity.Blog) *BlogModel {
	return &BlogModel{
		ID:       b.ID,
		Title:    b.Title,
		Category: b.Category,
		Date:     b.Date,
		ReadTime: b.ReadTime,
		Image:    b.Image,
	}
}
