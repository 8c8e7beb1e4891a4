package models

import "gorm.io/gorm"

// TaskComment is a rich comment on a task. It may carry uploaded
// attachments and @mention references extracted from its content.
type TaskComment struct {
	gorm.Model
	TaskID   uint   `gorm:"not null;index" json:"task_id"`
	AuthorID uint   `gorm:"not null" json:"author_id"`
	Content  string `gorm:"not null" json:"content"`

	// Relations
	Task        Task                    `json:"-"`
	Author      User                    `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Attachments []TaskCommentAttachment `gorm:"foreignKey:CommentID" json:"attachments,omitempty"`
	Mentions    []TaskCommentMention    `gorm:"foreignKey:CommentID" json:"mentions,omitempty"`
}

// Attachment categories inferred from MIME type
const (
	AttachmentCategoryImage = "image"
	AttachmentCategoryVideo = "video"
	AttachmentCategoryPDF   = "pdf"
	AttachmentCategoryExcel = "excel"
	AttachmentCategoryWord  = "word"
	AttachmentCategoryOther = "other"
)

// TaskCommentAttachment records an uploaded binary stored in the
// external media store.
type TaskCommentAttachment struct {
	gorm.Model
	CommentID uint   `gorm:"not null;index" json:"comment_id"`
	FileName  string `gorm:"not null" json:"file_name"`
	FileType  string `json:"file_type"`
	FileSize  int64  `json:"file_size"`
	Category  string `json:"category"` // image, video, pdf, excel, word, other
	URL       string `json:"url"`
	ObjectKey string `gorm:"index" json:"-"`

	// Relations
	Comment TaskComment `json:"-"`
}

// TaskCommentMention references a user @mentioned in a comment
type TaskCommentMention struct {
	gorm.Model
	CommentID uint `gorm:"not null;index" json:"comment_id"`
	UserID    uint `gorm:"not null" json:"user_id"`

	// Relations
	Comment TaskComment `json:"-"`
	User    User        `json:"-"`
}
