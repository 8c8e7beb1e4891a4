package models

import "gorm.io/gorm"

// Project is a named unit of work owned by exactly one team
type Project struct {
	gorm.Model
	TeamID      uint   `gorm:"not null;index" json:"team_id"`
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`

	// Relations
	Team  Team          `json:"-"`
	Tasks []Task        `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`
	Files []ProjectFile `gorm:"foreignKey:ProjectID" json:"files,omitempty"`
}

// ProjectFile is a binary file attached to a project. The upload itself
// lives in the external media store; this row records its metadata.
type ProjectFile struct {
	gorm.Model
	ProjectID  uint   `gorm:"not null;index" json:"project_id"`
	UploaderID uint   `gorm:"not null" json:"uploader_id"`
	FileName   string `gorm:"not null" json:"file_name"`
	FileType   string `json:"file_type"`
	FileSize   int64  `json:"file_size"`
	Category   string `json:"category"`
	URL        string `json:"url"`
	ObjectKey  string `gorm:"index" json:"-"`

	// Relations
	Project  Project `json:"-"`
	Uploader User    `gorm:"foreignKey:UploaderID" json:"-"`
}
