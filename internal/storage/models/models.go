package models

import (
	"time"

	"gorm.io/datatypes"
)

// ExtractedProfile 简历解析结果表
// 每次成功解析落库一条，skills以JSON数组存储
type ExtractedProfile struct {
	SubmissionUUID      string         `gorm:"type:char(36);primaryKey"`
	Name                string         `gorm:"type:varchar(255)"`
	FirstName           string         `gorm:"type:varchar(128)"`
	LastName            string         `gorm:"type:varchar(128)"`
	Email               string         `gorm:"type:varchar(255);index:idx_ep_email"`
	Phone               string         `gorm:"type:varchar(50)"`
	Location            string         `gorm:"type:varchar(255)"`
	SkillsJSON          datatypes.JSON `gorm:"type:json"`
	LinkedIn            string         `gorm:"type:varchar(512)"`
	GitHub              string         `gorm:"type:varchar(512)"`
	SourceType          string         `gorm:"type:varchar(20)"` // text 或 pdf
	OriginalFilename    string         `gorm:"type:varchar(255)"`
	OriginalFilePathOSS string         `gorm:"type:varchar(1024)"`
	RawTextMD5          string         `gorm:"type:char(32);index:idx_ep_raw_text_md5"`
	ParserVersion       string         `gorm:"type:varchar(50)"`
	CreatedAt           time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6)"`
	UpdatedAt           time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6);autoUpdateTime"`
}

func (ExtractedProfile) TableName() string {
	return "extracted_profiles"
}
