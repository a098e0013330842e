package storage

import (
	"time"

	"resume-parser-go/internal/types"
)

// ProfileExtractedMessage 解析完成事件
// 发布到profile事件交换机，供下游（匹配、归档等）消费
type ProfileExtractedMessage struct {
	SubmissionUUID   string                 `json:"submission_uuid"`
	SourceType       string                 `json:"source_type"` // text 或 pdf
	OriginalFilename string                 `json:"original_filename,omitempty"`
	RawTextMD5       string                 `json:"raw_text_md5"`
	Profile          *types.ExtractedRecord `json:"profile"`
	ParserVersion    string                 `json:"parser_version"`
	ExtractedAt      time.Time              `json:"extracted_at"`
}
