package constants

import "time"

const (
	// ParserVersion 当前解析管线版本，随提取启发式规则的调整而递增
	ParserVersion = "1.0"

	// ContentTypePDF ParsePDF 接口要求的内容类型
	ContentTypePDF = "application/pdf"

	// MinTextLayerLength PDF文本层有效性阈值（字符数）
	// 去除首尾空白后短于该值即认为是图片型PDF，走OCR兜底
	MinTextLayerLength = 100

	// DefaultOCRDPI OCR兜底时页面渲染的DPI
	DefaultOCRDPI = 300

	// ProfileCacheDuration 解析结果缓存的过期时间
	ProfileCacheDuration = 24 * time.Hour
)

// 解析来源类型
const (
	SourceTypeText = "text"
	SourceTypePDF  = "pdf"
)
