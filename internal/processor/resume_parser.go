package processor

import (
	"context"
	"fmt"

	"resume-parser-go/internal/constants"
	"resume-parser-go/internal/extractor"
	"resume-parser-go/internal/logger"
	"resume-parser-go/internal/types"
)

// ResumeParser 简历解析服务，组合实体识别、字段解析与PDF文本提取
// 单次请求内无共享可变状态，可安全并发调用
type ResumeParser struct {
	recognizer    extractor.EntityRecognizer
	resolver      *extractor.FieldResolver
	textExtractor TextExtractor
}

// NewResumeParser 创建简历解析服务
// recognizer与textExtractor在进程启动时构造一次并注入，之后只读复用
func NewResumeParser(recognizer extractor.EntityRecognizer, textExtractor TextExtractor) *ResumeParser {
	return &ResumeParser{
		recognizer:    recognizer,
		resolver:      extractor.NewFieldResolver(),
		textExtractor: textExtractor,
	}
}

// ParseText 解析纯文本简历
// 实体识别每次请求只调用一次；识别失败直接包装上抛，不重试
func (p *ResumeParser) ParseText(ctx context.Context, text string) (*types.ExtractedRecord, error) {
	spans, err := p.recognizer.Recognize(ctx, text)
	if err != nil {
		return nil, NewRecognizeError(err.Error())
	}

	record := p.resolver.Resolve(text, spans)

	logger.Ctx(ctx).Debug().
		Int("entity_count", len(spans)).
		Int("skill_count", len(record.Skills)).
		Bool("name_resolved", record.Name != "").
		Msg("简历文本解析完成")

	return record, nil
}

// ParsePDF 解析PDF简历
// contentType必须是application/pdf，否则在读取任何内容之前直接拒绝。
// 返回解析结果和提取出的原始文本（供调用方做MD5缓存等用途）。
func (p *ResumeParser) ParsePDF(ctx context.Context, data []byte, contentType string, uri string) (*types.ExtractedRecord, string, error) {
	if contentType != constants.ContentTypePDF {
		return nil, "", NewInvalidInputError(fmt.Sprintf("文件必须是PDF，实际内容类型: %s", contentType))
	}

	text, metadata, err := p.textExtractor.ExtractTextFromBytes(ctx, data, uri)
	if err != nil {
		return nil, "", NewExtractError(err.Error())
	}

	if ocrUsed, ok := metadata["ocr_used"].(bool); ok && ocrUsed {
		logger.Ctx(ctx).Info().
			Str("uri", uri).
			Interface("ocr_pages", metadata["ocr_pages"]).
			Msg("PDF文本层过短，已使用OCR兜底")
	}

	record, err := p.ParseText(ctx, text)
	if err != nil {
		return nil, "", err
	}
	return record, text, nil
}
