package handler

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"resume-parser-go/internal/config"
	"resume-parser-go/internal/constants"
	"resume-parser-go/internal/logger"
	"resume-parser-go/internal/processor"
	storage2 "resume-parser-go/internal/storage"
	"resume-parser-go/internal/storage/models"
	"resume-parser-go/internal/types"

	"github.com/gofrs/uuid/v5"
)

// ParseHandler 简历解析处理器，在核心管线外围协调缓存、归档、落库和事件发布
// 存储组件都是可选的：未配置时只执行核心解析
type ParseHandler struct {
	cfg     *config.Config
	storage *storage2.Storage
	parser  *processor.ResumeParser
}

// NewParseHandler 创建简历解析处理器
func NewParseHandler(cfg *config.Config, storage *storage2.Storage, parser *processor.ResumeParser) *ParseHandler {
	return &ParseHandler{
		cfg:     cfg,
		storage: storage,
		parser:  parser,
	}
}

// ParseResumeResponse 解析接口响应
type ParseResumeResponse struct {
	SubmissionUUID string                 `json:"submission_uuid"`
	Status         string                 `json:"status"`
	Profile        *types.ExtractedRecord `json:"profile"`
}

// 响应状态
const (
	StatusParsed   = "PARSED"
	StatusCacheHit = "CACHE_HIT"
)

// calculateMD5 计算字节内容的MD5十六进制串
func calculateMD5(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}

// HandleParseText 处理纯文本简历解析请求
func (h *ParseHandler) HandleParseText(ctx context.Context, text string) (*ParseResumeResponse, error) {
	rawTextMD5 := calculateMD5([]byte(text))

	// 1. 缓存命中时跳过整个管线（同一份文本的解析结果是确定的）
	if cached := h.lookupCache(ctx, rawTextMD5); cached != nil {
		return &ParseResumeResponse{
			SubmissionUUID: "",
			Status:         StatusCacheHit,
			Profile:        cached,
		}, nil
	}

	// 2. 生成本次请求的提交UUID
	submissionUUID, err := newSubmissionUUID()
	if err != nil {
		return nil, err
	}

	// 3. 执行核心解析管线
	record, err := h.parser.ParseText(ctx, text)
	if err != nil {
		return nil, err
	}

	// 4. 落库、发事件、写缓存（均为尽力而为，不影响已成功的解析结果）
	h.persistAndPublish(ctx, submissionUUID, constants.SourceTypeText, "", "", rawTextMD5, record)

	return &ParseResumeResponse{
		SubmissionUUID: submissionUUID,
		Status:         StatusParsed,
		Profile:        record,
	}, nil
}

// HandleParsePDF 处理PDF简历解析请求
// 内容类型校验在读取文件内容之前执行
func (h *ParseHandler) HandleParsePDF(ctx context.Context, reader io.Reader, fileSize int64, filename, contentType string) (*ParseResumeResponse, error) {
	if contentType != constants.ContentTypePDF {
		return nil, processor.NewInvalidInputError(fmt.Sprintf("文件必须是PDF，实际内容类型: %s", contentType))
	}

	fileBytes, err := io.ReadAll(reader)
	if err != nil {
		return nil, processor.NewInvalidInputError(fmt.Sprintf("读取上传文件内容失败: %v", err))
	}

	submissionUUID, err := newSubmissionUUID()
	if err != nil {
		return nil, err
	}

	// 归档原始文件（如果配置了MinIO）；归档失败不阻塞解析
	objectKey := h.archiveOriginal(ctx, submissionUUID, filename, fileBytes)

	record, text, err := h.parser.ParsePDF(ctx, fileBytes, contentType, filename)
	if err != nil {
		return nil, err
	}

	rawTextMD5 := calculateMD5([]byte(text))
	h.persistAndPublish(ctx, submissionUUID, constants.SourceTypePDF, filename, objectKey, rawTextMD5, record)

	return &ParseResumeResponse{
		SubmissionUUID: submissionUUID,
		Status:         StatusParsed,
		Profile:        record,
	}, nil
}

// newSubmissionUUID 生成UUIDv7作为提交标识
func newSubmissionUUID() (string, error) {
	uuidV7, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("生成UUIDv7失败: %w", err)
	}
	return uuidV7.String(), nil
}

// lookupCache 查解析结果缓存，未配置Redis或未命中时返回nil
func (h *ParseHandler) lookupCache(ctx context.Context, rawTextMD5 string) *types.ExtractedRecord {
	if h.storage == nil || h.storage.Redis == nil {
		return nil
	}

	record, err := h.storage.Redis.GetCachedProfile(ctx, rawTextMD5)
	if errors.Is(err, storage2.ErrNotFound) {
		return nil
	}
	if err != nil {
		// 缓存故障降级为直接解析
		logger.Warn().Err(err).Str("md5", rawTextMD5).Msg("查询解析结果缓存失败")
		return nil
	}

	logger.Info().Str("md5", rawTextMD5).Msg("解析结果缓存命中")
	return record
}

// archiveOriginal 把原始PDF归档到对象存储，返回对象键
// 未配置MinIO或上传失败时返回空串，不影响解析
func (h *ParseHandler) archiveOriginal(ctx context.Context, submissionUUID, filename string, fileBytes []byte) string {
	if h.storage == nil || h.storage.MinIO == nil {
		return ""
	}

	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".pdf"
	}

	objectKey, err := h.storage.MinIO.UploadResumeFile(ctx, submissionUUID, ext,
		bytes.NewReader(fileBytes), int64(len(fileBytes)))
	if err != nil {
		logger.Warn().Err(err).
			Str("submission_uuid", submissionUUID).
			Str("filename", filename).
			Msg("归档原始简历到MinIO失败")
		return ""
	}
	return objectKey
}

// persistAndPublish 解析成功后的外围动作：落库、发事件、写缓存
// 任何一步失败只记录日志，已成功的解析结果照常返回
func (h *ParseHandler) persistAndPublish(ctx context.Context, submissionUUID, sourceType, filename, objectKey, rawTextMD5 string, record *types.ExtractedRecord) {
	if h.storage == nil {
		return
	}

	if h.storage.MySQL != nil {
		profile := &models.ExtractedProfile{
			SubmissionUUID:      submissionUUID,
			Name:                record.Name,
			FirstName:           record.FirstName,
			LastName:            record.LastName,
			Email:               record.Email,
			Phone:               record.Phone,
			Location:            record.Location,
			SkillsJSON:          storage2.SkillsToJSON(record.Skills),
			LinkedIn:            record.LinkedIn,
			GitHub:              record.GitHub,
			SourceType:          sourceType,
			OriginalFilename:    filename,
			OriginalFilePathOSS: objectKey,
			RawTextMD5:          rawTextMD5,
			ParserVersion:       constants.ParserVersion,
		}
		if err := h.storage.MySQL.SaveProfile(ctx, profile); err != nil {
			logger.Error().Err(err).
				Str("submission_uuid", submissionUUID).
				Msg("持久化解析结果失败")
		}
	}

	if h.storage.RabbitMQ != nil {
		message := storage2.ProfileExtractedMessage{
			SubmissionUUID:   submissionUUID,
			SourceType:       sourceType,
			OriginalFilename: filename,
			RawTextMD5:       rawTextMD5,
			Profile:          record,
			ParserVersion:    constants.ParserVersion,
			ExtractedAt:      time.Now(),
		}
		err := h.storage.RabbitMQ.PublishJSON(
			ctx,
			h.cfg.RabbitMQ.ProfileEventsExchange,
			h.cfg.RabbitMQ.ExtractedRoutingKey,
			message,
			true, // 持久化
		)
		if err != nil {
			logger.Error().Err(err).
				Str("submission_uuid", submissionUUID).
				Msg("发布解析事件到RabbitMQ失败")
		}
	}

	if h.storage.Redis != nil {
		if err := h.storage.Redis.CacheProfile(ctx, rawTextMD5, record); err != nil {
			logger.Warn().Err(err).Str("md5", rawTextMD5).Msg("写入解析结果缓存失败")
		}
	}
}
