package handler

import (
	"bytes"
	"context"
	"io"
	"testing"

	"resume-parser-go/internal/config"
	"resume-parser-go/internal/processor"
	storage2 "resume-parser-go/internal/storage"
	"resume-parser-go/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRecognizer 返回预设实体的假NER客户端
type fakeRecognizer struct {
	spans []types.EntitySpan
}

func (f *fakeRecognizer) Recognize(ctx context.Context, text string) ([]types.EntitySpan, error) {
	return f.spans, nil
}

// fakeExtractor 返回预设文本的假PDF提取器
type fakeExtractor struct {
	text  string
	calls int
}

func (f *fakeExtractor) ExtractTextFromBytes(ctx context.Context, data []byte, uri string) (string, map[string]interface{}, error) {
	f.calls++
	return f.text, map[string]interface{}{"ocr_used": false}, nil
}

func (f *fakeExtractor) ExtractTextFromReader(ctx context.Context, reader io.Reader, uri string) (string, map[string]interface{}, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", nil, err
	}
	return f.ExtractTextFromBytes(ctx, data, uri)
}

// newTestHandler 构造一个不依赖任何外部存储的处理器
func newTestHandler(recognizer *fakeRecognizer, extractor *fakeExtractor) *ParseHandler {
	cfg := &config.Config{}
	parser := processor.NewResumeParser(recognizer, extractor)
	// 存储组件全部未配置：核心解析必须照常工作
	return NewParseHandler(cfg, &storage2.Storage{}, parser)
}

// TestHandleParseTextWithoutStorage 无任何存储组件时文本解析照常返回
func TestHandleParseTextWithoutStorage(t *testing.T) {
	recognizer := &fakeRecognizer{spans: []types.EntitySpan{
		{Text: "Jane Doe", Label: types.LabelPerson},
	}}
	h := newTestHandler(recognizer, &fakeExtractor{})

	resp, err := h.HandleParseText(context.Background(), "Jane Doe\njane@example.com")
	require.NoError(t, err)

	assert.Equal(t, StatusParsed, resp.Status)
	assert.NotEmpty(t, resp.SubmissionUUID, "每次解析请求应生成提交UUID")
	require.NotNil(t, resp.Profile)
	assert.Equal(t, "Jane Doe", resp.Profile.Name)
	assert.Equal(t, "jane@example.com", resp.Profile.Email)
}

// TestHandleParsePDFRejectsNonPDF 非PDF内容类型返回输入错误，且不读提取器
func TestHandleParsePDFRejectsNonPDF(t *testing.T) {
	extractor := &fakeExtractor{}
	h := newTestHandler(&fakeRecognizer{}, extractor)

	resp, err := h.HandleParsePDF(context.Background(),
		bytes.NewReader([]byte("plain text")), 10, "resume.txt", "text/plain")

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, processor.ErrInvalidInput)
	assert.Equal(t, 0, extractor.calls, "内容类型校验应发生在文本提取之前")
}

// TestHandleParsePDFSuccess PDF路径走完整管线
func TestHandleParsePDFSuccess(t *testing.T) {
	recognizer := &fakeRecognizer{spans: []types.EntitySpan{
		{Text: "Go", Label: types.LabelSkill},
	}}
	extractor := &fakeExtractor{text: "extracted resume text with dev@example.com"}
	h := newTestHandler(recognizer, extractor)

	resp, err := h.HandleParsePDF(context.Background(),
		bytes.NewReader([]byte("%PDF-1.4")), 8, "resume.pdf", "application/pdf")
	require.NoError(t, err)

	assert.Equal(t, StatusParsed, resp.Status)
	assert.Equal(t, 1, extractor.calls)
	assert.Equal(t, []string{"Go"}, resp.Profile.Skills)
	assert.Equal(t, "dev@example.com", resp.Profile.Email)
}

// TestCalculateMD5 MD5辅助函数与标准结果一致
func TestCalculateMD5(t *testing.T) {
	// md5("") 的已知值
	assert.Equal(t, "d41d8cd98f00b204e9800998ecf8427e", calculateMD5(nil))
	assert.Equal(t, "9e107d9d372bb6826bd81d3542a419d6", calculateMD5([]byte("The quick brown fox jumps over the lazy dog")))
}
