package parser

import (
	"context"
	"fmt"
	"image"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDocument 内存中的假PDF文档，按页返回预设的文本层内容
type fakeDocument struct {
	pages  []string
	closed bool
}

func (d *fakeDocument) NumPage() int { return len(d.pages) }

func (d *fakeDocument) Text(page int) (string, error) {
	return d.pages[page], nil
}

func (d *fakeDocument) ImageDPI(page int, dpi float64) (image.Image, error) {
	return image.NewRGBA(image.Rect(0, 0, 1, 1)), nil
}

func (d *fakeDocument) Close() error {
	d.closed = true
	return nil
}

// countingOCR 记录调用次数的OCR引擎，按页返回可区分的文本
type countingOCR struct {
	calls int
}

func (o *countingOCR) RecognizeImage(ctx context.Context, img image.Image) (string, error) {
	o.calls++
	return fmt.Sprintf("ocr-page-%d", o.calls), nil
}

// newTestExtractor 构造一个打开假文档的提取器
func newTestExtractor(doc *fakeDocument, ocr OCREngine) *FitzTextExtractor {
	e := NewFitzTextExtractor(WithOCREngine(ocr))
	e.openDoc = func(data []byte) (pdfDocument, error) {
		return doc, nil
	}
	return e
}

// TestTextLayerSufficientSkipsOCR 文本层足够长时绝不触发OCR
func TestTextLayerSufficientSkipsOCR(t *testing.T) {
	longText := strings.Repeat("resume text layer content ", 10) // 远超100字符
	doc := &fakeDocument{pages: []string{longText, "second page"}}
	ocr := &countingOCR{}

	extractor := newTestExtractor(doc, ocr)
	text, metadata, err := extractor.ExtractTextFromBytes(context.Background(), []byte("%PDF"), "test.pdf")

	require.NoError(t, err)
	assert.Equal(t, longText+"second page", text, "文本层结果应为各页直接拼接")
	assert.Equal(t, 0, ocr.calls, "文本层足够时OCR调用次数必须为0")
	assert.Equal(t, false, metadata["ocr_used"])
	assert.True(t, doc.closed, "文档句柄应被关闭")
}

// TestShortTextLayerTriggersOCRPerPage 文本层过短时每页OCR一次，按页序换行拼接
func TestShortTextLayerTriggersOCRPerPage(t *testing.T) {
	doc := &fakeDocument{pages: []string{"  ", "", "x"}} // 去空白后不足100字符
	ocr := &countingOCR{}

	extractor := newTestExtractor(doc, ocr)
	text, metadata, err := extractor.ExtractTextFromBytes(context.Background(), []byte("%PDF"), "scan.pdf")

	require.NoError(t, err)
	assert.Equal(t, 3, ocr.calls, "每页恰好OCR一次")
	assert.Equal(t, "ocr-page-1\nocr-page-2\nocr-page-3\n", text, "OCR结果应按页序以换行符拼接")
	assert.Equal(t, true, metadata["ocr_used"])
	assert.Equal(t, 3, metadata["ocr_pages"])
}

// TestThresholdBoundary 恰好等于阈值的文本层不触发OCR
func TestThresholdBoundary(t *testing.T) {
	exact := strings.Repeat("a", 100)
	doc := &fakeDocument{pages: []string{exact}}
	ocr := &countingOCR{}

	extractor := newTestExtractor(doc, ocr)
	text, _, err := extractor.ExtractTextFromBytes(context.Background(), []byte("%PDF"), "edge.pdf")

	require.NoError(t, err)
	assert.Equal(t, exact, text)
	assert.Equal(t, 0, ocr.calls, "长度等于阈值时不应触发OCR")
}

// TestThresholdCountsStrippedText 阈值判断基于去空白后的长度
func TestThresholdCountsStrippedText(t *testing.T) {
	// 两侧大量空白，有效字符只有1个
	padded := strings.Repeat(" ", 200) + "x" + strings.Repeat("\n", 200)
	doc := &fakeDocument{pages: []string{padded}}
	ocr := &countingOCR{}

	extractor := newTestExtractor(doc, ocr)
	_, metadata, err := extractor.ExtractTextFromBytes(context.Background(), []byte("%PDF"), "pad.pdf")

	require.NoError(t, err)
	assert.Equal(t, 1, ocr.calls, "空白不计入有效字符，应触发OCR")
	assert.Equal(t, true, metadata["ocr_used"])
}

// failingOCR 始终失败的OCR引擎
type failingOCR struct{}

func (o *failingOCR) RecognizeImage(ctx context.Context, img image.Image) (string, error) {
	return "", fmt.Errorf("tesseract未安装")
}

// TestOCRFailurePropagates OCR失败时错误直接上抛，无部分结果
func TestOCRFailurePropagates(t *testing.T) {
	doc := &fakeDocument{pages: []string{""}}

	extractor := newTestExtractor(doc, &failingOCR{})
	text, _, err := extractor.ExtractTextFromBytes(context.Background(), []byte("%PDF"), "bad.pdf")

	require.Error(t, err)
	assert.Empty(t, text)
	assert.Contains(t, err.Error(), "OCR失败")
}

// TestOpenFailure 非法PDF字节直接报错
func TestOpenFailure(t *testing.T) {
	extractor := NewFitzTextExtractor(WithOCREngine(&countingOCR{}))
	extractor.openDoc = func(data []byte) (pdfDocument, error) {
		return nil, fmt.Errorf("not a pdf")
	}

	_, _, err := extractor.ExtractTextFromBytes(context.Background(), []byte("junk"), "junk.bin")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "打开PDF失败")
}
