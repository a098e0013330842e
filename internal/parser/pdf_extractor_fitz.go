package parser

import (
	"context"
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gen2brain/go-fitz"
)

// pdfDocument go-fitz文档句柄的最小接口
// 抽出接口是为了让OCR兜底逻辑可以在没有真实PDF的情况下测试
type pdfDocument interface {
	NumPage() int
	Text(page int) (string, error)
	ImageDPI(page int, dpi float64) (image.Image, error)
	Close() error
}

// fitzDocAdapter 适配*fitz.Document：其ImageDPI返回*image.RGBA，
// 接口要求image.Image，做一层签名转换
type fitzDocAdapter struct {
	*fitz.Document
}

func (a fitzDocAdapter) ImageDPI(page int, dpi float64) (image.Image, error) {
	return a.Document.ImageDPI(page, dpi)
}

// openFitzDocument 默认的文档打开方式，生产路径使用MuPDF
func openFitzDocument(data []byte) (pdfDocument, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, err
	}
	return fitzDocAdapter{doc}, nil
}

// FitzTextExtractor 基于MuPDF的PDF文本提取器
// 先尝试文本层提取；全文去空白后短于阈值时认为是图片型PDF，
// 逐页渲染位图并OCR，各页结果按页序以换行符拼接。
type FitzTextExtractor struct {
	// OCR兜底引擎
	ocr OCREngine
	// 文本层有效性阈值（字符数）
	minTextLength int
	// OCR渲染DPI
	ocrDPI float64
	// 文档打开函数，测试时可替换
	openDoc func(data []byte) (pdfDocument, error)
	// 日志记录
	logger *log.Logger
}

// FitzOption 定义配置选项函数
type FitzOption func(*FitzTextExtractor)

// WithOCREngine 配置OCR兜底引擎
func WithOCREngine(engine OCREngine) FitzOption {
	return func(e *FitzTextExtractor) {
		e.ocr = engine
	}
}

// WithMinTextLength 配置文本层有效性阈值
func WithMinTextLength(n int) FitzOption {
	return func(e *FitzTextExtractor) {
		e.minTextLength = n
	}
}

// WithOCRDPI 配置OCR渲染DPI
func WithOCRDPI(dpi float64) FitzOption {
	return func(e *FitzTextExtractor) {
		e.ocrDPI = dpi
	}
}

// WithFitzLogger 配置自定义日志记录器
func WithFitzLogger(logger *log.Logger) FitzOption {
	return func(e *FitzTextExtractor) {
		e.logger = logger
	}
}

// NewFitzTextExtractor 创建PDF文本提取器
// 未显式配置OCR引擎时默认使用PATH中的tesseract
func NewFitzTextExtractor(options ...FitzOption) *FitzTextExtractor {
	extractor := &FitzTextExtractor{
		minTextLength: 100,
		ocrDPI:        300,
		openDoc:       openFitzDocument,
		logger:        log.New(os.Stderr, "[PDF解析器] ", log.LstdFlags),
	}

	for _, option := range options {
		option(extractor)
	}

	if extractor.ocr == nil {
		extractor.ocr = NewTesseractOCR("")
	}

	return extractor
}

// ExtractTextFromBytes 从字节数组提取PDF文本
// 返回: 提取的文本, 提取元数据(页数、是否走了OCR等), 错误
func (e *FitzTextExtractor) ExtractTextFromBytes(ctx context.Context, data []byte, uri string) (string, map[string]interface{}, error) {
	startTime := time.Now()
	e.logger.Printf("开始提取PDF文本 (URI: %s, %d 字节)", uri, len(data))

	doc, err := e.openDoc(data)
	if err != nil {
		return "", nil, fmt.Errorf("打开PDF失败 (URI: %s): %w", uri, err)
	}
	defer doc.Close()

	pageCount := doc.NumPage()
	metadata := map[string]interface{}{
		"uri":        uri,
		"page_count": pageCount,
		"ocr_used":   false,
	}

	// 第一步：文本层提取，所有页拼接
	var sb strings.Builder
	for i := 0; i < pageCount; i++ {
		pageText, err := doc.Text(i)
		if err != nil {
			return "", metadata, fmt.Errorf("提取第 %d 页文本层失败: %w", i+1, err)
		}
		sb.WriteString(pageText)
	}
	text := sb.String()

	// 第二步：文本层过短说明大概率是扫描件，走OCR兜底
	if len(strings.TrimSpace(text)) < e.minTextLength {
		e.logger.Printf("文本层仅 %d 个有效字符，低于阈值 %d，启用OCR (URI: %s)",
			len(strings.TrimSpace(text)), e.minTextLength, uri)

		text, err = e.ocrAllPages(ctx, doc, pageCount)
		if err != nil {
			return "", metadata, err
		}
		metadata["ocr_used"] = true
		metadata["ocr_pages"] = pageCount
	}

	duration := time.Since(startTime)
	metadata["text_length"] = len(text)
	metadata["processing_duration_ms"] = duration.Milliseconds()

	e.logger.Printf("PDF提取完成: %d 个字符, %d 页 (用时 %.2f秒)", len(text), pageCount, duration.Seconds())
	return text, metadata, nil
}

// ExtractTextFromReader 从io.Reader提取PDF文本
func (e *FitzTextExtractor) ExtractTextFromReader(ctx context.Context, reader io.Reader, uri string) (string, map[string]interface{}, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", nil, fmt.Errorf("读取PDF内容失败: %w", err)
	}
	return e.ExtractTextFromBytes(ctx, data, uri)
}

// ExtractFromFile 从PDF文件提取文本
func (e *FitzTextExtractor) ExtractFromFile(ctx context.Context, filePath string) (string, map[string]interface{}, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", nil, fmt.Errorf("读取PDF文件 %s 失败: %w", filePath, err)
	}
	return e.ExtractTextFromBytes(ctx, data, filePath)
}

// ocrAllPages 逐页渲染并OCR，按页序拼接
// 每页结果后追加一个换行符作为页间分隔
func (e *FitzTextExtractor) ocrAllPages(ctx context.Context, doc pdfDocument, pageCount int) (string, error) {
	var sb strings.Builder
	for i := 0; i < pageCount; i++ {
		img, err := doc.ImageDPI(i, e.ocrDPI)
		if err != nil {
			return "", fmt.Errorf("渲染第 %d 页图像失败: %w", i+1, err)
		}

		pageText, err := e.ocr.RecognizeImage(ctx, img)
		if err != nil {
			return "", fmt.Errorf("第 %d 页OCR失败: %w", i+1, err)
		}

		sb.WriteString(pageText)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}
