package parser

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"os/exec"
	"time"
)

// OCREngine OCR能力接口
// 输入一页渲染好的位图，输出识别出的文本
type OCREngine interface {
	RecognizeImage(ctx context.Context, img image.Image) (string, error)
}

// TesseractOCR 基于tesseract命令行的OCR实现
// 图像通过stdin以PNG格式传入，识别结果从stdout读出
type TesseractOCR struct {
	// tesseract可执行文件路径
	BinaryPath string
	// 识别语言，例如 "eng"
	Language string
	// 日志记录
	logger *log.Logger
}

// TesseractOption 定义配置选项函数
type TesseractOption func(*TesseractOCR)

// WithTesseractLanguage 配置识别语言
func WithTesseractLanguage(lang string) TesseractOption {
	return func(t *TesseractOCR) {
		t.Language = lang
	}
}

// WithTesseractLogger 配置自定义日志记录器
func WithTesseractLogger(logger *log.Logger) TesseractOption {
	return func(t *TesseractOCR) {
		t.logger = logger
	}
}

// 确保TesseractOCR实现了OCREngine接口
var _ OCREngine = (*TesseractOCR)(nil)

// NewTesseractOCR 创建tesseract OCR引擎
// binaryPath为空时使用PATH中的tesseract
func NewTesseractOCR(binaryPath string, options ...TesseractOption) *TesseractOCR {
	if binaryPath == "" {
		binaryPath = "tesseract"
	}

	engine := &TesseractOCR{
		BinaryPath: binaryPath,
		Language:   "eng",
		logger:     log.New(os.Stderr, "[TesseractOCR] ", log.LstdFlags),
	}

	for _, option := range options {
		option(engine)
	}

	return engine
}

// RecognizeImage 对单页图像执行OCR
func (t *TesseractOCR) RecognizeImage(ctx context.Context, img image.Image) (string, error) {
	startTime := time.Now()

	var input bytes.Buffer
	if err := png.Encode(&input, img); err != nil {
		return "", fmt.Errorf("编码OCR输入图像失败: %w", err)
	}

	// "stdin stdout" 让tesseract直接走标准输入输出，避免落盘
	cmd := exec.CommandContext(ctx, t.BinaryPath, "stdin", "stdout", "-l", t.Language)
	cmd.Stdin = &input

	var output, stderr bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("执行tesseract失败: %w (stderr: %s)", err, stderr.String())
	}

	t.logger.Printf("OCR完成: 识别出 %d 个字符 (用时 %.2f秒)", output.Len(), time.Since(startTime).Seconds())
	return output.String(), nil
}
