package processor

import (
	"context"
	"io"
)

//
// PDF文本提取相关接口
//

// TextExtractor PDF文本提取器接口
// 实现内部负责文本层提取和OCR兜底，对调用方是黑盒
type TextExtractor interface {
	// ExtractTextFromBytes 从字节数组提取文本和元数据
	ExtractTextFromBytes(ctx context.Context, data []byte, uri string) (string, map[string]interface{}, error)

	// ExtractTextFromReader 从io.Reader提取文本和元数据
	ExtractTextFromReader(ctx context.Context, reader io.Reader, uri string) (string, map[string]interface{}, error)
}
