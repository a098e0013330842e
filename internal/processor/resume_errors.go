package processor

import (
	"errors"
	"fmt"
)

// 定义基础错误类型
var (
	// ErrInvalidInput 调用方输入不满足前置条件，直接拒绝，不进入管线
	ErrInvalidInput = errors.New("输入不合法")
	// ErrEntityRecognizeFailed 实体识别过程失败
	ErrEntityRecognizeFailed = errors.New("实体识别失败")
	// ErrTextExtractFailed PDF文本提取（含OCR）过程失败
	ErrTextExtractFailed = errors.New("提取PDF文本失败")
)

// ParseError 包含详细上下文的解析错误
// 内部失败不做恢复和重试，统一包装后抛给请求边界
type ParseError struct {
	Op      string // 失败的操作
	BaseErr error  // 基础错误类型
	Detail  string // 底层原因描述
}

func (e *ParseError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (操作:%s): %s", e.BaseErr, e.Op, e.Detail)
	}
	return fmt.Sprintf("%s (操作:%s)", e.BaseErr, e.Op)
}

func (e *ParseError) Unwrap() error {
	return e.BaseErr
}

// Is 实现 errors.Is 接口以支持错误比较
func (e *ParseError) Is(target error) bool {
	return errors.Is(e.BaseErr, target)
}

// 错误构造函数

func NewInvalidInputError(detail string) error {
	return &ParseError{
		Op:      "validate",
		BaseErr: ErrInvalidInput,
		Detail:  detail,
	}
}

func NewRecognizeError(detail string) error {
	return &ParseError{
		Op:      "recognize",
		BaseErr: ErrEntityRecognizeFailed,
		Detail:  detail,
	}
}

func NewExtractError(detail string) error {
	return &ParseError{
		Op:      "extract",
		BaseErr: ErrTextExtractFailed,
		Detail:  detail,
	}
}
