package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"resume-parser-go/internal/types"
)

// EntityRecognizer 实体识别能力接口
// 对管线而言模型是黑盒：输入原始文本，输出带标签的实体片段序列。
// 实现必须支持多请求并发只读使用（模型推理是无状态的）。
type EntityRecognizer interface {
	// Recognize 对文本执行一次实体识别
	Recognize(ctx context.Context, text string) ([]types.EntitySpan, error)
}

// HTTPEntityRecognizer 调用独立部署的NER模型服务
// 模型在sidecar进程启动时加载一次，本客户端在进程生命周期内复用同一个连接池
type HTTPEntityRecognizer struct {
	// NER服务地址，例如 http://localhost:9090
	ServerURL string
	// HTTP客户端，可配置超时等参数
	Client *http.Client
	// 日志记录
	logger *log.Logger
}

// RecognizerOption 定义配置选项函数
type RecognizerOption func(*HTTPEntityRecognizer)

// WithRecognizerTimeout 配置HTTP客户端超时时间
func WithRecognizerTimeout(timeout time.Duration) RecognizerOption {
	return func(r *HTTPEntityRecognizer) {
		r.Client.Timeout = timeout
	}
}

// WithRecognizerHTTPClient 替换整个HTTP客户端（测试用）
func WithRecognizerHTTPClient(client *http.Client) RecognizerOption {
	return func(r *HTTPEntityRecognizer) {
		r.Client = client
	}
}

// WithRecognizerLogger 配置自定义日志记录器
func WithRecognizerLogger(logger *log.Logger) RecognizerOption {
	return func(r *HTTPEntityRecognizer) {
		r.logger = logger
	}
}

// 确保HTTPEntityRecognizer实现了EntityRecognizer接口
var _ EntityRecognizer = (*HTTPEntityRecognizer)(nil)

// NewHTTPEntityRecognizer 创建NER服务客户端
func NewHTTPEntityRecognizer(serverURL string, options ...RecognizerOption) *HTTPEntityRecognizer {
	recognizer := &HTTPEntityRecognizer{
		ServerURL: serverURL,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: log.New(os.Stderr, "[NER客户端] ", log.LstdFlags),
	}

	for _, option := range options {
		option(recognizer)
	}

	return recognizer
}

// recognizeRequest NER服务请求体
type recognizeRequest struct {
	Text string `json:"text"`
}

// recognizeResponse NER服务响应体
type recognizeResponse struct {
	Entities []rawEntity `json:"entities"`
}

// rawEntity 模型侧的原始实体，label为模型自己的标签体系
type rawEntity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// Recognize 调用NER服务识别实体
func (r *HTTPEntityRecognizer) Recognize(ctx context.Context, text string) ([]types.EntitySpan, error) {
	startTime := time.Now()

	body, err := json.Marshal(recognizeRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("序列化NER请求失败: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.ServerURL+"/entities", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("构造NER请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("调用NER服务 %s 失败: %w", r.ServerURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("NER服务返回非200状态码 %d: %s", resp.StatusCode, string(respBody))
	}

	var result recognizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("解析NER服务响应失败: %w", err)
	}

	spans := make([]types.EntitySpan, 0, len(result.Entities))
	for _, ent := range result.Entities {
		spans = append(spans, types.EntitySpan{
			Text:  ent.Text,
			Label: normalizeLabel(ent.Label),
		})
	}

	r.logger.Printf("实体识别完成: %d 个实体 (用时 %.2f秒)", len(spans), time.Since(startTime).Seconds())
	return spans, nil
}

// normalizeLabel 把模型侧标签映射到管线的标签枚举
// GPE和LOC统一视为地点；未知标签一律归入OTHER
func normalizeLabel(raw string) types.EntityLabel {
	switch raw {
	case "PERSON":
		return types.LabelPerson
	case "GPE", "LOC":
		return types.LabelLocation
	case "SKILL":
		return types.LabelSkill
	case "PHONE":
		return types.LabelPhone
	default:
		return types.LabelOther
	}
}
