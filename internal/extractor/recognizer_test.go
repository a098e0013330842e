package extractor

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"resume-parser-go/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestHTTPEntityRecognizerRecognize 验证请求格式和标签映射
func TestHTTPEntityRecognizerRecognize(t *testing.T) {
	var receivedBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/entities", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var err error
		receivedBody, err = io.ReadAll(r.Body)
		require.NoError(t, err)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"entities":[
			{"text":"Jane Doe","label":"PERSON"},
			{"text":"Bangalore","label":"GPE"},
			{"text":"Western Ghats","label":"LOC"},
			{"text":"Python","label":"SKILL"},
			{"text":"9876543210","label":"PHONE"},
			{"text":"Monday","label":"DATE"}
		]}`))
	}))
	defer server.Close()

	recognizer := NewHTTPEntityRecognizer(server.URL)
	spans, err := recognizer.Recognize(context.Background(), "resume text")
	require.NoError(t, err)

	// 请求体携带原始文本
	var req map[string]string
	require.NoError(t, json.Unmarshal(receivedBody, &req))
	assert.Equal(t, "resume text", req["text"])

	// GPE和LOC都映射为LOCATION，未知标签映射为OTHER
	expected := []types.EntitySpan{
		{Text: "Jane Doe", Label: types.LabelPerson},
		{Text: "Bangalore", Label: types.LabelLocation},
		{Text: "Western Ghats", Label: types.LabelLocation},
		{Text: "Python", Label: types.LabelSkill},
		{Text: "9876543210", Label: types.LabelPhone},
		{Text: "Monday", Label: types.LabelOther},
	}
	assert.Equal(t, expected, spans)
}

// TestHTTPEntityRecognizerServerError 非200状态码应返回错误
func TestHTTPEntityRecognizerServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer server.Close()

	recognizer := NewHTTPEntityRecognizer(server.URL)
	spans, err := recognizer.Recognize(context.Background(), "resume text")

	require.Error(t, err)
	assert.Nil(t, spans)
	assert.Contains(t, err.Error(), "500")
}

// TestHTTPEntityRecognizerUnreachable 服务不可达时错误直接上抛，不重试
func TestHTTPEntityRecognizerUnreachable(t *testing.T) {
	recognizer := NewHTTPEntityRecognizer("http://127.0.0.1:1")
	spans, err := recognizer.Recognize(context.Background(), "resume text")

	require.Error(t, err)
	assert.Nil(t, spans)
}
