package router

import (
	"context"
	"errors"

	"resume-parser-go/internal/api/handler"
	"resume-parser-go/internal/processor"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// parseTextRequest 纯文本解析请求体
type parseTextRequest struct {
	Text string `json:"text"`
}

// errorStatus 错误到HTTP状态码的映射
// 输入类错误返回400，其余（实体识别、PDF提取、OCR）一律500
func errorStatus(err error) int {
	if errors.Is(err, processor.ErrInvalidInput) {
		return consts.StatusBadRequest
	}
	return consts.StatusInternalServerError
}

// RegisterRoutes 注册 API 路由
func RegisterRoutes(h *server.Hertz, parseHandler *handler.ParseHandler) {
	api := h.Group("/api/v1")

	// 纯文本简历解析
	api.POST("/resume/parse", func(c context.Context, ctx *app.RequestContext) {
		var req parseTextRequest
		if err := ctx.BindJSON(&req); err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "请求体必须是包含text字段的JSON"})
			return
		}

		resp, err := parseHandler.HandleParseText(c, req.Text)
		if err != nil {
			ctx.JSON(errorStatus(err), utils.H{"error": err.Error()})
			return
		}

		ctx.JSON(consts.StatusOK, resp)
	})

	// PDF简历解析
	api.POST("/resume/parse_pdf", func(c context.Context, ctx *app.RequestContext) {
		fileHeader, err := ctx.FormFile("file")
		if err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "文件未找到"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "打开文件失败"})
			return
		}
		defer file.Close()

		contentType := fileHeader.Header.Get("Content-Type")

		resp, err := parseHandler.HandleParsePDF(
			c,
			file,
			fileHeader.Size,
			fileHeader.Filename,
			contentType,
		)
		if err != nil {
			ctx.JSON(errorStatus(err), utils.H{"error": err.Error()})
			return
		}

		ctx.JSON(consts.StatusOK, resp)
	})

	// 健康检查
	api.GET("/health", func(c context.Context, ctx *app.RequestContext) {
		ctx.JSON(consts.StatusOK, utils.H{"status": "ok"})
	})
}
