package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"resume-parser-go/internal/api/handler"
	"resume-parser-go/internal/api/router"
	"resume-parser-go/internal/config"
	appCoreLogger "resume-parser-go/internal/logger"
	"resume-parser-go/internal/parser"
	"resume-parser-go/internal/processor"
	"resume-parser-go/internal/storage"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	glog "github.com/cloudwego/hertz/pkg/common/hlog"
	hertzadapter "github.com/hertz-contrib/logger/zerolog"
	"github.com/spf13/pflag"

	"resume-parser-go/internal/extractor"
)

func main() {
	var configPath string
	pflag.StringVarP(&configPath, "config", "c", "", "Path to config file")
	pflag.Parse()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	initLogger(cfg)
	glog.Info("配置加载成功")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 1. 初始化存储管理器（各组件可选）
	storageManager, err := storage.NewStorage(ctx, cfg)
	if err != nil {
		glog.Fatalf("初始化存储失败: %v", err)
	}
	defer storageManager.Close()
	glog.Info("存储服务初始化成功")

	// 声明解析事件交换机
	if storageManager.RabbitMQ != nil && cfg.RabbitMQ.ProfileEventsExchange != "" {
		if err := storageManager.RabbitMQ.EnsureExchange(cfg.RabbitMQ.ProfileEventsExchange, "topic", true); err != nil {
			glog.Fatalf("声明解析事件交换机失败: %v", err)
		}
	}

	// 2. 初始化NER客户端
	// 模型在sidecar服务中加载一次，这里构造的客户端在进程生命周期内复用
	if cfg.NER.ServerURL == "" {
		glog.Fatalf("未配置NER服务地址 (ner.server_url)")
	}
	recognizer := extractor.NewHTTPEntityRecognizer(
		cfg.NER.ServerURL,
		extractor.WithRecognizerTimeout(time.Duration(cfg.NER.TimeoutSeconds)*time.Second),
		extractor.WithRecognizerLogger(log.New(os.Stderr, "[NERMain] ", log.LstdFlags)),
	)
	glog.Info("NER客户端初始化成功")

	// 3. 初始化PDF提取器（文本层 + tesseract OCR兜底）
	ocrEngine := parser.NewTesseractOCR(
		cfg.PDF.TesseractPath,
		parser.WithTesseractLanguage(cfg.PDF.TesseractLang),
	)
	pdfExtractor := parser.NewFitzTextExtractor(
		parser.WithOCREngine(ocrEngine),
		parser.WithMinTextLength(cfg.PDF.MinTextLength),
		parser.WithOCRDPI(cfg.PDF.OCRDPI),
		parser.WithFitzLogger(log.New(os.Stderr, "[PDFMain] ", log.LstdFlags)),
	)
	glog.Info("PDF提取器初始化成功")

	// 4. 初始化解析服务和API处理器
	resumeParser := processor.NewResumeParser(recognizer, pdfExtractor)
	parseHandler := handler.NewParseHandler(cfg, storageManager, resumeParser)
	glog.Info("简历解析处理器初始化成功")

	// 5. 创建HTTP服务器
	h := server.New(
		server.WithHostPorts(cfg.Server.Address),
		server.WithHandleMethodNotAllowed(true),
	)
	h.Use(func(c context.Context, ctx *app.RequestContext) {
		glog.CtxInfof(c, "Request: %s %s", string(ctx.Method()), string(ctx.Path()))
		ctx.Next(c)
		glog.CtxInfof(c, "Response: status %d", ctx.Response.StatusCode())
	})

	router.RegisterRoutes(h, parseHandler)
	glog.Info("HTTP路由注册成功")

	glog.Infof("HTTP 服务器启动中，监听地址: %s", cfg.Server.Address)

	go func() {
		if err := h.Run(); err != nil {
			glog.Fatalf("启动HTTP服务器失败: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	glog.Info("接收到终止信号，正在优雅退出...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := h.Shutdown(shutdownCtx); err != nil {
		glog.Fatalf("服务器关闭失败: %v", err)
	}
	glog.Info("优雅退出完成")
}

// initLogger 初始化zerolog并把Hertz的框架日志桥接过去
func initLogger(cfg *config.Config) {
	appCoreLogger.Init(appCoreLogger.Config{
		Level:        cfg.Logger.Level,
		Format:       cfg.Logger.Format,
		TimeFormat:   cfg.Logger.TimeFormat,
		ReportCaller: cfg.Logger.ReportCaller,
	})

	hertzCompatibleLogger := hertzadapter.From(appCoreLogger.Logger)
	glog.SetLogger(hertzCompatibleLogger)
}
