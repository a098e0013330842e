package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"resume-parser-go/internal/config"
	"resume-parser-go/internal/constants"
	"resume-parser-go/internal/types"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound 缓存中不存在对应的键
// 包装底层的redis.Nil，调用方不直接依赖redis包
var ErrNotFound = redis.Nil

// Redis 提供解析结果缓存
// 以原始文本MD5为键，同一份文本重复提交时直接命中缓存，不再调用模型
type Redis struct {
	Client   *redis.Client
	cfg      *config.RedisConfig
	cacheTTL time.Duration
}

// NewRedisAdapter 创建Redis客户端
func NewRedisAdapter(cfg *config.RedisConfig) (*Redis, error) {
	if cfg == nil {
		return nil, fmt.Errorf("Redis配置不能为空")
	}
	if cfg.Address == "" {
		return nil, fmt.Errorf("Redis地址不能为空")
	}

	opt := &redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
	if cfg.PoolSize > 0 {
		opt.PoolSize = cfg.PoolSize
	}
	if cfg.MinIdleConns > 0 {
		opt.MinIdleConns = cfg.MinIdleConns
	}
	if cfg.DialTimeoutSeconds > 0 {
		opt.DialTimeout = time.Duration(cfg.DialTimeoutSeconds) * time.Second
	}
	if cfg.ReadTimeoutSeconds > 0 {
		opt.ReadTimeout = time.Duration(cfg.ReadTimeoutSeconds) * time.Second
	}
	if cfg.WriteTimeoutSeconds > 0 {
		opt.WriteTimeout = time.Duration(cfg.WriteTimeoutSeconds) * time.Second
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("连接Redis (%s) 失败: %w", cfg.Address, err)
	}

	cacheTTL := constants.ProfileCacheDuration
	if cfg.ProfileCacheExpireHours > 0 {
		cacheTTL = time.Duration(cfg.ProfileCacheExpireHours) * time.Hour
	}

	return &Redis{Client: client, cfg: cfg, cacheTTL: cacheTTL}, nil
}

// profileCacheKey 解析结果缓存键
func profileCacheKey(rawTextMD5 string) string {
	return fmt.Sprintf(constants.KeyProfileCache, rawTextMD5)
}

// GetCachedProfile 按原始文本MD5查缓存
// 未命中返回ErrNotFound
func (r *Redis) GetCachedProfile(ctx context.Context, rawTextMD5 string) (*types.ExtractedRecord, error) {
	data, err := r.Client.Get(ctx, profileCacheKey(rawTextMD5)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("读取解析结果缓存失败 (md5:%s): %w", rawTextMD5, err)
	}

	var record types.ExtractedRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("反序列化缓存的解析结果失败 (md5:%s): %w", rawTextMD5, err)
	}
	return &record, nil
}

// CacheProfile 写入解析结果缓存，带TTL
func (r *Redis) CacheProfile(ctx context.Context, rawTextMD5 string, record *types.ExtractedRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("序列化解析结果失败 (md5:%s): %w", rawTextMD5, err)
	}

	if err := r.Client.Set(ctx, profileCacheKey(rawTextMD5), data, r.cacheTTL).Err(); err != nil {
		return fmt.Errorf("写入解析结果缓存失败 (md5:%s): %w", rawTextMD5, err)
	}
	return nil
}

// Close 关闭Redis连接
func (r *Redis) Close() error {
	return r.Client.Close()
}
