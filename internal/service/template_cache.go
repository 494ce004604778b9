package service

import (
	"context"
	"encoding/json"
	"questionnaire_backend/internal/model"
	"questionnaire_backend/pkg/logger"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const templateCachePrefix = "questionnaire:template:"

// RedisTemplateCache 以 JSON 形式缓存模板；Redis 故障只记录日志，不影响读库
type RedisTemplateCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisTemplateCache(client *redis.Client, ttl time.Duration) *RedisTemplateCache {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &RedisTemplateCache{client: client, ttl: ttl}
}

func templateCacheKey(id string) string {
	return templateCachePrefix + id
}

func (c *RedisTemplateCache) Get(ctx context.Context, id string) (*model.Template, bool) {
	data, err := c.client.Get(ctx, templateCacheKey(id)).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Log.Warn("Template cache read failed", zap.String("templateId", id), zap.Error(err))
		}
		return nil, false
	}

	var template model.Template
	if err := json.Unmarshal(data, &template); err != nil {
		logger.Log.Warn("Dropping undecodable cached template", zap.String("templateId", id), zap.Error(err))
		c.Invalidate(ctx, id)
		return nil, false
	}
	return &template, true
}

func (c *RedisTemplateCache) Set(ctx context.Context, template *model.Template) {
	data, err := json.Marshal(template)
	if err != nil {
		logger.Log.Warn("Template cache encode failed", zap.String("templateId", template.ID), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, templateCacheKey(template.ID), data, c.ttl).Err(); err != nil {
		logger.Log.Warn("Template cache write failed", zap.String("templateId", template.ID), zap.Error(err))
	}
}

func (c *RedisTemplateCache) Invalidate(ctx context.Context, id string) {
	if err := c.client.Del(ctx, templateCacheKey(id)).Err(); err != nil {
		logger.Log.Warn("Template cache invalidation failed", zap.String("templateId", id), zap.Error(err))
	}
}
