package stream

import "github.com/povarna/generative-ai-agents/magi-relay/internal/stream/redis"

type StreamConfig struct {
	Provider    string // only redis today
	RedisConfig *redis.RedisStreamConfig
}

func NewStreamConfig(provider string, redisConfig *redis.RedisStreamConfig) *StreamConfig {
	return &StreamConfig{
		Provider:    provider,
		RedisConfig: redisConfig,
	}
}
