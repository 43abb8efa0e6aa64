package mq

import "context"

// Message 代表一条通用的业务消息
type Message struct {
	ID       string            // 消息ID (Redis Stream ID 或 Kafka offset)
	Topic    string            // 主题 (例如 "tipjar_events_donation")
	Key      string            // 分区键，这里用捐赠地址
	Payload  []byte            // 消息体 (JSON)
	Metadata map[string]string // 元数据
}

// Producer 生产者接口
type Producer interface {
	// Publish 发送消息，key 为空则随机分区
	Publish(ctx context.Context, topic string, key string, payload []byte) error
	Close() error
}

// Consumer 消费者接口
type Consumer interface {
	// Subscribe 阻塞消费直到 ctx 结束，handler 返回 error 的消息不确认
	Subscribe(ctx context.Context, topic string, handler func(msg *Message) error) error
	Close() error
}

// 支持的队列类型
const (
	TypeNone  = "none"
	TypeRedis = "redis"
	TypeKafka = "kafka"
)

// NopProducer 未启用消息队列时丢弃消息
type NopProducer struct{}

func (NopProducer) Publish(ctx context.Context, topic string, key string, payload []byte) error {
	return nil
}

func (NopProducer) Close() error { return nil }
