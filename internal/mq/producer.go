package mq

import (
	"context"
	"fmt"
	"strings"
	"time"

	"sol-ix-gateway/internal/config"
	"sol-ix-gateway/internal/utils"
	"sol-ix-gateway/pkg/logger"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
)

const (
	defaultBatchSize  = 32 * 1024
	defaultLingerMs   = 5
	defaultPartitions = 1
)

// NewKafkaProducer 创建审计事件使用的 Kafka 生产者，topic 不存在时自动创建。
// 返回 topic 实际的分区数，已存在的 topic 以 broker 元数据为准。
func NewKafkaProducer(cfg *config.AuditConfig) (*kafka.Producer, int, error) {
	brokers := strings.TrimSpace(cfg.Brokers)
	partitions, err := ensureTopic(brokers, cfg.Topic, cfg.Partitions)
	if err != nil {
		return nil, 0, err
	}

	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	lingerMs := cfg.LingerMs
	if lingerMs < 0 {
		lingerMs = defaultLingerMs
	}

	localIP, _ := utils.GetLocalIP()
	if localIP == "" {
		localIP = "unknown"
	}

	producer, err := kafka.NewProducer(&kafka.ConfigMap{
		// 基础连接
		"bootstrap.servers": brokers,
		"client.id":         fmt.Sprintf("sol-ix-gateway-%s", localIP),

		// 可靠性保障
		"acks":                                  "all",
		"enable.idempotence":                    true,
		"max.in.flight.requests.per.connection": 5, // 幂等场景下最大值为 5

		// 超时与重试
		"delivery.timeout.ms": 30000,
		"request.timeout.ms":  30000,
		"retries":             5,
		"retry.backoff.ms":    100,

		// 性能优化
		"batch.size":       batchSize,
		"linger.ms":        lingerMs,
		"compression.type": "none",

		"message.max.bytes": 1024 * 1024,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create producer: %w", err)
	}
	return producer, partitions, nil
}

// existingPartitions 返回元数据中 topic 的分区数，topic 不存在或不可用时 ok=false
func existingPartitions(meta *kafka.Metadata, topic string) (n int, ok bool) {
	if meta == nil {
		return 0, false
	}
	t, found := meta.Topics[topic]
	if !found || t.Error.Code() != kafka.ErrNoError || len(t.Partitions) == 0 {
		return 0, false
	}
	return len(t.Partitions), true
}

func ensureTopic(brokers, topic string, partitions int) (int, error) {
	adminClient, err := kafka.NewAdminClient(&kafka.ConfigMap{
		"bootstrap.servers": brokers,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create admin client: %w", err)
	}
	defer adminClient.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	meta, err := adminClient.GetMetadata(&topic, false, 10000)
	if err != nil {
		return 0, fmt.Errorf("failed to get metadata: %w", err)
	}
	if n, ok := existingPartitions(meta, topic); ok {
		if partitions > 0 && n != partitions {
			logger.Warnf("[mq] topic %s 已存在, 分区数 %d 与配置 %d 不一致, 以实际分区数为准", topic, n, partitions)
		}
		return n, nil
	}

	// replicationFactor 是 topic 中每个分区副本的数量
	replicationFactor := 1
	if len(meta.Brokers) > 1 {
		replicationFactor = 2
	}
	if partitions <= 0 {
		partitions = defaultPartitions
	}
	logger.Infof("[mq] 创建 topic %s, partitions=%d, replication factor=%d", topic, partitions, replicationFactor)

	results, err := adminClient.CreateTopics(ctx, []kafka.TopicSpecification{{
		Topic:             topic,
		NumPartitions:     partitions,
		ReplicationFactor: replicationFactor,
	}})
	if err != nil {
		return 0, fmt.Errorf("failed to create topic %s: %w", topic, err)
	}
	for _, result := range results {
		switch result.Error.Code() {
		case kafka.ErrNoError:
		case kafka.ErrTopicAlreadyExists:
			// 并发创建，重新读取实际分区数
			if meta, err := adminClient.GetMetadata(&topic, false, 10000); err == nil {
				if n, ok := existingPartitions(meta, topic); ok {
					return n, nil
				}
			}
		default:
			return 0, fmt.Errorf("failed to create topic %s: %w", result.Topic, result.Error)
		}
	}
	return partitions, nil
}
