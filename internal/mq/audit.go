package mq

import (
	"context"
	"fmt"
	"sync"
	"time"

	"sol-ix-gateway/internal/config"
	"sol-ix-gateway/internal/consts"
	"sol-ix-gateway/internal/types"
	"sol-ix-gateway/internal/utils"
	"sol-ix-gateway/pkg/logger"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/zeromicro/go-zero/core/threading"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	defaultSendTimeout = 2 * time.Second
	flushTimeoutMs     = 3000
)

// AuditPublisher 把每次成功操作的公开信息写入 Kafka。
// 私钥和消息正文不会出现在事件里；发送失败只记录日志，不影响请求结果。
type AuditPublisher struct {
	producer    *kafka.Producer // 可为空（测试中只注入 sender）
	sender      Producer
	topic       string
	partitions  uint32
	sendTimeout time.Duration
	stopChan    chan struct{}
	stopOnce    sync.Once
}

func NewAuditPublisher(cfg *config.AuditConfig) (*AuditPublisher, error) {
	producer, partitions, err := NewKafkaProducer(cfg)
	if err != nil {
		return nil, err
	}
	a := newAuditPublisher(producer, cfg.Topic, partitions, time.Duration(cfg.SendTimeoutMs)*time.Millisecond)
	a.producer = producer
	return a, nil
}

func newAuditPublisher(sender Producer, topic string, partitions int, sendTimeout time.Duration) *AuditPublisher {
	if partitions <= 0 {
		partitions = defaultPartitions
	}
	if sendTimeout <= 0 {
		sendTimeout = defaultSendTimeout
	}
	return &AuditPublisher{
		sender:      sender,
		topic:       topic,
		partitions:  uint32(partitions),
		sendTimeout: sendTimeout,
		stopChan:    make(chan struct{}),
	}
}

// Publish 异步发送审计事件，a 为 nil 时什么都不做
func (a *AuditPublisher) Publish(operation string, result any) {
	if a == nil {
		return
	}
	threading.GoSafe(func() {
		ctx, cancel := context.WithTimeout(context.Background(), a.sendTimeout)
		defer cancel()
		if err := a.publish(ctx, operation, result); err != nil {
			logger.Warnf("[AuditPublisher] 发送审计事件失败: op=%s, err=%v", operation, err)
		}
	})
}

func (a *AuditPublisher) publish(ctx context.Context, operation string, result any) error {
	job, err := a.buildJob(operation, result)
	if err != nil {
		return err
	}
	if job == nil {
		return nil
	}
	_, failed := SendKafkaJobs(ctx, a.sender, []*KafkaJob{job}, a.sendTimeout)
	if len(failed) > 0 {
		return failed[0].Err
	}
	return nil
}

func (a *AuditPublisher) buildJob(operation string, result any) (*KafkaJob, error) {
	eventType, key, fields, ok := auditFields(result)
	if !ok {
		return nil, nil
	}
	fields["operation"] = operation
	fields["timestamp_ms"] = time.Now().UnixMilli()

	msg, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("build audit event: %w", err)
	}
	value, err := utils.EncodeEvent(eventType, msg)
	if err != nil {
		return nil, err
	}

	var keyBytes []byte
	if p, err := types.TryPubkeyFromBase58(key); err == nil {
		keyBytes = p[:]
	}
	return &KafkaJob{
		Topic:     a.topic,
		Partition: int32(utils.PartitionHashBytes(keyBytes, a.partitions)),
		Key:       keyBytes,
		Value:     value,
	}, nil
}

// auditFields 只提取可以公开的字段
func auditFields(result any) (eventType uint32, key string, fields map[string]any, ok bool) {
	switch r := result.(type) {
	case *types.KeypairResp:
		return consts.AuditEventKeypairGenerated, r.Pubkey, map[string]any{
			"pubkey": r.Pubkey,
		}, true

	case *types.InstructionResp:
		accounts := make([]any, 0, len(r.Accounts))
		for _, acc := range r.Accounts {
			accounts = append(accounts, acc.Pubkey)
		}
		if len(r.Accounts) > 0 {
			key = r.Accounts[0].Pubkey
		}
		return consts.AuditEventInstructionBuilt, key, map[string]any{
			"program_id": r.ProgramID,
			"accounts":   accounts,
		}, true

	case *types.SignMessageResp:
		return consts.AuditEventMessageSigned, r.PublicKey, map[string]any{
			"public_key": r.PublicKey,
		}, true

	case *types.VerifyMessageResp:
		return consts.AuditEventMessageVerified, r.Pubkey, map[string]any{
			"pubkey": r.Pubkey,
			"valid":  r.Valid,
		}, true

	default:
		return 0, "", nil, false
	}
}

// Start 消费 producer 的全局事件（连接错误等），阻塞直到 Stop
func (a *AuditPublisher) Start() {
	if a.producer == nil {
		<-a.stopChan
		return
	}
	for {
		select {
		case <-a.stopChan:
			return
		case e, ok := <-a.producer.Events():
			if !ok {
				return
			}
			if kerr, isErr := e.(kafka.Error); isErr {
				logger.Warnf("[AuditPublisher] kafka error: %v", kerr)
			}
		}
	}
}

func (a *AuditPublisher) Stop() {
	a.stopOnce.Do(func() {
		close(a.stopChan)
		if a.producer != nil {
			if remaining := a.producer.Flush(flushTimeoutMs); remaining > 0 {
				logger.Warnf("[AuditPublisher] 关闭时仍有 %d 条事件未发送", remaining)
			}
			a.producer.Close()
		}
	})
}
