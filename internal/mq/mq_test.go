package mq

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"sol-ix-gateway/internal/consts"
	"sol-ix-gateway/internal/types"
	"sol-ix-gateway/internal/utils"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"
)

// fakeProducer 模拟 Kafka 投递结果
type fakeProducer struct {
	mu         sync.Mutex
	messages   []*kafka.Message
	produceErr error
	deliverErr error
	silent     bool // 不回写 delivery 事件，用于模拟超时
}

func (f *fakeProducer) Produce(msg *kafka.Message, deliveryChan chan kafka.Event) error {
	if f.produceErr != nil {
		return f.produceErr
	}
	f.mu.Lock()
	f.messages = append(f.messages, msg)
	f.mu.Unlock()
	if !f.silent {
		reply := *msg
		reply.TopicPartition.Error = f.deliverErr
		deliveryChan <- &reply
	}
	return nil
}

func TestSendKafkaJobs(t *testing.T) {
	p := &fakeProducer{}
	jobs := []*KafkaJob{
		{Topic: "test-topic", Value: []byte("test message 1")},
		{Topic: "test-topic", Value: []byte("test message 2")},
	}

	ok, failed := SendKafkaJobs(context.Background(), p, jobs, time.Second)
	assert.Len(t, ok, 2, "应该成功发送 2 条消息")
	assert.Empty(t, failed, "不应该有失败的消息")
	assert.Len(t, p.messages, 2)
}

func TestSendKafkaJobsFailures(t *testing.T) {
	jobs := []*KafkaJob{{Topic: "test-topic", Value: []byte("x")}}

	_, failed := SendKafkaJobs(context.Background(), &fakeProducer{produceErr: errors.New("queue full")}, jobs, time.Second)
	require.Len(t, failed, 1)
	assert.ErrorContains(t, failed[0].Err, "queue full")

	_, failed = SendKafkaJobs(context.Background(), &fakeProducer{deliverErr: errors.New("broker down")}, jobs, time.Second)
	require.Len(t, failed, 1)
	assert.ErrorContains(t, failed[0].Err, "broker down")

	_, failed = SendKafkaJobs(context.Background(), &fakeProducer{silent: true}, jobs, 20*time.Millisecond)
	require.Len(t, failed, 1)
	assert.ErrorContains(t, failed[0].Err, "delivery timeout")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, failed = SendKafkaJobs(ctx, &fakeProducer{silent: true}, jobs, time.Second)
	require.Len(t, failed, 1)
	assert.ErrorIs(t, failed[0].Err, context.Canceled)
}

func TestAuditPublishInstruction(t *testing.T) {
	p := &fakeProducer{}
	a := newAuditPublisher(p, "audit", 4, time.Second)

	from := types.GenerateKeypair().Pubkey()
	resp := &types.InstructionResp{
		ProgramID: consts.SystemProgramStr,
		Accounts: []types.AccountMetaResp{
			{Pubkey: from.String(), IsSigner: true, IsWritable: true},
			{Pubkey: consts.SysVarRentStr, IsWritable: true},
		},
		InstructionData: "AgAAAOgDAAAAAAAA",
	}
	require.NoError(t, a.publish(context.Background(), "send_sol", resp))
	require.Len(t, p.messages, 1)

	msg := p.messages[0]
	assert.Equal(t, "audit", *msg.TopicPartition.Topic)
	assert.Equal(t, int32(utils.PartitionHashBytes(from[:], 4)), msg.TopicPartition.Partition)
	assert.Equal(t, from[:], msg.Key)

	var event structpb.Struct
	eventType, err := utils.DecodeEvent(msg.Value, &event)
	require.NoError(t, err)
	assert.Equal(t, consts.AuditEventInstructionBuilt, eventType)
	assert.Equal(t, "send_sol", event.Fields["operation"].GetStringValue())
	assert.Equal(t, consts.SystemProgramStr, event.Fields["program_id"].GetStringValue())
	assert.Len(t, event.Fields["accounts"].GetListValue().GetValues(), 2)
}

func TestAuditNeverCarriesSecrets(t *testing.T) {
	p := &fakeProducer{}
	a := newAuditPublisher(p, "audit", 1, time.Second)

	kp := types.GenerateKeypair()
	require.NoError(t, a.publish(context.Background(), "keypair", &types.KeypairResp{
		Pubkey: kp.Pubkey().String(),
		Secret: kp.SecretBase58(),
	}))
	require.NoError(t, a.publish(context.Background(), "sign_message", &types.SignMessageResp{
		Signature: "sig",
		PublicKey: kp.Pubkey().String(),
		Message:   "top secret memo",
	}))
	require.Len(t, p.messages, 2)

	for _, m := range p.messages {
		assert.NotContains(t, string(m.Value), kp.SecretBase58())
		assert.NotContains(t, string(m.Value), "top secret memo")
	}
}

func TestAuditIgnoresUnknownResult(t *testing.T) {
	p := &fakeProducer{}
	a := newAuditPublisher(p, "audit", 1, time.Second)
	require.NoError(t, a.publish(context.Background(), "other", "plain string"))
	assert.Empty(t, p.messages)
}

func TestExistingPartitions(t *testing.T) {
	meta := &kafka.Metadata{Topics: map[string]kafka.TopicMetadata{
		"audit":   {Topic: "audit", Partitions: make([]kafka.PartitionMetadata, 2)},
		"pending": {Topic: "pending", Error: kafka.NewError(kafka.ErrUnknownTopicOrPart, "unknown topic", false)},
	}}

	n, ok := existingPartitions(meta, "audit")
	assert.True(t, ok)
	assert.Equal(t, 2, n, "已存在的 topic 以实际分区数为准，而不是配置值")

	_, ok = existingPartitions(meta, "pending")
	assert.False(t, ok)
	_, ok = existingPartitions(meta, "missing")
	assert.False(t, ok)
	_, ok = existingPartitions(nil, "audit")
	assert.False(t, ok)
}

func TestAuditPartitionStaysInRange(t *testing.T) {
	p := &fakeProducer{}
	n, ok := existingPartitions(&kafka.Metadata{Topics: map[string]kafka.TopicMetadata{
		"audit": {Topic: "audit", Partitions: make([]kafka.PartitionMetadata, 2)},
	}}, "audit")
	require.True(t, ok)
	a := newAuditPublisher(p, "audit", n, time.Second)

	for i := 0; i < 32; i++ {
		require.NoError(t, a.publish(context.Background(), "keypair", &types.KeypairResp{
			Pubkey: types.GenerateKeypair().Pubkey().String(),
		}))
	}
	require.Len(t, p.messages, 32)
	for _, m := range p.messages {
		assert.GreaterOrEqual(t, m.TopicPartition.Partition, int32(0))
		assert.Less(t, m.TopicPartition.Partition, int32(2))
	}
}

func TestAuditNilPublisherAndStop(t *testing.T) {
	var nilPublisher *AuditPublisher
	assert.NotPanics(t, func() { nilPublisher.Publish("keypair", &types.KeypairResp{}) })

	a := newAuditPublisher(&fakeProducer{}, "audit", 1, time.Second)
	done := make(chan struct{})
	go func() {
		a.Start()
		close(done)
	}()
	a.Stop()
	a.Stop()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Start 未在 Stop 后退出")
	}
}
