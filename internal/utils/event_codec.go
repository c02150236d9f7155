package utils

import (
	"encoding/binary"
	"errors"
	"fmt"

	"google.golang.org/protobuf/proto"
)

const eventTypeSize = 4

// EncodeEvent 将 protobuf 消息编码为带事件类型前缀的二进制数据：
// - 前 4 字节为事件类型（uint32，小端序）
// - 后续为 protobuf 序列化数据（使用 MarshalAppend）
func EncodeEvent(eventType uint32, msg proto.Message) ([]byte, error) {
	const extraBuffer = 32 // 多预留一些空间，降低 MarshalAppend 触发扩容的概率

	size := proto.Size(msg)
	buf := make([]byte, eventTypeSize, eventTypeSize+size+extraBuffer)
	binary.LittleEndian.PutUint32(buf[:eventTypeSize], eventType)

	opts := proto.MarshalOptions{Deterministic: true}
	result, err := opts.MarshalAppend(buf, msg)
	if err != nil {
		return nil, fmt.Errorf("EncodeEvent: marshal %T: %w", msg, err)
	}
	return result, nil
}

// DecodeEvent 是 EncodeEvent 的逆过程，返回事件类型并把消息体解到 msg
func DecodeEvent(data []byte, msg proto.Message) (uint32, error) {
	if len(data) < eventTypeSize {
		return 0, errors.New("DecodeEvent: data too short")
	}
	eventType := binary.LittleEndian.Uint32(data[:eventTypeSize])
	if err := proto.Unmarshal(data[eventTypeSize:], msg); err != nil {
		return 0, fmt.Errorf("DecodeEvent: unmarshal %T: %w", msg, err)
	}
	return eventType, nil
}
