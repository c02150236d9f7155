package consts

// 审计事件类型，作为 Kafka 消息前 4 字节
const (
	AuditEventKeypairGenerated uint32 = 1
	AuditEventInstructionBuilt uint32 = 2
	AuditEventMessageSigned    uint32 = 3
	AuditEventMessageVerified  uint32 = 4
)
