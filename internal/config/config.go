package config

import (
	"strings"

	"sol-ix-gateway/pkg/logger"

	"github.com/zeromicro/go-zero/rest"
)

type LogConfig struct {
	Format   string `json:",default=console,options=console|json"` // 日志格式，支持 "console" 或 "json"
	LogDir   string `json:",optional"`                             // 日志目录（可为相对路径或绝对路径），为空只写 stdout
	Level    string `json:",default=info"`                         // 日志级别：debug / info / warn / error
	Compress bool   `json:",optional"`                             // 是否压缩旧日志文件
}

func (c *LogConfig) ToLogOption() logger.LogOption {
	return logger.LogOption{
		Format:   c.Format,
		LogDir:   c.LogDir,
		Level:    c.Level,
		Compress: c.Compress,
	}
}

// BalanceConfig 是 GET / 余额查询用到的节点与钱包地址，任一为空则该路由返回错误文本
type BalanceConfig struct {
	Endpoint  string `json:",optional"`     // Solana RPC 地址
	Address   string `json:",optional"`     // 被查询的钱包地址（base58）
	TimeoutMs int    `json:",default=5000"` // 单次查询超时（毫秒）
}

func (c *BalanceConfig) Enabled() bool {
	return c.Endpoint != "" && c.Address != ""
}

// AuditConfig 表示审计事件的 Kafka 生产者配置，Brokers 为空时不启用
type AuditConfig struct {
	Brokers       string `json:",optional"`             // Kafka broker 地址，多个用英文逗号分隔
	Topic         string `json:",default=sol_ix_audit"` // 审计事件 topic
	Partitions    int    `json:",default=4"`            // topic 分区数
	BatchSize     int    `json:",default=32768"`        // 批处理大小（单位字节）
	LingerMs      int    `json:",default=5"`            // 批处理最大延迟（毫秒）
	SendTimeoutMs int    `json:",default=2000"`         // 单条事件发送并等待 ack 的超时时间
}

func (c *AuditConfig) Enabled() bool {
	return strings.TrimSpace(c.Brokers) != ""
}

// ApiConfig 是主配置结构体
type ApiConfig struct {
	rest.RestConf

	LogConf     LogConfig     `json:"Logger"`
	BalanceConf BalanceConfig `json:"Balance,optional"`
	AuditConf   AuditConfig   `json:"Audit,optional"`
}
