package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// EnvOverrides 是允许通过环境变量覆盖的配置项
type EnvOverrides struct {
	Port          int    `env:"PORT"`
	RpcURL        string `env:"RPC_URL"`
	WalletAddress string `env:"WALLET_ADDRESS"`
	AuditBrokers  string `env:"AUDIT_KAFKA_BROKERS"`
}

// LoadDotEnv 读取 .env 文件，文件不存在时忽略
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env (%s): %w", path, err)
	}
	return nil
}

// ApplyEnv 用环境变量覆盖配置文件中的值，未设置的变量不做处理
func (c *ApiConfig) ApplyEnv() error {
	var env EnvOverrides
	if err := envdecode.Decode(&env); err != nil {
		if errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
			return nil
		}
		return fmt.Errorf("decode env: %w", err)
	}

	if env.Port > 0 {
		c.Port = env.Port
	}
	if env.RpcURL != "" {
		c.BalanceConf.Endpoint = env.RpcURL
	}
	if env.WalletAddress != "" {
		c.BalanceConf.Address = env.WalletAddress
	}
	if env.AuditBrokers != "" {
		c.AuditConf.Brokers = env.AuditBrokers
	}
	return nil
}
