package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sol-ix-gateway/internal/config"
	"sol-ix-gateway/internal/types"
	"sol-ix-gateway/pkg/logger"

	"github.com/blocto/solana-go-sdk/client"
)

const defaultBalanceTimeout = 5 * time.Second

var ErrBalanceNotConfigured = errors.New("balance lookup is not configured")

// BalanceClient 是余额查询依赖的 RPC 能力，*client.Client 直接满足
type BalanceClient interface {
	GetBalance(ctx context.Context, base58Addr string) (uint64, error)
}

// BalanceService 查询启动时配置的单个钱包余额
type BalanceService struct {
	client  BalanceClient
	address types.Pubkey
	timeout time.Duration
}

func NewBalanceService(cfg *config.BalanceConfig) (*BalanceService, error) {
	if !cfg.Enabled() {
		return nil, ErrBalanceNotConfigured
	}
	rpc := client.NewClient(cfg.Endpoint)
	if rpc == nil {
		return nil, errors.New("rpc client init failed")
	}
	return NewBalanceServiceWithClient(rpc, cfg.Address, time.Duration(cfg.TimeoutMs)*time.Millisecond)
}

func NewBalanceServiceWithClient(c BalanceClient, address string, timeout time.Duration) (*BalanceService, error) {
	addr, err := types.TryPubkeyFromBase58(address)
	if err != nil {
		return nil, fmt.Errorf("[BalanceService] invalid wallet address: %w", err)
	}
	if timeout <= 0 {
		timeout = defaultBalanceTimeout
	}
	return &BalanceService{
		client:  c,
		address: addr,
		timeout: timeout,
	}, nil
}

func (s *BalanceService) Address() types.Pubkey {
	return s.address
}

// Lookup 查询余额（lamports），受 ctx 与配置超时双重约束
func (s *BalanceService) Lookup(ctx context.Context) (uint64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	balance, err := s.client.GetBalance(ctx, s.address.String())
	duration := time.Since(start)
	if err != nil {
		logger.Warnf("[BalanceService] GetBalance 失败: address=%s, 耗时: %v, err=%v", s.address, duration, err)
		return 0, fmt.Errorf("GetBalance failed: %w", err)
	}

	logger.Debugf("[BalanceService] GetBalance 成功: address=%s, balance=%d, 耗时: %v", s.address, balance, duration)
	return balance, nil
}
