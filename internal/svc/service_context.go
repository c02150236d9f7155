package svc

import (
	"sol-ix-gateway/internal/config"
	"sol-ix-gateway/internal/mq"
	"sol-ix-gateway/internal/service"
	"sol-ix-gateway/pkg/logger"
)

// ServiceContext 包含 API 服务依赖的外部资源。指令构造本身是纯函数，不需要任何资源。
type ServiceContext struct {
	Config  config.ApiConfig
	Balance *service.BalanceService // 未配置时为 nil
	Auditor *mq.AuditPublisher      // 未配置时为 nil
}

// NewServiceContext 根据配置创建服务上下文
func NewServiceContext(c config.ApiConfig) (*ServiceContext, error) {
	ctx := &ServiceContext{Config: c}

	// 1. 余额查询客户端（可选）
	if c.BalanceConf.Enabled() {
		balance, err := service.NewBalanceService(&c.BalanceConf)
		if err != nil {
			logger.Errorf("余额查询服务初始化失败: %v", err)
			return nil, err
		}
		ctx.Balance = balance
		logger.Infof("余额查询已启用: endpoint=%s, address=%s", c.BalanceConf.Endpoint, balance.Address())
	} else {
		logger.Warnf("未配置 RPC_URL / WALLET_ADDRESS，GET / 将返回错误文本")
	}

	// 2. 审计事件 Kafka 生产者（可选）
	if c.AuditConf.Enabled() {
		auditor, err := mq.NewAuditPublisher(&c.AuditConf)
		if err != nil {
			logger.Errorf("Kafka producer 初始化失败: %v", err)
			return nil, err
		}
		ctx.Auditor = auditor
		logger.Infof("审计事件已启用: topic=%s", c.AuditConf.Topic)
	}

	logger.Infof("API 服务上下文初始化完成")
	return ctx, nil
}

// Close 关闭服务上下文中的资源
func (ctx *ServiceContext) Close() {
	if ctx.Auditor != nil {
		ctx.Auditor.Stop()
	}
}
