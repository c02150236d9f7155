package main

import (
	"flag"
	"runtime/debug"

	"sol-ix-gateway/internal/config"
	"sol-ix-gateway/internal/handler"
	"sol-ix-gateway/internal/svc"
	"sol-ix-gateway/pkg/logger"

	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/logx"
	zerosvc "github.com/zeromicro/go-zero/core/service"
	"github.com/zeromicro/go-zero/rest"
)

var (
	configFile = flag.String("f", "etc/api.yaml", "the config file")
	envFile    = flag.String("env", ".env", "optional dotenv file")
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			logx.Errorf("panic: %+v\nstack: %s", r, debug.Stack())
		}
	}()

	flag.Parse()

	if err := config.LoadDotEnv(*envFile); err != nil {
		panic(err)
	}

	var c config.ApiConfig
	conf.MustLoad(*configFile, &c)
	if err := c.ApplyEnv(); err != nil {
		panic(err)
	}

	if err := logger.Init(c.LogConf.ToLogOption()); err != nil {
		panic(err)
	}
	defer logger.Sync()

	serviceContext, err := svc.NewServiceContext(c)
	if err != nil {
		panic(err)
	}
	defer serviceContext.Close()

	server := rest.MustNewServer(c.RestConf)
	handler.RegisterHandlers(server, serviceContext)

	sg := zerosvc.NewServiceGroup()
	defer sg.Stop()
	sg.Add(server)
	if serviceContext.Auditor != nil {
		sg.Add(serviceContext.Auditor)
	}

	logx.Infof("Starting server at %s:%d", c.Host, c.Port)

	// 阻塞直到收到 SIGTERM，由 go-zero proc 触发 sg.Stop
	sg.Start()
}
