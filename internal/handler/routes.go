package handler

import (
	"net/http"

	"sol-ix-gateway/internal/logic/api"
	"sol-ix-gateway/internal/svc"

	"github.com/zeromicro/go-zero/rest"
)

func RegisterHandlers(server *rest.Server, svcCtx *svc.ServiceContext) {
	server.AddRoutes(Routes(svcCtx))
}

// Routes 返回完整路由表，每个路径绑定一个纯函数操作
func Routes(svcCtx *svc.ServiceContext) []rest.Route {
	return []rest.Route{
		{Method: http.MethodPost, Path: "/keypair", Handler: bindNoBody(svcCtx, "keypair", api.GenerateKeypair)},
		{Method: http.MethodPost, Path: "/token/create", Handler: bind(svcCtx, "create_token", api.CreateToken)},
		{Method: http.MethodPost, Path: "/token/mint", Handler: bind(svcCtx, "mint_token", api.MintToken)},
		{Method: http.MethodPost, Path: "/message/sign", Handler: bind(svcCtx, "sign_message", api.SignMessage)},
		{Method: http.MethodPost, Path: "/message/verify", Handler: bind(svcCtx, "verify_message", api.VerifyMessage)},
		{Method: http.MethodPost, Path: "/send/sol", Handler: bind(svcCtx, "send_sol", api.SendSol)},
		{Method: http.MethodPost, Path: "/send/token", Handler: bind(svcCtx, "send_token", api.SendToken)},

		{Method: http.MethodGet, Path: "/", Handler: BalanceHandler(svcCtx)},
		{Method: http.MethodGet, Path: "/healthz", Handler: HealthzHandler},
	}
}
