package handler

import (
	"fmt"
	"net/http"

	"sol-ix-gateway/internal/service"
	"sol-ix-gateway/internal/svc"

	"github.com/zeromicro/go-zero/rest/httpx"
)

// BalanceHandler 以纯文本返回配置钱包的余额
func BalanceHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svcCtx.Balance == nil {
			writeText(w, http.StatusServiceUnavailable, "Error: "+service.ErrBalanceNotConfigured.Error())
			return
		}

		balance, err := svcCtx.Balance.Lookup(r.Context())
		if err != nil {
			writeText(w, http.StatusBadGateway, "Error: "+err.Error())
			return
		}
		writeText(w, http.StatusOK, fmt.Sprintf("Balance: %d lamports", balance))
	}
}

// HealthzHandler 存活探针
func HealthzHandler(w http.ResponseWriter, _ *http.Request) {
	httpx.OkJson(w, map[string]string{"status": "ok"})
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set(httpx.ContentType, "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
