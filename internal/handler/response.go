package handler

import (
	"net/http"

	"sol-ix-gateway/internal/xerr"
	"sol-ix-gateway/pkg/logger"

	"github.com/zeromicro/go-zero/rest/httpx"
)

// Envelope 是所有 JSON 响应的统一外层结构
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func OkJson(w http.ResponseWriter, data any) {
	httpx.WriteJson(w, http.StatusOK, Envelope{Success: true, Data: data})
}

// ErrorJson 输入类错误返回 400 和具体描述；其余一律 500 + 通用描述，细节只进日志
func ErrorJson(w http.ResponseWriter, err error) {
	e := xerr.From(err)
	if e.Kind.IsClient() {
		logger.Debugf("[handler] 请求参数错误: kind=%s, field=%s, err=%v", e.Kind, e.Field, e)
	} else {
		logger.Errorf("[handler] 内部错误: %v", e)
	}
	httpx.WriteJson(w, StatusFor(e.Kind), Envelope{Success: false, Error: e.PublicMessage()})
}

func StatusFor(kind xerr.Kind) int {
	if kind.IsClient() {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
