package handler

import (
	"fmt"
	"net/http"
	"regexp"
	"runtime/debug"

	"sol-ix-gateway/internal/svc"
	"sol-ix-gateway/internal/xerr"
	"sol-ix-gateway/pkg/logger"

	"github.com/zeromicro/go-zero/rest/httpx"
)

// go-zero mapping 的错误只以文本形式携带字段名，例如 field "amount" is not set
var parseErrField = regexp.MustCompile("(?:field |fullName: )[\"`]([^\"`]+)[\"`]|\"([^\"]+)\" is not (?:fully )?set")

// Operation 是一个与传输层无关的纯函数操作
type Operation[Req, Resp any] func(req *Req) (*Resp, error)

// bind 把 Operation 包装为 http handler：解析 JSON 请求体、调用操作、写统一响应
func bind[Req, Resp any](svcCtx *svc.ServiceContext, name string, op Operation[Req, Resp]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer recoverAsInternal(w, name)

		var req Req
		if err := httpx.Parse(r, &req); err != nil {
			ErrorJson(w, xerr.NewInvalidField(parseErrorField(err), err))
			return
		}
		invoke(w, svcCtx, name, op, &req)
	}
}

// bindNoBody 用于不读取请求体的操作
func bindNoBody[Req, Resp any](svcCtx *svc.ServiceContext, name string, op Operation[Req, Resp]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer recoverAsInternal(w, name)

		var req Req
		invoke(w, svcCtx, name, op, &req)
	}
}

func invoke[Req, Resp any](w http.ResponseWriter, svcCtx *svc.ServiceContext, name string, op Operation[Req, Resp], req *Req) {
	resp, err := op(req)
	if err != nil {
		ErrorJson(w, err)
		return
	}
	svcCtx.Auditor.Publish(name, resp)
	OkJson(w, resp)
}

// parseErrorField 从请求解析错误中取出字段名，取不到时返回空串
func parseErrorField(err error) string {
	m := parseErrField.FindStringSubmatch(err.Error())
	if m == nil {
		return ""
	}
	if m[1] != "" {
		return m[1]
	}
	return m[2]
}

func recoverAsInternal(w http.ResponseWriter, name string) {
	if p := recover(); p != nil {
		logger.Errorf("[handler][panic] op=%s: %v\n%s", name, p, debug.Stack())
		ErrorJson(w, xerr.NewInternal(fmt.Errorf("op %s panic: %v", name, p)))
	}
}
