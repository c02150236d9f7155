// Package xerr 定义对外暴露的错误分类。所有客户端输入错误在第一处失败即返回，不做聚合。
package xerr

import (
	"errors"
	"fmt"
)

type Kind uint8

const (
	KindInternal Kind = iota
	KindInvalidAddress
	KindInvalidSecret
	KindInvalidSignatureEncoding
	KindInvalidAmountOrField
)

func (k Kind) String() string {
	switch k {
	case KindInvalidAddress:
		return "InvalidAddress"
	case KindInvalidSecret:
		return "InvalidSecret"
	case KindInvalidSignatureEncoding:
		return "InvalidSignatureEncoding"
	case KindInvalidAmountOrField:
		return "InvalidAmountOrField"
	default:
		return "Internal"
	}
}

// IsClient 表示该类错误由请求输入引起
func (k Kind) IsClient() bool {
	return k != KindInternal
}

// InternalMessage 是内部错误对外统一的提示，不泄露细节
const InternalMessage = "internal error"

type Error struct {
	Kind  Kind
	Field string // 出错的请求字段，可为空
	Msg   string // 对外可见的描述
	Err   error  // 底层原因，仅用于日志
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is 允许 errors.Is(err, &Error{Kind: ...}) 按类别匹配
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind && (t.Field == "" || t.Field == e.Field)
}

func NewInvalidAddress(field string, cause error) *Error {
	return &Error{
		Kind:  KindInvalidAddress,
		Field: field,
		Msg:   fmt.Sprintf("Invalid %s address", field),
		Err:   cause,
	}
}

func NewInvalidSecret(cause error) *Error {
	return &Error{
		Kind:  KindInvalidSecret,
		Field: "secret",
		Msg:   "Invalid secret key",
		Err:   cause,
	}
}

func NewInvalidSignatureEncoding(cause error) *Error {
	return &Error{
		Kind:  KindInvalidSignatureEncoding,
		Field: "signature",
		Msg:   "Invalid signature encoding",
		Err:   cause,
	}
}

func NewInvalidField(field string, cause error) *Error {
	msg := "Invalid request body"
	if field != "" {
		msg = fmt.Sprintf("Invalid %s field", field)
	}
	if cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, cause)
	}
	return &Error{
		Kind:  KindInvalidAmountOrField,
		Field: field,
		Msg:   msg,
		Err:   cause,
	}
}

func NewInternal(cause error) *Error {
	return &Error{
		Kind: KindInternal,
		Msg:  InternalMessage,
		Err:  cause,
	}
}

// From 将任意 error 归一为 *Error，未分类的一律视为内部错误
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return NewInternal(err)
}

// PublicMessage 返回可以写入响应体的描述
func (e *Error) PublicMessage() string {
	if !e.Kind.IsClient() {
		return InternalMessage
	}
	return e.Msg
}
