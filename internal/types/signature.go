package types

import (
	"encoding/base64"
	"errors"
	"fmt"
)

const SignatureSize = 64

var ErrInvalidSignature = errors.New("invalid signature encoding")

// Signature 是 ed25519 签名（64 字节）
type Signature [SignatureSize]byte

func (s Signature) String() string {
	return base64.StdEncoding.EncodeToString(s[:])
}

func SignatureFromBytes(b []byte) (Signature, error) {
	var s Signature
	if len(b) != SignatureSize {
		return s, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidSignature, len(b), SignatureSize)
	}
	copy(s[:], b)
	return s, nil
}

// SignatureFromBase64 解析标准 base64 编码的签名
func SignatureFromBase64(str string) (Signature, error) {
	data, err := base64.StdEncoding.DecodeString(str)
	if err != nil {
		return Signature{}, fmt.Errorf("%w: decode base64: %v", ErrInvalidSignature, err)
	}
	return SignatureFromBytes(data)
}
