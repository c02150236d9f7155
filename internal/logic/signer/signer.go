package signer

import (
	"crypto/ed25519"

	"sol-ix-gateway/internal/types"
	"sol-ix-gateway/internal/xerr"
)

// Sign 对消息原始字节做 ed25519 签名
func Sign(kp types.Keypair, message []byte) types.Signature {
	return kp.Sign(message)
}

// Verify 校验签名。签名长度不是 64 字节时返回 InvalidSignatureEncoding；
// 格式正确但签名无效时返回 false，不视为错误。
func Verify(pubkey types.Pubkey, message, signature []byte) (bool, error) {
	sig, err := types.SignatureFromBytes(signature)
	if err != nil {
		return false, xerr.NewInvalidSignatureEncoding(err)
	}
	return ed25519.Verify(pubkey[:], message, sig[:]), nil
}
