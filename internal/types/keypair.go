package types

import (
	"bytes"
	"crypto/ed25519"
	"errors"
	"fmt"

	sdktypes "github.com/blocto/solana-go-sdk/types"
	"github.com/mr-tron/base58"
)

const KeypairSize = ed25519.PrivateKeySize // seed(32) + pubkey(32)

var ErrInvalidSecret = errors.New("invalid secret key")

// Keypair 包装 SDK 的 Account，只在单个请求内存活
type Keypair struct {
	account sdktypes.Account
}

// GenerateKeypair 使用 crypto/rand 生成新的密钥对
func GenerateKeypair() Keypair {
	return Keypair{account: sdktypes.NewAccount()}
}

// TryKeypairFromBytes 校验 64 字节密钥：长度正确，且后 32 字节必须是由前 32 字节种子推导出的公钥
func TryKeypairFromBytes(b []byte) (Keypair, error) {
	if len(b) != KeypairSize {
		return Keypair{}, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidSecret, len(b), KeypairSize)
	}
	account, err := sdktypes.AccountFromSeed(b[:ed25519.SeedSize])
	if err != nil {
		return Keypair{}, fmt.Errorf("%w: %v", ErrInvalidSecret, err)
	}
	if !bytes.Equal(account.PublicKey.Bytes(), b[ed25519.SeedSize:]) {
		return Keypair{}, fmt.Errorf("%w: public key does not match seed", ErrInvalidSecret)
	}
	return Keypair{account: account}, nil
}

func TryKeypairFromBase58(s string) (Keypair, error) {
	data, err := base58.Decode(s)
	if err != nil {
		return Keypair{}, fmt.Errorf("%w: decode base58: %v", ErrInvalidSecret, err)
	}
	return TryKeypairFromBytes(data)
}

func (k Keypair) Pubkey() Pubkey {
	return Pubkey(k.account.PublicKey)
}

// Secret 返回 64 字节 seed||pubkey 的副本
func (k Keypair) Secret() []byte {
	out := make([]byte, len(k.account.PrivateKey))
	copy(out, k.account.PrivateKey)
	return out
}

func (k Keypair) SecretBase58() string {
	return base58.Encode(k.account.PrivateKey)
}

// Sign 对原始消息字节签名，不做任何哈希或封装
func (k Keypair) Sign(message []byte) Signature {
	var sig Signature
	copy(sig[:], k.account.Sign(message))
	return sig
}
