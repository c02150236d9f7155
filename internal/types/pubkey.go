package types

import (
	"errors"
	"fmt"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/mr-tron/base58"
)

const PubkeySize = 32

var ErrInvalidPubkey = errors.New("invalid pubkey")

type Pubkey [PubkeySize]byte

func (p Pubkey) String() string {
	return base58.Encode(p[:])
}

// ToCommon 转换为 SDK 的 PublicKey，两者内存布局一致
func (p Pubkey) ToCommon() common.PublicKey {
	return common.PublicKey(p)
}

// TryPubkeyFromBase58 解析 base58 字符串为 Pubkey，失败时返回 error（用于不信任输入路径）
func TryPubkeyFromBase58(s string) (Pubkey, error) {
	data, err := base58.Decode(s)
	if err != nil {
		return Pubkey{}, fmt.Errorf("%w: decode base58 %q: %v", ErrInvalidPubkey, s, err)
	}
	if len(data) != PubkeySize {
		return Pubkey{}, fmt.Errorf("%w: got %d bytes, want %d, input=%q", ErrInvalidPubkey, len(data), PubkeySize, s)
	}
	var p Pubkey
	copy(p[:], data)
	return p, nil
}

// PubkeyFromBase58 仅用于常量初始化，输入非法时直接 panic
func PubkeyFromBase58(s string) Pubkey {
	p, err := TryPubkeyFromBase58(s)
	if err != nil {
		panic(err)
	}
	return p
}
