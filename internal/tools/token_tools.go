package tools

import (
	"errors"

	"sol-ix-gateway/internal/consts"
	"sol-ix-gateway/internal/types"
)

var ErrNotTokenProgram = errors.New("not an SPL token program")

// IsSPLTokenProgram 判断一个 ProgramId 是否为标准的 SPL Token 程序。
// 支持 Token v1（Tokenkeg...）和 Token-2022（Tokenz...）
func IsSPLTokenProgram(programId types.Pubkey) bool {
	return programId == consts.TokenProgram || programId == consts.TokenProgram2022
}

// ResolveTokenProgram 解析请求里的可选 token program，为空时使用经典 SPL Token 程序
func ResolveTokenProgram(s string) (types.Pubkey, error) {
	if s == "" {
		return consts.TokenProgram, nil
	}
	programId, err := types.TryPubkeyFromBase58(s)
	if err != nil {
		return types.Pubkey{}, err
	}
	if !IsSPLTokenProgram(programId) {
		return types.Pubkey{}, ErrNotTokenProgram
	}
	return programId, nil
}
