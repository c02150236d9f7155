// Package api 把请求结构体映射为纯函数调用。每个操作都不依赖任何传输层，可以直接在测试里调用。
package api

import (
	"encoding/base64"
	"fmt"
	"math"

	"sol-ix-gateway/internal/logic/domain"
	"sol-ix-gateway/internal/tools"
	"sol-ix-gateway/internal/types"
	"sol-ix-gateway/internal/xerr"
)

// field 是一个待解析的地址字段，按请求中的顺序排列
type field struct {
	name  string
	value string
}

// parseAddresses 按顺序解析地址，遇到第一个非法字段立即返回
func parseAddresses(fields ...field) ([]types.Pubkey, error) {
	out := make([]types.Pubkey, 0, len(fields))
	for _, f := range fields {
		p, err := types.TryPubkeyFromBase58(f.value)
		if err != nil {
			return nil, xerr.NewInvalidAddress(f.name, err)
		}
		out = append(out, p)
	}
	return out, nil
}

// parseDecimals 校验 decimals 在 u8 范围内
func parseDecimals(d int64) (uint8, error) {
	if d < 0 || d > math.MaxUint8 {
		return 0, xerr.NewInvalidField("decimals", fmt.Errorf("must be within [0, %d], got %d", math.MaxUint8, d))
	}
	return uint8(d), nil
}

func parseTokenProgram(s string) (types.Pubkey, error) {
	p, err := tools.ResolveTokenProgram(s)
	if err != nil {
		return types.Pubkey{}, xerr.NewInvalidAddress("token_program", err)
	}
	return p, nil
}

func toInstructionResp(ix *domain.Instruction) *types.InstructionResp {
	accounts := make([]types.AccountMetaResp, 0, len(ix.Accounts))
	for _, a := range ix.Accounts {
		accounts = append(accounts, types.AccountMetaResp{
			Pubkey:     a.Pubkey.String(),
			IsSigner:   a.IsSigner,
			IsWritable: a.IsWritable,
		})
	}
	return &types.InstructionResp{
		ProgramID:       ix.ProgramID.String(),
		Accounts:        accounts,
		InstructionData: base64.StdEncoding.EncodeToString(ix.Data),
	}
}
