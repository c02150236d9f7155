// Package instruction 构造未签名的 SPL Token / System Program 指令。
// 所有函数都是纯函数：输入为已解析的地址，输出为完整指令或错误，不会返回半成品。
package instruction

import (
	"sol-ix-gateway/internal/consts"
	"sol-ix-gateway/internal/logic/domain"
	"sol-ix-gateway/internal/types"

	sdktoken "github.com/blocto/solana-go-sdk/program/token"
)

const (
	initializeMintDataSize = 35 // 无 freeze authority
	amountDataSize         = 9
)

// initializeMintParams 对应 Token 程序的 InitializeMint 布局：
// opcode(1) + decimals(1) + mint_authority(32) + COption<freeze_authority>(1 或 33)
type initializeMintParams struct {
	Instruction     uint8
	Decimals        uint8
	MintAuthority   [32]byte
	FreezeAuthority *[32]byte
}

// amountParams 用于 MintTo / Transfer：opcode(1) + amount(u64 LE)
type amountParams struct {
	Instruction uint8
	Amount      uint64
}

// InitializeMint 初始化一个没有 freeze authority 的 mint。
// decimals 原样写入，由 Token 程序自行解释。
func InitializeMint(tokenProgram, mint, mintAuthority types.Pubkey, decimals uint8) (*domain.Instruction, error) {
	return build(tokenProgram,
		initializeMintParams{
			Instruction:   uint8(sdktoken.InstructionInitializeMint),
			Decimals:      decimals,
			MintAuthority: mintAuthority,
		},
		initializeMintDataSize,
		domain.Writable(mint),
		domain.ReadOnly(consts.SysVarRent),
	)
}

// MintTo 向 destination token account 增发，authority 为单签 mint authority。
// amount 为 0 时仍是合法指令。
func MintTo(tokenProgram, mint, destination, authority types.Pubkey, amount uint64) (*domain.Instruction, error) {
	return build(tokenProgram,
		amountParams{
			Instruction: uint8(sdktoken.InstructionMintTo),
			Amount:      amount,
		},
		amountDataSize,
		domain.Writable(mint),
		domain.Writable(destination),
		domain.Signer(authority),
	)
}

// TransferToken 在两个 token account 之间转账。
// source 必须是真实的 token account；这里不会根据 (owner, mint) 推导关联账户。
func TransferToken(tokenProgram, source, destination, owner types.Pubkey, amount uint64) (*domain.Instruction, error) {
	return build(tokenProgram,
		amountParams{
			Instruction: uint8(sdktoken.InstructionTransfer),
			Amount:      amount,
		},
		amountDataSize,
		domain.Writable(source),
		domain.Writable(destination),
		domain.Signer(owner),
	)
}
