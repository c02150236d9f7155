package instruction

import (
	"sol-ix-gateway/internal/consts"
	"sol-ix-gateway/internal/logic/domain"
	"sol-ix-gateway/internal/types"

	sdksystem "github.com/blocto/solana-go-sdk/program/system"
)

const transferDataSize = 12

// System Program 的 opcode 是 u32 LE
type transferParams struct {
	Instruction uint32
	Lamports    uint64
}

// TransferNative 构造 SOL 转账指令，不做金额上下限检查
func TransferNative(from, to types.Pubkey, lamports uint64) (*domain.Instruction, error) {
	return build(consts.SystemProgram,
		transferParams{
			Instruction: uint32(sdksystem.InstructionTransfer),
			Lamports:    lamports,
		},
		transferDataSize,
		domain.WritableSigner(from),
		domain.Writable(to),
	)
}
