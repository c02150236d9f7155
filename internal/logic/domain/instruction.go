package domain

import "sol-ix-gateway/internal/types"

// AccountMeta 描述指令中一个账户的地址及其签名/可写标记
type AccountMeta struct {
	Pubkey     types.Pubkey
	IsSigner   bool
	IsWritable bool
}

// Instruction 表示一条尚未签名的链上指令。
// Accounts 的顺序即目标程序要求的调用约定，调整顺序会改变语义。
type Instruction struct {
	ProgramID types.Pubkey  // 所调用的程序地址（例如 TokenProgram）
	Accounts  []AccountMeta // 指令涉及的账户列表，保持程序要求的顺序
	Data      []byte        // 指令数据（opcode + 参数的二进制编码）
}

func Writable(p types.Pubkey) AccountMeta {
	return AccountMeta{Pubkey: p, IsWritable: true}
}

func ReadOnly(p types.Pubkey) AccountMeta {
	return AccountMeta{Pubkey: p}
}

func Signer(p types.Pubkey) AccountMeta {
	return AccountMeta{Pubkey: p, IsSigner: true}
}

func WritableSigner(p types.Pubkey) AccountMeta {
	return AccountMeta{Pubkey: p, IsSigner: true, IsWritable: true}
}
