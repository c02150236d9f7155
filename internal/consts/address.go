package consts

import "sol-ix-gateway/internal/types"

// Base58 地址常量（可读性高，适合配置与日志使用）
const (
	//  Programs
	SystemProgramStr    = "11111111111111111111111111111111"
	TokenProgramStr     = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"
	TokenProgram2022Str = "TokenzQdBNbLqP5VEhdkAS6EPFLC1PHnBqCXEpPxuEb"

	// Sysvars
	SysVarRentStr = "SysvarRent111111111111111111111111111111111"
)

var (
	// Programs
	SystemProgram    = types.PubkeyFromBase58(SystemProgramStr)
	TokenProgram     = types.PubkeyFromBase58(TokenProgramStr)
	TokenProgram2022 = types.PubkeyFromBase58(TokenProgram2022Str)

	// Sysvars
	SysVarRent = types.PubkeyFromBase58(SysVarRentStr)
)
