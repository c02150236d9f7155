package api

import (
	"sol-ix-gateway/internal/logic/instruction"
	"sol-ix-gateway/internal/types"
)

func CreateToken(req *types.CreateTokenReq) (*types.InstructionResp, error) {
	addrs, err := parseAddresses(
		field{"mint", req.Mint},
		field{"mint_authority", req.MintAuthority},
	)
	if err != nil {
		return nil, err
	}
	decimals, err := parseDecimals(req.Decimals)
	if err != nil {
		return nil, err
	}
	program, err := parseTokenProgram(req.TokenProgram)
	if err != nil {
		return nil, err
	}

	ix, err := instruction.InitializeMint(program, addrs[0], addrs[1], decimals)
	if err != nil {
		return nil, err
	}
	return toInstructionResp(ix), nil
}

func MintToken(req *types.MintTokenReq) (*types.InstructionResp, error) {
	addrs, err := parseAddresses(
		field{"mint", req.Mint},
		field{"destination", req.Destination},
		field{"authority", req.Authority},
	)
	if err != nil {
		return nil, err
	}
	program, err := parseTokenProgram(req.TokenProgram)
	if err != nil {
		return nil, err
	}

	ix, err := instruction.MintTo(program, addrs[0], addrs[1], addrs[2], req.Amount)
	if err != nil {
		return nil, err
	}
	return toInstructionResp(ix), nil
}

// SendToken 构造 token 转账。mint 只做校验，不参与指令。
// 未提供 source 时直接把 owner 当作源 token account，调用方需要自行保证该账户正确。
func SendToken(req *types.SendTokenReq) (*types.InstructionResp, error) {
	addrs, err := parseAddresses(
		field{"destination", req.Destination},
		field{"mint", req.Mint},
		field{"owner", req.Owner},
	)
	if err != nil {
		return nil, err
	}
	destination, owner := addrs[0], addrs[2]

	source := owner
	if req.Source != "" {
		parsed, err := parseAddresses(field{"source", req.Source})
		if err != nil {
			return nil, err
		}
		source = parsed[0]
	}
	program, err := parseTokenProgram(req.TokenProgram)
	if err != nil {
		return nil, err
	}

	ix, err := instruction.TransferToken(program, source, destination, owner, req.Amount)
	if err != nil {
		return nil, err
	}
	return toInstructionResp(ix), nil
}
