package api

import (
	"sol-ix-gateway/internal/logic/instruction"
	"sol-ix-gateway/internal/types"
)

func SendSol(req *types.SendSolReq) (*types.InstructionResp, error) {
	addrs, err := parseAddresses(
		field{"from", req.From},
		field{"to", req.To},
	)
	if err != nil {
		return nil, err
	}

	ix, err := instruction.TransferNative(addrs[0], addrs[1], req.Lamports)
	if err != nil {
		return nil, err
	}
	return toInstructionResp(ix), nil
}
