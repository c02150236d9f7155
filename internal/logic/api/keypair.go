package api

import "sol-ix-gateway/internal/types"

func GenerateKeypair(*types.KeypairReq) (*types.KeypairResp, error) {
	kp := types.GenerateKeypair()
	return &types.KeypairResp{
		Pubkey: kp.Pubkey().String(),
		Secret: kp.SecretBase58(),
	}, nil
}
