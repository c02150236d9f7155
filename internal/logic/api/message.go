package api

import (
	"sol-ix-gateway/internal/logic/signer"
	"sol-ix-gateway/internal/types"
	"sol-ix-gateway/internal/xerr"
)

// SignMessage 用请求携带的私钥签名，私钥不会被保留
func SignMessage(req *types.SignMessageReq) (*types.SignMessageResp, error) {
	kp, err := types.TryKeypairFromBase58(req.Secret)
	if err != nil {
		return nil, xerr.NewInvalidSecret(err)
	}

	sig := signer.Sign(kp, []byte(req.Message))
	return &types.SignMessageResp{
		Signature: sig.String(),
		PublicKey: kp.Pubkey().String(),
		Message:   req.Message,
	}, nil
}

func VerifyMessage(req *types.VerifyMessageReq) (*types.VerifyMessageResp, error) {
	addrs, err := parseAddresses(field{"pubkey", req.Pubkey})
	if err != nil {
		return nil, err
	}
	sig, err := types.SignatureFromBase64(req.Signature)
	if err != nil {
		return nil, xerr.NewInvalidSignatureEncoding(err)
	}

	valid, err := signer.Verify(addrs[0], []byte(req.Message), sig[:])
	if err != nil {
		return nil, err
	}
	return &types.VerifyMessageResp{
		Valid:   valid,
		Message: req.Message,
		Pubkey:  req.Pubkey,
	}, nil
}
