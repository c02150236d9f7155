package types

// 请求/响应结构体，字段名即线上协议

type (
	KeypairReq struct{}

	KeypairResp struct {
		Pubkey string `json:"pubkey"`
		Secret string `json:"secret"`
	}
)

type (
	CreateTokenReq struct {
		Mint          string `json:"mint"`
		MintAuthority string `json:"mint_authority"`
		Decimals      int64  `json:"decimals"`
		TokenProgram  string `json:"token_program,optional"`
	}

	MintTokenReq struct {
		Mint         string `json:"mint"`
		Destination  string `json:"destination"`
		Authority    string `json:"authority"`
		Amount       uint64 `json:"amount"`
		TokenProgram string `json:"token_program,optional"`
	}

	// SendTokenReq 中 Source 为空时以 Owner 作为源账户，调用方需保证其为真实 token account
	SendTokenReq struct {
		Destination  string `json:"destination"`
		Mint         string `json:"mint"`
		Owner        string `json:"owner"`
		Amount       uint64 `json:"amount"`
		Source       string `json:"source,optional"`
		TokenProgram string `json:"token_program,optional"`
	}

	SendSolReq struct {
		From     string `json:"from"`
		To       string `json:"to"`
		Lamports uint64 `json:"lamports"`
	}

	AccountMetaResp struct {
		Pubkey     string `json:"pubkey"`
		IsSigner   bool   `json:"is_signer"`
		IsWritable bool   `json:"is_writable"`
	}

	InstructionResp struct {
		ProgramID       string            `json:"program_id"`
		Accounts        []AccountMetaResp `json:"accounts"`
		InstructionData string            `json:"instruction_data"`
	}
)

type (
	SignMessageReq struct {
		Message string `json:"message"`
		Secret  string `json:"secret"`
	}

	SignMessageResp struct {
		Signature string `json:"signature"`
		PublicKey string `json:"public_key"`
		Message   string `json:"message"`
	}

	VerifyMessageReq struct {
		Message   string `json:"message"`
		Signature string `json:"signature"`
		Pubkey    string `json:"pubkey"`
	}

	VerifyMessageResp struct {
		Valid   bool   `json:"valid"`
		Message string `json:"message"`
		Pubkey  string `json:"pubkey"`
	}
)
