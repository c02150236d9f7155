package instruction

import (
	"fmt"

	"sol-ix-gateway/internal/logic/domain"
	"sol-ix-gateway/internal/types"
	"sol-ix-gateway/internal/xerr"
	"sol-ix-gateway/pkg/logger"

	"github.com/near/borsh-go"
)

// encodeData 以 borsh 编码指令参数，结果长度必须等于 size。
// borsh 遇到不支持的类型时不报错，只是少写字节，所以这里按长度兜底；panic 同样转成内部错误。
func encodeData(params any, size int) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("[instruction][panic] borsh.Serialize panic: %v, params=%T", r, params)
			data, err = nil, xerr.NewInternal(fmt.Errorf("encode %T: panic: %v", params, r))
		}
	}()

	data, err = borsh.Serialize(params)
	if err != nil {
		return nil, xerr.NewInternal(fmt.Errorf("encode %T: %w", params, err))
	}
	if len(data) != size {
		logger.Errorf("[instruction] borsh.Serialize length mismatch: got %d bytes, want %d, params=%T", len(data), size, params)
		return nil, xerr.NewInternal(fmt.Errorf("encode %T: got %d bytes, want %d", params, len(data), size))
	}
	return data, nil
}

func build(programID types.Pubkey, params any, size int, accounts ...domain.AccountMeta) (*domain.Instruction, error) {
	data, err := encodeData(params, size)
	if err != nil {
		return nil, err
	}
	return &domain.Instruction{
		ProgramID: programID,
		Accounts:  accounts,
		Data:      data,
	}, nil
}
