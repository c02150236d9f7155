package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"sol-ix-gateway/internal/consts"
	"sol-ix-gateway/internal/service"
	"sol-ix-gateway/internal/svc"
	"sol-ix-gateway/internal/types"
	"sol-ix-gateway/internal/xerr"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeromicro/go-zero/rest/router"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func newTestRouter(t *testing.T, svcCtx *svc.ServiceContext) http.Handler {
	rt := router.NewRouter()
	for _, r := range Routes(svcCtx) {
		require.NoError(t, rt.Handle(r.Method, r.Path, r.Handler), r.Path)
	}
	return rt
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var env envelope
	if strings.Contains(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func newAddr() string {
	return types.GenerateKeypair().Pubkey().String()
}

func TestKeypairRoute(t *testing.T) {
	h := newTestRouter(t, &svc.ServiceContext{})

	w, env := doJSON(t, h, http.MethodPost, "/keypair", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, env.Success)

	var data types.KeypairResp
	require.NoError(t, json.Unmarshal(env.Data, &data))
	pub, err := base58.Decode(data.Pubkey)
	require.NoError(t, err)
	assert.Len(t, pub, 32)
	secret, err := base58.Decode(data.Secret)
	require.NoError(t, err)
	assert.Len(t, secret, 64)
}

func TestSendSolRoute(t *testing.T) {
	h := newTestRouter(t, &svc.ServiceContext{})
	from, to := newAddr(), newAddr()

	w, env := doJSON(t, h, http.MethodPost, "/send/sol",
		`{"from":"`+from+`","to":"`+to+`","lamports":1000}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.True(t, env.Success)

	var data types.InstructionResp
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, consts.SystemProgramStr, data.ProgramID)
	require.Len(t, data.Accounts, 2)
	assert.Equal(t, types.AccountMetaResp{Pubkey: from, IsSigner: true, IsWritable: true}, data.Accounts[0])
	assert.Equal(t, types.AccountMetaResp{Pubkey: to, IsSigner: false, IsWritable: true}, data.Accounts[1])
	assert.Equal(t, "AgAAAOgDAAAAAAAA", data.InstructionData)
}

func TestVerifyTamperedMessageRoute(t *testing.T) {
	h := newTestRouter(t, &svc.ServiceContext{})
	kp := types.GenerateKeypair()

	w, env := doJSON(t, h, http.MethodPost, "/message/sign",
		`{"message":"Hello, Solana!","secret":"`+kp.SecretBase58()+`"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var signed types.SignMessageResp
	require.NoError(t, json.Unmarshal(env.Data, &signed))
	assert.Equal(t, kp.Pubkey().String(), signed.PublicKey)

	verify := func(message string) bool {
		body, err := json.Marshal(types.VerifyMessageReq{Message: message, Signature: signed.Signature, Pubkey: signed.PublicKey})
		require.NoError(t, err)
		w, env := doJSON(t, h, http.MethodPost, "/message/verify", string(body))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var data types.VerifyMessageResp
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Equal(t, message, data.Message)
		return data.Valid
	}
	assert.True(t, verify("Hello, Solana!"))
	assert.False(t, verify("Hello, Solana?"))
}

func TestVerifyBadSignatureRoute(t *testing.T) {
	h := newTestRouter(t, &svc.ServiceContext{})
	w, env := doJSON(t, h, http.MethodPost, "/message/verify",
		`{"message":"m","signature":"AAAA","pubkey":"`+newAddr()+`"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
	assert.Contains(t, env.Error, "signature")
}

func TestCreateTokenInvalidMintRoute(t *testing.T) {
	h := newTestRouter(t, &svc.ServiceContext{})

	w, env := doJSON(t, h, http.MethodPost, "/token/create",
		`{"mint":"not-base58!","mint_authority":"`+newAddr()+`","decimals":6}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
	assert.Contains(t, env.Error, "mint")
	assert.Empty(t, env.Data)
}

func TestTokenRoutes(t *testing.T) {
	h := newTestRouter(t, &svc.ServiceContext{})
	mint, dest, owner := newAddr(), newAddr(), newAddr()

	w, env := doJSON(t, h, http.MethodPost, "/token/mint",
		`{"mint":"`+mint+`","destination":"`+dest+`","authority":"`+owner+`","amount":0}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var minted types.InstructionResp
	require.NoError(t, json.Unmarshal(env.Data, &minted))
	assert.Equal(t, consts.TokenProgramStr, minted.ProgramID)
	assert.Len(t, minted.Accounts, 3)

	w, env = doJSON(t, h, http.MethodPost, "/send/token",
		`{"destination":"`+dest+`","mint":"`+mint+`","owner":"`+owner+`","amount":5}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var sent types.InstructionResp
	require.NoError(t, json.Unmarshal(env.Data, &sent))
	assert.Equal(t, owner, sent.Accounts[0].Pubkey)
	assert.True(t, sent.Accounts[2].IsSigner)
}

func TestMissingFieldRoute(t *testing.T) {
	h := newTestRouter(t, &svc.ServiceContext{})

	w, env := doJSON(t, h, http.MethodPost, "/send/sol", `{"from":"`+newAddr()+`"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
	assert.True(t, strings.HasPrefix(env.Error, "Invalid to field"), env.Error)

	w, env = doJSON(t, h, http.MethodPost, "/send/sol", `{"from":"a","to":"b","lamports":-1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
}

func TestDecimalsOutOfRangeRoute(t *testing.T) {
	h := newTestRouter(t, &svc.ServiceContext{})

	w, env := doJSON(t, h, http.MethodPost, "/token/create",
		`{"mint":"`+newAddr()+`","mint_authority":"`+newAddr()+`","decimals":256}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
	assert.True(t, strings.HasPrefix(env.Error, "Invalid decimals field"), env.Error)
}

func TestParseErrorField(t *testing.T) {
	cases := map[string]string{
		`field "amount" is not set`:                                            "amount",
		`type mismatch for field "lamports", expect "uint64", actual "string"`: "lamports",
		`"mint" is not set`:                                                    "mint",
		"fullName: `decimals`, error: `x`":                                     "decimals",
		"wrong number range setting":                                           "",
	}
	for msg, want := range cases {
		assert.Equal(t, want, parseErrorField(errors.New(msg)), msg)
	}
}

func TestPanicBecomesInternalEnvelope(t *testing.T) {
	h := bind(&svc.ServiceContext{}, "boom", func(*types.SendSolReq) (*types.InstructionResp, error) {
		panic("unexpected")
	})

	w, env := doJSON(t, h, http.MethodPost, "/send/sol", `{"from":"a","to":"b","lamports":1}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, xerr.InternalMessage, env.Error)
}

func TestInternalErrorHidesDetails(t *testing.T) {
	w := httptest.NewRecorder()
	ErrorJson(w, errors.New("borsh: secret detail"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "secret detail")
	assert.Equal(t, http.StatusBadRequest, StatusFor(xerr.KindInvalidAmountOrField))
}

type fakeBalanceClient struct {
	balance uint64
	err     error
}

func (f *fakeBalanceClient) GetBalance(context.Context, string) (uint64, error) {
	return f.balance, f.err
}

func TestBalanceRoute(t *testing.T) {
	// 未配置
	h := newTestRouter(t, &svc.ServiceContext{})
	w, _ := doJSON(t, h, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "Error: "))

	balance, err := service.NewBalanceServiceWithClient(&fakeBalanceClient{balance: 2039280}, newAddr(), time.Second)
	require.NoError(t, err)
	h = newTestRouter(t, &svc.ServiceContext{Balance: balance})
	w, _ = doJSON(t, h, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Balance: 2039280 lamports", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")

	failing, err := service.NewBalanceServiceWithClient(&fakeBalanceClient{err: errors.New("rpc down")}, newAddr(), time.Second)
	require.NoError(t, err)
	h = newTestRouter(t, &svc.ServiceContext{Balance: failing})
	w, _ = doJSON(t, h, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "Error: "))
	assert.Contains(t, w.Body.String(), "rpc down")
}

func TestHealthzRoute(t *testing.T) {
	h := newTestRouter(t, &svc.ServiceContext{})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
