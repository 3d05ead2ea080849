// Copyright (c) 2024 The sequencer-core Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package rpcserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gorilla/rpc/v2/json2"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/sequencer-core/core/sequencer"
)

type stubAdmitter struct {
	lastTx       sequencer.UserTransaction
	confirmation sequencer.SoftConfirmation
}

func (a *stubAdmitter) Submit(tx sequencer.UserTransaction) sequencer.SoftConfirmation {
	a.lastTx = tx
	return a.confirmation
}

func validDTO() UserTransactionDTO {
	return UserTransactionDTO{
		From:      common.HexToAddress("0x1"),
		To:        common.HexToAddress("0x2"),
		Value:     (*hexutil.Big)(hexutil.MustDecodeBig("0x1")),
		Nonce:     3,
		GasPrice:  (*hexutil.Big)(hexutil.MustDecodeBig("0x1")),
		GasLimit:  21000,
		Signature: make(hexutil.Bytes, 65),
		Timestamp: 1_700_000_000_000,
	}
}

func TestUserTransactionDTOToDomain(t *testing.T) {
	dto := validDTO()
	tx, err := dto.toDomain()
	require.NoError(t, err)
	require.Equal(t, dto.From, tx.From)
	require.Equal(t, uint64(3), tx.Nonce)
	require.Equal(t, uint64(21000), tx.GasLimit)
}

func TestUserTransactionDTORejectsShortSignature(t *testing.T) {
	dto := validDTO()
	dto.Signature = make(hexutil.Bytes, 10)

	_, err := dto.toDomain()
	require.ErrorIs(t, err, errInvalidSignatureLength)
}

func TestUserTransactionDTORejectsMissingValue(t *testing.T) {
	dto := validDTO()
	dto.Value = nil

	_, err := dto.toDomain()
	require.ErrorIs(t, err, errMissingValue)
}

func TestUserTransactionDTORejectsMissingGasPrice(t *testing.T) {
	dto := validDTO()
	dto.GasPrice = nil

	_, err := dto.toDomain()
	require.ErrorIs(t, err, errMissingGasPrice)
}

func TestUserTransactionDTOPassesThroughBoostBid(t *testing.T) {
	dto := validDTO()
	dto.BoostBid = (*hexutil.Big)(hexutil.MustDecodeBig("0x64"))

	tx, err := dto.toDomain()
	require.NoError(t, err)
	require.Equal(t, uint64(100), tx.BoostBid.Uint64())
}

func TestConfirmationDTOFromAccepted(t *testing.T) {
	dto := confirmationDTOFrom(sequencer.SoftConfirmation{
		Status:    sequencer.ConfirmationStatus{Accepted: true},
		Timestamp: 42,
	})
	require.Equal(t, "Accepted", dto["status"])
	require.NotContains(t, dto, "reason")
}

func TestConfirmationDTOFromRejected(t *testing.T) {
	dto := confirmationDTOFrom(sequencer.SoftConfirmation{
		Status: sequencer.ConfirmationStatus{Accepted: false, Reason: "bad nonce"},
	})
	require.Equal(t, "Rejected", dto["status"])
	require.Equal(t, "bad nonce", dto["reason"])
}

// jsonRPCEnvelope mirrors the wire shape gorilla/rpc's json2 codec
// produces, used only to make assertions on test responses.
type jsonRPCEnvelope struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *json2.Error    `json:"error,omitempty"`
	ID      json.RawMessage `json:"id"`
}

func postRPC(t *testing.T, server *Server, method string, params interface{}) jsonRPCEnvelope {
	t.Helper()

	paramsJSON, err := json.Marshal(params)
	require.NoError(t, err)

	body, err := json.Marshal(map[string]interface{}{
		"jsonrpc": "2.0",
		"method":  method,
		"params":  []json.RawMessage{paramsJSON},
		"id":      1,
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	server.router.ServeHTTP(rec, req)

	var resp jsonRPCEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestSendTransactionEndToEnd(t *testing.T) {
	admitter := &stubAdmitter{confirmation: sequencer.SoftConfirmation{
		Status: sequencer.ConfirmationStatus{Accepted: true},
	}}
	server := New(admitter)

	resp := postRPC(t, server, "Sequencer.SendTransaction", validDTO())
	require.Nil(t, resp.Error)
	require.NotEmpty(t, resp.Result)
	require.Equal(t, validDTO().From, admitter.lastTx.From)
}

func TestSendTransactionRejectsMissingValueAsInvalidParams(t *testing.T) {
	server := New(&stubAdmitter{})

	dto := validDTO()
	dto.Value = nil

	resp := postRPC(t, server, "Sequencer.SendTransaction", dto)
	require.NotNil(t, resp.Error)
	require.Equal(t, json2.E_BAD_PARAMS, resp.Error.Code)
}

func TestSendTransactionRejectsShortSignatureAsInvalidParams(t *testing.T) {
	server := New(&stubAdmitter{})

	dto := validDTO()
	dto.Signature = make(hexutil.Bytes, 10)

	resp := postRPC(t, server, "Sequencer.SendTransaction", dto)
	require.NotNil(t, resp.Error)
	require.Equal(t, json2.E_BAD_PARAMS, resp.Error.Code)
}

func TestUnknownMethodReturnsJSONRPCError(t *testing.T) {
	server := New(&stubAdmitter{})

	resp := postRPC(t, server, "Sequencer.Bogus", validDTO())
	require.NotNil(t, resp.Error)
}

func TestMalformedBodyReturnsJSONRPCError(t *testing.T) {
	server := New(&stubAdmitter{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("not json")))
	req.Header.Set("Content-Type", "application/json")
	server.router.ServeHTTP(rec, req)

	var resp jsonRPCEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	require.Equal(t, json2.E_PARSE, resp.Error.Code)
}
