// Copyright (c) 2024 The sequencer-core Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package rpcserver is the JSON-RPC transport framing collaborator: out
// of scope for the sequencer core, which only consumes the decoded
// UserTransaction the admission entry point receives and returns a
// SoftConfirmation to. Grounded on
// original_source/src/api/server.rs's axum-based handle_rpc /
// handle_send_transaction for the method shape, and on the teacher's own
// github.com/gorilla/rpc/v2/json2 usage (utils/rpc/json.go, client side)
// for the JSON-RPC 2.0 envelope — reused here server-side via
// github.com/gorilla/rpc/v2's reflection-based service dispatch, routed
// through gorilla/mux, the router family already in the teacher's
// dependency tree via gorilla/rpc.
package rpcserver

import (
	"errors"
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/log"
	"github.com/gorilla/mux"
	gorillarpc "github.com/gorilla/rpc/v2"
	"github.com/gorilla/rpc/v2/json2"
	"github.com/holiman/uint256"

	"github.com/luxfi/sequencer-core/core/sequencer"
)

// Decode-time sentinel errors, each mapped onto a JSON-RPC 2.0
// "invalid params" (-32602) fault by sequencerService.SendTransaction
// (spec §6.6).
var (
	errInvalidSignatureLength = errors.New("signature must be exactly 65 bytes")
	errMissingValue           = errors.New("value is required")
	errMissingGasPrice        = errors.New("gasPrice is required")
)

// Admitter is the subset of core/sequencer.Admission the server depends
// on.
type Admitter interface {
	Submit(tx sequencer.UserTransaction) sequencer.SoftConfirmation
}

// Server exposes the admission entry point over JSON-RPC 2.0-over-HTTP.
// Envelope encoding/decoding, method dispatch, and not-found/parse-error
// handling are all owned by gorilla/rpc's json2 codec; this package only
// supplies the sendTransaction method and the wire DTO it decodes into.
type Server struct {
	router *mux.Router
}

// New returns a Server delivering decoded transactions to admission.
func New(admission Admitter) *Server {
	rpcSrv := gorillarpc.NewServer()
	rpcSrv.RegisterCodec(json2.NewCodec(), "application/json")
	if err := rpcSrv.RegisterService(&sequencerService{admission: admission}, "Sequencer"); err != nil {
		// Only possible if SendTransaction's signature stops matching
		// gorilla/rpc's (http.Request, *Args, *Reply) error convention.
		panic("rpcserver: failed to register sequencer service: " + err.Error())
	}

	router := mux.NewRouter()
	router.Handle("/", rpcSrv).Methods(http.MethodPost)
	return &Server{router: router}
}

// ListenAndServe blocks serving JSON-RPC requests on addr.
func (s *Server) ListenAndServe(addr string) error {
	log.Info("JSON-RPC admission server listening", "addr", addr)
	return http.ListenAndServe(addr, s.router)
}

// sequencerService exposes Submit as a gorilla/rpc service method. The
// wire method name is "Sequencer.SendTransaction" (spec §6.1's single
// admission entry point).
type sequencerService struct {
	admission Admitter
}

// SendTransaction decodes args, submits the resulting transaction to
// admission, and reports the resulting SoftConfirmation as reply.
// Decode faults are returned as a *json2.Error carrying code -32602
// (spec §6.6); admission itself never errors, so there is no -32603 path
// here.
func (s *sequencerService) SendTransaction(_ *http.Request, args *UserTransactionDTO, reply *map[string]interface{}) error {
	tx, err := args.toDomain()
	if err != nil {
		return &json2.Error{Code: json2.E_BAD_PARAMS, Message: err.Error()}
	}

	confirmation := s.admission.Submit(tx)
	*reply = confirmationDTOFrom(confirmation)
	return nil
}

// UserTransactionDTO is the wire representation of a UserTransaction:
// hex-encoded fields, matching the teacher's hexutil-based JSON
// conventions for addresses, hashes, and big integers. It is exported
// because gorilla/rpc only registers methods whose args type is exported.
type UserTransactionDTO struct {
	From      common.Address `json:"from"`
	To        common.Address `json:"to"`
	Value     *hexutil.Big   `json:"value"`
	Nonce     hexutil.Uint64 `json:"nonce"`
	GasPrice  *hexutil.Big   `json:"gasPrice"`
	GasLimit  hexutil.Uint64 `json:"gasLimit"`
	Signature hexutil.Bytes  `json:"signature"`
	Timestamp hexutil.Uint64 `json:"timestamp"`
	BoostBid  *hexutil.Big   `json:"boostBid,omitempty"`
}

func (d UserTransactionDTO) toDomain() (sequencer.UserTransaction, error) {
	if d.Value == nil {
		return sequencer.UserTransaction{}, errMissingValue
	}
	if d.GasPrice == nil {
		return sequencer.UserTransaction{}, errMissingGasPrice
	}

	tx := sequencer.UserTransaction{
		From:      d.From,
		To:        d.To,
		Value:     uint256.MustFromBig((*big.Int)(d.Value)),
		Nonce:     uint64(d.Nonce),
		GasPrice:  uint256.MustFromBig((*big.Int)(d.GasPrice)),
		GasLimit:  uint64(d.GasLimit),
		Timestamp: uint64(d.Timestamp),
	}
	if len(d.Signature) != 65 {
		return tx, errInvalidSignatureLength
	}
	copy(tx.Signature[:], d.Signature)

	if d.BoostBid != nil {
		tx.BoostBid = uint256.MustFromBig((*big.Int)(d.BoostBid))
	}
	return tx, nil
}

func confirmationDTOFrom(c sequencer.SoftConfirmation) map[string]interface{} {
	out := map[string]interface{}{
		"txHash":    c.TxHash,
		"timestamp": hexutil.Uint64(c.Timestamp),
	}
	if c.Status.Accepted {
		out["status"] = "Accepted"
	} else {
		out["status"] = "Rejected"
		out["reason"] = c.Status.Reason
	}
	return out
}
