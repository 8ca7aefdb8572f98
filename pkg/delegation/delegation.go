// Package delegation builds and parses the opaque payloads that the
// authorization subsystem replays against the swap entry point on behalf of
// a maker.
package delegation

import (
	"encoding/json"
	"fmt"

	"github.com/gogo/protobuf/proto"
	"github.com/gogo/protobuf/types"
)

// ExecuteSettlementTypeUrl is the type url of the settlement-execution
// payload understood by the swap entry point.
const ExecuteSettlementTypeUrl = "/swapd.v1.MsgExecuteSettlement"

// Coin is the wire representation of a fungible asset amount.
type Coin struct {
	Denom  string `json:"denom"`
	Amount string `json:"amount"`
}

// ConfirmSwapOrder is the settlement-confirmation message executed as the
// maker.
type ConfirmSwapOrder struct {
	OrderId uint64 `json:"order_id"`
	Maker   string `json:"maker"`
}

// ExecutePayload is the inner request the authorization subsystem executes
// as the sender: "send the attached funds and invoke the swap entry point's
// settlement-confirmation handler".
type ExecutePayload struct {
	Sender   string           `json:"sender"`
	Contract string           `json:"contract"`
	Msg      ConfirmSwapOrder `json:"msg"`
	Funds    []Coin           `json:"funds"`
}

// EncodeConfirmPayload returns the encoded settlement-execution payload for
// the given order: a proto Any envelope wrapping the json payload body.
func EncodeConfirmPayload(
	contract string, orderId uint64, maker string, coin Coin,
) ([]byte, error) {
	payload := ExecutePayload{
		Sender:   maker,
		Contract: contract,
		Msg: ConfirmSwapOrder{
			OrderId: orderId,
			Maker:   maker,
		},
		Funds: []Coin{coin},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode settlement payload: %w", err)
	}

	buf, err := proto.Marshal(&types.Any{
		TypeUrl: ExecuteSettlementTypeUrl,
		Value:   body,
	})
	if err != nil {
		return nil, fmt.Errorf("encode settlement envelope: %w", err)
	}
	return buf, nil
}

// DecodeConfirmPayload parses a payload previously encoded with
// EncodeConfirmPayload.
func DecodeConfirmPayload(raw []byte) (*ExecutePayload, error) {
	var envelope types.Any
	if err := proto.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode settlement envelope: %w", err)
	}
	if envelope.TypeUrl != ExecuteSettlementTypeUrl {
		return nil, fmt.Errorf("unknown payload type %s", envelope.TypeUrl)
	}

	payload := &ExecutePayload{}
	if err := json.Unmarshal(envelope.Value, payload); err != nil {
		return nil, fmt.Errorf("decode settlement payload: %w", err)
	}
	return payload, nil
}
