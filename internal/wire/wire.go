// Package wire defines the UTF-8 JSON frame format exchanged between
// routers: the envelope (src, dst, type, msg) and the typed payload shape
// for each message type. Nothing downstream of Decode sees raw JSON — every
// payload is validated on ingress and modeled as a distinct Go type.
package wire

import (
	"encoding/json"
	"fmt"

	"github.com/ronak4/BGP-Router/internal/addr"
	"github.com/ronak4/BGP-Router/internal/rib"
)

// Type names the kind of frame, per the wire contract.
type Type string

const (
	Handshake Type = "handshake"
	Update    Type = "update"
	Withdraw  Type = "withdraw"
	Data      Type = "data"
	Dump      Type = "dump"
	Table     Type = "table"
	NoRoute   Type = "no route"
)

// Frame is the envelope common to every message.
type Frame struct {
	Src  string          `json:"src"`
	Dst  string          `json:"dst"`
	Type Type            `json:"type"`
	Msg  json.RawMessage `json:"msg"`
}

// Decode parses a raw UDP datagram into a Frame. Malformed JSON or a
// missing envelope field is reported as an error for the caller to log and
// drop, per the malformed-input policy.
func Decode(raw []byte) (Frame, error) {
	var f Frame
	if err := json.Unmarshal(raw, &f); err != nil {
		return Frame{}, fmt.Errorf("wire: malformed frame: %w", err)
	}
	if f.Src == "" || f.Dst == "" || f.Type == "" {
		return Frame{}, fmt.Errorf("wire: frame missing required field")
	}
	switch f.Type {
	case Handshake, Update, Withdraw, Data, Dump, Table, NoRoute:
	default:
		return Frame{}, fmt.Errorf("wire: unknown frame type %q", f.Type)
	}
	return f, nil
}

// Encode serializes a Frame with src/dst addresses and an arbitrary payload.
func Encode(src, dst addr.Address, typ Type, payload any) ([]byte, error) {
	msg, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("wire: encoding %s payload: %w", typ, err)
	}
	return json.Marshal(Frame{
		Src:  addr.ToDotted(src),
		Dst:  addr.ToDotted(dst),
		Type: typ,
		Msg:  msg,
	})
}

// UpdatePayload is the incoming update.msg shape.
type UpdatePayload struct {
	Network    string `json:"network"`
	Netmask    string `json:"netmask"`
	LocalPref  int    `json:"localpref"`
	SelfOrigin bool   `json:"selfOrigin"`
	ASPath     []int  `json:"ASPath"`
	Origin     string `json:"origin"`
}

// DecodeUpdate validates and parses an update.msg payload, including the
// origin enum and the netmask's contiguity.
func DecodeUpdate(raw json.RawMessage) (UpdatePayload, error) {
	var p UpdatePayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return UpdatePayload{}, fmt.Errorf("wire: malformed update: %w", err)
	}
	switch rib.Origin(p.Origin) {
	case rib.OriginIGP, rib.OriginEGP, rib.OriginUNK:
	default:
		return UpdatePayload{}, fmt.Errorf("wire: unknown origin %q", p.Origin)
	}
	if _, err := addr.MaskToLen(p.Netmask); err != nil {
		return UpdatePayload{}, err
	}
	if _, err := addr.ToInt(p.Network); err != nil {
		return UpdatePayload{}, err
	}
	return p, nil
}

// OutgoingUpdatePayload is the re-advertised update.msg shape: attributes
// other than network/netmask/ASPath are stripped, since they are not
// transitive across AS boundaries in this model.
type OutgoingUpdatePayload struct {
	Network string `json:"network"`
	Netmask string `json:"netmask"`
	ASPath  []int  `json:"ASPath"`
}

// WithdrawEntry is one (network, netmask) pair inside a withdraw.msg list.
type WithdrawEntry struct {
	Network string `json:"network"`
	Netmask string `json:"netmask"`
}

// DecodeWithdraw validates and parses a withdraw.msg payload.
func DecodeWithdraw(raw json.RawMessage) ([]WithdrawEntry, error) {
	var entries []WithdrawEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("wire: malformed withdraw: %w", err)
	}
	for _, e := range entries {
		if _, err := addr.ToInt(e.Network); err != nil {
			return nil, err
		}
		if _, err := addr.MaskToLen(e.Netmask); err != nil {
			return nil, err
		}
	}
	return entries, nil
}

// DataPayload is the opaque data.msg body; the core forwards it unexamined.
type DataPayload = json.RawMessage

// TableEntry is one RIB row in a table.msg dump response.
type TableEntry struct {
	Network    string `json:"network"`
	Netmask    string `json:"netmask"`
	Peer       string `json:"peer"`
	LocalPref  int    `json:"localpref"`
	ASPath     []int  `json:"ASPath"`
	SelfOrigin bool   `json:"selfOrigin"`
	Origin     string `json:"origin"`
}

// EmptyPayload is the msg shape for dump.msg and no route.msg.
type EmptyPayload struct{}
