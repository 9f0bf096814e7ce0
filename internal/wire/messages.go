// Package wire is an optional binary framing layer for embedders that want
// networked access to the matching engine, adapted from the teacher's
// internal/net/messages.go. It is not required by the engine's core
// contract (spec's external interface is the Go API in internal/engine);
// this package exists only as a thin wire adapter over it, trimmed down to
// this spec's three mutating operations (no AssetType/Ticker/Owner --
// single instrument, no multi-tenant routing).
package wire

import (
	"encoding/binary"
	"errors"
	"math"

	"fenrir/internal/engine"
)

var (
	ErrInvalidMessageType = errors.New("invalid message type")
	ErrMessageTooShort    = errors.New("message too short for its declared type")
)

type MessageType uint16

const (
	Heartbeat MessageType = iota
	NewOrder
	ModifyOrder
	CancelOrder
)

type ReportMessageType uint8

const (
	ExecutionReport ReportMessageType = iota
	ErrorReport
)

const (
	headerLen            = 2 // MessageType
	newOrderBodyLen      = 1 + 8 + 8
	modifyOrderBodyLen   = 8 + 8 + 8
	cancelOrderBodyLen   = 8
	reportFixedHeaderLen = 1 + 1 + 8 + 8 + 8 + 4 // type + side + bidID + askID + volume + errLen
)

// NewOrderMessage requests a new resting order at the given side/price/volume.
type NewOrderMessage struct {
	Side   engine.Side
	Price  float64
	Volume uint64
}

// EncodeNewOrder serializes a NewOrder request onto the wire.
func EncodeNewOrder(m NewOrderMessage) []byte {
	buf := make([]byte, headerLen+newOrderBodyLen)
	binary.BigEndian.PutUint16(buf[0:2], uint16(NewOrder))
	buf[2] = byte(m.Side)
	binary.BigEndian.PutUint64(buf[3:11], math.Float64bits(m.Price))
	binary.BigEndian.PutUint64(buf[11:19], m.Volume)
	return buf
}

func decodeNewOrder(body []byte) (NewOrderMessage, error) {
	if len(body) < newOrderBodyLen {
		return NewOrderMessage{}, ErrMessageTooShort
	}
	return NewOrderMessage{
		Side:   engine.Side(body[0]),
		Price:  math.Float64frombits(binary.BigEndian.Uint64(body[1:9])),
		Volume: binary.BigEndian.Uint64(body[9:17]),
	}, nil
}

// ModifyOrderMessage requests cancel-then-add semantics for OrderID.
type ModifyOrderMessage struct {
	OrderID   uint64
	NewPrice  float64
	NewVolume uint64
}

func EncodeModifyOrder(m ModifyOrderMessage) []byte {
	buf := make([]byte, headerLen+modifyOrderBodyLen)
	binary.BigEndian.PutUint16(buf[0:2], uint16(ModifyOrder))
	binary.BigEndian.PutUint64(buf[2:10], m.OrderID)
	binary.BigEndian.PutUint64(buf[10:18], math.Float64bits(m.NewPrice))
	binary.BigEndian.PutUint64(buf[18:26], m.NewVolume)
	return buf
}

func decodeModifyOrder(body []byte) (ModifyOrderMessage, error) {
	if len(body) < modifyOrderBodyLen {
		return ModifyOrderMessage{}, ErrMessageTooShort
	}
	return ModifyOrderMessage{
		OrderID:   binary.BigEndian.Uint64(body[0:8]),
		NewPrice:  math.Float64frombits(binary.BigEndian.Uint64(body[8:16])),
		NewVolume: binary.BigEndian.Uint64(body[16:24]),
	}, nil
}

// CancelOrderMessage requests cancellation of OrderID.
type CancelOrderMessage struct {
	OrderID uint64
}

func EncodeCancelOrder(m CancelOrderMessage) []byte {
	buf := make([]byte, headerLen+cancelOrderBodyLen)
	binary.BigEndian.PutUint16(buf[0:2], uint16(CancelOrder))
	binary.BigEndian.PutUint64(buf[2:10], m.OrderID)
	return buf
}

func decodeCancelOrder(body []byte) (CancelOrderMessage, error) {
	if len(body) < cancelOrderBodyLen {
		return CancelOrderMessage{}, ErrMessageTooShort
	}
	return CancelOrderMessage{OrderID: binary.BigEndian.Uint64(body[0:8])}, nil
}

// Message is any decoded request frame.
type Message interface {
	Type() MessageType
}

func (NewOrderMessage) Type() MessageType    { return NewOrder }
func (ModifyOrderMessage) Type() MessageType { return ModifyOrder }
func (CancelOrderMessage) Type() MessageType { return CancelOrder }

// Decode parses a single framed request off the wire.
func Decode(frame []byte) (Message, error) {
	if len(frame) < headerLen {
		return nil, ErrMessageTooShort
	}
	msgType := MessageType(binary.BigEndian.Uint16(frame[0:2]))
	body := frame[headerLen:]
	switch msgType {
	case NewOrder:
		return decodeNewOrder(body)
	case ModifyOrder:
		return decodeModifyOrder(body)
	case CancelOrder:
		return decodeCancelOrder(body)
	default:
		return nil, ErrInvalidMessageType
	}
}

// Report is a wire-serializable execution or error report, mirroring the
// teacher's Report/Serialize pattern in internal/net/messages.go.
type Report struct {
	Type   ReportMessageType
	Side   engine.Side
	BidID  uint64
	AskID  uint64
	Volume uint64
	ErrStr string
}

// Serialize converts the report to its wire form.
func (r *Report) Serialize() []byte {
	errBytes := []byte(r.ErrStr)
	buf := make([]byte, reportFixedHeaderLen+len(errBytes))
	buf[0] = byte(r.Type)
	buf[1] = byte(r.Side)
	binary.BigEndian.PutUint64(buf[2:10], r.BidID)
	binary.BigEndian.PutUint64(buf[10:18], r.AskID)
	binary.BigEndian.PutUint64(buf[18:26], r.Volume)
	binary.BigEndian.PutUint32(buf[26:30], uint32(len(errBytes)))
	copy(buf[reportFixedHeaderLen:], errBytes)
	return buf
}

// DecodeReport parses a Report previously produced by Serialize.
func DecodeReport(buf []byte) (Report, error) {
	if len(buf) < reportFixedHeaderLen {
		return Report{}, ErrMessageTooShort
	}
	errLen := binary.BigEndian.Uint32(buf[26:30])
	if len(buf) < reportFixedHeaderLen+int(errLen) {
		return Report{}, ErrMessageTooShort
	}
	return Report{
		Type:   ReportMessageType(buf[0]),
		Side:   engine.Side(buf[1]),
		BidID:  binary.BigEndian.Uint64(buf[2:10]),
		AskID:  binary.BigEndian.Uint64(buf[10:18]),
		Volume: binary.BigEndian.Uint64(buf[18:26]),
		ErrStr: string(buf[reportFixedHeaderLen : reportFixedHeaderLen+int(errLen)]),
	}, nil
}
