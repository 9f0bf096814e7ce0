package wire

import (
	"testing"

	"fenrir/internal/engine"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode_NewOrder(t *testing.T) {
	frame := EncodeNewOrder(NewOrderMessage{Side: engine.Bid, Price: 10.7, Volume: 5})

	msg, err := Decode(frame)
	require.NoError(t, err)

	newOrder, ok := msg.(NewOrderMessage)
	require.True(t, ok)
	assert.Equal(t, engine.Bid, newOrder.Side)
	assert.Equal(t, 10.7, newOrder.Price)
	assert.Equal(t, uint64(5), newOrder.Volume)
}

func TestEncodeDecode_ModifyOrder(t *testing.T) {
	frame := EncodeModifyOrder(ModifyOrderMessage{OrderID: 7, NewPrice: 50, NewVolume: 5})

	msg, err := Decode(frame)
	require.NoError(t, err)

	modify, ok := msg.(ModifyOrderMessage)
	require.True(t, ok)
	assert.Equal(t, uint64(7), modify.OrderID)
	assert.Equal(t, 50.0, modify.NewPrice)
	assert.Equal(t, uint64(5), modify.NewVolume)
}

func TestEncodeDecode_CancelOrder(t *testing.T) {
	frame := EncodeCancelOrder(CancelOrderMessage{OrderID: 42})

	msg, err := Decode(frame)
	require.NoError(t, err)

	cancel, ok := msg.(CancelOrderMessage)
	require.True(t, ok)
	assert.Equal(t, uint64(42), cancel.OrderID)
}

func TestDecode_RejectsShortFrame(t *testing.T) {
	_, err := Decode([]byte{0x00})
	assert.ErrorIs(t, err, ErrMessageTooShort)
}

func TestDecode_RejectsUnknownType(t *testing.T) {
	_, err := Decode([]byte{0xFF, 0xFF})
	assert.ErrorIs(t, err, ErrInvalidMessageType)
}

func TestReportSerializeDecode_RoundTrips(t *testing.T) {
	report := &Report{
		Type:   ExecutionReport,
		Side:   engine.Ask,
		BidID:  1,
		AskID:  2,
		Volume: 5,
	}

	decoded, err := DecodeReport(report.Serialize())
	require.NoError(t, err)
	assert.Equal(t, *report, decoded)
}

func TestReportSerializeDecode_CarriesErrorString(t *testing.T) {
	report := &Report{Type: ErrorReport, ErrStr: "order id not found or inactive"}

	decoded, err := DecodeReport(report.Serialize())
	require.NoError(t, err)
	assert.Equal(t, report.ErrStr, decoded.ErrStr)
}
