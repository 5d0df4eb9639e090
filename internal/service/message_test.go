package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseInbound_Recognized_Types(t *testing.T) {
	req := require.New(t)

	msg, err := ParseInbound([]byte(`{"type":"ping"}`))
	req.NoError(err)
	req.IsType(Ping{}, msg)

	msg, err = ParseInbound([]byte(`{"type":"subscribe_room","room_id":"r1"}`))
	req.NoError(err)
	req.Equal(SubscribeRoom{RoomID: "r1"}, msg)

	msg, err = ParseInbound([]byte(`{"type":"unsubscribe_room","room_id":"r1"}`))
	req.NoError(err)
	req.Equal(UnsubscribeRoom{RoomID: "r1"}, msg)

	msg, err = ParseInbound([]byte(`{"type":"webrtc_offer","offer":{"sdp":"x"}}`))
	req.NoError(err)
	offer, ok := msg.(WebRTCOffer)
	req.True(ok)
	req.JSONEq(`{"sdp":"x"}`, string(offer.Offer))

	msg, err = ParseInbound([]byte(`{"type":"webrtc_answer","target_id":"t1","answer":{"sdp":"y"}}`))
	req.NoError(err)
	answer, ok := msg.(WebRTCAnswer)
	req.True(ok)
	req.Equal("t1", answer.TargetID)

	msg, err = ParseInbound([]byte(`{"type":"webrtc_ice_candidate","target_id":"t1","candidate":{"c":"z"}}`))
	req.NoError(err)
	req.IsType(WebRTCICECandidate{}, msg)
}

func TestParseInbound_Unknown_Type_Is_Ignored(t *testing.T) {
	req := require.New(t)

	msg, err := ParseInbound([]byte(`{"type":"dance"}`))
	req.NoError(err)
	req.Equal(Ignored{Type: "dance"}, msg)
}

func TestParseInbound_Missing_Fields_Are_Ignored(t *testing.T) {
	req := require.New(t)

	// subscribe without a room, answer without a target
	msg, err := ParseInbound([]byte(`{"type":"subscribe_room"}`))
	req.NoError(err)
	req.Equal(Ignored{Type: "subscribe_room"}, msg)

	msg, err = ParseInbound([]byte(`{"type":"webrtc_answer","answer":{"sdp":"y"}}`))
	req.NoError(err)
	req.Equal(Ignored{Type: "webrtc_answer"}, msg)
}

func TestParseInbound_Invalid_JSON_Errors(t *testing.T) {
	req := require.New(t)

	_, err := ParseInbound([]byte(`not json at all`))
	req.Error(err)
}
