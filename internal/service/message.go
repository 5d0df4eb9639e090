package service

import (
	"encoding/json"
	"time"

	"github.com/iamavinashmourya/SIA/internal/model"
)

// Inbound is the decoded form of a client control message. One variant per
// recognized type; anything else decodes to Ignored so unknown traffic
// never closes the channel.
type Inbound interface{ isInbound() }

type Ping struct{}

type SubscribeRoom struct {
	RoomID string
}

type UnsubscribeRoom struct {
	RoomID string
}

type WebRTCOffer struct {
	Offer json.RawMessage
}

type WebRTCAnswer struct {
	TargetID string
	Answer   json.RawMessage
}

type WebRTCICECandidate struct {
	TargetID  string
	Candidate json.RawMessage
}

type Ignored struct {
	Type string
}

func (Ping) isInbound()               {}
func (SubscribeRoom) isInbound()      {}
func (UnsubscribeRoom) isInbound()    {}
func (WebRTCOffer) isInbound()        {}
func (WebRTCAnswer) isInbound()       {}
func (WebRTCICECandidate) isInbound() {}
func (Ignored) isInbound()            {}

type inboundEnvelope struct {
	Type      string          `json:"type"`
	RoomID    string          `json:"room_id"`
	TargetID  string          `json:"target_id"`
	Offer     json.RawMessage `json:"offer"`
	Answer    json.RawMessage `json:"answer"`
	Candidate json.RawMessage `json:"candidate"`
}

// ParseInbound decodes one client message. Non-JSON payloads return an
// error; recognized types with missing required fields and unknown types
// both come back as Ignored.
func ParseInbound(data []byte) (Inbound, error) {
	var env inboundEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	switch env.Type {
	case "ping":
		return Ping{}, nil
	case "subscribe_room":
		if env.RoomID == "" {
			return Ignored{Type: env.Type}, nil
		}
		return SubscribeRoom{RoomID: env.RoomID}, nil
	case "unsubscribe_room":
		if env.RoomID == "" {
			return Ignored{Type: env.Type}, nil
		}
		return UnsubscribeRoom{RoomID: env.RoomID}, nil
	case "webrtc_offer":
		if len(env.Offer) == 0 {
			return Ignored{Type: env.Type}, nil
		}
		return WebRTCOffer{Offer: env.Offer}, nil
	case "webrtc_answer":
		if env.TargetID == "" || len(env.Answer) == 0 {
			return Ignored{Type: env.Type}, nil
		}
		return WebRTCAnswer{TargetID: env.TargetID, Answer: env.Answer}, nil
	case "webrtc_ice_candidate":
		if env.TargetID == "" || len(env.Candidate) == 0 {
			return Ignored{Type: env.Type}, nil
		}
		return WebRTCICECandidate{TargetID: env.TargetID, Candidate: env.Candidate}, nil
	default:
		return Ignored{Type: env.Type}, nil
	}
}

// Server-initiated message shapes.

type ConnectedMessage struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	HostID    string `json:"host_id,omitempty"`
	SessionID string `json:"session_id,omitempty"`
	RoomID    string `json:"room_id,omitempty"`
}

type PongMessage struct {
	Type string `json:"type"`
}

type RoomAckMessage struct {
	Type   string `json:"type"` // subscribed, unsubscribed
	RoomID string `json:"room_id"`
}

type QueueUpdateMessage struct {
	Type      string          `json:"type"`   // queue_update
	Action    string          `json:"action"` // new, accepted, declined
	QueueItem model.QueueItem `json:"queue_item"`
	RoomID    string          `json:"room_id"`
}

type QueueStatusMessage struct {
	Type   string            `json:"type"` // queue_status
	Status model.QueueStatus `json:"status"`
}

type InterventionMessage struct {
	Type      string `json:"type"` // intervention_message
	Text      string `json:"text"`
	Sender    string `json:"sender"`
	Timestamp string `json:"timestamp"`
}

type WebRTCSignalMessage struct {
	Type      string          `json:"type"` // webrtc_offer, webrtc_answer, webrtc_ice_candidate
	Offer     json.RawMessage `json:"offer,omitempty"`
	Answer    json.RawMessage `json:"answer,omitempty"`
	Candidate json.RawMessage `json:"candidate,omitempty"`
	TargetID  string          `json:"target_id"`
}

// NewInterventionMessage builds an intervention push with a UTC timestamp.
func NewInterventionMessage(text, sender string) InterventionMessage {
	return InterventionMessage{
		Type:      "intervention_message",
		Text:      text,
		Sender:    sender,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}
