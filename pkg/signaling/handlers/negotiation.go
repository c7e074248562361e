package handlers

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pion/ice/v4"
	"github.com/pion/webrtc/v4"
)

// checkDescription requires raw to be a session description of the given
// type whose SDP parses.
func checkDescription(raw json.RawMessage, want webrtc.SDPType) error {
	var desc webrtc.SessionDescription
	if err := json.Unmarshal(raw, &desc); err != nil {
		return fmt.Errorf("decode session description: %w", err)
	}
	if desc.Type != want {
		return fmt.Errorf("expected %s description, got %s", want, desc.Type)
	}
	if _, err := desc.Unmarshal(); err != nil {
		return fmt.Errorf("parse sdp: %w", err)
	}
	return nil
}

// checkCandidate requires raw to be an RTCIceCandidateInit whose candidate
// line parses. An empty line marks end-of-candidates and is accepted.
func checkCandidate(raw json.RawMessage) error {
	var init webrtc.ICECandidateInit
	if err := json.Unmarshal(raw, &init); err != nil {
		return fmt.Errorf("decode candidate: %w", err)
	}
	line := strings.TrimPrefix(strings.TrimSpace(init.Candidate), "candidate:")
	if line == "" {
		return nil
	}
	if _, err := ice.UnmarshalCandidate(line); err != nil {
		return fmt.Errorf("parse candidate: %w", err)
	}
	return nil
}
