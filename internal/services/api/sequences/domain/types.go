// Package domain holds the outreach sequence shapes
package domain

import (
	"strings"
	"time"
)

// channel types a step may use; anything else normalizes to ChannelEmail
const (
	ChannelEmail = "email"
	ChannelCall  = "call"
	ChannelTask  = "task"
)

// DefaultWaitHours applies when a step carries a non-positive wait
const DefaultWaitHours = 48

// BodyPreviewMax bounds the engagement log body preview in runes
const BodyPreviewMax = 180

// Step is one channel+wait+template unit of a sequence
type Step struct {
	Order     int    `json:"order"`
	Type      string `json:"type"`
	WaitHours int    `json:"waitHours"`
	Template  string `json:"template"`
}

// NormalizeChannel maps an arbitrary channel label onto the allowed set
// labels are compared after trimming and lowercasing, so "Call" and " task " count
func NormalizeChannel(t string) string {
	c := strings.ToLower(strings.TrimSpace(t))
	switch c {
	case ChannelEmail, ChannelCall, ChannelTask:
		return c
	default:
		return ChannelEmail
	}
}

// Normalized returns the step with its channel and wait forced into range
func (s Step) Normalized() Step {
	s.Type = NormalizeChannel(s.Type)
	if s.WaitHours <= 0 {
		s.WaitHours = DefaultWaitHours
	}
	return s
}

// Sequence is an ordered outreach step template
type Sequence struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Active      bool      `json:"active"`
	Steps       []Step    `json:"steps"`
	CreatedAt   time.Time `json:"createdAt"`
}

// FirstStep returns the step with the lowest order value
// ties keep the earliest list position; ok is false for zero steps
func (s Sequence) FirstStep() (Step, bool) {
	if len(s.Steps) == 0 {
		return Step{}, false
	}
	first := s.Steps[0]
	for _, st := range s.Steps[1:] {
		if st.Order < first.Order {
			first = st
		}
	}
	return first, true
}

// EngagementLog is one immutable outreach touch, appended on sequence start
type EngagementLog struct {
	ID          string    `json:"id"`
	LeadID      string    `json:"leadId"`
	Channel     string    `json:"channel"`
	Direction   string    `json:"direction"`
	OccurredAt  time.Time `json:"occurredAt"`
	Subject     string    `json:"subject"`
	BodyPreview string    `json:"bodyPreview"`
	Status      string    `json:"status"`
	ProviderRef string    `json:"providerRef,omitempty"`
}
