package response

import (
	"time"

	"tablekeeper/internal/infra/voiceai"
	"tablekeeper/internal/usecase/commands"
	"tablekeeper/internal/usecase/queries"
)

// VoiceWebhookResponse is what the voice agent reads back to the caller.
type VoiceWebhookResponse struct {
	Event        string                `json:"event"`
	CallID       string                `json:"callId,omitempty"`
	Action       string                `json:"action"`
	Reservation  *ReservationResponse  `json:"reservation,omitempty"`
	ErrorKind    string                `json:"errorKind,omitempty"`
	Reason       string                `json:"reason,omitempty"`
	Alternatives []AlternativeResponse `json:"alternatives,omitempty"`
}

type AgentResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	VoiceID    string `json:"voiceId"`
	Language   string `json:"language,omitempty"`
	WebhookURL string `json:"webhookUrl,omitempty"`
}

type CallResponse struct {
	ID        string     `json:"id"`
	AgentID   string     `json:"agentId"`
	Status    string     `json:"status"`
	StartedAt *time.Time `json:"startedAt,omitempty"`
}

type BreakerResponse struct {
	Name            string     `json:"name"`
	State           string     `json:"state"`
	FailureCount    int        `json:"failureCount"`
	LastFailureTime *time.Time `json:"lastFailureTime,omitempty"`
	TotalCalls      int64      `json:"totalCalls"`
	TotalFailures   int64      `json:"totalFailures"`
	TotalRejections int64      `json:"totalRejections"`
}

func FromVoiceWebhookResult(r *commands.VoiceWebhookResult) *VoiceWebhookResponse {
	resp := &VoiceWebhookResponse{
		Event:     r.Event,
		CallID:    r.CallID,
		Action:    r.Action,
		ErrorKind: string(r.ErrorKind),
		Reason:    r.Reason,
	}
	if r.Reservation != nil {
		resp.Reservation = FromReservationSnapshot(*r.Reservation)
	}
	if len(r.Alternatives) > 0 {
		resp.Alternatives = FromAlternatives(r.Alternatives)
	}
	return resp
}

func FromAgent(a voiceai.Agent) *AgentResponse {
	return &AgentResponse{
		ID:         a.ID,
		Name:       a.Name,
		VoiceID:    a.VoiceID,
		Language:   a.Language,
		WebhookURL: a.WebhookURL,
	}
}

// FromCall converts the provider's millisecond timestamps.
func FromCall(c voiceai.Call) *CallResponse {
	resp := &CallResponse{ID: c.ID, AgentID: c.AgentID, Status: c.Status}
	if c.StartedAt > 0 {
		t := time.UnixMilli(c.StartedAt).UTC()
		resp.StartedAt = &t
	}
	return resp
}

func FromBreakerView(v queries.BreakerView) *BreakerResponse {
	return &BreakerResponse{
		Name:            v.Name,
		State:           v.State,
		FailureCount:    v.FailureCount,
		LastFailureTime: v.LastFailureTime,
		TotalCalls:      v.TotalCalls,
		TotalFailures:   v.TotalFailures,
		TotalRejections: v.TotalRejections,
	}
}
