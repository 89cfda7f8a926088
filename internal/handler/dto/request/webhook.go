package request

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Voice provider webhook event types.
const (
	VoiceEventCallStarted  = "call_started"
	VoiceEventCallEnded    = "call_ended"
	VoiceEventCallAnalyzed = "call_analyzed"
)

// Intents recognised in the analysed call data.
const (
	VoiceIntentReserve = "reserve"
	VoiceIntentCancel  = "cancel"
)

type VoiceWebhookRequest struct {
	Event string    `json:"event" binding:"required"`
	Call  VoiceCall `json:"call"`
}

type VoiceCall struct {
	CallID        string         `json:"call_id"`
	AgentID       string         `json:"agent_id"`
	FromNumber    string         `json:"from_number"`
	CallAnalysis  *CallAnalysis  `json:"call_analysis,omitempty"`
	ExtractedData map[string]any `json:"extracted_data,omitempty"`
}

type CallAnalysis struct {
	CallSummary    string         `json:"call_summary"`
	CustomAnalysis map[string]any `json:"custom_analysis_data"`
	UserSentiment  string         `json:"user_sentiment"`
	CallSuccessful bool           `json:"call_successful"`
}

// Field aliases seen across agent prompt versions, in lookup order.
var (
	aliasName     = []string{"client_name", "nombre", "name", "customer_name", "nombre_cliente"}
	aliasPhone    = []string{"client_phone", "telefono", "teléfono", "phone", "phone_number"}
	aliasParty    = []string{"party_size", "personas", "comensales", "num_personas", "guests"}
	aliasDate     = []string{"date", "fecha", "reservation_date"}
	aliasTime     = []string{"time", "hora", "reservation_time"}
	aliasLocation = []string{"location", "zona", "ubicacion", "ubicación", "location_preference"}
	aliasNeeds    = []string{"special_needs", "necesidades", "needs", "necesidades_especiales"}
	aliasNotes    = []string{"notes", "notas", "observaciones", "comments"}
	aliasIntent   = []string{"intent", "accion", "acción", "action"}
	aliasConfirm  = []string{"confirmed", "confirmado", "confirm"}
)

// Fields merges extracted_data with the analysis custom data; analysis wins.
func (c VoiceCall) Fields() ExtractedFields {
	out := ExtractedFields{}
	for k, v := range c.ExtractedData {
		out[normKey(k)] = v
	}
	if c.CallAnalysis != nil {
		for k, v := range c.CallAnalysis.CustomAnalysis {
			out[normKey(k)] = v
		}
	}
	return out
}

// ExtractedFields is the loosely typed data the voice agent pulled from a call.
type ExtractedFields map[string]any

func normKey(k string) string {
	return strings.ToLower(strings.TrimSpace(k))
}

func (f ExtractedFields) lookup(aliases []string) (any, bool) {
	for _, a := range aliases {
		if v, ok := f[a]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func (f ExtractedFields) String(aliases []string) string {
	v, ok := f.lookup(aliases)
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

func (f ExtractedFields) Int(aliases []string) int {
	v, ok := f.lookup(aliases)
	if !ok {
		return 0
	}
	switch t := v.(type) {
	case float64:
		return int(t)
	case json.Number:
		n, _ := t.Int64()
		return int(n)
	case string:
		// "4 personas" -> 4
		fields := strings.Fields(t)
		if len(fields) == 0 {
			return 0
		}
		n, _ := strconv.Atoi(fields[0])
		return n
	default:
		return 0
	}
}

func (f ExtractedFields) Bool(aliases []string) bool {
	v, ok := f.lookup(aliases)
	if !ok {
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "yes", "si", "sí", "1":
			return true
		}
	case float64:
		return t != 0
	}
	return false
}

// Strings accepts either a list or a comma separated string.
func (f ExtractedFields) Strings(aliases []string) []string {
	v, ok := f.lookup(aliases)
	if !ok {
		return nil
	}
	var out []string
	switch t := v.(type) {
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
	case string:
		for _, s := range strings.Split(t, ",") {
			if strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
	}
	return out
}

// Intent defaults to a reservation unless the agent marked the call as a cancellation.
func (f ExtractedFields) Intent() string {
	switch strings.ToLower(f.String(aliasIntent)) {
	case "cancel", "cancelar", "cancelacion", "cancelación", "cancellation":
		return VoiceIntentCancel
	default:
		return VoiceIntentReserve
	}
}

// ToCreateReservation normalises the call data; the caller's number fills in a missing phone.
func (f ExtractedFields) ToCreateReservation(fromNumber string) CreateReservationRequest {
	req := CreateReservationRequest{
		ClientName:   f.String(aliasName),
		ClientPhone:  f.String(aliasPhone),
		PartySize:    f.Int(aliasParty),
		Date:         f.String(aliasDate),
		Time:         f.String(aliasTime),
		SpecialNeeds: f.Strings(aliasNeeds),
		Source:       "phone-call",
	}
	if req.ClientPhone == "" {
		req.ClientPhone = fromNumber
	}
	if loc := f.String(aliasLocation); loc != "" {
		req.Location = &loc
	}
	if notes := f.String(aliasNotes); notes != "" {
		req.Notes = &notes
	}
	return req
}

func (f ExtractedFields) ToCancelReservation(fromNumber string) CancelReservationRequest {
	req := CancelReservationRequest{
		Phone:   f.String(aliasPhone),
		Name:    f.String(aliasName),
		Confirm: f.Bool(aliasConfirm),
	}
	if req.Phone == "" {
		req.Phone = fromNumber
	}
	if d := f.String(aliasDate); d != "" {
		req.Date = &d
	}
	return req
}

type CreateAgentRequest struct {
	Name       string `json:"name" binding:"required"`
	VoiceID    string `json:"voiceId" binding:"required"`
	Language   string `json:"language,omitempty"`
	WebhookURL string `json:"webhookUrl,omitempty"`
	Prompt     string `json:"prompt,omitempty"`
}

type StartCallRequest struct {
	AgentID    string `json:"agentId" binding:"required"`
	FromNumber string `json:"fromNumber" binding:"required"`
	ToNumber   string `json:"toNumber" binding:"required"`
}
