package commands

//go:generate mockgen -destination=../../../tests/mock/commands/voice.go -package=commandsmock tablekeeper/internal/usecase/commands VoiceCommands

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"tablekeeper/internal/domain/allocation"
	"tablekeeper/internal/domain/reservation"
	reqdto "tablekeeper/internal/handler/dto/request"
	"tablekeeper/internal/infra/voiceai"
	"tablekeeper/internal/pkg/errs"
)

var (
	ErrInvalidSignature = errs.New("invalid webhook signature")
	ErrInvalidPayload   = errs.New("invalid webhook payload")
)

// Webhook actions reported back to the provider.
const (
	VoiceActionIgnored          = "ignored"
	VoiceActionReserved         = "reserved"
	VoiceActionRejected         = "rejected"
	VoiceActionCancelPending    = "cancel_confirmation_required"
	VoiceActionCancelled        = "cancelled"
	VoiceActionAlreadyCancelled = "already_cancelled"
)

type VoiceWebhookResult struct {
	Event        string
	CallID       string
	Action       string
	Reservation  *reservation.Snapshot
	ErrorKind    ErrorKind
	Reason       string
	Alternatives []allocation.Alternative
}

// VoiceCommands is the adapter between the voice AI provider and the
// reservation engine. The engine never sees raw webhook payloads.
type VoiceCommands interface {
	HandleWebhook(ctx context.Context, body []byte, signature string) (*VoiceWebhookResult, error)
	CreateAgent(ctx context.Context, req reqdto.CreateAgentRequest) (voiceai.Agent, error)
	UpdateAgent(ctx context.Context, id string, req reqdto.CreateAgentRequest) (voiceai.Agent, error)
	DeleteAgent(ctx context.Context, id string) error
	StartCall(ctx context.Context, req reqdto.StartCallRequest) (voiceai.Call, error)
	EndCall(ctx context.Context, callID string) error
}

type voiceCommandsImpl struct {
	provider     voiceai.Provider
	reservations ReservationCommands
	logger       *slog.Logger
}

func NewVoiceCommands(provider voiceai.Provider, reservations ReservationCommands, logger *slog.Logger) VoiceCommands {
	return &voiceCommandsImpl{
		provider:     provider,
		reservations: reservations,
		logger:       logger,
	}
}

func (u *voiceCommandsImpl) HandleWebhook(ctx context.Context, body []byte, signature string) (*VoiceWebhookResult, error) {
	if err := u.provider.ValidateWebhook(ctx, body, signature); err != nil {
		if errors.Is(err, voiceai.ErrInvalidWebhook) {
			return nil, errs.Mark(err, ErrInvalidSignature)
		}
		return nil, providerError(err)
	}

	var payload reqdto.VoiceWebhookRequest
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, errs.Mark(err, ErrInvalidPayload)
	}
	if payload.Event == "" {
		return nil, errs.Mark(errs.New("missing event"), ErrInvalidPayload)
	}

	result := &VoiceWebhookResult{Event: payload.Event, CallID: payload.Call.CallID, Action: VoiceActionIgnored}
	if payload.Event != reqdto.VoiceEventCallAnalyzed {
		u.logger.Info("voice call event",
			slog.String("event", payload.Event),
			slog.String("call_id", payload.Call.CallID),
		)
		return result, nil
	}

	fields := payload.Call.Fields()
	switch fields.Intent() {
	case reqdto.VoiceIntentCancel:
		return u.cancelFromCall(ctx, result, fields.ToCancelReservation(payload.Call.FromNumber))
	default:
		return u.reserveFromCall(ctx, result, fields.ToCreateReservation(payload.Call.FromNumber))
	}
}

func (u *voiceCommandsImpl) reserveFromCall(ctx context.Context, result *VoiceWebhookResult, req reqdto.CreateReservationRequest) (*VoiceWebhookResult, error) {
	created, err := u.reservations.CreateReservation(ctx, req)
	if err != nil {
		var allocErr *AllocationError
		if !errors.As(err, &allocErr) {
			return nil, err
		}
		result.Action = VoiceActionRejected
		result.ErrorKind = allocErr.Kind
		result.Reason = allocErr.Error()
		result.Alternatives = allocErr.Alternatives
		u.logger.Info("voice reservation rejected",
			slog.String("call_id", result.CallID),
			slog.String("kind", string(allocErr.Kind)),
			slog.Int("alternatives", len(allocErr.Alternatives)),
		)
		return result, nil
	}
	result.Action = VoiceActionReserved
	result.Reservation = &created.Reservation
	return result, nil
}

func (u *voiceCommandsImpl) cancelFromCall(ctx context.Context, result *VoiceWebhookResult, req reqdto.CancelReservationRequest) (*VoiceWebhookResult, error) {
	cancelled, err := u.reservations.CancelReservation(ctx, req)
	switch {
	case errs.Is(err, ErrReservationNotFound):
		result.Action = VoiceActionRejected
		result.Reason = "reservation not found"
		return result, nil
	case errs.Is(err, ErrNotCancellable):
		result.Action = VoiceActionRejected
		result.Reason = "reservation can no longer be cancelled"
		return result, nil
	case errs.Is(err, ErrDomainValidation):
		result.Action = VoiceActionRejected
		result.ErrorKind = KindInvalidRequest
		result.Reason = err.Error()
		return result, nil
	case err != nil:
		return nil, err
	}

	snap := cancelled.Reservation
	result.Reservation = &snap
	switch cancelled.Outcome {
	case CancelConfirmationRequired:
		result.Action = VoiceActionCancelPending
	case CancelAlreadyCancelled:
		result.Action = VoiceActionAlreadyCancelled
	default:
		result.Action = VoiceActionCancelled
	}
	return result, nil
}

func (u *voiceCommandsImpl) CreateAgent(ctx context.Context, req reqdto.CreateAgentRequest) (voiceai.Agent, error) {
	agent, err := u.provider.CreateAgent(ctx, agentSpec(req))
	if err != nil {
		return voiceai.Agent{}, providerError(err)
	}
	return agent, nil
}

func (u *voiceCommandsImpl) UpdateAgent(ctx context.Context, id string, req reqdto.CreateAgentRequest) (voiceai.Agent, error) {
	agent, err := u.provider.UpdateAgent(ctx, id, agentSpec(req))
	if err != nil {
		return voiceai.Agent{}, providerError(err)
	}
	return agent, nil
}

func (u *voiceCommandsImpl) DeleteAgent(ctx context.Context, id string) error {
	return providerError(u.provider.DeleteAgent(ctx, id))
}

func (u *voiceCommandsImpl) StartCall(ctx context.Context, req reqdto.StartCallRequest) (voiceai.Call, error) {
	call, err := u.provider.StartCall(ctx, voiceai.CallRequest{
		AgentID:    req.AgentID,
		FromNumber: req.FromNumber,
		ToNumber:   req.ToNumber,
	})
	if err != nil {
		return voiceai.Call{}, providerError(err)
	}
	return call, nil
}

func (u *voiceCommandsImpl) EndCall(ctx context.Context, callID string) error {
	return providerError(u.provider.EndCall(ctx, callID))
}

func agentSpec(req reqdto.CreateAgentRequest) voiceai.AgentSpec {
	return voiceai.AgentSpec{
		Name:       req.Name,
		VoiceID:    req.VoiceID,
		Language:   req.Language,
		WebhookURL: req.WebhookURL,
		Prompt:     req.Prompt,
	}
}

// providerError passes breaker rejections through, marks input the provider
// refused as an invalid request and everything else as unavailable.
func providerError(err error) error {
	if err == nil || errs.Is(err, errs.ErrServiceUnavailable) {
		return err
	}
	var apiErr *voiceai.APIError
	if errors.As(err, &apiErr) && apiErr.ClientFault() {
		return errs.Mark(err, errs.ErrInvalidRequest)
	}
	return errs.Mark(err, errs.ErrServiceUnavailable)
}
