//go:build unit

package commands_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"tablekeeper/internal/domain/allocation"
	"tablekeeper/internal/domain/reservation"
	"tablekeeper/internal/domain/turn"
	reqdto "tablekeeper/internal/handler/dto/request"
	"tablekeeper/internal/infra/voiceai"
	"tablekeeper/internal/pkg/breaker"
	"tablekeeper/internal/pkg/errs"
	"tablekeeper/internal/pkg/ptr"
	"tablekeeper/internal/usecase/commands"
	commandsmock "tablekeeper/tests/mock/commands"
	voiceaimock "tablekeeper/tests/mock/voiceai"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const reserveCallBody = `{
  "event": "call_analyzed",
  "call": {
    "call_id": "call_123",
    "agent_id": "agent_1",
    "from_number": "+34 611 000 111",
    "extracted_data": {"Nombre": "Ana López", "personas": 1},
    "call_analysis": {
      "call_summary": "Reserva para cenar",
      "custom_analysis_data": {
        "personas": "4 personas",
        "fecha": "2026-05-02",
        "hora": "9 de la noche",
        "zona": "terraza",
        "necesidades": "trona, alergia"
      },
      "call_successful": true
    }
  }
}`

const cancelCallBody = `{
  "event": "call_analyzed",
  "call": {
    "call_id": "call_456",
    "from_number": "+34 611 000 111",
    "extracted_data": {"intent": "cancelar", "nombre": "Ana", "confirmado": "sí"}
  }
}`

type VoiceCommandsTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	provider     *voiceaimock.MockProvider
	reservations *commandsmock.MockReservationCommands
	uc           commands.VoiceCommands
	ctx          context.Context
}

func (s *VoiceCommandsTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.provider = voiceaimock.NewMockProvider(s.ctrl)
	s.reservations = commandsmock.NewMockReservationCommands(s.ctrl)
	s.uc = commands.NewVoiceCommands(s.provider, s.reservations, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.ctx = context.Background()
}

func (s *VoiceCommandsTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestVoiceCommandsTestSuite(t *testing.T) {
	suite.Run(t, new(VoiceCommandsTestSuite))
}

func (s *VoiceCommandsTestSuite) TestHandleWebhook_Reserve() {
	s.Run("analysed call becomes a reservation", func() {
		s.SetupTest()
		body := []byte(reserveCallBody)
		id := uuid.New()
		s.provider.EXPECT().ValidateWebhook(gomock.Any(), body, "sig").Return(nil)
		s.reservations.EXPECT().CreateReservation(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req reqdto.CreateReservationRequest) (*commands.CreateReservationResult, error) {
				want := reqdto.CreateReservationRequest{
					ClientName:   "Ana López",
					ClientPhone:  "+34 611 000 111",
					PartySize:    4,
					Date:         "2026-05-02",
					Time:         "9 de la noche",
					Location:     ptr.Of("terraza"),
					SpecialNeeds: []string{"trona", "alergia"},
					Source:       "phone-call",
				}
				s.Empty(cmp.Diff(want, req))
				return &commands.CreateReservationResult{
					Success:     true,
					Reservation: reservation.Snapshot{ID: id, Status: reservation.StatusConfirmed},
				}, nil
			})

		result, err := s.uc.HandleWebhook(s.ctx, body, "sig")

		s.Require().NoError(err)
		s.Equal(commands.VoiceActionReserved, result.Action)
		s.Equal("call_123", result.CallID)
		s.Require().NotNil(result.Reservation)
		s.Equal(id, result.Reservation.ID)
	})

	s.Run("allocation failure is reported back with alternatives", func() {
		s.SetupTest()
		body := []byte(reserveCallBody)
		alts := []allocation.Alternative{{Kind: allocation.AltShiftedTime, Date: "2026-05-02", Time: turn.MustParseClock("22:00"), PartySize: 4}}
		s.provider.EXPECT().ValidateWebhook(gomock.Any(), body, "sig").Return(nil)
		s.reservations.EXPECT().CreateReservation(gomock.Any(), gomock.Any()).
			Return(nil, &commands.AllocationError{Kind: commands.KindSlotMismatch, Alternatives: alts})

		result, err := s.uc.HandleWebhook(s.ctx, body, "sig")

		s.Require().NoError(err)
		s.Equal(commands.VoiceActionRejected, result.Action)
		s.Equal(commands.KindSlotMismatch, result.ErrorKind)
		s.Equal(alts, result.Alternatives)
		s.Nil(result.Reservation)
	})

	s.Run("engine failure propagates", func() {
		s.SetupTest()
		body := []byte(reserveCallBody)
		s.provider.EXPECT().ValidateWebhook(gomock.Any(), body, "sig").Return(nil)
		s.reservations.EXPECT().CreateReservation(gomock.Any(), gomock.Any()).Return(nil, commands.ErrEngineClosed)

		_, err := s.uc.HandleWebhook(s.ctx, body, "sig")

		s.True(errs.Is(err, commands.ErrEngineClosed))
	})
}

func (s *VoiceCommandsTestSuite) TestHandleWebhook_Cancel() {
	tests := []struct {
		name       string
		result     *commands.CancelReservationResult
		err        error
		wantAction string
	}{
		{
			name:       "confirmed cancellation",
			result:     &commands.CancelReservationResult{Success: true, Outcome: commands.CancelCommitted, TableReleased: true},
			wantAction: commands.VoiceActionCancelled,
		},
		{
			name:       "already cancelled",
			result:     &commands.CancelReservationResult{Outcome: commands.CancelAlreadyCancelled},
			wantAction: commands.VoiceActionAlreadyCancelled,
		},
		{
			name:       "nothing to cancel",
			err:        commands.ErrReservationNotFound,
			wantAction: commands.VoiceActionRejected,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			body := []byte(cancelCallBody)
			s.provider.EXPECT().ValidateWebhook(gomock.Any(), body, "sig").Return(nil)
			s.reservations.EXPECT().CancelReservation(gomock.Any(), reqdto.CancelReservationRequest{
				Phone:   "+34 611 000 111",
				Name:    "Ana",
				Confirm: true,
			}).Return(tt.result, tt.err)

			result, err := s.uc.HandleWebhook(s.ctx, body, "sig")

			s.Require().NoError(err)
			s.Equal(tt.wantAction, result.Action)
		})
	}
}

func (s *VoiceCommandsTestSuite) TestHandleWebhook_Rejections() {
	s.Run("bad signature", func() {
		s.SetupTest()
		s.provider.EXPECT().ValidateWebhook(gomock.Any(), gomock.Any(), "forged").Return(voiceai.ErrInvalidWebhook)

		_, err := s.uc.HandleWebhook(s.ctx, []byte(reserveCallBody), "forged")

		s.True(errs.Is(err, commands.ErrInvalidSignature))
	})

	s.Run("provider circuit open", func() {
		s.SetupTest()
		s.provider.EXPECT().ValidateWebhook(gomock.Any(), gomock.Any(), gomock.Any()).Return(breaker.ErrOpen)

		_, err := s.uc.HandleWebhook(s.ctx, []byte(reserveCallBody), "sig")

		s.True(errs.Is(err, errs.ErrServiceUnavailable))
	})

	s.Run("malformed body", func() {
		s.SetupTest()
		s.provider.EXPECT().ValidateWebhook(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		_, err := s.uc.HandleWebhook(s.ctx, []byte(`{"event":`), "sig")

		s.True(errs.Is(err, commands.ErrInvalidPayload))
	})

	s.Run("lifecycle events are acknowledged only", func() {
		s.SetupTest()
		body := []byte(`{"event":"call_started","call":{"call_id":"call_9"}}`)
		s.provider.EXPECT().ValidateWebhook(gomock.Any(), body, "sig").Return(nil)

		result, err := s.uc.HandleWebhook(s.ctx, body, "sig")

		s.Require().NoError(err)
		s.Equal(commands.VoiceActionIgnored, result.Action)
		s.Equal("call_9", result.CallID)
	})
}

func (s *VoiceCommandsTestSuite) TestProviderErrors() {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "refused input", err: &voiceai.APIError{StatusCode: http.StatusUnprocessableEntity}, want: errs.ErrInvalidRequest},
		{name: "provider outage", err: &voiceai.APIError{StatusCode: http.StatusBadGateway}, want: errs.ErrServiceUnavailable},
		{name: "rate limited", err: &voiceai.APIError{StatusCode: http.StatusTooManyRequests}, want: errs.ErrServiceUnavailable},
		{name: "network failure", err: errors.New("dial tcp: connection refused"), want: errs.ErrServiceUnavailable},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			s.provider.EXPECT().CreateAgent(gomock.Any(), voiceai.AgentSpec{Name: "Recepción", VoiceID: "v1"}).Return(voiceai.Agent{}, tt.err)

			_, err := s.uc.CreateAgent(s.ctx, reqdto.CreateAgentRequest{Name: "Recepción", VoiceID: "v1"})

			s.True(errs.Is(err, tt.want), "got %v", err)
		})
	}

	s.Run("end call passes through on success", func() {
		s.SetupTest()
		s.provider.EXPECT().EndCall(gomock.Any(), "call_1").Return(nil)

		s.NoError(s.uc.EndCall(s.ctx, "call_1"))
	})
}
