//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"tablekeeper/internal/domain/allocation"
	"tablekeeper/internal/domain/turn"
	"tablekeeper/internal/handler/api"
	reqdto "tablekeeper/internal/handler/dto/request"
	resdto "tablekeeper/internal/handler/dto/response"
	"tablekeeper/internal/infra/voiceai"
	"tablekeeper/internal/pkg/errs"
	"tablekeeper/internal/usecase/commands"
	"tablekeeper/tests/common/builder"
	"tablekeeper/tests/common/httptest"
	"tablekeeper/tests/common/testutil"
	commandsmock "tablekeeper/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type VoiceHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockVoiceCommands
}

func (s *VoiceHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockVoiceCommands(s.mockCtrl)
	h := api.NewVoiceHandler(s.mockCommands)

	s.router.POST("/voice/webhook", h.Webhook)
	s.router.POST("/voice/agents", fakeAuth(true), h.CreateAgent)
	s.router.PUT("/voice/agents/:id", fakeAuth(true), h.UpdateAgent)
	s.router.DELETE("/voice/agents/:id", fakeAuth(true), h.DeleteAgent)
	s.router.POST("/voice/calls", fakeAuth(true), h.StartCall)
	s.router.POST("/voice/calls/:id/end", fakeAuth(true), h.EndCall)
}

func (s *VoiceHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestVoiceHandlerSuite(t *testing.T) {
	suite.Run(t, new(VoiceHandlerTestSuite))
}

func (s *VoiceHandlerTestSuite) TestWebhook() {
	payload := []byte(`{"event":"call_analyzed","call":{"call_id":"call-1"}}`)
	headers := map[string]string{"X-Retell-Signature": "sig"}

	s.Run("success: forwards the raw body and signature", func() {
		snap := builder.NewReservationBuilder().BuildConfirmed(s.T(), "T1").Snapshot()
		s.mockCommands.EXPECT().HandleWebhook(gomock.Any(), payload, "sig").Return(&commands.VoiceWebhookResult{
			Event:       "call_analyzed",
			CallID:      "call-1",
			Action:      commands.VoiceActionReserved,
			Reservation: &snap,
		}, nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, "/voice/webhook", payload, headers)

		var body resdto.VoiceWebhookResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("reserved", body.Action)
		s.Require().NotNil(body.Reservation)
		s.Equal(snap.ID, body.Reservation.ID)
	})

	s.Run("success: rejection is reported with alternatives", func() {
		s.mockCommands.EXPECT().HandleWebhook(gomock.Any(), payload, "sig").Return(&commands.VoiceWebhookResult{
			Event:     "call_analyzed",
			CallID:    "call-1",
			Action:    commands.VoiceActionRejected,
			ErrorKind: commands.KindSlotMismatch,
			Alternatives: []allocation.Alternative{
				{Kind: allocation.AltShiftedTime, Date: "2026-05-02", Time: turn.MustParseClock("22:00"), PartySize: 4, Verified: true},
			},
		}, nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, "/voice/webhook", payload, headers)

		var body resdto.VoiceWebhookResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("SlotMismatch", body.ErrorKind)
		s.Require().Len(body.Alternatives, 1)
		s.Equal("22:00", body.Alternatives[0].Time)
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			err            error
			expectedStatus int
			expectedMsg    string
		}{
			{name: "bad signature", err: commands.ErrInvalidSignature, expectedStatus: http.StatusUnauthorized, expectedMsg: "Invalid signature"},
			{name: "malformed payload", err: commands.ErrInvalidPayload, expectedStatus: http.StatusBadRequest, expectedMsg: "Invalid request"},
			{name: "provider down", err: errs.Mark(errs.New("open"), errs.ErrServiceUnavailable), expectedStatus: http.StatusServiceUnavailable, expectedMsg: "Service unavailable"},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().HandleWebhook(gomock.Any(), payload, "sig").Return(nil, tc.err).Times(1)
				rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, "/voice/webhook", payload, headers)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

func (s *VoiceHandlerTestSuite) TestAgents() {
	req := reqdto.CreateAgentRequest{Name: "Recepción", VoiceID: "11labs-Adrian", Language: "es-ES"}
	agent := voiceai.Agent{ID: "agent-1", Name: "Recepción", VoiceID: "11labs-Adrian", Language: "es-ES"}

	s.Run("success: create returns 201", func() {
		s.mockCommands.EXPECT().CreateAgent(gomock.Any(), req).Return(agent, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/voice/agents", req, "manager-token")

		var body resdto.AgentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal("agent-1", body.ID)
	})

	s.Run("error: 400 when voiceId is missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/voice/agents",
			testutil.DtoMap(s.T(), req, testutil.Field("voiceId", nil)), "manager-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("success: update", func() {
		s.mockCommands.EXPECT().UpdateAgent(gomock.Any(), "agent-1", req).Return(agent, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/voice/agents/agent-1", req, "manager-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("success: delete returns 204", func() {
		s.mockCommands.EXPECT().DeleteAgent(gomock.Any(), "agent-1").Return(nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/voice/agents/agent-1", nil, "manager-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 400 when the provider rejects the agent", func() {
		s.mockCommands.EXPECT().CreateAgent(gomock.Any(), req).
			Return(voiceai.Agent{}, errs.Mark(errs.New("422"), errs.ErrInvalidRequest)).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/voice/agents", req, "manager-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})
}

func (s *VoiceHandlerTestSuite) TestCalls() {
	req := reqdto.StartCallRequest{AgentID: "agent-1", FromNumber: "+34911000000", ToNumber: "+34600123456"}

	s.Run("success: start returns the call", func() {
		s.mockCommands.EXPECT().StartCall(gomock.Any(), req).
			Return(voiceai.Call{ID: "call-9", AgentID: "agent-1", Status: "registered", StartedAt: 1777748400000}, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/voice/calls", req, "manager-token")

		var body resdto.CallResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal("call-9", body.ID)
		s.Require().NotNil(body.StartedAt)
	})

	s.Run("error: 503 when the breaker is open", func() {
		s.mockCommands.EXPECT().EndCall(gomock.Any(), "call-9").
			Return(errs.Mark(errs.New("breaker open"), errs.ErrServiceUnavailable)).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/voice/calls/call-9/end", nil, "manager-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusServiceUnavailable, "Service unavailable")
	})

	s.Run("success: end returns 204", func() {
		s.mockCommands.EXPECT().EndCall(gomock.Any(), "call-9").Return(nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/voice/calls/call-9/end", nil, "manager-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})
}
