package api

import (
	"io"
	"net/http"

	reqdto "tablekeeper/internal/handler/dto/request"
	resdto "tablekeeper/internal/handler/dto/response"
	"tablekeeper/internal/handler/httperr"
	"tablekeeper/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

const (
	signatureHeader = "X-Retell-Signature"
	maxWebhookBody  = 1 << 20
)

type VoiceHandler struct {
	cmds commands.VoiceCommands
}

func NewVoiceHandler(cmds commands.VoiceCommands) *VoiceHandler {
	return &VoiceHandler{cmds: cmds}
}

// @Summary Voice provider webhook
// @Description Receives call events; analysed calls become reservations or cancellations
// @Tags voice
// @Accept json
// @Produce json
// @Param X-Retell-Signature header string true "Webhook signature"
// @Success 200 {object} resdto.VoiceWebhookResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /voice/webhook [post]
func (h *VoiceHandler) Webhook(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.cmds.HandleWebhook(c.Request.Context(), body, c.GetHeader(signatureHeader))
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromVoiceWebhookResult(result))
}

// @Summary Create voice agent
// @Tags voice
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateAgentRequest true "Agent"
// @Success 201 {object} resdto.AgentResponse
// @Failure 400 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /voice/agents [post]
func (h *VoiceHandler) CreateAgent(c *gin.Context) {
	var req reqdto.CreateAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	agent, err := h.cmds.CreateAgent(c.Request.Context(), req)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromAgent(agent))
}

// @Summary Update voice agent
// @Tags voice
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Agent ID"
// @Param request body reqdto.CreateAgentRequest true "Agent"
// @Success 200 {object} resdto.AgentResponse
// @Failure 400 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /voice/agents/{id} [put]
func (h *VoiceHandler) UpdateAgent(c *gin.Context) {
	var req reqdto.CreateAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	agent, err := h.cmds.UpdateAgent(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAgent(agent))
}

// @Summary Delete voice agent
// @Tags voice
// @Security BearerAuth
// @Param id path string true "Agent ID"
// @Success 204 "No Content"
// @Failure 503 {object} map[string]string
// @Router /voice/agents/{id} [delete]
func (h *VoiceHandler) DeleteAgent(c *gin.Context) {
	if err := h.cmds.DeleteAgent(c.Request.Context(), c.Param("id")); err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Start outbound call
// @Tags voice
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.StartCallRequest true "Call"
// @Success 201 {object} resdto.CallResponse
// @Failure 400 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /voice/calls [post]
func (h *VoiceHandler) StartCall(c *gin.Context) {
	var req reqdto.StartCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	call, err := h.cmds.StartCall(c.Request.Context(), req)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromCall(call))
}

// @Summary End call
// @Tags voice
// @Security BearerAuth
// @Param id path string true "Call ID"
// @Success 204 "No Content"
// @Failure 503 {object} map[string]string
// @Router /voice/calls/{id}/end [post]
func (h *VoiceHandler) EndCall(c *gin.Context) {
	if err := h.cmds.EndCall(c.Request.Context(), c.Param("id")); err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
