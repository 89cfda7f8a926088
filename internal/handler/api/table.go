package api

import (
	"net/http"

	"tablekeeper/internal/domain/table"
	resdto "tablekeeper/internal/handler/dto/response"
	"tablekeeper/internal/usecase/commands"
	"tablekeeper/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type TableHandler struct {
	cmds commands.TableCommands
	q    queries.TableQueries
}

func NewTableHandler(cmds commands.TableCommands, q queries.TableQueries) *TableHandler {
	return &TableHandler{cmds: cmds, q: q}
}

// @Summary Table board
// @Description Current state of every table with per-status counts
// @Tags tables
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.TableBoardResponse
// @Failure 401 {object} map[string]string
// @Router /tables [get]
func (h *TableHandler) Board(c *gin.Context) {
	board, err := h.q.Board(c.Request.Context())
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromTableBoard(board))
}

// @Summary Put table into maintenance
// @Tags tables
// @Produce json
// @Security BearerAuth
// @Param id path string true "Table ID"
// @Success 200 {object} resdto.TableResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /tables/{id}/maintenance [post]
func (h *TableHandler) SetMaintenance(c *gin.Context) {
	snap, err := h.cmds.SetMaintenance(c.Request.Context(), table.ID(c.Param("id")))
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromTableSnapshot(*snap))
}

// @Summary Return table to service
// @Tags tables
// @Produce json
// @Security BearerAuth
// @Param id path string true "Table ID"
// @Success 200 {object} resdto.TableResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /tables/{id}/maintenance [delete]
func (h *TableHandler) ReturnToService(c *gin.Context) {
	snap, err := h.cmds.ReturnToService(c.Request.Context(), table.ID(c.Param("id")))
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromTableSnapshot(*snap))
}
