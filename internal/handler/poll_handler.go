package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"livepoll/internal/services"
	"livepoll/internal/transport/httpdto"
)

type PollHandler struct {
	polls *services.PollService
}

func NewPollHandler(polls *services.PollService) *PollHandler {
	return &PollHandler{polls: polls}
}

func (h *PollHandler) Create(c *gin.Context) {
	var req httpdto.CreatePollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_INPUT"))
		return
	}

	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid session id", "INVALID_INPUT"))
		return
	}

	created, err := h.polls.Create(c.Request.Context(), sessionID, req.Question, req.Options, req.DurationSeconds)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse(httpdto.FromPoll(created)))
}

func (h *PollHandler) Vote(c *gin.Context) {
	pollID, err := uuid.Parse(c.Param("pollId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid poll id", "INVALID_INPUT"))
		return
	}

	var req httpdto.CastVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.OptionIndex == nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_INPUT"))
		return
	}

	voterID, err := uuid.Parse(req.VoterID)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid voter id", "INVALID_INPUT"))
		return
	}

	updated, err := h.polls.CastVote(c.Request.Context(), pollID, voterID, *req.OptionIndex)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.FromPoll(updated)))
}

func (h *PollHandler) Close(c *gin.Context) {
	pollID, err := uuid.Parse(c.Param("pollId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid poll id", "INVALID_INPUT"))
		return
	}

	closed, err := h.polls.Close(c.Request.Context(), pollID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.FromPoll(closed)))
}

func (h *PollHandler) Results(c *gin.Context) {
	pollID, err := uuid.Parse(c.Param("pollId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid poll id", "INVALID_INPUT"))
		return
	}

	results, err := h.polls.Results(c.Request.Context(), pollID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.FromResults(results)))
}
