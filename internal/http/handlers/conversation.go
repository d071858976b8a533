package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lovishduggal/brainwave-backend/internal/http/response"
	"github.com/lovishduggal/brainwave-backend/internal/pkg/dbctx"
	"github.com/lovishduggal/brainwave-backend/internal/platform/ctxutil"
	"github.com/lovishduggal/brainwave-backend/internal/services"
)

type ConversationHandler struct {
	conv *services.ConversationService
}

func NewConversationHandler(conv *services.ConversationService) *ConversationHandler {
	return &ConversationHandler{conv: conv}
}

func ownerID(c *gin.Context) (string, bool) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.OwnerID == "" {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("missing identity"))
		return "", false
	}
	return rd.OwnerID, true
}

type createChatReq struct {
	Text string `json:"text"`
}

// POST /api/chats
func (h *ConversationHandler) CreateChat(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	var req createChatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	res, err := h.conv.Start(dbc, owner, req.Text)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{
		"conversation_id": res.ConversationID,
		"title":           res.Title,
		"index_pending":   res.IndexPending,
	})
}

// GET /api/userchats
func (h *ConversationHandler) GetUserChats(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	entries, err := h.conv.ListIndex(dbc, owner)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"chats": entries})
}

// GET /api/chats/:id
func (h *ConversationHandler) GetChat(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_conversation_id", err)
		return
	}
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	conv, err := h.conv.Get(dbc, id, owner)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, conv)
}

type updateChatReq struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Img      string `json:"img"`
}

// PUT /api/chats/:id
func (h *ConversationHandler) UpdateChat(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_conversation_id", err)
		return
	}
	var req updateChatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	rows, err := h.conv.Append(dbc, id, owner, req.Question, req.Answer, req.Img)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"modified_count": rows})
}
