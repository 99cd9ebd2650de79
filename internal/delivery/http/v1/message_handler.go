package v1

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"recruitment-platform/internal/authz"
	"recruitment-platform/internal/delivery/http/response"
	"recruitment-platform/internal/domain"
	"recruitment-platform/pkg/apperror"
)

const maxMessageBody = 16 << 10

type MessageHandler struct {
	messageUC domain.MessageUsecase
}

func NewMessageHandler(r *gin.RouterGroup, messageUC domain.MessageUsecase, gate Gate) {
	handler := &MessageHandler{messageUC: messageUC}

	messages := r.Group("/messages")
	{
		messages.GET("/with/:userId", gate(authz.OpMessageRead), handler.GetConversation)
		messages.POST("/send/:userId", gate(authz.OpMessageSend), handler.Send)
		messages.GET("/conversations", gate(authz.OpMessageRead), handler.ListConversations)
	}
}

type SendMessageRequest struct {
	Content string `json:"content"`
}

// readContent accepts {"content": "..."} or a raw text body.
func readContent(c *gin.Context) (string, error) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxMessageBody))
	if err != nil {
		return "", apperror.New(http.StatusBadRequest, "Invalid request body", err)
	}
	if strings.HasPrefix(c.ContentType(), "application/json") {
		var req SendMessageRequest
		if err := json.Unmarshal(body, &req); err != nil {
			return "", apperror.New(http.StatusBadRequest, "Invalid request body", err)
		}
		return req.Content, nil
	}
	return string(body), nil
}

// GetConversation godoc
// @Summary      Conversation with a user
// @Description  Messages sent to the user followed by messages received from them
// @Tags         messages
// @Produce      json
// @Param        userId  path      int  true  "Other user ID"
// @Success      200     {object}  response.Response{data=[]domain.Message}
// @Failure      404     {object}  response.Response
// @Router       /messages/with/{userId} [get]
// @Security     BearerAuth
func (h *MessageHandler) GetConversation(c *gin.Context) {
	who, ok := identity(c)
	if !ok {
		return
	}
	otherID, ok := parseID(c, "userId")
	if !ok {
		return
	}

	msgs, err := h.messageUC.GetConversation(c.Request.Context(), who, otherID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Conversation", msgs)
}

// SendMessage godoc
// @Summary      Send a message
// @Description  Persist a message and push it to the receiver's open chat sockets
// @Tags         messages
// @Accept       json
// @Accept       plain
// @Produce      json
// @Param        userId   path      int                 true  "Receiver ID"
// @Param        message  body      SendMessageRequest  true  "Message"
// @Success      201      {object}  response.Response{data=domain.Message}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /messages/send/{userId} [post]
// @Security     BearerAuth
func (h *MessageHandler) Send(c *gin.Context) {
	who, ok := identity(c)
	if !ok {
		return
	}
	receiverID, ok := parseID(c, "userId")
	if !ok {
		return
	}

	content, err := readContent(c)
	if err != nil {
		c.Error(err)
		return
	}

	msg, err := h.messageUC.Send(c.Request.Context(), who, receiverID, content)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Message sent", msg)
}

// ListConversations godoc
// @Summary      List conversations
// @Description  One entry per counterpart with the latest message
// @Tags         messages
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Conversation}
// @Router       /messages/conversations [get]
// @Security     BearerAuth
func (h *MessageHandler) ListConversations(c *gin.Context) {
	who, ok := identity(c)
	if !ok {
		return
	}
	convs, err := h.messageUC.ListConversations(c.Request.Context(), who)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Conversations", convs)
}
