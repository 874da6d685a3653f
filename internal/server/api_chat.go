package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/helmandshop/shop-api/internal/clients/http/openai"
	apierrors "github.com/helmandshop/shop-api/internal/shared/errors"
)

// ChatAPI proxies user messages to the chat-completions API under a fixed
// system prompt.
type ChatAPI struct {
	client       *openai.Client
	systemPrompt string
}

// NewChatAPI creates a ChatAPI backed by the provided client. A nil client
// means the assistant is not configured.
func NewChatAPI(client *openai.Client, systemPrompt string) ChatAPI {
	return ChatAPI{client: client, systemPrompt: systemPrompt}
}

type chatPayload struct {
	Message string `json:"message"`
}

// Post /chat
// Forward one message to the assistant and return its reply
func (api *ChatAPI) Chat(c *gin.Context) {
	var payload chatPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	if strings.TrimSpace(payload.Message) == "" {
		respondProblem(c, apierrors.ErrValidation.WithDetail("message is required"))
		return
	}
	if api.client == nil {
		respondProblem(c, apierrors.ProblemDetail{
			Type:   "/problems/service-unavailable",
			Title:  "Service Unavailable",
			Status: http.StatusServiceUnavailable,
			Detail: "chat assistant is not configured",
		})
		return
	}
	reply, err := api.client.Complete(c.Request.Context(), api.systemPrompt, payload.Message)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
