package pharmatrackserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	assistanthttpmapper "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/assistant/adapters/http/mapper"
	assistanttypes "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/assistant/application/types"
	assistantports "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/assistant/ports"
)

// AssistantAPI exposes the pharmacy chatbot.
type AssistantAPI struct {
	service assistantports.Service
}

func NewAssistantAPI(service assistantports.Service) AssistantAPI {
	return AssistantAPI{service: service}
}

// Post /v1/assistant/chat
func (api *AssistantAPI) Chat(c *gin.Context) {
	var payload assistanthttpmapper.Chat
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	reply, err := api.service.Chat(c.Request.Context(), assistanthttpmapper.ToChatInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, assistanthttpmapper.FromChatReply(reply))
}

// Post /v1/assistant/side-effects
func (api *AssistantAPI) SideEffects(c *gin.Context) {
	var payload assistanthttpmapper.SideEffects
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	reply, err := api.service.SideEffects(c.Request.Context(), assistanttypes.SideEffectsInput{MedicineName: payload.MedicineName})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, assistanthttpmapper.FromSideEffectsReply(reply))
}
