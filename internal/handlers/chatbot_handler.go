package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Pedrolamon/hairdayy-sub000/internal/chatbot"
	"github.com/Pedrolamon/hairdayy-sub000/internal/httperr"
	"github.com/Pedrolamon/hairdayy-sub000/internal/httpresp"
	"github.com/Pedrolamon/hairdayy-sub000/internal/logging"
	"github.com/Pedrolamon/hairdayy-sub000/internal/validators"
)

type ChatbotHandler struct {
	engine *chatbot.Engine
}

func NewChatbotHandler(engine *chatbot.Engine) *ChatbotHandler {
	return &ChatbotHandler{engine: engine}
}

type ChatbotWebhookRequest struct {
	BarberID uint   `json:"barber_id" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Message  string `json:"message" binding:"required"`
}

type ChatbotWebhookResponse struct {
	Reply string `json:"reply"`
}

// Webhook receives one inbound message and returns the next bot reply.
// Delivery back to the messaging channel is the integration's job.
func (h *ChatbotHandler) Webhook(c *gin.Context) {
	var req ChatbotWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	phone := validators.NormalizePhone(req.Phone)
	if !validators.IsPhoneValid(phone) {
		httperr.BadRequest(c, "invalid_phone", "Telefone inválido.")
		return
	}

	reply, err := h.engine.HandleMessage(c.Request.Context(), req.BarberID, phone, req.Message)
	if err != nil {
		logging.L().Error("chatbot message failed",
			zap.Uint("barber_id", req.BarberID),
			zap.Error(err),
		)
		httperr.Internal(c, "chatbot_failure", "Erro ao processar mensagem.")
		return
	}

	httpresp.OK(c, ChatbotWebhookResponse{Reply: reply})
}
