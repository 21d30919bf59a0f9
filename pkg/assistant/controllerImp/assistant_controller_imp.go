package controllerImp

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"airrvie/entities"
	"airrvie/pkg/ai"
	"airrvie/pkg/apperr"
	"airrvie/pkg/assistant/repository"
	"airrvie/pkg/middleware"
)

type AssistantCtrl struct {
	repo      repository.AssistantRepository
	responder ai.Responder
}

func New(repo repository.AssistantRepository, responder ai.Responder) *AssistantCtrl {
	return &AssistantCtrl{repo: repo, responder: responder}
}

type conversationReq struct {
	Context entities.JSONMap `json:"context"`
}

type messageReq struct {
	Content  string           `json:"content"`
	PlotID   *string          `json:"plot_id"`
	Metadata entities.JSONMap `json:"metadata"`
}

func messagePayload(m *entities.Message) map[string]any {
	return map[string]any{
		"id":        m.ID,
		"role":      m.Role,
		"content":   m.Content,
		"metadata":  m.Metadata,
		"createdAt": m.CreatedAt.Format(time.RFC3339),
	}
}

func (h *AssistantCtrl) ListConversations(c echo.Context) error {
	convs, err := h.repo.ListConversations(middleware.UID(c))
	if err != nil {
		return apperr.JSON(c, err)
	}
	out := make([]map[string]any, 0, len(convs))
	for i := range convs {
		cv := &convs[i]
		out = append(out, map[string]any{
			"id":        cv.ID,
			"startedAt": cv.StartedAt.Format(time.RFC3339),
			"context":   cv.Context,
			"createdAt": cv.CreatedAt.Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AssistantCtrl) CreateConversation(c echo.Context) error {
	var req conversationReq
	if err := c.Bind(&req); err != nil {
		return apperr.JSON(c, apperr.With(apperr.ErrInvalidInput, "bad json"))
	}
	if req.Context == nil {
		req.Context = entities.JSONMap{}
	}
	cv := &entities.Conversation{UserID: middleware.UID(c), Context: req.Context}
	if err := h.repo.CreateConversation(cv); err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]string{
		"id":      cv.ID,
		"message": "Conversation created successfully",
	})
}

func (h *AssistantCtrl) GetConversation(c echo.Context) error {
	cv, msgs, err := h.repo.FindConversation(c.Param("id"), middleware.UID(c))
	if err != nil {
		return apperr.JSON(c, err)
	}
	list := make([]map[string]any, 0, len(msgs))
	for i := range msgs {
		list = append(list, messagePayload(&msgs[i]))
	}
	return c.JSON(http.StatusOK, map[string]any{
		"id":        cv.ID,
		"startedAt": cv.StartedAt.Format(time.RFC3339),
		"context":   cv.Context,
		"messages":  list,
	})
}

// SendMessage stores the user's message, asks the responder for a reply and
// stores that too. Both halves come back in one payload.
func (h *AssistantCtrl) SendMessage(c echo.Context) error {
	uid := middleware.UID(c)
	var req messageReq
	if err := c.Bind(&req); err != nil {
		return apperr.JSON(c, apperr.With(apperr.ErrInvalidInput, "bad json"))
	}
	if strings.TrimSpace(req.Content) == "" {
		return apperr.JSON(c, apperr.With(apperr.ErrInvalidInput, "content is required"))
	}
	cv, _, err := h.repo.FindConversation(c.Param("id"), uid)
	if err != nil {
		return apperr.JSON(c, err)
	}
	if req.Metadata == nil {
		req.Metadata = entities.JSONMap{}
	}

	userMsg := &entities.Message{
		ConversationID: cv.ID,
		Role:           entities.MessageRoleUser,
		Content:        req.Content,
		Metadata:       req.Metadata,
	}
	if err := h.repo.AddMessage(userMsg); err != nil {
		return apperr.JSON(c, err)
	}

	var plot *ai.PlotContext
	if req.PlotID != nil && *req.PlotID != "" {
		if plot, err = h.repo.PlotContext(*req.PlotID, uid); err != nil {
			return apperr.JSON(c, err)
		}
	}
	reply, err := h.responder.Respond(req.Content, cv.Context, plot)
	if err != nil {
		return apperr.JSON(c, apperr.With(apperr.ErrUpstream, "assistant unavailable"))
	}

	botMsg := &entities.Message{
		ConversationID: cv.ID,
		Role:           entities.MessageRoleAssistant,
		Content:        reply.Content,
		Metadata:       reply.Metadata,
	}
	if err := h.repo.AddMessage(botMsg); err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"userMessage":      messagePayload(userMsg),
		"assistantMessage": messagePayload(botMsg),
	})
}

func (h *AssistantCtrl) DeleteConversation(c echo.Context) error {
	if err := h.repo.SoftDeleteConversation(c.Param("id"), middleware.UID(c)); err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Conversation deleted successfully"})
}

// Suggestions is the fixed starter-question list shown on the empty chat
// screen.
func (h *AssistantCtrl) Suggestions(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"suggestions": []map[string]string{
			{"id": "1", "question": "Tôi nên làm gì khi lúa bị vàng lá?", "category": "pest_disease"},
			{"id": "2", "question": "Khi nào nên bón phân cho lúa?", "category": "fertilizer"},
			{"id": "3", "question": "Làm thế nào để kiểm soát mực nước trong ruộng?", "category": "irrigation"},
			{"id": "4", "question": "Giống lúa nào phù hợp với vùng đất phù sa?", "category": "variety_selection"},
			{"id": "5", "question": "Cách phòng trừ sâu cuốn lá hiệu quả?", "category": "pest_control"},
		},
	})
}
