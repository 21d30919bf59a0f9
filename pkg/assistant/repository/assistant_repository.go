package repository

import (
	"airrvie/entities"
	"airrvie/pkg/ai"
)

type AssistantRepository interface {
	ListConversations(userID string) ([]entities.Conversation, error)
	CreateConversation(cv *entities.Conversation) error
	// FindConversation returns the conversation and its messages ordered
	// oldest first. A foreign or deleted conversation is not found.
	FindConversation(conversationID, userID string) (*entities.Conversation, []entities.Message, error)
	AddMessage(m *entities.Message) error
	SoftDeleteConversation(conversationID, userID string) error
	// PlotContext fetches the plot summary used to ground a reply. A plot
	// outside the caller's ownership chain yields (nil, nil).
	PlotContext(plotID, userID string) (*ai.PlotContext, error)
}
