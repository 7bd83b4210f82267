package models

import (
	"github.com/google/uuid"

	"github.com/legallink/backend/internal/domain/assistant"
)

// ChatMessageModel is the persistence model for the ChatMessage domain
// entity. It is the durable transcript behind the cached session.
type ChatMessageModel struct {
	BaseModel
	SessionID uuid.UUID             `gorm:"type:uuid;not null;index:idx_chat_messages_session_time,priority:1"`
	UserID    uuid.UUID             `gorm:"type:uuid;not null;index:idx_chat_messages_user"`
	Role      assistant.MessageRole `gorm:"type:varchar(20);not null"`
	Content   string                `gorm:"type:varchar(4000);not null"`
	Intent    assistant.Intent      `gorm:"type:varchar(30)"`
}

// TableName returns the table name for GORM
func (ChatMessageModel) TableName() string {
	return "chat_messages"
}

// ToDomain converts the persistence model to a domain ChatMessage entity.
func (m *ChatMessageModel) ToDomain() *assistant.ChatMessage {
	return &assistant.ChatMessage{
		BaseEntity: m.ToBaseEntity(),
		SessionID:  m.SessionID,
		UserID:     m.UserID,
		Role:       m.Role,
		Content:    m.Content,
		Intent:     m.Intent,
	}
}

// FromDomain populates the persistence model from a domain ChatMessage entity.
func (m *ChatMessageModel) FromDomain(msg *assistant.ChatMessage) {
	m.FromBaseEntity(msg.BaseEntity)
	m.SessionID = msg.SessionID
	m.UserID = msg.UserID
	m.Role = msg.Role
	m.Content = msg.Content
	m.Intent = msg.Intent
}

// ChatMessageModelFromDomain creates a new persistence model from a domain ChatMessage entity.
func ChatMessageModelFromDomain(msg *assistant.ChatMessage) *ChatMessageModel {
	m := &ChatMessageModel{}
	m.FromDomain(msg)
	return m
}

// KnowledgeEntryModel is the persistence model for the KnowledgeEntry
// domain entity. Retrieval ranks on keyword hits over topic, tags and
// body.
type KnowledgeEntryModel struct {
	BaseModel
	Topic        string   `gorm:"type:varchar(200);not null;index"`
	Jurisdiction string   `gorm:"type:varchar(100);index"`
	Tags         []string `gorm:"type:jsonb;serializer:json"`
	Body         string   `gorm:"type:text;not null"`
}

// TableName returns the table name for GORM
func (KnowledgeEntryModel) TableName() string {
	return "knowledge_entries"
}

// ToDomain converts the persistence model to a domain KnowledgeEntry entity.
func (m *KnowledgeEntryModel) ToDomain() *assistant.KnowledgeEntry {
	return &assistant.KnowledgeEntry{
		BaseEntity:   m.ToBaseEntity(),
		Topic:        m.Topic,
		Jurisdiction: m.Jurisdiction,
		Tags:         m.Tags,
		Body:         m.Body,
	}
}

// FromDomain populates the persistence model from a domain KnowledgeEntry entity.
func (m *KnowledgeEntryModel) FromDomain(e *assistant.KnowledgeEntry) {
	m.FromBaseEntity(e.BaseEntity)
	m.Topic = e.Topic
	m.Jurisdiction = e.Jurisdiction
	m.Tags = e.Tags
	m.Body = e.Body
}

// KnowledgeEntryModelFromDomain creates a new persistence model from a domain KnowledgeEntry entity.
func KnowledgeEntryModelFromDomain(e *assistant.KnowledgeEntry) *KnowledgeEntryModel {
	m := &KnowledgeEntryModel{}
	m.FromDomain(e)
	return m
}
