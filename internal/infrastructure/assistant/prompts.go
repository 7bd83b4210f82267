package assistant

import (
	"fmt"
	"strings"

	"github.com/legallink/backend/internal/domain/assistant"
)

const classifyPromptTemplate = `You are an intent classifier for a legal assistance platform in India.
Classify the user message into exactly one of these intents:

- legal_query: a question about rights, procedures or legal situations
- advocate_search: the user wants to find or hire a lawyer
- appointment: the user wants to book, change or ask about a consultation
- emergency: the user is in immediate danger or facing arrest right now
- smalltalk: greetings, thanks or chit-chat with no legal content

Reply with the intent label only, nothing else.

User message: %s`

const respondPromptTemplate = `You are a legal information assistant for LegalLink, a platform connecting people in India with verified advocates.
Give clear, practical guidance in plain language. You provide general legal information, not legal advice; encourage the user to consult a verified advocate for their specific situation.
%s
User message: %s

Answer:`

const emergencyGuidance = `
The user may be in an emergency. Lead with immediate, concrete steps (police 112, women's helpline 181, legal aid via NALSA 15100) before anything else.
`

// buildClassifyPrompt renders the intent-classification prompt
func buildClassifyPrompt(message string) string {
	return fmt.Sprintf(classifyPromptTemplate, message)
}

// buildRespondPrompt renders the answer prompt with retrieved passages
// and the rolling session history
func buildRespondPrompt(intent assistant.Intent, history []assistant.Turn, passages []*assistant.KnowledgeEntry, message string) string {
	var context string
	if len(passages) > 0 {
		var b strings.Builder
		b.WriteString("\nRelevant reference material:\n")
		for _, passage := range passages {
			fmt.Fprintf(&b, "- [%s] %s\n", passage.Topic, passage.Body)
		}
		context = b.String()
	}

	var conversation string
	if len(history) > 0 {
		var b strings.Builder
		b.WriteString("\nConversation so far:\n")
		for _, turn := range history {
			fmt.Fprintf(&b, "%s: %s\n", turn.Role, turn.Content)
		}
		conversation = b.String()
	}

	extra := context + conversation
	if intent == assistant.IntentEmergency {
		extra = emergencyGuidance + extra
	}

	return fmt.Sprintf(respondPromptTemplate, extra, message)
}

// parseIntent maps the classifier's output onto a known intent,
// tolerating extra words and casing. Unknown output falls back to
// legal_query.
func parseIntent(output string) assistant.Intent {
	normalized := strings.ToLower(strings.TrimSpace(output))

	for _, intent := range []assistant.Intent{
		assistant.IntentAdvocateSearch,
		assistant.IntentAppointment,
		assistant.IntentEmergency,
		assistant.IntentSmalltalk,
		assistant.IntentLegalQuery,
	} {
		if strings.Contains(normalized, string(intent)) {
			return intent
		}
	}
	return assistant.IntentLegalQuery
}
