package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/legallink/backend/internal/domain/assistant"
	"github.com/legallink/backend/internal/domain/directory"
)

// fakeLLM returns canned outputs: the first call answers the classify
// prompt, later calls answer the respond prompt
type fakeLLM struct {
	intent      string
	reply       string
	classifyErr error
	respondErr  error
	prompts     []string
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if strings.Contains(prompt, "intent classifier") {
		if f.classifyErr != nil {
			return "", f.classifyErr
		}
		return f.intent, nil
	}
	if f.respondErr != nil {
		return "", f.respondErr
	}
	return f.reply, nil
}

type fakeRetriever struct {
	entries []*assistant.KnowledgeEntry
	err     error
	calls   int
}

func (f *fakeRetriever) Retrieve(ctx context.Context, query string, topK int) ([]*assistant.KnowledgeEntry, error) {
	f.calls++
	return f.entries, f.err
}

type fakeMatcher struct {
	matches []directory.Match
	err     error
	lastReq directory.MatchRequest
	calls   int
}

func (f *fakeMatcher) Match(ctx context.Context, req directory.MatchRequest) ([]directory.Match, error) {
	f.calls++
	f.lastReq = req
	return f.matches, f.err
}

func knowledgeEntry(t *testing.T, topic, body string) *assistant.KnowledgeEntry {
	t.Helper()
	entry, err := assistant.NewKnowledgeEntry(topic, "IN", body, nil)
	require.NoError(t, err)
	return entry
}

func listableAdvocate(t *testing.T) *directory.Advocate {
	t.Helper()
	advocate, err := directory.NewAdvocate(uuid.New(), "MH/1234/2015", "Mumbai", "Maharashtra",
		[]directory.Specialization{directory.SpecializationProperty})
	require.NoError(t, err)
	return advocate
}

func newTestPipeline(t *testing.T, llm *fakeLLM, retriever *fakeRetriever, matcher *fakeMatcher) *GraphPipeline {
	t.Helper()
	p, err := NewGraphPipeline(llm, retriever, matcher, 4, zap.NewNop())
	require.NoError(t, err)
	return p
}

func newSession(t *testing.T) *assistant.ChatSession {
	t.Helper()
	session, err := assistant.NewChatSession(uuid.New())
	require.NoError(t, err)
	return session
}

func TestGraphPipeline_LegalQuery(t *testing.T) {
	llm := &fakeLLM{intent: "legal_query", reply: "You can file a complaint with the rent authority."}
	retriever := &fakeRetriever{entries: []*assistant.KnowledgeEntry{
		knowledgeEntry(t, "Tenant rights", "A landlord must return the deposit within a reasonable period."),
	}}
	matcher := &fakeMatcher{}
	pipeline := newTestPipeline(t, llm, retriever, matcher)

	result, err := pipeline.Run(context.Background(), newSession(t), "My landlord kept my deposit, what can I do?")
	require.NoError(t, err)

	assert.Equal(t, assistant.IntentLegalQuery, result.Intent)
	assert.Equal(t, "You can file a complaint with the rent authority.", result.Reply)
	assert.Empty(t, result.Recommendations)
	assert.Equal(t, 1, retriever.calls)
	assert.Zero(t, matcher.calls)

	// The respond prompt carries the retrieved passage
	respondPrompt := llm.prompts[len(llm.prompts)-1]
	assert.Contains(t, respondPrompt, "Tenant rights")
}

func TestGraphPipeline_SmalltalkSkipsRetrieval(t *testing.T) {
	llm := &fakeLLM{intent: "smalltalk", reply: "Hello! How can I help you today?"}
	retriever := &fakeRetriever{}
	pipeline := newTestPipeline(t, llm, retriever, &fakeMatcher{})

	result, err := pipeline.Run(context.Background(), newSession(t), "hi there")
	require.NoError(t, err)

	assert.Equal(t, assistant.IntentSmalltalk, result.Intent)
	assert.Zero(t, retriever.calls)
}

func TestGraphPipeline_AdvocateSearchAttachesRecommendations(t *testing.T) {
	llm := &fakeLLM{intent: "advocate_search", reply: "Here are some property advocates near you."}
	matcher := &fakeMatcher{matches: []directory.Match{{Advocate: listableAdvocate(t)}}}
	pipeline := newTestPipeline(t, llm, &fakeRetriever{}, matcher)

	result, err := pipeline.Run(context.Background(), newSession(t), "I need a lawyer for a landlord eviction case")
	require.NoError(t, err)

	assert.Equal(t, assistant.IntentAdvocateSearch, result.Intent)
	require.Len(t, result.Recommendations, 1)
	assert.Equal(t, 1, matcher.calls)
	assert.Equal(t, directory.SpecializationProperty, matcher.lastReq.Specialization)
	assert.Equal(t, recommendationLimit, matcher.lastReq.Limit)
}

func TestGraphPipeline_MatcherFailureDegrades(t *testing.T) {
	llm := &fakeLLM{intent: "advocate_search", reply: "Here is some guidance."}
	matcher := &fakeMatcher{err: errors.New("db down")}
	pipeline := newTestPipeline(t, llm, &fakeRetriever{}, matcher)

	result, err := pipeline.Run(context.Background(), newSession(t), "find me an advocate")
	require.NoError(t, err)
	assert.Empty(t, result.Recommendations)
	assert.NotEmpty(t, result.Reply)
}

func TestGraphPipeline_RetrievalFailureDegrades(t *testing.T) {
	llm := &fakeLLM{intent: "legal_query", reply: "General guidance."}
	retriever := &fakeRetriever{err: errors.New("query timeout")}
	pipeline := newTestPipeline(t, llm, retriever, &fakeMatcher{})

	result, err := pipeline.Run(context.Background(), newSession(t), "what are my rights?")
	require.NoError(t, err)
	assert.Equal(t, "General guidance.", result.Reply)
}

func TestGraphPipeline_ClassifyFailureFallsBackToHeuristic(t *testing.T) {
	llm := &fakeLLM{classifyErr: errors.New("model cold"), reply: "Stay calm and ask for the grounds of arrest."}
	pipeline := newTestPipeline(t, llm, &fakeRetriever{}, &fakeMatcher{})

	result, err := pipeline.Run(context.Background(), newSession(t), "my brother was just detained by police")
	require.NoError(t, err)
	assert.Equal(t, assistant.IntentEmergency, result.Intent)
}

func TestGraphPipeline_RespondFailureFailsTurn(t *testing.T) {
	llm := &fakeLLM{intent: "legal_query", respondErr: errors.New("timeout")}
	pipeline := newTestPipeline(t, llm, &fakeRetriever{}, &fakeMatcher{})

	_, err := pipeline.Run(context.Background(), newSession(t), "what are my rights?")
	assert.Error(t, err)
}

func TestGraphPipeline_HistoryInPrompt(t *testing.T) {
	llm := &fakeLLM{intent: "legal_query", reply: "As mentioned, file the complaint first."}
	pipeline := newTestPipeline(t, llm, &fakeRetriever{}, &fakeMatcher{})

	session := newSession(t)
	session.Append(assistant.RoleUser, "my landlord kept my deposit")
	session.Append(assistant.RoleAssistant, "You can send a legal notice first.")

	_, err := pipeline.Run(context.Background(), session, "and if he ignores the notice?")
	require.NoError(t, err)

	respondPrompt := llm.prompts[len(llm.prompts)-1]
	assert.Contains(t, respondPrompt, "legal notice")
}

func TestParseIntent(t *testing.T) {
	tests := []struct {
		output string
		want   assistant.Intent
	}{
		{"legal_query", assistant.IntentLegalQuery},
		{" Advocate_Search \n", assistant.IntentAdvocateSearch},
		{"The intent is: emergency.", assistant.IntentEmergency},
		{"smalltalk", assistant.IntentSmalltalk},
		{"appointment", assistant.IntentAppointment},
		{"no idea", assistant.IntentLegalQuery},
		{"", assistant.IntentLegalQuery},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseIntent(tt.output), "output %q", tt.output)
	}
}

func TestHeuristicIntent(t *testing.T) {
	assert.Equal(t, assistant.IntentEmergency, heuristicIntent("I might be under ARREST"))
	assert.Equal(t, assistant.IntentAdvocateSearch, heuristicIntent("I need a lawyer in Pune"))
	assert.Equal(t, assistant.IntentAppointment, heuristicIntent("can I book a consultation slot"))
	assert.Equal(t, assistant.IntentSmalltalk, heuristicIntent("hello!"))
	assert.Equal(t, assistant.IntentLegalQuery, heuristicIntent("is a verbal agreement binding?"))
}

func TestInferSpecialization(t *testing.T) {
	assert.Equal(t, directory.SpecializationFamily, inferSpecialization("I want a divorce"))
	assert.Equal(t, directory.SpecializationCriminal, inferSpecialization("how do I apply for bail"))
	assert.Equal(t, directory.SpecializationProperty, inferSpecialization("my LANDLORD is evicting me"))
	assert.Equal(t, directory.SpecializationCivil, inferSpecialization("some general issue"))
}
