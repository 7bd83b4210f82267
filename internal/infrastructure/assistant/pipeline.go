package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/smallnest/langgraphgo/graph"
	"go.uber.org/zap"

	appassistant "github.com/legallink/backend/internal/application/assistant"
	"github.com/legallink/backend/internal/domain/assistant"
	"github.com/legallink/backend/internal/domain/directory"
	"github.com/legallink/backend/internal/infrastructure/logger"
)

// DefaultRetrievalTopK is the number of knowledge passages pulled into
// the prompt when configuration leaves it unset
const DefaultRetrievalTopK = 4

// recommendationLimit caps the advocates attached to a reply
const recommendationLimit = 3

// AdvocateMatcher returns ranked advocates for a match request
type AdvocateMatcher interface {
	Match(ctx context.Context, req directory.MatchRequest) ([]directory.Match, error)
}

// pipelineState is the shared state flowing through the graph
type pipelineState struct {
	Query           string
	History         []assistant.Turn
	Intent          assistant.Intent
	Passages        []*assistant.KnowledgeEntry
	Reply           string
	Recommendations []directory.Match
}

// GraphPipeline is the staged guidance pipeline:
// classify -> retrieve -> respond -> recommend. Retrieval is skipped
// for smalltalk; recommendations only attach to advocate searches.
type GraphPipeline struct {
	llm       LLM
	retriever assistant.Retriever
	matcher   AdvocateMatcher
	topK      int
	logger    *zap.Logger
	runnable  *graph.StateRunnable[*pipelineState]
}

// NewGraphPipeline compiles the state graph
func NewGraphPipeline(llm LLM, retriever assistant.Retriever, matcher AdvocateMatcher, topK int, logger *zap.Logger) (*GraphPipeline, error) {
	if topK <= 0 {
		topK = DefaultRetrievalTopK
	}
	p := &GraphPipeline{
		llm:       llm,
		retriever: retriever,
		matcher:   matcher,
		topK:      topK,
		logger:    logger,
	}

	workflow := graph.NewStateGraph[*pipelineState]()
	workflow.AddNode("classify", "Classify the message intent", p.classify)
	workflow.AddNode("retrieve", "Look up knowledge base passages", p.retrieve)
	workflow.AddNode("respond", "Generate the guidance reply", p.respond)
	workflow.AddNode("recommend", "Attach matched advocates", p.recommend)

	workflow.SetEntryPoint("classify")
	workflow.AddConditionalEdge("classify", func(ctx context.Context, state *pipelineState) string {
		// Smalltalk needs no reference material
		if state.Intent == assistant.IntentSmalltalk {
			return "respond"
		}
		return "retrieve"
	})
	workflow.AddEdge("retrieve", "respond")
	workflow.AddConditionalEdge("respond", func(ctx context.Context, state *pipelineState) string {
		if state.Intent == assistant.IntentAdvocateSearch {
			return "recommend"
		}
		return graph.END
	})
	workflow.AddEdge("recommend", graph.END)

	runnable, err := workflow.Compile()
	if err != nil {
		return nil, fmt.Errorf("failed to compile pipeline graph: %w", err)
	}
	p.runnable = runnable

	return p, nil
}

// Run executes one turn of the pipeline. The session ID rides on the
// context so stage logs correlate with the turn.
func (p *GraphPipeline) Run(ctx context.Context, session *assistant.ChatSession, message string) (*appassistant.PipelineResult, error) {
	ctx, _ = logger.WithSessionID(ctx, p.logger, session.ID.String())

	state := &pipelineState{
		Query:   message,
		History: session.History,
	}

	out, err := p.runnable.Invoke(ctx, state)
	if err != nil {
		return nil, err
	}

	return &appassistant.PipelineResult{
		Intent:          out.Intent,
		Reply:           out.Reply,
		Recommendations: out.Recommendations,
	}, nil
}

// classify asks the LLM for the intent, falling back to keyword
// heuristics when the model is unreachable
func (p *GraphPipeline) classify(ctx context.Context, state *pipelineState) (*pipelineState, error) {
	output, err := p.llm.Generate(ctx, buildClassifyPrompt(state.Query))
	if err != nil {
		logger.L(ctx).Warn("Intent classification failed, using heuristic", zap.Error(err))
		state.Intent = heuristicIntent(state.Query)
		return state, nil
	}

	state.Intent = parseIntent(output)
	return state, nil
}

// retrieve pulls knowledge passages for the query. Retrieval failures
// degrade the answer instead of failing the turn.
func (p *GraphPipeline) retrieve(ctx context.Context, state *pipelineState) (*pipelineState, error) {
	passages, err := p.retriever.Retrieve(ctx, state.Query, p.topK)
	if err != nil {
		logger.L(ctx).Warn("Knowledge retrieval failed", zap.Error(err))
		return state, nil
	}

	state.Passages = passages
	return state, nil
}

// respond generates the reply. An LLM failure here fails the turn; the
// caller turns it into an assistant error message.
func (p *GraphPipeline) respond(ctx context.Context, state *pipelineState) (*pipelineState, error) {
	reply, err := p.llm.Generate(ctx, buildRespondPrompt(state.Intent, state.History, state.Passages, state.Query))
	if err != nil {
		return nil, err
	}

	state.Reply = strings.TrimSpace(reply)
	return state, nil
}

// recommend attaches top advocates for advocate searches. Matching
// failures are logged, not fatal.
func (p *GraphPipeline) recommend(ctx context.Context, state *pipelineState) (*pipelineState, error) {
	req := directory.MatchRequest{
		Specialization: inferSpecialization(state.Query),
		Limit:          recommendationLimit,
	}

	matches, err := p.matcher.Match(ctx, req)
	if err != nil {
		logger.L(ctx).Warn("Advocate matching failed", zap.Error(err))
		return state, nil
	}

	state.Recommendations = matches
	return state, nil
}

var _ appassistant.Pipeline = (*GraphPipeline)(nil)

// heuristicIntent is the offline fallback classifier
func heuristicIntent(message string) assistant.Intent {
	lowered := strings.ToLower(message)

	switch {
	case containsAny(lowered, "arrest", "police custody", "detained", "emergency", "danger", "threatening me"):
		return assistant.IntentEmergency
	case containsAny(lowered, "find a lawyer", "find an advocate", "need a lawyer", "need an advocate", "hire", "recommend a lawyer"):
		return assistant.IntentAdvocateSearch
	case containsAny(lowered, "appointment", "book", "schedule", "consultation slot"):
		return assistant.IntentAppointment
	case containsAny(lowered, "hello", "hi there", "thank", "good morning", "good evening"):
		return assistant.IntentSmalltalk
	default:
		return assistant.IntentLegalQuery
	}
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// specializationKeywords maps query terms to practice areas for the
// recommendation request
var specializationKeywords = []struct {
	keywords       []string
	specialization directory.Specialization
}{
	{[]string{"divorce", "custody", "marriage", "maintenance", "dowry"}, directory.SpecializationFamily},
	{[]string{"arrest", "bail", "fir", "criminal", "theft", "assault"}, directory.SpecializationCriminal},
	{[]string{"landlord", "tenant", "eviction", "property", "land", "rent"}, directory.SpecializationProperty},
	{[]string{"employer", "salary", "termination", "workplace", "labour", "labor"}, directory.SpecializationLabor},
	{[]string{"refund", "warranty", "consumer", "defective"}, directory.SpecializationConsumer},
	{[]string{"tax", "gst", "income tax"}, directory.SpecializationTax},
	{[]string{"company", "contract", "partnership", "corporate"}, directory.SpecializationCorporate},
	{[]string{"fundamental rights", "writ", "constitutional"}, directory.SpecializationConstitutional},
}

// inferSpecialization guesses the practice area from the query text
func inferSpecialization(message string) directory.Specialization {
	lowered := strings.ToLower(message)
	for _, entry := range specializationKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(lowered, keyword) {
				return entry.specialization
			}
		}
	}
	return directory.SpecializationCivil
}
