package persistence

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/legallink/backend/internal/domain/assistant"
	"github.com/legallink/backend/internal/domain/shared"
	"github.com/legallink/backend/internal/infrastructure/persistence/models"
)

// GormKnowledgeRepository implements assistant.KnowledgeRepository and
// assistant.Retriever using GORM. Retrieval is keyword rank over topic,
// tags and body; candidates load via ILIKE and score in memory.
type GormKnowledgeRepository struct {
	db *gorm.DB
}

// NewGormKnowledgeRepository creates a new GormKnowledgeRepository
func NewGormKnowledgeRepository(db *gorm.DB) *GormKnowledgeRepository {
	return &GormKnowledgeRepository{db: db}
}

// Create inserts a new knowledge entry
func (r *GormKnowledgeRepository) Create(ctx context.Context, entry *assistant.KnowledgeEntry) error {
	model := models.KnowledgeEntryModelFromDomain(entry)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByID finds a knowledge entry by ID
func (r *GormKnowledgeRepository) FindByID(ctx context.Context, id uuid.UUID) (*assistant.KnowledgeEntry, error) {
	var model models.KnowledgeEntryModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, domainErr(err)
	}
	return model.ToDomain(), nil
}

// FindAll finds knowledge entries with total count
func (r *GormKnowledgeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*assistant.KnowledgeEntry, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.KnowledgeEntryModel{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("topic ILIKE ? OR body ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderBy := ValidateSortField(filter.OrderBy, KnowledgeSortFields, "topic")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(orderBy + " " + orderDir)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	var entryModels []models.KnowledgeEntryModel
	if err := query.Find(&entryModels).Error; err != nil {
		return nil, 0, err
	}

	entries := make([]*assistant.KnowledgeEntry, len(entryModels))
	for i := range entryModels {
		entries[i] = entryModels[i].ToDomain()
	}
	return entries, total, nil
}

// Count counts all knowledge entries
func (r *GormKnowledgeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.KnowledgeEntryModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// candidateCap bounds how many rows a retrieval loads before ranking
const candidateCap = 100

// Retrieve returns the topK entries ranked by keyword hits. Topic hits
// weigh heaviest, then tags, then body. No usable tokens or no hits
// returns an empty slice.
func (r *GormKnowledgeRepository) Retrieve(ctx context.Context, query string, topK int) ([]*assistant.KnowledgeEntry, error) {
	tokens := tokenizeQuery(query)
	if len(tokens) == 0 || topK <= 0 {
		return []*assistant.KnowledgeEntry{}, nil
	}

	db := r.db.WithContext(ctx).Model(&models.KnowledgeEntryModel{})

	var clauses []string
	var args []interface{}
	for _, token := range tokens {
		pattern := "%" + token + "%"
		clauses = append(clauses, "(topic ILIKE ? OR tags::text ILIKE ? OR body ILIKE ?)")
		args = append(args, pattern, pattern, pattern)
	}
	db = db.Where(strings.Join(clauses, " OR "), args...)

	var entryModels []models.KnowledgeEntryModel
	if err := db.Limit(candidateCap).Find(&entryModels).Error; err != nil {
		return nil, err
	}

	type scored struct {
		entry *assistant.KnowledgeEntry
		score int
	}
	ranked := make([]scored, 0, len(entryModels))
	for i := range entryModels {
		entry := entryModels[i].ToDomain()
		if s := scoreEntry(entry, tokens); s > 0 {
			ranked = append(ranked, scored{entry: entry, score: s})
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].entry.ID.String() < ranked[j].entry.ID.String()
	})

	if len(ranked) > topK {
		ranked = ranked[:topK]
	}

	entries := make([]*assistant.KnowledgeEntry, len(ranked))
	for i, s := range ranked {
		entries[i] = s.entry
	}
	return entries, nil
}

var tokenSplitter = regexp.MustCompile(`[^a-z0-9]+`)

// stopwords are tokens too generic to rank on
var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "what": true,
	"how": true, "can": true, "are": true, "was": true, "you": true,
	"about": true, "have": true, "has": true, "this": true, "that": true,
	"from": true, "will": true, "not": true, "law": true, "legal": true,
}

func tokenizeQuery(query string) []string {
	parts := tokenSplitter.Split(strings.ToLower(query), -1)
	seen := make(map[string]bool, len(parts))
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if len(p) < 3 || stopwords[p] || seen[p] {
			continue
		}
		seen[p] = true
		tokens = append(tokens, p)
	}
	return tokens
}

func scoreEntry(entry *assistant.KnowledgeEntry, tokens []string) int {
	topic := strings.ToLower(entry.Topic)
	body := strings.ToLower(entry.Body)
	tags := make([]string, len(entry.Tags))
	for i, tag := range entry.Tags {
		tags[i] = strings.ToLower(tag)
	}

	score := 0
	for _, token := range tokens {
		if strings.Contains(topic, token) {
			score += 3
		}
		for _, tag := range tags {
			if strings.Contains(tag, token) {
				score += 2
				break
			}
		}
		if strings.Contains(body, token) {
			score++
		}
	}
	return score
}

// Ensure GormKnowledgeRepository implements both interfaces
var (
	_ assistant.KnowledgeRepository = (*GormKnowledgeRepository)(nil)
	_ assistant.Retriever           = (*GormKnowledgeRepository)(nil)
)
