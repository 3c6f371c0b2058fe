// FILE: internal/service/chat_service.go
package service

import (
	"context"
	"fmt"
	"log"

	"shopchat-be/internal/dto"
	"shopchat-be/internal/repository/memory"
	"shopchat-be/pkg/discovery/facet"
	"shopchat-be/pkg/discovery/intent"
	"shopchat-be/pkg/discovery/supplement"
	"shopchat-be/pkg/store"

	"github.com/google/uuid"
)

// resultLimit caps the combined (local + marketplace) product list.
const resultLimit = 8

// minBrowseResults is the point below which a browsing result set gets
// topped up from the marketplace.
const minBrowseResults = 5

// CandidateRetriever is the local retrieval collaborator.
type CandidateRetriever interface {
	Execute(ctx context.Context, session *store.Session, query *intent.Query, message string) ([]store.Candidate, error)
}

// IntentExtractor turns a raw message into a structured query.
type IntentExtractor interface {
	Extract(ctx context.Context, message string) *intent.Query
}

// RelevanceFilter prunes candidates unrelated to the query.
type RelevanceFilter interface {
	Apply(ctx context.Context, query *intent.Query, candidates []store.Candidate) []store.Candidate
}

// Supplementer fetches external marketplace candidates.
type Supplementer interface {
	Fetch(ctx context.Context, query *intent.Query) []store.Candidate
}

type IChatService interface {
	SendMessage(ctx context.Context, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
}

type chatService struct {
	sessionRepo  *memory.SessionRepository
	extractor    IntentExtractor
	retriever    CandidateRetriever
	filter       RelevanceFilter
	supplementer Supplementer
	logger       *log.Logger
}

func NewChatService(
	sessionRepo *memory.SessionRepository,
	extractor IntentExtractor,
	retriever CandidateRetriever,
	filter RelevanceFilter,
	supplementer Supplementer,
	logger *log.Logger,
) IChatService {
	return &chatService{
		sessionRepo:  sessionRepo,
		extractor:    extractor,
		retriever:    retriever,
		filter:       filter,
		supplementer: supplementer,
		logger:       logger,
	}
}

// SendMessage runs the full discovery pipeline for one chat message. It
// never surfaces an internal error to the user: any pipeline failure
// produces a polite retry message with empty result lists.
func (s *chatService) SendMessage(ctx context.Context, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	session := s.loadSession(ctx, req)

	query := s.extractor.Extract(ctx, req.Message)
	browsing := !query.ProductDetected || intent.IsBrowsing(req.Message)

	candidates, err := s.retriever.Execute(ctx, session, query, req.Message)
	if err != nil {
		s.logger.Printf("[ERROR] Retrieval failed for session %s: %v", session.ID, err)
		return s.fallbackResponse(ctx, session), nil
	}

	if query.ProductDetected {
		candidates = s.filter.Apply(ctx, query, candidates)
	}

	// Supplement from the marketplace when the local catalog came up short:
	// always for an empty specific search, and for thin browsing sets.
	needsSupplement := (query.ProductDetected && len(candidates) == 0) ||
		(browsing && len(candidates) < minBrowseResults && query.SearchTerm() != "")
	if needsSupplement {
		external := s.supplementer.Fetch(ctx, query)
		candidates = supplement.Merge(candidates, external, resultLimit)
	}
	if len(candidates) > resultLimit {
		candidates = candidates[:resultLimit]
	}

	searchId := uuid.New().String()
	session.Stage = nextStage(session.Stage)
	session.LastSearchID = searchId
	session.LastQuery = req.Message
	if err := s.sessionRepo.Save(ctx, session); err != nil {
		s.logger.Printf("[WARN] Failed to save session %s: %v", session.ID, err)
	}

	return &dto.SendMessageResponse{
		SessionId:      session.ID,
		Content:        composeContent(query, candidates),
		Products:       candidates,
		DynamicPrompts: facet.Generate(candidates),
		SearchId:       searchId,
	}, nil
}

// loadSession fetches or creates the session and folds in any demographic
// hints carried on the request.
func (s *chatService) loadSession(ctx context.Context, req *dto.SendMessageRequest) *store.Session {
	var session *store.Session
	if req.SessionId != "" {
		if existing, found := s.sessionRepo.Get(ctx, req.SessionId); found {
			session = existing
		}
	}
	if session == nil {
		id := req.SessionId
		if id == "" {
			id = uuid.New().String()
		}
		session = &store.Session{
			ID:    id,
			Stage: store.StageGreeting,
		}
	}

	if req.Age != "" {
		session.Age = req.Age
	}
	if req.Gender != "" {
		session.Gender = req.Gender
	}
	return session
}

func (s *chatService) fallbackResponse(ctx context.Context, session *store.Session) *dto.SendMessageResponse {
	if err := s.sessionRepo.Save(ctx, session); err != nil {
		s.logger.Printf("[WARN] Failed to save session %s: %v", session.ID, err)
	}
	return &dto.SendMessageResponse{
		SessionId:      session.ID,
		Content:        "Sorry, something went wrong on my end. Could you try that again?",
		Products:       []store.Candidate{},
		DynamicPrompts: []string{},
	}
}

func nextStage(stage string) string {
	switch stage {
	case store.StageGreeting, "":
		return store.StageDiscovery
	default:
		return store.StageRefining
	}
}

func composeContent(query *intent.Query, candidates []store.Candidate) string {
	if len(candidates) == 0 {
		if term := query.SearchTerm(); term != "" {
			return fmt.Sprintf("I couldn't find anything for %q right now. Want to try different words or browse what's popular?", term)
		}
		return "I couldn't find anything just yet. Tell me a bit more about what you're into!"
	}

	if query.ProductDetected {
		term := query.SearchTerm()
		return fmt.Sprintf("Here's what I found for %q: %d option(s) worth a look.", term, len(candidates))
	}
	return fmt.Sprintf("Here are %d picks I think you'll like. Tap a prompt below to narrow things down.", len(candidates))
}
