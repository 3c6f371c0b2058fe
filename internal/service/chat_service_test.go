package service

import (
	"context"
	"errors"
	"log"
	"os"
	"testing"

	"shopchat-be/internal/dto"
	"shopchat-be/internal/repository/memory"
	"shopchat-be/pkg/cache"
	"shopchat-be/pkg/discovery/intent"
	"shopchat-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExtractor struct {
	query *intent.Query
}

func (f *fakeExtractor) Extract(ctx context.Context, message string) *intent.Query {
	return f.query
}

type fakeRetriever struct {
	candidates []store.Candidate
	err        error
	gotSession *store.Session
}

func (f *fakeRetriever) Execute(ctx context.Context, session *store.Session, query *intent.Query, message string) ([]store.Candidate, error) {
	f.gotSession = session
	return f.candidates, f.err
}

type passthroughFilter struct{}

func (passthroughFilter) Apply(ctx context.Context, query *intent.Query, candidates []store.Candidate) []store.Candidate {
	return candidates
}

type fakeSupplementer struct {
	candidates []store.Candidate
	calls      int
}

func (f *fakeSupplementer) Fetch(ctx context.Context, query *intent.Query) []store.Candidate {
	f.calls++
	return f.candidates
}

func newTestChatService(extractor IntentExtractor, retriever CandidateRetriever, supplementer Supplementer) IChatService {
	return NewChatService(
		memory.NewSessionRepository(cache.NewMemoryStore()),
		extractor,
		retriever,
		passthroughFilter{},
		supplementer,
		log.New(os.Stderr, "", 0),
	)
}

func locals(n int) []store.Candidate {
	out := make([]store.Candidate, n)
	for i := range out {
		out[i] = store.Candidate{ID: "l", Title: "Local", Provenance: store.ProvenanceLocal}
	}
	return out
}

func TestSendMessageSupplementsEmptySpecificSearch(t *testing.T) {
	extractor := &fakeExtractor{query: &intent.Query{
		ProductDetected: true,
		ProductName:     "hoverboard",
		Keywords:        []string{"hoverboard"},
	}}
	supplementer := &fakeSupplementer{candidates: []store.Candidate{
		{ID: "ext-1", Title: "Hoverboard X", Provenance: store.ProvenanceMarketplace},
	}}
	svc := newTestChatService(extractor, &fakeRetriever{}, supplementer)

	res, err := svc.SendMessage(context.Background(), &dto.SendMessageRequest{Message: "do you have a hoverboard"})
	require.NoError(t, err)

	assert.Equal(t, 1, supplementer.calls)
	require.Len(t, res.Products, 1)
	assert.Equal(t, store.ProvenanceMarketplace, res.Products[0].Provenance)
	assert.NotEmpty(t, res.SearchId)
	assert.NotEmpty(t, res.DynamicPrompts)
}

func TestSendMessageSkipsSupplementWhenLocalsSuffice(t *testing.T) {
	extractor := &fakeExtractor{query: &intent.Query{
		ProductDetected: true,
		ProductName:     "xbox",
		Keywords:        []string{"xbox"},
	}}
	supplementer := &fakeSupplementer{}
	svc := newTestChatService(extractor, &fakeRetriever{candidates: locals(3)}, supplementer)

	res, err := svc.SendMessage(context.Background(), &dto.SendMessageRequest{Message: "I want an xbox"})
	require.NoError(t, err)

	assert.Equal(t, 0, supplementer.calls)
	assert.Len(t, res.Products, 3)
}

func TestSendMessageTopsUpThinBrowsingResults(t *testing.T) {
	extractor := &fakeExtractor{query: &intent.Query{Keywords: []string{"cool", "stuff"}}}
	supplementer := &fakeSupplementer{candidates: locals(2)}
	svc := newTestChatService(extractor, &fakeRetriever{candidates: locals(2)}, supplementer)

	res, err := svc.SendMessage(context.Background(), &dto.SendMessageRequest{Message: "recommend something cool"})
	require.NoError(t, err)

	assert.Equal(t, 1, supplementer.calls)
	assert.Len(t, res.Products, 4)
}

func TestSendMessageCapsCombinedResults(t *testing.T) {
	extractor := &fakeExtractor{query: &intent.Query{Keywords: []string{"stuff"}}}
	supplementer := &fakeSupplementer{candidates: locals(8)}
	svc := newTestChatService(extractor, &fakeRetriever{candidates: locals(4)}, supplementer)

	res, err := svc.SendMessage(context.Background(), &dto.SendMessageRequest{Message: "show me stuff"})
	require.NoError(t, err)

	assert.Len(t, res.Products, 8)
}

func TestSendMessageRetrievalErrorYieldsPoliteFallback(t *testing.T) {
	extractor := &fakeExtractor{query: &intent.Query{}}
	svc := newTestChatService(extractor, &fakeRetriever{err: errors.New("db down")}, &fakeSupplementer{})

	res, err := svc.SendMessage(context.Background(), &dto.SendMessageRequest{Message: "hi"})
	require.NoError(t, err, "pipeline errors never surface to the user")

	assert.Empty(t, res.Products)
	assert.NotEmpty(t, res.Content)
	assert.NotNil(t, res.DynamicPrompts)
}

func TestComposeContentForSpecificMatch(t *testing.T) {
	query := &intent.Query{ProductDetected: true, ProductName: "xbox"}

	got := composeContent(query, locals(2))
	assert.Equal(t, `Here's what I found for "xbox": 2 option(s) worth a look.`, got)
}

func TestSendMessageCarriesDemographicsIntoSession(t *testing.T) {
	extractor := &fakeExtractor{query: &intent.Query{}}
	retriever := &fakeRetriever{}
	svc := newTestChatService(extractor, retriever, &fakeSupplementer{})

	_, err := svc.SendMessage(context.Background(), &dto.SendMessageRequest{
		Message: "hello",
		Age:     "14",
		Gender:  "boy",
	})
	require.NoError(t, err)

	require.NotNil(t, retriever.gotSession)
	assert.Equal(t, "14", retriever.gotSession.Age)
	assert.Equal(t, "boy", retriever.gotSession.Gender)
}

func TestSendMessageReusesSession(t *testing.T) {
	extractor := &fakeExtractor{query: &intent.Query{}}
	svc := newTestChatService(extractor, &fakeRetriever{}, &fakeSupplementer{})

	first, err := svc.SendMessage(context.Background(), &dto.SendMessageRequest{Message: "hello", Age: "15"})
	require.NoError(t, err)

	retriever := &fakeRetriever{}
	svc2 := svc.(*chatService)
	svc2.retriever = retriever

	second, err := svc2.SendMessage(context.Background(), &dto.SendMessageRequest{SessionId: first.SessionId, Message: "more"})
	require.NoError(t, err)

	assert.Equal(t, first.SessionId, second.SessionId)
	assert.Equal(t, "15", retriever.gotSession.Age, "age persists across messages")
}
