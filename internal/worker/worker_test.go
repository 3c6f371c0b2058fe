package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"shopchat-be/internal/entity"
	"shopchat-be/internal/repository/contract"
	"shopchat-be/internal/repository/specification"
	"shopchat-be/internal/repository/unitofwork"
	"shopchat-be/pkg/marketplace"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- fakes ---

type fakeJobRepo struct {
	jobs    map[uuid.UUID]*entity.ProcessingJob
	created []*entity.ProcessingJob
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: map[uuid.UUID]*entity.ProcessingJob{}}
}

func (r *fakeJobRepo) Create(ctx context.Context, job *entity.ProcessingJob) error {
	r.jobs[job.Id] = job
	r.created = append(r.created, job)
	return nil
}

func (r *fakeJobRepo) Update(ctx context.Context, job *entity.ProcessingJob) error {
	r.jobs[job.Id] = job
	return nil
}

func (r *fakeJobRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ProcessingJob, error) {
	return nil, nil
}

func (r *fakeJobRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ProcessingJob, error) {
	return nil, nil
}

func (r *fakeJobRepo) FindDue(ctx context.Context, now time.Time, limit int) ([]*entity.ProcessingJob, error) {
	var due []*entity.ProcessingJob
	for _, j := range r.jobs {
		if j.Status == entity.JobStatusPending {
			due = append(due, j)
		}
		if len(due) == limit {
			break
		}
	}
	return due, nil
}

func (r *fakeJobRepo) ExistsForProductStage(ctx context.Context, productId uuid.UUID, stage string, statuses []string) (bool, error) {
	for _, j := range r.jobs {
		if j.ProductId == productId && j.Stage == stage {
			for _, s := range statuses {
				if j.Status == s {
					return true, nil
				}
			}
		}
	}
	return false, nil
}

func (r *fakeJobRepo) StageStatusCounts(ctx context.Context) ([]contract.StageStatusCount, error) {
	return nil, nil
}

type fakeProductRepo struct {
	contract.ProductRepository
	product *entity.Product
	updated *entity.Product
}

func (r *fakeProductRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Product, error) {
	return r.product, nil
}

func (r *fakeProductRepo) Update(ctx context.Context, product *entity.Product) error {
	r.updated = product
	return nil
}

type fakeUow struct {
	jobRepo     *fakeJobRepo
	productRepo *fakeProductRepo
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }

func (u *fakeUow) Commit() error { return nil }

func (u *fakeUow) Rollback() error { return nil }

func (u *fakeUow) ProductRepository() contract.ProductRepository {
	return u.productRepo
}
func (u *fakeUow) SegmentRepository() contract.SegmentRepository { return nil }

func (u *fakeUow) ProductSegmentRepository() contract.ProductSegmentRepository { return nil }

func (u *fakeUow) JobRepository() contract.JobRepository { return u.jobRepo }

func (u *fakeUow) CategoryRepository() contract.CategoryRepository { return nil }

type fakeUowFactory struct {
	uow *fakeUow
}

func (f *fakeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type fakeMarketplace struct {
	response *marketplace.SearchResponse
	err      error
}

func (f *fakeMarketplace) Search(ctx context.Context, term string, opts marketplace.SearchOptions) (*marketplace.SearchResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error {
	return nil
}

func newTestWorker(uow *fakeUow, mp marketplace.SearchProvider) *Worker {
	return New(&fakeUowFactory{uow: uow}, mp, nil, nil, nopLogger{}, Config{
		PollInterval: time.Minute,
		BatchSize:    5,
	})
}

// --- tests ---

func TestFailJobRequeuesWithGrowingBackoff(t *testing.T) {
	uow := &fakeUow{jobRepo: newFakeJobRepo()}
	w := newTestWorker(uow, &fakeMarketplace{})

	job := &entity.ProcessingJob{
		Id:          uuid.New(),
		ProductId:   uuid.New(),
		Stage:       entity.JobStageEnrich,
		Status:      entity.JobStatusProcessing,
		MaxAttempts: 3,
	}

	before := time.Now()
	w.failJob(context.Background(), uow, job, errors.New("boom"))

	assert.Equal(t, entity.JobStatusPending, job.Status)
	assert.Equal(t, 1, job.Attempts)
	assert.Equal(t, "boom", job.Error)
	require.NotNil(t, job.ScheduledFor)
	delay := job.ScheduledFor.Sub(before)
	assert.GreaterOrEqual(t, delay, 59*time.Second)
	assert.LessOrEqual(t, delay, 61*time.Second)

	// Second failure backs off twice as far.
	job.Status = entity.JobStatusProcessing
	before = time.Now()
	w.failJob(context.Background(), uow, job, errors.New("boom again"))

	assert.Equal(t, 2, job.Attempts)
	delay = job.ScheduledFor.Sub(before)
	assert.GreaterOrEqual(t, delay, 119*time.Second)
}

func TestFailJobTerminalAfterMaxAttempts(t *testing.T) {
	uow := &fakeUow{jobRepo: newFakeJobRepo()}
	w := newTestWorker(uow, &fakeMarketplace{})

	job := &entity.ProcessingJob{
		Id:          uuid.New(),
		ProductId:   uuid.New(),
		Stage:       entity.JobStageSegment,
		Status:      entity.JobStatusProcessing,
		Attempts:    2,
		MaxAttempts: 3,
	}

	w.failJob(context.Background(), uow, job, errors.New("still broken"))

	assert.Equal(t, entity.JobStatusFailed, job.Status)
	assert.Equal(t, 3, job.Attempts)
}

func TestEnrichFillsGapsAndChainsSegment(t *testing.T) {
	productId := uuid.New()
	uow := &fakeUow{
		jobRepo: newFakeJobRepo(),
		productRepo: &fakeProductRepo{
			product: &entity.Product{Id: productId, Title: "Xbox Series X"},
		},
	}
	mp := &fakeMarketplace{
		response: &marketplace.SearchResponse{
			Products: []marketplace.Listing{
				{Title: "Xbox Series X", Asin: "B08H75RTZ8", Image: "https://img", Link: "https://amz", PriceValue: 499.99, Rating: 4.8, RatingsTotal: 9000},
			},
		},
	}
	w := newTestWorker(uow, mp)

	job := &entity.ProcessingJob{Id: uuid.New(), ProductId: productId, Stage: entity.JobStageEnrich, MaxAttempts: 3}
	err := w.runEnrich(context.Background(), uow, job)
	require.NoError(t, err)

	updated := uow.productRepo.updated
	require.NotNil(t, updated)
	assert.Equal(t, "B08H75RTZ8", updated.Asin)
	assert.Equal(t, 499.99, updated.Price)
	assert.Equal(t, 4.8, updated.Rating)
	assert.NotNil(t, updated.EnrichedAt)

	require.Len(t, uow.jobRepo.created, 1)
	assert.Equal(t, entity.JobStageSegment, uow.jobRepo.created[0].Stage)
	assert.Equal(t, entity.JobStatusPending, uow.jobRepo.created[0].Status)
}

func TestEnrichDoesNotOverwriteExistingFields(t *testing.T) {
	productId := uuid.New()
	uow := &fakeUow{
		jobRepo: newFakeJobRepo(),
		productRepo: &fakeProductRepo{
			product: &entity.Product{Id: productId, Title: "Thing", Price: 25, ImageUrl: "https://mine"},
		},
	}
	mp := &fakeMarketplace{
		response: &marketplace.SearchResponse{
			Products: []marketplace.Listing{{Title: "Thing", PriceValue: 99, Image: "https://theirs"}},
		},
	}
	w := newTestWorker(uow, mp)

	job := &entity.ProcessingJob{Id: uuid.New(), ProductId: productId, Stage: entity.JobStageEnrich, MaxAttempts: 3}
	require.NoError(t, w.runEnrich(context.Background(), uow, job))

	assert.Equal(t, 25.0, uow.productRepo.updated.Price)
	assert.Equal(t, "https://mine", uow.productRepo.updated.ImageUrl)
}

func TestEnrichDoesNotChainDuplicateSegmentJob(t *testing.T) {
	productId := uuid.New()
	jobRepo := newFakeJobRepo()
	existing := &entity.ProcessingJob{
		Id: uuid.New(), ProductId: productId,
		Stage: entity.JobStageSegment, Status: entity.JobStatusCompleted,
	}
	jobRepo.jobs[existing.Id] = existing

	uow := &fakeUow{
		jobRepo:     jobRepo,
		productRepo: &fakeProductRepo{product: &entity.Product{Id: productId, Title: "Thing"}},
	}
	w := newTestWorker(uow, &fakeMarketplace{response: &marketplace.SearchResponse{}})

	job := &entity.ProcessingJob{Id: uuid.New(), ProductId: productId, Stage: entity.JobStageEnrich, MaxAttempts: 3}
	require.NoError(t, w.runEnrich(context.Background(), uow, job))

	assert.Empty(t, jobRepo.created, "SEGMENT already done, no new job expected")
}

func TestEnrichFailsOnMarketplaceError(t *testing.T) {
	productId := uuid.New()
	uow := &fakeUow{
		jobRepo:     newFakeJobRepo(),
		productRepo: &fakeProductRepo{product: &entity.Product{Id: productId, Title: "Thing"}},
	}
	w := newTestWorker(uow, &fakeMarketplace{err: marketplace.ErrRateLimited})

	job := &entity.ProcessingJob{Id: uuid.New(), ProductId: productId, Stage: entity.JobStageEnrich, MaxAttempts: 3}
	err := w.runEnrich(context.Background(), uow, job)
	assert.Error(t, err)
}
