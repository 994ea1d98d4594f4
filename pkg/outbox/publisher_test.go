package outbox

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agriwork-platform/workforce-service/pkg/cloudevents"
	"github.com/agriwork-platform/workforce-service/pkg/logging"
)

type memoryRepo struct {
	mu     sync.Mutex
	events map[string]*OutboxEvent
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{events: make(map[string]*OutboxEvent)}
}

func (r *memoryRepo) Save(ctx context.Context, event *OutboxEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[event.ID] = event
	return nil
}

func (r *memoryRepo) SaveAll(ctx context.Context, events []*OutboxEvent) error {
	for _, e := range events {
		if err := r.Save(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func (r *memoryRepo) FindUnpublished(ctx context.Context, limit int) ([]*OutboxEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*OutboxEvent
	for _, e := range r.events {
		if e.ShouldRetry() {
			out = append(out, e)
		}
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *memoryRepo) MarkPublished(ctx context.Context, eventID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.events[eventID]
	if !ok {
		return errors.New("event not found")
	}
	now := time.Now()
	e.PublishedAt = &now
	return nil
}

func (r *memoryRepo) IncrementRetry(ctx context.Context, eventID string, errorMsg string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.events[eventID]
	if !ok {
		return errors.New("event not found")
	}
	e.RetryCount++
	e.LastError = errorMsg
	return nil
}

func (r *memoryRepo) GetByID(ctx context.Context, eventID string) (*OutboxEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[eventID], nil
}

func (r *memoryRepo) FindByAggregateID(ctx context.Context, aggregateID string) ([]*OutboxEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*OutboxEvent
	for _, e := range r.events {
		if e.AggregateID == aggregateID {
			out = append(out, e)
		}
	}
	return out, nil
}

type stubProducer struct {
	mu        sync.Mutex
	published []*cloudevents.WorkforceCloudEvent
	err       error
}

func (p *stubProducer) PublishEvent(ctx context.Context, topic string, event *cloudevents.WorkforceCloudEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, event)
	return nil
}

func testLogger() *logging.Logger {
	return logging.New(logging.DefaultConfig("outbox-test"))
}

func seedEvent(t *testing.T, repo *memoryRepo) *OutboxEvent {
	t.Helper()
	factory := cloudevents.NewEventFactory(cloudevents.SourceWorkforce)
	ce := factory.CreateScheduleCreatedEvent(context.Background(), "SCH-STRI-123456-001", "2026-02-14", []string{"Stripping"})
	event, err := NewOutboxEventFromCloudEvent("SCH-STRI-123456-001", "Schedule", "workforce.schedules.events", ce)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), event))
	return event
}

func TestProcessEventsPublishesAndMarks(t *testing.T) {
	repo := newMemoryRepo()
	producer := &stubProducer{}
	event := seedEvent(t, repo)

	p := NewPublisher(repo, producer, testLogger(), nil, DefaultPublisherConfig())
	p.ProcessEvents(context.Background())

	assert.Len(t, producer.published, 1)
	assert.Equal(t, cloudevents.ScheduleCreated, producer.published[0].Type)

	stored, err := repo.GetByID(context.Background(), event.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsPublished())
}

func TestProcessEventsIncrementsRetryOnFailure(t *testing.T) {
	repo := newMemoryRepo()
	producer := &stubProducer{err: errors.New("broker unavailable")}
	event := seedEvent(t, repo)

	p := NewPublisher(repo, producer, testLogger(), nil, DefaultPublisherConfig())
	p.ProcessEvents(context.Background())

	stored, err := repo.GetByID(context.Background(), event.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsPublished())
	assert.Equal(t, 1, stored.RetryCount)
	assert.Contains(t, stored.LastError, "broker unavailable")
}

func TestShouldRetryStopsAtMaxRetries(t *testing.T) {
	repo := newMemoryRepo()
	event := seedEvent(t, repo)
	event.RetryCount = event.MaxRetries

	events, err := repo.FindUnpublished(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestStartAndStop(t *testing.T) {
	repo := newMemoryRepo()
	producer := &stubProducer{}

	p := NewPublisher(repo, producer, testLogger(), nil, &PublisherConfig{
		PollInterval: 10 * time.Millisecond,
		BatchSize:    10,
	})

	require.NoError(t, p.Start(context.Background()))
	assert.True(t, p.IsRunning())
	assert.Error(t, p.Start(context.Background()))

	require.NoError(t, p.Stop())
	assert.False(t, p.IsRunning())
}
