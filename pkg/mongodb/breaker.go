package mongodb

import (
	"context"
	"log/slog"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/agriwork-platform/workforce-service/pkg/resilience"
)

// BreakerClient wraps a Client with circuit breaker protection so that a
// struggling backend sheds load instead of queueing it.
type BreakerClient struct {
	client  *Client
	breaker *resilience.CircuitBreaker
}

// NewBreakerClient creates a circuit breaker protected MongoDB client
func NewBreakerClient(client *Client, logger *slog.Logger) *BreakerClient {
	config := resilience.DefaultCircuitBreakerConfig("mongodb")

	return &BreakerClient{
		client:  client,
		breaker: resilience.NewCircuitBreaker(config, logger),
	}
}

// Database returns the underlying database handle
func (c *BreakerClient) Database() *mongo.Database {
	return c.client.Database()
}

// Close disconnects the client
func (c *BreakerClient) Close(ctx context.Context) error {
	return c.client.Close(ctx)
}

// HealthCheck performs a health check with circuit breaker protection
func (c *BreakerClient) HealthCheck(ctx context.Context) error {
	_, err := c.breaker.Execute(ctx, func() (interface{}, error) {
		return nil, c.client.HealthCheck(ctx)
	})
	return err
}

// Breaker exposes the underlying circuit breaker for state reporting
func (c *BreakerClient) Breaker() *resilience.CircuitBreaker {
	return c.breaker
}
