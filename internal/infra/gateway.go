package infra

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Authorization is the outcome of a payment attempt against the gateway.
type Authorization struct {
	Success       bool
	TransactionID string
	ErrorMessage  string
}

// PaymentGateway authorizes a charge for the given amount. Implementations
// must be safe for concurrent use.
type PaymentGateway interface {
	Authorize(ctx context.Context, amount decimal.Decimal) (Authorization, error)
}

// SimulatedGateway approves roughly 90% of charges unless forceSuccess is set,
// in which case every charge is approved. Used outside production and in tests.
type SimulatedGateway struct {
	forceSuccess bool

	mu  sync.Mutex
	rng *rand.Rand
}

func NewSimulatedGateway(forceSuccess bool) *SimulatedGateway {
	return &SimulatedGateway{
		forceSuccess: forceSuccess,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewSeededGateway builds a gateway with a deterministic random source.
func NewSeededGateway(forceSuccess bool, seed int64) *SimulatedGateway {
	return &SimulatedGateway{
		forceSuccess: forceSuccess,
		rng:          rand.New(rand.NewSource(seed)),
	}
}

func (g *SimulatedGateway) Authorize(_ context.Context, _ decimal.Decimal) (Authorization, error) {
	g.mu.Lock()
	roll := g.rng.Float64()
	txnSuffix := g.rng.Intn(1_000_000)
	g.mu.Unlock()

	ok := g.forceSuccess || roll > 0.1
	if !ok {
		return Authorization{
			Success:      false,
			ErrorMessage: "Error en el procesamiento del pago",
		}, nil
	}
	return Authorization{
		Success:       true,
		TransactionID: fmt.Sprintf("TXN-%d-%06d", time.Now().UnixMilli(), txnSuffix),
	}, nil
}
