package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/blackcloro/steam-payments/internal"
	"github.com/blackcloro/steam-payments/internal/domain/payment"
)

// MemoryStore is an in-process payment store that counts connection
// lifecycles, for handler tests that must not touch postgres.
type MemoryStore struct {
	mu       sync.Mutex
	payments []payment.Payment
	epoch    time.Time

	Opens  int
	Closes int
	URLs   []string

	// Err, when set, is returned by every query.
	Err error
	// ConnectErr, when set, makes Open fail.
	ConnectErr error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{epoch: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

// Open records a new connection for url.
func (m *MemoryStore) Open(url string) (*MemoryStore, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ConnectErr != nil {
		return nil, m.ConnectErr
	}
	m.Opens++
	m.URLs = append(m.URLs, url)
	return m, nil
}

func (m *MemoryStore) Create(_ context.Context, p *payment.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	for _, existing := range m.payments {
		if existing.TransactionID == p.TransactionID {
			return internal.ErrDuplicateTransaction
		}
	}
	p.ID = int64(len(m.payments) + 1)
	p.CreatedAt = m.epoch.Add(time.Duration(p.ID) * time.Millisecond)
	m.payments = append(m.payments, *p)
	return nil
}

func (m *MemoryStore) GetByTransactionID(_ context.Context, transactionID string) (*payment.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	for _, p := range m.payments {
		if p.TransactionID == transactionID {
			found := p
			return &found, nil
		}
	}
	return nil, internal.ErrPaymentNotFound
}

func (m *MemoryStore) ListRecent(_ context.Context, limit int) ([]*payment.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]*payment.Payment, 0, len(m.payments))
	for i := range m.payments {
		p := m.payments[i]
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryStore) Close(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closes++
	return nil
}

// Len returns the number of stored payments.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.payments)
}
