package repository

import (
	"context"
	"sync"
	"time"

	"StorefrontAPI/internal/model"
)

type MemoryPaymentRepository struct {
	mu       sync.Mutex
	payments map[string]model.Payment
}

func NewMemoryPaymentRepository() *MemoryPaymentRepository {
	return &MemoryPaymentRepository{payments: make(map[string]model.Payment)}
}

func (r *MemoryPaymentRepository) CreatePending(_ context.Context, p *model.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.Status = model.PaymentStatusPending
	p.CreatedAt = time.Now()
	r.payments[p.Reference] = *p
	return nil
}

func (r *MemoryPaymentRepository) GetByReference(_ context.Context, reference string) (*model.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[reference]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *MemoryPaymentRepository) MarkStatus(_ context.Context, reference, status string, payload []byte) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[reference]
	if !ok || p.Status != model.PaymentStatusPending {
		return false, nil
	}
	now := time.Now()
	p.Status = status
	p.ProviderPayload = payload
	p.UpdatedAt = &now
	r.payments[reference] = p
	return true, nil
}
