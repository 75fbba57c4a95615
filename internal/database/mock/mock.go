// Package mock provides in-memory implementations of the database
// interfaces for testing.
package mock

import (
	"context"
	"sync"

	"github.com/kamdem/biogate/internal/database"
)

// TemplateStore is an in-memory template repository.
type TemplateStore struct {
	mu        sync.RWMutex
	templates []database.StoredTemplate
	nextID    int64

	// Error injection.
	ListError error
	SaveError error
}

func NewTemplateStore() *TemplateStore {
	return &TemplateStore{nextID: 1}
}

func (s *TemplateStore) ListTemplates(ctx context.Context, modality string) ([]database.StoredTemplate, error) {
	if s.ListError != nil {
		return nil, s.ListError
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []database.StoredTemplate
	for _, tpl := range s.templates {
		if tpl.Modality == modality {
			out = append(out, tpl)
		}
	}
	return out, nil
}

func (s *TemplateStore) CountTemplates(ctx context.Context, modality string) (int, error) {
	templates, err := s.ListTemplates(ctx, modality)
	if err != nil {
		return 0, err
	}
	return len(templates), nil
}

func (s *TemplateStore) SaveTemplate(ctx context.Context, tpl database.StoredTemplate) (int64, error) {
	if s.SaveError != nil {
		return 0, s.SaveError
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	tpl.ID = s.nextID
	s.nextID++
	s.templates = append(s.templates, tpl)
	return tpl.ID, nil
}

// AuditLog is an in-memory audit writer.
type AuditLog struct {
	mu      sync.Mutex
	Records []database.AuditRecord

	RecordError error
}

func NewAuditLog() *AuditLog {
	return &AuditLog{}
}

func (a *AuditLog) RecordTransaction(ctx context.Context, rec database.AuditRecord) error {
	if a.RecordError != nil {
		return a.RecordError
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Records = append(a.Records, rec)
	return nil
}

// PurchaseStore is an in-memory purchase reader.
type PurchaseStore struct {
	mu        sync.RWMutex
	purchases map[string][]string // customer -> categories

	CategoriesError error
	HistoryError    error
}

func NewPurchaseStore() *PurchaseStore {
	return &PurchaseStore{purchases: make(map[string][]string)}
}

func (p *PurchaseStore) AddPurchase(customer, category string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.purchases[customer] = append(p.purchases[customer], category)
}

func (p *PurchaseStore) Categories(ctx context.Context) ([]string, error) {
	if p.CategoriesError != nil {
		return nil, p.CategoriesError
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	seen := map[string]bool{}
	var out []string
	for _, categories := range p.purchases {
		for _, c := range categories {
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	return out, nil
}

func (p *PurchaseStore) History(ctx context.Context, customer string) ([]string, error) {
	if p.HistoryError != nil {
		return nil, p.HistoryError
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.purchases[customer], nil
}
