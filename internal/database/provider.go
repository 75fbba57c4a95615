package database

import "context"

// TemplateReader loads enrolled templates for one modality.
type TemplateReader interface {
	ListTemplates(ctx context.Context, modality string) ([]StoredTemplate, error)
	CountTemplates(ctx context.Context, modality string) (int, error)
}

// TemplateWriter enrolls new templates.
type TemplateWriter interface {
	SaveTemplate(ctx context.Context, tpl StoredTemplate) (int64, error)
}

// AuditWriter records completed transactions.
type AuditWriter interface {
	RecordTransaction(ctx context.Context, rec AuditRecord) error
}

// PurchaseReader exposes the customer purchase history backing the
// recommendation step.
type PurchaseReader interface {
	Categories(ctx context.Context) ([]string, error)
	History(ctx context.Context, customer string) ([]string, error)
}
