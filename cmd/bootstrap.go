package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/kamdem/biogate/internal/classifier"
	"github.com/kamdem/biogate/internal/config"
	"github.com/kamdem/biogate/internal/database"
	"github.com/kamdem/biogate/internal/database/postgres"
	"github.com/kamdem/biogate/internal/fallback"
	"github.com/kamdem/biogate/internal/feature"
	"github.com/kamdem/biogate/internal/identity"
	"github.com/kamdem/biogate/internal/recommend"
	"github.com/kamdem/biogate/internal/transaction"
	"github.com/kamdem/biogate/internal/verify"
)

// system holds everything wired at process start. The dispatch strategy for
// each modality is decided exactly once here and never changes afterwards.
type system struct {
	cfg          *config.Config
	registry     *identity.Registry
	orchestrator *transaction.Orchestrator
	pool         *postgres.Pool
}

func (s *system) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// buildSystem resolves configuration, probes classifier availability and
// wires the orchestrator. Classifier or database unavailability degrades to
// the fallback identity tables rather than failing startup.
func buildSystem() (*system, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	reg := identity.NewRegistry(cfg.Identities.Enrolled, cfg.Identities.Aliases)

	var pool *postgres.Pool
	if cfg.Database.URL != "" {
		pool, err = postgres.Initialize(&cfg.Database)
		if err != nil {
			fmt.Printf("Warning: database unavailable, continuing without it: %v\n", err)
			pool = nil
		}
	}

	face := buildVerifier(verify.Face, cfg, reg, pool)
	voice := buildVerifier(verify.Voice, cfg, reg, pool)

	recommender := buildRecommender(cfg, pool)

	opts := []transaction.Option{}
	if pool != nil {
		opts = append(opts, transaction.WithAudit(postgres.NewAuditRepository(pool)))
	}

	return &system{
		cfg:          cfg,
		registry:     reg,
		orchestrator: transaction.New(face, voice, recommender, opts...),
		pool:         pool,
	}, nil
}

// buildVerifier decides the modality's dispatch strategy: a hosted model if
// the model server answers for it, then the embedded nearest-neighbour
// classifier if templates are enrolled, then the static fallback table.
func buildVerifier(m verify.Modality, cfg *config.Config, reg *identity.Registry, pool *postgres.Pool) *verify.Verifier {
	if cls, extract := probeClassifier(m, cfg, pool); cls != nil {
		fmt.Printf("[%s] using classifier %s\n", m, cls.Name())
		return verify.NewClassifierVerifier(m, classifier.NewAdapter(cls, reg), extract, verify.OSResources{})
	}

	fmt.Printf("[%s] no classifier available, using fallback identity table\n", m)
	return verify.NewFallbackVerifier(m, fallbackTable(m, cfg, reg), verify.OSResources{})
}

func probeClassifier(m verify.Modality, cfg *config.Config, pool *postgres.Pool) (classifier.Classifier, verify.Extractor) {
	if cfg.ModelServer.URL != "" {
		model := cfg.ModelServer.FaceModel
		extract := verify.Extractor(feature.FaceVector)
		if m == verify.Voice {
			model = cfg.ModelServer.VoiceModel
			extract = feature.VoiceVector
		}

		ms := classifier.NewModelServer(cfg.ModelServer.URL, model)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := ms.Ping(ctx)
		if err == nil {
			return ms, extract
		}
		fmt.Printf("[%s] model server probe failed: %v\n", m, err)
	}

	if pool != nil {
		if cls := buildNearest(m, pool); cls != nil {
			extract := verify.Extractor(feature.FaceEmbedding)
			if m == verify.Voice {
				extract = feature.VoiceVector
			}
			return cls, extract
		}
	}

	return nil, nil
}

func buildNearest(m verify.Modality, pool *postgres.Pool) classifier.Classifier {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo := postgres.NewTemplateRepository(pool)
	stored, err := repo.ListTemplates(ctx, string(m))
	if err != nil {
		fmt.Printf("[%s] failed to load templates: %v\n", m, err)
		return nil
	}

	templates := make([]classifier.Template, 0, len(stored))
	for _, tpl := range stored {
		templates = append(templates, classifier.Template{
			Identity: tpl.Identity,
			Vector:   tpl.Embedding,
		})
	}

	nearest, err := classifier.NewNearest(string(m)+"_templates", templates, classifier.DefaultMaxDistance)
	if err != nil {
		return nil
	}
	fmt.Printf("[%s] nearest-neighbour index built with %d templates\n", m, nearest.Count())
	return nearest
}

func fallbackTable(m verify.Modality, cfg *config.Config, reg *identity.Registry) *fallback.Table {
	if m == verify.Voice {
		return fallback.NewTable(cfg.Identities.VoiceTable, reg)
	}
	return fallback.NewTable(cfg.Identities.FaceTable, reg)
}

// buildRecommender assembles the recommendation chain. Every path ends in
// the Safe wrapper inside the orchestrator, so nothing here can fail a
// transaction.
func buildRecommender(cfg *config.Config, pool *postgres.Pool) recommend.Recommender {
	var source recommend.CategorySource = recommend.StaticCategories(cfg.Identities.Categories)
	var history recommend.HistorySource

	if pool != nil {
		repo := postgres.NewPurchaseRepository(pool)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		categories, err := repo.Categories(ctx)
		cancel()
		if err == nil && len(categories) > 0 {
			fmt.Printf("Customer data loaded: %d product categories\n", len(categories))
			source = repo
			history = &identityHistory{repo: repo}
		} else {
			fmt.Println("Using fallback product categories")
		}
	}

	switch cfg.Recommend.Provider {
	case "openai":
		if cfg.OpenAI.Token != "" {
			return recommend.NewOpenAI(cfg.OpenAI.Token, source, history)
		}
		fmt.Println("OPENAI_TOKEN not set, using random recommendations")
	case "gemini":
		if cfg.Gemini.APIKey != "" {
			g, err := recommend.NewGemini(context.Background(), cfg.Gemini.APIKey, source, history)
			if err == nil {
				return g
			}
			fmt.Printf("Gemini unavailable, using random recommendations: %v\n", err)
		} else {
			fmt.Println("GEMINI_API_KEY not set, using random recommendations")
		}
	}

	return recommend.NewRandom(source)
}

// identityHistory adapts the purchase repository to the recommender's
// history interface.
type identityHistory struct {
	repo *postgres.PurchaseRepository
}

func (h *identityHistory) History(ctx context.Context, id identity.Identity) ([]string, error) {
	return h.repo.History(ctx, string(id))
}

var _ database.PurchaseReader = (*postgres.PurchaseRepository)(nil)
