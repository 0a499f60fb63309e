package cli

import (
	"context"
	"time"

	"github.com/custodia-labs/quanda-cli/internal/core/domain"
	"github.com/custodia-labs/quanda-cli/internal/core/ports/driving"
)

// MockAskService implements driving.AskService for testing.
type MockAskService struct {
	AskFunc      func(ctx context.Context, question string, opts driving.AskOptions) (string, error)
	RetrieveFunc func(ctx context.Context, question string, opts driving.AskOptions) ([]domain.Candidate, error)
}

func (m *MockAskService) Ask(ctx context.Context, question string, opts driving.AskOptions) (string, error) {
	if m.AskFunc != nil {
		return m.AskFunc(ctx, question, opts)
	}
	return "Top Matching Answers:\nQ: What is Go?\nA: A programming language.", nil
}

func (m *MockAskService) Retrieve(ctx context.Context, question string, opts driving.AskOptions) ([]domain.Candidate, error) {
	if m.RetrieveFunc != nil {
		return m.RetrieveFunc(ctx, question, opts)
	}
	return []domain.Candidate{
		{
			Record: domain.Record{
				ID:       "rec-1",
				SourceID: "src-1",
				Question: "What is Go?",
				Answer:   "A programming language.",
				Type:     domain.QuestionWhat,
			},
			Distance: 0.12,
			SourceID: "src-1",
		},
	}, nil
}

// MockIngestService implements driving.IngestService for testing.
type MockIngestService struct {
	IngestFileFunc func(ctx context.Context, path string) (*domain.Source, error)
}

func (m *MockIngestService) IngestFile(ctx context.Context, path string) (*domain.Source, error) {
	if m.IngestFileFunc != nil {
		return m.IngestFileFunc(ctx, path)
	}
	return &domain.Source{
		ID:          "src-1",
		Name:        "faq",
		Filename:    "faq.csv",
		FileType:    "csv",
		RecordCount: 2,
		Status:      domain.SourceStatusReady,
	}, nil
}

// MockSourceService implements driving.SourceService for testing.
type MockSourceService struct {
	GetFunc    func(ctx context.Context, id string) (*domain.Source, error)
	ListFunc   func(ctx context.Context) ([]domain.Source, error)
	RemoveFunc func(ctx context.Context, id string) error
}

func (m *MockSourceService) Get(ctx context.Context, id string) (*domain.Source, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return &domain.Source{ID: id, Name: "faq", Status: domain.SourceStatusReady}, nil
}

func (m *MockSourceService) List(ctx context.Context) ([]domain.Source, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []domain.Source{
		{
			ID:          "src-1",
			Name:        "faq",
			Filename:    "faq.csv",
			FileType:    "csv",
			RecordCount: 42,
			Status:      domain.SourceStatusReady,
			CreatedAt:   time.Now(),
		},
	}, nil
}

func (m *MockSourceService) Remove(ctx context.Context, id string) error {
	if m.RemoveFunc != nil {
		return m.RemoveFunc(ctx, id)
	}
	return nil
}

// MockSettingsService implements driving.SettingsService for testing.
type MockSettingsService struct {
	GetFunc  func() (*domain.AppSettings, error)
	SaveFunc func(settings *domain.AppSettings) error
}

func (m *MockSettingsService) Get() (*domain.AppSettings, error) {
	if m.GetFunc != nil {
		return m.GetFunc()
	}
	defaults := domain.DefaultAppSettings()
	return &defaults, nil
}

func (m *MockSettingsService) Save(settings *domain.AppSettings) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(settings)
	}
	return nil
}

func (m *MockSettingsService) SetRetrieval(settings domain.RetrievalSettings) error {
	return nil
}

func (m *MockSettingsService) SetEmbeddingProvider(provider domain.AIProvider, model, baseURL string) error {
	return nil
}

func (m *MockSettingsService) SetLLM(settings domain.LLMSettings) error {
	return nil
}

func (m *MockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// setupTestServices installs mock services and returns a cleanup func
// restoring the previous ones.
func setupTestServices() func() {
	prevAsk := askService
	prevIngest := ingestService
	prevSource := sourceService
	prevSettings := settingsService

	SetServices(Services{
		Ask:      &MockAskService{},
		Ingest:   &MockIngestService{},
		Source:   &MockSourceService{},
		Settings: &MockSettingsService{},
	})

	return func() {
		askService = prevAsk
		ingestService = prevIngest
		sourceService = prevSource
		settingsService = prevSettings
	}
}
