package service

import (
	"context"
	"time"

	"github.com/cdentertainment/site-api/internal/app/model"
	"github.com/cdentertainment/site-api/internal/app/repository"
)

type mockSongRequestRepository struct {
	createFn        func(ctx context.Context, req *model.SongRequest) error
	listFn          func(ctx context.Context) ([]model.SongRequest, error)
	getFn           func(ctx context.Context, id uint) (*model.SongRequest, error)
	archiveFn       func(ctx context.Context, id uint) error
	deleteFn        func(ctx context.Context, id uint) error
	archiveAllFn    func(ctx context.Context) (int64, error)
	archiveBeforeFn func(ctx context.Context, before time.Time) (int64, error)
}

func (m *mockSongRequestRepository) CreateIfAccepting(ctx context.Context, req *model.SongRequest) error {
	if m.createFn != nil {
		return m.createFn(ctx, req)
	}
	req.ID = 1
	return nil
}

func (m *mockSongRequestRepository) ListActive(ctx context.Context) ([]model.SongRequest, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockSongRequestRepository) GetByID(ctx context.Context, id uint) (*model.SongRequest, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, repository.ErrSongRequestNotFound
}

func (m *mockSongRequestRepository) Archive(ctx context.Context, id uint) error {
	if m.archiveFn != nil {
		return m.archiveFn(ctx, id)
	}
	return nil
}

func (m *mockSongRequestRepository) Delete(ctx context.Context, id uint) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockSongRequestRepository) ArchiveAllActive(ctx context.Context) (int64, error) {
	if m.archiveAllFn != nil {
		return m.archiveAllFn(ctx)
	}
	return 0, nil
}

func (m *mockSongRequestRepository) ArchiveRequestedBefore(ctx context.Context, before time.Time) (int64, error) {
	if m.archiveBeforeFn != nil {
		return m.archiveBeforeFn(ctx, before)
	}
	return 0, nil
}

// mockSettingsRepository keeps the gate in memory.
type mockSettingsRepository struct {
	accepting bool
	err       error
}

func (m *mockSettingsRepository) EnsureDefaults(ctx context.Context, accepting bool) error {
	return m.err
}

func (m *mockSettingsRepository) Get(ctx context.Context) (*model.AppSettings, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &model.AppSettings{ID: model.AppSettingsID, AcceptingSongRequests: m.accepting}, nil
}

func (m *mockSettingsRepository) SetAcceptingSongRequests(ctx context.Context, accepting bool) (*model.AppSettings, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.accepting = accepting
	return m.Get(ctx)
}

func (m *mockSettingsRepository) ToggleAcceptingSongRequests(ctx context.Context) (*model.AppSettings, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.accepting = !m.accepting
	return m.Get(ctx)
}

type mockSearcher struct {
	searchFn func(ctx context.Context, query string) ([]model.SongCandidate, error)
	calls    int
}

func (m *mockSearcher) Search(ctx context.Context, query string) ([]model.SongCandidate, error) {
	m.calls++
	if m.searchFn != nil {
		return m.searchFn(ctx, query)
	}
	return nil, nil
}

type mockLeadSink struct {
	events []model.LeadEvent
	err    error
}

func (m *mockLeadSink) PublishLead(ctx context.Context, event model.LeadEvent) error {
	m.events = append(m.events, event)
	return m.err
}

type mockContactRepository struct {
	created []*model.ContactSubmission
	err     error
	delErr  error
}

func (m *mockContactRepository) Create(ctx context.Context, submission *model.ContactSubmission) error {
	if m.err != nil {
		return m.err
	}
	submission.ID = uint(len(m.created) + 1)
	m.created = append(m.created, submission)
	return nil
}

func (m *mockContactRepository) List(ctx context.Context) ([]model.ContactSubmission, error) {
	out := make([]model.ContactSubmission, 0, len(m.created))
	for _, c := range m.created {
		out = append(out, *c)
	}
	return out, m.err
}

func (m *mockContactRepository) Delete(ctx context.Context, id uint) error {
	return m.delErr
}

type mockIntakeRepository struct {
	created    []*model.IntakeForm
	lastLimit  int
	lastOffset int
	getErr     error
	deleteErr  error
}

func (m *mockIntakeRepository) Create(ctx context.Context, form *model.IntakeForm) error {
	form.ID = uint(len(m.created) + 1)
	m.created = append(m.created, form)
	return nil
}

func (m *mockIntakeRepository) GetByID(ctx context.Context, id uint) (*model.IntakeForm, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return &model.IntakeForm{ID: id}, nil
}

func (m *mockIntakeRepository) List(ctx context.Context, limit, offset int) ([]model.IntakeForm, error) {
	m.lastLimit, m.lastOffset = limit, offset
	return nil, nil
}

func (m *mockIntakeRepository) Delete(ctx context.Context, id uint) error {
	return m.deleteErr
}

type mockCatalogRepository struct {
	eventTypes map[uint]string
	seeded     []string
	about      *model.About
}

func (m *mockCatalogRepository) SeedEventTypes(ctx context.Context, names []string) (int64, error) {
	m.seeded = names
	return int64(len(names)), nil
}

func (m *mockCatalogRepository) ListEventTypes(ctx context.Context) ([]model.EventType, error) {
	var out []model.EventType
	for id, name := range m.eventTypes {
		out = append(out, model.EventType{ID: id, Name: name})
	}
	return out, nil
}

func (m *mockCatalogRepository) GetEventType(ctx context.Context, id uint) (*model.EventType, error) {
	name, ok := m.eventTypes[id]
	if !ok {
		return nil, repository.ErrEventTypeNotFound
	}
	return &model.EventType{ID: id, Name: name}, nil
}

func (m *mockCatalogRepository) ListPackages(ctx context.Context) ([]model.PricePackage, error) {
	return nil, nil
}

func (m *mockCatalogRepository) ListCounters(ctx context.Context) ([]model.Counter, error) {
	return nil, nil
}

func (m *mockCatalogRepository) GetAbout(ctx context.Context) (*model.About, error) {
	if m.about == nil {
		return nil, repository.ErrAboutNotFound
	}
	return m.about, nil
}

func (m *mockCatalogRepository) UpdateAbout(ctx context.Context, about *model.About) error {
	if m.about == nil || m.about.ID != about.ID {
		return repository.ErrAboutNotFound
	}
	m.about = about
	return nil
}
