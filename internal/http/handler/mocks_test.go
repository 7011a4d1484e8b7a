package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cdentertainment/site-api/internal/app/model"
	"github.com/gofiber/fiber/v2"
)

type fakeSongService struct {
	searchFn    func(ctx context.Context, q string) ([]model.SongCandidate, error)
	submitFn    func(ctx context.Context, c model.SongCandidate) (uint, error)
	acceptingFn func(ctx context.Context) (bool, error)
	setFn       func(ctx context.Context, accepting bool) (bool, error)
	toggleFn    func(ctx context.Context) (bool, error)
	listFn      func(ctx context.Context) ([]model.SongRequest, error)
	getFn       func(ctx context.Context, id uint) (*model.SongRequest, error)
	archiveFn   func(ctx context.Context, id uint) error
	deleteFn    func(ctx context.Context, id uint) error
	archiveAll  func(ctx context.Context) (int64, error)
}

func (f *fakeSongService) SearchSongs(ctx context.Context, q string) ([]model.SongCandidate, error) {
	if f.searchFn != nil {
		return f.searchFn(ctx, q)
	}
	return nil, nil
}

func (f *fakeSongService) SubmitSongRequest(ctx context.Context, c model.SongCandidate) (uint, error) {
	if f.submitFn != nil {
		return f.submitFn(ctx, c)
	}
	return 1, nil
}

func (f *fakeSongService) IsAcceptingRequests(ctx context.Context) (bool, error) {
	if f.acceptingFn != nil {
		return f.acceptingFn(ctx)
	}
	return true, nil
}

func (f *fakeSongService) SetAcceptingRequests(ctx context.Context, accepting bool) (bool, error) {
	if f.setFn != nil {
		return f.setFn(ctx, accepting)
	}
	return accepting, nil
}

func (f *fakeSongService) ToggleAcceptingRequests(ctx context.Context) (bool, error) {
	if f.toggleFn != nil {
		return f.toggleFn(ctx)
	}
	return true, nil
}

func (f *fakeSongService) ListActiveRequests(ctx context.Context) ([]model.SongRequest, error) {
	if f.listFn != nil {
		return f.listFn(ctx)
	}
	return nil, nil
}

func (f *fakeSongService) GetRequest(ctx context.Context, id uint) (*model.SongRequest, error) {
	if f.getFn != nil {
		return f.getFn(ctx, id)
	}
	return &model.SongRequest{ID: id}, nil
}

func (f *fakeSongService) ArchiveRequest(ctx context.Context, id uint) error {
	if f.archiveFn != nil {
		return f.archiveFn(ctx, id)
	}
	return nil
}

func (f *fakeSongService) DeleteRequest(ctx context.Context, id uint) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeSongService) ArchiveAllActive(ctx context.Context) (int64, error) {
	if f.archiveAll != nil {
		return f.archiveAll(ctx)
	}
	return 0, nil
}

type fakeContactService struct {
	submitFn func(ctx context.Context, s *model.ContactSubmission) error
	listFn   func(ctx context.Context) ([]model.ContactSubmission, error)
	deleteFn func(ctx context.Context, id uint) error
}

func (f *fakeContactService) Submit(ctx context.Context, s *model.ContactSubmission) error {
	if f.submitFn != nil {
		return f.submitFn(ctx, s)
	}
	s.ID = 1
	return nil
}

func (f *fakeContactService) List(ctx context.Context) ([]model.ContactSubmission, error) {
	if f.listFn != nil {
		return f.listFn(ctx)
	}
	return nil, nil
}

func (f *fakeContactService) Delete(ctx context.Context, id uint) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

type fakeIntakeService struct {
	submitFn func(ctx context.Context, form *model.IntakeForm) error
	listFn   func(ctx context.Context, limit, offset int) ([]model.IntakeForm, error)
	getFn    func(ctx context.Context, id uint) (*model.IntakeForm, error)
	deleteFn func(ctx context.Context, id uint) error
}

func (f *fakeIntakeService) Submit(ctx context.Context, form *model.IntakeForm) error {
	if f.submitFn != nil {
		return f.submitFn(ctx, form)
	}
	form.ID = 1
	return nil
}

func (f *fakeIntakeService) List(ctx context.Context, limit, offset int) ([]model.IntakeForm, error) {
	if f.listFn != nil {
		return f.listFn(ctx, limit, offset)
	}
	return nil, nil
}

func (f *fakeIntakeService) Get(ctx context.Context, id uint) (*model.IntakeForm, error) {
	if f.getFn != nil {
		return f.getFn(ctx, id)
	}
	return &model.IntakeForm{ID: id}, nil
}

func (f *fakeIntakeService) Delete(ctx context.Context, id uint) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

type fakeCatalogService struct {
	eventTypes []model.EventType
	packages   []model.PricePackage
	counters   []model.Counter
	about      *model.About
	aboutErr   error
	updated    *model.About
	updateErr  error
}

func (f *fakeCatalogService) SeedEventTypes(ctx context.Context) error { return nil }

func (f *fakeCatalogService) EventTypes(ctx context.Context) ([]model.EventType, error) {
	return f.eventTypes, nil
}

func (f *fakeCatalogService) Packages(ctx context.Context) ([]model.PricePackage, error) {
	return f.packages, nil
}

func (f *fakeCatalogService) Counters(ctx context.Context) ([]model.Counter, error) {
	return f.counters, nil
}

func (f *fakeCatalogService) About(ctx context.Context) (*model.About, error) {
	return f.about, f.aboutErr
}

func (f *fakeCatalogService) UpdateAbout(ctx context.Context, about *model.About) error {
	f.updated = about
	return f.updateErr
}

// denyAll stands in for the staff middleware.
func denyAll(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
}

func doRequest(t *testing.T, app *fiber.App, method, target, body string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test(%s %s): %v", method, target, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, data
}

func decodeMap(t *testing.T, data []byte) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("decode %q: %v", data, err)
	}
	return out
}
