package handler

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/cdentertainment/site-api/internal/app/model"
	"github.com/cdentertainment/site-api/internal/app/service"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLeadApp(contacts service.ContactService, intakes service.IntakeFormService, staff fiber.Handler) *fiber.App {
	app := fiber.New()
	NewLeadHandler(LeadDeps{Contacts: contacts, Intakes: intakes, RequireStaff: staff}).Register(app)
	return app
}

const validContact = `{
	"firstName":"Dana","lastName":"Reyes","email":"dana@example.com","phoneNumber":"555-0100",
	"eventTypeId":"3","dateOfEvent":"2026-06-20","venueLocation":"Harbor Hall","eventDescription":"Wedding reception"
}`

func TestLeadHandler_SubmitContact(t *testing.T) {
	var got *model.ContactSubmission
	contacts := &fakeContactService{submitFn: func(ctx context.Context, s *model.ContactSubmission) error {
		got = s
		s.ID = 11
		return nil
	}}
	resp, data := doRequest(t, newLeadApp(contacts, &fakeIntakeService{}, nil), fiber.MethodPost, "/api/contact", validContact)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(data))
	assert.JSONEq(t, `{"success":true,"id":11}`, string(data))
	assert.Equal(t, uint(3), got.EventTypeID, "string ids from selects are accepted")
	assert.Equal(t, time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC), got.DateOfEvent)
}

func TestLeadHandler_SubmitContactValidation(t *testing.T) {
	cases := map[string]struct {
		body string
		msg  string
	}{
		"missing first name": {`{"lastName":"R","email":"a@b.co","phoneNumber":"1","eventTypeId":1,"dateOfEvent":"2026-06-20","venueLocation":"v","eventDescription":"d"}`, "Missing required field: firstName"},
		"bad email":          {`{"firstName":"D","lastName":"R","email":"nope","phoneNumber":"1","eventTypeId":1,"dateOfEvent":"2026-06-20","venueLocation":"v","eventDescription":"d"}`, "email must be a valid email address"},
		"bad date":           {`{"firstName":"D","lastName":"R","email":"a@b.co","phoneNumber":"1","eventTypeId":1,"dateOfEvent":"soon","venueLocation":"v","eventDescription":"d"}`, "Invalid field: dateOfEvent"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			resp, data := doRequest(t, newLeadApp(&fakeContactService{}, &fakeIntakeService{}, nil), fiber.MethodPost, "/api/contact", tc.body)
			require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, tc.msg, decodeMap(t, data)["error"])
		})
	}
}

func TestLeadHandler_SubmitContactUnknownEventType(t *testing.T) {
	contacts := &fakeContactService{submitFn: func(ctx context.Context, s *model.ContactSubmission) error {
		return fmt.Errorf("event type %d: %w", s.EventTypeID, service.ErrUnknownEventType)
	}}
	resp, _ := doRequest(t, newLeadApp(contacts, &fakeIntakeService{}, nil), fiber.MethodPost, "/api/contact", validContact)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestLeadHandler_ContactSubmissionsAreStaffOnly(t *testing.T) {
	app := newLeadApp(&fakeContactService{}, &fakeIntakeService{}, denyAll)

	resp, _ := doRequest(t, app, fiber.MethodGet, "/api/admin/contact-submissions", "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	resp, _ = doRequest(t, app, fiber.MethodGet, "/api/intake", "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	resp, _ = doRequest(t, app, fiber.MethodPost, "/api/contact", validContact)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode, "the contact form stays public")
}

func TestLeadHandler_DeleteContact(t *testing.T) {
	contacts := &fakeContactService{deleteFn: func(ctx context.Context, id uint) error {
		if id == 2 {
			return nil
		}
		return service.ErrContactNotFound
	}}
	app := newLeadApp(contacts, &fakeIntakeService{}, nil)

	resp, _ := doRequest(t, app, fiber.MethodDelete, "/api/admin/contact-submissions/2", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp, _ = doRequest(t, app, fiber.MethodDelete, "/api/admin/contact-submissions/3", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	resp, data := doRequest(t, app, fiber.MethodDelete, "/api/admin/contact-submissions/x", "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid submission ID", decodeMap(t, data)["error"])
}

const validIntake = `{
	"clientName":"Dana Reyes","email":"dana@example.com","phoneNumber":"555-0100","eventDate":"2026-06-20T18:00:00Z",
	"eventType":"Wedding","venueLocation":"Harbor Hall","guestCount":"120","eventDuration":"5 hours",
	"eventStartTime":"18:00","eventEndTime":"23:00","musicGenres":["Pop","Motown"],"musicEra":"Mixed",
	"volumePreference":"Moderate","firstDanceSong":"Perfect","mustPlaySpotifyUrl":""
}`

func TestLeadHandler_SubmitIntake(t *testing.T) {
	var got *model.IntakeForm
	intakes := &fakeIntakeService{submitFn: func(ctx context.Context, form *model.IntakeForm) error {
		got = form
		form.ID = 4
		return nil
	}}
	resp, data := doRequest(t, newLeadApp(&fakeContactService{}, intakes, nil), fiber.MethodPost, "/api/intake", validIntake)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(data))
	assert.JSONEq(t, `{"message":"Intake form submitted successfully","id":4}`, string(data))
	assert.Equal(t, 120, got.GuestCount)
	assert.Equal(t, []string{"Pop", "Motown"}, []string(got.MusicGenres))
	require.NotNil(t, got.FirstDanceSong)
	assert.Equal(t, "Perfect", *got.FirstDanceSong)
	assert.Nil(t, got.MustPlaySpotifyURL, "blank optional links are stored as null")
}

func TestLeadHandler_SubmitIntakeMissingField(t *testing.T) {
	body := `{"clientName":"Dana","email":"dana@example.com","phoneNumber":"1","eventDate":"2026-06-20",
		"eventType":"Wedding","venueLocation":"Hall","eventDuration":"5h","eventStartTime":"18:00",
		"eventEndTime":"23:00","musicGenres":[],"musicEra":"Mixed","volumePreference":"Loud"}`
	resp, data := doRequest(t, newLeadApp(&fakeContactService{}, &fakeIntakeService{}, nil), fiber.MethodPost, "/api/intake", body)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Missing required field: guestCount", decodeMap(t, data)["error"])
}

func TestLeadHandler_IntakeListAndLookup(t *testing.T) {
	var gotLimit, gotOffset int
	intakes := &fakeIntakeService{
		listFn: func(ctx context.Context, limit, offset int) ([]model.IntakeForm, error) {
			gotLimit, gotOffset = limit, offset
			return nil, nil
		},
		getFn: func(ctx context.Context, id uint) (*model.IntakeForm, error) {
			return nil, service.ErrIntakeNotFound
		},
	}
	app := newLeadApp(&fakeContactService{}, intakes, nil)

	resp, data := doRequest(t, app, fiber.MethodGet, "/api/intake?limit=10&offset=20", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(data))
	assert.Equal(t, 10, gotLimit)
	assert.Equal(t, 20, gotOffset)

	resp, _ = doRequest(t, app, fiber.MethodGet, "/api/intake", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 50, gotLimit)

	resp, _ = doRequest(t, app, fiber.MethodGet, "/api/intake/99", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	resp, data = doRequest(t, app, fiber.MethodDelete, "/api/intake/zero", "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid intake form ID", decodeMap(t, data)["error"])
}
