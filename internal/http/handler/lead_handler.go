package handler

import (
	"errors"
	"strings"

	"github.com/cdentertainment/site-api/internal/app/model"
	"github.com/cdentertainment/site-api/internal/app/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// LeadDeps groups dependencies required by the contact and intake form handlers.
type LeadDeps struct {
	Logger   *zap.Logger
	Contacts service.ContactService
	Intakes  service.IntakeFormService

	RequireStaff fiber.Handler
	WriteLimit   fiber.Handler
}

// LeadHandler serves the public lead forms and their staff listings.
type LeadHandler struct {
	logger       *zap.Logger
	contacts     service.ContactService
	intakes      service.IntakeFormService
	requireStaff fiber.Handler
	writeLimit   fiber.Handler
}

// NewLeadHandler creates a lead handler with the provided dependencies.
func NewLeadHandler(deps LeadDeps) *LeadHandler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LeadHandler{
		logger:       logger,
		contacts:     deps.Contacts,
		intakes:      deps.Intakes,
		requireStaff: orNext(deps.RequireStaff),
		writeLimit:   orNext(deps.WriteLimit),
	}
}

// Register wires lead routes onto the provided router.
func (h *LeadHandler) Register(router fiber.Router) {
	api := router.Group("/api")
	{
		api.Post("/contact", h.writeLimit, h.SubmitContact)

		submissions := api.Group("/admin/contact-submissions", h.requireStaff)
		submissions.Get("/", h.ListContacts)
		submissions.Delete("/:id", h.DeleteContact)

		intake := api.Group("/intake")
		intake.Post("/", h.writeLimit, h.SubmitIntake)
		intake.Get("/", h.requireStaff, h.ListIntakes)
		intake.Get("/:id", h.requireStaff, h.GetIntake)
		intake.Delete("/:id", h.requireStaff, h.DeleteIntake)
	}
}

// ContactRequest is the body of POST /api/contact.
type ContactRequest struct {
	FirstName        string  `json:"firstName" validate:"required"`
	LastName         string  `json:"lastName" validate:"required"`
	Email            string  `json:"email" validate:"required,email"`
	PhoneNumber      string  `json:"phoneNumber" validate:"required"`
	EventTypeID      flexInt `json:"eventTypeId" validate:"required,gt=0"`
	DateOfEvent      string  `json:"dateOfEvent" validate:"required"`
	VenueLocation    string  `json:"venueLocation" validate:"required"`
	EventDescription string  `json:"eventDescription" validate:"required"`
}

// SubmitContact handles POST /api/contact
func (h *LeadHandler) SubmitContact(c *fiber.Ctx) error {
	var req ContactRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}
	date, err := parseDate(req.DateOfEvent)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid field: dateOfEvent",
		})
	}

	submission := &model.ContactSubmission{
		FirstName:        strings.TrimSpace(req.FirstName),
		LastName:         strings.TrimSpace(req.LastName),
		Email:            strings.TrimSpace(req.Email),
		PhoneNumber:      strings.TrimSpace(req.PhoneNumber),
		EventTypeID:      uint(req.EventTypeID),
		DateOfEvent:      date,
		VenueLocation:    req.VenueLocation,
		EventDescription: req.EventDescription,
	}
	if err := h.contacts.Submit(userContext(c), submission); err != nil {
		if errors.Is(err, service.ErrUnknownEventType) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid field: eventTypeId",
			})
		}
		h.logger.Error("failed to submit contact form", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to submit contact form",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"id":      submission.ID,
	})
}

// ListContacts handles GET /api/admin/contact-submissions
func (h *LeadHandler) ListContacts(c *fiber.Ctx) error {
	submissions, err := h.contacts.List(userContext(c))
	if err != nil {
		h.logger.Error("failed to list contact submissions", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch submissions",
		})
	}
	if submissions == nil {
		submissions = []model.ContactSubmission{}
	}
	return c.JSON(submissions)
}

// DeleteContact handles DELETE /api/admin/contact-submissions/:id
func (h *LeadHandler) DeleteContact(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid submission ID",
		})
	}
	if err := h.contacts.Delete(userContext(c), id); err != nil {
		if errors.Is(err, service.ErrContactNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Submission not found",
			})
		}
		h.logger.Error("failed to delete contact submission", zap.Uint("id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete submission",
		})
	}
	return c.JSON(fiber.Map{"success": true})
}

// IntakeRequest is the body of POST /api/intake.
type IntakeRequest struct {
	ClientName       string   `json:"clientName" validate:"required"`
	Email            string   `json:"email" validate:"required,email"`
	PhoneNumber      string   `json:"phoneNumber" validate:"required"`
	EventDate        string   `json:"eventDate" validate:"required"`
	EventType        string   `json:"eventType" validate:"required"`
	VenueLocation    string   `json:"venueLocation" validate:"required"`
	GuestCount       flexInt  `json:"guestCount" validate:"required,gt=0"`
	EventDuration    string   `json:"eventDuration" validate:"required"`
	EventStartTime   string   `json:"eventStartTime" validate:"required"`
	EventEndTime     string   `json:"eventEndTime" validate:"required"`
	MusicGenres      []string `json:"musicGenres" validate:"required"`
	MusicEra         string   `json:"musicEra" validate:"required"`
	VolumePreference string   `json:"volumePreference" validate:"required"`

	MustPlaySongs         string `json:"mustPlaySongs"`
	MustPlaySpotifyURL    string `json:"mustPlaySpotifyUrl"`
	MustPlayAppleMusicURL string `json:"mustPlayAppleMusicUrl"`
	MustPlayOtherURL      string `json:"mustPlayOtherUrl"`

	DoNotPlaySongs         string `json:"doNotPlaySongs"`
	DoNotPlaySpotifyURL    string `json:"doNotPlaySpotifyUrl"`
	DoNotPlayAppleMusicURL string `json:"doNotPlayAppleMusicUrl"`
	DoNotPlayOtherURL      string `json:"doNotPlayOtherUrl"`

	SpecialAnnouncements string `json:"specialAnnouncements"`
	FirstDanceSong       string `json:"firstDanceSong"`
	LastDanceSong        string `json:"lastDanceSong"`
	CeremonySongs        string `json:"ceremonySongs"`
	EquipmentRequests    string `json:"equipmentRequests"`
	SetupRequirements    string `json:"setupRequirements"`
	SpecialRequests      string `json:"specialRequests"`
}

// SubmitIntake handles POST /api/intake
func (h *LeadHandler) SubmitIntake(c *fiber.Ctx) error {
	var req IntakeRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}
	date, err := parseDate(req.EventDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid field: eventDate",
		})
	}

	form := &model.IntakeForm{
		ClientName:       strings.TrimSpace(req.ClientName),
		Email:            strings.TrimSpace(req.Email),
		PhoneNumber:      strings.TrimSpace(req.PhoneNumber),
		EventDate:        date,
		EventType:        req.EventType,
		VenueLocation:    req.VenueLocation,
		GuestCount:       int(req.GuestCount),
		EventDuration:    req.EventDuration,
		EventStartTime:   req.EventStartTime,
		EventEndTime:     req.EventEndTime,
		MusicGenres:      req.MusicGenres,
		MusicEra:         req.MusicEra,
		VolumePreference: req.VolumePreference,

		MustPlaySongs:         req.MustPlaySongs,
		MustPlaySpotifyURL:    optional(req.MustPlaySpotifyURL),
		MustPlayAppleMusicURL: optional(req.MustPlayAppleMusicURL),
		MustPlayOtherURL:      optional(req.MustPlayOtherURL),

		DoNotPlaySongs:         req.DoNotPlaySongs,
		DoNotPlaySpotifyURL:    optional(req.DoNotPlaySpotifyURL),
		DoNotPlayAppleMusicURL: optional(req.DoNotPlayAppleMusicURL),
		DoNotPlayOtherURL:      optional(req.DoNotPlayOtherURL),

		SpecialAnnouncements: optional(req.SpecialAnnouncements),
		FirstDanceSong:       optional(req.FirstDanceSong),
		LastDanceSong:        optional(req.LastDanceSong),
		CeremonySongs:        optional(req.CeremonySongs),
		EquipmentRequests:    optional(req.EquipmentRequests),
		SetupRequirements:    optional(req.SetupRequirements),
		SpecialRequests:      optional(req.SpecialRequests),
	}
	if err := h.intakes.Submit(userContext(c), form); err != nil {
		h.logger.Error("failed to submit intake form", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to submit intake form",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Intake form submitted successfully",
		"id":      form.ID,
	})
}

// ListIntakes handles GET /api/intake?limit=&offset=
func (h *LeadHandler) ListIntakes(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	forms, err := h.intakes.List(userContext(c), limit, offset)
	if err != nil {
		h.logger.Error("failed to list intake forms", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch intake forms",
		})
	}
	if forms == nil {
		forms = []model.IntakeForm{}
	}
	return c.JSON(forms)
}

// GetIntake handles GET /api/intake/:id
func (h *LeadHandler) GetIntake(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badIntakeID(c)
	}
	form, err := h.intakes.Get(userContext(c), id)
	if err != nil {
		return h.intakeError(c, id, err, "Failed to fetch intake form")
	}
	return c.JSON(form)
}

// DeleteIntake handles DELETE /api/intake/:id
func (h *LeadHandler) DeleteIntake(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badIntakeID(c)
	}
	if err := h.intakes.Delete(userContext(c), id); err != nil {
		return h.intakeError(c, id, err, "Failed to delete intake form")
	}
	return c.JSON(fiber.Map{"message": "Intake form deleted successfully"})
}

func badIntakeID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Invalid intake form ID",
	})
}

func (h *LeadHandler) intakeError(c *fiber.Ctx, id uint, err error, msg string) error {
	if errors.Is(err, service.ErrIntakeNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Intake form not found",
		})
	}
	h.logger.Error(strings.ToLower(msg), zap.Uint("id", id), zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": msg,
	})
}
