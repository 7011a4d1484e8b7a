package service

import (
	"context"
	"errors"

	"github.com/cdentertainment/site-api/internal/app/model"
)

// ErrIntakeNotReady is returned when an action is not valid in the session's current state.
var ErrIntakeNotReady = errors.New("song request session is not ready for this action")

// IntakeState is a step of the guest song request flow.
type IntakeState int

const (
	// IntakeClosed is terminal for the session: the gate was closed when it loaded.
	IntakeClosed IntakeState = iota
	IntakeIdle
	IntakeSearching
	IntakeResultsShown
	IntakeSubmitting
)

func (s IntakeState) String() string {
	switch s {
	case IntakeClosed:
		return "closed"
	case IntakeIdle:
		return "idle"
	case IntakeSearching:
		return "searching"
	case IntakeResultsShown:
		return "results"
	case IntakeSubmitting:
		return "submitting"
	default:
		return "unknown"
	}
}

// IntakeSession drives one guest through search, select and submit.
//
// The gate is read once in Load. Submit does not re-check it here; the store
// rejects the insert if the gate closed in the meantime. A session is not safe
// for concurrent use.
type IntakeSession struct {
	svc SongRequestService

	state       IntakeState
	query       string
	results     []model.SongCandidate
	recent      []model.SongRequest
	err         error
	submittedID uint
}

// NewIntakeSession returns a session that stays closed until Load succeeds.
func NewIntakeSession(svc SongRequestService) *IntakeSession {
	return &IntakeSession{svc: svc, state: IntakeClosed}
}

// Load fetches the gate state and the recent requests list.
func (s *IntakeSession) Load(ctx context.Context) error {
	s.err = nil
	accepting, err := s.svc.IsAcceptingRequests(ctx)
	if err != nil {
		s.state = IntakeClosed
		s.err = err
		return err
	}
	if !accepting {
		s.state = IntakeClosed
		return nil
	}
	s.state = IntakeIdle
	return s.refreshRecent(ctx)
}

// Resume puts an open session back into the results step, used when the
// results were rendered by an earlier request.
func (s *IntakeSession) Resume(query string, shown []model.SongCandidate) error {
	if s.state == IntakeClosed {
		return ErrRequestsClosed
	}
	s.query = query
	s.results = shown
	s.state = IntakeResultsShown
	return nil
}

// Search runs a query against the search provider and shows the candidates.
func (s *IntakeSession) Search(ctx context.Context, query string) error {
	if s.state == IntakeClosed {
		return ErrRequestsClosed
	}
	s.err = nil
	s.query = query
	s.state = IntakeSearching

	results, err := s.svc.SearchSongs(ctx, query)
	if err != nil {
		s.results = nil
		s.err = err
		s.state = IntakeIdle
		return err
	}
	s.results = results
	s.state = IntakeResultsShown
	return nil
}

// Select submits one of the shown candidates as a song request.
func (s *IntakeSession) Select(ctx context.Context, candidate model.SongCandidate) (uint, error) {
	if s.state != IntakeResultsShown {
		if s.state == IntakeClosed {
			return 0, ErrRequestsClosed
		}
		return 0, ErrIntakeNotReady
	}
	s.err = nil
	s.state = IntakeSubmitting

	id, err := s.svc.SubmitSongRequest(ctx, candidate)
	if err != nil {
		s.err = err
		s.state = IntakeResultsShown
		return 0, err
	}

	s.submittedID = id
	s.query = ""
	s.results = nil
	s.state = IntakeIdle
	// The request is stored; a failed list refresh only shows up via Err.
	_ = s.refreshRecent(ctx)
	return id, nil
}

func (s *IntakeSession) refreshRecent(ctx context.Context) error {
	recent, err := s.svc.ListActiveRequests(ctx)
	if err != nil {
		s.err = err
		return err
	}
	s.recent = recent
	return nil
}

func (s *IntakeSession) State() IntakeState             { return s.state }
func (s *IntakeSession) Query() string                  { return s.query }
func (s *IntakeSession) Results() []model.SongCandidate { return s.results }
func (s *IntakeSession) Recent() []model.SongRequest    { return s.recent }
func (s *IntakeSession) Err() error                     { return s.err }

// SubmittedID is the id of the last successful submission, or 0.
func (s *IntakeSession) SubmittedID() uint { return s.submittedID }
