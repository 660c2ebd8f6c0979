package services

import (
	"errors"
	"fmt"

	"github.com/RehanAli357/baby-food/models"
	"github.com/google/uuid"
)

// Event types a viewer can send.
const (
	EventSelectAgeGroup = "select_age_group"
	EventSetSearch      = "set_search"
)

var ErrUnknownEvent = errors.New("unknown view event")

// ViewState is the whole of a viewer's UI state.
type ViewState struct {
	SelectedAgeGroup string `json:"age_group"`
	SearchText       string `json:"search"`
}

// InitialViewState shows everything.
func InitialViewState() ViewState {
	return ViewState{SelectedAgeGroup: AllAgeGroups}
}

func (s ViewState) SelectAgeGroup(group string) ViewState {
	s.SelectedAgeGroup = group
	return s
}

func (s ViewState) SetSearch(text string) ViewState {
	s.SearchText = text
	return s
}

// ViewEvent is one user input: a dropdown selection or the search box text.
type ViewEvent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Transition applies ev to s.
func (s ViewState) Transition(ev ViewEvent) (ViewState, error) {
	switch ev.Type {
	case EventSelectAgeGroup:
		return s.SelectAgeGroup(ev.Value), nil
	case EventSetSearch:
		return s.SetSearch(ev.Value), nil
	default:
		return s, fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Type)
	}
}

// ViewSession is one viewer: its state and the filtered list derived from
// it. Every accepted event recomputes the list before Apply returns. A
// session is owned by a single goroutine.
type ViewSession struct {
	ID      uuid.UUID
	catalog *Catalog
	state   ViewState
	result  []models.FoodRecord
}

func NewViewSession(c *Catalog) *ViewSession {
	s := &ViewSession{
		ID:      uuid.New(),
		catalog: c,
		state:   InitialViewState(),
	}
	s.result = c.FilterState(s.state)
	return s
}

// Apply moves the session to its next state. On error the state and result
// are unchanged.
func (s *ViewSession) Apply(ev ViewEvent) error {
	next, err := s.state.Transition(ev)
	if err != nil {
		return err
	}
	s.state = next
	s.result = s.catalog.FilterState(next)
	return nil
}

func (s *ViewSession) State() ViewState { return s.state }

func (s *ViewSession) Result() []models.FoodRecord { return s.result }
