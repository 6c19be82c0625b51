package session

import (
	"errors"
	"strings"
	"time"

	"github.com/rendis/geopaint/internal/engine/flight"
	"github.com/rendis/geopaint/internal/model"
)

// FlightCallbacks receive flight events. OnStop gets nil for StopFlight and
// the reason for an abort; without OnStop an abort reports through
// OnComplete.
type FlightCallbacks struct {
	OnFrame    func(flight.Frame)
	OnComplete func()
	OnStop     func(error)
}

// PlayFlight animates a flight between two countries given as any token
// the registry resolves. Every frame writes the camera into the viewport.
// Pending auto zooms are dropped and new ones are skipped until the flight
// ends.
func (s *Session) PlayFlight(origin, dest string, d time.Duration, themeID string, cb FlightCallbacks) error {
	s.CancelAutoZoom()
	from, to := s.resolve(origin), s.resolve(dest)

	s.mu.Lock()
	if s.player.State() == flight.Playing {
		s.mu.Unlock()
		return flight.ErrAlreadyPlaying
	}
	s.flightSeq++
	run, prev := s.flightSeq, s.liveFlight
	s.liveFlight = run
	s.mu.Unlock()

	err := s.player.Play(from, to, d, flight.ThemeByID(themeID), s.flightCallbacks(run, cb))
	if errors.Is(err, flight.ErrAlreadyPlaying) {
		s.mu.Lock()
		if s.liveFlight == run {
			s.liveFlight = prev
		}
		s.mu.Unlock()
	}
	return err
}

// flightCallbacks wraps cb for one run. Events of a run that is no longer
// live leave the session untouched: a frame computed just before a stop
// may arrive after it.
func (s *Session) flightCallbacks(run uint64, cb FlightCallbacks) flight.Callbacks {
	return flight.Callbacks{
		OnFrame: func(f flight.Frame) {
			s.mu.Lock()
			if s.liveFlight != run {
				s.mu.Unlock()
				return
			}
			s.view = f.Camera
			s.frame = &f
			s.mu.Unlock()
			if cb.OnFrame != nil {
				cb.OnFrame(f)
			}
		},
		OnComplete: func() {
			s.mu.Lock()
			if s.liveFlight == run {
				s.liveFlight = 0
			}
			s.mu.Unlock()
			if cb.OnComplete != nil {
				cb.OnComplete()
			}
		},
		OnStop: func(err error) {
			s.mu.Lock()
			if s.liveFlight == run {
				s.liveFlight = 0
				s.frame = nil
				s.scheduleAutoZoomLocked()
			}
			s.mu.Unlock()
			switch {
			case cb.OnStop != nil:
				cb.OnStop(err)
			case err != nil && cb.OnComplete != nil:
				cb.OnComplete()
			}
		},
	}
}

// StopFlight stops a playing flight and reframes the selection. It reports
// whether a flight was playing.
func (s *Session) StopFlight() bool {
	return s.player.Stop()
}

// FlightState is the player's lifecycle state.
func (s *Session) FlightState() flight.State {
	return s.player.State()
}

func (s *Session) resolve(token string) model.CountryCode {
	if code, ok := s.reg.Resolve(token); ok {
		return code
	}
	return model.CountryCode(strings.ToUpper(strings.TrimSpace(token)))
}

// FlightDistanceKm is the great-circle distance between the reference
// points of two countries given as any token the registry resolves.
func (s *Session) FlightDistanceKm(origin, dest string) (float64, bool) {
	return s.points.DistanceKm(s.resolve(origin), s.resolve(dest))
}
