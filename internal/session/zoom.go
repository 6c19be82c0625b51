package session

import (
	"fmt"

	"github.com/paulmach/orb"

	"github.com/rendis/geopaint/internal/engine/flight"
	"github.com/rendis/geopaint/internal/engine/geo"
	"github.com/rendis/geopaint/internal/engine/render"
	"github.com/rendis/geopaint/internal/model"
)

// Surface returns the handle of the live render tree: canvas size and the
// transform attribute on the map root.
func (s *Session) Surface() render.Surface {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.surfaceLocked()
}

// must hold s.mu
func (s *Session) surfaceLocked() render.Surface {
	return render.Surface{Width: s.width, Height: s.height, Transform: s.view.String()}
}

// Viewport returns the current pan/zoom.
func (s *Session) Viewport() model.ViewportTransform {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// Context returns the projection context of the current canvas size.
func (s *Session) Context() geo.ProjectionContext {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pctx
}

// Resize changes the canvas size. The projection is rebuilt, a running
// flight picks up the new context and the selection is reframed.
func (s *Session) Resize(width, height float64) error {
	if !(width > 0) || !(height > 0) {
		return fmt.Errorf("resize to %gx%g: size must be positive", width, height)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if width == s.width && height == s.height {
		return nil
	}
	s.width, s.height = width, height
	s.pctx = geo.NewProjectionContext(s.projections.Get(width, height), s.points)
	s.player.UpdateContext(s.pctx)
	s.scheduleAutoZoomLocked()
	return nil
}

// ZoomToSelection frames the selected countries and returns the new
// viewport. An empty selection resets the view.
func (s *Session) ZoomToSelection() model.ViewportTransform {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.zoomGen++
	s.zoomToSelectionLocked()
	return s.view
}

// ResetZoom returns to the unzoomed view and clears any finished flight
// overlay.
func (s *Session) ResetZoom() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.zoomGen++
	s.view = geo.ResetTransform()
	if s.player.State() != flight.Playing {
		s.frame = nil
	}
}

// CancelAutoZoom drops a pending debounced zoom.
func (s *Session) CancelAutoZoom() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelAutoZoomLocked()
}

// must hold s.mu
func (s *Session) cancelAutoZoomLocked() {
	s.zoomGen++
	if s.debounced != nil {
		s.debounced(func() {})
	}
}

// must hold s.mu
func (s *Session) scheduleAutoZoomLocked() {
	if s.player.State() == flight.Playing {
		return
	}
	s.zoomGen++
	if s.debounced == nil {
		s.zoomToSelectionLocked()
		return
	}
	gen := s.zoomGen
	s.debounced(func() { s.autoZoom(gen) })
}

func (s *Session) autoZoom(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.zoomGen || s.player.State() == flight.Playing {
		return
	}
	s.zoomToSelectionLocked()
	s.logger.Printf("AUTO_ZOOM view=%s", s.view)
}

// must hold s.mu
func (s *Session) zoomToSelectionLocked() {
	sel := s.allSelectedLocked()
	if len(sel) == 0 {
		s.view = geo.ResetTransform()
		return
	}
	bbox, ok := s.selectionBoundsLocked(sel)
	if !ok {
		return
	}
	s.view = geo.ZoomTransformFor(bbox, s.width, s.height, s.pctx.Projection, ZoomPadding)
}

// selectionBoundsLocked prefers country geometry and falls back to the
// reference points when no boundaries are loaded or none match.
func (s *Session) selectionBoundsLocked(sel []model.CountryCode) (orb.Bound, bool) {
	if s.boundaries != nil {
		if b, ok := s.boundaries.BoundsOf(sel); ok {
			return b, true
		}
	}
	var pts []orb.Point
	for _, c := range sel {
		if p, ok := s.points.Lookup(c); ok {
			pts = append(pts, p)
		}
	}
	return geo.BoundingBoxOfPoints(pts)
}
