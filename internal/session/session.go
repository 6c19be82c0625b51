package session

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/bep/debounce"

	"github.com/rendis/geopaint/internal/engine/flight"
	"github.com/rendis/geopaint/internal/engine/geo"
	"github.com/rendis/geopaint/internal/engine/render"
	"github.com/rendis/geopaint/internal/model"
)

var (
	ErrUnknownGroup  = errors.New("unknown group")
	ErrUnknownPreset = errors.New("unknown preset")
	ErrSingleMode    = errors.New("single mode keeps exactly one group")
)

const (
	DefaultWidth  = 960.0
	DefaultHeight = 500.0

	// ZoomPadding is the margin kept around a selection when zooming to it.
	ZoomPadding = 24.0
)

// groupPalette colours new groups in turn.
var groupPalette = []string{
	"#2563eb", "#dc2626", "#16a34a", "#d97706",
	"#7c3aed", "#0891b2", "#db2777", "#4b5563",
}

// Options configure a Session. Zero fields take defaults; an AutoZoomDelay
// of zero or less zooms synchronously on every selection change.
type Options struct {
	Registry      *geo.Registry
	Topology      *geo.Topology
	Points        geo.ReferencePoints
	IDs           IDGenerator
	Scheduler     flight.Scheduler
	Exporter      *render.Exporter
	AutoZoomDelay time.Duration
	Width         float64
	Height        float64
	Logger        *log.Logger
	Now           func() time.Time
}

// Session owns the map configuration, the viewport and the flight player.
// All methods are safe for concurrent use; every render should work from
// one Snapshot so it sees a consistent configuration and viewport.
type Session struct {
	reg      *geo.Registry
	topo     *geo.Topology
	points   geo.ReferencePoints
	ids      IDGenerator
	player   *flight.Player
	exporter *render.Exporter
	logger   *log.Logger
	now      func() time.Time

	projections geo.ProjectionCache
	debounced   func(func())

	mu         sync.Mutex
	cfg        model.MapViewConfiguration
	view       model.ViewportTransform
	width      float64
	height     float64
	pctx       geo.ProjectionContext
	boundaries *geo.BoundaryStore
	frame      *flight.Frame
	zoomGen    uint64
	flightSeq  uint64
	liveFlight uint64 // run whose frames may still write; 0 when none
}

func New(opts Options) *Session {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}
	if opts.Registry == nil {
		opts.Registry = geo.DefaultRegistry()
	}
	if opts.Topology == nil {
		opts.Topology = geo.DefaultTopology()
	}
	if opts.Points == nil {
		opts.Points = geo.DefaultReferencePoints()
	}
	if opts.IDs == nil {
		opts.IDs = UUIDs{}
	}
	if opts.Scheduler == nil {
		opts.Scheduler = flight.NewTickerScheduler(flight.DefaultFrameInterval)
	}
	if opts.Exporter == nil {
		opts.Exporter = render.NewExporter(opts.Logger)
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = DefaultWidth, DefaultHeight
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Session{
		reg:      opts.Registry,
		topo:     opts.Topology,
		points:   opts.Points,
		ids:      opts.IDs,
		exporter: opts.Exporter,
		logger:   opts.Logger,
		now:      opts.Now,
		view:     model.Identity(),
		width:    opts.Width,
		height:   opts.Height,
	}
	if opts.AutoZoomDelay > 0 {
		s.debounced = debounce.New(opts.AutoZoomDelay)
	}
	s.pctx = geo.NewProjectionContext(s.projections.Get(s.width, s.height), s.points)
	s.player = flight.NewPlayer(opts.Scheduler, s.pctx, s.logger)
	s.cfg = s.defaultConfig()
	return s
}

func (s *Session) defaultConfig() model.MapViewConfiguration {
	return model.MapViewConfiguration{
		Mode:   model.ModeMulti,
		Groups: []model.Group{s.newGroup(0)},
		Title: model.TitleBlock{
			Position: model.TitleCenter,
			Font:     model.FontSansBold,
			Size:     model.FontMedium,
		},
		Background:  model.Background{Color: "#ffffff"},
		BorderColor: render.DefaultBorderColor,
		Resolution:  model.Resolution1080p,
	}
}

func (s *Session) newGroup(n int) model.Group {
	return model.Group{
		ID:      s.ids.NewID(),
		Name:    fmt.Sprintf("Group %d", n+1),
		Color:   groupPalette[n%len(groupPalette)],
		Pattern: model.PatternSolid,
	}
}

// Registry is the registry the session resolves input with.
func (s *Session) Registry() *geo.Registry { return s.reg }

// Topology is the adjacency and continent table in use.
func (s *Session) Topology() *geo.Topology { return s.topo }

// Config returns a deep copy of the current configuration.
func (s *Session) Config() model.MapViewConfiguration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.Clone()
}

// LoadConfig replaces the configuration, for example from a saved project.
// Unknown codes are dropped, groups without ids get fresh ones and an empty
// group list gets one default group.
func (s *Session) LoadConfig(cfg model.MapViewConfiguration) {
	cfg = cfg.Clone()
	if cfg.Mode != model.ModeSingle {
		cfg.Mode = model.ModeMulti
	}
	for i := range cfg.Groups {
		g := &cfg.Groups[i]
		if g.ID == "" {
			g.ID = s.ids.NewID()
		}
		if !g.Pattern.Valid() {
			g.Pattern = model.PatternSolid
		}
		g.Members = s.known(g.Members)
	}
	if len(cfg.Groups) == 0 {
		cfg.Groups = []model.Group{s.newGroup(0)}
	}
	if cfg.Mode == model.ModeSingle {
		cfg.Groups = mergeGroups(cfg.Groups)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
	s.selectionChangedLocked()
}

// Snapshot is a consistent view of the session for one render pass.
type Snapshot struct {
	Config     model.MapViewConfiguration
	View       model.ViewportTransform
	Context    geo.ProjectionContext
	Surface    render.Surface
	Boundaries *geo.BoundaryStore
	Flight     *flight.Frame
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		Config:     s.cfg.Clone(),
		View:       s.view,
		Context:    s.pctx,
		Surface:    s.surfaceLocked(),
		Boundaries: s.boundaries,
	}
	if s.frame != nil {
		fr := *s.frame
		snap.Flight = &fr
	}
	return snap
}

// SetBoundaries installs the loaded country geometry.
func (s *Session) SetBoundaries(bs *geo.BoundaryStore) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.boundaries = bs
	s.selectionChangedLocked()
}

func (s *Session) Boundaries() *geo.BoundaryStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.boundaries
}

// SetMode switches between single and multi group selection. Going to
// single merges every group's members into the first group.
func (s *Session) SetMode(mode model.SelectionMode) error {
	if mode != model.ModeSingle && mode != model.ModeMulti {
		return fmt.Errorf("unknown selection mode %q", mode)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cfg.Mode == mode {
		return nil
	}
	s.cfg.Mode = mode
	if mode == model.ModeSingle {
		s.cfg.Groups = mergeGroups(s.cfg.Groups)
		s.selectionChangedLocked()
	}
	return nil
}

// mergeGroups folds all members into the first group, first occurrence
// order, no repeats.
func mergeGroups(groups []model.Group) []model.Group {
	first := groups[0].Clone()
	first.Members = dedupe(allMembers(groups))
	return []model.Group{first}
}

// AddGroup appends a new empty group and returns its id.
func (s *Session) AddGroup() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cfg.Mode == model.ModeSingle {
		return "", ErrSingleMode
	}
	g := s.newGroup(len(s.cfg.Groups))
	s.cfg.Groups = append(s.cfg.Groups, g)
	return g.ID, nil
}

// RemoveGroup deletes a group. Removing the last remaining group is a no-op.
func (s *Session) RemoveGroup(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.groupIndexLocked(id)
	if i < 0 {
		return fmt.Errorf("removing %s: %w", id, ErrUnknownGroup)
	}
	if len(s.cfg.Groups) == 1 {
		return nil
	}
	s.cfg.Groups = append(s.cfg.Groups[:i], s.cfg.Groups[i+1:]...)
	s.selectionChangedLocked()
	return nil
}

// GroupPatch holds the fields UpdateGroup changes. Nil fields are left
// alone.
type GroupPatch struct {
	Name    *string
	Color   *string
	Pattern *model.FillPattern
	Members []model.CountryCode
}

func (s *Session) UpdateGroup(id string, patch GroupPatch) error {
	if patch.Pattern != nil && !patch.Pattern.Valid() {
		return fmt.Errorf("updating %s: unknown pattern %q", id, *patch.Pattern)
	}
	if patch.Color != nil {
		if _, err := render.ParseHexColor(*patch.Color); err != nil {
			return fmt.Errorf("updating %s: %w", id, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.groupIndexLocked(id)
	if i < 0 {
		return fmt.Errorf("updating %s: %w", id, ErrUnknownGroup)
	}
	g := &s.cfg.Groups[i]
	if patch.Name != nil {
		g.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Color != nil {
		g.Color = *patch.Color
	}
	if patch.Pattern != nil {
		g.Pattern = *patch.Pattern
	}
	if patch.Members != nil {
		g.Members = dedupe(s.known(patch.Members))
		s.selectionChangedLocked()
	}
	return nil
}

// SetGroupCountriesFromText parses raw and replaces the group's members
// with the valid codes. The parse result is returned for display.
func (s *Session) SetGroupCountriesFromText(id, raw string) (geo.ParseResult, error) {
	res := s.reg.ParseList(raw)
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.groupIndexLocked(id)
	if i < 0 {
		return res, fmt.Errorf("setting countries of %s: %w", id, ErrUnknownGroup)
	}
	s.cfg.Groups[i].Members = append([]model.CountryCode(nil), res.Valid...)
	s.selectionChangedLocked()
	return res, nil
}

// ApplyPreset overwrites a group's members with a preset list.
func (s *Session) ApplyPreset(presetID, groupID string) error {
	p, ok := geo.LookupPreset(presetID)
	if !ok {
		return fmt.Errorf("applying %q: %w", presetID, ErrUnknownPreset)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.groupIndexLocked(groupID)
	if i < 0 {
		return fmt.Errorf("applying %q to %s: %w", presetID, groupID, ErrUnknownGroup)
	}
	s.cfg.Groups[i].Members = s.known(p.Members)
	s.logger.Printf("PRESET id=%s group=%s members=%d", p.ID, groupID, len(s.cfg.Groups[i].Members))
	s.selectionChangedLocked()
	return nil
}

// AddNeighbors adds every land neighbour of the whole selection to a group
// and returns the codes added.
func (s *Session) AddNeighbors(groupID string) ([]model.CountryCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.groupIndexLocked(groupID)
	if i < 0 {
		return nil, fmt.Errorf("adding neighbours to %s: %w", groupID, ErrUnknownGroup)
	}
	added := s.known(s.topo.AllNeighborsOf(s.allSelectedLocked()))
	s.cfg.Groups[i].Members = append(s.cfg.Groups[i].Members, added...)
	if len(added) > 0 {
		s.selectionChangedLocked()
	}
	return added, nil
}

// SelectContinent adds the members of a continent to a group and returns
// the codes that were not already in it.
func (s *Session) SelectContinent(c geo.Continent, groupID string) ([]model.CountryCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.groupIndexLocked(groupID)
	if i < 0 {
		return nil, fmt.Errorf("selecting %s into %s: %w", c, groupID, ErrUnknownGroup)
	}
	g := &s.cfg.Groups[i]
	var added []model.CountryCode
	for _, code := range s.topo.CountriesIn(c) {
		if !g.Has(code) {
			g.Members = append(g.Members, code)
			added = append(added, code)
		}
	}
	if len(added) > 0 {
		s.selectionChangedLocked()
	}
	return added, nil
}

// InvertSelection puts every unselected country into the target group and
// empties the other groups.
func (s *Session) InvertSelection(groupID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.groupIndexLocked(groupID)
	if i < 0 {
		return fmt.Errorf("inverting into %s: %w", groupID, ErrUnknownGroup)
	}
	inverse := s.topo.Inverse(s.allSelectedLocked())
	for j := range s.cfg.Groups {
		s.cfg.Groups[j].Members = nil
	}
	s.cfg.Groups[i].Members = inverse
	s.selectionChangedLocked()
	return nil
}

// AllSelectedCountries returns every selected code once, in group order.
func (s *Session) AllSelectedCountries() []model.CountryCode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.allSelectedLocked()
}

// CountryColorMap maps each selected code to its group colour. A code in
// several groups takes the colour of the last one.
func (s *Session) CountryColorMap() map[model.CountryCode]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[model.CountryCode]string)
	for _, g := range s.cfg.Groups {
		for _, c := range g.Members {
			out[c] = g.Color
		}
	}
	return out
}

func (s *Session) SetTitle(t model.TitleBlock) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.Title = t
}

func (s *Session) SetBackground(b model.Background) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.Background = b
}

func (s *Session) SetBorderColor(c string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.BorderColor = c
}

func (s *Session) SetResolution(r model.ResolutionPreset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.Resolution = r
}

// must hold s.mu
func (s *Session) groupIndexLocked(id string) int {
	for i, g := range s.cfg.Groups {
		if g.ID == id {
			return i
		}
	}
	return -1
}

// must hold s.mu
func (s *Session) allSelectedLocked() []model.CountryCode {
	return dedupe(allMembers(s.cfg.Groups))
}

// must hold s.mu
func (s *Session) selectionChangedLocked() {
	s.scheduleAutoZoomLocked()
}

// known keeps the codes the registry recognises, normalised to upper case.
func (s *Session) known(codes []model.CountryCode) []model.CountryCode {
	out := make([]model.CountryCode, 0, len(codes))
	for _, c := range codes {
		c = model.CountryCode(strings.ToUpper(strings.TrimSpace(string(c))))
		if s.reg.Contains(c) {
			out = append(out, c)
		}
	}
	return out
}

func allMembers(groups []model.Group) []model.CountryCode {
	var out []model.CountryCode
	for _, g := range groups {
		out = append(out, g.Members...)
	}
	return out
}

func dedupe(codes []model.CountryCode) []model.CountryCode {
	seen := make(map[model.CountryCode]bool, len(codes))
	out := make([]model.CountryCode, 0, len(codes))
	for _, c := range codes {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}
