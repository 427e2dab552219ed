package overlay

import (
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/ruminaider/popcal/internal/stream"
)

// Service creates Refs and composites them over a frame in creation order.
type Service struct {
	mu       sync.Mutex
	refs     []*Ref
	scrolled *stream.Subject[struct{}]
	logger   *slog.Logger
}

// NewService returns a Service. A nil logger discards output.
func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		scrolled: stream.NewSubject[struct{}](),
		logger:   logger,
	}
}

// Create registers a new Ref with cfg.
func (s *Service) Create(cfg Config) *Ref {
	ref := &Ref{
		id:       uuid.New(),
		cfg:      cfg,
		service:  s,
		logger:   s.logger,
		detached: stream.NewSubject[struct{}](),
	}
	s.mu.Lock()
	s.refs = append(s.refs, ref)
	s.mu.Unlock()
	s.logger.Debug("overlay created", "ref", ref.id)
	return ref
}

// ScrollStrategies returns the scroll strategies bound to this service.
func (s *Service) ScrollStrategies() ScrollStrategyOptions {
	return ScrollStrategyOptions{scrolled: s.scrolled.AsObservable()}
}

// NotifyScroll tells scroll strategies that the surface moved or resized.
func (s *Service) NotifyScroll() {
	s.scrolled.Next(struct{}{})
}

// Len returns the number of live refs.
func (s *Service) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.refs)
}

// Render composites every attached ref over background.
func (s *Service) Render(background string, viewport Size) string {
	s.mu.Lock()
	refs := append([]*Ref(nil), s.refs...)
	s.mu.Unlock()

	out := background
	for _, r := range refs {
		out = r.Render(out, viewport)
	}
	return out
}

func (s *Service) remove(ref *Ref) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.refs {
		if r == ref {
			s.refs = append(s.refs[:i], s.refs[i+1:]...)
			return
		}
	}
}
