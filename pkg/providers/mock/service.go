package mock

import (
	"context"
	"sync"

	"github.com/alemhq/alem/pkg/llm"
)

// Service is a scripted text service for tests and local runs. Per-call
// functions take precedence over fixed results; call counts let tests assert
// how many external calls a path issued.
type Service struct {
	cfg ServiceConfig

	mu            sync.Mutex
	classifyCalls int
	completeCalls int
}

type ServiceConfig struct {
	ClassifyResult string
	ClassifyErr    error
	ClassifyFn     func(prompt string) (string, error)

	CompleteResult string
	CompleteErr    error
	CompleteFn     func(prompt string) (string, error)
}

func NewService(cfg ServiceConfig) *Service {
	if cfg.ClassifyResult == "" {
		cfg.ClassifyResult = "en"
	}
	if cfg.CompleteResult == "" {
		cfg.CompleteResult = "I hear you, and I am here with you."
	}
	return &Service{cfg: cfg}
}

func (s *Service) Name() string { return "mock" }

func (s *Service) Classify(ctx context.Context, prompt string) (string, error) {
	s.mu.Lock()
	s.classifyCalls++
	s.mu.Unlock()
	if s.cfg.ClassifyFn != nil {
		return s.cfg.ClassifyFn(prompt)
	}
	if s.cfg.ClassifyErr != nil {
		return "", s.cfg.ClassifyErr
	}
	return s.cfg.ClassifyResult, nil
}

func (s *Service) Complete(ctx context.Context, prompt string) (string, error) {
	s.mu.Lock()
	s.completeCalls++
	s.mu.Unlock()
	if s.cfg.CompleteFn != nil {
		return s.cfg.CompleteFn(prompt)
	}
	if s.cfg.CompleteErr != nil {
		return "", s.cfg.CompleteErr
	}
	return s.cfg.CompleteResult, nil
}

// ClassifyCalls returns how many classify calls have been issued.
func (s *Service) ClassifyCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.classifyCalls
}

// CompleteCalls returns how many complete calls have been issued.
func (s *Service) CompleteCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completeCalls
}

var _ llm.Service = (*Service)(nil)
