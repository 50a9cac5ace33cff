package lookup

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	commonhttp "bizplan-intake/internal/common/http"
	"bizplan-intake/internal/common/logger"
	"bizplan-intake/internal/common/metrics"
)

const (
	BusinessTypesPath = "/api/business-types"
	IndustryTypesPath = "/api/industry-types"

	ListBusinessTypes = "business_types"
	ListIndustryTypes = "industry_types"
)

const snippetLength = 120

var errNotAList = errors.New("LOOKUP_RESPONSE_NOT_A_LIST")

// RemoteSource loads one list from the intake API the first time it is
// needed and serves every later call from memory. A failed load is logged,
// yields an empty list and is tried again by the next call.
type RemoteSource[T Named] struct {
	client *commonhttp.Client
	url    string
	list   string
	logger logger.Logger

	loadMu  sync.Mutex
	mu      sync.RWMutex
	options []T
	loaded  bool
	closed  bool
}

func NewRemoteSource[T Named](baseURL, path, list string, client *commonhttp.Client, log logger.Logger) *RemoteSource[T] {
	return &RemoteSource[T]{
		client: client,
		url:    strings.TrimRight(baseURL, "/") + path,
		list:   list,
		logger: log.WithFields(map[string]interface{}{
			"list":   list,
			"source": "remote",
		}),
	}
}

// List returns the loaded options. It never fails. The load outlives the
// caller's cancellation and is bounded by the client timeout.
func (s *RemoteSource[T]) List(ctx context.Context) ([]T, error) {
	if options, done := s.snapshot(); done {
		return options, nil
	}

	s.loadMu.Lock()
	if _, done := s.snapshot(); !done {
		s.load(context.WithoutCancel(ctx))
	}
	s.loadMu.Unlock()

	options, _ := s.snapshot()
	return options, nil
}

func (s *RemoteSource[T]) snapshot() ([]T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.options == nil {
		return []T{}, s.loaded || s.closed
	}
	return s.options, s.loaded || s.closed
}

// Close discards any response that arrives afterwards.
func (s *RemoteSource[T]) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

func (s *RemoteSource[T]) load(ctx context.Context) {
	metrics.LookupRequests.WithLabelValues(s.list, "remote").Inc()

	options, err := s.fetch(ctx)
	if errors.Is(err, errNotAList) {
		s.logger.Warn("Lookup response is not a list", map[string]interface{}{"url": s.url})
		return
	}
	if err != nil {
		s.logger.Error("Failed to load lookup options", map[string]interface{}{
			"url":   s.url,
			"error": err,
		})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		s.logger.Debug("Discarding lookup response after close", nil)
		return
	}
	s.options = options
	s.loaded = true

	s.logger.Info("Lookup options loaded", map[string]interface{}{
		"count": len(options),
	})
}

func (s *RemoteSource[T]) fetch(ctx context.Context) ([]T, error) {
	resp, err := s.client.Get(ctx, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", s.list, err)
	}

	if !resp.OK() || !resp.IsJSON() {
		return nil, fmt.Errorf("unexpected response for %s: status %d (%s): %s",
			s.list, resp.StatusCode, resp.ContentType, resp.Snippet(snippetLength))
	}

	if !bytes.HasPrefix(bytes.TrimSpace(resp.Body), []byte("[")) {
		return nil, errNotAList
	}

	var options []T
	if err := resp.Decode(&options); err != nil {
		return nil, err
	}
	return options, nil
}
