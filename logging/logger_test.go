package logging

import (
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func newTestStatistics(t *testing.T) *Statistics {
	t.Helper()
	return &Statistics{
		UniqueVisitors: make(map[string]time.Time),
		PopularDomains: make(map[string]int),
		filePath:       filepath.Join(t.TempDir(), "statistics.json"),
	}
}

func TestTrackAudit(t *testing.T) {
	s := newTestStatistics(t)

	s.TrackAudit("example.de", 100, false)
	s.TrackAudit("example.de", 300, true)
	s.TrackAudit("other.de", 200, false)

	if s.RequestTotal() != 3 {
		t.Errorf("Expected 3 audit requests, got %d", s.RequestTotal())
	}
	if rate := s.GetErrorRate(); rate < 33.0 || rate > 34.0 {
		t.Errorf("Expected error rate around 33.3, got %f", rate)
	}
	if domains := s.GetPopularDomains(5); domains["example.de"] != 2 {
		t.Errorf("Expected example.de counted twice, got %d", domains["example.de"])
	}
}

func TestGetStatistics(t *testing.T) {
	s := newTestStatistics(t)
	s.TrackVisitor("203.0.113.7")
	s.TrackAudit("example.de", 150, false)

	t.Setenv(ENV_DEV_MODE, "")
	result := s.GetStatistics()

	if result["uniqueVisitors24h"] != 1 {
		t.Errorf("Expected 1 unique visitor, got %v", result["uniqueVisitors24h"])
	}
	if result["totalRequests"] != 1 {
		t.Errorf("Expected 1 total request, got %v", result["totalRequests"])
	}
	if _, ok := result["popularDomains"]; ok {
		t.Error("Domain detail should not be exposed outside dev mode")
	}

	t.Setenv(ENV_DEV_MODE, "true")
	result = s.GetStatistics()
	if _, ok := result["popularDomains"]; !ok {
		t.Error("Domain detail should be exposed in dev mode")
	}
}

func TestConcurrentAccess(t *testing.T) {
	s := newTestStatistics(t)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				s.TrackVisitor(fmt.Sprintf("10.0.%d.%d", n, j%250))
				s.TrackAudit("example.de", 12, j%7 == 0)
			}
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				s.GetStatistics()
				s.GetErrorRate()
				s.GetUniqueVisitorsCount()
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	// Readers must not wedge against queued writers
	select {
	case <-done:
	case <-time.After(30 * time.Second):
		t.Fatal("Statistics accessors did not finish, goroutines stuck on the mutex")
	}

	if got := s.RequestTotal(); got != 16*500 {
		t.Errorf("Expected %d audit requests, got %d", 16*500, got)
	}
}

func TestSaveAndLoad(t *testing.T) {
	s := newTestStatistics(t)
	s.TrackVisitor("203.0.113.7")
	s.TrackAudit("example.de", 150, true)

	if err := s.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded := &Statistics{
		UniqueVisitors: make(map[string]time.Time),
		PopularDomains: make(map[string]int),
		filePath:       s.filePath,
	}
	if err := loaded.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.AuditRequests != 1 || loaded.ErrorCount != 1 {
		t.Errorf("Loaded counters wrong: %d requests, %d errors", loaded.AuditRequests, loaded.ErrorCount)
	}
	if len(loaded.UniqueVisitors) != 1 {
		t.Errorf("Expected 1 visitor after load, got %d", len(loaded.UniqueVisitors))
	}
}
