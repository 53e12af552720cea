package logging

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// Environment variable name for controlling statistics visibility
const ENV_DEV_MODE = "DEV_MODE"

// Statistics represents the collected runtime statistics
type Statistics struct {
	UniqueVisitors  map[string]time.Time `json:"uniqueVisitors"`  // IP -> Last Visit Time
	AuditRequests   int                  `json:"auditRequests"`   // Total number of audit requests
	ErrorCount      int                  `json:"errorCount"`      // Number of failed requests
	PopularDomains  map[string]int       `json:"popularDomains"`  // Domain -> Count
	AverageAuditMs  float64              `json:"averageAuditMs"`  // Average audit duration in milliseconds
	TotalAuditMs    float64              `json:"-"`               // Used to calculate average
	RequestCount    int                  `json:"-"`               // Used to calculate average
	LastPersisted   time.Time            `json:"lastPersisted"`   // Last time stats were saved
	mutex           sync.RWMutex         `json:"-"`
	filePath        string               `json:"-"`
}

var (
	stats *Statistics
	once  sync.Once
)

// Initialize creates or loads the statistics singleton.
func Initialize(filePath string) *Statistics {
	once.Do(func() {
		if filePath == "" {
			filePath = "statistics.json"
		}
		stats = &Statistics{
			UniqueVisitors: make(map[string]time.Time),
			PopularDomains: make(map[string]int),
			LastPersisted:  time.Now(),
			filePath:       filePath,
		}

		if err := stats.Load(); err != nil {
			fmt.Printf("Could not load existing statistics: %v\n", err)
		}
	})
	return stats
}

// TrackVisitor records a unique visitor
func (s *Statistics) TrackVisitor(ip string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.UniqueVisitors[ip] = time.Now()
}

// TrackAudit records one audit request
func (s *Statistics) TrackAudit(domain string, durationMs float64, hasError bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.AuditRequests++

	if domain != "" {
		s.PopularDomains[domain]++
	}

	if hasError {
		s.ErrorCount++
	}

	s.TotalAuditMs += durationMs
	s.RequestCount++
	s.AverageAuditMs = s.TotalAuditMs / float64(s.RequestCount)
}

// GetUniqueVisitorsCount returns the number of unique visitors in the last 24 hours
func (s *Statistics) GetUniqueVisitorsCount() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.visitorsSince(time.Now().Add(-24 * time.Hour))
}

// visitorsSince counts visitors seen after cutoff. Caller must hold the mutex.
func (s *Statistics) visitorsSince(cutoff time.Time) int {
	count := 0
	for _, lastVisit := range s.UniqueVisitors {
		if lastVisit.After(cutoff) {
			count++
		}
	}
	return count
}

// GetPopularDomains returns up to N analyzed domains with their counts
func (s *Statistics) GetPopularDomains(n int) map[string]int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.topDomains(n)
}

// topDomains returns up to n domains. Caller must hold the mutex.
func (s *Statistics) topDomains(n int) map[string]int {
	result := make(map[string]int)
	count := 0

	for domain, freq := range s.PopularDomains {
		if count < n {
			result[domain] = freq
			count++
		}
	}

	return result
}

// GetErrorRate returns the error rate as a percentage
func (s *Statistics) GetErrorRate() float64 {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.errorRate()
}

// errorRate computes the error percentage. Caller must hold the mutex.
func (s *Statistics) errorRate() float64 {
	if s.AuditRequests == 0 {
		return 0
	}

	return (float64(s.ErrorCount) / float64(s.AuditRequests)) * 100
}

// RequestTotal returns the number of audit requests tracked so far.
func (s *Statistics) RequestTotal() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.AuditRequests
}

// Save persists the statistics to a file
func (s *Statistics) Save() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.LastPersisted = time.Now()

	file, err := os.Create(s.filePath)
	if err != nil {
		return fmt.Errorf("could not create statistics file: %v", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	if err := encoder.Encode(s); err != nil {
		return fmt.Errorf("could not encode statistics: %v", err)
	}

	return nil
}

// Load reads the statistics from a file
func (s *Statistics) Load() error {
	file, err := os.Open(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // Not an error if file doesn't exist yet
		}
		return fmt.Errorf("could not open statistics file: %v", err)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	if err := decoder.Decode(s); err != nil {
		return fmt.Errorf("could not decode statistics: %v", err)
	}

	return nil
}

// GetStatistics returns a snapshot of the current statistics. All derived
// values are computed under a single lock acquisition; a nested RLock would
// deadlock against a queued writer.
func (s *Statistics) GetStatistics() map[string]interface{} {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	result := map[string]interface{}{
		"uniqueVisitors24h": s.visitorsSince(time.Now().Add(-24 * time.Hour)),
		"totalRequests":     s.AuditRequests,
		"errorRate":         s.errorRate(),
		"averageAuditMs":    s.AverageAuditMs,
	}

	// Per-domain detail is only exposed in development mode
	if os.Getenv(ENV_DEV_MODE) == "true" {
		result["popularDomains"] = s.topDomains(5)
	}

	return result
}
