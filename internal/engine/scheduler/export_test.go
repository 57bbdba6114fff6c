package scheduler

import "time"

// GetFileStatusMap returns a copy of the internal file status map.
// This is exported for testing purposes only.
func (s *Scheduler) GetFileStatusMap() map[string]FileStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	statusMap := make(map[string]FileStatus, len(s.fileStatus))
	for k, v := range s.fileStatus {
		statusMap[k] = v
	}
	return statusMap
}

// SetClock replaces the clock used to timestamp cache entries.
func (s *Scheduler) SetClock(now func() time.Time) {
	s.now = now
}
