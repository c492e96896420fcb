package service

import "time"

// SetClock pins the clock used for window computation. Test-only.
func (s *SummaryService) SetClock(now func() time.Time) { s.now = now }
