package models

// StatsAggregate is the per-user gamification counter document. It is
// read-or-created on first log and updated on every subsequent one.
type StatsAggregate struct {
	LogCount       int            `json:"logCount"`
	TotalRating    int            `json:"totalRating"`
	StrengthCounts map[string]int `json:"strengthCounts"`
	Countries      []string       `json:"countries"`
}

// Apply folds one finalized log entry into the aggregate.
func (s *StatsAggregate) Apply(e LogEntry) {
	s.LogCount++
	if e.OverallRating != nil {
		s.TotalRating += *e.OverallRating
	}

	if strength := e.Identification.Strength; strength != "" {
		if s.StrengthCounts == nil {
			s.StrengthCounts = make(map[string]int)
		}
		s.StrengthCounts[strength]++
	}

	if country := e.Identification.OriginCountry; country != "" {
		for _, c := range s.Countries {
			if c == country {
				return
			}
		}
		s.Countries = append(s.Countries, country)
	}
}
