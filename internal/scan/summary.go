package scan

import "sort"

// Summary aggregates a batch of results
type Summary struct {
	Total        int            `json:"total"`
	Recognized   int            `json:"recognized"`
	Unrecognized int            `json:"unrecognized"`
	ByService    map[string]int `json:"by_service"`
}

// Summarize counts results per service
func Summarize(results []Result) Summary {
	s := Summary{
		Total:     len(results),
		ByService: map[string]int{},
	}
	for _, r := range results {
		if !r.OK {
			s.Unrecognized++
			continue
		}
		s.Recognized++
		s.ByService[r.Link.Service]++
	}
	return s
}

// Services returns the service names in the summary, sorted
func (s Summary) Services() []string {
	names := make([]string, 0, len(s.ByService))
	for name := range s.ByService {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
