package accesslog

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// DayCounters tracks per-day request metrics.
type DayCounters struct {
	Requests       int
	BotRequests    int
	Nearest        int
	NearestSuccess int
}

// Summary aggregates one or more access logs.
type Summary struct {
	Requests        int
	NearestRequests int
	NearestSuccess  int
	BotRequests     int
	MalformedLines  int

	ByDay           map[string]*DayCounters
	Endpoints       map[string]int
	IPs             map[string]int
	UserAgents      map[string]int
	QueryCells      map[string]int
	EstimatedUsers  map[string]int
	topN            int

	// distinct (ip, user agent) pairs per day, collapsed into
	// EstimatedUsers at the end of Analyze
	usersByDay map[string]map[string]struct{}
}

func newSummary(topN int) *Summary {
	return &Summary{
		ByDay:          map[string]*DayCounters{},
		Endpoints:      map[string]int{},
		IPs:            map[string]int{},
		UserAgents:     map[string]int{},
		QueryCells:     map[string]int{},
		EstimatedUsers: map[string]int{},
		usersByDay:     map[string]map[string]struct{}{},
		topN:           topN,
	}
}

// Analyze reads every file and aggregates request and user metrics.
// Estimated users per day are distinct browser (ip, user agent) pairs that
// issued a successful /nearest query with coordinates.
func Analyze(paths []string, topN int) (*Summary, error) {
	s := newSummary(topN)
	for _, path := range paths {
		err := EachLine(path, func(line string) {
			entry, ok := ParseLine(line)
			if !ok {
				s.MalformedLines++
				return
			}
			s.observe(entry)
		})
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	}
	for day, users := range s.usersByDay {
		s.EstimatedUsers[day] = len(users)
	}
	return s, nil
}

func (s *Summary) observe(entry *Entry) {
	day := s.ByDay[entry.Day]
	if day == nil {
		day = &DayCounters{}
		s.ByDay[entry.Day] = day
	}

	s.Requests++
	day.Requests++
	s.Endpoints[entry.Path]++
	s.IPs[entry.IP]++
	s.UserAgents[entry.UserAgent]++

	if IsBotUserAgent(entry.UserAgent) {
		s.BotRequests++
		day.BotRequests++
	}

	if entry.Path != "/nearest" {
		return
	}
	s.NearestRequests++
	day.Nearest++
	if entry.Status < 400 {
		s.NearestSuccess++
		day.NearestSuccess++
	}

	lat := entry.Query.Get("lat")
	lng := entry.Query.Get("lng")
	if lat == "" || lng == "" {
		return
	}
	latF, latErr := strconv.ParseFloat(lat, 64)
	lngF, lngErr := strconv.ParseFloat(lng, 64)
	if latErr != nil || lngErr != nil {
		return
	}
	cell := fmt.Sprintf("%.2f,%.2f", latF, lngF)
	s.QueryCells[cell]++

	if entry.Status < 400 && IsBrowserUserAgent(entry.UserAgent) {
		users := s.usersByDay[entry.Day]
		if users == nil {
			users = map[string]struct{}{}
			s.usersByDay[entry.Day] = users
		}
		users[entry.IP+"\x00"+entry.UserAgent] = struct{}{}
	}
}

// Format renders a compact text report.
func (s *Summary) Format() string {
	var b strings.Builder
	b.WriteString("Overview\n")
	fmt.Fprintf(&b, "  Requests: %d\n", s.Requests)
	fmt.Fprintf(&b, "  /nearest requests: %d\n", s.NearestRequests)
	fmt.Fprintf(&b, "  Successful /nearest requests: %d\n", s.NearestSuccess)
	fmt.Fprintf(&b, "  Bot-like requests: %d\n", s.BotRequests)
	fmt.Fprintf(&b, "  Malformed lines skipped: %d\n", s.MalformedLines)

	b.WriteString("\nDaily\n")
	days := make([]string, 0, len(s.ByDay))
	for day := range s.ByDay {
		days = append(days, day)
	}
	sort.Strings(days)
	for _, day := range days {
		c := s.ByDay[day]
		fmt.Fprintf(&b, "  %s: requests=%d nearest=%d nearest_success=%d estimated_users=%d\n",
			day, c.Requests, c.Nearest, c.NearestSuccess, s.EstimatedUsers[day])
	}

	writeTop(&b, "Top Endpoints", s.Endpoints, s.topN, false)
	writeTop(&b, "Top IPs", s.IPs, s.topN, false)
	writeTop(&b, "Top User Agents", s.UserAgents, s.topN, true)
	writeTop(&b, "Top /nearest Query Cells (rounded lat/lng)", s.QueryCells, s.topN, false)
	return b.String()
}

func writeTop(b *strings.Builder, title string, counts map[string]int, topN int, truncate bool) {
	type entry struct {
		key   string
		count int
	}
	entries := make([]entry, 0, len(counts))
	for key, count := range counts {
		entries = append(entries, entry{key, count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].key < entries[j].key
	})
	if len(entries) > topN {
		entries = entries[:topN]
	}

	fmt.Fprintf(b, "\n%s\n", title)
	for _, e := range entries {
		label := e.key
		if label == "" {
			label = "<empty>"
		}
		if truncate && len(label) > 120 {
			label = label[:120]
		}
		fmt.Fprintf(b, "  %6d %s\n", e.count, label)
	}
}
