// Package accesslog summarizes Nginx access logs for the nearest-trees
// API: request volume, bot traffic and where queries cluster.
package accesslog

import (
	"bufio"
	"compress/gzip"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var logPattern = regexp.MustCompile(
	`^(\S+) \S+ \S+ \[([^\]]+)\] "([A-Z]+) ([^"]+) ([^"]+)" (\d{3}) (\S+) "([^"]*)" "([^"]*)"`,
)

var botMarkers = []string{"bot", "spider", "crawler", "curl", "wget", "python-requests", "uptime"}

var browserMarkers = []string{"mozilla", "safari", "chrome", "firefox", "edg", "iphone", "android"}

// Entry is one parsed combined-format log line.
type Entry struct {
	IP        string
	Day       string
	Method    string
	Path      string
	Query     url.Values
	Status    int
	UserAgent string
}

// ParseLine parses one combined-format line; ok is false for lines that do
// not match the format.
func ParseLine(line string) (*Entry, bool) {
	m := logPattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return nil, false
	}

	status, err := strconv.Atoi(m[6])
	if err != nil {
		return nil, false
	}

	target := m[4]
	path := target
	query := url.Values{}
	if u, err := url.Parse(target); err == nil {
		path = u.Path
		query = u.Query()
	}

	day, _, _ := strings.Cut(m[2], ":")
	return &Entry{
		IP:        m[1],
		Day:       day,
		Method:    m[3],
		Path:      path,
		Query:     query,
		Status:    status,
		UserAgent: m[9],
	}, true
}

func IsBotUserAgent(userAgent string) bool {
	ua := strings.ToLower(userAgent)
	for _, marker := range botMarkers {
		if strings.Contains(ua, marker) {
			return true
		}
	}
	return false
}

func IsBrowserUserAgent(userAgent string) bool {
	if IsBotUserAgent(userAgent) {
		return false
	}
	ua := strings.ToLower(userAgent)
	for _, marker := range browserMarkers {
		if strings.Contains(ua, marker) {
			return true
		}
	}
	return false
}

// EachLine streams the lines of a plain or gzip-compressed log file.
func EachLine(path string, fn func(string)) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	var reader io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return err
		}
		defer func() { _ = gz.Close() }()
		reader = gz
	}

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		fn(scanner.Text())
	}
	return scanner.Err()
}

// ExpandPaths resolves files and glob patterns into a sorted unique list.
func ExpandPaths(patterns []string) ([]string, error) {
	seen := map[string]struct{}{}
	for _, pattern := range patterns {
		if strings.ContainsAny(pattern, "*?[") {
			matches, err := filepath.Glob(pattern)
			if err != nil {
				return nil, err
			}
			for _, m := range matches {
				seen[m] = struct{}{}
			}
			continue
		}
		if _, err := os.Stat(pattern); err == nil {
			seen[pattern] = struct{}{}
		}
	}

	paths := make([]string, 0, len(seen))
	for p := range seen {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths, nil
}
