package bulk

import (
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var whereInKey = regexp.MustCompile(`^where\[id\]\[in\]\[(\d+)\]$`)

// ExtractIDs normalizes the four supported query encodings into one
// deduplicated, order-stable ID list:
//
//	where[id][in][0]=A&where[id][in][1]=B
//	ids[]=A&ids[]=B
//	ids=A,B
//	id=A
//
// The parser is independent of any HTTP framework so it stays unit-testable
// without a live request.
func ExtractIDs(values url.Values) []string {
	out := make([]string, 0)
	seen := map[string]struct{}{}

	add := func(raw string) {
		token := strings.TrimSpace(raw)
		if token == "" {
			return
		}
		if _, dup := seen[token]; dup {
			return
		}
		seen[token] = struct{}{}
		out = append(out, token)
	}

	// Bracket-indexed keys first, in index order.
	type indexed struct {
		index int
		value string
	}
	var bracketed []indexed
	for key, entries := range values {
		match := whereInKey.FindStringSubmatch(key)
		if match == nil {
			continue
		}
		index, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		for _, entry := range entries {
			bracketed = append(bracketed, indexed{index: index, value: entry})
		}
	}
	sort.Slice(bracketed, func(i, j int) bool { return bracketed[i].index < bracketed[j].index })
	for _, entry := range bracketed {
		add(entry.value)
	}

	for _, entry := range values["ids[]"] {
		add(entry)
	}
	for _, entry := range values["ids"] {
		for _, token := range strings.Split(entry, ",") {
			add(token)
		}
	}
	for _, entry := range values["id"] {
		add(entry)
	}

	return out
}
