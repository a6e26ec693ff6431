// Package parse converts flowchart input text into a graph and group definitions.
//
// The input format is line-based:
//
//	# comment
//	[Backend: API Worker]
//	Client -> API
//	API -> Worker -> Store
//
// A connection line may chain several nodes; each adjacent pair becomes an
// edge. Group definitions must appear before the first connection line. Member
// names are matched greedily (longest first) against the node names that
// appear in connections, so multi-word node names work without quoting.
package parse

import (
	"regexp"
	"sort"
	"strings"

	"github.com/matzehuels/gridflow/pkg/errors"
	"github.com/matzehuels/gridflow/pkg/graph"
)

// groupPattern matches a group definition line: [GROUP NAME: node1 node2].
var groupPattern = regexp.MustCompile(`^\s*\[([^:]+):\s*(.+)\]\s*$`)

// Group is a named cluster of nodes drawn with a shared dashed frame.
type Group struct {
	Name    string   // Display label
	Members []string // Node IDs in order of appearance within the definition
	Order   int      // Definition order, used for deterministic rendering
}

// Result holds the outcome of parsing flowchart input.
type Result struct {
	Graph  *graph.Graph
	Groups []Group
}

// Parse parses flowchart input text into a graph and group definitions.
//
// Parsing is two-pass: connections are read first to discover the valid node
// names, then group definitions are resolved against them. All violations are
// reported as structured errors with ErrCodeInvalidSyntax or ErrCodeInvalidGroup;
// no partially-parsed result is ever returned alongside an error.
func Parse(input string) (*Result, error) {
	lines := strings.Split(strings.TrimSpace(input), "\n")

	type groupLine struct {
		num  int
		text string
	}

	g := graph.New()
	var groupLines []groupLine
	edgeStarted := false
	edgeCount := 0

	for i, raw := range lines {
		lineNum := i + 1
		line := strings.TrimSpace(raw)

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if groupPattern.MatchString(line) {
			if edgeStarted {
				return nil, errors.New(errors.ErrCodeInvalidGroup,
					"line %d: group definitions must appear before edge definitions: %s", lineNum, line)
			}
			groupLines = append(groupLines, groupLine{num: lineNum, text: line})
			continue
		}

		edgeStarted = true

		if !strings.Contains(line, "->") {
			return nil, errors.New(errors.ErrCodeInvalidSyntax,
				"line %d: expected '->' in connection: %s", lineNum, line)
		}

		// A chain "A -> B -> C" expands to one edge per adjacent pair.
		parts := strings.Split(line, "->")
		names := make([]string, len(parts))
		for j, p := range parts {
			name := strings.TrimSpace(p)
			if name == "" {
				return nil, errors.New(errors.ErrCodeInvalidSyntax,
					"line %d: empty node name in connection: %s", lineNum, line)
			}
			if err := errors.ValidateNodeName(name); err != nil {
				return nil, err
			}
			names[j] = name
		}

		for j := 0; j < len(names)-1; j++ {
			if err := g.AddEdge(names[j], names[j+1]); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidSyntax, err, "line %d: %s", lineNum, line)
			}
			edgeCount++
		}
	}

	if edgeCount == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no valid connections found in input")
	}

	known := make(map[string]bool, g.NodeCount())
	for _, id := range g.Nodes() {
		known[id] = true
	}

	var groups []Group
	nodeToGroup := make(map[string]string)
	for order, gl := range groupLines {
		m := groupPattern.FindStringSubmatch(gl.text)
		name := strings.TrimSpace(m[1])
		memberText := strings.TrimSpace(m[2])

		if err := errors.ValidateGroupName(name); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidGroup, err, "line %d: %s", gl.num, gl.text)
		}
		if memberText == "" {
			return nil, errors.New(errors.ErrCodeInvalidGroup, "line %d: empty member list for group", gl.num)
		}

		members := matchNodeNames(memberText, known)
		if len(members) == 0 {
			return nil, errors.New(errors.ErrCodeInvalidGroup,
				"line %d: no valid node names found in group members: %q", gl.num, memberText)
		}

		for _, member := range members {
			if prev, ok := nodeToGroup[member]; ok {
				return nil, errors.New(errors.ErrCodeInvalidGroup,
					"line %d: node %q already belongs to group %q", gl.num, member, prev)
			}
			nodeToGroup[member] = name
		}

		groups = append(groups, Group{Name: name, Members: members, Order: order})
	}

	return &Result{Graph: g, Groups: groups}, nil
}

// matchNodeNames matches member text against known node names using greedy
// longest-first matching, so "Web Server DB" resolves to ["Web Server", "DB"]
// when both exist. Unmatched words are skipped. Equal-length candidates are
// tried in lexical order to keep the result deterministic.
func matchNodeNames(memberText string, known map[string]bool) []string {
	sorted := make([]string, 0, len(known))
	for name := range known {
		sorted = append(sorted, name)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if len(sorted[i]) != len(sorted[j]) {
			return len(sorted[i]) > len(sorted[j])
		}
		return sorted[i] < sorted[j]
	})

	var members []string
	seen := make(map[string]bool)
	remaining := strings.TrimSpace(memberText)

	for remaining != "" {
		remaining = strings.TrimLeft(remaining, " ")
		if remaining == "" {
			break
		}

		matched := false
		for _, node := range sorted {
			if !strings.HasPrefix(remaining, node) {
				continue
			}
			// The match must end at a word boundary.
			end := len(node)
			if end != len(remaining) && remaining[end] != ' ' {
				continue
			}
			if !seen[node] {
				seen[node] = true
				members = append(members, node)
			}
			remaining = strings.TrimLeft(remaining[end:], " ")
			matched = true
			break
		}

		if !matched {
			idx := strings.Index(remaining, " ")
			if idx == -1 {
				break
			}
			remaining = strings.TrimLeft(remaining[idx:], " ")
		}
	}

	return members
}
