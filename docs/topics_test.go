package docs

import (
	"os"
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// readmeTopics returns the topics listed in readme.md.
func readmeTopics(t *testing.T) []string {
	t.Helper()
	content, err := os.ReadFile("readme.md")
	if err != nil {
		t.Fatalf("failed to open readme.md: %v", err)
	}
	topicRegex := regexp.MustCompile(`^\*\s+([^:]+):.*$`)
	var topics []string
	for _, line := range strings.Split(string(content), "\n") {
		if m := topicRegex.FindStringSubmatch(line); len(m) > 1 {
			topics = append(topics, strings.TrimSpace(m[1]))
		}
	}
	return topics
}

func TestTopics(t *testing.T) {
	listed := readmeTopics(t)
	for _, topic := range listed {
		if _, err := GetTopic(topic); err != nil {
			t.Errorf("GetTopic(%q) error = %v", topic, err)
		}
	}

	all, err := GetAllTopics()
	if err != nil {
		t.Fatal(err)
	}
	for _, topic := range all {
		if !slices.Contains(listed, topic) {
			t.Errorf("topic %q is not listed in readme.md", topic)
		}
	}
}

func TestGetTopic_Unknown(t *testing.T) {
	if _, err := GetTopic("nope"); err == nil {
		t.Error("GetTopic(nope) succeeded, want an error")
	}
}

// Every topic starts with a title.
func TestTitles(t *testing.T) {
	all, err := GetTopic("*")
	if err != nil {
		t.Fatal(err)
	}
	source := []byte(all)
	root := goldmark.DefaultParser().Parse(text.NewReader(source))
	var titles int
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if h, ok := n.(*ast.Heading); ok && entering && h.Level == 1 {
			titles++
		}
		return ast.WalkContinue, nil
	})
	topics, _ := GetAllTopics()
	if titles != len(topics) {
		t.Errorf("found %d titles for %d topics", titles, len(topics))
	}
}
