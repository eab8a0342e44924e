package synthesis

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/aretw0/planner/pkg/domain"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

type section int

const (
	sectionNone section = iota
	sectionProblem
	sectionMetrics
	sectionStories
	sectionRequirements
	sectionFiles
	sectionNotes
	sectionEdgeCases
)

var sectionNames = map[string]section{
	"problem":                 sectionProblem,
	"problem statement":       sectionProblem,
	"success metrics":         sectionMetrics,
	"metrics":                 sectionMetrics,
	"user stories":            sectionStories,
	"user stories / journey":  sectionStories,
	"user journey":            sectionStories,
	"requirements":            sectionRequirements,
	"affected files":          sectionFiles,
	"file hints":              sectionFiles,
	"files":                   sectionFiles,
	"implementation notes":    sectionNotes,
	"notes":                   sectionNotes,
	"edge cases":              sectionEdgeCases,
	"edge cases & security":   sectionEdgeCases,
	"edge cases and security": sectionEdgeCases,
}

// requiredSections must appear as headings for a reply to be usable.
var requiredSections = []struct {
	section section
	heading string
}{
	{sectionStories, "## User Stories"},
	{sectionRequirements, "## Requirements"},
	{sectionFiles, "## Affected Files"},
}

var (
	storyPattern       = regexp.MustCompile(`(?i)^as an?\s+(.+?),\s*i\s+(?:want|need|would like)\s+(.+?),?\s+so that\s+(.+?)\.?$`)
	requirementPattern = regexp.MustCompile(`(?i)^(?:req-\d+\s*[:\-]?\s*)?(?:\[(?:type:\s*)?([a-z_ ]+)\]\s*[:\-]?\s*)?(?:(?:when|if)\s+(.+?)(?:,\s*|\s+)(?:then\s+)?)?the system shall\s+(.+?)\.?$`)
	titlePrefix        = regexp.MustCompile(`(?i)^feature\s*:\s*`)
	emptyItem          = regexp.MustCompile(`(?i)^(none|n/a|-|tbd)\.?$`)
)

type extraction struct {
	title      string
	hasTitle   bool
	seen       map[section]bool
	paragraphs map[section][]string
	items      map[section][]string
}

// Parse decomposes an extraction reply into an ArtifactModel.
// feature is the session's original idea, used as description and as title fallback.
// Any failure is a *domain.SynthesisError that carries raw.
func Parse(raw, feature string) (domain.ArtifactModel, error) {
	src := []byte(stripFence(raw))
	if len(bytes.TrimSpace(src)) == 0 {
		return domain.ArtifactModel{}, &domain.SynthesisError{Reason: "model returned empty extraction", Raw: raw}
	}

	ex := walk(src)

	if !ex.hasTitle {
		return domain.ArtifactModel{}, &domain.SynthesisError{Reason: "missing section marker: # Feature: <title>", Raw: raw}
	}
	var missing []string
	for _, req := range requiredSections {
		if !ex.seen[req.section] {
			missing = append(missing, req.heading)
		}
	}
	if len(missing) > 0 {
		return domain.ArtifactModel{}, &domain.SynthesisError{Reason: "missing section markers: " + strings.Join(missing, ", "), Raw: raw}
	}

	title := ex.title
	if title == "" {
		title = strings.TrimSpace(feature)
	}

	model := domain.ArtifactModel{
		Title:       title,
		Slug:        domain.Slugify(title),
		Description: strings.TrimSpace(feature),
		Problem:     strings.Join(ex.paragraphs[sectionProblem], "\n\n"),
		Metrics:     nonEmpty(ex.items[sectionMetrics]),
		FileHints:   nonEmpty(ex.items[sectionFiles]),
		Notes:       nonEmpty(ex.items[sectionNotes]),
		EdgeCases:   nonEmpty(ex.items[sectionEdgeCases]),
	}
	if model.Problem == "" {
		model.Problem = strings.Join(ex.items[sectionProblem], " ")
	}

	for i, item := range nonEmpty(ex.items[sectionStories]) {
		m := storyPattern.FindStringSubmatch(item)
		if m == nil {
			return domain.ArtifactModel{}, &domain.SynthesisError{
				Reason: fmt.Sprintf("user story %d is not in \"As a <actor>, I want <goal>, so that <benefit>\" form: %q", i+1, item),
				Raw:    raw,
			}
		}
		model.Stories = append(model.Stories, domain.UserStory{
			Actor:   strings.TrimSpace(m[1]),
			Goal:    strings.TrimSpace(m[2]),
			Benefit: strings.TrimSpace(m[3]),
		})
	}

	for i, item := range nonEmpty(ex.items[sectionRequirements]) {
		m := requirementPattern.FindStringSubmatch(item)
		if m == nil {
			return domain.ArtifactModel{}, &domain.SynthesisError{
				Reason: fmt.Sprintf("requirement %d is not in \"WHEN <trigger>, THE SYSTEM SHALL <response>\" form: %q", i+1, item),
				Raw:    raw,
			}
		}
		model.Requirements = append(model.Requirements, domain.Requirement{
			ID:       domain.RequirementID(i + 1),
			Kind:     domain.ParseRequirementKind(m[1]),
			Trigger:  strings.TrimSpace(m[2]),
			Response: strings.TrimSpace(m[3]),
		})
	}

	return model, nil
}

func walk(src []byte) *extraction {
	ex := &extraction{
		seen:       map[section]bool{},
		paragraphs: map[section][]string{},
		items:      map[section][]string{},
	}
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	current := sectionNone
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			heading := nodeText(node, src)
			if node.Level == 1 {
				if !ex.hasTitle {
					ex.hasTitle = true
					ex.title = strings.TrimSpace(titlePrefix.ReplaceAllString(heading, ""))
				}
				current = sectionNone
				continue
			}
			current = sectionNames[normalizeHeading(heading)]
			if current != sectionNone {
				ex.seen[current] = true
			}
		case *ast.List:
			if current != sectionNone {
				ex.items[current] = append(ex.items[current], listItems(node, src)...)
			}
		case *ast.Paragraph:
			if current != sectionNone {
				ex.paragraphs[current] = append(ex.paragraphs[current], nodeText(node, src))
			}
		}
	}
	return ex
}

// listItems returns the text of each item. Nested lists become items of their own.
func listItems(list *ast.List, src []byte) []string {
	var out []string
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		var parts []string
		var nested []string
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			if sub, ok := c.(*ast.List); ok {
				nested = append(nested, listItems(sub, src)...)
				continue
			}
			parts = append(parts, nodeText(c, src))
		}
		out = append(out, strings.TrimSpace(strings.Join(parts, " ")))
		out = append(out, nested...)
	}
	return out
}

// nodeText concatenates the inline text below n, dropping markup.
func nodeText(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		case *ast.AutoLink:
			b.Write(t.Label(src))
			return ast.WalkSkipChildren, nil
		case *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return strings.Join(strings.Fields(b.String()), " ")
}

func normalizeHeading(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.TrimSuffix(h, ":")
	return strings.Join(strings.Fields(h), " ")
}

// stripFence removes a code fence wrapping the whole reply (```markdown ... ```).
func stripFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	nl := strings.IndexByte(s, '\n')
	if nl < 0 {
		return ""
	}
	s = s[nl+1:]
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return s
}

func nonEmpty(items []string) []string {
	var out []string
	for _, it := range items {
		it = strings.TrimSpace(it)
		if it == "" || emptyItem.MatchString(it) {
			continue
		}
		out = append(out, it)
	}
	return out
}
