// Package finding holds the Finding type: an owned, reportable secret
// match produced from a keyextract.CandidateKey once it is paired with
// the script's shared source and URL. It resolves line/column positions,
// extracts surrounding context, redacts secrets, and serializes findings
// as JSON lines or teacher-style rendered terminal output.
package finding

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/corvidscan/keyhunter/color"
	"github.com/corvidscan/keyhunter/humanize"
)

// bulletGlyph replaces redacted characters, one glyph per byte so the
// redacted string keeps the original's length.
const bulletGlyph = "•"

// Source is the shared script body a Finding's span is resolved against.
// One Source is shared by reference across every Finding from the same
// script, so its Code is never copied per finding.
type Source struct {
	URL  string
	Code string
}

// Finding is one secret match: the rule that flagged it, the byte span
// and shared source it was found in, the captured secret, and the
// enclosing identifier if the AST walk had one in scope.
type Finding struct {
	DisplayRuleID string
	Description   string
	Start         int
	End           int
	Source        *Source
	KeyName       *string
	Secret        string
}

// Line returns the 1-based line number f.Start falls on.
func (f *Finding) Line() int {
	line, _ := lineCol(f.Source.Code, f.Start)
	return line
}

// Column returns the 1-based column f.Start falls on.
func (f *Finding) Column() int {
	_, col := lineCol(f.Source.Code, f.Start)
	return col
}

// ScriptURL returns the URL of the script the finding came from.
func (f *Finding) ScriptURL() string {
	if f.Source == nil {
		return ""
	}
	return f.Source.URL
}

func lineCol(code string, offset int) (line, col int) {
	line, col = 1, 1
	if offset > len(code) {
		offset = len(code)
	}
	for i := 0; i < offset; i++ {
		if code[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

// Context returns the N lines before and after the finding's line,
// including the finding's own line, joined with newlines. It returns
// false when the finding's line is longer than 120 characters, which
// usually means the script is minified and a snippet would be useless.
func (f *Finding) Context(n int) (string, bool) {
	lines := strings.Split(f.Source.Code, "\n")
	lineIdx := f.Line() - 1
	if lineIdx < 0 || lineIdx >= len(lines) {
		return "", false
	}
	if len(lines[lineIdx]) > 120 {
		return "", false
	}

	start := lineIdx - n
	if start < 0 {
		start = 0
	}
	end := lineIdx + n
	if end >= len(lines) {
		end = len(lines) - 1
	}
	return strings.Join(lines[start:end+1], "\n"), true
}

// Redact keeps the first four characters of secret and replaces the rest
// with bulletGlyph, one glyph per remaining byte, so the redacted string
// is the same length as the original. Secrets of length four or less are
// replaced in full.
func Redact(secret string) string {
	if len(secret) <= 4 {
		return strings.Repeat(bulletGlyph, len(secret))
	}
	return secret[:4] + strings.Repeat(bulletGlyph, len(secret)-4)
}

// jsonFinding is the wire shape for one finding, field order fixed to
// rule_id, key_name, secret, line, column, script_url.
type jsonFinding struct {
	RuleID    string  `json:"rule_id"`
	KeyName   *string `json:"key_name"`
	Secret    string  `json:"secret"`
	Line      int     `json:"line"`
	Column    int     `json:"column"`
	ScriptURL string  `json:"script_url"`
}

func (f *Finding) toJSON(redact bool) jsonFinding {
	secret := f.Secret
	if redact {
		secret = Redact(secret)
	}
	return jsonFinding{
		RuleID:    f.DisplayRuleID,
		KeyName:   f.KeyName,
		Secret:    secret,
		Line:      f.Line(),
		Column:    f.Column(),
		ScriptURL: f.ScriptURL(),
	}
}

// WriteJSONL writes one JSON object per line for each finding.
func WriteJSONL(w io.Writer, findings []*Finding, redact bool) error {
	enc := json.NewEncoder(w)
	for _, f := range findings {
		if err := enc.Encode(f.toJSON(redact)); err != nil {
			return fmt.Errorf("finding: encode: %w", err)
		}
	}
	return nil
}

// Render formats a finding the way the CLI's rich output does: a title
// line, a subheader, an optional context snippet, and a data table.
func Render(f *Finding, contextLines int, redact bool) string {
	secret := f.Secret
	if redact {
		secret = Redact(secret)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", color.Red.Apply(f.DisplayRuleID), f.Description)
	fmt.Fprintf(&b, "Found %q in %s at (%d:%d)\n", secret, f.ScriptURL(), f.Line(), f.Column())

	if snippet, ok := f.Context(contextLines); ok {
		if redact && f.Secret != "" {
			snippet = strings.ReplaceAll(snippet, f.Secret, secret)
		}
		b.WriteString(color.BrightBlack.Apply(snippet))
		b.WriteString("\n")
	}

	keyName := ""
	if f.KeyName != nil {
		keyName = *f.KeyName
	}
	fmt.Fprintf(&b, "Rule ID: %s | Script URL: %s | API Key Name: %s | Secret: %s | Line: %s | Column: %s\n",
		f.DisplayRuleID, f.ScriptURL(), keyName, secret,
		humanize.Number(int64(f.Line())), humanize.Number(int64(f.Column())))

	return b.String()
}
