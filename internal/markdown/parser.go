package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Parser wraps goldmark for markdown processing.
type Parser struct {
	md goldmark.Markdown
}

func NewParser() *Parser {
	return &Parser{
		md: goldmark.New(),
	}
}

// Parse extracts structural metadata from a markdown file.
func (p *Parser) Parse(content []byte) *ParsedNote {
	return &ParsedNote{
		Content:     content,
		Frontmatter: ExtractFrontmatter(content),
		Headings:    ExtractHeadings(content),
		WikiLinks:   ExtractWikiLinks(content),
	}
}

// PlainText returns the note's body text with all markdown structure
// stripped, in document order. Frontmatter is excluded. This is what the
// full-text index stores.
func (p *Parser) PlainText(content []byte) string {
	content = stripFrontmatter(content)
	doc := p.md.Parser().Parse(text.NewReader(content))

	var sb strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(content))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteByte('\n')
			}
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			// Code has no inline children; pull its raw lines.
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				sb.Write(seg.Value(content))
			}
		default:
			if n.Type() == ast.TypeBlock && sb.Len() > 0 {
				sb.WriteByte('\n')
			}
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(sb.String())
}

func stripFrontmatter(content []byte) []byte {
	fm := ExtractFrontmatter(content)
	if fm == nil || fm.EndLine <= 0 {
		return content
	}
	lines := bytes.Split(content, []byte("\n"))
	if fm.EndLine >= len(lines) {
		return nil
	}
	return bytes.Join(lines[fm.EndLine:], []byte("\n"))
}

// ParsedNote contains extracted metadata from a markdown file.
type ParsedNote struct {
	Content     []byte
	Frontmatter *Frontmatter
	Headings    []Heading
	WikiLinks   []WikiLink
}

// PlainContent returns the note content without frontmatter.
func (pn *ParsedNote) PlainContent() string {
	return string(stripFrontmatter(pn.Content))
}
