package prefilter

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// hasFencedCode parses the markdown source and reports whether it contains
// any fenced or indented code block. Walking the AST instead of grepping
// for backticks avoids counting inline code spans and fence-like prose.
func hasFencedCode(source []byte) bool {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(source))

	found := false
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.(type) {
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			found = true
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return found
}
