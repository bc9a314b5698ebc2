// Package htmlrender turns a ui.Node tree into HTML. Clickable nodes become buttons of
// small forms that post the handler id and the render revision to /click, so the page
// works without scripts; the page script upgrades the same forms to the websocket.
package htmlrender

import (
	"bytes"
	_ "embed"
	"fmt"
	"html"
	"html/template"
	"io"

	"github.com/rocketscienceinc/tictactoe-history/internal/ui"
)

//go:embed templates.html
var templatesHTML string

//go:embed style.css
var StyleCSS []byte

var allowedTags = map[string]struct{}{
	"div":    {},
	"span":   {},
	"ol":     {},
	"ul":     {},
	"li":     {},
	"p":      {},
	"button": {},
}

var templates = template.Must(template.New("htmlrender").Funcs(template.FuncMap{
	"node":     wrap,
	"openTag":  openTag,
	"closeTag": closeTag,
}).Parse(templatesHTML))

type nodeData struct {
	Node     ui.Node
	Revision int64
}

type pageData struct {
	Title    string
	Root     nodeData
	Endpoint string
}

func wrap(node ui.Node, revision int64) nodeData {
	return nodeData{Node: node, Revision: revision}
}

// openTag writes the start tag of a container node; tags come from components, never from input.
func openTag(node ui.Node) (template.HTML, error) {
	if _, ok := allowedTags[node.Tag]; !ok {
		return "", fmt.Errorf("tag %q is not allowed", node.Tag)
	}

	if node.Class == "" {
		return template.HTML("<" + node.Tag + ">"), nil //nolint: gosec // tag is allow-listed
	}

	return template.HTML("<" + node.Tag + ` class="` + html.EscapeString(node.Class) + `">`), nil //nolint: gosec // class is escaped
}

func closeTag(node ui.Node) template.HTML {
	return template.HTML("</" + node.Tag + ">") //nolint: gosec // only reached after openTag accepted the tag
}

// Page - writes a complete document around the tree.
func Page(w io.Writer, title string, tree ui.Node, revision int64) error {
	return execute(w, "page", pageData{Title: title, Root: wrap(tree, revision), Endpoint: "/ws"})
}

// Fragment - writes only the tree, as the websocket sends it.
func Fragment(w io.Writer, tree ui.Node, revision int64) error {
	return execute(w, "node", wrap(tree, revision))
}

func FragmentString(tree ui.Node, revision int64) (string, error) {
	var buf bytes.Buffer
	if err := Fragment(&buf, tree, revision); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// execute renders into a buffer first so a failing template never leaves half a page.
func execute(w io.Writer, name string, data any) error {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}

	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}

	return nil
}
