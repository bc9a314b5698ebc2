// Package terminal draws the component tree in a terminal and turns key presses into clicks.
package terminal

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rocketscienceinc/tictactoe-history/internal/ui"
)

var (
	buttonStyle    = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.NormalBorder())
	highlightStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	inertStyle     = lipgloss.NewStyle().Faint(true)
	helpStyle      = lipgloss.NewStyle().Faint(true).MarginTop(1)
	squareStyle    = buttonStyle.Width(3).Align(lipgloss.Center).Padding(0)
)

const helpText = "tab/arrows: move • enter: click • r: new game • q: quit"

// Model is a bubbletea model over a ui.Host. Focus walks the clickable nodes in document order.
type Model struct {
	root  ui.Component
	host  *ui.Host
	focus int
}

func NewModel(root ui.Component) Model {
	m := Model{root: root}
	m.restart()

	return m
}

func (m *Model) restart() {
	m.host = ui.NewHost(m.root, nil, 0)
	m.host.Render()
	m.focus = 0
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	clickables := m.host.Tree().Clickables()

	switch keyMsg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "r":
		m.restart()
	case "tab", "right", "down", "l", "j":
		if len(clickables) > 0 {
			m.focus = (m.focus + 1) % len(clickables)
		}
	case "shift+tab", "left", "up", "h", "k":
		if len(clickables) > 0 {
			m.focus = (m.focus - 1 + len(clickables)) % len(clickables)
		}
	case "enter", " ":
		if m.focus < len(clickables) {
			m.host.Dispatch(m.host.Revision(), clickables[m.focus].OnClick)
			m.clampFocus()
		}
	}

	return m, nil
}

func (m *Model) clampFocus() {
	count := len(m.host.Tree().Clickables())
	if m.focus >= count {
		m.focus = max(count-1, 0)
	}
}

func (m Model) View() string {
	focused := ""
	if clickables := m.host.Tree().Clickables(); m.focus < len(clickables) {
		focused = clickables[m.focus].OnClick
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		renderNode(m.host.Tree(), focused),
		helpStyle.Render(helpText),
	) + "\n"
}

// Focused returns the clickable node that has the focus.
func (m Model) Focused() (ui.Node, bool) {
	clickables := m.host.Tree().Clickables()
	if m.focus >= len(clickables) {
		return ui.Node{}, false
	}
	return clickables[m.focus], true
}

func (m Model) Tree() ui.Node {
	return m.host.Tree()
}

func renderNode(node ui.Node, focused string) string {
	switch {
	case node.IsText():
		return node.Text
	case node.Tag == "button":
		return renderButton(node, focused)
	case node.Tag == "ol":
		items := make([]string, 0, len(node.Children))
		for i, child := range node.Children {
			items = append(items, fmt.Sprintf("%d. %s", i+1, renderNode(child, focused)))
		}
		return lipgloss.JoinVertical(lipgloss.Left, items...)
	}

	parts := make([]string, 0, len(node.Children)+1)
	if node.Text != "" {
		parts = append(parts, node.Text)
	}
	for _, child := range node.Children {
		parts = append(parts, renderNode(child, focused))
	}

	if hasClass(node, "game") {
		return lipgloss.JoinHorizontal(lipgloss.Top, joinWithGap(parts)...)
	}

	if allButtons(node) {
		return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	}

	if node.Tag == "li" {
		return strings.Join(parts, " ")
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderButton(node ui.Node, focused string) string {
	if !node.IsClickable() {
		return inertStyle.Render(node.Text)
	}

	style := buttonStyle
	if hasClass(node, "square") {
		style = squareStyle
	}

	if node.OnClick == focused {
		style = style.BorderForeground(lipgloss.Color("12")).Reverse(true)
	}

	text := node.Text
	if hasClass(node, "highlight") {
		text = highlightStyle.Render(text)
	}

	return style.Render(text)
}

func allButtons(node ui.Node) bool {
	if len(node.Children) == 0 {
		return false
	}

	for _, child := range node.Children {
		if child.Tag != "button" {
			return false
		}
	}

	return true
}

func hasClass(node ui.Node, class string) bool {
	for _, c := range strings.Fields(node.Class) {
		if c == class {
			return true
		}
	}
	return false
}

func joinWithGap(parts []string) []string {
	gapped := make([]string, 0, len(parts)*2)
	for i, part := range parts {
		if i > 0 {
			gapped = append(gapped, "   ")
		}
		gapped = append(gapped, part)
	}
	return gapped
}
