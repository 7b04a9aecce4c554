package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lazear/mcode/pkg/graph"
	"github.com/lazear/mcode/pkg/report"
	"github.com/lazear/mcode/pkg/snapshot"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ADD8")).
			MarginLeft(2).
			MarginTop(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFAF")).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FFAF")).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#00ADD8")).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				Padding(0, 2)

	contentStyle = lipgloss.NewStyle().
			MarginLeft(2).
			MarginTop(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1).
			MarginLeft(2)
)

type view int

const (
	complexesView view = iota
	membersView
	statsView
)

type keyMap struct {
	Tab   key.Binding
	Enter key.Binding
	Back  key.Binding
	Quit  key.Binding
	Up    key.Binding
	Down  key.Binding
}

var keys = keyMap{
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next view"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "inspect complex"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Enter, k.Back, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Enter, k.Back},
		{k.Up, k.Down, k.Quit},
	}
}

type complexItem struct {
	c report.Complex
}

func (i complexItem) Title() string {
	return fmt.Sprintf("Complex %d (score %.2f)", i.c.ID, i.c.Score)
}

func (i complexItem) Description() string {
	return fmt.Sprintf("seed %s | %d members | density %.2f", i.c.Seed, i.c.Size, i.c.Density)
}

func (i complexItem) FilterValue() string {
	return i.c.Seed + " " + strings.Join(i.c.Members, " ")
}

type model struct {
	rep         *report.Report
	g           *graph.Graph   // nil without -snapshot
	vertexIDs   map[string]int // accession -> vertex id
	currentView view
	selected    int
	complexes   list.Model
	members     table.Model
	stats       viewport.Model
	help        help.Model
	keys        keyMap
	width       int
	height      int
}

func initialModel(rep *report.Report, g *graph.Graph, vertexIDs map[string]int) model {
	items := make([]list.Item, len(rep.Complexes))
	for i, c := range rep.Complexes {
		items[i] = complexItem{c: c}
	}
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Protein Complexes"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)

	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Accession", Width: 16},
		{Title: "Intra Degree", Width: 12},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#00FFAF")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#00ADD8")).
		Bold(false)
	t.SetStyles(s)

	vp := viewport.New(0, 0)
	vp.SetContent(statsContent(rep))

	return model{
		rep:         rep,
		g:           g,
		vertexIDs:   vertexIDs,
		currentView: complexesView,
		complexes:   l,
		members:     t,
		stats:       vp,
		help:        help.New(),
		keys:        keys,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.complexes.SetSize(msg.Width-4, msg.Height-8)
		m.stats.Width = msg.Width - 6
		m.stats.Height = msg.Height - 10

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Tab):
			m.currentView = (m.currentView + 1) % 3

		case key.Matches(msg, m.keys.Back):
			if m.currentView == membersView {
				m.currentView = complexesView
			}

		case key.Matches(msg, m.keys.Enter):
			if m.currentView == complexesView && len(m.rep.Complexes) > 0 {
				m.selected = m.complexes.Index()
				m.members.SetRows(m.memberRows(m.rep.Complexes[m.selected]))
				m.currentView = membersView
			}
		}
	}

	switch m.currentView {
	case complexesView:
		m.complexes, cmd = m.complexes.Update(msg)
		cmds = append(cmds, cmd)
	case membersView:
		m.members, cmd = m.members.Update(msg)
		cmds = append(cmds, cmd)
	case statsView:
		m.stats, cmd = m.stats.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// memberRows resolves each member's degree inside the complex when a
// snapshot was loaded.
func (m *model) memberRows(c report.Complex) []table.Row {
	inSet := make(map[int]bool, len(c.Members))
	if m.g != nil {
		for _, acc := range c.Members {
			if id, ok := m.vertexIDs[acc]; ok {
				inSet[id] = true
			}
		}
	}

	rows := make([]table.Row, 0, len(c.Members))
	for i, acc := range c.Members {
		deg := "-"
		if m.g != nil {
			if id, ok := m.vertexIDs[acc]; ok {
				n := 0
				for _, u := range m.g.Neighbors(id) {
					if inSet[u] {
						n++
					}
				}
				deg = strconv.Itoa(n)
			}
		}
		rows = append(rows, table.Row{strconv.Itoa(i + 1), acc, deg})
	}
	return rows
}

func (m model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var s strings.Builder
	s.WriteString(titleStyle.Render("MCODE Results Browser"))
	s.WriteString("\n\n")
	s.WriteString(m.renderTabs())
	s.WriteString("\n\n")

	switch m.currentView {
	case complexesView:
		s.WriteString(contentStyle.Render(m.complexes.View()))
	case membersView:
		s.WriteString(m.renderMembers())
	case statsView:
		s.WriteString(m.renderStats())
	}

	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp())))
	return s.String()
}

func (m model) renderTabs() string {
	tabs := []string{"Complexes", "Members", "Stats"}
	rendered := make([]string, 0, len(tabs))
	for i, tab := range tabs {
		if view(i) == m.currentView {
			rendered = append(rendered, activeTabStyle.Render(tab))
		} else {
			rendered = append(rendered, inactiveTabStyle.Render(tab))
		}
	}
	return contentStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
}

func (m model) renderMembers() string {
	var s strings.Builder
	if m.selected < len(m.rep.Complexes) {
		c := m.rep.Complexes[m.selected]
		header := fmt.Sprintf("Complex %d | seed %s | score %.2f | density %.2f", c.ID, c.Seed, c.Score, c.Density)
		if m.g != nil {
			header += fmt.Sprintf(" | %d intra edges", m.intraEdges(c))
		}
		s.WriteString(headerStyle.Render(header))
		s.WriteString("\n\n")
	}
	s.WriteString(m.members.View())
	return contentStyle.Render(s.String())
}

func (m model) intraEdges(c report.Complex) int {
	total := 0
	for _, row := range m.memberRows(c) {
		if d, err := strconv.Atoi(row[2]); err == nil {
			total += d
		}
	}
	return total / 2
}

func (m model) renderStats() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render("Run Statistics"))
	s.WriteString("\n\n")
	s.WriteString(m.stats.View())
	return contentStyle.Render(s.String())
}

func statsContent(rep *report.Report) string {
	st := rep.Stats
	var b strings.Builder
	fmt.Fprintf(&b, "Run:                 %s\n\n", rep.RunID)
	fmt.Fprintf(&b, "Vertices:            %d\n", st.Vertices)
	fmt.Fprintf(&b, "Edges:               %d\n", st.Edges)
	if st.Components > 0 {
		fmt.Fprintf(&b, "Components:          %d\n", st.Components)
	}
	fmt.Fprintf(&b, "Max coreness:        %d\n", st.MaxCoreness)
	fmt.Fprintf(&b, "Seeds expanded:      %d\n", st.SeedsExpanded)
	fmt.Fprintf(&b, "Candidates emitted:  %d\n", st.CandidatesEmitted)
	fmt.Fprintf(&b, "Complexes:           %d\n\n", len(rep.Complexes))
	fmt.Fprintf(&b, "Coreness stage:      %.3fs\n", st.CorenessSeconds)
	fmt.Fprintf(&b, "Weighting stage:     %.3fs\n", st.WeightSeconds)
	fmt.Fprintf(&b, "Expansion stage:     %.3fs\n", st.ExpandSeconds)
	fmt.Fprintf(&b, "Post-processing:     %.3fs\n", st.PostSeconds)
	fmt.Fprintf(&b, "Total:               %.3fs\n", st.ElapsedSeconds)
	return b.String()
}

func main() {
	resultsPath := flag.String("results", "", "Results JSON written by mcode -out-format json")
	snapshotPath := flag.String("snapshot", "", "Optional graph snapshot for intra-complex degrees")
	flag.Parse()

	if *resultsPath == "" {
		fmt.Println("Usage: mcode-tui -results results.json [-snapshot graph.snap]")
		os.Exit(1)
	}

	f, err := os.Open(*resultsPath)
	if err != nil {
		log.Fatalf("Failed to open results: %v", err)
	}
	rep, err := report.ReadJSON(f)
	f.Close()
	if err != nil {
		log.Fatalf("Failed to read results: %v", err)
	}

	var g *graph.Graph
	var vertexIDs map[string]int
	if *snapshotPath != "" {
		el, err := snapshot.Load(*snapshotPath)
		if err != nil {
			log.Fatalf("Failed to load snapshot: %v", err)
		}
		if g, err = el.Build(); err != nil {
			log.Fatalf("Failed to build graph: %v", err)
		}
		vertexIDs = make(map[string]int, len(el.Names))
		for id, name := range el.Names {
			vertexIDs[name] = id
		}
	}

	p := tea.NewProgram(initialModel(rep, g, vertexIDs), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running program: %v", err)
	}
}
