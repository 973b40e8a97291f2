package ctl

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"animd/pkg/types"
)

const watchInterval = 500 * time.Millisecond

type tickMsg time.Time

type statusMsg struct {
	status types.StatusResponse
	err    error
}

type watchModel struct {
	addr    string
	client  *Client
	tbl     table.Model
	status  types.StatusResponse
	err     error
	fetched bool
}

func newWatchModel(addr string) watchModel {
	columns := []table.Column{
		{Title: "ID", Width: 36},
		{Title: "Target", Width: 14},
		{Title: "Kind", Width: 10},
		{Title: "Prio", Width: 4},
		{Title: "Delay", Width: 8},
	}
	tbl := table.New(table.WithColumns(columns), table.WithHeight(7))
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = lipgloss.NewStyle()
	tbl.SetStyles(styles)
	return watchModel{addr: addr, client: NewClient(addr), tbl: tbl}
}

func (m watchModel) fetch() tea.Cmd {
	return func() tea.Msg {
		st, err := m.client.Status()
		return statusMsg{status: st, err: err}
	}
}

func tick() tea.Cmd {
	return tea.Tick(watchInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.fetch(), tick())
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tickMsg:
		return m, tea.Batch(m.fetch(), tick())
	case statusMsg:
		m.err = msg.err
		if msg.err == nil {
			m.status = msg.status
			m.fetched = true
			m.tbl.SetRows(queueRows(msg.status.Queued))
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.tbl, cmd = m.tbl.Update(msg)
	return m, cmd
}

func (m watchModel) View() string {
	if m.err != nil {
		return titleStyle.Render("animd "+m.addr) + "\n" +
			reducedStyle.Render(fmt.Sprintf("unreachable: %v", m.err)) + "\n\nq to quit\n"
	}
	if !m.fetched {
		return titleStyle.Render("animd "+m.addr) + "\n" + labelStyle.Render("connecting...") + "\n"
	}
	return renderStatus(m.addr, m.status) + m.tbl.View() + "\n" + labelStyle.Render("q to quit") + "\n"
}

func queueRows(queued []types.QueuedAnimation) []table.Row {
	rows := make([]table.Row, 0, len(queued))
	for _, q := range queued {
		rows = append(rows, table.Row{
			q.ID,
			q.TargetID,
			q.Kind,
			strconv.Itoa(q.Priority),
			fmt.Sprintf("+%dms", q.DelayMs),
		})
	}
	return rows
}

func runWatch(cfg *Config) error {
	_, err := tea.NewProgram(newWatchModel(cfg.Addr), tea.WithAltScreen()).Run()
	return err
}
