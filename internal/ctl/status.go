package ctl

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"animd/pkg/types"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	highStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3DDC84"))
	mediumStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F5C518"))
	reducedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
)

func qualityBadge(q string) string {
	switch q {
	case "high":
		return highStyle.Render(q)
	case "medium":
		return mediumStyle.Render(q)
	case "reduced":
		return reducedStyle.Render(q)
	default:
		return q
	}
}

// renderStatus builds the header block shared by `status` and `watch`.
func renderStatus(addr string, st types.StatusResponse) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("animd "+addr) + "\n")
	b.WriteString(fmt.Sprintf("%s %s  %s %d/%d  %s %d  %s %d\n",
		labelStyle.Render("quality"), qualityBadge(st.Quality),
		labelStyle.Render("active"), st.ActiveAnimations, st.ConcurrencyCap,
		labelStyle.Render("queued"), st.QueueLength,
		labelStyle.Render("targets"), st.KnownTargets))
	if st.Performance.SampledAtUnixMs != 0 {
		b.WriteString(fmt.Sprintf("%s %.1f Hz (%d active at sample)\n",
			labelStyle.Render("frame estimate"), st.Performance.FrameEstimateHz, st.Performance.ActiveCount))
	}
	mode := "standard"
	if st.Mode.Cinematic {
		mode = "cinematic"
	}
	b.WriteString(fmt.Sprintf("%s %s (speed %.1fx, default quality %s)\n",
		labelStyle.Render("mode"), mode, st.Mode.SpeedMultiplier, st.Mode.DefaultQuality))
	return b.String()
}

func runStatus(cfg *Config) error {
	st, err := NewClient(cfg.Addr).Status()
	if err != nil {
		return err
	}
	fmt.Print(renderStatus(cfg.Addr, st))
	for _, q := range st.Queued {
		fmt.Printf("  %-36s %-14s %-10s p%d +%dms\n", q.ID, q.TargetID, q.Kind, q.Priority, q.DelayMs)
	}
	return nil
}
