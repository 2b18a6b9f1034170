package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const progressBarWidth = 30

var landingFeatures = []struct {
	title string
	blurb string
}{
	{"Timed Sessions", "Set a focus timer and work without distractions"},
	{"Team Presence", "See who's focusing alongside you in real time"},
	{"Shared Highlights", "Celebrate what everyone accomplished together"},
}

// View renders the current screen.
func (m Model) View() string {
	var body string
	switch m.screen {
	case ScreenLanding:
		body = m.renderLanding()
	case ScreenCreate:
		body = m.renderCreate()
	case ScreenJoin:
		body = m.renderJoin()
	case ScreenRoom:
		body = m.renderRoom()
	case ScreenComplete:
		body = m.renderComplete()
	}

	sections := []string{body}
	if m.errorMessage != "" {
		sections = append(sections, ErrorStyle.Render(m.errorMessage))
	}
	if m.statusText != "" {
		sections = append(sections, StatusStyle.Render(m.statusText))
	}
	sections = append(sections, m.renderFooter())

	return strings.Join(sections, "\n\n")
}

func (m Model) renderLanding() string {
	lines := []string{
		TitleStyle.Render("Focus Room"),
		SubtitleStyle.Render("Focus together, achieve more"),
		"",
	}
	for _, f := range landingFeatures {
		lines = append(lines, PanelTitleStyle.Render(f.title)+"  "+SubtitleStyle.Render(f.blurb))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderCreate() string {
	labels := [fieldCount]string{"Room name", "Duration (minutes)", "Description (optional)"}

	lines := []string{TitleStyle.Render("Create a Focus Room"), ""}
	for i := 0; i < fieldCount; i++ {
		label := FieldStyle.Render(labels[i])
		value := m.createFields[i]
		if i == m.createFocus {
			label = FocusedFieldStyle.Render("> " + labels[i])
			value += "█"
		}
		lines = append(lines, label, "  "+value)
	}

	lines = append(lines, "", renderButton("Create Room", m.createReady()))
	return PanelStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) renderJoin() string {
	lines := []string{
		TitleStyle.Render("Join a Focus Room"),
		"",
		FocusedFieldStyle.Render("> Room code"),
		"  " + m.joinCode + "█",
		"",
		renderButton("Join Room", strings.TrimSpace(m.joinCode) != ""),
	}
	return PanelStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) renderRoom() string {
	header := TitleStyle.Render(m.room.Name) + "  " + SubtitleStyle.Render("Room code: "+m.room.Code)
	if m.room.Description != "" {
		header += "\n" + SubtitleStyle.Render(m.room.Description)
	}

	timerPanel := PanelStyle.Render(strings.Join([]string{
		PanelTitleStyle.Render("Timer"),
		ClockStyle.Render(m.snapshot.Clock()),
		renderProgressBar(m.snapshot.Progress),
		SubtitleStyle.Render(m.snapshot.Caption()),
	}, "\n"))

	progressPanel := PanelStyle.Render(strings.Join([]string{
		PanelTitleStyle.Render("Session Progress"),
		fmt.Sprintf("%.0f%% complete", m.snapshot.Progress),
		SubtitleStyle.Render(fmt.Sprintf("%d of %d min", m.snapshot.ElapsedSec()/60, m.snapshot.DurationSec/60)),
	}, "\n"))

	people := []string{
		PanelTitleStyle.Render("Participants") + "  " +
			SubtitleStyle.Render(fmt.Sprintf("%d online", m.roster.OnlineCount())),
	}
	for _, p := range m.roster {
		status := AwayStyle.Render(p.Activity())
		if p.Online {
			status = OnlineStyle.Render(p.Activity())
		}
		people = append(people, fmt.Sprintf("%s %s  %s", p.Avatar, p.Name, status))
	}
	participantsPanel := PanelStyle.Render(strings.Join(people, "\n"))

	left := lipgloss.JoinVertical(lipgloss.Left, timerPanel, progressPanel)
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, left, " ", participantsPanel),
	)
}

func (m Model) renderComplete() string {
	if m.completion == nil {
		return ""
	}
	summary := m.completion.Summary

	lines := []string{
		TitleStyle.Render("Session Complete!"),
		SubtitleStyle.Render(summary.Headline),
		"",
		strings.Join(summary.FeaturedAvatars, " "),
		SubtitleStyle.Render(summary.FocusedTogether),
		"",
	}

	if _, shared := m.completion.Highlight(); shared {
		lines = append(lines, QuoteStyle.Render(m.completion.QuotedHighlight()))
	} else {
		lines = append(lines,
			PanelTitleStyle.Render("What did you accomplish?"),
			"  "+m.highlight+"█",
			"",
			renderButton("Share Highlight", strings.TrimSpace(m.highlight) != ""),
		)
	}

	return PanelStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) renderFooter() string {
	var keys [][2]string
	switch m.screen {
	case ScreenLanding:
		keys = [][2]string{{"c", "Create Room"}, {"j", "Join Room"}, {"q", "Quit"}}
	case ScreenCreate:
		keys = [][2]string{{"Tab", "Next field"}, {"Enter", "Create"}, {"Esc", "Cancel"}}
	case ScreenJoin:
		keys = [][2]string{{"Enter", "Join"}, {"Esc", "Cancel"}}
	case ScreenRoom:
		action := "Start"
		if m.snapshot.Ticking() {
			action = "Pause"
		} else if m.snapshot.IsPaused {
			action = "Resume"
		}
		keys = [][2]string{{"Space", action}, {"r", "Reset"}}
		if !m.snapshot.Ticking() {
			keys = append(keys, [2]string{"+/-", "Duration"})
		}
		keys = append(keys, [2]string{"s", "Share"}, [2]string{"l", "Leave"})
	case ScreenComplete:
		keys = [][2]string{{"Enter", "Share"}, {"Esc", "Back to Home"}}
	}
	keys = append(keys, [2]string{"Ctrl+C", "Quit"})

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, FooterKeyStyle.Render(k[0])+FooterDescStyle.Render(" "+k[1]))
	}
	return strings.Join(parts, "  ")
}

func renderButton(label string, enabled bool) string {
	if !enabled {
		return DisabledStyle.Render("[ " + label + " ]")
	}
	return FocusedFieldStyle.Render("[ " + label + " ]")
}

func renderProgressBar(progress float64) string {
	filled := int(progress / 100 * progressBarWidth)
	if filled < 0 {
		filled = 0
	}
	if filled > progressBarWidth {
		filled = progressBarWidth
	}
	return ProgressFilledStyle.Render(strings.Repeat("█", filled)) +
		ProgressEmptyStyle.Render(strings.Repeat("░", progressBarWidth-filled))
}
