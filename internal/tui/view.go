package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"desktopcleaner/internal/dashboard"
	"desktopcleaner/internal/i18n"
	"desktopcleaner/internal/model"
	"desktopcleaner/internal/settings"
	"desktopcleaner/internal/ui"
	"desktopcleaner/internal/weekly"
)

var (
	baseStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)
	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("245"))
	activeTabStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Underline(true).Foreground(lipgloss.Color("212"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	panelStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)
)

var plain = ui.Theme{NoColor: true}

func (m Model) View() string {
	texts := i18n.For(m.st.Settings.Lang)

	var b strings.Builder
	b.WriteString(m.header(texts))
	b.WriteString("\n")
	if m.st.Error != "" {
		b.WriteString(errorStyle.Render(m.st.Error))
		b.WriteString("\n")
	}
	if m.st.Scan.PanelVisible {
		b.WriteString(m.scanPanel(texts))
		b.WriteString("\n")
	}

	var body, help string
	switch m.st.View {
	case dashboard.ViewSettings:
		body = m.settingsView(texts)
		help = helpLine(keys.Lang, keys.More, keys.Less, keys.Autorun, keys.Back)
	case dashboard.ViewStats:
		body = m.statsView(texts)
		help = helpLine(keys.Scan, keys.Back)
	case dashboard.ViewTrash:
		body = m.trashView()
		help = helpLine(keys.Restore, keys.Delete, keys.Clear, keys.Back)
	case dashboard.ViewProfile:
		body = m.profileView()
		help = helpLine(keys.Back)
	default:
		body = m.homeView(texts)
		help = helpLine(keys.Scan, keys.Select, keys.SelectAll, keys.Discard, keys.Label, keys.Category, keys.Apply, keys.Autorun)
	}
	b.WriteString(body)

	nav := helpLine(keys.Home, keys.Settings, keys.Stats, keys.Trash, keys.Profile, keys.Quit)
	return baseStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		b.String(),
		mutedStyle.Render(help),
		mutedStyle.Render(nav),
	))
}

func (m Model) header(texts i18n.Texts) string {
	tabs := []struct {
		v    dashboard.View
		name string
	}{
		{dashboard.ViewHome, texts.ViewHome},
		{dashboard.ViewSettings, texts.ViewSettings},
		{dashboard.ViewStats, texts.ViewStats},
		{dashboard.ViewTrash, texts.ViewTrash},
		{dashboard.ViewProfile, texts.ViewProfile},
	}
	parts := []string{titleStyle.Render("DesktopCleaner")}
	for _, t := range tabs {
		if t.v == m.st.View {
			parts = append(parts, activeTabStyle.Render(t.name))
		} else {
			parts = append(parts, tabStyle.Render(t.name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) scanPanel(texts i18n.Texts) string {
	status := texts.ScanDone
	if m.st.Scan.Running {
		status = m.spin.View() + " " + texts.ScanRunning
	}
	lines := []string{
		status,
		m.bar.ViewAs(float64(m.st.Scan.Progress) / 100),
		fmt.Sprintf("%s: %d   %s: %s", texts.FilesOnDesktop, m.st.Scan.FilesCount, texts.TotalSize, ui.FormatSize(m.st.Scan.TotalSize)),
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) homeView(texts i18n.Texts) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d   %s: %s\n", texts.FilesOnDesktop, len(m.st.Files), texts.TotalSize, ui.FormatSize(m.st.TotalSize()))
	fmt.Fprintf(&b, "%s: %s\n", texts.CleanlinessScore, plain.Gauge(m.st.Cleanliness(), 20))

	bulk := fmt.Sprintf("label: %s   category: %s   selected: %d",
		m.st.BulkLabel.Short(), m.st.BulkCategory.Short(), len(m.st.Selected))
	if m.st.Labeling {
		bulk += "   " + m.spin.View()
	}
	b.WriteString(mutedStyle.Render(bulk))
	b.WriteString("\n")
	b.WriteString(m.files.View())
	b.WriteString("\n")
	return b.String()
}

func (m Model) statsView(texts i18n.Texts) string {
	var b strings.Builder
	w := m.st.Weekly
	if w.Len() == 0 {
		b.WriteString(mutedStyle.Render(texts.NoWeeklyData))
		b.WriteString("\n")
	} else {
		for day := 0; day < weekly.Size; day++ {
			p, ok := w.Lookup(day)
			if !ok {
				fmt.Fprintf(&b, "%-3s %s    -\n", texts.WeekDay(day), strings.Repeat(" ", 20))
				continue
			}
			fmt.Fprintf(&b, "%-3s %s %3d%%\n", texts.WeekDay(day), plain.Bar(float64(p.Value)/100, 20), p.Value)
		}
		fmt.Fprintf(&b, "avg %d%%", w.Average())
		if best, ok := w.Best(); ok {
			fmt.Fprintf(&b, "   best %s %d%%", texts.WeekDay(best.DayIndex), best.Value)
		}
		if worst, ok := w.Worst(); ok {
			fmt.Fprintf(&b, "   worst %s %d%%", texts.WeekDay(worst.DayIndex), worst.Value)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	chart := m.st.CategoryChart()
	total := len(m.st.Files)
	for _, c := range chart {
		ratio := 0.0
		if total > 0 {
			ratio = float64(c.Files) / float64(total)
		}
		fmt.Fprintf(&b, "%-12s %s %d\n", texts.Bucket(c.Bucket), plain.Bar(ratio, 20), c.Files)
	}
	return b.String()
}

func (m Model) trashView() string {
	if len(m.st.Trash) == 0 {
		return mutedStyle.Render("(empty)") + "\n"
	}
	var size int64
	for _, e := range m.st.Trash {
		size += e.File.SizeBytes
	}
	return fmt.Sprintf("%d files, %s\n%s\n", len(m.st.Trash), ui.FormatSize(size), m.trash.View())
}

func (m Model) profileView() string {
	p := m.st.ProfileSummary()
	var b strings.Builder
	if p.Error != "" {
		b.WriteString(errorStyle.Render(p.Error))
		b.WriteString("\n")
		return b.String()
	}
	fmt.Fprintf(&b, "records: %d   labeled: %d   categorized: %d\n", p.TotalRecords, p.LabeledRecords, p.CategorizedRecords)
	fmt.Fprintf(&b, "top label: %s   top category: %s\n\n", orNone(p.TopLabel), orNone(p.TopCategory))
	writeHistogram(&b, "labels", p.Labels, p.TotalRecords)
	writeHistogram(&b, "categories", p.Categories, p.TotalRecords)
	return b.String()
}

func writeHistogram(b *strings.Builder, title string, h map[string]int, total int) {
	if len(h) == 0 {
		return
	}
	b.WriteString(title + "\n")
	for _, kc := range model.Sorted(h) {
		ratio := 0.0
		if total > 0 {
			ratio = float64(kc.Count) / float64(total)
		}
		fmt.Fprintf(b, "  %-10s %s %d\n", kc.Key, plain.Bar(ratio, 16), kc.Count)
	}
}

func (m Model) settingsView(texts i18n.Texts) string {
	var b strings.Builder
	fmt.Fprintf(&b, "language: %s\n", m.st.Settings.Lang)
	if m.st.LangMenuOpen {
		for i, l := range settings.Langs {
			mark := " "
			if l == m.st.Settings.Lang {
				mark = "•"
			}
			fmt.Fprintf(&b, "  %s %d) %s\n", mark, i+1, l)
		}
	}
	fmt.Fprintf(&b, "cleanup threshold: %d days\n", m.st.Settings.CleanupThreshold)
	autorun := "off"
	if m.st.Autorun {
		autorun = "on"
	}
	if !m.st.Caps.SetAutorun {
		autorun += " (" + texts.BridgeUnavailable + ")"
	}
	fmt.Fprintf(&b, "autorun: %s\n", autorun)
	if len(m.st.Settings.IgnoreList) > 0 {
		fmt.Fprintf(&b, "ignored: %s\n", strings.Join(m.st.Settings.IgnoreList, ", "))
	}
	return b.String()
}

func orNone(s *string) string {
	if s == nil || *s == "" {
		return model.NoneKey
	}
	return *s
}
