// Package browse is the interactive TUI over the stored job corpus: a
// split-pane list of all jobs next to the high matches, with a detail view
// showing the score breakdown and, when enabled, an on-demand LLM fit
// assessment.
package browse

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/neilv/neilsearch/internal/model"
)

// HighMatchScore is the score floor for the right-hand pane.
const HighMatchScore = 60

// Analyzer produces an LLM fit assessment for one job. Nil disables the
// 's' key in the detail view.
type Analyzer interface {
	Analyze(ctx context.Context, job model.Job, profile model.Profile) (model.Job, error)
}

// Lines per job item in the list view (title + subtitle + blank separator).
const jobItemHeight = 3

type viewState int

const (
	viewList viewState = iota
	viewDetail
)

var (
	activeBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("39")) // bright blue

	inactiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")) // dim gray

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	activeHeaderStyle = headerStyle.
				Foreground(lipgloss.Color("39"))

	inactiveHeaderStyle = headerStyle.
				Foreground(lipgloss.Color("240"))

	statusBarStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236"))

	jobTitleStyle = lipgloss.NewStyle().
			Bold(true)

	jobSubtitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245"))

	selectedJobTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")). // bright white
				Background(lipgloss.Color("24"))  // dark blue bg

	selectedJobSubtitleStyle = lipgloss.NewStyle().
					Foreground(lipgloss.Color("252")).
					Background(lipgloss.Color("24"))

	detailLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				Width(16)

	detailValueStyle = lipgloss.NewStyle()

	detailTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				MarginBottom(1)

	scoreHighStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42")) // green

	scoreMediumStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("214")) // orange

	scoreLowStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("245")) // gray

	skillMatchedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("42"))

	skillMissingStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("203"))

	descDividerStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240"))

	descHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true)

	descBodyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))
)

// jobAnalyzedMsg is sent when an async AI analysis completes.
type jobAnalyzedMsg struct {
	job model.Job
	err error
}

type browseModel struct {
	allJobs       []model.Job
	highMatches   []model.Job
	profile       model.Profile
	leftViewport  viewport.Model
	rightViewport viewport.Model
	activePane    int // 0=left, 1=right
	leftCursor    int
	rightCursor   int
	width         int
	height        int
	ready         bool

	// Detail view state
	view            viewState
	detailJob       model.Job
	detailViewport  viewport.Model
	showDescription bool

	// AI analysis state
	analyzer       Analyzer
	analyzeLoading bool
	analyzeError   string

	wantQuit bool
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.recalcLayout()
		if m.view == viewDetail {
			m.detailViewport.Width = m.width - 4
			m.detailViewport.Height = m.height - 4
			m.detailViewport.SetContent(m.renderDetail())
		}
		return m, nil

	case jobAnalyzedMsg:
		m.analyzeLoading = false
		if msg.err != nil {
			m.analyzeError = fmt.Sprintf("analysis failed: %v", msg.err)
		} else if msg.job.Insights == nil {
			m.analyzeError = "AI analysis is not enabled — set ai.enabled: true in config.yaml"
		} else {
			m.analyzeError = ""
			m.detailJob = msg.job
			m.updateJobInLists(msg.job)
		}
		m.detailViewport.SetContent(m.renderDetail())
		return m, nil

	case tea.KeyMsg:
		if m.view == viewDetail {
			return m.updateDetailView(msg)
		}
		return m.updateListView(msg)
	}

	return m, nil
}

func (m browseModel) updateListView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.wantQuit = true
		return m, tea.Quit
	case "esc", "b":
		m.wantQuit = false
		return m, tea.Quit
	case "tab", "left", "right":
		m.activePane = 1 - m.activePane
		m.recalcContent()
		return m, nil
	case "up", "k":
		m.moveCursor(-1)
		m.recalcContent()
		m.ensureCursorVisible()
		return m, nil
	case "down", "j":
		m.moveCursor(1)
		m.recalcContent()
		m.ensureCursorVisible()
		return m, nil
	case "enter":
		return m.openDetailView()
	}

	// Forward other keys (pgup/pgdn/home/end) to the active viewport.
	var cmd tea.Cmd
	if m.activePane == 0 {
		m.leftViewport, cmd = m.leftViewport.Update(msg)
	} else {
		m.rightViewport, cmd = m.rightViewport.Update(msg)
	}
	return m, cmd
}

func (m browseModel) updateDetailView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.wantQuit = true
		return m, tea.Quit
	case "esc", "backspace":
		m.view = viewList
		return m, nil
	case "o":
		OpenURL(m.detailJob.URL)
		return m, nil
	case "r":
		if m.detailJob.Description != "" {
			m.showDescription = !m.showDescription
			m.detailViewport.SetContent(m.renderDetail())
			m.detailViewport.SetYOffset(0)
		}
		return m, nil
	case "s":
		if m.analyzer != nil && !m.analyzeLoading && m.detailJob.Insights == nil &&
			m.detailJob.Description != "" {
			m.analyzeLoading = true
			m.analyzeError = ""
			m.detailViewport.SetContent(m.renderDetail())
			return m, m.analyzeJobCmd(m.detailJob)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.detailViewport, cmd = m.detailViewport.Update(msg)
	return m, cmd
}

func (m browseModel) analyzeJobCmd(job model.Job) tea.Cmd {
	analyzer := m.analyzer
	profile := m.profile
	return func() tea.Msg {
		analyzed, err := analyzer.Analyze(context.Background(), job, profile)
		return jobAnalyzedMsg{job: analyzed, err: err}
	}
}

func (m *browseModel) moveCursor(delta int) {
	if m.activePane == 0 {
		m.leftCursor = clamp(m.leftCursor+delta, 0, max(len(m.allJobs)-1, 0))
	} else {
		m.rightCursor = clamp(m.rightCursor+delta, 0, max(len(m.highMatches)-1, 0))
	}
}

func (m *browseModel) ensureCursorVisible() {
	var vp *viewport.Model
	var cursor int
	if m.activePane == 0 {
		vp = &m.leftViewport
		cursor = m.leftCursor
	} else {
		vp = &m.rightViewport
		cursor = m.rightCursor
	}

	cursorTop := cursor * jobItemHeight
	cursorBottom := cursorTop + jobItemHeight - 1

	if cursorTop < vp.YOffset {
		vp.SetYOffset(cursorTop)
	} else if cursorBottom >= vp.YOffset+vp.Height {
		vp.SetYOffset(cursorBottom - vp.Height + 1)
	}
}

func (m browseModel) openDetailView() (tea.Model, tea.Cmd) {
	jobs := m.activeJobs()
	cursor := m.activeCursor()
	if len(jobs) == 0 {
		return m, nil
	}

	m.view = viewDetail
	m.detailJob = jobs[cursor]
	m.showDescription = false
	m.analyzeError = ""
	m.detailViewport = viewport.New(m.width-4, m.height-4)
	m.detailViewport.SetContent(m.renderDetail())
	return m, nil
}

func (m *browseModel) updateJobInLists(job model.Job) {
	for i := range m.allJobs {
		if m.allJobs[i].ID == job.ID {
			m.allJobs[i] = job
			break
		}
	}
	for i := range m.highMatches {
		if m.highMatches[i].ID == job.ID {
			m.highMatches[i] = job
			break
		}
	}
}

func (m *browseModel) recalcLayout() {
	// 2 border chars per pane + 1 gap between panes.
	paneWidth := max((m.width-5)/2, 20)

	// Header (1 line) + border top/bottom (2) + status bar (1) = 4 lines overhead.
	paneHeight := max(m.height-4, 5)

	if !m.ready {
		m.leftViewport = viewport.New(paneWidth, paneHeight)
		m.rightViewport = viewport.New(paneWidth, paneHeight)
		m.ready = true
	} else {
		m.leftViewport.Width = paneWidth
		m.leftViewport.Height = paneHeight
		m.rightViewport.Width = paneWidth
		m.rightViewport.Height = paneHeight
	}

	m.recalcContent()
}

func (m *browseModel) recalcContent() {
	m.leftViewport.SetContent(renderJobs(m.allJobs, m.leftCursor, m.activePane == 0))
	m.rightViewport.SetContent(renderJobs(m.highMatches, m.rightCursor, m.activePane == 1))
}

func (m browseModel) activeJobs() []model.Job {
	if m.activePane == 0 {
		return m.allJobs
	}
	return m.highMatches
}

func (m browseModel) activeCursor() int {
	if m.activePane == 0 {
		return m.leftCursor
	}
	return m.rightCursor
}

func (m browseModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	if m.view == viewDetail {
		return m.viewDetail()
	}

	return m.viewList()
}

func (m browseModel) viewList() string {
	paneWidth := m.leftViewport.Width

	leftHeader := fmt.Sprintf(" All Jobs (%d)", len(m.allJobs))
	rightHeader := fmt.Sprintf(" High Matches 60+ (%d)", len(m.highMatches))

	var leftHeaderRendered, rightHeaderRendered string
	var leftBorder, rightBorder lipgloss.Style

	if m.activePane == 0 {
		leftHeaderRendered = activeHeaderStyle.Render(leftHeader)
		rightHeaderRendered = inactiveHeaderStyle.Render(rightHeader)
		leftBorder = activeBorderStyle.Width(paneWidth)
		rightBorder = inactiveBorderStyle.Width(paneWidth)
	} else {
		leftHeaderRendered = inactiveHeaderStyle.Render(leftHeader)
		rightHeaderRendered = activeHeaderStyle.Render(rightHeader)
		leftBorder = inactiveBorderStyle.Width(paneWidth)
		rightBorder = activeBorderStyle.Width(paneWidth)
	}

	leftPane := leftBorder.Render(m.leftViewport.View())
	rightPane := rightBorder.Render(m.rightViewport.View())

	headerRow := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(paneWidth+2).Render(leftHeaderRendered),
		" ",
		lipgloss.NewStyle().Width(paneWidth+2).Render(rightHeaderRendered),
	)

	panes := lipgloss.JoinHorizontal(lipgloss.Top, leftPane, " ", rightPane)

	statusText := fmt.Sprintf(" %d stored | %d high matches    ←/→/Tab switch  ↑/↓ cursor  Enter detail  Esc back  q quit",
		len(m.allJobs), len(m.highMatches))
	statusBar := statusBarStyle.Width(m.width).Render(statusText)

	return headerRow + "\n" + panes + "\n" + statusBar
}

func (m browseModel) viewDetail() string {
	title := detailTitleStyle.Render("Job Details")
	if m.analyzeLoading {
		title += "  (analyzing...)"
	}

	border := activeBorderStyle.Width(m.width - 2)
	content := border.Render(m.detailViewport.View())

	statusText := " o open URL  esc/backspace back  ↑/↓ scroll  q quit"
	if m.detailJob.Description != "" {
		if m.analyzer != nil && m.detailJob.Insights == nil && !m.analyzeLoading {
			statusText = " o open URL  r desc  s fit analysis  esc/backspace back  ↑/↓ scroll  q quit"
		} else {
			statusText = " o open URL  r desc  esc/backspace back  ↑/↓ scroll  q quit"
		}
	}
	statusBar := statusBarStyle.Width(m.width).Render(statusText)

	return title + "\n" + content + "\n" + statusBar
}

func scoreStyle(score float64) lipgloss.Style {
	switch {
	case score >= 80:
		return scoreHighStyle
	case score >= HighMatchScore:
		return scoreMediumStyle
	default:
		return scoreLowStyle
	}
}

func (m browseModel) renderDetail() string {
	j := m.detailJob
	var b strings.Builder

	addField := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(detailLabelStyle.Render(label))
		b.WriteString(detailValueStyle.Render(value))
		b.WriteByte('\n')
	}

	addField("Title", j.Title)
	addField("Company", j.Company)
	addField("Location", j.Location)
	addField("Source", j.Source)
	if j.PostedAt != nil {
		addField("Posted At", j.PostedAt.Format("2006-01-02"))
	}
	addField("Scraped At", j.ScrapedAt.Format("2006-01-02 15:04"))
	addField("Job URL", j.URL)

	wrapWidth := max(m.width-8, 20)
	divider := func(label string) string {
		fill := strings.Repeat("─", max(wrapWidth-len(label), 3))
		return descDividerStyle.Render(label + fill)
	}

	if j.Match != nil {
		mt := j.Match
		b.WriteByte('\n')
		b.WriteString(divider("── Match ") + "\n\n")
		b.WriteString(detailLabelStyle.Render("Score"))
		b.WriteString(scoreStyle(mt.Score).Render(fmt.Sprintf("%.1f / 100", mt.Score)))
		b.WriteByte('\n')
		addField("Skills", fmt.Sprintf("%.0f/40", mt.Breakdown.Skills))
		addField("Role Fit", fmt.Sprintf("%.0f/30", mt.Breakdown.RoleFit))
		addField("Company", fmt.Sprintf("%.0f/20", mt.Breakdown.CompanyTraits))
		addField("Experience", fmt.Sprintf("%.0f/10", mt.Breakdown.ExperienceLevel))
		addField("New Grad", fmt.Sprintf("%.0f/30", mt.Breakdown.FreshGradFriendly))
		if mt.Breakdown.LocationBonus > 0 {
			addField("Location", fmt.Sprintf("+%.0f", mt.Breakdown.LocationBonus))
		}
		if len(mt.SkillsMatched) > 0 {
			b.WriteString(detailLabelStyle.Render("Matched"))
			b.WriteString(skillMatchedStyle.Render(strings.Join(mt.SkillsMatched, ", ")))
			b.WriteByte('\n')
		}
		if len(mt.SkillsMissing) > 0 {
			b.WriteString(detailLabelStyle.Render("Missing"))
			b.WriteString(skillMissingStyle.Render(strings.Join(mt.SkillsMissing, ", ")))
			b.WriteByte('\n')
		}
		if mt.Explanation != "" {
			b.WriteByte('\n')
			b.WriteString(descBodyStyle.Render(wordWrap(mt.Explanation, wrapWidth)) + "\n")
		}
	}

	if m.analyzeError != "" {
		b.WriteByte('\n')
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("⚠ "+m.analyzeError) + "\n")
	}

	if j.Insights != nil {
		ins := j.Insights
		b.WriteByte('\n')
		b.WriteString(divider("── AI Fit ") + "\n\n")
		addField("Verdict", ins.FitSummary)
		addField("Role", ins.RoleType)
		addField("Experience", ins.YearsExp)
		if len(ins.TechStack) > 0 {
			addField("Stack", strings.Join(ins.TechStack, ", "))
		}
		b.WriteByte('\n')
		for _, pt := range ins.KeyPoints {
			if pt != "" {
				b.WriteString(detailValueStyle.Render("  • "+pt) + "\n")
			}
		}
	} else if m.analyzeLoading {
		b.WriteByte('\n')
		b.WriteString(descHintStyle.Render("  analyzing fit against your profile...") + "\n")
	} else if m.analyzer != nil && m.analyzeError == "" && j.Description != "" {
		b.WriteByte('\n')
		b.WriteString(descHintStyle.Render("  press s for an AI fit assessment") + "\n")
	}

	if j.Description != "" {
		b.WriteByte('\n')
		if m.showDescription {
			b.WriteString(divider("── Job Description ") + "\n\n")
			b.WriteString(descBodyStyle.Render(wordWrap(j.Description, wrapWidth)) + "\n")
		} else {
			b.WriteString(descHintStyle.Render("  press r to read job description") + "\n")
		}
	}

	return b.String()
}

func renderJobs(jobs []model.Job, cursor int, isActive bool) string {
	if len(jobs) == 0 {
		return "  (no jobs)"
	}

	var b strings.Builder
	for i, j := range jobs {
		isSelected := isActive && i == cursor

		titleSt := jobTitleStyle
		subtitleSt := jobSubtitleStyle
		prefix := "  "
		if isSelected {
			titleSt = selectedJobTitleStyle
			subtitleSt = selectedJobSubtitleStyle
			prefix = "> "
		}

		score := "--"
		if j.Match != nil {
			score = fmt.Sprintf("%.0f", j.Match.Score)
		}
		b.WriteString(prefix)
		b.WriteString(titleSt.Render(fmt.Sprintf("%s  [%s]", j.Title, score)))
		b.WriteByte('\n')

		b.WriteString(prefix)
		b.WriteString(subtitleSt.Render(fmt.Sprintf("%s · %s", j.Company, j.Location)))
		b.WriteByte('\n')

		if i < len(jobs)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// sortJobsByScore orders jobs best-first: scored before unscored, higher
// score first, newer scrape breaking ties.
func sortJobsByScore(jobs []model.Job) {
	sort.Slice(jobs, func(i, j int) bool {
		mi, mj := jobs[i].Match, jobs[j].Match
		switch {
		case mi == nil && mj == nil:
			return jobs[i].ScrapedAt.After(jobs[j].ScrapedAt)
		case mi == nil:
			return false
		case mj == nil:
			return true
		case mi.Score != mj.Score:
			return mi.Score > mj.Score
		}
		return jobs[i].ScrapedAt.After(jobs[j].ScrapedAt)
	})
}

func wordWrap(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) <= width {
			line += " " + w
		} else {
			lines = append(lines, line)
			line = w
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// OpenURL opens url in the default system browser, fire-and-forget.
func OpenURL(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	default:
		return
	}
	_ = cmd.Start()
}

// SplitHighMatches returns the subset of jobs scoring at or above
// HighMatchScore, preserving order.
func SplitHighMatches(jobs []model.Job) []model.Job {
	var high []model.Job
	for _, j := range jobs {
		if j.Match != nil && j.Match.Score >= HighMatchScore {
			high = append(high, j)
		}
	}
	return high
}

// Run launches the interactive split-pane browse TUI over the given jobs.
// analyzer may be nil; when non-nil the 's' key triggers an LLM fit
// assessment in the detail view. Returns wantQuit=true if the user pressed
// q/ctrl+c, false if they pressed esc to return to the picker.
func Run(jobs []model.Job, profile model.Profile, analyzer Analyzer) (bool, error) {
	sortJobsByScore(jobs)
	high := SplitHighMatches(jobs)

	m := browseModel{
		allJobs:     jobs,
		highMatches: high,
		profile:     profile,
		analyzer:    analyzer,
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	result, err := p.Run()
	if err != nil {
		return false, err
	}
	final := result.(browseModel)
	return final.wantQuit, nil
}
