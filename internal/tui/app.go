// Package tui is the interactive terminal host for an exploration session.
package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/KaramelBytes/csvexplore-cli/internal/session"
	"github.com/KaramelBytes/csvexplore-cli/internal/utils"
)

// Options configures the app.
type Options struct {
	Session        session.Options
	PlotsDir       string
	MaxRows        int
	MaxUploadBytes int64
	// InitialPath is uploaded on start when set.
	InitialPath string
}

// App is the bubbletea model.
type App struct {
	opt       Options
	sess      *session.Session
	pane      *pane
	mode      mode
	input     string
	columns   []string
	datasetID string
	cursor    int
	status    string
}

type mode string

const (
	modeCommands mode = "commands"
	modeUpload   mode = "upload"
)

var keyCommands = map[string]session.Command{
	"h": session.CmdHead,
	"t": session.CmdTail,
	"d": session.CmdDtypes,
	"s": session.CmdDescribe,
	"m": session.CmdMissingValues,
	"c": session.CmdCorrelation,
	"v": session.CmdValueCounts,
	"n": session.CmdUniqueValues,
	"g": session.CmdHistogram,
	"b": session.CmdBoxplot,
	"i": session.CmdInfo,
	"p": session.CmdProfile,
}

// keyOrder is the help line order.
var keyOrder = []string{"h", "t", "d", "s", "m", "c", "v", "n", "g", "b", "i", "p"}

type fileMsg struct {
	name string
	raw  []byte
}

type errMsg struct{ error }

func New(opt Options) *App {
	p := &pane{plotsDir: opt.PlotsDir, maxRows: opt.MaxRows}
	return &App{
		opt:  opt,
		sess: session.New(opt.Session, p),
		pane: p,
		mode: modeCommands,
	}
}

func (a *App) Init() tea.Cmd {
	if a.opt.InitialPath != "" {
		return a.readFileCmd(a.opt.InitialPath)
	}
	return nil
}

// readFileCmd applies the upload control's filter before any bytes reach the session.
func (a *App) readFileCmd(path string) tea.Cmd {
	path = utils.ExpandHome(strings.TrimSpace(path))
	limit := a.opt.MaxUploadBytes
	return func() tea.Msg {
		if !utils.HasExtension(path, ".csv") {
			return errMsg{fmt.Errorf("only .csv files are accepted: %s", filepath.Base(path))}
		}
		raw, err := utils.ReadFileLimited(path, limit)
		if err != nil {
			return errMsg{err}
		}
		return fileMsg{name: filepath.Base(path), raw: raw}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		if a.mode == modeUpload {
			return a.handleUploadKey(m)
		}
		return a.handleCommandKey(m)
	case fileMsg:
		a.upload(m)
	case errMsg:
		a.status = "error: " + m.Error()
	}
	return a, nil
}

func (a *App) upload(m fileMsg) {
	ds, err := a.sess.Upload(m.name, m.raw)
	if ds == nil {
		a.status = "upload failed: " + err.Error()
		return
	}
	a.columns = a.sess.Columns()
	a.datasetID = ds.ID()
	a.cursor = 0
	a.status = "loaded " + m.name
	if err != nil {
		a.status = "error: " + err.Error()
	}
}

func (a *App) handleCommandKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := m.String()
	switch key {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "u":
		a.mode = modeUpload
		a.input = ""
		a.status = ""
		return a, nil
	case "tab", "right", "down":
		if len(a.columns) > 0 {
			a.cursor = (a.cursor + 1) % len(a.columns)
		}
		return a, nil
	case "shift+tab", "left", "up":
		if len(a.columns) > 0 {
			a.cursor = (a.cursor + len(a.columns) - 1) % len(a.columns)
		}
		return a, nil
	}
	if cmd, ok := keyCommands[key]; ok {
		a.run(cmd)
	}
	return a, nil
}

func (a *App) run(cmd session.Command) {
	a.status = ""
	ref := session.ColumnRef{DatasetID: a.datasetID}
	if a.cursor < len(a.columns) {
		ref.Name = a.columns[a.cursor]
	}
	if _, err := a.sess.RunRef(cmd, ref); err != nil {
		a.status = "error: " + err.Error()
	}
}

func (a *App) handleUploadKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.String() == "ctrl+c" {
		return a, tea.Quit
	}
	switch m.Type {
	case tea.KeyEsc:
		a.mode = modeCommands
		a.input = ""
	case tea.KeyEnter:
		path := strings.TrimSpace(a.input)
		if path == "" {
			a.status = "enter a CSV path"
			return a, nil
		}
		a.mode = modeCommands
		a.status = "loading..."
		return a, a.readFileCmd(path)
	case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
		if r := []rune(a.input); len(r) > 0 {
			a.input = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		a.input += " "
	case tea.KeyRunes:
		a.input += string(m.Runes)
	}
	return a, nil
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#89b4fa"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1e1e2e")).Background(lipgloss.Color("#89b4fa"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#7f849c"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#f9e2af"))
)

func (a *App) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("CSV Data Explorer"))
	b.WriteString("\n")
	b.WriteString(a.renderColumns())
	b.WriteString("\n")
	if a.mode == modeUpload {
		b.WriteString(fmt.Sprintf("CSV path: %s█\n", a.input))
		b.WriteString(helpStyle.Render("[enter] Upload  [esc] Back"))
	} else {
		b.WriteString(helpStyle.Render(a.renderHelp()))
	}
	if a.pane.text != "" {
		b.WriteString("\n\n")
		b.WriteString(a.pane.text)
	}
	if a.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(a.status))
	}
	b.WriteString("\n")
	return b.String()
}

func (a *App) renderColumns() string {
	if len(a.columns) == 0 {
		return "Column: (upload a file)"
	}
	parts := make([]string, len(a.columns))
	for i, c := range a.columns {
		if i == a.cursor {
			parts[i] = selectedStyle.Render(c)
		} else {
			parts[i] = c
		}
	}
	return "Column: " + strings.Join(parts, "  ")
}

func (a *App) renderHelp() string {
	var parts []string
	parts = append(parts, "[u] Upload")
	for _, k := range keyOrder {
		info, _ := keyCommands[k].Info()
		parts = append(parts, fmt.Sprintf("[%s] %s", k, info.Label))
	}
	parts = append(parts, "[tab] Column", "[q] Quit")
	return strings.Join(parts, "  ")
}

// Run starts the app on the terminal.
func Run(opt Options) error {
	p := tea.NewProgram(New(opt), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
