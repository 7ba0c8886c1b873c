package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/csvexplore-cli/internal/session"
)

func keys(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestApp(t *testing.T) (*App, string) {
	t.Helper()
	dir := t.TempDir()
	a := New(Options{
		Session:  session.DefaultOptions(),
		PlotsDir: filepath.Join(dir, "plots"),
	})
	return a, dir
}

func writeCSV(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

// press sends msg and feeds any produced message back, the way the runtime would.
func press(t *testing.T, a *App, msg tea.Msg) {
	t.Helper()
	_, cmd := a.Update(msg)
	if cmd == nil {
		return
	}
	if next := cmd(); next != nil {
		if _, ok := next.(tea.QuitMsg); ok {
			return
		}
		a.Update(next)
	}
}

func typeUpload(t *testing.T, a *App, path string) {
	t.Helper()
	press(t, a, keys("u"))
	require.Equal(t, modeUpload, a.mode)
	press(t, a, keys(path))
	press(t, a, tea.KeyMsg{Type: tea.KeyEnter})
}

func TestCommandBeforeUpload(t *testing.T) {
	a, _ := newTestApp(t)
	press(t, a, keys("h"))
	assert.Contains(t, a.View(), session.NotReadyMessage)
	assert.Contains(t, a.View(), "(upload a file)")
}

func TestUploadRefreshesColumnPicker(t *testing.T) {
	a, dir := newTestApp(t)
	path := writeCSV(t, dir, "people.csv", "age,score\n30,1.5\n25,\n30,2.0\n")
	typeUpload(t, a, path)

	assert.Equal(t, modeCommands, a.mode)
	assert.Equal(t, []string{"age", "score"}, a.columns)
	assert.Contains(t, a.pane.text, "File uploaded successfully!")
	assert.Contains(t, a.pane.text, "DataFrame shape: (3, 2)")

	other := writeCSV(t, dir, "cities.csv", "name,city\nann,paris\n")
	press(t, a, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 1, a.cursor)
	typeUpload(t, a, other)
	assert.Equal(t, []string{"name", "city"}, a.columns)
	assert.Equal(t, 0, a.cursor)
}

func TestRejectsNonCSVPath(t *testing.T) {
	a, dir := newTestApp(t)
	path := writeCSV(t, dir, "notes.txt", "a,b\n1,2\n")
	typeUpload(t, a, path)
	assert.Contains(t, a.status, "only .csv files are accepted")
	assert.Empty(t, a.columns)
	assert.Equal(t, session.StateEmpty, a.sess.State())
}

func TestFailedUploadKeepsColumns(t *testing.T) {
	a, dir := newTestApp(t)
	typeUpload(t, a, writeCSV(t, dir, "people.csv", "age,score\n30,1.5\n"))
	typeUpload(t, a, writeCSV(t, dir, "broken.csv", "a,b\n\"1,2\n"))
	assert.Equal(t, []string{"age", "score"}, a.columns)
	assert.Contains(t, a.status, "upload failed")
	assert.Contains(t, a.pane.text, "Error:")
}

func TestColumnCommandsUseSelection(t *testing.T) {
	a, dir := newTestApp(t)
	typeUpload(t, a, writeCSV(t, dir, "people.csv", "name,age\nann,30\nbob,25\ncat,30\n"))

	press(t, a, keys("b"))
	assert.Contains(t, a.pane.text, "The selected column 'name' is not numeric")

	press(t, a, tea.KeyMsg{Type: tea.KeyRight})
	press(t, a, keys("v"))
	assert.Contains(t, a.pane.text, "30")
	assert.NotContains(t, a.pane.text, "not numeric")

	press(t, a, keys("g"))
	assert.Contains(t, a.pane.text, "Histogram of age")
	assert.FileExists(t, a.pane.saved)
	assert.Equal(t, "histogram_age.png", filepath.Base(a.pane.saved))

	press(t, a, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, 0, a.cursor)
	press(t, a, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, 1, a.cursor)
}

func TestEachCommandReplacesOutput(t *testing.T) {
	a, dir := newTestApp(t)
	typeUpload(t, a, writeCSV(t, dir, "people.csv", "age,score\n30,1.5\n25,\n30,2.0\n"))
	press(t, a, keys("g"))
	require.NotEmpty(t, a.pane.saved)
	press(t, a, keys("m"))
	assert.Empty(t, a.pane.saved)
	assert.NotContains(t, a.pane.text, "Histogram")
	assert.Contains(t, a.pane.text, "missing")
}

func TestUploadInputEditing(t *testing.T) {
	a, _ := newTestApp(t)
	press(t, a, keys("u"))
	press(t, a, keys("ab"))
	press(t, a, tea.KeyMsg{Type: tea.KeySpace})
	press(t, a, keys("c"))
	press(t, a, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "ab ", a.input)
	// command keys are text while the path input is open
	assert.Equal(t, modeUpload, a.mode)
	press(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	press(t, a, keys("u"))
	press(t, a, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, modeCommands, a.mode)
	assert.Empty(t, a.input)
}

func TestInitialPathIsUploaded(t *testing.T) {
	dir := t.TempDir()
	path := writeCSV(t, dir, "people.csv", "age\n1\n2\n")
	a := New(Options{Session: session.DefaultOptions(), InitialPath: path})
	cmd := a.Init()
	require.NotNil(t, cmd)
	a.Update(cmd())
	assert.Equal(t, []string{"age"}, a.columns)
}

func TestQuit(t *testing.T) {
	a, _ := newTestApp(t)
	_, cmd := a.Update(keys("q"))
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestHelpListsEveryCommand(t *testing.T) {
	a, _ := newTestApp(t)
	help := a.renderHelp()
	for _, info := range session.Commands() {
		assert.True(t, strings.Contains(help, info.Label), info.Label)
	}
	assert.Len(t, keyCommands, len(session.Commands()))
}
