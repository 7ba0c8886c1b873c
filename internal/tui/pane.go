package tui

import (
	"github.com/KaramelBytes/csvexplore-cli/internal/display"
)

// pane is the output area of the app. It keeps only the latest rendering.
type pane struct {
	plotsDir string
	maxRows  int
	text     string
	saved    string
}

func (p *pane) Clear() {
	p.text = ""
	p.saved = ""
}

func (p *pane) Render(out display.Output) error {
	p.text = display.Format(out, p.maxRows)
	if out.Image == nil || p.plotsDir == "" {
		return nil
	}
	path, err := display.SaveImage(p.plotsDir, out.Image)
	if err != nil {
		return err
	}
	p.saved = path
	p.text += "\n" + display.Saved(path)
	return nil
}
