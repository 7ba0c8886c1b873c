package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/KaramelBytes/csvexplore-cli/internal/analysis"
	"github.com/KaramelBytes/csvexplore-cli/internal/dataset"
	"github.com/KaramelBytes/csvexplore-cli/internal/display"
	"github.com/KaramelBytes/csvexplore-cli/internal/session"
	"github.com/KaramelBytes/csvexplore-cli/internal/utils"
	"github.com/labstack/echo/v4"
)

type tableJSON struct {
	Title     string     `json:"title,omitempty"`
	IndexName string     `json:"index_name"`
	Index     []string   `json:"index"`
	Columns   []string   `json:"columns"`
	Rows      [][]string `json:"rows"`
}

type imageJSON struct {
	Name   string `json:"name"`
	Title  string `json:"title"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	URL    string `json:"url"`
}

type outputJSON struct {
	Command    string     `json:"command,omitempty"`
	Kind       string     `json:"kind"`
	Message    string     `json:"message,omitempty"`
	Error      string     `json:"error,omitempty"`
	Table      *tableJSON `json:"table,omitempty"`
	Image      *imageJSON `json:"image,omitempty"`
	Generation int        `json:"generation"`
}

type datasetJSON struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Rows int    `json:"rows"`
	Cols int    `json:"cols"`
}

type columnsJSON struct {
	State   string       `json:"state"`
	Dataset *datasetJSON `json:"dataset,omitempty"`
	Columns []string     `json:"columns"`
}

type uploadJSON struct {
	columnsJSON
	Output outputJSON `json:"output"`
}

func newTableJSON(t *analysis.Table) *tableJSON {
	if t == nil {
		return nil
	}
	return &tableJSON{Title: t.Title, IndexName: t.IndexName, Index: t.Index, Columns: t.Columns, Rows: t.Rows}
}

func newOutputJSON(out display.Output, gen int) outputJSON {
	o := outputJSON{
		Command:    out.Command,
		Kind:       out.Kind(),
		Message:    out.Message,
		Table:      newTableJSON(out.Table),
		Generation: gen,
	}
	if out.Err != nil {
		o.Error = fmt.Sprintf("Error: %v", out.Err)
	}
	if img := out.Image; img != nil {
		o.Image = &imageJSON{
			Name:   img.Name,
			Title:  img.Title,
			Width:  img.Width,
			Height: img.Height,
			URL:    fmt.Sprintf("/api/output/image?g=%d", gen),
		}
	}
	return o
}

// snapshot must be called with s.mu held.
func (s *Server) snapshot() outputJSON {
	out, ok := s.buf.Current()
	if !ok {
		return outputJSON{Kind: "empty", Generation: s.buf.Generation()}
	}
	return newOutputJSON(out, s.buf.Generation())
}

// columns must be called with s.mu held.
func (s *Server) columns() columnsJSON {
	c := columnsJSON{State: s.sess.State().String(), Columns: s.sess.Columns()}
	if c.Columns == nil {
		c.Columns = []string{}
	}
	if ds, ok := s.sess.Current(); ok {
		c.Dataset = &datasetJSON{ID: ds.ID(), Name: ds.Name(), Rows: ds.Rows(), Cols: ds.Cols()}
	}
	return c
}

func (s *Server) handleIndex(c echo.Context) error {
	return c.HTMLBlob(http.StatusOK, indexHTML)
}

func (s *Server) handleHealth(c echo.Context) error {
	s.mu.Lock()
	state := s.sess.State().String()
	s.mu.Unlock()
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"version": s.opt.Version,
		"session": state,
	})
}

// handleUpload accepts exactly one .csv file in the multipart field "file".
func (s *Server) handleUpload(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return NewBadRequestError("multipart form required", err)
	}
	files := form.File["file"]
	switch {
	case len(files) == 0:
		return NewValidationError("file", "no file provided")
	case len(files) > 1:
		return NewValidationError("file", "upload exactly one file")
	}
	fh := files[0]
	if !utils.HasExtension(fh.Filename, ".csv") {
		return NewValidationError("file", "only .csv files are accepted")
	}
	if fh.Size > s.opt.MaxUploadBytes {
		return NewTooLargeError(s.opt.MaxUploadBytes)
	}
	src, err := fh.Open()
	if err != nil {
		return NewInternalError("failed to open upload", err)
	}
	defer src.Close()
	raw, err := utils.ReadLimited(src, s.opt.MaxUploadBytes)
	if errors.Is(err, utils.ErrTooLarge) {
		return NewTooLargeError(s.opt.MaxUploadBytes)
	}
	if err != nil {
		return NewInternalError("failed to read upload", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.sess.Upload(fh.Filename, raw); err != nil {
		if dataset.IsParseError(err) {
			return NewParseError(err)
		}
		return NewInternalError("upload failed", err)
	}
	return c.JSON(http.StatusOK, uploadJSON{columnsJSON: s.columns(), Output: s.snapshot()})
}

func (s *Server) handleColumns(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(http.StatusOK, s.columns())
}

func (s *Server) handleCommands(c echo.Context) error {
	return c.JSON(http.StatusOK, session.Commands())
}

// handleCommand runs one command. The column comes from the "column" form or
// query value; passing "dataset" pins it to a specific upload.
func (s *Server) handleCommand(c echo.Context) error {
	cmd, err := session.ParseCommand(c.Param("command"))
	if err != nil {
		return NewNotFoundError("command", c.Param("command"))
	}
	column := c.FormValue("column")
	datasetID := c.FormValue("dataset")

	s.mu.Lock()
	defer s.mu.Unlock()
	if datasetID != "" {
		_, err = s.sess.RunRef(cmd, session.ColumnRef{DatasetID: datasetID, Name: column})
	} else {
		_, err = s.sess.Run(cmd, column)
	}
	if err != nil {
		return NewInternalError("render failed", err)
	}
	return c.JSON(http.StatusOK, s.snapshot())
}

func (s *Server) handleOutput(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(http.StatusOK, s.snapshot())
}

func (s *Server) handleOutputImage(c echo.Context) error {
	s.mu.Lock()
	out, ok := s.buf.Current()
	s.mu.Unlock()
	if !ok || out.Image == nil {
		return NewNotFoundError("image", "current output")
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
	return c.Blob(http.StatusOK, "image/png", out.Image.PNG)
}
