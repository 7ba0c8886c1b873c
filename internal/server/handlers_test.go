package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/KaramelBytes/csvexplore-cli/internal/session"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ageScore = "age,score\n30,1.5\n25,\n30,2.0\n"

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return New(Options{Session: session.DefaultOptions(), Version: "test"})
}

type upload struct {
	name string
	body string
}

func multipartBody(t *testing.T, files ...upload) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range files {
		part, err := w.CreateFormFile("file", f.name)
		require.NoError(t, err)
		_, err = part.Write([]byte(f.body))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func doUpload(t *testing.T, s *Server, files ...upload) *httptest.ResponseRecorder {
	t.Helper()
	body, ctype := multipartBody(t, files...)
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set(echo.HeaderContentType, ctype)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func doCommand(t *testing.T, s *Server, command string, form url.Values) outputJSON {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/commands/"+command, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var out outputJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeAPIError(t *testing.T, rec *httptest.ResponseRecorder) APIError {
	t.Helper()
	var apiErr APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	return apiErr
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := get(t, s, "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "test", body["version"])
	assert.Equal(t, "empty", body["session"])
}

func TestIndexPage(t *testing.T) {
	s := newTestServer(t)
	rec := get(t, s, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/html")
	assert.Contains(t, rec.Body.String(), `accept=".csv"`)
}

func TestCommandsBeforeUpload(t *testing.T) {
	s := newTestServer(t)
	for _, info := range session.Commands() {
		out := doCommand(t, s, string(info.Command), url.Values{"column": {"age"}})
		assert.Equal(t, session.NotReadyMessage, out.Message, info.Command)
		assert.Nil(t, out.Table)
		assert.Nil(t, out.Image)
	}
	rec := get(t, s, "/api/columns")
	var cols columnsJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cols))
	assert.Equal(t, "empty", cols.State)
	assert.Empty(t, cols.Columns)
	assert.Nil(t, cols.Dataset)
}

func TestUploadThenExplore(t *testing.T) {
	s := newTestServer(t)
	rec := doUpload(t, s, upload{"people.csv", ageScore})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var up uploadJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &up))
	assert.Equal(t, "loaded", up.State)
	assert.Equal(t, []string{"age", "score"}, up.Columns)
	require.NotNil(t, up.Dataset)
	assert.Equal(t, 3, up.Dataset.Rows)
	assert.Equal(t, "File uploaded successfully!\nDataFrame shape: (3, 2)", up.Output.Message)

	out := doCommand(t, s, "missing", nil)
	require.NotNil(t, out.Table)
	assert.Equal(t, []string{"age", "score"}, out.Table.Index)
	assert.Equal(t, [][]string{{"0"}, {"1"}}, out.Table.Rows)

	out = doCommand(t, s, "value-counts", url.Values{"column": {"age"}})
	require.NotNil(t, out.Table)
	assert.Equal(t, []string{"30", "25"}, out.Table.Index)
	assert.Equal(t, [][]string{{"2"}, {"1"}}, out.Table.Rows)

	out = doCommand(t, s, "dtypes", nil)
	assert.Equal(t, [][]string{{"integer"}, {"float"}}, out.Table.Rows)

	// the last output is what /api/output reports
	rec = get(t, s, "/api/output")
	var current outputJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &current))
	assert.Equal(t, "dtypes", current.Command)
	assert.Equal(t, "table", current.Kind)
}

func TestPlotOutputServesImage(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusOK, doUpload(t, s, upload{"people.csv", ageScore}).Code)

	rec := get(t, s, "/api/output/image")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	out := doCommand(t, s, "histogram", url.Values{"column": {"score"}})
	require.NotNil(t, out.Image)
	assert.Equal(t, "image", out.Kind)
	assert.Equal(t, "Histogram of score", out.Image.Title)

	rec = get(t, s, out.Image.URL)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))

	// a text output replaces the plot
	doCommand(t, s, "head", nil)
	assert.Equal(t, http.StatusNotFound, get(t, s, "/api/output/image").Code)
}

func TestUploadValidation(t *testing.T) {
	tests := []struct {
		name       string
		files      []upload
		wantStatus int
		wantCode   string
	}{
		{"no file", nil, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"two files", []upload{{"a.csv", ageScore}, {"b.csv", ageScore}}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"wrong extension", []upload{{"a.txt", ageScore}}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"header only", []upload{{"a.csv", "age,score\n"}}, http.StatusUnprocessableEntity, "PARSE_ERROR"},
		{"empty", []upload{{"a.csv", ""}}, http.StatusUnprocessableEntity, "PARSE_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			rec := doUpload(t, s, tt.files...)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, decodeAPIError(t, rec).Code)
		})
	}
}

func TestUploadTooLarge(t *testing.T) {
	s := New(Options{Session: session.DefaultOptions(), MaxUploadBytes: 16})
	rec := doUpload(t, s, upload{"people.csv", ageScore})
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "TOO_LARGE", decodeAPIError(t, rec).Code)
}

func TestFailedUploadKeepsDataset(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusOK, doUpload(t, s, upload{"people.csv", ageScore}).Code)

	rec := doUpload(t, s, upload{"broken.csv", "a,b\n\"1,2\n"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var cols columnsJSON
	require.NoError(t, json.Unmarshal(get(t, s, "/api/columns").Body.Bytes(), &cols))
	assert.Equal(t, []string{"age", "score"}, cols.Columns)

	var current outputJSON
	require.NoError(t, json.Unmarshal(get(t, s, "/api/output").Body.Bytes(), &current))
	assert.Equal(t, "error", current.Kind)
	assert.True(t, strings.HasPrefix(current.Error, "Error: "), current.Error)
}

func TestColumnMessages(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusOK, doUpload(t, s, upload{"people.csv", ageScore}).Code)

	out := doCommand(t, s, "boxplot", url.Values{})
	assert.Equal(t, session.SelectColumnMessage, out.Message)

	out = doCommand(t, s, "unique", url.Values{"column": {"Age"}})
	assert.Equal(t, "Column 'Age' not found. Did you mean 'age'?", out.Message)
}

func TestStaleColumnReference(t *testing.T) {
	s := newTestServer(t)
	rec := doUpload(t, s, upload{"first.csv", ageScore})
	var first uploadJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &first))
	require.Equal(t, http.StatusOK, doUpload(t, s, upload{"second.csv", ageScore}).Code)

	out := doCommand(t, s, "value-counts", url.Values{"column": {"age"}, "dataset": {first.Dataset.ID}})
	assert.Equal(t, "Column 'age' belongs to a previous upload. Please select a column again.", out.Message)
	assert.Nil(t, out.Table)
}

func TestUnknownCommand(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/commands/pivot", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decodeAPIError(t, rec).Code)
}

func TestListCommands(t *testing.T) {
	s := newTestServer(t)
	rec := get(t, s, "/api/commands")
	require.Equal(t, http.StatusOK, rec.Code)
	var infos []session.CommandInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &infos))
	assert.Len(t, infos, len(session.Commands()))
	assert.Equal(t, "First Rows", infos[0].Label)
}

func TestErrorHandlerMapsHTTPErrors(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	ErrorHandler(echo.NewHTTPError(http.StatusMethodNotAllowed, "nope"), c)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	apiErr := decodeAPIError(t, rec)
	assert.Equal(t, "HTTP_ERROR", apiErr.Code)
	assert.Equal(t, "nope", apiErr.Message)
}
