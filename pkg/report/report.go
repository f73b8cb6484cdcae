package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"html/template"
	"path/filepath"
	"time"

	"pathctl/pkg/errors"
	"pathctl/pkg/pathutil"
	"pathctl/pkg/types"
)

// Reporter renders apply results. All output goes through the path layer,
// so the containing directory is created as needed.
type Reporter struct {
	pu *pathutil.PathUtil
}

// ManifestFiles links a manifest to its generated per-manifest reports
type ManifestFiles struct {
	Manifest string
	HTML     string
	CSV      string
}

// NewReporter creates a new Reporter
func NewReporter(pu *pathutil.PathUtil) *Reporter {
	return &Reporter{pu: pu}
}

// write pushes rendered bytes through the path layer. A false create result
// is treated as a hard failure here; the ambiguity belongs to the caller of
// pathutil, and this caller wants the file on disk.
func (r *Reporter) write(filename string, data []byte) error {
	ok, err := r.pu.CreateFile(filename, data)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to create report directory")
	}
	if !ok {
		return errors.FileErrorf("failed to write report file %s", filename)
	}
	return nil
}

// GenerateCSV generates a CSV report of operation results
func (r *Reporter) GenerateCSV(results []types.OpResult, filename string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"Verb", "Path", "Status", "Detail"}); err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to write CSV header")
	}
	for _, res := range results {
		if err := w.Write([]string{res.Verb, res.Path, statusOf(res), res.Detail}); err != nil {
			return errors.Wrap(err, errors.ErrorTypeFile, "failed to write CSV row")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to flush CSV")
	}

	return r.write(filename, buf.Bytes())
}

// GenerateJSON generates a JSON report of operation results
func (r *Reporter) GenerateJSON(results []types.OpResult, filename string) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to marshal JSON")
	}
	return r.write(filename, data)
}

// GenerateHTML generates an HTML report for a single manifest
func (r *Reporter) GenerateHTML(results []types.OpResult, filename string) error {
	const tmpl = `
<html>
<head>
  <meta charset="utf-8">
  <title>pathctl Report</title>
  <style>
    body { margin: 16px; font-family: system-ui, -apple-system, Segoe UI, Roboto, Arial, sans-serif; color: #111827; }
    h1 { margin: 0 0 8px 0; font-size: 20px; }
    .meta { color: #6b7280; font-size: 12px; margin-bottom: 12px; }
    table { border-collapse: collapse; width: 100%; border: 1px solid #d1d5db; }
    thead th { background: #f3f4f6; border-bottom: 1px solid #d1d5db; padding: 10px; text-align: left; font-size: 13px; }
    tbody td { border-bottom: 1px solid #d1d5db; padding: 10px; vertical-align: top; }
    tbody tr:nth-child(odd) { background: #fafafa; }
    .st { display: inline-block; padding: 2px 8px; border-radius: 999px; font-weight: 600; font-size: 12px; }
    .st.ok { color: #fff; background: #22c55e; }
    .st.failed { color: #fff; background: #ef4444; }
    .mono { font-family: ui-monospace, SFMono-Regular, Menlo, Consolas, monospace; white-space: pre-wrap; word-break: break-word; }
  </style>
</head>
<body>
  <h1>pathctl Report</h1>
  <div class="meta">Generated at {{.Now}}</div>
  <table>
    <thead>
      <tr>
        <th style="width:100px">Status</th>
        <th style="width:100px">Op</th>
        <th style="width:360px">Path</th>
        <th>Detail</th>
      </tr>
    </thead>
    <tbody>
      {{range .Rows}}
      <tr>
        <td><span class="st {{.Status}}">{{.Status}}</span></td>
        <td class="mono">{{.Verb}}</td>
        <td class="mono">{{.Path}}</td>
        <td class="mono">{{.Detail}}</td>
      </tr>
      {{end}}
    </tbody>
  </table>
</body>
</html>`

	type row struct {
		Status string
		Verb   string
		Path   string
		Detail string
	}
	rows := make([]row, 0, len(results))
	for _, res := range results {
		rows = append(rows, row{Status: statusOf(res), Verb: res.Verb, Path: res.Path, Detail: res.Detail})
	}

	data := struct {
		Rows []row
		Now  string
	}{
		Rows: rows,
		Now:  time.Now().Format(time.RFC3339),
	}

	var buf bytes.Buffer
	t := template.Must(template.New("table").Parse(tmpl))
	if err := t.Execute(&buf, data); err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to render HTML")
	}
	return r.write(filename, buf.Bytes())
}

// WriteAggregatedHTML writes the combined page linking all manifest reports
func (r *Reporter) WriteAggregatedHTML(dir string, agg []types.AggOp, manifests []ManifestFiles) error {
	const tmpl = `
<html>
<head>
  <meta charset="utf-8">
  <title>pathctl Aggregated Report</title>
  <style>
    body { margin: 16px; font-family: system-ui, -apple-system, Segoe UI, Roboto, Arial, sans-serif; color: #111827; }
    h1 { margin: 0 0 8px 0; font-size: 20px; }
    h2 { margin: 16px 0 8px 0; font-size: 16px; }
    .meta { color: #6b7280; font-size: 12px; margin-bottom: 12px; }
    table { border-collapse: collapse; width: 100%; border: 1px solid #d1d5db; margin-bottom: 16px; }
    thead th { background: #f3f4f6; border-bottom: 1px solid #d1d5db; padding: 8px; text-align: left; font-size: 13px; }
    tbody td { border-bottom: 1px solid #d1d5db; padding: 8px; vertical-align: top; }
    .st { display: inline-block; padding: 2px 8px; border-radius: 999px; font-weight: 600; font-size: 12px; }
    .st.ok { color: #fff; background: #22c55e; }
    .st.failed { color: #fff; background: #ef4444; }
    .mono { font-family: ui-monospace, SFMono-Regular, Menlo, Consolas, monospace; white-space: pre-wrap; word-break: break-word; }
  </style>
</head>
<body>
  <h1>pathctl Aggregated Report</h1>
  <div class="meta">Generated at {{.Now}}</div>
  <h2>Manifests</h2>
  <table>
    <thead><tr><th>Manifest</th><th>Reports</th></tr></thead>
    <tbody>
      {{range .Manifests}}
      <tr>
        <td class="mono">{{.Manifest}}</td>
        <td>{{if .HTML}}<a href="{{.HTML}}">html</a>{{end}} {{if .CSV}}<a href="{{.CSV}}">csv</a>{{end}}</td>
      </tr>
      {{end}}
    </tbody>
  </table>
  <h2>All operations</h2>
  <table>
    <thead>
      <tr><th>Manifest</th><th>Status</th><th>Op</th><th>Path</th><th>Detail</th></tr>
    </thead>
    <tbody>
      {{range .Agg}}
      <tr>
        <td class="mono">{{.Manifest}}</td>
        <td><span class="st {{.Status}}">{{.Status}}</span></td>
        <td class="mono">{{.Verb}}</td>
        <td class="mono">{{.Path}}</td>
        <td class="mono">{{.Detail}}</td>
      </tr>
      {{end}}
    </tbody>
  </table>
</body>
</html>`

	data := struct {
		Agg       []types.AggOp
		Manifests []ManifestFiles
		Now       string
	}{
		Agg:       agg,
		Manifests: manifests,
		Now:       time.Now().Format(time.RFC3339),
	}

	var buf bytes.Buffer
	t := template.Must(template.New("agg").Parse(tmpl))
	if err := t.Execute(&buf, data); err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to render aggregated HTML")
	}
	return r.write(filepath.Join(dir, "index.html"), buf.Bytes())
}

func statusOf(res types.OpResult) string {
	if res.OK {
		return "ok"
	}
	return "failed"
}
