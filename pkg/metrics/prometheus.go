package metrics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"pathctl/pkg/types"
)

// PrometheusExporter handles Prometheus metrics export
type PrometheusExporter struct{}

// NewPrometheusExporter creates a new Prometheus exporter
func NewPrometheusExporter() *PrometheusExporter {
	return &PrometheusExporter{}
}

// ExportMetrics generates Prometheus format metrics from apply results
func (p *PrometheusExporter) ExportMetrics(results []types.AggOp, failedManifests []string) string {
	var metrics strings.Builder

	timestamp := time.Now().Unix()

	// Count operations by verb and status
	type key struct{ verb, status string }
	counts := make(map[key]int)
	manifests := make(map[string]bool)
	for _, res := range results {
		counts[key{res.Verb, res.Status}]++
		manifests[res.Manifest] = true
	}

	keys := make([]key, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].verb != keys[j].verb {
			return keys[i].verb < keys[j].verb
		}
		return keys[i].status < keys[j].status
	})

	metrics.WriteString("# HELP pathctl_op_total Total number of applied operations by verb and status\n")
	metrics.WriteString("# TYPE pathctl_op_total counter\n")
	for _, k := range keys {
		metrics.WriteString(fmt.Sprintf("pathctl_op_total{verb=\"%s\",status=\"%s\"} %d %d\n",
			escapeLabel(k.verb), escapeLabel(k.status), counts[k], timestamp))
	}

	// Manifest health status
	metrics.WriteString("\n# HELP pathctl_manifest_ok Manifest apply status (1=applied, 0=failed)\n")
	metrics.WriteString("# TYPE pathctl_manifest_ok gauge\n")

	failed := make(map[string]bool, len(failedManifests))
	for _, f := range failedManifests {
		failed[f] = true
	}
	names := make([]string, 0, len(manifests)+len(failedManifests))
	for m := range manifests {
		if !failed[m] {
			names = append(names, m)
		}
	}
	sort.Strings(names)
	for _, m := range names {
		metrics.WriteString(fmt.Sprintf("pathctl_manifest_ok{manifest=\"%s\"} 1 %d\n",
			escapeLabel(m), timestamp))
	}
	for _, m := range failedManifests {
		metrics.WriteString(fmt.Sprintf("pathctl_manifest_ok{manifest=\"%s\"} 0 %d\n",
			escapeLabel(m), timestamp))
	}

	// Totals
	metrics.WriteString("\n# HELP pathctl_manifests_total Total number of manifests processed\n")
	metrics.WriteString("# TYPE pathctl_manifests_total gauge\n")
	metrics.WriteString(fmt.Sprintf("pathctl_manifests_total %d %d\n",
		len(names)+len(failedManifests), timestamp))

	metrics.WriteString("\n# HELP pathctl_manifests_failed_total Total number of failed manifests\n")
	metrics.WriteString("# TYPE pathctl_manifests_failed_total gauge\n")
	metrics.WriteString(fmt.Sprintf("pathctl_manifests_failed_total %d %d\n",
		len(failedManifests), timestamp))

	return metrics.String()
}

// escapeLabel escapes Prometheus label values
func escapeLabel(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
