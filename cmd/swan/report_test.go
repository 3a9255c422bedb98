package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"swan/internal/dashboard"
	"swan/internal/model"
	"swan/internal/store"
)

func testReport() reportDoc {
	ds := store.NewDataset("test.csv", "csv", model.RequiredColumns, []model.Record{
		{Department: "X", Service: "A", Price: "100", QtyCash: 3, QtyIns: 5},
		{Department: "Y", Service: "B", Price: "NA", QtyCash: 0, QtyIns: 2},
	})
	return reportDoc{
		Title:  "Swan",
		Source: ds.Source,
		View:   dashboard.Recompute(ds, model.Selection{}, dashboard.Options{}),
	}
}

func TestWriteReport_Text(t *testing.T) {
	var buf bytes.Buffer
	if err := writeReport(&buf, "text", testReport()); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Insurance visitors: 7", "Cash visitors:      3", " 1. A | X | 100 ريال", "total 8"} {
		if !strings.Contains(out, want) {
			t.Fatalf("text report missing %q:\n%s", want, out)
		}
	}
}

func TestWriteReport_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := writeReport(&buf, "json", testReport()); err != nil {
		t.Fatalf("write: %v", err)
	}
	var doc struct {
		Title   string            `json:"title"`
		Metrics dashboard.Metrics `json:"metrics"`
		Rows    []dashboard.Row   `json:"rows"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc.Title != "Swan" || doc.Metrics.InsuranceVisitors != 7 || len(doc.Rows) != 2 {
		t.Fatalf("unexpected doc: %+v", doc)
	}
}

func TestWriteReport_YAML(t *testing.T) {
	var buf bytes.Buffer
	if err := writeReport(&buf, "yaml", testReport()); err != nil {
		t.Fatalf("write: %v", err)
	}
	var doc map[string]interface{}
	if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, buf.String())
	}
	metrics, ok := doc["metrics"].(map[string]interface{})
	if !ok || metrics["insurance_visitors"] != 7 {
		t.Fatalf("unexpected metrics: %#v", doc["metrics"])
	}
	if _, ok := doc["rows"]; !ok {
		t.Fatalf("rows missing:\n%s", buf.String())
	}
}

func TestWriteReport_UnknownFormat(t *testing.T) {
	if err := writeReport(&bytes.Buffer{}, "xml", testReport()); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}
