package store

import (
	"reflect"
	"testing"

	"swan/internal/model"
)

func TestDataset_OptionsAndImmutability(t *testing.T) {
	t.Parallel()

	records := []model.Record{
		{Department: "Radiology", Physician: "Dr. Sara"},
		{Department: "Lab", Physician: "Dr. Ali"},
		{Department: "", Physician: ""},
		{Department: "Radiology", Physician: "Dr. Omar"},
	}
	columns := []string{"Department", "Physician"}
	ds := NewDataset("services.xlsx", "xlsx", columns, records)

	if ds.ID == "" {
		t.Fatalf("dataset id missing")
	}
	if got := ds.Departments(); !reflect.DeepEqual(got, []string{"Radiology", "Lab"}) {
		t.Fatalf("departments=%v", got)
	}
	if got := ds.Physicians(); !reflect.DeepEqual(got, []string{"Dr. Ali", "Dr. Omar", "Dr. Sara"}) {
		t.Fatalf("physicians=%v", got)
	}

	records[0].Department = "changed"
	columns[0] = "changed"
	if ds.Records()[0].Department != "Radiology" || ds.Columns[0] != "Department" {
		t.Fatalf("dataset shares caller memory")
	}
	if ds.Count() != 4 {
		t.Fatalf("count=%d", ds.Count())
	}
}

func TestNew_MissingFile(t *testing.T) {
	t.Parallel()

	if _, err := New(t.TempDir() + "/missing.db"); err == nil {
		t.Fatalf("expected error for missing database")
	}
}
