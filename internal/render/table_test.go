package render_test

import (
	"reflect"
	"testing"

	"github.com/alnah/go-md2docx/internal/mdparse"
	"github.com/alnah/go-md2docx/internal/render"
)

// ---------------------------------------------------------------------------
// TestColumnWeights - Display width per column
// ---------------------------------------------------------------------------

func TestColumnWeights(t *testing.T) {
	t.Parallel()

	tbl := &mdparse.Table{
		Headers: []string{"ID", "Name"},
		Rows: [][]string{
			{"1", "登录"},
			{"200", "x", "extra cell"},
		},
	}
	got := render.ColumnWeights(tbl)
	want := []int{3, 4, 10}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ColumnWeights = %v, want %v", got, want)
	}
}

func TestColumnWeights_EmptyCellsWeighOne(t *testing.T) {
	t.Parallel()

	got := render.ColumnWeights(&mdparse.Table{Headers: []string{"", ""}})
	if !reflect.DeepEqual(got, []int{1, 1}) {
		t.Errorf("ColumnWeights = %v, want [1 1]", got)
	}
}

// ---------------------------------------------------------------------------
// TestFieldOrder - Requirement row order
// ---------------------------------------------------------------------------

func TestFieldOrder(t *testing.T) {
	t.Parallel()

	rec := &mdparse.RequirementRecord{
		ID: "SRS-001",
		Fields: []mdparse.Field{
			{Key: mdparse.FieldVerification, Label: "Verification", Value: "Test"},
			{Key: mdparse.FieldOther, Label: "Owner", Value: "QA"},
			{Key: mdparse.FieldPriority, Label: "Priority", Value: "P1"},
			{Key: mdparse.FieldRationale, Label: "Rationale", Value: "  "},
			{Key: mdparse.FieldDescription, Label: "Description", Value: "Shall log in"},
			{Key: mdparse.FieldSafetyClass, Label: "Safety Class", Value: "B"},
		},
	}

	var got []string
	for _, f := range render.FieldOrder(rec) {
		got = append(got, f.Label)
	}
	want := []string{"Description", "Priority", "Safety Class", "Owner", "Verification"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FieldOrder = %v, want %v", got, want)
	}
}
