package sheet

import (
	"context"
	"testing"

	"cakeOrderManagement/internal/testutil"
)

func TestEnsureIsIdempotent(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "sheet_ensure")
	s := New(d)
	ctx := context.Background()

	headers := []string{"Timestamp", "Name"}
	if err := s.Ensure(ctx, "Contact Form Responses", headers); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	// Second ensure with different headers must not overwrite the first.
	if err := s.Ensure(ctx, "Contact Form Responses", []string{"Other"}); err != nil {
		t.Fatalf("ensure twice: %v", err)
	}

	got, err := s.Headers(ctx, "Contact Form Responses")
	if err != nil {
		t.Fatalf("headers: %v", err)
	}
	if len(got) != 2 || got[0] != "Timestamp" || got[1] != "Name" {
		t.Errorf("headers changed on re-ensure: %v", got)
	}
}

func TestAppendAndRows(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "sheet_append")
	s := New(d)
	ctx := context.Background()

	if err := s.Ensure(ctx, "Form Responses 1", []string{"A", "B"}); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if err := s.Append(ctx, "Form Responses 1", []string{"1", "one"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := s.Append(ctx, "Form Responses 1", []string{"2", "two"}); err != nil {
		t.Fatalf("append: %v", err)
	}

	rows, err := s.Rows(ctx, "Form Responses 1")
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0][1] != "one" || rows[1][1] != "two" {
		t.Errorf("rows out of append order: %v", rows)
	}
}

func TestAppendToMissingSheet(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "sheet_missing")
	s := New(d)
	ctx := context.Background()

	err := s.Append(ctx, "nope", []string{"x"})
	if err != ErrSheetNotFound {
		t.Fatalf("expected ErrSheetNotFound, got %v", err)
	}

	ok, err := s.Exists(ctx, "nope")
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if ok {
		t.Error("sheet should not exist")
	}
}
