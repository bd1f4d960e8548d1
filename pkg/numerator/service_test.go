package numerator

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
)

// Mock objects
type mockRow struct {
	val int64
	err error
}

func (m *mockRow) Scan(dest ...any) error {
	if m.err != nil {
		return m.err
	}
	if len(dest) > 0 {
		if ptr, ok := dest[0].(*int64); ok {
			*ptr = m.val
		}
	}
	return nil
}

type mockQuerier struct {
	mu           sync.Mutex
	currentValue int64
	lastKey      string
	calls        int
}

func (m *mockQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	var increment int64 = 1
	if len(args) == 2 {
		if val, ok := args[1].(int64); ok {
			increment = val
		}
	}
	if len(args) > 0 {
		if key, ok := args[0].(string); ok {
			m.lastKey = key
		}
	}

	m.currentValue += increment
	return &mockRow{val: m.currentValue}
}

func year() string {
	return time.Now().Format("2006")
}

func TestGetNextNumber_Strict(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	ctx := context.Background()
	cfg := DefaultConfig("ORC")

	num, err := svc.GetNextNumber(ctx, cfg, nil, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := fmt.Sprintf("ORC-%s-00001", year()); num != want {
		t.Errorf("expected %s, got %s", want, num)
	}

	num, err = svc.GetNextNumber(ctx, cfg, nil, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := fmt.Sprintf("ORC-%s-00002", year()); num != want {
		t.Errorf("expected %s, got %s", want, num)
	}
}

func TestGetNextNumber_ScopeSegregatesSequences(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	ctx := context.Background()

	cfgA := ConfigFor("ORC", "empresa-a")
	if _, err := svc.GetNextNumber(ctx, cfgA, nil, time.Now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	keyA := q.lastKey

	cfgB := ConfigFor("ORC", "empresa-b")
	if _, err := svc.GetNextNumber(ctx, cfgB, nil, time.Now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	keyB := q.lastKey

	if keyA == keyB {
		t.Errorf("expected distinct sequence keys per empresa, both were %s", keyA)
	}
}

func TestGetNextNumber_Cached(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	ctx := context.Background()
	cfg := DefaultConfig("VEN")

	opts := &Options{
		Strategy:  StrategyCached,
		RangeSize: 10,
	}

	// First call allocates the range 1..10 (DB bumps to 10), returns 1.
	num, err := svc.GetNextNumber(ctx, cfg, opts, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := fmt.Sprintf("VEN-%s-00001", year()); num != want {
		t.Errorf("expected %s, got %s", want, num)
	}
	if q.currentValue != 10 {
		t.Errorf("expected DB value to be 10, got %d", q.currentValue)
	}

	// Second call is served from memory.
	num, err = svc.GetNextNumber(ctx, cfg, opts, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := fmt.Sprintf("VEN-%s-00002", year()); num != want {
		t.Errorf("expected %s, got %s", want, num)
	}
	if q.currentValue != 10 {
		t.Errorf("expected DB value to stay 10, got %d", q.currentValue)
	}

	// Exhaust the range; the next call reserves 11..20.
	for i := 0; i < 8; i++ {
		_, _ = svc.GetNextNumber(ctx, cfg, opts, time.Now())
	}

	num, err = svc.GetNextNumber(ctx, cfg, opts, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := fmt.Sprintf("VEN-%s-00011", year()); num != want {
		t.Errorf("expected %s, got %s", want, num)
	}
	if q.currentValue != 20 {
		t.Errorf("expected DB value to be 20, got %d", q.currentValue)
	}
}

func TestParseNumber(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"ORC-2026-00042", 42},
		{"OS-00007", 7},
		{"garbage", -1},
	}
	for _, c := range cases {
		if got := ParseNumber(c.in); got != c.want {
			t.Errorf("ParseNumber(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}
