package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/nao1215/seoaudit/internal/model"
)

// mockStep is a test helper that implements the Step interface.
type mockStep struct {
	name      string
	doFunc    func(ctx context.Context, run *Run) error
	callCount int
}

// Do implements Step.Do.
func (m *mockStep) Do(ctx context.Context, run *Run) error {
	m.callCount++
	if m.doFunc != nil {
		return m.doFunc(ctx, run)
	}
	return nil
}

// Name implements Step.Name.
func (m *mockStep) Name() string {
	return m.name
}

// TestPipelineAddStep tests adding steps to the pipeline.
func TestPipelineAddStep(t *testing.T) {
	t.Parallel()

	t.Run("creates empty pipeline", func(t *testing.T) {
		t.Parallel()

		p := New()
		if n := len(p.StepNames()); n != 0 {
			t.Errorf("expected 0 steps, got %d", n)
		}
	})

	t.Run("adds multiple steps with AddSteps", func(t *testing.T) {
		t.Parallel()

		p := New()
		p.AddSteps(&mockStep{name: "step-1"}, &mockStep{name: "step-2"}, &mockStep{name: "step-3"})

		if n := len(p.StepNames()); n != 3 {
			t.Errorf("expected 3 steps, got %d", n)
		}
	})

	t.Run("maintains step order", func(t *testing.T) {
		t.Parallel()

		p := New()
		p.AddStep(&mockStep{name: "first"})
		p.AddStep(&mockStep{name: "second"})
		p.AddStep(&mockStep{name: "third"})

		expected := []string{"first", "second", "third"}
		for i, name := range p.StepNames() {
			if name != expected[i] {
				t.Errorf("step %d: got %q, expected %q", i, name, expected[i])
			}
		}
	})
}

// TestPipelineExecute tests pipeline execution.
func TestPipelineExecute(t *testing.T) {
	t.Parallel()

	t.Run("executes all steps in order", func(t *testing.T) {
		t.Parallel()

		executionOrder := make([]string, 0)
		record := func(name string) func(context.Context, *Run) error {
			return func(_ context.Context, _ *Run) error {
				executionOrder = append(executionOrder, name)
				return nil
			}
		}

		p := New()
		p.AddStep(&mockStep{name: "step-1", doFunc: record("step-1")})
		p.AddStep(&mockStep{name: "step-2", doFunc: record("step-2")})

		run := NewRun("https://example.com", "")
		if err := p.Execute(context.Background(), run); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(executionOrder) != 2 || executionOrder[0] != "step-1" || executionOrder[1] != "step-2" {
			t.Errorf("wrong execution order: %v", executionOrder)
		}
		if len(run.Steps) != 2 {
			t.Errorf("expected 2 completed steps, got %v", run.Steps)
		}
	})

	t.Run("stops on first error", func(t *testing.T) {
		t.Parallel()

		expectedErr := errors.New("step failed")
		second := &mockStep{name: "should-not-run"}

		p := New()
		p.AddStep(&mockStep{
			name: "failing-step",
			doFunc: func(_ context.Context, _ *Run) error {
				return expectedErr
			},
		})
		p.AddStep(second)

		err := p.Execute(context.Background(), NewRun("https://example.com", ""))
		if !errors.Is(err, expectedErr) {
			t.Errorf("expected error %v, got %v", expectedErr, err)
		}
		if second.callCount != 0 {
			t.Error("second step should not have been called")
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		step := &mockStep{name: "should-not-run"}
		p := New()
		p.AddStep(step)

		err := p.Execute(ctx, NewRun("https://example.com", ""))
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if step.callCount != 0 {
			t.Error("step should not have been called")
		}
	})
}

// TestPipelineAudit tests conversion of execution results into reports.
func TestPipelineAudit(t *testing.T) {
	t.Parallel()

	t.Run("failed step yields failed report", func(t *testing.T) {
		t.Parallel()

		p := New()
		p.AddStep(&mockStep{
			name: "fetch",
			doFunc: func(_ context.Context, run *Run) error {
				run.Categories = append(run.Categories, model.NewCategoryResult(model.CategoryLinks, 80, nil))
				return ErrEmptyContent
			},
		})

		report := p.Audit(context.Background(), NewRun("https://example.com", ""))
		if report.Status != model.ReportFailed {
			t.Fatalf("expected failed report, got %s", report.Status)
		}
		if report.ErrorKind != string(KindEmptyContent) {
			t.Errorf("expected kind %s, got %s", KindEmptyContent, report.ErrorKind)
		}
		if report.ErrorMessage != MsgEmptyContent {
			t.Errorf("unexpected message %q", report.ErrorMessage)
		}
		if len(report.Categories) != 0 {
			t.Errorf("expected no partial categories, got %d", len(report.Categories))
		}
	})

	t.Run("successful run completes report", func(t *testing.T) {
		t.Parallel()

		p := New()
		p.AddStep(&mockStep{
			name: "analyze",
			doFunc: func(_ context.Context, run *Run) error {
				run.Categories = append(run.Categories,
					model.NewCategoryResult(model.CategoryLinks, 80, nil),
					model.NewCategoryResult(model.CategoryImages, 61, nil),
				)
				return nil
			},
		})

		report := p.Audit(context.Background(), NewRun("https://example.com", ""))
		if report.Status != model.ReportCompleted {
			t.Fatalf("expected completed report, got %s", report.Status)
		}
		if report.OverallScore != 71 {
			t.Errorf("expected overall 71, got %d", report.OverallScore)
		}
	})
}
