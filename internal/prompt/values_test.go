package prompt

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type fakeDriver struct {
	confirm  bool
	answers  map[string]string
	failOn   string
	asked    []string
	helps    []string
	messages []string

	confirmDefault bool
}

func (f *fakeDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	f.asked = append(f.asked, cfg.Message)
	f.helps = append(f.helps, cfg.Help)
	if cfg.Message == f.failOn {
		return "", ErrAborted
	}
	return f.answers[cfg.Message], nil
}

func (f *fakeDriver) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	f.confirmDefault = cfg.Default
	return f.confirm, nil
}

func (f *fakeDriver) Info(ctx context.Context, msg string) error {
	f.messages = append(f.messages, msg)
	return nil
}

func TestAskValues(t *testing.T) {
	d := &fakeDriver{
		confirm: true,
		answers: map[string]string{"#{name}": "Alice", "#{email}": "a&b@example.com"},
	}

	got, err := AskValues(context.Background(), d, []string{"name", "role", "email"})
	if err != nil {
		t.Fatalf("ask values: %v", err)
	}

	want := []Value{{Key: "name", Value: "Alice"}, {Key: "email", Value: "a&b@example.com"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"#{name}", "#{role}", "#{email}"}, d.asked); diff != "" {
		t.Fatalf("prompt order mismatch (-want +got):\n%s", diff)
	}
	if len(d.messages) != 1 {
		t.Fatalf("expected one info line, got %v", d.messages)
	}
	if !d.confirmDefault {
		t.Fatal("confirmation should default to yes")
	}
	for _, help := range d.helps {
		if help == "" {
			t.Fatal("every input prompt should carry help text")
		}
	}
}

func TestAskValues_Declined(t *testing.T) {
	d := &fakeDriver{confirm: false}
	got, err := AskValues(context.Background(), d, []string{"name"})
	if err != nil || got != nil {
		t.Fatalf("expected no values, got %v, %v", got, err)
	}
	if len(d.asked) != 0 {
		t.Fatalf("expected no input prompts, got %v", d.asked)
	}
}

func TestAskValues_Aborted(t *testing.T) {
	d := &fakeDriver{confirm: true, failOn: "#{name}"}
	if _, err := AskValues(context.Background(), d, []string{"name"}); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestAppendQuery(t *testing.T) {
	values := []Value{{Key: "email", Value: "a&b@example.com"}, {Key: "full name", Value: "Ann Lee"}}

	if got := AppendQuery("?name=Alice", values); got != "name=Alice&email=a%26b%40example.com&full+name=Ann+Lee" {
		t.Fatalf("unexpected query %q", got)
	}
	if got := AppendQuery("", values[:1]); got != "email=a%26b%40example.com" {
		t.Fatalf("unexpected query %q", got)
	}
}
