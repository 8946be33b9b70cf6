package prompt

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-modelform/pkg/field"
	"github.com/goliatone/go-modelform/pkg/form"
	"github.com/goliatone/go-modelform/pkg/schema"
	"github.com/goliatone/go-modelform/pkg/validate"
	"github.com/goliatone/go-modelform/pkg/widgets"
)

// fakeDriver answers prompts by message. Text prompts consume answers until
// one passes the validator, as a terminal would re-ask.
type fakeDriver struct {
	text     map[string][]string
	confirm  map[string]bool
	choice   map[string][]int
	asked    []string
	rejected map[string][]string
	err      error
}

func (d *fakeDriver) answer(cfg InputConfig) (string, error) {
	d.asked = append(d.asked, cfg.Message)
	if d.err != nil {
		return "", d.err
	}
	for _, candidate := range d.text[cfg.Message] {
		if cfg.Validator == nil {
			return candidate, nil
		}
		if err := cfg.Validator(candidate); err != nil {
			d.rejected[cfg.Message] = append(d.rejected[cfg.Message], err.Error())
			continue
		}
		return candidate, nil
	}
	return "", nil
}

func (d *fakeDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	return d.answer(cfg)
}

func (d *fakeDriver) Password(_ context.Context, cfg InputConfig) (string, error) {
	return d.answer(cfg)
}

func (d *fakeDriver) TextArea(_ context.Context, cfg TextAreaConfig) (string, error) {
	return d.answer(InputConfig{Message: cfg.Message})
}

func (d *fakeDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	d.asked = append(d.asked, cfg.Message)
	return d.confirm[cfg.Message], d.err
}

func (d *fakeDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	d.asked = append(d.asked, cfg.Message)
	picked := d.choice[cfg.Message]
	if len(picked) == 0 {
		return -1, d.err
	}
	return picked[0], d.err
}

func (d *fakeDriver) MultiSelect(_ context.Context, cfg SelectConfig) ([]int, error) {
	d.asked = append(d.asked, cfg.Message)
	return d.choice[cfg.Message], d.err
}

func (d *fakeDriver) Info(context.Context, string) error { return nil }

func signupForm(t *testing.T) *form.Form {
	t.Helper()
	s := schema.Schema{
		Name: "signup",
		Properties: []schema.Property{
			{Path: "name", Type: "String", Required: true},
			{Path: "bio", Type: "String", Widget: "textarea"},
			{Path: "age", Type: "Number", Rules: []validate.Rule{{Kind: validate.RuleMin, Params: map[string]string{"value": "18"}}}},
			{Path: "newsletter", Type: "Boolean"},
			{Path: "role", Type: "String", Choices: []widgets.Choice{{Value: "admin", Label: "Admin"}, {Value: "member", Label: "Member"}}},
			{Path: "tags", Type: "Array", ItemType: "String", Choices: []widgets.Choice{{Value: "a"}, {Value: "b"}}},
			{Path: "avatar", Type: "File"},
			{Path: "token", Type: "hidden"},
		},
		Fields: []schema.Property{
			{Path: "secret", Type: "password"},
		},
	}
	f, err := form.New(s, form.WithLogger(form.NopLogger()))
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	return f
}

func TestCollect(t *testing.T) {
	f := signupForm(t)
	d := &fakeDriver{
		text: map[string][]string{
			"Name":   {"", "Ada"},
			"Bio":    {"Hello"},
			"Age":    {"12", "36"},
			"Secret": {"hunter2"},
		},
		confirm:  map[string]bool{"Newsletter": true},
		choice:   map[string][]int{"Role": {0}, "Tags": {1}},
		rejected: map[string][]string{},
	}

	got, err := Collect(context.Background(), f, d)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	want := form.Data{
		"name":       "Ada",
		"bio":        "Hello",
		"age":        "36",
		"newsletter": "on",
		"role":       "admin",
		"tags":       []string{"b"},
		"secret":     "hunter2",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}

	wantAsked := []string{"Name", "Bio", "Age", "Newsletter", "Role", "Tags", "Secret"}
	if diff := cmp.Diff(wantAsked, d.asked); diff != "" {
		t.Fatalf("prompt order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{field.RequiredMessage}, d.rejected["Name"]); diff != "" {
		t.Fatalf("name rejections mismatch (-want +got):\n%s", diff)
	}
	if len(d.rejected["Age"]) != 1 {
		t.Fatalf("expected one rejected age answer, got %v", d.rejected["Age"])
	}

	bound := f.Bind(got)
	if err := bound.Validate(context.Background()); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !bound.IsValid() {
		t.Fatalf("expected collected data to validate, errors: %v", bound.Errors())
	}
}

func TestCollect_SkipsEmptyAnswers(t *testing.T) {
	f := signupForm(t)
	d := &fakeDriver{
		text:     map[string][]string{"Name": {"Ada"}},
		rejected: map[string][]string{},
	}

	got, err := Collect(context.Background(), f, d)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if diff := cmp.Diff(form.Data{"name": "Ada"}, got); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
}

func TestCollect_Aborted(t *testing.T) {
	d := &fakeDriver{err: ErrAborted, rejected: map[string][]string{}}

	_, err := Collect(context.Background(), signupForm(t), d)
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestCollect_RequiresFormAndDriver(t *testing.T) {
	if _, err := Collect(context.Background(), nil, &fakeDriver{}); err == nil {
		t.Fatalf("expected error for nil form")
	}
	if _, err := Collect(context.Background(), signupForm(t), nil); err == nil {
		t.Fatalf("expected error for nil driver")
	}
}

func TestSelectionHelpers(t *testing.T) {
	options := []string{"a", "b", "c"}
	if got := indexOf(options, "c"); got != 2 {
		t.Fatalf("indexOf = %d", got)
	}
	if got := indexOf(options, "z"); got != -1 {
		t.Fatalf("indexOf missing = %d", got)
	}
	if diff := cmp.Diff([]int{0, 2}, indicesOf(options, []string{"c", "a"})); diff != "" {
		t.Fatalf("indicesOf mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"b"}, defaultsFromIndices(options, []int{1, 7})); diff != "" {
		t.Fatalf("defaultsFromIndices mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Admin", "b"}, labels([]widgets.Choice{{Value: "a", Label: "Admin"}, {Value: "b"}})); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
}
