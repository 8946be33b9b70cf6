package widgets

import (
	"strings"
	"testing"
)

var letterChoices = []Choice{
	{Value: "a", Label: "Label A"},
	{Value: "b", Label: "Label B"},
}

func TestRender_TextInputFiltersAttributes(t *testing.T) {
	w := MustNew(KindText, Options{
		Attrs: map[string]string{
			"placeholder": "Your name",
			"onClick":     "alert(1)",
			"_maxlength":  "20",
			"data-role":   "name",
			"id":          "evil",
		},
	})

	got := w.Render(Input{Name: "name", Classes: []string{"field", "required"}, Value: `a"b`})
	want := `<input type="text" name="name" id="id_name" class="field required" value="a&quot;b" data-role="name" maxlength="20" placeholder="Your name" />`
	if got != want {
		t.Fatalf("render mismatch\nwant: %s\n got: %s", want, got)
	}
	if strings.Contains(strings.ToLower(got), "onclick") {
		t.Fatalf("non-whitelisted attribute leaked: %s", got)
	}
}

func TestRender_InputKinds(t *testing.T) {
	cases := []struct {
		kind Kind
		want string
	}{
		{KindEmail, `<input type="email" name="f" id="id_f" value="v" />`},
		{KindNumber, `<input type="number" name="f" id="id_f" value="v" />`},
		{KindHidden, `<input type="hidden" name="f" id="id_f" value="v" />`},
		{KindDatetimeLocal, `<input type="datetime-local" name="f" id="id_f" value="v" />`},
		{KindPassword, `<input type="password" name="f" id="id_f" />`},
		{KindFile, `<input type="file" name="f" id="id_f" />`},
	}
	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			got := MustNew(tc.kind, Options{}).Render(Input{Name: "f", Value: "v"})
			if got != tc.want {
				t.Fatalf("render mismatch\nwant: %s\n got: %s", tc.want, got)
			}
		})
	}
}

func TestRender_Checkbox(t *testing.T) {
	w := MustNew(KindCheckbox, Options{Classes: []string{"toggle"}})

	checked := w.Render(Input{Name: "agree", Classes: []string{"field"}, Checked: true})
	if want := `<input type="checkbox" name="agree" id="id_agree" class="field toggle" checked="checked" />`; checked != want {
		t.Fatalf("checked mismatch\nwant: %s\n got: %s", want, checked)
	}
	unchecked := w.Render(Input{Name: "agree"})
	if strings.Contains(unchecked, "checked") {
		t.Fatalf("expected unchecked checkbox, got %s", unchecked)
	}
}

func TestRender_SelectMarksBoundChoice(t *testing.T) {
	w := MustNew(KindSelect, Options{Choices: letterChoices})

	got := w.Render(Input{Name: "letter", Value: "a"})
	want := `<select name="letter" id="id_letter"><option value="a" selected="selected">Label A</option><option value="b">Label B</option></select>`
	if got != want {
		t.Fatalf("render mismatch\nwant: %s\n got: %s", want, got)
	}
}

func TestRender_MultipleSelect(t *testing.T) {
	w := MustNew(KindMultipleSelect, Options{Choices: letterChoices})

	got := w.Render(Input{Name: "letters", Values: []string{"a", "b"}})
	if !strings.HasPrefix(got, `<select multiple="multiple" name="letters"`) {
		t.Fatalf("expected multiple select, got %s", got)
	}
	if strings.Count(got, `selected="selected"`) != 2 {
		t.Fatalf("expected both options selected, got %s", got)
	}
}

func TestRender_RadioGroupMarksOnlyBoundChoice(t *testing.T) {
	w := MustNew(KindMultipleRadio, Options{Choices: letterChoices})

	got := w.Render(Input{Name: "letter", Value: "a"})
	want := `<input type="radio" name="letter" id="id_letter_a" value="a" checked="checked"><label for="id_letter_a">Label A</label>` +
		`<input type="radio" name="letter" id="id_letter_b" value="b"><label for="id_letter_b">Label B</label>`
	if got != want {
		t.Fatalf("render mismatch\nwant: %s\n got: %s", want, got)
	}
}

func TestRender_CheckboxGroupMultipleValues(t *testing.T) {
	w := MustNew(KindMultipleCheckbox, Options{Choices: letterChoices})

	got := w.Render(Input{Name: "letters", Values: []string{"b"}})
	if strings.Count(got, `checked="checked"`) != 1 || !strings.Contains(got, `value="b" checked="checked"`) {
		t.Fatalf("expected only b checked, got %s", got)
	}
}

func TestRender_TextareaEscapesContent(t *testing.T) {
	w := MustNew(KindTextarea, Options{Rows: 4, Cols: 40})

	got := w.Render(Input{Name: "bio", Value: "</textarea><script>"})
	want := `<textarea name="bio" id="id_bio" rows="4" cols="40">&lt;/textarea&gt;&lt;script&gt;</textarea>`
	if got != want {
		t.Fatalf("render mismatch\nwant: %s\n got: %s", want, got)
	}
}

func TestRender_Captcha(t *testing.T) {
	w := MustNew(KindCaptcha, Options{SiteKey: "site-key", Attrs: map[string]string{"data-theme": "dark"}})

	got := w.Render(Input{Name: "captcha"})
	if !strings.HasPrefix(got, `<div id="id_captcha" data-theme="dark">`) {
		t.Fatalf("unexpected captcha container: %s", got)
	}
	if !strings.Contains(got, "challenge?k=site-key") || !strings.Contains(got, "<noscript>") {
		t.Fatalf("expected challenge script and noscript fallback: %s", got)
	}
}

func TestNew_UnknownKind(t *testing.T) {
	if _, err := New(Kind("marquee"), Options{}); err == nil {
		t.Fatalf("expected unknown widget kind error")
	}
}

func TestAllowedAttr(t *testing.T) {
	allowed := []string{"placeholder", "_pattern", "data-id", "aria-label", "MaxLength"}
	for _, name := range allowed {
		if !AllowedAttr(name) {
			t.Errorf("expected %q to be allowed", name)
		}
	}
	denied := []string{"onClick", "onload", "id", "class", "classes", "href", "data-", ""}
	for _, name := range denied {
		if AllowedAttr(name) {
			t.Errorf("expected %q to be denied", name)
		}
	}
}
