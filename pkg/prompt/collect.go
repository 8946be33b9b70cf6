package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-modelform/pkg/field"
	"github.com/goliatone/go-modelform/pkg/form"
	"github.com/goliatone/go-modelform/pkg/widgets"
)

// Collect asks for every field of f in declaration order and returns the
// answers as submission data. Text answers are checked against the field's
// validators while the user types. Fields a terminal cannot answer (file,
// image, captcha and hidden widgets) are skipped, as are empty answers.
func Collect(ctx context.Context, f *form.Form, d Driver) (form.Data, error) {
	if f == nil {
		return nil, errors.New("prompt: form is nil")
	}
	if d == nil {
		return nil, errors.New("prompt: driver is nil")
	}
	c := collector{ctx: ctx, form: f, driver: d, data: form.Data{}}
	for _, fld := range f.Fields() {
		if err := c.ask(fld); err != nil {
			return nil, fmt.Errorf("prompt: field %q: %w", fld.Name(), err)
		}
	}
	return c.data, nil
}

type collector struct {
	ctx    context.Context
	form   *form.Form
	driver Driver
	data   form.Data
}

func (c collector) ask(fld *field.Field) error {
	name := fld.Name()
	message := fld.Label()
	help := fld.HelpText()
	choices := fld.Widget().Choices()

	switch fld.Widget().Kind() {
	case widgets.KindHidden, widgets.KindFile, widgets.KindImage, widgets.KindCaptcha:
		return nil

	case widgets.KindCheckbox:
		ok, err := c.driver.Confirm(c.ctx, ConfirmConfig{Message: message, Help: help})
		if err != nil {
			return err
		}
		if ok {
			c.data[name] = "on"
		}

	case widgets.KindSelect, widgets.KindMultipleRadio:
		idx, err := c.driver.Select(c.ctx, SelectConfig{Message: message, Help: help, Options: labels(choices)})
		if err != nil {
			return err
		}
		if idx >= 0 && idx < len(choices) {
			c.data[name] = choices[idx].Value
		}

	case widgets.KindMultipleSelect, widgets.KindMultipleCheckbox:
		picked, err := c.driver.MultiSelect(c.ctx, SelectConfig{Message: message, Help: help, Options: labels(choices), DefaultIndex: -1})
		if err != nil {
			return err
		}
		var values []string
		for _, idx := range picked {
			if idx >= 0 && idx < len(choices) {
				values = append(values, choices[idx].Value)
			}
		}
		if len(values) > 0 {
			c.data[name] = values
		}

	case widgets.KindTextarea:
		text, err := c.driver.TextArea(c.ctx, TextAreaConfig{Message: message, Help: help})
		if err != nil {
			return err
		}
		c.store(name, text)

	case widgets.KindPassword:
		text, err := c.driver.Password(c.ctx, InputConfig{Message: message, Help: help, Validator: c.check(name)})
		if err != nil {
			return err
		}
		c.store(name, text)

	default:
		text, err := c.driver.Input(c.ctx, InputConfig{Message: message, Help: help, Validator: c.check(name)})
		if err != nil {
			return err
		}
		c.store(name, text)
	}
	return nil
}

func (c collector) store(name, text string) {
	if strings.TrimSpace(text) != "" {
		c.data[name] = text
	}
}

// check validates a candidate answer against the answers collected so far.
func (c collector) check(name string) func(string) error {
	return func(text string) error {
		data := c.data.Clone()
		data[name] = text
		bound := c.form.Bind(data)
		b := bound.Field(name)
		if err := b.Validate(c.ctx, bound); err != nil {
			return err
		}
		if b.HasError() {
			return errors.New(b.ErrorMessage())
		}
		return nil
	}
}

func labels(choices []widgets.Choice) []string {
	out := make([]string, len(choices))
	for i, choice := range choices {
		out[i] = choice.Label
		if out[i] == "" {
			out[i] = choice.Value
		}
	}
	return out
}
