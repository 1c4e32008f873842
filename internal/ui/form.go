package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/tally/internal/domain"
	"github.com/five82/tally/internal/listing"
	"github.com/five82/tally/internal/state"
)

// formEnv gives field setters access to cached pages of other collections.
type formEnv struct {
	ctx   context.Context
	store *state.Store
	now   func() time.Time
}

// formField binds one text input to a draft field.
type formField[T any] struct {
	// key matches the field name used in validation errors.
	key   string
	label string
	hint  string
	get   func(T) string
	set   func(*T, string) error
	// rebuild marks fields whose value changes the set of fields, such as
	// the account type.
	rebuild bool
}

const formLabelWidth = 20

// formModal edits the draft held by a list screen's editor.
type formModal[T listing.Entity[T], D any] struct {
	screen *listScreen[T, D]
	fields []formField[T]
	inputs []textinput.Model
	focus  int
}

func newFormModal[T listing.Entity[T], D any](s *listScreen[T, D]) *formModal[T, D] {
	m := &formModal[T, D]{screen: s}
	m.build(nil)
	return m
}

// build recreates the inputs from the draft, keeping typed values of fields
// that survive.
func (m *formModal[T, D]) build(typed map[string]string) {
	draft := *m.screen.editor.Draft()
	m.fields = m.screen.spec.fields(m.screen.env, draft)
	m.inputs = make([]textinput.Model, len(m.fields))
	for i, f := range m.fields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = f.hint
		ti.CharLimit = 200
		ti.Width = 36
		value, ok := typed[f.key]
		if !ok {
			value = f.get(draft)
		}
		ti.SetValue(value)
		m.inputs[i] = ti
	}
	if m.focus >= len(m.inputs) {
		m.focus = len(m.inputs) - 1
	}
	if len(m.inputs) > 0 {
		m.inputs[m.focus].Focus()
	}
}

func (m *formModal[T, D]) typed() map[string]string {
	out := make(map[string]string, len(m.fields))
	for i, f := range m.fields {
		out[f.key] = m.inputs[i].Value()
	}
	return out
}

// Settled reports whether the editor closed after a successful save.
func (m *formModal[T, D]) Settled() bool {
	return !m.screen.editor.IsOpen()
}

func (m *formModal[T, D]) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil, m.Settled()
	}
	if key.Matches(km, keys.Escape) {
		m.screen.editor.Close()
		return m, nil, true
	}
	if m.screen.saving {
		return m, nil, false
	}

	switch {
	case key.Matches(km, keys.Save):
		return m, m.submit(), false
	case key.Matches(km, keys.Confirm):
		if m.focus == len(m.inputs)-1 {
			return m, m.submit(), false
		}
		return m, m.move(1), false
	case key.Matches(km, keys.NextItem):
		return m, m.move(1), false
	case key.Matches(km, keys.PrevItem):
		return m, m.move(-1), false
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd, false
}

// move shifts focus, first applying a rebuild field that is being left.
func (m *formModal[T, D]) move(dir int) tea.Cmd {
	if f := m.fields[m.focus]; f.rebuild {
		if err := f.set(m.screen.editor.Draft(), m.inputs[m.focus].Value()); err == nil {
			typed := m.typed()
			delete(typed, f.key)
			m.inputs[m.focus].Blur()
			m.build(typed)
		}
	}
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + dir + len(m.inputs)) % len(m.inputs)
	return m.inputs[m.focus].Focus()
}

// submit copies every input into the draft, validates it and starts the
// save. Parse and validation errors keep the dialog open without a request.
func (m *formModal[T, D]) submit() tea.Cmd {
	editor := &m.screen.editor
	draft := editor.Draft()
	parseErrs := domain.ValidationError{}
	for i, f := range m.fields {
		if err := f.set(draft, m.inputs[i].Value()); err != nil {
			parseErrs.Add(f.key, err.Error())
		}
	}
	item, err := editor.Prepare()
	if len(parseErrs) > 0 {
		var verr domain.ValidationError
		if errors.As(err, &verr) {
			for field, msg := range verr {
				parseErrs.Add(field, msg)
			}
		}
		editor.Finish(parseErrs)
		return nil
	}
	if err != nil {
		return nil
	}
	return m.screen.saveCmd(item)
}

func (m *formModal[T, D]) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	editor := &m.screen.editor

	title := "Edit " + m.screen.spec.noun
	if editor.Creating() {
		title = "New " + m.screen.spec.noun
	}

	var verr domain.ValidationError
	err := editor.Err()
	fieldErrs := errors.As(err, &verr)

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(title))
	b.WriteString("\n\n")
	for i, f := range m.fields {
		labelStyle := styles.MutedText
		if i == m.focus {
			labelStyle = styles.AccentText
		}
		b.WriteString(labelStyle.Width(formLabelWidth).Render(f.label))
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
		if fieldErrs {
			if msg, ok := verr[f.key]; ok {
				b.WriteString(styles.DangerText.Render(strings.Repeat(" ", formLabelWidth) + msg))
				b.WriteString("\n")
			}
		}
	}

	b.WriteString("\n")
	switch {
	case m.screen.saving:
		b.WriteString(styles.WarningText.Render("Saving..."))
	case err != nil && !fieldErrs:
		b.WriteString(styles.DangerText.Render(truncate(err.Error(), 60)))
	case fieldErrs:
		b.WriteString(styles.DangerText.Render(fmt.Sprintf("%d field(s) need attention", len(verr))))
	default:
		b.WriteString(styles.FaintText.Render("tab next · ctrl+s save · esc cancel"))
	}

	return placeModal(theme, width, height, 64, b.String())
}

// Field parsing helpers shared by the screen definitions.

func textField[T any](key, label string, get func(T) string, set func(*T, string)) formField[T] {
	return formField[T]{
		key:   key,
		label: label,
		get:   get,
		set: func(t *T, in string) error {
			set(t, strings.TrimSpace(in))
			return nil
		},
	}
}

func parseCoded[K ~int](table map[K]domain.Badge, input string) (K, error) {
	if strings.TrimSpace(input) == "" {
		return 0, nil
	}
	code, ok := domain.ParseCode(table, input)
	if !ok {
		return 0, fmt.Errorf("unknown value %q", strings.TrimSpace(input))
	}
	return code, nil
}

func codedHint[K ~int](table map[K]domain.Badge, order ...K) string {
	labels := make([]string, 0, len(order))
	for _, code := range order {
		labels = append(labels, table[code].Label)
	}
	return strings.Join(labels, ", ")
}

func parseBool(input string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes", "true", "1", "on":
		return true, nil
	case "", "n", "no", "false", "0", "off":
		return false, nil
	}
	return false, fmt.Errorf("expected yes or no")
}

func formatBool(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

const dateInputLayout = "2006-01-02 15:04"

var dateInputLayouts = []string{dateInputLayout, "2006-01-02", listing.DateLayout, time.RFC3339}

// parseDate reads a local date; the empty string is the zero time.
func parseDate(input string) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, nil
	}
	for _, layout := range dateInputLayouts {
		if t, err := time.ParseInLocation(layout, input, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("expected YYYY-MM-DD or YYYY-MM-DD HH:MM")
}

func formatDateInput(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(dateInputLayout)
}

func parseList(input string) []string {
	var out []string
	for _, part := range strings.Split(input, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func amountField[T any](key, label string, get func(T) string, set func(*T, string) error) formField[T] {
	return formField[T]{key: key, label: label, hint: "0.00", get: get, set: set}
}

// lookupRef resolves input against the cached page of collection, matching
// the row label case-insensitively or the id exactly.
func lookupRef[R listing.Row](env formEnv, collection, noun, input string) (domain.Ref, error) {
	input = strings.TrimSpace(input)
	if env.store == nil {
		return domain.Ref{}, fmt.Errorf("no %s list loaded", noun)
	}
	snap, ok := env.store.Get(env.ctx, collection)
	if !ok {
		return domain.Ref{}, fmt.Errorf("open the %s screen to load choices", noun)
	}
	var rows []R
	if err := snap.Decode(&rows); err != nil {
		return domain.Ref{}, err
	}
	for _, row := range rows {
		if row.Key() == input || strings.EqualFold(row.Label(), input) {
			return domain.Ref{ID: row.Key(), Name: row.Label()}, nil
		}
	}
	return domain.Ref{}, fmt.Errorf("no %s named %q", noun, input)
}
