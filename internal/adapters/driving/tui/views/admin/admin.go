// Package admin provides the record review editor for the TUI.
package admin

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/compass/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/compass/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/compass/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/compass/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/compass/internal/core/domain"
	"github.com/custodia-labs/compass/internal/core/ports/driving"
)

// ErrNoAdminService is returned when the view has no admin service.
var ErrNoAdminService = errors.New("admin service not available")

const labelWidth = 14

// View edits one admin record at a time.
type View struct {
	styles       *styles.Styles
	keymap       *keymap.KeyMap
	adminService driving.AdminService
	ctx          context.Context

	record   *domain.AdminRecord
	summary  *domain.AdminSummary
	reviewed bool

	fields []domain.AdminFieldKey
	inputs []textinput.Model
	text   textarea.Model
	focus  int

	jumping bool
	jump    textinput.Model

	statusbar *status.Bar
	loading   bool
	width     int
	height    int
	ready     bool
	err       error
}

// NewView creates a new admin editor view.
func NewView(s *styles.Styles, km *keymap.KeyMap, adminService driving.AdminService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	fields := domain.AllAdminFields()
	inputs := make([]textinput.Model, len(fields))
	for i := range inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 512
		ti.Width = 50
		inputs[i] = ti
	}

	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.SetWidth(64)
	ta.SetHeight(6)

	jump := textinput.New()
	jump.Prompt = "Go to: "
	jump.CharLimit = 8
	jump.Width = 10

	bar := status.NewBar(s, km)
	bar.SetState(status.StateEditing)

	return &View{
		styles:       s,
		keymap:       km,
		adminService: adminService,
		ctx:          context.Background(),
		fields:       fields,
		inputs:       inputs,
		text:         ta,
		jump:         jump,
		statusbar:    bar,
		width:        80,
		height:       24,
	}
}

// WithContext sets the context used for admin calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the current record, or the first one, and the counters.
func (v *View) Init() tea.Cmd {
	index := 0
	if v.record != nil {
		index = v.record.Index
	}
	v.loading = true
	return tea.Batch(
		v.load(func(ctx context.Context, svc driving.AdminService) (*domain.AdminRecord, error) {
			return svc.Record(ctx, index)
		}),
		v.loadSummary(),
	)
}

type loadFunc func(ctx context.Context, svc driving.AdminService) (*domain.AdminRecord, error)

func (v *View) load(fn loadFunc) tea.Cmd {
	ctx, svc := v.ctx, v.adminService
	return func() tea.Msg {
		if svc == nil {
			return messages.AdminRecordLoaded{Err: ErrNoAdminService}
		}
		rec, err := fn(ctx, svc)
		return messages.AdminRecordLoaded{Record: rec, Err: err}
	}
}

func (v *View) loadSummary() tea.Cmd {
	ctx, svc := v.ctx, v.adminService
	return func() tea.Msg {
		if svc == nil {
			return messages.AdminSummaryLoaded{Err: ErrNoAdminService}
		}
		summary, err := svc.Summary(ctx)
		return messages.AdminSummaryLoaded{Summary: summary, Err: err}
	}
}

func (v *View) action(fn func(ctx context.Context, svc driving.AdminService) (string, error)) tea.Cmd {
	ctx, svc := v.ctx, v.adminService
	return func() tea.Msg {
		if svc == nil {
			return messages.AdminActionDone{Err: ErrNoAdminService}
		}
		msg, err := fn(ctx, svc)
		return messages.AdminActionDone{Status: msg, Err: err}
	}
}

// Update handles messages for the admin view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.AdminRecordLoaded:
		v.loading = false
		if msg.Err != nil {
			v.setError(msg.Err)
			return v, nil
		}
		v.err = nil
		v.setRecord(msg.Record)
		return v, v.focusCmd()

	case messages.AdminSummaryLoaded:
		if msg.Err != nil {
			v.setError(msg.Err)
			return v, nil
		}
		v.summary = msg.Summary
		return v, nil

	case messages.AdminActionDone:
		if msg.Err != nil {
			v.setError(msg.Err)
			return v, nil
		}
		v.err = nil
		v.statusbar.SetMessage(msg.Status)
		return v, v.loadSummary()

	case tea.KeyMsg:
		if v.jumping {
			return v.handleJumpKey(msg)
		}
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	switch {
	case keyStr == "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case keyStr == "tab":
		return v, v.moveFocus(1)
	case keyStr == "shift+tab":
		return v, v.moveFocus(-1)
	case v.focus < len(v.inputs) && keyStr == "down":
		return v, v.moveFocus(1)
	case v.focus < len(v.inputs) && keyStr == "up":
		return v, v.moveFocus(-1)
	}

	if v.record == nil {
		return v, nil
	}

	switch {
	case keymap.Matches(keyStr, v.keymap.PrevRecord):
		current := *v.record
		return v, v.load(func(ctx context.Context, svc driving.AdminService) (*domain.AdminRecord, error) {
			return svc.Prev(ctx, current)
		})
	case keymap.Matches(keyStr, v.keymap.NextRecord):
		current := *v.record
		return v, v.load(func(ctx context.Context, svc driving.AdminService) (*domain.AdminRecord, error) {
			return svc.Next(ctx, current)
		})
	case keymap.Matches(keyStr, v.keymap.Jump):
		v.jumping = true
		v.jump.Reset()
		v.jump.Focus()
		return v, textinput.Blink
	case keymap.Matches(keyStr, v.keymap.Save):
		edit := v.Edit()
		return v, v.action(func(ctx context.Context, svc driving.AdminService) (string, error) {
			res, err := svc.Update(ctx, edit)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Saved %s. Reviewed %d, dirty %d.", res.ID, res.ReviewedCount, res.DirtyCount), nil
		})
	case keymap.Matches(keyStr, v.keymap.Review):
		v.reviewed = !v.reviewed
		return v, nil
	case keymap.Matches(keyStr, v.keymap.GenText):
		if v.adminService != nil {
			v.text.SetValue(v.adminService.GenerateText(v.Edit()))
		}
		return v, nil
	case keymap.Matches(keyStr, v.keymap.SaveAll):
		v.statusbar.SetMessage("Saving all...")
		return v, v.action(func(ctx context.Context, svc driving.AdminService) (string, error) {
			if _, err := svc.SaveAll(ctx); err != nil {
				return "", err
			}
			return "All saved to JSONL.", nil
		})
	case keymap.Matches(keyStr, v.keymap.Upsert):
		v.statusbar.SetMessage("Upserting dirty records...")
		return v, v.action(func(ctx context.Context, svc driving.AdminService) (string, error) {
			res, err := svc.Upsert(ctx, true)
			if err != nil {
				return "", err
			}
			return res.String(), nil
		})
	}

	return v, v.updateFocused(msg)
}

func (v *View) handleJumpKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.stopJump()
		return v, nil
	case "enter":
		raw := strings.TrimSpace(v.jump.Value())
		v.stopJump()
		pos, err := strconv.Atoi(raw)
		if err != nil || pos < 1 {
			v.statusbar.SetMessage(fmt.Sprintf("Invalid position %q", raw))
			return v, nil
		}
		return v, v.load(func(ctx context.Context, svc driving.AdminService) (*domain.AdminRecord, error) {
			return svc.Jump(ctx, pos)
		})
	}

	var cmd tea.Cmd
	v.jump, cmd = v.jump.Update(msg)
	return v, cmd
}

func (v *View) stopJump() {
	v.jumping = false
	v.jump.Blur()
	v.jump.Reset()
}

func (v *View) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if v.focus < len(v.inputs) {
		v.inputs[v.focus], cmd = v.inputs[v.focus].Update(msg)
		return cmd
	}
	v.text, cmd = v.text.Update(msg)
	return cmd
}

// moveFocus cycles focus over the field inputs and the text area.
func (v *View) moveFocus(delta int) tea.Cmd {
	n := len(v.inputs) + 1
	v.focus = ((v.focus+delta)%n + n) % n
	return v.focusCmd()
}

func (v *View) focusCmd() tea.Cmd {
	for i := range v.inputs {
		v.inputs[i].Blur()
	}
	v.text.Blur()

	if v.focus < len(v.inputs) {
		return v.inputs[v.focus].Focus()
	}
	return v.text.Focus()
}

func (v *View) setRecord(rec *domain.AdminRecord) {
	v.record = rec
	if rec == nil {
		return
	}
	v.reviewed = rec.Reviewed
	for i, k := range v.fields {
		v.inputs[i].SetValue(rec.Fields.EditorText(k))
		v.inputs[i].CursorStart()
	}
	v.text.SetValue(rec.Text.EditorText())
	v.focus = 0
	v.statusbar.SetMessage("Record " + rec.Position())
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetMessage(fmt.Sprintf("Error: %v", err))
}

// Edit returns the editor state as an edit of the loaded record.
func (v *View) Edit() domain.AdminEdit {
	if v.record == nil {
		return domain.AdminEdit{}
	}
	edit := domain.EditFromRecord(*v.record)
	edit.Reviewed = v.reviewed
	for i, k := range v.fields {
		edit.Fields.SetEditorText(k, v.inputs[i].Value())
	}
	edit.Text = domain.ParseEditorField(v.text.Value())
	return edit
}

// View renders the admin editor.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Admin"))
	b.WriteString("\n\n")

	switch {
	case v.record == nil && v.loading:
		b.WriteString(v.styles.Muted.Render("Loading record..."))
		b.WriteString("\n")
	case v.record == nil:
		if v.err != nil {
			b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %v", v.err)))
		} else {
			b.WriteString(v.styles.Muted.Render("No record loaded"))
		}
		b.WriteString("\n")
	default:
		b.WriteString(v.renderHeader())
		b.WriteString("\n\n")
		b.WriteString(v.renderFields())
	}

	if v.jumping {
		b.WriteString("\n")
		b.WriteString(v.jump.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.statusbar.View())
	return b.String()
}

func (v *View) renderHeader() string {
	rec := v.record
	parts := []string{
		v.styles.Subtitle.Render("Record " + rec.Position()),
		v.styles.Muted.Render("id " + rec.ID),
	}
	if v.reviewed {
		parts = append(parts, v.styles.Success.Render("[reviewed]"))
	} else {
		parts = append(parts, v.styles.Muted.Render("[not reviewed]"))
	}
	if rec.Dirty {
		parts = append(parts, v.styles.Warning.Render("[dirty]"))
	}
	line := strings.Join(parts, "  ")

	if v.summary != nil {
		line += "\n" + v.styles.Muted.Render(fmt.Sprintf(
			"Reviewed %d of %d, %d dirty",
			v.summary.ReviewedCount, v.summary.Total, v.summary.DirtyCount,
		))
	}
	return line
}

func (v *View) renderFields() string {
	var b strings.Builder
	for i, k := range v.fields {
		label := fmt.Sprintf("%-*s", labelWidth, k.Label()+":")
		style := v.styles.Muted
		if i == v.focus {
			style = v.styles.Selected
		}
		b.WriteString(style.Render(label))
		b.WriteString(" ")
		b.WriteString(v.inputs[i].View())
		b.WriteString("\n")
	}

	textLabel := v.styles.Muted
	if v.focus == len(v.inputs) {
		textLabel = v.styles.Selected
	}
	b.WriteString("\n")
	b.WriteString(textLabel.Render("Text:"))
	b.WriteString("\n")
	b.WriteString(v.text.View())
	b.WriteString("\n")
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	inputWidth := max(20, width-labelWidth-6)
	for i := range v.inputs {
		v.inputs[i].Width = inputWidth
	}
	v.text.SetWidth(max(20, width-4))
	v.text.SetHeight(max(3, height-len(v.inputs)-12))
	v.statusbar.SetWidth(width)
}

// Reset clears transient state. The loaded record is kept so the editor
// reopens where it left off.
func (v *View) Reset() {
	v.stopJump()
	v.err = nil
	v.statusbar.Clear()
	v.statusbar.SetState(status.StateEditing)
}

// Record returns the loaded record.
func (v *View) Record() *domain.AdminRecord {
	return v.record
}

// Summary returns the last loaded counters.
func (v *View) Summary() *domain.AdminSummary {
	return v.summary
}

// Focus returns the focused input index. The text area follows the fields.
func (v *View) Focus() int {
	return v.focus
}

// Reviewed reports the reviewed flag as edited.
func (v *View) Reviewed() bool {
	return v.reviewed
}

// Jumping reports whether the go-to prompt is open.
func (v *View) Jumping() bool {
	return v.jumping
}

// Status returns the status line text.
func (v *View) Status() string {
	return v.statusbar.Message()
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
