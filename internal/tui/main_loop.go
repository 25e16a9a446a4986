package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dmarakulin/learn-logbook/internal/service"
	"github.com/dmarakulin/learn-logbook/models"
)

var errUserIDNotSet = errors.New("user id не установлен")

// indexes into the event form inputs
const (
	formTitle = iota
	formDescription
	formStart
	formEnd
	formCategory
	formRRule
	formFieldCount
)

type mainLoopModel struct {
	ctx      context.Context
	services *service.ClientServices
	userID   int64

	events  []models.Event
	idx     int
	loading bool
	syncing bool
	status  string
	errMsg  string

	detail bool

	formActive  bool
	formEditing bool
	formEventID string
	formInputs  []textinput.Model
	formFocus   int
	formErr     string
	formSaving  bool

	spinner spinner.Model
	logout  bool
}

func newMainLoopModel(ctx context.Context, services *service.ClientServices, userID int64) mainLoopModel {
	effectiveUserID := userID
	if effectiveUserID == 0 {
		effectiveUserID = getSessionUserID()
	}
	if effectiveUserID > 0 {
		setSessionUserID(effectiveUserID)
	}

	s := spinner.New()
	s.Spinner = spinner.MiniDot

	return mainLoopModel{
		ctx:      ctx,
		services: services,
		userID:   effectiveUserID,
		loading:  true,
		spinner:  s,
	}
}

func (m mainLoopModel) Init() tea.Cmd {
	return m.cmdLoadEvents()
}

func (m mainLoopModel) current() (models.Event, bool) {
	if len(m.events) == 0 || m.idx < 0 || m.idx >= len(m.events) {
		return models.Event{}, false
	}
	return m.events[m.idx], true
}

func (m mainLoopModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case listLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.events = msg.events
		if m.idx >= len(m.events) {
			m.idx = len(m.events) - 1
		}
		if m.idx < 0 {
			m.idx = 0
		}
		return m, nil
	case syncDoneMsg:
		m.syncing = false
		if msg.err != nil {
			m.errMsg = humanizeServerUnavailableError(msg.err)
			return m, nil
		}
		m.status = "Синхронизация завершена"
		m.errMsg = ""
		m.events = msg.events
		if m.idx >= len(m.events) {
			m.idx = len(m.events) - 1
		}
		if m.idx < 0 {
			m.idx = 0
		}
		return m, nil
	case createDoneMsg:
		m.formSaving = false
		if msg.err != nil {
			m.formErr = humanizeServerUnavailableError(msg.err)
			return m, nil
		}
		m.resetForm()
		m.status = "Событие добавлено"
		m.errMsg = ""
		m.loading = true
		return m, m.cmdLoadEvents()
	case updateDoneMsg:
		m.formSaving = false
		if msg.err != nil {
			m.formErr = humanizeServerUnavailableError(msg.err)
			return m, nil
		}
		m.resetForm()
		m.status = "Событие обновлено"
		m.errMsg = ""
		m.loading = true
		return m, m.cmdLoadEvents()
	case deleteDoneMsg:
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("Ошибка удаления: %v", humanizeServerUnavailableError(msg.err))
			return m, nil
		}
		m.status = "Событие удалено"
		m.errMsg = ""
		m.loading = true
		return m, m.cmdLoadEvents()
	case exportDoneMsg:
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("Ошибка экспорта: %v", msg.err)
			return m, nil
		}
		m.status = "Календарь сохранён: " + msg.path
		m.errMsg = ""
		return m, nil
	case spinner.TickMsg:
		if !m.syncing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.formActive {
			return m.updateForm(msg)
		}
		return m, nil
	}

	if keyMsg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.formActive {
		return m.updateForm(msg)
	}

	if m.detail {
		return m.updateDetail(keyMsg)
	}

	switch keyMsg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.idx > 0 {
			m.idx--
		}
	case "down", "j":
		if m.idx < len(m.events)-1 {
			m.idx++
		}
	case "enter":
		if _, ok := m.current(); !ok {
			m.status = "Нет событий"
			return m, nil
		}
		m.detail = true
	case "n":
		m.startForm(nil)
		return m, textinput.Blink
	case "e":
		event, ok := m.current()
		if !ok {
			m.status = "Нет событий"
			return m, nil
		}
		m.startForm(&event)
		return m, textinput.Blink
	case " ":
		event, ok := m.current()
		if !ok {
			return m, nil
		}
		return m, m.cmdToggleCompleted(event)
	case "ctrl+d":
		event, ok := m.current()
		if !ok {
			m.status = "Нет событий"
			return m, nil
		}
		return m, m.cmdDelete(event.ID)
	case "s":
		if m.syncing {
			return m, nil
		}
		m.syncing = true
		m.status = "Синхронизация..."
		m.errMsg = ""
		return m, tea.Batch(m.cmdSync(), m.spinner.Tick)
	case "x":
		m.status = "Экспорт..."
		return m, m.cmdExport()
	case "l":
		m.logout = true
		return m, tea.Quit
	}

	return m, nil
}

func (m mainLoopModel) updateDetail(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	event, ok := m.current()
	if !ok {
		m.detail = false
		return m, nil
	}

	switch keyMsg.String() {
	case "esc", "q":
		m.detail = false
	case "e":
		m.detail = false
		m.startForm(&event)
		return m, textinput.Blink
	case "ctrl+d":
		m.detail = false
		return m, m.cmdDelete(event.ID)
	case "c":
		if err := clipboard.WriteAll(detailCopyValue(event)); err != nil {
			m.errMsg = fmt.Sprintf("Ошибка копирования: %v", err)
			return m, nil
		}
		m.status = "Скопировано"
	}
	return m, nil
}

func detailCopyValue(e models.Event) string {
	var b strings.Builder
	b.WriteString(e.Title)
	b.WriteString("\n")
	b.WriteString(e.StartTime.Format(eventTimeLayout))
	if !e.EndTime.IsZero() {
		b.WriteString(" – ")
		b.WriteString(e.EndTime.Format(eventTimeLayout))
	}
	if e.Description != "" {
		b.WriteString("\n")
		b.WriteString(e.Description)
	}
	return b.String()
}

func (m *mainLoopModel) startForm(event *models.Event) {
	inputs := make([]textinput.Model, formFieldCount)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 40
	}
	inputs[formTitle].Placeholder = "Название"
	inputs[formDescription].Placeholder = "Описание (можно пусто)"
	inputs[formStart].Placeholder = eventTimeLayout
	inputs[formEnd].Placeholder = eventTimeLayout + " (можно пусто)"
	inputs[formCategory].Placeholder = "study / exam / deadline / revision"
	inputs[formRRule].Placeholder = "FREQ=WEEKLY;BYDAY=MO (можно пусто)"
	inputs[formTitle].Focus()

	m.formActive = true
	m.formEditing = false
	m.formEventID = ""
	m.formInputs = inputs
	m.formFocus = 0
	m.formErr = ""
	m.formSaving = false

	if event != nil {
		m.formEditing = true
		m.formEventID = event.ID
		inputs[formTitle].SetValue(event.Title)
		inputs[formDescription].SetValue(event.Description)
		inputs[formStart].SetValue(event.StartTime.Format(eventTimeLayout))
		if !event.EndTime.IsZero() {
			inputs[formEnd].SetValue(event.EndTime.Format(eventTimeLayout))
		}
		inputs[formCategory].SetValue(event.Category)
		inputs[formRRule].SetValue(event.RRule)
	}
}

func (m *mainLoopModel) resetForm() {
	m.formActive = false
	m.formEditing = false
	m.formEventID = ""
	m.formInputs = nil
	m.formFocus = 0
	m.formErr = ""
	m.formSaving = false
}

func (m mainLoopModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			m.resetForm()
			return m, nil
		case "tab":
			m.formInputs[m.formFocus].Blur()
			m.formFocus = (m.formFocus + 1) % len(m.formInputs)
			m.formInputs[m.formFocus].Focus()
			return m, nil
		case "shift+tab":
			m.formInputs[m.formFocus].Blur()
			m.formFocus = (m.formFocus - 1 + len(m.formInputs)) % len(m.formInputs)
			m.formInputs[m.formFocus].Focus()
			return m, nil
		case "enter":
			if m.formSaving {
				return m, nil
			}
			return m.submitForm()
		}
	}

	var cmd tea.Cmd
	m.formInputs[m.formFocus], cmd = m.formInputs[m.formFocus].Update(msg)
	return m, cmd
}

func (m mainLoopModel) submitForm() (tea.Model, tea.Cmd) {
	title := strings.TrimSpace(m.formInputs[formTitle].Value())
	if title == "" {
		m.formErr = "нужно название."
		return m, nil
	}

	start, err := time.ParseInLocation(eventTimeLayout, strings.TrimSpace(m.formInputs[formStart].Value()), time.Local)
	if err != nil {
		m.formErr = "начало: ожидается формат " + eventTimeLayout
		return m, nil
	}

	var end time.Time
	if raw := strings.TrimSpace(m.formInputs[formEnd].Value()); raw != "" {
		end, err = time.ParseInLocation(eventTimeLayout, raw, time.Local)
		if err != nil {
			m.formErr = "конец: ожидается формат " + eventTimeLayout
			return m, nil
		}
	}

	description := strings.TrimSpace(m.formInputs[formDescription].Value())
	category := strings.TrimSpace(m.formInputs[formCategory].Value())
	rRule := strings.TrimSpace(m.formInputs[formRRule].Value())

	m.formErr = ""
	m.formSaving = true

	if m.formEditing {
		update := models.EventUpdate{
			Title:       &title,
			Description: &description,
			StartTime:   &start,
			EndTime:     &end,
			Category:    &category,
			RRule:       &rRule,
		}
		return m, m.cmdUpdate(m.formEventID, update)
	}

	event := models.Event{
		Title:       title,
		Description: description,
		StartTime:   start,
		EndTime:     end,
		Category:    category,
		RRule:       rRule,
	}
	return m, m.cmdCreate(event)
}

func (m mainLoopModel) cmdLoadEvents() tea.Cmd {
	ctx := m.ctx
	svc := m.services.SyncService

	return func() tea.Msg {
		if getSessionUserID() <= 0 {
			return listLoadedMsg{err: errUserIDNotSet}
		}
		events, err := svc.LocalEvents(ctx)
		return listLoadedMsg{events: events, err: err}
	}
}

func (m mainLoopModel) cmdSync() tea.Cmd {
	ctx := m.ctx
	svc := m.services.SyncService

	return func() tea.Msg {
		events, err := svc.Sync(ctx)
		return syncDoneMsg{events: events, err: err}
	}
}

func (m mainLoopModel) cmdCreate(event models.Event) tea.Cmd {
	ctx := m.ctx
	svc := m.services.SyncService

	return func() tea.Msg {
		_, err := svc.AddEvent(ctx, event)
		return createDoneMsg{err: err}
	}
}

func (m mainLoopModel) cmdUpdate(id string, update models.EventUpdate) tea.Cmd {
	ctx := m.ctx
	svc := m.services.SyncService

	return func() tea.Msg {
		err := svc.UpdateEvent(ctx, id, update)
		return updateDoneMsg{err: err}
	}
}

func (m mainLoopModel) cmdToggleCompleted(event models.Event) tea.Cmd {
	ctx := m.ctx
	svc := m.services.SyncService

	completed := !event.Completed
	return func() tea.Msg {
		err := svc.UpdateEvent(ctx, event.ID, models.EventUpdate{Completed: &completed})
		return updateDoneMsg{err: err}
	}
}

func (m mainLoopModel) cmdDelete(id string) tea.Cmd {
	ctx := m.ctx
	svc := m.services.SyncService

	return func() tea.Msg {
		err := svc.RemoveEvent(ctx, id)
		return deleteDoneMsg{err: err}
	}
}

func (m mainLoopModel) cmdExport() tea.Cmd {
	ctx := m.ctx
	svc := m.services.ExportService

	return func() tea.Msg {
		path, err := svc.ExportICS(ctx)
		return exportDoneMsg{path: path, err: err}
	}
}

func (m mainLoopModel) View() string {
	if m.formActive {
		return m.viewForm()
	}
	if m.detail {
		return m.viewDetail()
	}
	return m.viewList()
}

func (m mainLoopModel) viewList() string {
	var b strings.Builder

	if m.loading {
		b.WriteString("Загрузка...\n")
	} else if len(m.events) == 0 {
		b.WriteString("Нет событий\n")
	} else {
		for i, event := range m.events {
			cursor := "  "
			if i == m.idx {
				cursor = "> "
			}
			b.WriteString(cursor + fitText(formatEventLine(event), 70) + "\n")
		}
	}

	if m.syncing {
		b.WriteString("\n" + m.spinner.View() + " синхронизация\n")
	}
	if m.status != "" {
		b.WriteString("\n" + statusStyle.Render(m.status) + "\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render("Ошибка: "+m.errMsg) + "\n")
	}

	return renderPage(
		"КАЛЕНДАРЬ",
		strings.TrimRight(b.String(), "\n"),
		"n: новое │ e: изменить │ space: выполнено │ s: синхр. │ x: экспорт .ics │ ctrl+d: удалить │ l: выход из аккаунта │ q: выход",
	)
}

func (m mainLoopModel) viewDetail() string {
	event, ok := m.current()
	if !ok {
		return m.viewList()
	}

	var b strings.Builder
	b.WriteString("Название    │ " + event.Title + "\n")
	b.WriteString("Описание    │ " + valueOrDash(event.Description) + "\n")
	b.WriteString("Начало      │ " + formatTimeOrDash(event.StartTime) + "\n")
	b.WriteString("Конец       │ " + formatTimeOrDash(event.EndTime) + "\n")
	b.WriteString("Категория   │ " + valueOrDash(event.Category) + "\n")
	b.WriteString("Повторение  │ " + valueOrDash(event.RRule) + "\n")
	completed := "нет"
	if event.Completed {
		completed = "да"
	}
	b.WriteString("Выполнено   │ " + completed + "\n")
	if event.IsBackup {
		b.WriteString("Запасной слот\n")
	}

	if m.status != "" {
		b.WriteString("\n" + statusStyle.Render(m.status) + "\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render("Ошибка: "+m.errMsg) + "\n")
	}

	return renderPage(
		"СОБЫТИЕ",
		strings.TrimRight(b.String(), "\n"),
		"esc: назад │ e: изменить │ c: копировать │ ctrl+d: удалить",
	)
}

func (m mainLoopModel) viewForm() string {
	title := "НОВОЕ СОБЫТИЕ"
	if m.formEditing {
		title = "РЕДАКТИРОВАНИЕ"
	}

	labels := []string{"Название  ", "Описание  ", "Начало    ", "Конец     ", "Категория ", "Повтор    "}

	var b strings.Builder
	for i, input := range m.formInputs {
		b.WriteString(labels[i] + "│ [" + input.View() + "]\n")
	}

	if m.formSaving {
		b.WriteString("\n[Сохранение...]\n")
	}
	if m.formErr != "" {
		b.WriteString("\n" + errorStyle.Render("Ошибка: "+m.formErr) + "\n")
	}

	return renderPage(title, strings.TrimRight(b.String(), "\n"), "esc: отмена │ tab: след. поле │ enter: сохранить")
}
