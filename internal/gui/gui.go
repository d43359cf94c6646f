// Package gui implements the fyne control panel: pick a window, describe the
// key sequence and interval, and toggle the automation loop from the panel or
// the global hotkey.
package gui

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"specinput/internal/config"
	"specinput/internal/hotkey"
	"specinput/internal/model"
	"specinput/internal/platform"
	"specinput/internal/scheduler"
)

const defaultKeybind = "ctrl+f9"

// Panel is the control panel window and its state.
type Panel struct {
	fyneApp fyne.App
	win     fyne.Window

	provider *platform.Provider
	loop     *scheduler.Loop
	setups   *config.Manager

	mu      sync.Mutex
	windows map[string]model.Window    // select label -> window
	timing  map[string]model.KeyConfig // key token -> tuned timing
	target  model.Window               // currently selected window
	hk      *hotkey.Listener

	windowSelect  *widget.Select
	refreshBtn    *widget.Button
	keysEntry     *widget.Entry
	intervalEntry *widget.Entry
	keybindEntry  *widget.Entry
	setupSelect   *widget.Select
	setupName     *widget.Entry
	loadBtn       *widget.Button
	saveBtn       *widget.Button
	deleteBtn     *widget.Button
	timingKey     *widget.Select
	holdEntry     *widget.Entry
	repeatEntry   *widget.Entry
	waitEntry     *widget.Entry
	applyTiming   *widget.Button
	statusLabel   *widget.Label
	toggleBtn     *widget.Button
}

// Run builds the panel, applies initial as the starting field values, and
// blocks until the window is closed.
func Run(provider *platform.Provider, setups *config.Manager, initial model.Setup) error {
	p := &Panel{
		fyneApp:  app.New(),
		provider: provider,
		loop:     scheduler.New(provider.Sender),
		setups:   setups,
		windows:  map[string]model.Window{},
		timing:   map[string]model.KeyConfig{},
	}
	p.win = p.fyneApp.NewWindow("specinput")
	p.win.Resize(fyne.NewSize(560, 520))

	p.build(initial)
	p.refreshWindows()
	p.refreshSetups()
	p.registerHotkey(p.keybindEntry.Text)

	p.win.SetOnClosed(func() {
		p.loop.Stop()
		p.closeHotkey()
	})
	p.win.ShowAndRun()
	return nil
}

func (p *Panel) build(initial model.Setup) {
	p.statusLabel = widget.NewLabel(statusText(false, 0))
	p.statusLabel.TextStyle = fyne.TextStyle{Bold: true}

	p.windowSelect = widget.NewSelect(nil, func(label string) {
		p.mu.Lock()
		p.target = p.windows[label]
		p.mu.Unlock()
	})
	p.windowSelect.PlaceHolder = "No windows found"
	p.refreshBtn = widget.NewButton("Refresh", p.refreshWindows)

	p.keysEntry = widget.NewEntry()
	p.keysEntry.SetPlaceHolder("w a s d space")
	p.keysEntry.OnChanged = func(string) { p.syncTimingKeys() }

	p.intervalEntry = widget.NewEntry()
	p.intervalEntry.SetPlaceHolder("5s, 2m,30s or 1h,15m")

	p.keybindEntry = widget.NewEntry()
	p.keybindEntry.SetPlaceHolder(defaultKeybind)
	p.keybindEntry.OnSubmitted = func(binding string) { p.registerHotkey(binding) }

	p.timingKey = widget.NewSelect(nil, func(key string) { p.showTiming(key) })
	p.timingKey.PlaceHolder = "(key)"
	p.holdEntry = widget.NewEntry()
	p.holdEntry.SetPlaceHolder("0.1")
	p.repeatEntry = widget.NewEntry()
	p.repeatEntry.SetPlaceHolder("1")
	p.waitEntry = widget.NewEntry()
	p.waitEntry.SetPlaceHolder("0")
	p.applyTiming = widget.NewButton("Apply", p.applySelectedTiming)

	p.setupSelect = widget.NewSelect(nil, func(name string) {
		p.setupName.SetText(name)
	})
	p.setupSelect.PlaceHolder = "(saved setups)"
	p.setupName = widget.NewEntry()
	p.setupName.SetPlaceHolder("setup name")
	p.loadBtn = widget.NewButton("Load", p.loadSetup)
	p.saveBtn = widget.NewButton("Save", p.saveSetup)
	p.deleteBtn = widget.NewButton("Delete", p.deleteSetup)

	p.toggleBtn = widget.NewButton("", p.togglePressed)
	p.toggleBtn.Importance = widget.HighImportance

	p.applyInitial(initial)
	p.updateToggleLabel(false)

	form := widget.NewForm(
		widget.NewFormItem("Window", container.NewBorder(nil, nil, nil, p.refreshBtn, p.windowSelect)),
		widget.NewFormItem("Keys", p.keysEntry),
		widget.NewFormItem("Interval", p.intervalEntry),
		widget.NewFormItem("Hotkey", p.keybindEntry),
	)

	timingRow := container.NewGridWithColumns(5,
		p.timingKey, p.holdEntry, p.repeatEntry, p.waitEntry, p.applyTiming)
	timingHeader := container.NewGridWithColumns(5,
		widget.NewLabel("Key"), widget.NewLabel("Hold (s)"),
		widget.NewLabel("Repeat"), widget.NewLabel("Wait (s)"), widget.NewLabel(""))

	setupRow := container.NewBorder(nil, nil, nil,
		container.NewHBox(p.loadBtn, p.saveBtn, p.deleteBtn),
		container.NewGridWithColumns(2, p.setupSelect, p.setupName))

	content := container.NewVBox(
		form,
		widget.NewSeparator(),
		widget.NewLabel("Per-key timing"),
		timingHeader,
		timingRow,
		widget.NewSeparator(),
		widget.NewLabel("Setups"),
		setupRow,
		widget.NewSeparator(),
		p.statusLabel,
		p.toggleBtn,
	)
	p.win.SetContent(container.NewPadded(content))
}

// applyInitial seeds the fields from a setup loaded on the command line, or
// with defaults when none was given.
func (p *Panel) applyInitial(s model.Setup) {
	if len(s.Keys) > 0 {
		p.setFieldsFromSetup(s)
		return
	}
	p.intervalEntry.SetText("5s")
	p.keybindEntry.SetText(defaultKeybind)
}

func (p *Panel) setFieldsFromSetup(s model.Setup) {
	p.keysEntry.SetText(joinKeys(s.Keys))
	if s.Interval > 0 {
		p.intervalEntry.SetText(config.FormatInterval(s.Interval))
	}
	binding := s.Keybind
	if binding == "" {
		binding = defaultKeybind
	}
	p.keybindEntry.SetText(binding)

	p.mu.Lock()
	p.timing = map[string]model.KeyConfig{}
	for _, k := range s.Keys {
		p.timing[k.Key] = k.KeyConfig
	}
	p.mu.Unlock()
	p.syncTimingKeys()

	// Reselect the saved window by ID if it is still open, falling back to
	// a title match.
	p.mu.Lock()
	var found string
	for label, w := range p.windows {
		if w.ID == s.WindowID || (s.WindowTitle != "" && w.Title == s.WindowTitle) {
			found = label
			break
		}
	}
	p.mu.Unlock()
	if found != "" {
		p.windowSelect.SetSelected(found)
	}
}

// refreshWindows re-runs the window listing and rebuilds the picker options.
func (p *Panel) refreshWindows() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	wins, err := p.provider.Lister.ListWindows(ctx, platform.ListOptions{})
	if err != nil {
		p.setStatus(fmt.Sprintf("● INACTIVE: window listing failed: %v", err))
		return
	}

	options, byLabel := windowOptions(wins)
	p.mu.Lock()
	p.windows = byLabel
	prev := p.target
	p.mu.Unlock()

	p.windowSelect.Options = options
	if prev.ID != "" {
		for label, w := range byLabel {
			if w.ID == prev.ID {
				p.windowSelect.Selected = label
				break
			}
		}
	}
	p.windowSelect.Refresh()
	if len(wins) == 0 {
		p.setStatus("● INACTIVE: no windows found")
	}
}

func (p *Panel) refreshSetups() {
	names, err := p.setups.List()
	if err != nil {
		log.Printf("gui: list setups: %v", err)
		return
	}
	p.setupSelect.Options = names
	p.setupSelect.Refresh()
}

// syncTimingKeys mirrors the key sequence field into the timing editor's key
// picker.
func (p *Panel) syncTimingKeys() {
	entries, err := model.ParseKeys(p.keysEntry.Text)
	if err != nil {
		p.timingKey.Options = nil
		p.timingKey.Refresh()
		return
	}
	p.timingKey.Options = model.KeyNames(entries)
	p.timingKey.Refresh()
}

// showTiming fills the hold/repeat/wait fields for the picked key.
func (p *Panel) showTiming(key string) {
	p.mu.Lock()
	cfg, ok := p.timing[key]
	p.mu.Unlock()
	if !ok {
		cfg = model.DefaultKeyConfig()
	}
	p.holdEntry.SetText(formatSeconds(cfg.Hold))
	p.repeatEntry.SetText(fmt.Sprintf("%d", cfg.Repeat))
	p.waitEntry.SetText(formatSeconds(cfg.Wait))
}

func (p *Panel) applySelectedTiming() {
	key := p.timingKey.Selected
	if key == "" {
		p.setStatus("● INACTIVE: pick a key to tune first")
		return
	}
	cfg, err := parseTiming(p.holdEntry.Text, p.repeatEntry.Text, p.waitEntry.Text)
	if err != nil {
		p.setStatus(fmt.Sprintf("● INACTIVE: %v", err))
		return
	}
	p.mu.Lock()
	p.timing[key] = cfg
	p.mu.Unlock()
	p.setStatus(fmt.Sprintf("● INACTIVE: timing for %q updated", key))
}

// currentSetup assembles a setup from the panel fields, validating as it goes.
func (p *Panel) currentSetup() (model.Setup, error) {
	p.mu.Lock()
	target := p.target
	timing := p.timing
	p.mu.Unlock()

	if target.ID == "" {
		return model.Setup{}, fmt.Errorf("no window selected")
	}
	keys, err := model.ParseKeys(p.keysEntry.Text)
	if err != nil {
		return model.Setup{}, err
	}
	for i, k := range keys {
		if cfg, ok := timing[k.Key]; ok {
			keys[i].KeyConfig = cfg
		}
	}
	interval, err := config.ParseInterval(p.intervalEntry.Text)
	if err != nil {
		return model.Setup{}, err
	}
	binding := p.keybindEntry.Text
	if binding != "" {
		if binding, err = hotkey.NormalizeBinding(binding); err != nil {
			return model.Setup{}, err
		}
	}
	return model.Setup{
		Name:        p.setupName.Text,
		WindowID:    target.ID,
		WindowTitle: target.Title,
		Interval:    interval,
		Keybind:     binding,
		Keys:        keys,
	}, nil
}

// togglePressed flips the loop. It runs on the UI thread; the hotkey
// listener routes here through fyne.Do.
func (p *Panel) togglePressed() {
	if p.loop.Active() {
		p.loop.Stop()
		p.setActiveUI(false, 0)
		return
	}

	setup, err := p.currentSetup()
	if err != nil {
		p.setStatus(fmt.Sprintf("● INACTIVE: %v", err))
		return
	}

	cfg := scheduler.Config{
		WindowID: setup.WindowID,
		Keys:     setup.Keys,
		Interval: setup.Interval,
		OnCycle: func(runs int) {
			fyne.Do(func() { p.statusLabel.SetText(statusText(true, runs)) })
		},
		OnDeactivate: func(reason string) {
			fyne.Do(func() {
				p.setActiveUI(false, 0)
				p.setStatus("● INACTIVE: " + reason)
			})
		},
	}
	if err := p.loop.Start(cfg); err != nil {
		p.setStatus(fmt.Sprintf("● INACTIVE: %v", err))
		return
	}
	p.setActiveUI(true, 0)
}

// setActiveUI switches the panel between its two states: fields editable
// while inactive, locked while the loop runs.
func (p *Panel) setActiveUI(active bool, runs int) {
	p.statusLabel.SetText(statusText(active, runs))
	p.updateToggleLabel(active)

	controls := []fyne.Disableable{
		p.windowSelect, p.refreshBtn, p.keysEntry, p.intervalEntry,
		p.keybindEntry, p.setupSelect, p.setupName,
		p.loadBtn, p.saveBtn, p.deleteBtn,
		p.timingKey, p.holdEntry, p.repeatEntry, p.waitEntry, p.applyTiming,
	}
	for _, c := range controls {
		if active {
			c.Disable()
		} else {
			c.Enable()
		}
	}
}

func (p *Panel) updateToggleLabel(active bool) {
	binding := p.keybindEntry.Text
	if binding == "" {
		binding = defaultKeybind
	}
	if active {
		p.toggleBtn.SetText(fmt.Sprintf("DEACTIVATE (%s)", binding))
		p.toggleBtn.Importance = widget.DangerImportance
	} else {
		p.toggleBtn.SetText(fmt.Sprintf("ACTIVATE (%s)", binding))
		p.toggleBtn.Importance = widget.HighImportance
	}
	p.toggleBtn.Refresh()
}

func (p *Panel) setStatus(msg string) {
	p.statusLabel.SetText(msg)
}

// registerHotkey swaps the global hotkey to binding. A failed registration
// degrades to panel-only toggling.
func (p *Panel) registerHotkey(binding string) {
	if binding == "" {
		binding = defaultKeybind
	}
	normalized, err := hotkey.NormalizeBinding(binding)
	if err != nil {
		p.setStatus(fmt.Sprintf("● INACTIVE: %v", err))
		return
	}

	p.closeHotkey()
	listener, err := hotkey.Listen(normalized, func() {
		fyne.Do(p.togglePressed)
	})
	if err != nil {
		log.Printf("gui: global hotkey unavailable: %v", err)
		p.setStatus(fmt.Sprintf("● INACTIVE: hotkey %s unavailable, use the button", normalized))
		return
	}

	p.mu.Lock()
	p.hk = listener
	p.mu.Unlock()
	p.updateToggleLabel(p.loop.Active())
}

func (p *Panel) closeHotkey() {
	p.mu.Lock()
	listener := p.hk
	p.hk = nil
	p.mu.Unlock()
	if listener != nil {
		if err := listener.Close(); err != nil {
			log.Printf("gui: close hotkey: %v", err)
		}
	}
}

func (p *Panel) loadSetup() {
	name := p.setupName.Text
	if name == "" {
		name = p.setupSelect.Selected
	}
	if name == "" {
		p.setStatus("● INACTIVE: pick a setup to load")
		return
	}
	setup, err := p.setups.Load(name)
	if err != nil {
		p.setStatus(fmt.Sprintf("● INACTIVE: %v", err))
		return
	}
	p.setFieldsFromSetup(setup)
	p.setupName.SetText(name)
	p.registerHotkey(p.keybindEntry.Text)
	p.setStatus(fmt.Sprintf("● INACTIVE: loaded %q", name))
}

func (p *Panel) saveSetup() {
	setup, err := p.currentSetup()
	if err != nil {
		p.setStatus(fmt.Sprintf("● INACTIVE: %v", err))
		return
	}
	if setup.Name == "" {
		p.setStatus("● INACTIVE: enter a setup name")
		return
	}
	if err := p.setups.Save(setup); err != nil {
		p.setStatus(fmt.Sprintf("● INACTIVE: %v", err))
		return
	}
	p.refreshSetups()
	p.setStatus(fmt.Sprintf("● INACTIVE: saved %q", setup.Name))
}

func (p *Panel) deleteSetup() {
	name := p.setupName.Text
	if name == "" {
		name = p.setupSelect.Selected
	}
	if name == "" {
		p.setStatus("● INACTIVE: pick a setup to delete")
		return
	}
	if err := p.setups.Delete(name); err != nil {
		p.setStatus(fmt.Sprintf("● INACTIVE: %v", err))
		return
	}
	p.refreshSetups()
	p.setStatus(fmt.Sprintf("● INACTIVE: deleted %q", name))
}
