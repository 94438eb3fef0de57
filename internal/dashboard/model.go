package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/muurk/vassapi/assistant"
)

const (
	// DefaultRefreshInterval is how often the panel polls the assistant
	DefaultRefreshInterval = 5 * time.Second

	// VolumeStep is the change applied by the volume keys
	VolumeStep = 5

	requestTimeout = 5 * time.Second
)

// Assistant is the subset of the client the dashboard drives.
// *assistant.Client satisfies it.
type Assistant interface {
	IsRunning(ctx context.Context) (bool, error)
	Info(ctx context.Context) (assistant.DeviceInfo, error)
	States(ctx context.Context) (assistant.DeviceStates, error)
	SetInputMute(ctx context.Context, mute bool) error
	SetOutputMute(ctx context.Context, mute bool) error
	SetOutputVolume(ctx context.Context, level int) error
	Trigger(ctx context.Context) error
}

// Messages for async operations
type (
	refreshMsg struct {
		running bool
		info    *assistant.DeviceInfo
		states  *assistant.DeviceStates
		err     error
	}

	actionMsg struct {
		label string
		err   error
	}

	tickMsg time.Time
)

// Model is the bubbletea model of the live assistant panel
type Model struct {
	client   Assistant
	address  string
	interval time.Duration

	// Last known device state
	Running     bool
	Info        *assistant.DeviceInfo
	States      *assistant.DeviceStates
	LastError   error
	LastRefresh time.Time
	Status      string

	// In-flight requests
	pending int

	Width  int
	Height int

	spinner  spinner.Model
	volume   progress.Model
	help     help.Model
	keys     keyMap
	fullHelp bool
}

// New creates a dashboard for client. address is only used for display.
func New(client Assistant, address string, interval time.Duration) Model {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	return Model{
		client:   client,
		address:  address,
		interval: interval,
		Width:    DefaultWidth,
		spinner:  s,
		volume:   progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage(), progress.WithWidth(30)),
		help:     help.New(),
		keys:     defaultKeyMap(),
		// the first refresh is started by Init
		pending: 1,
	}
}

// Init starts the spinner, the first refresh and the poll timer
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.refresh(), m.tick())
}

// Busy reports whether a request is in flight
func (m Model) Busy() bool {
	return m.pending > 0
}

// Update handles key presses and async results
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tickMsg:
		if m.Busy() {
			return m, m.tick()
		}
		m.pending++
		return m, tea.Batch(m.refresh(), m.tick())

	case refreshMsg:
		m.done()
		m.LastRefresh = time.Now()
		m.Running = msg.running
		if msg.err != nil {
			m.LastError = msg.err
			return m, nil
		}
		m.LastError = nil
		if msg.info != nil {
			m.Info = msg.info
		}
		if msg.states != nil {
			m.States = msg.states
		}
		return m, nil

	case actionMsg:
		m.done()
		if msg.err != nil {
			m.LastError = msg.err
			m.Status = ""
			return m, nil
		}
		m.LastError = nil
		m.Status = msg.label
		m.pending++
		return m, m.refresh()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.fullHelp = !m.fullHelp
		m.help.ShowAll = m.fullHelp
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.pending++
		return m, m.refresh()

	case key.Matches(msg, m.keys.Trigger):
		return m.act("wake word triggered", m.client.Trigger)
	}

	// The remaining keys change device state and need a known baseline
	if m.States == nil {
		switch {
		case key.Matches(msg, m.keys.InputMute, m.keys.OutputMute, m.keys.VolumeUp, m.keys.VolumeDown):
			m.Status = "waiting for device state"
		}
		return m, nil
	}
	states := *m.States

	switch {
	case key.Matches(msg, m.keys.InputMute):
		mute := !states.InputMuted
		return m.act(muteLabel("microphone", mute), func(ctx context.Context) error {
			return m.client.SetInputMute(ctx, mute)
		})

	case key.Matches(msg, m.keys.OutputMute):
		mute := !states.OutputMuted
		return m.act(muteLabel("speaker", mute), func(ctx context.Context) error {
			return m.client.SetOutputMute(ctx, mute)
		})

	case key.Matches(msg, m.keys.VolumeUp), key.Matches(msg, m.keys.VolumeDown):
		level := states.OutputVolume + VolumeStep
		if key.Matches(msg, m.keys.VolumeDown) {
			level = states.OutputVolume - VolumeStep
		}
		level = clampVolume(level)
		if level == states.OutputVolume {
			return m, nil
		}
		return m.act(fmt.Sprintf("volume set to %d", level), func(ctx context.Context) error {
			return m.client.SetOutputVolume(ctx, level)
		})
	}

	return m, nil
}

// act runs fn in the background and reports the outcome as an actionMsg
func (m Model) act(label string, fn func(context.Context) error) (tea.Model, tea.Cmd) {
	m.pending++
	m.Status = ""
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return actionMsg{label: label, err: fn(ctx)}
	}
}

func (m *Model) done() {
	if m.pending > 0 {
		m.pending--
	}
}

// refresh fetches status, info and states concurrently
func (m Model) refresh() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		var (
			msg    refreshMsg
			info   assistant.DeviceInfo
			states assistant.DeviceStates
		)

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			running, err := client.IsRunning(gctx)
			msg.running = running
			return err
		})
		g.Go(func() error {
			var err error
			info, err = client.Info(gctx)
			return err
		})
		g.Go(func() error {
			var err error
			states, err = client.States(gctx)
			return err
		})

		if err := g.Wait(); err != nil {
			msg.err = err
			return msg
		}
		msg.info = &info
		msg.states = &states
		return msg
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// View renders the panel
func (m Model) View() string {
	var b strings.Builder

	if m.Running {
		b.WriteString(renderField("Assistant", m.address+"  "+OnStyle.Render("running")))
	} else {
		b.WriteString(renderField("Assistant", m.address+"  "+OffStyle.Render("not running")))
	}
	b.WriteString("\n")

	if m.Info != nil {
		b.WriteString(renderField("Name", m.Info.Name) + "\n")
		b.WriteString(renderField("Version", m.Info.Version) + "\n")
		b.WriteString(renderField("Language", m.Info.Language) + "\n")
		if m.Info.Area != "" {
			b.WriteString(renderField("Area", m.Info.Area) + "\n")
		}
	}
	b.WriteString("\n")

	if m.States != nil {
		b.WriteString(renderSwitch("Microphone", !m.States.InputMuted) + "\n")
		b.WriteString(renderSwitch("Speaker", !m.States.OutputMuted) + "\n")
		b.WriteString(LabelStyle.Render("Volume") +
			m.volume.ViewAs(float64(m.States.OutputVolume)/100) +
			fmt.Sprintf(" %3d", m.States.OutputVolume) + "\n")
	} else if m.LastError == nil {
		b.WriteString(m.spinner.View() + " loading device state\n")
	}

	b.WriteString("\n")
	switch {
	case m.LastError != nil:
		b.WriteString(ErrorStyle.Render(assistant.ShortMessage(m.LastError)) + "\n")
		if hint := assistant.TroubleshootingHint(m.LastError); hint != "" {
			b.WriteString(HelpStyle.Render(hint) + "\n")
		}
	case m.Busy():
		b.WriteString(m.spinner.View() + " working\n")
	case m.Status != "":
		b.WriteString(StatusStyle.Render("✓ "+m.Status) + "\n")
	}

	if !m.LastRefresh.IsZero() {
		b.WriteString(HelpStyle.Render("updated " + m.LastRefresh.Format("15:04:05")))
	}

	return renderContainer(b.String(), m.help.View(m.keys), m.Width, m.Height)
}

func muteLabel(device string, mute bool) string {
	if mute {
		return device + " muted"
	}
	return device + " unmuted"
}

func clampVolume(level int) int {
	switch {
	case level < 0:
		return 0
	case level > 100:
		return 100
	}
	return level
}

// Run starts the dashboard in the alternate screen and blocks until the user
// quits.
func Run(client Assistant, address string, interval time.Duration, width int) error {
	m := New(client, address, interval)
	if width > 0 {
		m.Width = width
	}
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
