// Package display owns the terminal through Bubble Tea.
//
// The [UI] type exposes exactly what the rest of the program needs:
// a thread-safe frame push ([UI.Render]), a blocking text prompt
// ([UI.RequestLine]), and a channel of single key presses
// ([UI.Keys]). Everything else about the terminal stays in here.
package display

import (
	"errors"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/multiclock/internal/clock"
)

// Sentinel errors returned by RequestLine.
var (
	// ErrPromptCancelled means the user backed out with Esc.
	ErrPromptCancelled = errors.New("prompt cancelled")
	// ErrClosed means the display shut down while waiting.
	ErrClosed = errors.New("display closed")
)

var promptStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#94a3b8"))

// Compile-time interface check.
var _ clock.Sink = (*UI)(nil)

// UI manages the terminal. Call [NewUI] then [UI.Run] (blocking).
// Other goroutines may call [UI.Render] at any time (frames pushed
// before the event loop is up are dropped), and may call
// [UI.RequestLine] and read from [UI.Keys] once [UI.WaitReady]
// returns.
type UI struct {
	program *tea.Program
	keyCh   chan rune
	lineCh  chan promptReply
	readyCh chan struct{}
	quitCh  chan struct{}
	done    atomic.Bool
}

// NewUI creates the display. Call Run() to start.
func NewUI() *UI {
	return &UI{
		keyCh:   make(chan rune, 8),
		lineCh:  make(chan promptReply, 1),
		readyCh: make(chan struct{}),
		quitCh:  make(chan struct{}),
	}
}

// ready reports whether the event loop is up, without blocking.
// Observing the closed readyCh also orders this goroutine after Run's
// write of u.program, so callers may touch the program once it
// returns true.
func (u *UI) ready() bool {
	select {
	case <-u.readyCh:
		return true
	default:
		return false
	}
}

// Render replaces the on-screen frame with the given lines.
// Thread-safe at any point in the display's life: frames pushed
// before the event loop is up, or after it has quit, are dropped.
func (u *UI) Render(lines []string) {
	if !u.ready() || u.done.Load() {
		return
	}
	u.program.Send(frameMsg(lines))
}

// RequestLine switches the display to a text prompt and blocks until
// the user submits a line. Returns ErrPromptCancelled on Esc and
// ErrClosed if the display quits while waiting (or never starts).
func (u *UI) RequestLine(prompt string) (string, error) {
	select {
	case <-u.readyCh:
	case <-u.quitCh:
		return "", ErrClosed
	}
	if u.done.Load() {
		return "", ErrClosed
	}
	u.program.Send(promptMsg(prompt))

	select {
	case r := <-u.lineCh:
		if !r.submitted {
			return "", ErrPromptCancelled
		}
		return r.value, nil
	case <-u.quitCh:
		return "", ErrClosed
	}
}

// Keys returns single key presses made outside of a prompt.
func (u *UI) Keys() <-chan rune { return u.keyCh }

// WaitReady blocks until the Bubble Tea event loop is running.
func (u *UI) WaitReady() { <-u.readyCh }

// Quit tells Bubble Tea to exit. A no-op before the event loop is up.
func (u *UI) Quit() {
	if u.ready() {
		u.program.Quit()
	}
}

// QuitChan is closed when Run returns.
func (u *UI) QuitChan() <-chan struct{} { return u.quitCh }

// Run starts the Bubble Tea event loop. Blocks until quit.
func (u *UI) Run() error {
	ti := textinput.New()
	ti.PromptStyle = promptStyle
	ti.CharLimit = 40
	ti.Width = 40

	m := model{
		input:   ti,
		keyCh:   u.keyCh,
		lineCh:  u.lineCh,
		readyCh: u.readyCh,
	}

	u.program = tea.NewProgram(m)
	_, err := u.program.Run()
	u.done.Store(true)
	close(u.quitCh)
	return err
}

// ── Bubble Tea model ─────────────────────────────────────────────

type promptReply struct {
	value     string
	submitted bool
}

// Messages.
type frameMsg []string
type promptMsg string

type model struct {
	frame     []string
	prompting bool
	input     textinput.Model
	keyCh     chan<- rune
	lineCh    chan<- promptReply
	readyCh   chan struct{}
}

func (m model) Init() tea.Cmd {
	return signalReady(m.readyCh)
}

func signalReady(ch chan struct{}) tea.Cmd {
	return func() tea.Msg {
		close(ch)
		return nil
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.prompting {
			return m.updatePrompt(msg)
		}
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyRunes:
			// Forward the key to the input controller. Non-blocking:
			// keys mashed faster than the controller drains are lost,
			// same as any terminal.
			select {
			case m.keyCh <- msg.Runes[0]:
			default:
			}
		}
		return m, nil

	case frameMsg:
		m.frame = msg
		return m, nil

	case promptMsg:
		m.prompting = true
		m.input.Prompt = string(msg)
		m.input.Reset()
		m.input.Focus()
		return m, textinput.Blink
	}

	if m.prompting {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// updatePrompt handles keys while the text prompt is on screen.
func (m model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.reply(promptReply{})
		return m, tea.Quit
	case tea.KeyEsc:
		m.prompting = false
		m.input.Blur()
		m.reply(promptReply{})
		return m, nil
	case tea.KeyEnter:
		v := m.input.Value()
		m.prompting = false
		m.input.Blur()
		m.reply(promptReply{value: v, submitted: true})
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// reply delivers the prompt result without ever blocking the event
// loop. lineCh is buffered and each RequestLine consumes exactly one
// reply, so the send only falls through if no caller is waiting.
func (m model) reply(r promptReply) {
	select {
	case m.lineCh <- r:
	default:
	}
}

func (m model) View() string {
	if m.prompting {
		return "\n" + m.input.View() + "\n"
	}
	if len(m.frame) == 0 {
		return "\n"
	}
	return strings.Join(m.frame, "\n") + "\n"
}
