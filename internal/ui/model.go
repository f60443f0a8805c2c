package ui

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/olivier-w/quotebox/internal/cycle"
	"github.com/olivier-w/quotebox/internal/logger"
	"github.com/olivier-w/quotebox/internal/quote"
	"golang.org/x/time/rate"
)

// DefaultRetryInterval is the minimum gap between manual re-fetches.
const DefaultRetryInterval = 2 * time.Second

// QuoteSource supplies the batch shown for a session.
type QuoteSource interface {
	Fetch(ctx context.Context) (quote.Batch, error)
}

// Sharer publishes the current quote.
type Sharer interface {
	Open(q quote.Quote) error
	Copy(q quote.Quote) error
}

// Config wires a Model to its collaborators.
type Config struct {
	Source        QuoteSource
	Controller    *cycle.Controller
	Sharer        Sharer
	FetchTimeout  time.Duration
	RetryInterval time.Duration
	Logger        *slog.Logger
}

// Model is the Bubbletea model for the quotebox TUI. It renders the
// controller's display state and turns controller timers into ticks.
type Model struct {
	ctrl         *cycle.Controller
	source       QuoteSource
	sharer       Sharer
	log          *slog.Logger
	ctx          context.Context
	cancel       context.CancelFunc
	fetchTimeout time.Duration
	retryLimiter *rate.Limiter

	loading bool
	failed  bool

	spinner spinner.Model
	help    help.Model
	keys    keyMap
	fade    fade

	notice    string // transient status message
	noticeSeq int

	width    int
	height   int
	quitting bool
}

// New creates a Model that starts fetching on Init.
func New(cfg Config) Model {
	ctrl := cfg.Controller
	if ctrl == nil {
		ctrl = cycle.New()
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Discard()
	}
	interval := cfg.RetryInterval
	if interval <= 0 {
		interval = DefaultRetryInterval
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = statusStyle

	h := help.New()
	h.Styles.ShortKey = helpKeyStyle
	h.Styles.ShortDesc = helpDescStyle
	h.Styles.ShortSeparator = helpDescStyle

	ctx, cancel := context.WithCancel(context.Background())

	m := Model{
		ctrl:         ctrl,
		source:       cfg.Source,
		sharer:       cfg.Sharer,
		log:          log,
		ctx:          ctx,
		cancel:       cancel,
		fetchTimeout: cfg.FetchTimeout,
		retryLimiter: rate.NewLimiter(rate.Every(interval), 1),
		loading:      true,
		spinner:      s,
		help:         h,
		keys:         defaultKeyMap(),
		fade:         newFade(ctrl.Display().Theme.RGB()),
	}
	m.syncKeys()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		fetchCmd(m.ctx, m.source, m.fetchTimeout),
		tea.SetWindowTitle("quotebox"),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m.handleMsg(msg)
}

func (m Model) handleMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case quotesLoadedMsg:
		m.loading = false
		m.failed = false
		m.ctrl.BatchLoaded(msg.batch)
		m.log.Info("quotes loaded", "count", len(msg.batch))
		// Fade the first quote in from nothing.
		m.fade.opacity = springValue{}
		m.syncKeys()
		return m, m.syncFade()

	case quotesFailedMsg:
		m.loading = false
		m.failed = true
		m.log.Error("failed to load quotes", "err", msg.err)
		m.syncKeys()
		return m, nil

	case transitionMsg:
		next, ok := m.ctrl.Fire(msg.timer)
		cmd := m.syncFade()
		if ok {
			return m, tea.Batch(cmd, timerCmd(next))
		}
		return m, cmd

	case frameMsg:
		if !m.fade.step() {
			m.fade.animating = false
			return m, nil
		}
		return m, frameCmd()

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case shareDoneMsg:
		switch {
		case msg.err != nil:
			m.log.Warn("share failed", "action", msg.action, "err", msg.err)
			m.notice = "Share failed"
		case msg.action == shareCopy:
			m.notice = "Copied share link"
		default:
			m.notice = "Opened share link"
		}
		m.noticeSeq++
		return m, noticeFadeCmd(m.noticeSeq)

	case noticeFadeMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.ctrl.Close()
		m.cancel()
		return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
	case key.Matches(msg, m.keys.Advance):
		return m, m.advance()
	case key.Matches(msg, m.keys.Share):
		return m, m.shareCmd(shareOpen)
	case key.Matches(msg, m.keys.Copy):
		return m, m.shareCmd(shareCopy)
	case key.Matches(msg, m.keys.Retry):
		return m.retry()
	}
	return m, nil
}

func (m *Model) advance() tea.Cmd {
	prev := m.ctrl.Display().Theme
	t, ok := m.ctrl.Advance()
	if th := m.ctrl.Display().Theme; th != prev {
		m.fade.retheme(th.RGB())
	}

	var cmds []tea.Cmd
	if ok {
		cmds = append(cmds, timerCmd(t))
	}
	cmds = append(cmds, m.syncFade())
	return tea.Batch(cmds...)
}

func (m Model) retry() (Model, tea.Cmd) {
	if !m.failed || m.loading {
		return m, nil
	}
	if !m.retryLimiter.Allow() {
		m.log.Debug("retry throttled")
		return m, nil
	}
	m.failed = false
	m.loading = true
	m.syncKeys()
	m.log.Info("retrying quote fetch")
	return m, tea.Batch(m.spinner.Tick, fetchCmd(m.ctx, m.source, m.fetchTimeout))
}

func (m Model) shareCmd(action shareAction) tea.Cmd {
	d := m.ctrl.Display()
	if !d.HasQuote || m.sharer == nil {
		return nil
	}
	s, q := m.sharer, d.Quote
	return func() tea.Msg {
		var err error
		if action == shareCopy {
			err = s.Copy(q)
		} else {
			err = s.Open(q)
		}
		return shareDoneMsg{action: action, err: err}
	}
}

// syncFade points the opacity spring at the controller's visibility and
// starts the frame loop if anything needs to move.
func (m *Model) syncFade() tea.Cmd {
	d := m.ctrl.Display()
	m.fade.show(d.HasQuote && d.Visibility == cycle.Visible)
	if m.fade.animating || m.fade.settled() {
		return nil
	}
	m.fade.animating = true
	return frameCmd()
}

func (m *Model) syncKeys() {
	hasQuote := m.ctrl.Display().HasQuote
	m.keys.Share.SetEnabled(hasQuote && m.sharer != nil)
	m.keys.Copy.SetEnabled(hasQuote && m.sharer != nil)
	m.keys.Retry.SetEnabled(m.failed && !m.loading)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	w := m.width
	if w < 30 {
		w = 60
	}
	card := m.renderCard(min(w-4, maxCardWidth))
	if m.height <= 0 {
		return "\n" + card + "\n"
	}

	bg := lipgloss.Color(m.fade.theme().Hex())
	return lipgloss.Place(w, m.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(bg))
}

func (m Model) renderCard(width int) string {
	inner := width - cardStyle.GetHorizontalPadding()
	if inner < 10 {
		inner = 10
	}
	d := m.ctrl.Display()
	fg := lipgloss.Color(m.fade.text(cardRGB).Hex())

	var b strings.Builder
	b.WriteString(headerStyle.Render("quotebox"))
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(m.spinner.View())
		b.WriteString(statusStyle.Render(" Fetching quotes..."))
		b.WriteString("\n\n")
	case d.HasQuote:
		b.WriteString(quoteStyle.Width(inner).Foreground(fg).Render(d.Quote.Text))
		b.WriteString("\n\n")
		b.WriteString(authorStyle.Width(inner).Foreground(fg).Render("- " + d.Quote.Author))
		b.WriteString("\n\n")
		if m.sharer != nil {
			b.WriteString(shareStyle.Foreground(fg).Render("share this quote"))
			b.WriteString("\n\n")
		}
		if n := m.ctrl.Len(); n > 0 {
			b.WriteString(statusStyle.Render(renderRoundBar(m.ctrl.Position(), n, inner)))
			b.WriteString("\n\n")
		}
	}

	b.WriteString(m.help.View(m.keys))
	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(noticeStyle.Render(m.notice))
	}

	accent := lipgloss.Color(m.fade.theme().Hex())
	return cardStyle.Width(width).BorderForeground(accent).Render(b.String())
}
