package viz

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/perturb/internal/energy"
)

// SampleMsg reports one finished sample.
type SampleMsg struct {
	Index int
	X, Y  float64
	Err   error
}

// DoneMsg carries the outcome of the sweep.
type DoneMsg struct {
	Result *energy.Result
	Err    error
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// LiveModel follows a running sweep.
type LiveModel struct {
	preset   string
	total    int
	done     int
	failed   int
	lastErr  error
	frame    int
	start    time.Time
	elapsed  time.Duration
	width    int
	cancel   context.CancelFunc
	result   *energy.Result
	err      error
	finished bool
	plotOpts PlotOptions
}

func NewLiveModel(preset string, total int, opts PlotOptions, cancel context.CancelFunc) LiveModel {
	return LiveModel{
		preset:   preset,
		total:    total,
		start:    time.Now(),
		width:    80,
		cancel:   cancel,
		plotOpts: opts,
	}
}

func (m LiveModel) Init() tea.Cmd { return tick() }

func (m LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if !m.finished && m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case SampleMsg:
		m.done++
		if msg.Err != nil {
			m.failed++
			m.lastErr = msg.Err
		}
	case DoneMsg:
		m.finished = true
		m.result = msg.Result
		m.err = msg.Err
		m.elapsed = time.Since(m.start)
		if msg.Result != nil {
			m.done = msg.Result.Series.Len()
			m.failed = msg.Result.Series.InvalidCount()
		}
	case tickMsg:
		if m.finished {
			return m, nil
		}
		m.frame++
		m.elapsed = time.Since(m.start)
		return m, tick()
	}
	return m, nil
}

func (m LiveModel) View() string {
	var b strings.Builder

	b.WriteString(Title.Render("perturb live: " + m.preset))
	b.WriteString("\n\n")

	percent := 0.0
	if m.total > 0 {
		percent = float64(m.done) / float64(m.total)
	}
	state := StatusRunning.Render(Spinner(m.frame) + " evaluating")
	if m.finished {
		state = StatusRunning.Render("done")
		if m.err != nil {
			state = StatusFailed.Render("stopped: " + m.err.Error())
		}
	}
	b.WriteString(state + "\n")
	b.WriteString(ProgressBar(percent, 40))
	b.WriteString(fmt.Sprintf(" %d/%d\n", m.done, m.total))
	b.WriteString(Row("failed", fmt.Sprintf("%d", m.failed)) + "\n")
	b.WriteString(Row("elapsed", m.elapsed.Round(time.Millisecond).String()) + "\n")
	if m.lastErr != nil {
		b.WriteString(Subtle.Render("last failure: "+m.lastErr.Error()) + "\n")
	}

	if m.finished && m.result != nil {
		opts := m.plotOpts
		opts.Unit = m.result.Unit
		opts.Reference = m.result.Analytical
		opts.HasReference = m.result.HasAnalytical
		if m.width > 20 && m.width-12 < opts.Width {
			opts.Width = m.width - 12
		}
		if plot, err := PlotSeries(m.result.Series, opts); err == nil {
			b.WriteString("\n" + plot + "\n")
		}
		if peak, ok := m.result.Metrics["peak"]; ok {
			b.WriteString(Row("peak", FormatValue(peak, m.result.Unit)) + "\n")
		}
	}

	b.WriteString("\n" + KeyHint.Render("q quit"))
	return Panel.Render(b.String())
}

// Result returns the finished sweep, if any.
func (m LiveModel) Result() (*energy.Result, error) { return m.result, m.err }

type programObserver struct{ p *tea.Program }

func (o programObserver) OnSample(index int, x, y float64, err error) {
	o.p.Send(SampleMsg{Index: index, X: x, Y: y, Err: err})
}

// RunLive evaluates ev while showing progress. Quitting early cancels the
// sweep; the returned result is nil in that case.
func RunLive(ctx context.Context, ev *energy.Evaluator, preset string) (*energy.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts := DefaultPlotOptions()
	opts.Caption = preset
	model := NewLiveModel(preset, len(ev.Domain()), opts, cancel)

	p := tea.NewProgram(model, tea.WithAltScreen())
	ev.AddObserver(programObserver{p: p})

	go func() {
		res, err := ev.Run(ctx)
		p.Send(DoneMsg{Result: res, Err: err})
	}()

	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("live view: %w", err)
	}
	lm, ok := final.(LiveModel)
	if !ok || !lm.finished {
		return nil, context.Canceled
	}
	return lm.Result()
}
