// Package ui renders download progress with bubbletea. A Model owns one job
// per URL and runs them sequentially through a caller-supplied runner.
package ui

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"ytgrab/internal/progress"
	"ytgrab/internal/util/format"
)

// JobRunner executes one download. Progress flows back through rep; the
// final Result must always be emitted.
type JobRunner func(ctx context.Context, jobID, url string, rep progress.Reporter)

type startNextMsg struct{}

type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	urls     []string
	runner   JobRunner
	jobOrder []string
	jobs     map[string]*jobState
	next     int // next index in urls to start
	running  bool

	width, height int
	styles        Styles

	// Reporter events cross goroutines through this channel.
	eventCh chan tea.Msg
}

func NewModel(ctx context.Context, urls []string, runner JobRunner) Model {
	c, cancel := context.WithCancel(ctx)
	sty := defaultStyles()

	jobs := make(map[string]*jobState, len(urls))
	order := make([]string, 0, len(urls))
	for i, u := range urls {
		id := "job-" + strconv.Itoa(i)
		js := newJobState(id, u, sty)
		jobs[id] = &js
		order = append(order, id)
	}

	return Model{
		ctx:      c,
		cancel:   cancel,
		urls:     urls,
		runner:   runner,
		jobs:     jobs,
		jobOrder: order,
		styles:   sty,
		eventCh:  make(chan tea.Msg, 256),
	}
}

func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	for _, id := range m.jobOrder {
		cmds = append(cmds, m.jobs[id].spinner.Tick)
	}
	cmds = append(cmds,
		m.listenEventsCmd(),
		func() tea.Msg { return startNextMsg{} },
	)
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.cancel()
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case startNextMsg:
		return m.startNext()

	case jobUpdateMsg:
		u := msg.U
		if js, ok := m.jobs[u.JobID]; ok {
			js.stage = u.Stage
			js.percent = u.Percent
			js.status = u.Message
			if u.Speed != nil {
				js.speed = *u.Speed
			}
			if u.ETA != nil {
				js.eta = u.ETA.String()
			}
		}

	case jobResultMsg:
		r := msg.R
		if js, ok := m.jobs[r.JobID]; ok {
			js.done = true
			js.err = r.Err
			js.speed, js.eta = "", ""
			if r.Err == nil {
				js.stage = progress.StageCompleted
				js.percent = 100
				js.outputPath = r.OutputPath
				js.bytes = r.Bytes
				if r.OutputPath != "" {
					js.status = fmt.Sprintf("Saved: %s (%s)",
						filepath.Base(r.OutputPath), format.HumanizeBytes(r.Bytes))
				} else {
					js.status = "Completed"
				}
			} else {
				js.stage = progress.StageError
				js.status = r.Err.Error()
				js.percent = -1
			}
			m.running = false
			next, cmd := m.startNext()
			return next, tea.Batch(m.listenEventsCmd(), cmd)
		}

	case allDoneMsg:
		return m, tea.Quit
	}

	var cmds []tea.Cmd
	for _, id := range m.jobOrder {
		js := m.jobs[id]
		var c tea.Cmd
		js.spinner, c = js.spinner.Update(msg)
		if c != nil {
			cmds = append(cmds, c)
		}
	}
	cmds = append(cmds, m.listenEventsCmd())
	return m, tea.Batch(cmds...)
}

// startNext launches the next queued job. Jobs run one at a time; a shared
// downstream link gains little from parallel transfers and the output is
// easier to follow.
func (m Model) startNext() (Model, tea.Cmd) {
	select {
	case <-m.ctx.Done():
		return m, tea.Quit
	default:
	}
	if m.running {
		return m, nil
	}
	if m.next >= len(m.urls) {
		return m, tea.Quit
	}

	idx := m.next
	jobID := m.jobOrder[idx]
	url := m.urls[idx]
	m.next++
	m.running = true

	if js := m.jobs[jobID]; js != nil {
		js.status = "Fetching metadata"
		js.stage = progress.StageMetadata
	}

	rep := teaReporter{ch: m.eventCh}
	runner := m.runner
	ctx := m.ctx
	return m, func() tea.Msg {
		go runner(ctx, jobID, url, rep)
		return nil
	}
}

// FailedJobs returns the final error of each job that did not complete.
func (m Model) FailedJobs() []error {
	var errs []error
	for _, id := range m.jobOrder {
		if js := m.jobs[id]; js != nil && js.err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", js.url, js.err))
		}
	}
	return errs
}

func (m Model) listenEventsCmd() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
			return allDoneMsg{}
		case msg := <-m.eventCh:
			return msg
		}
	}
}

type teaReporter struct {
	ch chan tea.Msg
}

func (r teaReporter) Update(u progress.Update) {
	// Terminal stage updates must not be dropped.
	if u.Stage == progress.StageCompleted || u.Stage == progress.StageError {
		r.ch <- jobUpdateMsg{U: u}
		return
	}
	select {
	case r.ch <- jobUpdateMsg{U: u}:
	default:
	}
}

func (r teaReporter) Result(res progress.Result) {
	r.ch <- jobResultMsg{R: res}
}
