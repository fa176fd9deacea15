package update

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/weekly/internal/config"
	"github.com/sandeepkv93/weekly/internal/logging"
	"github.com/sandeepkv93/weekly/internal/model"
	"github.com/sandeepkv93/weekly/internal/planner"
	"github.com/sandeepkv93/weekly/internal/storage"
)

type Mode string

const (
	ModeBrowse  Mode = "browse"
	ModeAdding  Mode = "adding"
	ModePalette Mode = "palette"
)

// minBoardRows keeps short weeks from collapsing the board.
const minBoardRows = 5

const (
	maxNotifications    = 40
	recentNotifications = 5
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	PrevWeek    string
	NextWeek    string
	CurrentWeek string
	Help        string
	Quit        string
}

// Cursor addresses a column of the displayed week and a task slot in it.
type Cursor struct {
	Day   int
	Index int
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type Model struct {
	Board         planner.Board
	Cursor        Cursor
	Mode          Mode
	Target        Cursor
	MouseDragging bool
	Status        StatusBar
	Keys          GlobalKeyMap
	HelpVisible   bool
	Quitting      bool
	Notifications []Notification
	Width         int
	Height        int
	LastStats     *storage.SessionSummary

	columnWidth   int
	mouse         bool
	today         model.DateKey
	revision      int64
	now           func() time.Time
	logger        *log.Logger
	repo          storage.Repository
	markdownStyle string

	addInput     textinput.Model
	commandInput textinput.Model
	weekProgress progress.Model
	helpModel    help.Model
	helpViewport viewport.Model
}

// Options wires a model to its collaborators. Zero values fall back to
// defaults: wall clock, discarded logs, no session mirror.
type Options struct {
	Config        config.Config
	Anchor        time.Time
	Now           func() time.Time
	Logger        *log.Logger
	Repo          storage.Repository
	MarkdownStyle string
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// DaySyncedMsg reports a finished mirror write.
type DaySyncedMsg struct {
	Key      model.DateKey
	Revision int64
	Applied  bool
}

type StatsMsg struct {
	Summary storage.SessionSummary
	Week    []storage.DaySummary
}

// DayChangedMsg fires at local midnight.
type DayChangedMsg struct {
	At time.Time
}

func NewModel() Model {
	return NewModelWithOptions(Options{Config: config.Default()})
}

func NewModelWithOptions(opts Options) Model {
	cfg := opts.Config
	if cfg.ColumnWidth == 0 {
		cfg = config.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	anchor := opts.Anchor
	if anchor.IsZero() {
		anchor = now()
	}
	style := opts.MarkdownStyle
	if style == "" {
		style = "notty"
	}

	m := Model{
		Board:  planner.NewBoard(anchor),
		Mode:   ModeBrowse,
		Target: Cursor{Index: -1},
		Keys: GlobalKeyMap{
			PrevWeek:    cfg.Keys.PrevWeek,
			NextWeek:    cfg.Keys.NextWeek,
			CurrentWeek: cfg.Keys.CurrentWeek,
			Help:        cfg.Keys.Help,
			Quit:        cfg.Keys.Quit,
		},
		columnWidth:   cfg.ColumnWidth,
		mouse:         cfg.Mouse,
		today:         model.KeyOf(now()),
		now:           now,
		logger:        logger,
		repo:          opts.Repo,
		markdownStyle: style,
	}
	if idx := m.Board.Week().IndexOf(m.today); idx >= 0 {
		m.Cursor.Day = idx
	}
	m.initBubbleComponents()
	m.syncBubbleData()
	return m
}

func (m *Model) initBubbleComponents() {
	m.addInput = textinput.New()
	m.addInput.Prompt = "add> "
	m.addInput.Placeholder = "Add a task"
	m.addInput.CharLimit = 256
	m.addInput.Width = 48

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.weekProgress = progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	m.weekProgress.Width = 24

	m.helpModel = help.New()
	m.helpViewport = viewport.New(72, 14)
}

func (m *Model) syncBubbleData() {
	if m.Width > 0 {
		m.helpViewport.Width = m.Width - 4
		m.helpModel.Width = m.Width
	}
	if m.Height > 0 {
		m.helpViewport.Height = max(6, m.Height/3)
	}
	m.clampCursor()
}
