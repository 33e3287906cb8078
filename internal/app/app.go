package app

import (
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"github.com/zhubert/supportchat/internal/api"
	"github.com/zhubert/supportchat/internal/chat"
	"github.com/zhubert/supportchat/internal/config"
	"github.com/zhubert/supportchat/internal/logger"
	"github.com/zhubert/supportchat/internal/ui"
)

// Focus represents which panel is focused
type Focus int

const (
	FocusDirectory Focus = iota
	FocusChat
)

// String returns a human-readable name for the focus
func (f Focus) String() string {
	switch f {
	case FocusDirectory:
		return "directory"
	case FocusChat:
		return "chat"
	default:
		return "unknown"
	}
}

// Model is the main Bubble Tea model
type Model struct {
	config  *config.Config
	version string
	client  *api.Client
	ctrl    *chat.Controller
	log     *slog.Logger

	header    *ui.Header
	footer    *ui.Footer
	directory *ui.Directory
	feed      *ui.Feed
	composer  *ui.Composer
	modal     *ui.Modal

	width  int
	height int
	focus  Focus

	// windowFocused is false while the terminal reports it lost focus.
	windowFocused bool
	flashTicking  bool
}

// Option configures the model.
type Option func(*Model)

// WithVersion sets the version shown in the help dialog.
func WithVersion(version string) Option {
	return func(m *Model) { m.version = version }
}

// WithClient replaces the service client built from the config.
func WithClient(client *api.Client) Option {
	return func(m *Model) { m.client = client }
}

// New creates the root model. The saved theme is applied before any
// component renders.
func New(cfg *config.Config, opts ...Option) *Model {
	if savedTheme := cfg.GetTheme(); savedTheme != "" {
		ui.SetThemeByName(savedTheme)
	}

	m := &Model{
		config:        cfg,
		log:           logger.WithComponent("app"),
		header:        ui.NewHeader(),
		footer:        ui.NewFooter(),
		directory:     ui.NewDirectory(),
		feed:          ui.NewFeed(),
		composer:      ui.NewComposer(),
		modal:         ui.NewModal(),
		focus:         FocusChat,
		windowFocused: true,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.client == nil {
		m.client = newClient(cfg)
	}
	m.ctrl = newController(m.client, cfg)

	m.composer.SetFocused(true)
	m.sync()
	return m
}

func newClient(cfg *config.Config) *api.Client {
	return api.NewClient(cfg.GetAPIURL(),
		api.WithUserID(cfg.GetUserID()),
		api.WithTimeout(cfg.RequestTimeout()),
	)
}

func newController(client *api.Client, cfg *config.Config) *chat.Controller {
	attempts, backoff := cfg.ReloadPolicy()
	return chat.New(client, chat.WithReloadPolicy(attempts, backoff))
}

// Init loads the directory and checks the service health.
func (m *Model) Init() tea.Cmd {
	m.log.Info("starting", "apiURL", m.client.BaseURL(), "version", m.version)
	return tea.Batch(
		m.ctrl.Init(),
		m.checkHealth(),
		m.composer.SetFocused(m.focus == FocusChat),
	)
}

// State returns the controller snapshot.
func (m *Model) State() chat.State {
	return m.ctrl.State()
}

// Focus returns the focused panel.
func (m *Model) Focus() Focus {
	return m.focus
}

// Client returns the service client in use.
func (m *Model) Client() *api.Client {
	return m.client
}

// sync pushes the controller state into every view.
func (m *Model) sync() tea.Cmd {
	st := m.ctrl.State()

	m.directory.SetConversations(st.Conversations, st.Active, st.DirectoryReady)
	m.header.SetActive(st.Active)
	m.composer.SetDisabled(!st.CanCompose(), st.Error() != "")
	m.footer.SetContext(m.footerContext())
	m.layoutChat()
	return m.feed.SetTranscript(st.Messages, st.IsLoading())
}

// setFocus moves focus between the directory and the chat pane.
func (m *Model) setFocus(f Focus) tea.Cmd {
	if f == FocusDirectory && ui.GetViewContext().SidebarHidden() {
		f = FocusChat
	}
	m.focus = f
	m.directory.SetFocused(f == FocusDirectory)
	cmd := m.composer.SetFocused(f == FocusChat)
	m.sync()
	m.log.Debug("focus changed", "focus", f)
	return cmd
}
