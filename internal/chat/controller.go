package chat

import (
	"context"
	"log/slog"
	"slices"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/zhubert/supportchat/internal/api"
	"github.com/zhubert/supportchat/internal/errors"
	"github.com/zhubert/supportchat/internal/logger"
)

// Service is the remote chat service as the controller uses it.
type Service interface {
	SendMessage(ctx context.Context, text string, sessionID api.SessionID) (*api.ChatResponse, error)
	ListSessions(ctx context.Context) ([]api.ConversationSummary, error)
	GetSession(ctx context.Context, id api.SessionID) ([]api.Message, error)
	DeleteSession(ctx context.Context, id api.SessionID) error
}

const (
	DefaultReloadAttempts = 3
	DefaultReloadBackoff  = 250 * time.Millisecond

	// MaxReloadAttempts bounds the directory polls after a bind.
	MaxReloadAttempts = 10
)

// Controller owns the conversation state. It is not safe for concurrent use;
// all calls happen on the Bubble Tea update goroutine.
type Controller struct {
	svc   Service
	state State
	log   *slog.Logger
	now   func() time.Time

	token     uint64
	epoch     uint64
	reloadGen uint64

	// pendingIndex is where the optimistic user message of the in-flight
	// send sits in the transcript.
	pendingIndex int
	cancel       context.CancelFunc

	reloadAttempts int
	reloadBackoff  time.Duration
}

// Option configures a Controller.
type Option func(*Controller)

// WithReloadPolicy sets how many times the directory is fetched while waiting
// for a freshly bound session to show up, and the initial delay between tries.
// attempts is capped at MaxReloadAttempts.
func WithReloadPolicy(attempts int, backoff time.Duration) Option {
	return func(c *Controller) {
		if attempts > 0 {
			c.reloadAttempts = min(attempts, MaxReloadAttempts)
		}
		if backoff >= 0 {
			c.reloadBackoff = backoff
		}
	}
}

// WithClock replaces the time source used to stamp messages.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// New creates a controller in the fresh state: empty transcript, no active
// session, Idle.
func New(svc Service, opts ...Option) *Controller {
	c := &Controller{
		svc:            svc,
		state:          State{Phase: Idle{}},
		log:            logger.WithComponent("chat"),
		now:            time.Now,
		reloadAttempts: DefaultReloadAttempts,
		reloadBackoff:  DefaultReloadBackoff,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a snapshot that shares nothing with the controller.
func (c *Controller) State() State {
	return c.state.clone()
}

func (c *Controller) IsLoading() bool       { return c.state.IsLoading() }
func (c *Controller) Error() string         { return c.state.Error() }
func (c *Controller) Busy() bool            { return c.state.Busy() }
func (c *Controller) CanCompose() bool      { return c.state.CanCompose() }
func (c *Controller) Active() api.SessionID { return c.state.Active }

// Init starts the background directory load.
func (c *Controller) Init() tea.Cmd {
	return c.ReloadConversations()
}

// StartNewConversation clears the transcript and active session and drops
// any error. A send or select still in flight is cancelled and its result
// will be discarded. An in-flight delete still completes on the service.
func (c *Controller) StartNewConversation() {
	c.epoch++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.state.Messages = nil
	c.state.Active = ""
	c.state.Phase = Idle{}
	c.log.Debug("started new conversation", "epoch", c.epoch)
}

// SwitchService points the controller at another service and starts over
// with an empty directory. Results still arriving from the previous service
// are discarded.
func (c *Controller) SwitchService(svc Service) tea.Cmd {
	c.StartNewConversation()
	c.svc = svc
	c.state.Conversations = nil
	c.state.DirectoryReady = false
	c.log.Info("switched service")
	return c.ReloadConversations()
}

// DismissError clears the banner. It has no effect unless the phase is Failed.
func (c *Controller) DismissError() {
	if _, ok := c.state.Phase.(Failed); ok {
		c.state.Phase = Idle{}
		c.log.Debug("error dismissed")
	}
}

// SendMessage optimistically appends a user message and asks the service for
// a reply. It returns nil when text is empty or too long, or when another
// operation is in flight.
func (c *Controller) SendMessage(text string) tea.Cmd {
	content, err := ValidateDraft(text)
	if err != nil {
		c.log.Debug("send rejected", "error", err)
		return nil
	}
	if c.state.Busy() {
		c.log.Debug("send rejected while busy", "phase", phaseName(c.state.Phase))
		return nil
	}

	token := c.nextToken()
	c.pendingIndex = len(c.state.Messages)
	c.state.Messages = append(c.state.Messages, api.NewMessage(api.RoleUser, content, c.now()))
	c.state.Phase = Sending{Token: token}

	ctx := c.begin()
	svc, epoch, sessionID := c.svc, c.epoch, c.state.Active
	c.log.Debug("sending message", "token", token, "sessionID", sessionID, "length", len(content))

	return func() tea.Msg {
		resp, err := svc.SendMessage(ctx, content, sessionID)
		return SendResultMsg{Token: token, Epoch: epoch, Response: resp, Err: err}
	}
}

// SelectConversation loads the history of id. Selecting the active session,
// or selecting while busy, does nothing.
func (c *Controller) SelectConversation(id api.SessionID) tea.Cmd {
	if id.IsZero() || id == c.state.Active {
		return nil
	}
	if c.state.Busy() {
		c.log.Debug("select rejected while busy", "sessionID", id)
		return nil
	}

	token := c.nextToken()
	c.state.Phase = Selecting{Token: token, ID: id}
	ctx := c.begin()
	svc, epoch := c.svc, c.epoch
	c.log.Debug("selecting conversation", "token", token, "sessionID", id)

	return func() tea.Msg {
		msgs, err := svc.GetSession(ctx, id)
		return SelectResultMsg{Token: token, Epoch: epoch, ID: id, Messages: msgs, Err: err}
	}
}

// DeleteConversation removes id on the service and then reloads the directory.
func (c *Controller) DeleteConversation(id api.SessionID) tea.Cmd {
	if id.IsZero() {
		return nil
	}
	if c.state.Busy() {
		c.log.Debug("delete rejected while busy", "sessionID", id)
		return nil
	}

	token := c.nextToken()
	c.state.Phase = Deleting{Token: token, ID: id}
	svc, epoch := c.svc, c.epoch
	c.log.Debug("deleting conversation", "token", token, "sessionID", id)

	return func() tea.Msg {
		err := svc.DeleteSession(context.Background(), id)
		return DeleteResultMsg{Token: token, Epoch: epoch, ID: id, Err: err}
	}
}

// ReloadConversations fetches the directory once. Any reload or poll still
// in flight is superseded.
func (c *Controller) ReloadConversations() tea.Cmd {
	c.reloadGen++
	return c.fetchDirectory(c.reloadGen, "", 1, 0)
}

// Update applies a result message. It returns follow-up commands, such as a
// directory reload after a session is bound or deleted. Messages the
// controller does not own are ignored.
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case SendResultMsg:
		return c.handleSendResult(msg)
	case SelectResultMsg:
		return c.handleSelectResult(msg)
	case DeleteResultMsg:
		return c.handleDeleteResult(msg)
	case DirectoryMsg:
		return c.handleDirectory(msg)
	}
	return nil
}

func (c *Controller) handleSendResult(msg SendResultMsg) tea.Cmd {
	if msg.Err == nil && msg.Response == nil {
		msg.Err = errors.E(errors.Op("chat.SendMessage"), errors.KindDecode, "service returned no reply")
	}

	p, ok := c.state.Phase.(Sending)
	if !ok || p.Token != msg.Token || msg.Epoch != c.epoch {
		c.log.Debug("discarding stale send result", "token", msg.Token, "epoch", msg.Epoch)
		if msg.Err == nil && !msg.Response.SessionID.IsZero() {
			// The service may have persisted a session nobody is looking at.
			return c.ReloadConversations()
		}
		return nil
	}
	c.finish()

	if msg.Err != nil {
		c.log.Error("send failed", "error", msg.Err)
		if c.pendingIndex < len(c.state.Messages) {
			c.state.Messages = slices.Delete(c.state.Messages, c.pendingIndex, c.pendingIndex+1)
		}
		c.state.Phase = Failed{Message: ErrSendFailed}
		return nil
	}

	reply := api.NewMessage(api.RoleAssistant, msg.Response.Response, c.now())
	c.state.Messages = append(c.state.Messages, reply)
	replyCmd := func() tea.Msg { return ReplyMsg{Message: reply} }

	var reload tea.Cmd
	switch {
	case c.state.Active.IsZero() && !msg.Response.SessionID.IsZero():
		c.state.Active = msg.Response.SessionID
		c.log.Info("bound new session", "sessionID", c.state.Active)
		c.reloadGen++
		reload = c.fetchDirectory(c.reloadGen, c.state.Active, 1, 0)
	case !msg.Response.SessionID.IsZero() && msg.Response.SessionID != c.state.Active:
		c.log.Warn("reply carried a different session id", "active", c.state.Active, "got", msg.Response.SessionID)
	}
	c.state.Phase = Idle{}
	return tea.Batch(replyCmd, reload)
}

func (c *Controller) handleSelectResult(msg SelectResultMsg) tea.Cmd {
	p, ok := c.state.Phase.(Selecting)
	if !ok || p.Token != msg.Token || msg.Epoch != c.epoch {
		c.log.Debug("discarding stale select result", "token", msg.Token, "sessionID", msg.ID)
		return nil
	}
	c.finish()

	if msg.Err != nil {
		c.log.Error("loading conversation failed", "sessionID", msg.ID, "error", msg.Err)
		c.state.Phase = Failed{Message: ErrSelectFailed}
		return nil
	}

	c.state.Messages = slices.Clone(msg.Messages)
	c.state.Active = msg.ID
	c.state.Phase = Idle{}
	logger.WithSession(msg.ID.String()).Debug("conversation loaded", "messages", len(msg.Messages))
	return nil
}

func (c *Controller) handleDeleteResult(msg DeleteResultMsg) tea.Cmd {
	p, ok := c.state.Phase.(Deleting)
	if !ok || p.Token != msg.Token || msg.Epoch != c.epoch {
		// The service already acted on the delete, so the directory is
		// still refreshed even though the local state has moved on.
		c.log.Debug("stale delete result", "token", msg.Token, "sessionID", msg.ID)
		if msg.Err == nil {
			return c.ReloadConversations()
		}
		return nil
	}

	if msg.Err != nil {
		c.log.Error("delete failed", "sessionID", msg.ID, "error", msg.Err)
		c.state.Phase = Failed{Message: ErrDeleteFailed}
		return nil
	}

	if msg.ID == c.state.Active {
		c.state.Messages = nil
		c.state.Active = ""
	}
	c.state.Phase = Idle{}
	c.log.Info("conversation deleted", "sessionID", msg.ID)
	return c.ReloadConversations()
}

func (c *Controller) handleDirectory(msg DirectoryMsg) tea.Cmd {
	if msg.Gen != c.reloadGen {
		c.log.Debug("discarding superseded directory fetch", "gen", msg.Gen, "current", c.reloadGen)
		return nil
	}

	if msg.Err != nil {
		if !msg.Want.IsZero() && msg.Attempt < c.reloadAttempts {
			return c.fetchDirectory(msg.Gen, msg.Want, msg.Attempt+1, c.backoff(msg.Attempt))
		}
		c.state.DirectoryReady = true
		if c.state.Busy() {
			c.log.Warn("directory reload failed while busy", "error", msg.Err)
			return nil
		}
		c.log.Error("directory reload failed", "error", msg.Err)
		c.state.Phase = Failed{Message: ErrReloadFailed}
		return nil
	}

	c.state.Conversations = msg.Conversations
	c.state.DirectoryReady = true
	c.log.Debug("directory loaded", "count", len(msg.Conversations), "attempt", msg.Attempt)

	if !msg.Want.IsZero() && !containsSession(msg.Conversations, msg.Want) {
		if msg.Attempt < c.reloadAttempts {
			return c.fetchDirectory(msg.Gen, msg.Want, msg.Attempt+1, c.backoff(msg.Attempt))
		}
		c.log.Warn("new session never appeared in directory", "sessionID", msg.Want, "attempts", msg.Attempt)
	}
	return nil
}

// fetchDirectory lists sessions after waiting delay. want, when set, is a
// session id expected to appear in the listing.
func (c *Controller) fetchDirectory(gen uint64, want api.SessionID, attempt int, delay time.Duration) tea.Cmd {
	svc := c.svc
	return func() tea.Msg {
		if delay > 0 {
			time.Sleep(delay)
		}
		sessions, err := svc.ListSessions(context.Background())
		return DirectoryMsg{Gen: gen, Want: want, Attempt: attempt, Conversations: sessions, Err: err}
	}
}

// backoff doubles the configured delay after every attempt.
func (c *Controller) backoff(attempt int) time.Duration {
	attempt = max(min(attempt, MaxReloadAttempts), 1)
	return c.reloadBackoff << (attempt - 1)
}

func (c *Controller) nextToken() uint64 {
	c.token++
	return c.token
}

func (c *Controller) begin() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	return ctx
}

func (c *Controller) finish() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func containsSession(list []api.ConversationSummary, id api.SessionID) bool {
	return slices.ContainsFunc(list, func(s api.ConversationSummary) bool { return s.ID == id })
}

func phaseName(p Phase) string {
	switch p.(type) {
	case Idle:
		return "idle"
	case Sending:
		return "sending"
	case Selecting:
		return "selecting"
	case Deleting:
		return "deleting"
	case Failed:
		return "failed"
	}
	return "unknown"
}
