package core

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"regexp"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/wickhamj/banterbot/internal/advice"
	"github.com/wickhamj/banterbot/internal/bot"
	"github.com/wickhamj/banterbot/internal/feed"
	"github.com/wickhamj/banterbot/internal/logger"
	"github.com/wickhamj/banterbot/internal/music"
	"github.com/wickhamj/banterbot/internal/schedule"
	"github.com/wickhamj/banterbot/internal/store"
	"github.com/wickhamj/banterbot/pkg/constants"
)

// Engine consumes inbound chat messages one at a time and routes each through
// the gate checks, the pending-confirmation slot, the music sub-router and
// the ordered rule registry.
//
// All engine state except the credential store is touched only by the single
// dispatch goroutine. The credential store is shared with the auth HTTP
// surface and with any client call that observes a 401; it carries its own
// lock.
type Engine struct {
	config   *Config
	chat     bot.Adapter
	creds    *music.Credentials
	player   *music.Client
	quotes   *store.ListStore
	features *store.ListStore
	news     *feed.Client
	oracle   *advice.Client

	registry     *Registry
	alwaysOn     []Rule
	musicTrigger *regexp.Regexp
	pending      *Pending
	throttle     *DailyThrottle

	mentionTag  string
	messageChan chan bot.Message
	scheduler   *schedule.Scheduler
	cancel      context.CancelFunc

	apiMu     sync.Mutex
	apiServer *http.Server
}

// NewEngine creates an engine wired to the given chat adapter.
func NewEngine(config *Config, chat bot.Adapter) *Engine {
	creds := music.NewCredentials()

	e := &Engine{
		config:       config,
		chat:         chat,
		creds:        creds,
		player:       music.NewClient(config.Music.APIBaseURL, creds),
		quotes:       store.NewListStore(config.Quotes.File),
		features:     store.NewListStore(config.Features.File),
		oracle:       advice.NewClient(config.Advice.URL),
		pending:      &Pending{},
		throttle:     NewDailyThrottle(config.Quotes.DailyLimit),
		mentionTag:   "<@" + config.Slack.BotUserID + ">",
		messageChan:  make(chan bot.Message, constants.MessageChannelBufferSize),
		musicTrigger: regexp.MustCompile(`play|dj|what song is this|next song|previous song|music status|shuffle|change volume to|party playlist`),
	}

	if config.Feed.URL != "" {
		e.news = feed.NewClient(config.Feed.URL)
	}

	e.registerRules()
	return e
}

// registerRules builds the ordered pattern registry. Several triggers share
// vocabulary ("quote" vs "just said", "news" vs greetings), so the order here
// is the disambiguation mechanism. Keep it stable.
func (e *Engine) registerRules() {
	r := &Registry{}
	r.Add("news", `company`, `latest|update|status|happening|news`, e.handleNewsUpdate)
	r.Add("fact", `random fact|tell me a fact`, "", e.handleRandomFact)
	r.Add("help", `/help`, "", e.handleHelp)
	r.Add("pubs", `where should we go`, "", e.handlePubPick)
	r.Add("team", `favourite team`, "", e.handleFavouriteTeam)
	r.Add("quote-request", `quote`, `give|please|pls|say a|random`, e.handleRequestedQuote)
	r.Add("dance", `dance`, "", e.handleDance)
	r.Add("quote-add", `just said`, "", e.handleQuoteAdd)
	r.Add("tickets", `tickets|ticket queue`, "", e.handleTicketQueue)
	r.Add("snacks", `snack run|snacks`, "", e.handleSnackRun)
	r.Add("joke", `tell me a joke|a joke please|tell us a joke`, "", e.handleJoke)
	r.Add("time-remaining", `how long left|how long is left`, "", e.handleTimeRemaining)
	r.Add("drink", `favourite drink`, "", e.handleFavouriteDrink)
	r.Add("affection", `love you`, "", e.handleAffection)
	r.Add("image", `random image`, "", e.handleRandomImage)
	r.Add("owo", `owo`, "", e.handleOwo)
	r.Add("favourite-person", `who is your favourite|who do you like|favourite person`, "", e.handleFavouritePerson)
	r.Add("feature-request", `feature request`, "", e.handleFeatureRequest)
	r.Add("wisdom", `advice|words of wisdom`, "", e.handleWisdom)
	r.Add("clarify", `who are you`, "", e.handleClarifySelf)
	r.Add("greeting", `hello|hi|yo|hey|bonjour|ola`, "", e.handleGreeting)
	e.registry = r

	// Always-on triggers fire before exclusive resolution and never block the
	// rest of the flow.
	e.alwaysOn = []Rule{
		{
			Name:    "sidekick-cameo",
			Trigger: regexp.MustCompile(`summon the sidekick`),
			Handler: e.handleSidekickCameo,
		},
	}
}

// Run starts the API server, the chat adapter and the dispatch loop. It
// blocks until ctx is cancelled or the chat connection closes.
func (e *Engine) Run(ctx context.Context) error {
	logger.Info("starting-banterbot-engine")

	ctx, cancel := context.WithCancel(ctx)
	e.cancel = cancel

	go e.startAPIServer()

	if err := e.startJobs(); err != nil {
		return err
	}

	chatErr := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.WithField("panic", r).Error("chat-adapter-panic-recovered")
			}
		}()
		chatErr <- e.chat.Start(e.HandleChatMessage)
	}()

	for {
		select {
		case <-ctx.Done():
			logger.Info("dispatch-loop-shutting-down")
			return nil
		case err := <-chatErr:
			if err != nil {
				return fmt.Errorf("chat adapter stopped: %w", err)
			}
			return nil
		case msg := <-e.messageChan:
			e.dispatch(msg)
		}
	}
}

// startJobs wires the recurring jobs: the midnight quote-throttle reset and,
// when configured, the feed poster.
func (e *Engine) startJobs() error {
	scheduler, err := schedule.NewScheduler()
	if err != nil {
		return err
	}
	e.scheduler = scheduler

	if err := scheduler.AddJob("quote-throttle-reset", "0 0 * * *", e.throttle.Reset); err != nil {
		return err
	}

	if e.config.Feed.PollCron != "" && e.news != nil {
		if err := scheduler.AddJob("feed-poll", e.config.Feed.PollCron, e.postFeedDigest); err != nil {
			return err
		}
	}
	return nil
}

// HandleChatMessage is the callback the chat adapter delivers events through.
func (e *Engine) HandleChatMessage(msg bot.Message) {
	e.messageChan <- msg
}

// dispatch routes one inbound message. Errors and panics from handlers are
// terminal here; each dispatch is independent of the next.
func (e *Engine) dispatch(msg bot.Message) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithFields(logrus.Fields{
				"channel": msg.Channel,
				"panic":   r,
			}).Error("dispatch-panic-recovered")
		}
	}()

	// Gate: real user messages with text only
	if msg.Type != "message" || msg.SubType == "bot_message" || msg.Text == "" {
		return
	}

	// Gate: the message must mention the bot
	if !strings.Contains(msg.Text, e.mentionTag) {
		return
	}

	// Gate: whitelisted channels only, with an audit entry
	if !e.config.IsWhitelistedChannel(msg.Channel) {
		logger.WithFields(logrus.Fields{
			"channel": msg.Channel,
			"user":    msg.User,
			"ts":      msg.Timestamp,
		}).Warn("message-from-non-whitelisted-channel")
		return
	}

	logger.WithFields(logrus.Fields{
		"channel": msg.Channel,
		"user":    msg.User,
		"ts":      msg.Timestamp,
	}).Info("new-message-received")

	// VIP acknowledgement is additive, never exclusive
	if e.config.Security.VIPUserID != "" && msg.User == e.config.Security.VIPUserID {
		ack := vipAcks[rand.Intn(len(vipAcks))]
		e.post(msg.Channel, fmt.Sprintf("<@%s> %s", msg.User, ack))
	}

	text := strings.ToLower(msg.Text)

	for _, rule := range e.alwaysOn {
		if rule.Trigger.MatchString(text) {
			e.invoke(rule, msg, text)
		}
	}

	// An outstanding confirmation consumes this message whole; the slot is
	// cleared before the answer is interpreted so a handler failure cannot
	// leave it armed.
	if payload, armed := e.pending.Take(); armed {
		e.runConfirmation(msg, text, payload)
		return
	}

	if e.musicTrigger.MatchString(text) {
		if e.config.IsMusicChannel(msg.Channel) {
			e.dispatchMusic(msg, text)
			return
		}
		e.post(msg.Channel, fmt.Sprintf("<@%s> please use the music commands in a music channel... :male-detective:", msg.User))
		// Deliberate fallthrough: unrelated keywords in the same message
		// still get served by the generic rules below.
	}

	if rule, ok := e.registry.Resolve(text); ok {
		e.invoke(rule, msg, text)
	}
}

// invoke runs one handler, absorbing its error or panic.
func (e *Engine) invoke(rule Rule, msg bot.Message, text string) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithFields(logrus.Fields{
				"rule":  rule.Name,
				"panic": r,
			}).Error("handler-panic-recovered")
		}
	}()

	if err := rule.Handler(msg, text); err != nil {
		logger.WithFields(logrus.Fields{
			"rule":    rule.Name,
			"channel": msg.Channel,
			"error":   err,
		}).Error("handler-failed")
	}
}

// post sends a plain reply, logging delivery failures.
func (e *Engine) post(channel, text string) {
	e.postAs(channel, text, nil)
}

// postAs sends a reply with display overrides or attachments.
func (e *Engine) postAs(channel, text string, opts *bot.PostOptions) {
	if err := e.chat.PostMessage(channel, text, opts); err != nil {
		logger.WithFields(logrus.Fields{
			"channel": channel,
			"error":   err,
		}).Error("failed-to-post-message")
	}
}

// postFeedDigest posts the newest feed items into the configured channel.
func (e *Engine) postFeedDigest() {
	items, err := e.news.Latest(e.config.Feed.Limit)
	if err != nil {
		logger.WithField("error", err).Error("feed-poll-failed")
		return
	}
	if len(items) == 0 {
		return
	}

	var b strings.Builder
	b.WriteString(":newspaper: latest from HQ:\n")
	for _, item := range items {
		fmt.Fprintf(&b, "> <%s|%s>\n", item.URL, item.Title)
	}
	e.post(e.config.Feed.Channel, b.String())
}

// Stop shuts the engine down: scheduler first, then the API server and the
// chat connection.
func (e *Engine) Stop() error {
	logger.Info("stopping-banterbot-engine")

	if e.cancel != nil {
		e.cancel()
	}

	if e.scheduler != nil {
		if err := e.scheduler.Stop(); err != nil {
			logger.WithField("error", err).Error("failed-to-stop-scheduler")
		}
	}

	e.stopAPIServer()

	if err := e.chat.Stop(); err != nil {
		return fmt.Errorf("failed to stop chat adapter: %w", err)
	}

	logger.Info("engine-stopped")
	return nil
}
