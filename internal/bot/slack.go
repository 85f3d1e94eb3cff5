package bot

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/slack-go/slack"

	"github.com/wickhamj/banterbot/internal/logger"
)

// slackPoster is the slice of the Slack client the adapter posts through.
// Narrowed to an interface so tests can substitute a recorder.
type slackPoster interface {
	PostMessage(channelID string, options ...slack.MsgOption) (string, string, error)
}

// SlackBot implements Adapter for Slack over the RTM websocket.
type SlackBot struct {
	mu      sync.RWMutex
	token   string
	client  slackPoster
	rtm     *slack.RTM
	handler func(Message)
}

// NewSlackBot creates a new Slack adapter. The connection is established in
// Start.
func NewSlackBot(token string) *SlackBot {
	return &SlackBot{token: token}
}

// Start connects to Slack RTM and delivers message events to the handler.
// It blocks until the RTM event stream is closed by Stop or by the platform.
func (s *SlackBot) Start(handler func(Message)) error {
	s.mu.Lock()
	s.handler = handler
	s.mu.Unlock()

	logger.WithField("token", maskSecret(s.token)).Info("starting-slack-adapter")

	api := slack.New(s.token)
	rtm := api.NewRTM()

	s.mu.Lock()
	if s.client == nil {
		s.client = api
	}
	s.rtm = rtm
	s.mu.Unlock()

	go rtm.ManageConnection()

	for ev := range rtm.IncomingEvents {
		switch data := ev.Data.(type) {
		case *slack.ConnectedEvent:
			logger.WithFields(logrus.Fields{
				"team": data.Info.Team.Name,
				"user": data.Info.User.ID,
			}).Info("slack-rtm-connected")

		case *slack.MessageEvent:
			s.deliver(Message{
				Type:      data.Type,
				SubType:   data.SubType,
				Text:      data.Text,
				Channel:   data.Channel,
				User:      data.User,
				Timestamp: data.Timestamp,
			})

		case *slack.RTMError:
			// Transport reconnection is the RTM client's own responsibility;
			// log only.
			logger.WithField("error", data.Error()).Error("slack-rtm-error")

		case *slack.InvalidAuthEvent:
			return fmt.Errorf("slack authentication failed: invalid token")
		}
	}

	logger.Info("slack-event-stream-closed")
	return nil
}

func (s *SlackBot) deliver(msg Message) {
	s.mu.RLock()
	handler := s.handler
	s.mu.RUnlock()

	if handler != nil {
		handler(msg)
	}
}

// PostMessage sends a message to a Slack channel, applying any display
// overrides and attachments from opts.
func (s *SlackBot) PostMessage(channel, text string, opts *PostOptions) error {
	s.mu.RLock()
	client := s.client
	s.mu.RUnlock()

	if client == nil {
		return fmt.Errorf("slack adapter not started")
	}

	options := []slack.MsgOption{slack.MsgOptionText(text, false)}
	if opts != nil {
		if opts.Username != "" {
			options = append(options, slack.MsgOptionUsername(opts.Username))
		}
		if opts.IconEmoji != "" {
			options = append(options, slack.MsgOptionIconEmoji(opts.IconEmoji))
		}
		if len(opts.Attachments) > 0 {
			attachments := make([]slack.Attachment, 0, len(opts.Attachments))
			for _, a := range opts.Attachments {
				attachments = append(attachments, slack.Attachment{
					Title:    a.Title,
					Text:     a.Text,
					Color:    a.Color,
					ImageURL: a.ImageURL,
				})
			}
			options = append(options, slack.MsgOptionAttachments(attachments...))
		}
	}

	if _, _, err := client.PostMessage(channel, options...); err != nil {
		return fmt.Errorf("failed to post message to %s: %w", channel, err)
	}
	return nil
}

// Stop disconnects the RTM session.
func (s *SlackBot) Stop() error {
	s.mu.RLock()
	rtm := s.rtm
	s.mu.RUnlock()

	if rtm == nil {
		return nil
	}

	logger.Info("stopping-slack-adapter")
	return rtm.Disconnect()
}
