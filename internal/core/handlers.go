package core

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/wickhamj/banterbot/internal/bot"
	"github.com/wickhamj/banterbot/internal/logger"
	"github.com/wickhamj/banterbot/internal/store"
)

// vipAcks is the fixed pool of acknowledgements for the VIP user. One is
// chosen at random and posted in addition to normal dispatch.
var vipAcks = []string{
	"the legend himself :bow:",
	"always a pleasure :saluting_face:",
	"at your service!",
	"woof woof! :dog:",
	"say the word and it's done.",
}

var greetings = []string{
	"hello! :wave:",
	"hey hey hey!",
	"bonjour! :fr:",
	"ola! :sunny:",
	"yo! what's happening?",
}

var jokes = []string{
	"i'd tell you a UDP joke, but you might not get it.",
	"there are only two hard things in computer science: cache invalidation, naming things, and off-by-one errors.",
	"i asked the server for a joke. it returned 418: i'm a teapot.",
	"why do programmers prefer dark mode? because light attracts bugs.",
}

var pubs = []string{
	"The Crown & Anchor",
	"The Old Ship",
	"The Lamb and Flag",
	"The Printworks Tavern",
}

var imagePool = []bot.Attachment{
	{Title: "here you go", ImageURL: "https://picsum.photos/seed/banterbot-1/600/400", Color: "#36a64f"},
	{Title: "fresh from the archive", ImageURL: "https://picsum.photos/seed/banterbot-2/600/400", Color: "#2eb67d"},
	{Title: "a classic", ImageURL: "https://picsum.photos/seed/banterbot-3/600/400", Color: "#e01e5a"},
}

var sidekickQuotes = []string{
	"did someone order chaos?",
	"i was told there would be biscuits.",
	"back by popular demand!",
}

// workdayEnd is when handleTimeRemaining counts down to, in local time.
const (
	workdayEndHour   = 17
	workdayEndMinute = 30
)

func (e *Engine) handleGreeting(msg bot.Message, _ string) error {
	e.post(msg.Channel, fmt.Sprintf("<@%s> %s", msg.User, greetings[rand.Intn(len(greetings))]))
	return nil
}

func (e *Engine) handleJoke(msg bot.Message, _ string) error {
	e.post(msg.Channel, fmt.Sprintf("<@%s> %s", msg.User, jokes[rand.Intn(len(jokes))]))
	return nil
}

func (e *Engine) handleHelp(msg bot.Message, _ string) error {
	help := `*here's what i can do:*
> say hello, tell a joke, dance, pick a pub
> ` + "`<name> just said <quote>`" + ` to save a quote, "give us a quote" to hear one
> feature request <your idea> to log an idea
> company news for the latest updates
> in a music channel: play <track>, dj <album>, what song is this, next song, enable shuffle, change volume to <n>, music status, add <track> to the party playlist`
	e.post(msg.Channel, fmt.Sprintf("<@%s>\n%s", msg.User, help))
	return nil
}

func (e *Engine) handleDance(msg bot.Message, _ string) error {
	e.post(msg.Channel, ":man_dancing: :dancer: :man_dancing: :dancer: :man_dancing:")
	return nil
}

func (e *Engine) handlePubPick(msg bot.Message, _ string) error {
	pub := pubs[rand.Intn(len(pubs))]
	e.post(msg.Channel, fmt.Sprintf("<@%s> it has to be *%s* :beers:", msg.User, pub))
	return nil
}

func (e *Engine) handleFavouriteTeam(msg bot.Message, _ string) error {
	e.post(msg.Channel, fmt.Sprintf("<@%s> whoever is top of the league this week :trophy:", msg.User))
	return nil
}

func (e *Engine) handleFavouriteDrink(msg bot.Message, _ string) error {
	e.post(msg.Channel, fmt.Sprintf("<@%s> a flat white before noon, anything else after :coffee:", msg.User))
	return nil
}

func (e *Engine) handleFavouritePerson(msg bot.Message, _ string) error {
	e.post(msg.Channel, fmt.Sprintf("<@%s> you, obviously. don't tell the others.", msg.User))
	return nil
}

func (e *Engine) handleAffection(msg bot.Message, _ string) error {
	e.post(msg.Channel, fmt.Sprintf("<@%s> :heart: right back at you", msg.User))
	return nil
}

func (e *Engine) handleOwo(msg bot.Message, _ string) error {
	e.post(msg.Channel, "OwO what's this?")
	return nil
}

func (e *Engine) handleClarifySelf(msg bot.Message, _ string) error {
	e.post(msg.Channel, fmt.Sprintf("<@%s> i'm banterbot. i route your nonsense to the right place.", msg.User))
	return nil
}

func (e *Engine) handleRandomFact(msg bot.Message, _ string) error {
	facts := []string{
		"honey never spoils.",
		"octopuses have three hearts.",
		"the first computer bug was an actual moth.",
	}
	e.post(msg.Channel, fmt.Sprintf("<@%s> %s", msg.User, facts[rand.Intn(len(facts))]))
	return nil
}

func (e *Engine) handleRandomImage(msg bot.Message, _ string) error {
	attachment := imagePool[rand.Intn(len(imagePool))]
	e.postAs(msg.Channel, fmt.Sprintf("<@%s>", msg.User), &bot.PostOptions{
		Attachments: []bot.Attachment{attachment},
	})
	return nil
}

func (e *Engine) handleTimeRemaining(msg bot.Message, _ string) error {
	now := time.Now()
	end := time.Date(now.Year(), now.Month(), now.Day(), workdayEndHour, workdayEndMinute, 0, 0, now.Location())

	if !now.Before(end) {
		e.post(msg.Channel, fmt.Sprintf("<@%s> the day is done. go home! :tada:", msg.User))
		return nil
	}

	left := end.Sub(now).Round(time.Minute)
	hours := int(left.Hours())
	minutes := int(left.Minutes()) % 60
	e.post(msg.Channel, fmt.Sprintf("<@%s> %dh %dm to go... hang in there :hourglass_flowing_sand:", msg.User, hours, minutes))
	return nil
}

func (e *Engine) handleSidekickCameo(msg bot.Message, _ string) error {
	quote := sidekickQuotes[rand.Intn(len(sidekickQuotes))]
	e.postAs(msg.Channel, fmt.Sprintf(":speech_balloon: `%q`", quote), &bot.PostOptions{
		Username:  "sidebot",
		IconEmoji: ":robot_face:",
	})
	e.post(msg.Channel, ":flushed: *woof* what was that???????")
	return nil
}

// handleQuoteAdd saves everything after "just said" as a new quote.
func (e *Engine) handleQuoteAdd(msg bot.Message, text string) error {
	_, after, found := strings.Cut(text, "just said")
	quote := strings.Trim(strings.TrimSpace(after), `"'`)
	if !found || quote == "" {
		e.post(msg.Channel, fmt.Sprintf("<@%s> said what? give me the actual words...", msg.User))
		return nil
	}

	if err := e.quotes.Append(quote, msg.User); err != nil {
		e.post(msg.Channel, fmt.Sprintf("<@%s> sorry, i couldn't save that one :face_with_head_bandage:", msg.User))
		return fmt.Errorf("failed to save quote: %w", err)
	}

	logger.WithField("user", msg.User).Info("quote-added")
	e.post(msg.Channel, fmt.Sprintf("<@%s> noted. that one's going in the book :memo:", msg.User))
	return nil
}

// handleRequestedQuote serves a random saved quote, limited per day.
func (e *Engine) handleRequestedQuote(msg bot.Message, _ string) error {
	if !e.throttle.Allow() {
		e.post(msg.Channel, fmt.Sprintf("<@%s> that's enough quotes for one day... try again tomorrow :zipper_mouth_face:", msg.User))
		return nil
	}

	entry, err := e.quotes.Random()
	if err != nil {
		if err == store.ErrEmptyList {
			e.post(msg.Channel, fmt.Sprintf("<@%s> the quote book is empty. teach me some!", msg.User))
			return nil
		}
		return fmt.Errorf("failed to read quotes: %w", err)
	}

	e.post(msg.Channel, fmt.Sprintf(":speech_balloon: `\"%s\"`", entry.Text))
	return nil
}

// handleFeatureRequest appends the request text to the feature list.
func (e *Engine) handleFeatureRequest(msg bot.Message, text string) error {
	_, after, _ := strings.Cut(text, "feature request")
	request := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(after), ":"))
	if request == "" {
		e.post(msg.Channel, fmt.Sprintf("<@%s> what's the feature? try `feature request <your idea>`", msg.User))
		return nil
	}

	if err := e.features.Append(request, msg.User); err != nil {
		e.post(msg.Channel, fmt.Sprintf("<@%s> sorry, i couldn't log that :face_with_head_bandage:", msg.User))
		return fmt.Errorf("failed to save feature request: %w", err)
	}

	e.post(msg.Channel, fmt.Sprintf("<@%s> logged! the backlog grows ever longer :scroll:", msg.User))
	return nil
}

// handleWisdom serves one advice slip from the oracle service.
func (e *Engine) handleWisdom(msg bot.Message, _ string) error {
	tip, err := e.oracle.Random()
	if err != nil {
		e.post(msg.Channel, fmt.Sprintf("<@%s> the oracle is unavailable right now :crystal_ball:", msg.User))
		return fmt.Errorf("advice fetch failed: %w", err)
	}

	e.post(msg.Channel, fmt.Sprintf("<@%s> %s :crystal_ball:", msg.User, tip))
	return nil
}

// handleNewsUpdate posts the latest company-news items.
func (e *Engine) handleNewsUpdate(msg bot.Message, _ string) error {
	if e.news == nil {
		e.post(msg.Channel, fmt.Sprintf("<@%s> no news feed configured, sorry!", msg.User))
		return nil
	}

	items, err := e.news.Latest(e.config.Feed.Limit)
	if err != nil {
		e.post(msg.Channel, fmt.Sprintf("<@%s> couldn't reach the news feed :face_with_head_bandage:", msg.User))
		return fmt.Errorf("feed fetch failed: %w", err)
	}
	if len(items) == 0 {
		e.post(msg.Channel, fmt.Sprintf("<@%s> nothing new to report.", msg.User))
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<@%s> here's the latest:\n", msg.User)
	for _, item := range items {
		fmt.Fprintf(&b, "> <%s|%s>\n", item.URL, item.Title)
	}
	e.post(msg.Channel, b.String())
	return nil
}

func (e *Engine) handleTicketQueue(msg bot.Message, _ string) error {
	e.post(msg.Channel, fmt.Sprintf("<@%s> the new queue is over here :ticket: https://support.example.com/agent/filters/new", msg.User))
	return nil
}

func (e *Engine) handleSnackRun(msg bot.Message, _ string) error {
	e.post(msg.Channel, fmt.Sprintf("<@%s> i'll grab my coat. usual order? :shopping_trolley:", msg.User))
	return nil
}
