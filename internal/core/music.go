package core

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/wickhamj/banterbot/internal/bot"
	"github.com/wickhamj/banterbot/internal/logger"
	"github.com/wickhamj/banterbot/internal/music"
	"github.com/wickhamj/banterbot/pkg/constants"
)

// pendingTrack is the payload carried through the add-to-playlist
// confirmation.
type pendingTrack struct {
	URI    string
	Name   string
	Artist string
}

var (
	addToPlaylistRe = regexp.MustCompile(`add (.+) to the party playlist`)
	affirmativeRe   = regexp.MustCompile(`\byes\b`)
	volumeRe        = regexp.MustCompile(`change volume to (\d+)\s*%?`)
)

// dispatchMusic is the music channel's own first-match chain. Order matters
// for the same reason as the main registry: "play the party playlist" must
// beat the bare "play", and "add ... to the party playlist" must beat both.
func (e *Engine) dispatchMusic(msg bot.Message, text string) {
	logger.WithFields(logrus.Fields{
		"channel": msg.Channel,
		"user":    msg.User,
	}).Info("music-request-received")

	var err error
	switch {
	case addToPlaylistRe.MatchString(text):
		err = e.handleAddToPlaylist(msg, text)
	case strings.Contains(text, "play the party playlist"):
		err = e.handlePlayPartyPlaylist(msg, text)
	case strings.Contains(text, "show the party playlist"):
		err = e.handleShowPartyPlaylist(msg, text)
	case strings.Contains(text, "play "):
		err = e.handlePlayTrack(msg, text)
	case strings.Contains(text, "dj "):
		err = e.handleDJ(msg, text)
	case strings.Contains(text, "what song is this"):
		err = e.handleTrackStatus(msg, text)
	case strings.Contains(text, "next song"), strings.Contains(text, "previous song"):
		err = e.handleSkip(msg, text)
	case strings.Contains(text, "enable shuffle"), strings.Contains(text, "disable shuffle"):
		err = e.handleShuffle(msg, text)
	case strings.Contains(text, "change volume to"):
		err = e.handleVolume(msg, text)
	case strings.Contains(text, "music status"):
		err = e.handleMusicStatus(msg, text)
	default:
		return
	}

	if err != nil {
		logger.WithFields(logrus.Fields{
			"channel": msg.Channel,
			"error":   err,
		}).Error("music-handler-failed")
	}
}

// reportMusicError posts the user-facing message for a failed music call and
// reports whether the error was auth-related. The pending operation is
// abandoned either way; there is no automatic retry.
func (e *Engine) reportMusicError(msg bot.Message, err error) {
	if errors.Is(err, music.ErrAuthExpired) || errors.Is(err, music.ErrNotAuthenticated) {
		e.post(msg.Channel, fmt.Sprintf("<@%s> please authenticate and try again...", msg.User))
		return
	}
	e.post(msg.Channel, fmt.Sprintf("<@%s> sorry, something went wrong :face_with_head_bandage:", msg.User))
}

func (e *Engine) handleMusicStatus(msg bot.Message, _ string) error {
	if authenticated, user := e.creds.Status(); authenticated {
		e.post(msg.Channel, fmt.Sprintf("<@%s> music is currently authenticated as *%s*", msg.User, user))
	} else {
		e.post(msg.Channel, fmt.Sprintf("<@%s> music is not authenticated", msg.User))
	}
	return nil
}

func (e *Engine) handlePlayTrack(msg bot.Message, text string) error {
	_, after, _ := strings.Cut(text, "play ")
	request := strings.TrimSpace(strings.ReplaceAll(after, " by ", " "))
	if request == "" {
		e.post(msg.Channel, fmt.Sprintf("<@%s> play what exactly?", msg.User))
		return nil
	}

	item, err := e.player.Search(request, "track")
	if err != nil {
		e.reportMusicError(msg, err)
		return err
	}

	if err := e.player.PlayTrack(item.URI); err != nil {
		e.reportMusicError(msg, err)
		return err
	}

	// Give the player a beat to switch over before reporting
	time.Sleep(constants.TrackStatusDelay)
	return e.postNowPlaying(msg)
}

func (e *Engine) handleDJ(msg bot.Message, text string) error {
	_, after, _ := strings.Cut(text, "dj ")
	request := strings.TrimSpace(after)
	if request == "" {
		e.post(msg.Channel, fmt.Sprintf("<@%s> dj what exactly?", msg.User))
		return nil
	}

	kind := "playlist"
	if rest, ok := strings.CutPrefix(request, "album "); ok {
		kind = "album"
		if name, artist, found := strings.Cut(rest, " by "); found {
			request = fmt.Sprintf("album:%s artist:%s", name, artist)
		} else {
			request = "album:" + rest
		}
	}

	item, err := e.player.Search(request, kind)
	if err != nil {
		e.reportMusicError(msg, err)
		return err
	}

	if err := e.player.PlayContext(item.URI); err != nil {
		e.reportMusicError(msg, err)
		return err
	}

	reply := fmt.Sprintf("now streaming %s *<%s|%s>*", kind, item.URL, item.Name)
	if kind == "album" && item.Artist != "" {
		reply += fmt.Sprintf(" by *%s*", item.Artist)
	}
	e.postAs(msg.Channel, reply+"... :speaker: :musical_note:", &bot.PostOptions{Username: "dj banterbot"})
	return nil
}

func (e *Engine) handlePlayPartyPlaylist(msg bot.Message, _ string) error {
	playlist, err := e.player.Playlist(e.config.Music.PartyPlaylistID)
	if err != nil {
		e.reportMusicError(msg, err)
		return err
	}

	if err := e.player.PlayContext(playlist.URI); err != nil {
		e.reportMusicError(msg, err)
		return err
	}

	e.postAs(msg.Channel, fmt.Sprintf("now streaming *<%s|%s>*... :tada: :musical_note:", playlist.URL, playlist.Name),
		&bot.PostOptions{Username: "dj banterbot"})
	return nil
}

func (e *Engine) handleShowPartyPlaylist(msg bot.Message, _ string) error {
	playlist, err := e.player.Playlist(e.config.Music.PartyPlaylistID)
	if err != nil {
		e.reportMusicError(msg, err)
		return err
	}

	e.post(msg.Channel, fmt.Sprintf("<@%s> <%s|%s> :notes:", msg.User, playlist.URL, playlist.Name))
	return nil
}

func (e *Engine) postNowPlaying(msg bot.Message) error {
	status, err := e.player.CurrentlyPlaying()
	if err != nil {
		e.reportMusicError(msg, err)
		return err
	}

	e.postAs(msg.Channel, fmt.Sprintf("now playing *%s* by *%s*... :speaker: :musical_note:", status.Track, status.Artist),
		&bot.PostOptions{Username: "dj banterbot"})
	return nil
}

func (e *Engine) handleTrackStatus(msg bot.Message, _ string) error {
	status, err := e.player.CurrentlyPlaying()
	if err != nil {
		e.reportMusicError(msg, err)
		return err
	}

	e.post(msg.Channel, fmt.Sprintf(":speaker: :musical_note:\n> *Track:* <%s|%s>\n> *Artist:* %s\n> *Album:* %s\n> *Released:* %s",
		status.URL, status.Track, status.Artist, status.Album, status.Released))
	return nil
}

func (e *Engine) handleSkip(msg bot.Message, text string) error {
	forward := strings.Contains(text, "next song")
	if err := e.player.Skip(forward); err != nil {
		e.reportMusicError(msg, err)
		return err
	}

	time.Sleep(constants.TrackStatusDelay)
	return e.postNowPlaying(msg)
}

func (e *Engine) handleShuffle(msg bot.Message, text string) error {
	enabled := strings.Contains(text, "enable shuffle")
	if err := e.player.SetShuffle(enabled); err != nil {
		e.reportMusicError(msg, err)
		return err
	}

	state := "disabled"
	if enabled {
		state = "enabled"
	}
	e.post(msg.Channel, fmt.Sprintf("<@%s> shuffle has been %s...", msg.User, state))
	return nil
}

func (e *Engine) handleVolume(msg bot.Message, text string) error {
	m := volumeRe.FindStringSubmatch(text)
	if m == nil {
		e.post(msg.Channel, fmt.Sprintf("<@%s> change volume to what? give me a percentage...", msg.User))
		return nil
	}

	percent, err := strconv.Atoi(m[1])
	if err != nil || percent > constants.DefaultVolumeMax {
		e.post(msg.Channel, fmt.Sprintf("<@%s> that's not a volume i can do...", msg.User))
		return nil
	}

	if err := e.player.SetVolume(percent); err != nil {
		e.reportMusicError(msg, err)
		return err
	}

	e.post(msg.Channel, fmt.Sprintf("<@%s> done...", msg.User))
	return nil
}

// handleAddToPlaylist is the first half of the two-step confirmation: find
// the track, arm the pending slot with it and ask. The commit happens in
// runConfirmation when the next message arrives.
func (e *Engine) handleAddToPlaylist(msg bot.Message, text string) error {
	m := addToPlaylistRe.FindStringSubmatch(text)
	request := strings.TrimSpace(strings.ReplaceAll(m[1], " by ", " "))
	if request == "" {
		e.post(msg.Channel, fmt.Sprintf("<@%s> add what exactly?", msg.User))
		return nil
	}

	item, err := e.player.Search(request, "track")
	if err != nil {
		e.reportMusicError(msg, err)
		return err
	}

	e.pending.Arm(pendingTrack{URI: item.URI, Name: item.Name, Artist: item.Artist})
	e.post(msg.Channel, fmt.Sprintf("<@%s> should i add *%s* by *%s* to the party playlist? (yes/no)", msg.User, item.Name, item.Artist))
	return nil
}

// runConfirmation interprets the one message that answers an armed
// confirmation. Anything that doesn't match the affirmative pattern is a
// decline. The slot was already cleared by the caller's Take.
func (e *Engine) runConfirmation(msg bot.Message, text string, payload interface{}) {
	track, ok := payload.(pendingTrack)
	if !ok {
		logger.WithField("payload", fmt.Sprintf("%T", payload)).Error("unexpected-confirmation-payload")
		return
	}

	if !affirmativeRe.MatchString(text) {
		logger.WithField("user", msg.User).Info("playlist-add-declined")
		e.post(msg.Channel, fmt.Sprintf("<@%s> no worries, leaving the playlist alone.", msg.User))
		return
	}

	if err := e.player.AddToPlaylist(e.config.Music.PartyPlaylistID, track.URI); err != nil {
		logger.WithFields(logrus.Fields{
			"track": track.Name,
			"error": err,
		}).Error("playlist-add-failed")
		e.reportMusicError(msg, err)
		return
	}

	logger.WithField("track", track.Name).Info("playlist-add-committed")
	e.post(msg.Channel, fmt.Sprintf("<@%s> done! *%s* by *%s* is on the party playlist :tada:", msg.User, track.Name, track.Artist))
}
