package service

import (
	"basegraph.app/huddle/common/llm"
	"basegraph.app/huddle/internal/store"
)

// Services wires the service graph once. HomeService holds the render lock,
// so every caller must share the same instance.
type Services struct {
	roster     RosterService
	home       HomeService
	discussion DiscussionService
	poster     ChannelPoster
	notifier   Notifier
}

func NewServices(slack SlackAPI, roster store.RosterStore, completer llm.Completer, cfg DiscussionConfig) *Services {
	rosterSvc := NewRosterService(roster)
	discussion := NewDiscussionService(completer, cfg)

	return &Services{
		roster:     rosterSvc,
		home:       NewHomeService(slack, rosterSvc),
		discussion: discussion,
		poster:     NewChannelPoster(slack, rosterSvc, discussion),
		notifier:   NewNotifier(slack),
	}
}

func (s *Services) Roster() RosterService {
	return s.roster
}

func (s *Services) Home() HomeService {
	return s.home
}

func (s *Services) Discussion() DiscussionService {
	return s.discussion
}

func (s *Services) Poster() ChannelPoster {
	return s.poster
}

func (s *Services) Notifier() Notifier {
	return s.notifier
}
