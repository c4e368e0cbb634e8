// Package servicetest provides in-memory stand-ins for the Slack Web API and
// the text generator.
package servicetest

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/slack-go/slack"

	"basegraph.app/huddle/common/llm"
)

// Call is one recorded Web API call with its message options applied.
type Call struct {
	Method  string
	Channel string
	User    string
	TS      string // message ts, or trigger id for views.open
	Values  url.Values
	View    any
}

// FakeSlack records every call. The *Fn hooks inject failures.
type FakeSlack struct {
	mu    sync.Mutex
	calls []Call
	tsSeq int

	PublishFn   func(userID string, v slack.HomeTabViewRequest) error
	OpenFn      func(triggerID string, v slack.ModalViewRequest) error
	PostFn      func(channelID string, values url.Values) error
	UpdateFn    func(channelID, ts string) error
	DeleteFn    func(channelID, ts string) error
	EphemeralFn func(channelID, userID string) error
}

func (f *FakeSlack) record(c Call) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
}

func (f *FakeSlack) nextTS() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tsSeq++
	return fmt.Sprintf("1700000000.%06d", f.tsSeq)
}

func (f *FakeSlack) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

func (f *FakeSlack) Methods() []string {
	var out []string
	for _, c := range f.Calls() {
		out = append(out, c.Method)
	}
	return out
}

// ApplyOptions renders message options into the form values Slack receives.
func ApplyOptions(options []slack.MsgOption) url.Values {
	_, values, err := slack.UnsafeApplyMsgOptions("xoxb-test", "C", "https://slack.test/api/", options...)
	if err != nil {
		panic(err)
	}
	return values
}

func (f *FakeSlack) PublishViewContext(_ context.Context, userID string, v slack.HomeTabViewRequest, _ string) (*slack.ViewResponse, error) {
	f.record(Call{Method: "views.publish", User: userID, View: v})
	if f.PublishFn != nil {
		if err := f.PublishFn(userID, v); err != nil {
			return nil, err
		}
	}
	return &slack.ViewResponse{}, nil
}

func (f *FakeSlack) OpenViewContext(_ context.Context, triggerID string, v slack.ModalViewRequest) (*slack.ViewResponse, error) {
	f.record(Call{Method: "views.open", TS: triggerID, View: v})
	if f.OpenFn != nil {
		if err := f.OpenFn(triggerID, v); err != nil {
			return nil, err
		}
	}
	return &slack.ViewResponse{}, nil
}

func (f *FakeSlack) PostMessageContext(_ context.Context, channelID string, options ...slack.MsgOption) (string, string, error) {
	values := ApplyOptions(options)
	if f.PostFn != nil {
		if err := f.PostFn(channelID, values); err != nil {
			f.record(Call{Method: "chat.postMessage", Channel: channelID, Values: values})
			return "", "", err
		}
	}
	ts := f.nextTS()
	f.record(Call{Method: "chat.postMessage", Channel: channelID, TS: ts, Values: values})
	return channelID, ts, nil
}

func (f *FakeSlack) UpdateMessageContext(_ context.Context, channelID, ts string, options ...slack.MsgOption) (string, string, string, error) {
	values := ApplyOptions(options)
	f.record(Call{Method: "chat.update", Channel: channelID, TS: ts, Values: values})
	if f.UpdateFn != nil {
		if err := f.UpdateFn(channelID, ts); err != nil {
			return "", "", "", err
		}
	}
	return channelID, ts, values.Get("text"), nil
}

func (f *FakeSlack) DeleteMessageContext(_ context.Context, channelID, ts string) (string, string, error) {
	f.record(Call{Method: "chat.delete", Channel: channelID, TS: ts})
	if f.DeleteFn != nil {
		if err := f.DeleteFn(channelID, ts); err != nil {
			return "", "", err
		}
	}
	return channelID, ts, nil
}

func (f *FakeSlack) PostEphemeralContext(_ context.Context, channelID, userID string, options ...slack.MsgOption) (string, error) {
	f.record(Call{Method: "chat.postEphemeral", Channel: channelID, User: userID, Values: ApplyOptions(options)})
	if f.EphemeralFn != nil {
		if err := f.EphemeralFn(channelID, userID); err != nil {
			return "", err
		}
	}
	return f.nextTS(), nil
}

// FakeCompleter records requests and answers with CompleteFn.
type FakeCompleter struct {
	mu       sync.Mutex
	requests []llm.CompletionRequest

	CompleteFn func(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error)
}

func (f *FakeCompleter) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	if f.CompleteFn != nil {
		return f.CompleteFn(ctx, req)
	}
	return &llm.CompletionResponse{}, nil
}

func (f *FakeCompleter) Model() string {
	return "test-model"
}

func (f *FakeCompleter) Requests() []llm.CompletionRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]llm.CompletionRequest(nil), f.requests...)
}

// Reply returns a CompleteFn that always answers with text.
func Reply(text string) func(context.Context, llm.CompletionRequest) (*llm.CompletionResponse, error) {
	return func(context.Context, llm.CompletionRequest) (*llm.CompletionResponse, error) {
		return &llm.CompletionResponse{Text: text, FinishReason: "stop"}, nil
	}
}
