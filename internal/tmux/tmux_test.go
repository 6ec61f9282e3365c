package tmux

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/itsmostafa/ipycell/internal/session"
)

// fakeRunner replays canned output keyed by the tmux subcommand
type fakeRunner struct {
	calls   [][]string
	outputs map[string]string
	errs    map[string]error
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	key := args[0]
	if err, ok := f.errs[key]; ok {
		return nil, err
	}
	return []byte(f.outputs[key]), nil
}

func newHost(f *fakeRunner) *Host {
	h := NewHost(f)
	h.OriginPane = ""
	return h
}

func TestList(t *testing.T) {
	f := &fakeRunner{outputs: map[string]string{
		"list-windows": "@1\tzsh\n@4\tIPython\n@5\tlogs tail\n",
	}}

	got, err := newHost(f).List(context.Background())
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	want := []session.Handle{{ID: "@1", Name: "zsh"}, {ID: "@4", Name: "IPython"}, {ID: "@5", Name: "logs tail"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}
	if args := f.calls[0]; !reflect.DeepEqual(args, []string{"tmux", "list-windows", "-a", "-F", windowFormat}) {
		t.Errorf("args = %v", args)
	}
}

func TestListNoServer(t *testing.T) {
	f := &fakeRunner{errs: map[string]error{
		"list-windows": errors.New("no server running on /tmp/tmux-1000/default"),
	}}

	got, err := newHost(f).List(context.Background())
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("List() = %v, want empty", got)
	}
}

func TestFocused(t *testing.T) {
	f := &fakeRunner{outputs: map[string]string{"display-message": "@4\tIPython\n"}}

	h, ok, err := newHost(f).Focused(context.Background())
	if err != nil || !ok {
		t.Fatalf("Focused() = %v, %v, %v", h, ok, err)
	}
	if h != (session.Handle{ID: "@4", Name: "IPython"}) {
		t.Errorf("Focused() = %v", h)
	}
}

func TestCreateFallsBackToNewSession(t *testing.T) {
	f := &fakeRunner{
		outputs: map[string]string{"new-session": "@0\n"},
		errs:    map[string]error{"new-window": errors.New("no server running")},
	}

	h, err := newHost(f).Create(context.Background(), "IPython")
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	if h.ID != "@0" || h.Name != "IPython" {
		t.Errorf("Create() = %v", h)
	}
	last := f.calls[len(f.calls)-1]
	want := []string{"tmux", "new-session", "-d", "-s", DefaultSessionName, "-n", "IPython", "-P", "-F", "#{window_id}"}
	if !reflect.DeepEqual(last, want) {
		t.Errorf("args = %v, want %v", last, want)
	}
}

func TestSendSplitsTextAndEnter(t *testing.T) {
	f := &fakeRunner{}
	host := newHost(f)
	w := session.Handle{ID: "@4"}

	if err := host.Send(context.Background(), w, "%paste -q", false); err != nil {
		t.Fatalf("Send() unexpected error: %v", err)
	}
	if err := host.Send(context.Background(), w, "", true); err != nil {
		t.Fatalf("Send() unexpected error: %v", err)
	}

	want := [][]string{
		{"tmux", "send-keys", "-t", "@4", "-l", "--", "%paste -q"},
		{"tmux", "send-keys", "-t", "@4", "Enter"},
	}
	if !reflect.DeepEqual(f.calls, want) {
		t.Errorf("calls = %v, want %v", f.calls, want)
	}
}

func TestSendError(t *testing.T) {
	f := &fakeRunner{errs: map[string]error{"send-keys": errors.New("can't find window")}}

	err := newHost(f).Send(context.Background(), session.Handle{ID: "@9"}, "x", true)
	if err == nil || !strings.Contains(err.Error(), "@9") {
		t.Errorf("Send() error = %v, want mention of window", err)
	}
}

func TestRefocus(t *testing.T) {
	f := &fakeRunner{}
	host := newHost(f)

	if err := host.Refocus(context.Background()); err != nil {
		t.Fatalf("Refocus() unexpected error: %v", err)
	}
	if len(f.calls) != 0 {
		t.Errorf("expected no calls without origin pane, got %v", f.calls)
	}

	host.OriginPane = "%3"
	if err := host.Refocus(context.Background()); err != nil {
		t.Fatalf("Refocus() unexpected error: %v", err)
	}
	want := [][]string{
		{"tmux", "select-window", "-t", "%3"},
		{"tmux", "select-pane", "-t", "%3"},
	}
	if !reflect.DeepEqual(f.calls, want) {
		t.Errorf("calls = %v, want %v", f.calls, want)
	}
}
