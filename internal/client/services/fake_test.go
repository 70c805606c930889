package services

import (
	"context"
	"encoding/json"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/suimirror/internal/client/client"
	"github.com/dmitrijs2005/suimirror/internal/client/i18n"
	"github.com/dmitrijs2005/suimirror/internal/client/mirror"
	"github.com/dmitrijs2005/suimirror/internal/client/models"
	"github.com/dmitrijs2005/suimirror/internal/client/notify"
)

type call struct {
	Method string
	Action string
	Values url.Values
}

type reply struct {
	obj     string
	msg     string
	success bool
	err     error
}

func ok(obj string) reply { return reply{obj: obj, success: true} }

func rejected(msg string) reply { return reply{msg: msg} }

func unavailable() reply { return reply{err: client.ErrUnavailable} }

// fakeGateway answers each action from a queue of replies. The last reply of
// a queue is reused once the queue is drained; an action without replies is
// answered with success and a null obj.
type fakeGateway struct {
	mu      sync.Mutex
	calls   []call
	replies map[string][]reply
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{replies: make(map[string][]reply)}
}

func (f *fakeGateway) on(action string, r ...reply) *fakeGateway {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies[action] = append(f.replies[action], r...)
	return f
}

func (f *fakeGateway) Get(ctx context.Context, action string, params url.Values) (models.Envelope, error) {
	return f.answer("GET", action, params)
}

func (f *fakeGateway) Post(ctx context.Context, action string, form url.Values) (models.Envelope, error) {
	return f.answer("POST", action, form)
}

func (f *fakeGateway) answer(method, action string, values url.Values) (models.Envelope, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{Method: method, Action: action, Values: values})

	r := reply{success: true}
	if q := f.replies[action]; len(q) > 0 {
		r = q[0]
		if len(q) > 1 {
			f.replies[action] = q[1:]
		}
	}
	if r.err != nil {
		return models.Envelope{}, r.err
	}
	env := models.Envelope{Success: r.success, Msg: r.msg}
	if r.obj != "" {
		env.Obj = json.RawMessage(r.obj)
	}
	if !r.success {
		return env, &client.RejectedError{Action: action, Msg: r.msg}
	}
	return env, nil
}

func (f *fakeGateway) Calls() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]call(nil), f.calls...)
}

func (f *fakeGateway) actions() []string {
	var out []string
	for _, c := range f.Calls() {
		out = append(out, c.Method+" "+c.Action)
	}
	return out
}

func (f *fakeGateway) last(action string) (call, bool) {
	calls := f.Calls()
	for i := len(calls) - 1; i >= 0; i-- {
		if calls[i].Action == action {
			return calls[i], true
		}
	}
	return call{}, false
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

type env struct {
	deps  Deps
	gw    *fakeGateway
	rec   *notify.Recorder
	m     *mirror.Mirror
	clock *clock
}

func newEnv(t *testing.T) *env {
	t.Helper()
	e := &env{
		gw:    newFakeGateway(),
		rec:   &notify.Recorder{},
		m:     mirror.New(),
		clock: &clock{now: time.Unix(1_700_000_000, 0)},
	}
	e.deps = Deps{
		Gateway:  e.gw,
		Mirror:   e.m,
		Notifier: e.rec,
		Printer:  i18n.New("en"),
		Now:      e.clock.Now,
	}
	return e
}

// seed applies a load response to the mirror without going through a
// service. Downstream fields only land when obj carries a config.
func (e *env) seed(t *testing.T, obj string) {
	t.Helper()
	d, err := models.ParseDiff(json.RawMessage(obj))
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	e.m.ApplyLoad(d, e.clock.Now())
}

func objectNames(objs []models.Object) []string {
	out := make([]string, 0, len(objs))
	for _, o := range objs {
		if o.Name != "" {
			out = append(out, o.Name)
		} else {
			out = append(out, o.Tag)
		}
	}
	return out
}
