package trace

import (
	"bytes"
	"context"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"
)

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

func nextSeq() uint64 { return seqCounter.Add(1) }

// goid парсит номер горутины из заголовка стека "goroutine 7 [running]:".
func goid() uint64 {
	var buf [64]byte
	head, ok := bytes.CutPrefix(buf[:runtime.Stack(buf[:], false)], []byte("goroutine "))
	if !ok {
		return 0
	}
	if i := bytes.IndexByte(head, ' '); i >= 0 {
		head = head[:i]
	}
	id, _ := strconv.ParseUint(string(head), 10, 64)
	return id
}

// Span is one traced interval. Spans from a disabled tracer, or from a
// scope the level filters out, are inert.
type Span struct {
	tracer  Tracer
	id      uint64
	parent  uint64
	gid     uint64
	scope   Scope
	name    string
	started time.Time
	extra   map[string]string
}

// Start begins a span under the current span of ctx and returns a context
// in which the new span is current.
func Start(ctx context.Context, scope Scope, name string) (context.Context, *Span) {
	t := FromContext(ctx)
	if !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return ctx, &Span{}
	}
	s := &Span{
		tracer:  t,
		id:      spanCounter.Add(1),
		parent:  CurrentSpan(ctx).SpanID,
		gid:     goid(),
		scope:   scope,
		name:    name,
		started: time.Now(),
	}
	emit(t, Event{
		Time:     s.started,
		Kind:     KindSpanBegin,
		Scope:    scope,
		SpanID:   s.id,
		ParentID: s.parent,
		GID:      s.gid,
		Name:     name,
	})
	return WithSpanContext(ctx, SpanContext{SpanID: s.id, GID: s.gid}), s
}

func (s *Span) live() bool {
	return s != nil && s.tracer != nil && s.tracer.Enabled()
}

// ID returns the span ID, 0 for an inert span.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// WithExtra attaches key=value to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if !s.live() {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string, 2)
	}
	s.extra[key] = value
	return s
}

// End emits the end event and returns the span duration.
func (s *Span) End(detail string) time.Duration {
	if !s.live() {
		return 0
	}
	dur := time.Since(s.started)
	emit(s.tracer, Event{
		Kind:     KindSpanEnd,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parent,
		GID:      s.gid,
		Name:     s.name,
		Detail:   detail,
		Extra:    s.extra,
	})
	return dur
}

// EndErr is End with status=error and the message as detail when err != nil.
func (s *Span) EndErr(err error) time.Duration {
	if err == nil {
		return s.End("")
	}
	return s.WithExtra("status", "error").End(err.Error())
}

// Point emits an instant event under the current span of ctx.
func Point(ctx context.Context, scope Scope, name, detail string) {
	t := FromContext(ctx)
	if !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return
	}
	emit(t, Event{Kind: KindPoint, Scope: scope, ParentID: CurrentSpan(ctx).SpanID, GID: goid(), Name: name, Detail: detail})
}

// Fail records err under the current span of ctx. It passes every level
// except off.
func Fail(ctx context.Context, scope Scope, name string, err error) {
	t := FromContext(ctx)
	if err == nil || !t.Enabled() {
		return
	}
	emit(t, Event{Kind: KindError, Scope: scope, ParentID: CurrentSpan(ctx).SpanID, GID: goid(), Name: name, Detail: err.Error()})
}

func emit(t Tracer, ev Event) {
	if ev.Time.IsZero() {
		ev.Time = time.Now()
	}
	ev.Seq = nextSeq()
	t.Emit(&ev)
}
