package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"slices"
	"time"

	"honnef.co/go/pointerproxy/f32"
	"honnef.co/go/pointerproxy/io/native"
	"honnef.co/go/pointerproxy/io/pointer"
	"honnef.co/go/pointerproxy/proxy"
	"honnef.co/go/pointerproxy/scene"

	"gioui.org/io/event"
	"github.com/go-json-experiment/json"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Script is a scene and a sequence of native events to feed to it.
type Script struct {
	Scene SceneNode `json:"scene"`
	// Listen lists the handlers to register before the first event.
	Listen []Listener `json:"listen"`
	Events []Step     `json:"events"`
}

type SceneNode struct {
	Name string `json:"name"`
	// Bounds is min x, min y, max x, max y.
	Bounds   [4]float32  `json:"bounds"`
	Children []SceneNode `json:"children,omitempty"`
}

type Listener struct {
	Node string `json:"node"`
	Type string `json:"type"`
}

// Step is a native event. Optional properties are only reported when set.
type Step struct {
	// At is the time of the event in milliseconds since the start of the
	// script. Steps have to be in order.
	At     float64 `json:"at,omitzero"`
	Type   string  `json:"type"`
	Target string  `json:"target,omitempty"`

	Client *[2]float32 `json:"client,omitempty"`
	Screen *[2]float32 `json:"screen,omitempty"`

	Which       *int     `json:"which,omitempty"`
	Button      *int     `json:"button,omitempty"`
	Buttons     *uint8   `json:"buttons,omitempty"`
	Pressure    *float32 `json:"pressure,omitempty"`
	PointerID   *int     `json:"pointerId,omitempty"`
	PointerType *string  `json:"pointerType,omitempty"`
	IsPrimary   *bool    `json:"isPrimary,omitempty"`

	// Touches are the changed contacts of a touch event. A touch event
	// without touches is malformed.
	Touches []StepTouch `json:"touches,omitempty"`
	// Original is the event this one wraps.
	Original *Step `json:"original,omitempty"`
}

type StepTouch struct {
	ID     int         `json:"id"`
	Target string      `json:"target"`
	Client [2]float32  `json:"client"`
	Screen *[2]float32 `json:"screen,omitempty"`
}

// Record is a pointer event as seen by a listener.
type Record struct {
	At            float64    `json:"at"`
	Node          string     `json:"node"`
	Type          string     `json:"type"`
	RelatedTarget string     `json:"relatedTarget,omitempty"`
	PointerID     int        `json:"pointerId"`
	PointerType   string     `json:"pointerType"`
	IsPrimary     bool       `json:"isPrimary"`
	Button        int        `json:"button"`
	Buttons       uint8      `json:"buttons"`
	Pressure      float32    `json:"pressure"`
	Width         float32    `json:"width,omitzero"`
	Height        float32    `json:"height,omitzero"`
	Client        [2]float32 `json:"client"`
	Screen        [2]float32 `json:"screen"`
}

// DecodeScript reads a script. Unknown members are an error.
func DecodeScript(r io.Reader) (*Script, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var s Script
	if err := json.Unmarshal(b, &s, json.RejectUnknownMembers(true)); err != nil {
		return nil, fmt.Errorf("decode script: %w", err)
	}
	return &s, nil
}

// clock is a virtual clock that drives the suppressor's timers.
type clock struct {
	now     time.Duration
	pending []timer
}

type timer struct {
	at time.Duration
	f  func()
}

func (c *clock) AfterFunc(d time.Duration, f func()) {
	c.pending = append(c.pending, timer{at: c.now + d, f: f})
}

// advance moves the clock to t, running expired timers in order.
func (c *clock) advance(t time.Duration) {
	if t < c.now {
		return
	}
	c.now = t
	slices.SortStableFunc(c.pending, func(a, b timer) int {
		switch {
		case a.at < b.at:
			return -1
		case a.at > b.at:
			return 1
		default:
			return 0
		}
	})
	n := 0
	for n < len(c.pending) && c.pending[n].at <= t {
		n++
	}
	due := c.pending[:n:n]
	c.pending = c.pending[n:]
	for _, tm := range due {
		tm.f()
	}
}

type replay struct {
	doc   *scene.Document
	nodes map[string]*scene.Node
	clock clock
	out   io.Writer
	err   error
}

func buildTree(sn SceneNode, nodes map[string]*scene.Node) (*scene.Node, error) {
	if sn.Name == "" {
		return nil, fmt.Errorf("scene node without a name")
	}
	if _, ok := nodes[sn.Name]; ok {
		return nil, fmt.Errorf("duplicate scene node %q", sn.Name)
	}
	b := sn.Bounds
	n := scene.NewNode(sn.Name, f32.Rect(b[0], b[1], b[2], b[3]))
	nodes[sn.Name] = n
	for _, c := range sn.Children {
		child, err := buildTree(c, nodes)
		if err != nil {
			return nil, err
		}
		n.Append(child)
	}
	return n, nil
}

// Run replays the script, writing one JSON record per delivered event to w.
func (s *Script) Run(ctx context.Context, w io.Writer, opts ...proxy.Option) error {
	span := trace.SpanFromContext(ctx)

	r := &replay{nodes: make(map[string]*scene.Node), out: w}
	root, err := buildTree(s.Scene, r.nodes)
	if err != nil {
		return err
	}
	r.doc = scene.NewDocument(root, append(opts[:len(opts):len(opts)], proxy.WithScheduler(&r.clock))...)

	var regs []*scene.Registration
	for _, l := range s.Listen {
		n, ok := r.nodes[l.Node]
		if !ok {
			return fmt.Errorf("listener for unknown node %q", l.Node)
		}
		typ, ok := pointer.ParseType(l.Type)
		if !ok {
			return fmt.Errorf("listener for unknown pointer event type %q", l.Type)
		}
		regs = append(regs, r.doc.On(n, typ, r.record))
	}

	for i := range s.Events {
		step := &s.Events[i]
		ev, err := r.native(step)
		if err != nil {
			return fmt.Errorf("event %d: %w", i, err)
		}
		r.clock.advance(millis(step.At))
		r.doc.Emit(ev)
		if r.err != nil {
			return r.err
		}
	}
	span.SetAttributes(attribute.Int("replay.events", len(s.Events)))

	for _, reg := range regs {
		reg.Off()
	}
	if n := r.doc.Registry().Len(); n != 0 {
		return fmt.Errorf("%d proxies still live after removing all listeners", n)
	}
	return nil
}

func millis(ms float64) time.Duration {
	return time.Duration(math.Round(ms * float64(time.Millisecond)))
}

func pt(p [2]float32) f32.Point { return f32.Pt(p[0], p[1]) }

func (r *replay) node(name string) (event.Tag, error) {
	if name == "" {
		return nil, nil
	}
	n, ok := r.nodes[name]
	if !ok {
		return nil, fmt.Errorf("unknown node %q", name)
	}
	return n, nil
}

func (r *replay) native(step *Step) (*native.Event, error) {
	typ, ok := native.ParseType(step.Type)
	if !ok {
		return nil, fmt.Errorf("unknown native event type %q", step.Type)
	}
	target, err := r.node(step.Target)
	if err != nil {
		return nil, err
	}
	ev := &native.Event{
		Type:   typ,
		Target: target,
		Has:    native.FieldTime,
		Time:   millis(step.At),
	}
	if step.Client != nil {
		ev.Client = pt(*step.Client)
		ev.Has |= native.FieldClient
	}
	if step.Screen != nil {
		ev.Screen = pt(*step.Screen)
		ev.Has |= native.FieldScreen
	}
	if step.Which != nil {
		ev.Which = *step.Which
		ev.Has |= native.FieldWhich
	}
	if step.Button != nil {
		ev.Button = *step.Button
		ev.Has |= native.FieldButton
	}
	if step.Buttons != nil {
		ev.Buttons = pointer.Buttons(*step.Buttons)
		ev.Has |= native.FieldButtons
	}
	if step.Pressure != nil {
		ev.Pressure = *step.Pressure
		ev.Has |= native.FieldPressure
	}
	if step.PointerID != nil {
		ev.PointerID = *step.PointerID
		ev.Has |= native.FieldPointerID
	}
	if step.PointerType != nil {
		ev.PointerType = *step.PointerType
		ev.Has |= native.FieldPointerType
	}
	if step.IsPrimary != nil {
		ev.IsPrimary = *step.IsPrimary
		ev.Has |= native.FieldIsPrimary
	}
	if step.Touches != nil {
		ev.Changed = make([]native.Touch, 0, len(step.Touches))
		for _, st := range step.Touches {
			t := native.Touch{ID: st.ID, Client: pt(st.Client), Screen: pt(st.Client)}
			if st.Screen != nil {
				t.Screen = pt(*st.Screen)
			}
			if t.Target, err = r.node(st.Target); err != nil {
				return nil, err
			}
			ev.Changed = append(ev.Changed, t)
		}
	}
	if step.Original != nil {
		if ev.Original, err = r.native(step.Original); err != nil {
			return nil, fmt.Errorf("original: %w", err)
		}
	}
	return ev, nil
}

func (r *replay) record(currentTarget event.Tag, ev pointer.Event) {
	if r.err != nil {
		return
	}
	rec := Record{
		At:          float64(r.clock.now) / float64(time.Millisecond),
		Node:        currentTarget.(*scene.Node).Name,
		Type:        ev.Type.String(),
		PointerID:   int(ev.PointerID),
		PointerType: ev.PointerType.String(),
		IsPrimary:   ev.IsPrimary,
		Button:      ev.Button,
		Buttons:     uint8(ev.Buttons),
		Pressure:    ev.Pressure,
		Width:       ev.Width,
		Height:      ev.Height,
		Client:      [2]float32{ev.Client.X, ev.Client.Y},
		Screen:      [2]float32{ev.Screen.X, ev.Screen.Y},
	}
	if n, ok := ev.RelatedTarget.(*scene.Node); ok && n != nil {
		rec.RelatedTarget = n.Name
	}
	b, err := json.Marshal(rec)
	if err != nil {
		r.err = err
		return
	}
	if _, err := r.out.Write(append(b, '\n')); err != nil {
		r.err = err
	}
}
