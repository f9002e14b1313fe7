package cmd

import (
	"context"
	"errors"
	"testing"
)

type stubCommand struct {
	name    string
	aliases []string
	runs    int
}

func (s *stubCommand) Name() string        { return s.name }
func (s *stubCommand) Description() string { return "stub " + s.name }
func (s *stubCommand) Aliases() []string   { return s.aliases }
func (s *stubCommand) Run(context.Context, *Invocation) error {
	s.runs++
	return nil
}

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry()
	play := &stubCommand{name: "play", aliases: []string{"tocar", "P"}}
	r.Register(play)
	r.Register(&stubCommand{name: "skip"})

	tests := []struct {
		name string
		want Command
	}{
		{"play", play},
		{"PLAY", play},
		{"tocar", play},
		{"p", play},
		{"pular", nil},
	}
	for _, tt := range tests {
		if got := r.Get(tt.name); got != tt.want {
			t.Errorf("Get(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}

	all := r.GetAll()
	if len(all) != 2 || all[0].Name() != "play" || all[1].Name() != "skip" {
		t.Fatalf("GetAll = %v", all)
	}
}

func TestAliasesOfWrappedCommand(t *testing.T) {
	r := NewRegistry()
	inner := &stubCommand{name: "queue", aliases: []string{"fila"}}
	r.Register(Wrap(inner, inner.Run))

	c := r.Get("fila")
	if c == nil || Root(c) != inner {
		t.Fatalf("alias did not resolve to wrapped command: %v", c)
	}
}

func TestApplyOrder(t *testing.T) {
	var order []string
	mw := func(tag string) Middleware {
		return func(c Command) Command {
			return Wrap(c, func(ctx context.Context, inv *Invocation) error {
				order = append(order, tag)
				return c.Run(ctx, inv)
			})
		}
	}

	inner := &stubCommand{name: "stop"}
	c := Apply(inner, mw("inner"), mw("outer"))
	if err := c.Run(context.Background(), &Invocation{}); err != nil {
		t.Fatal(err)
	}
	if len(order) != 2 || order[0] != "outer" || order[1] != "inner" || inner.runs != 1 {
		t.Fatalf("order = %v, runs = %d", order, inner.runs)
	}
	if c.Name() != "stop" || Root(c) != inner {
		t.Fatal("wrapper does not delegate identity")
	}
}

func TestWrapPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	c := Wrap(&stubCommand{name: "x"}, func(context.Context, *Invocation) error { return boom })
	if err := c.Run(context.Background(), &Invocation{}); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}
