package llm

import (
    "context"
    "fmt"
    "testing"
)

type fakeClient struct {
    reply   string
    err     error
    pingErr error
    calls   int
}

func (f *fakeClient) Ping(ctx context.Context) error { return f.pingErr }

func (f *fakeClient) Chat(ctx context.Context, req Request) (string, error) {
    f.calls++
    if f.err != nil {
        return "", f.err
    }
    return f.reply, nil
}

func TestChain_PrimaryAnswers(t *testing.T) {
    primary := &fakeClient{reply: "from primary"}
    backup := &fakeClient{reply: "from backup"}

    c := NewChain().Add("primary", primary).Add("backup", backup)
    out, err := c.Chat(context.Background(), Request{Prompt: "hi"})
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if out != "from primary" {
        t.Fatalf("expected primary answer, got %q", out)
    }
    if backup.calls != 0 {
        t.Fatalf("backup should not be called when primary answers")
    }
}

func TestChain_FallsBackInOrder(t *testing.T) {
    primary := &fakeClient{err: fmt.Errorf("down")}
    backup := &fakeClient{reply: "from backup"}

    c := NewChain().Add("primary", primary).Add("backup", backup)
    out, err := c.Chat(context.Background(), Request{Prompt: "hi"})
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if out != "from backup" {
        t.Fatalf("expected backup answer, got %q", out)
    }
    if primary.calls != 1 || backup.calls != 1 {
        t.Fatalf("unexpected call counts: %d/%d", primary.calls, backup.calls)
    }
}

func TestChain_AllFail(t *testing.T) {
    c := NewChain().
        Add("a", &fakeClient{err: fmt.Errorf("a down")}).
        Add("b", &fakeClient{err: fmt.Errorf("b down")})

    _, err := c.Chat(context.Background(), Request{Prompt: "hi"})
    if err == nil {
        t.Fatalf("expected error when every provider fails")
    }
    if !contains(err.Error(), "all providers failed") || !contains(err.Error(), "b down") {
        t.Fatalf("error should name the last failure: %v", err)
    }
}

func TestChain_Empty(t *testing.T) {
    c := NewChain()
    if _, err := c.Chat(context.Background(), Request{Prompt: "hi"}); err == nil {
        t.Fatalf("expected error for empty chain")
    }
    if err := c.Ping(context.Background()); err == nil {
        t.Fatalf("expected ping error for empty chain")
    }
}

func TestChain_PingAnyHealthy(t *testing.T) {
    c := NewChain().
        Add("a", &fakeClient{pingErr: fmt.Errorf("a down")}).
        Add("b", &fakeClient{})
    if err := c.Ping(context.Background()); err != nil {
        t.Fatalf("one healthy provider should be enough: %v", err)
    }
}
