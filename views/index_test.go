package views

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/hollow-pines/game"
)

func TestHUDEscapesMessages(t *testing.T) {
	var b strings.Builder
	snap := game.Snapshot{
		Phase:          game.PhasePlaying,
		Danger:         0.5,
		ItemsRemaining: 2,
		Items:          game.Items{{ID: "a"}, {ID: "b"}, {ID: "c", Collected: true}},
		Messages:       []string{"<script>boo</script>"},
	}

	if err := HUD(snap).Render(context.Background(), &b); err != nil {
		t.Fatal(err)
	}
	out := b.String()

	if strings.Contains(out, "<script>") {
		t.Fatalf("message was not escaped: %s", out)
	}
	if !strings.Contains(out, `id="hud"`) || !strings.Contains(out, "2 of 3 lost things remain") {
		t.Fatalf("unexpected HUD: %s", out)
	}
	if !strings.Contains(out, "width: 50%") {
		t.Fatalf("danger bar missing: %s", out)
	}
}

func TestIndexRendersShell(t *testing.T) {
	var b strings.Builder
	if err := Index("abc").Render(context.Background(), &b); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(b.String(), "/session/stream") || !strings.Contains(b.String(), `data-session="abc"`) {
		t.Fatalf("unexpected page: %s", b.String())
	}
}

func TestIndexEscapesSessionID(t *testing.T) {
	var b strings.Builder
	if err := Index(`"><script>x</script>`).Render(context.Background(), &b); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(b.String(), "<script>x") {
		t.Fatalf("session id was not escaped: %s", b.String())
	}
	if !strings.Contains(b.String(), `data-session="&#34;&gt;&lt;script&gt;x&lt;/script&gt;"`) {
		t.Fatalf("unexpected session attribute: %s", b.String())
	}
}

func TestHUDPhaseAndBattery(t *testing.T) {
	var b strings.Builder
	snap := game.Snapshot{
		Phase:   game.PhaseJumpscare,
		Battery: game.Battery{Level: 42.5, LightOn: true},
	}
	if err := HUD(snap).Render(context.Background(), &b); err != nil {
		t.Fatal(err)
	}
	out := b.String()
	for _, want := range []string{`data-phase="jumpscare"`, "IT FOUND YOU", "Flashlight on, battery 42.5%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("HUD missing %q: %s", want, out)
		}
	}
	if strings.Contains(out, `class="messages"`) {
		t.Fatalf("empty message list rendered: %s", out)
	}
}
