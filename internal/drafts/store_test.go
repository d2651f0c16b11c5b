package drafts

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/swapcell/swapcell/internal/wizard"
)

func newSellSession() *wizard.Session {
	s := wizard.NewSession(wizard.FlowSell)
	s.Select(wizard.FieldBrand, "Apple")
	s.Form().Set(wizard.FieldModelName, "iPhone 12")
	return s
}

// saveSession snapshots a session the way the wizard models do before
// handing the data to Save.
func saveSession(store *Store, id string, s *wizard.Session) (*Draft, error) {
	return store.Save(id, s.Flow(), s.Step(), s.Form().Snapshot())
}

func TestSaveMintsIDAndRoundTrips(t *testing.T) {
	store := NewStore(t.TempDir())

	d, err := saveSession(store, "", newSellSession())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if d.ID == "" {
		t.Fatal("Save should mint an id for new drafts")
	}

	got, err := store.Get(d.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Flow != wizard.FlowSell {
		t.Errorf("flow = %q", got.Flow)
	}
	if got.Values[wizard.FieldBrand] != "Apple" || got.Values[wizard.FieldModelName] != "iPhone 12" {
		t.Errorf("values = %v", got.Values)
	}
}

func TestSaveKeepsCreatedAtOnUpdate(t *testing.T) {
	store := NewStore(t.TempDir())

	d, err := saveSession(store, "", newSellSession())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	time.Sleep(10 * time.Millisecond)
	d2, err := saveSession(store, d.ID, newSellSession())
	if err != nil {
		t.Fatalf("Save update: %v", err)
	}

	if !d2.CreatedAt.Equal(d.CreatedAt) {
		t.Errorf("CreatedAt changed on update: %v -> %v", d.CreatedAt, d2.CreatedAt)
	}
	if !d2.UpdatedAt.After(d.UpdatedAt) {
		t.Errorf("UpdatedAt did not advance: %v -> %v", d.UpdatedAt, d2.UpdatedAt)
	}
}

func TestListNewestFirst(t *testing.T) {
	store := NewStore(t.TempDir())

	first, err := saveSession(store, "", newSellSession())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	second, err := saveSession(store, "", newSellSession())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	list, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d drafts", len(list))
	}
	if list[0].ID != second.ID || list[1].ID != first.ID {
		t.Errorf("order = [%s %s], want newest first", list[0].ID, list[1].ID)
	}
}

func TestListSkipsMalformedFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	if _, err := saveSession(store, "", newSellSession()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore me"), 0o644); err != nil {
		t.Fatal(err)
	}

	list, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("got %d drafts, want the one valid draft", len(list))
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	store := NewStore(t.TempDir())

	d, err := saveSession(store, "", newSellSession())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Remove(d.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := store.Remove(d.ID); err != nil {
		t.Errorf("second Remove should be a no-op, got %v", err)
	}
	if _, err := store.Get(d.ID); err == nil {
		t.Error("Get after Remove should fail")
	}
}

// Save runs on a command goroutine while the event loop keeps writing
// the form; it must only ever see the snapshot taken beforehand. Run
// with -race.
func TestSaveIsDetachedFromLiveSession(t *testing.T) {
	store := NewStore(t.TempDir())
	s := newSellSession()

	flow, step := s.Flow(), s.Step()
	values := s.Form().Snapshot()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			s.Form().Set(wizard.FieldModelName, fmt.Sprintf("iPhone %d", i))
		}
	}()

	d, err := store.Save("", flow, step, values)
	<-done
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got := d.Values[wizard.FieldModelName]; got != "iPhone 12" {
		t.Errorf("snapshot picked up later writes: model = %q", got)
	}
}

func TestResumeSessionRestoresStepAndValues(t *testing.T) {
	store := NewStore(t.TempDir())

	s := newSellSession() // brand selection auto-advanced to the details step
	d, err := saveSession(store, "", s)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := store.Get(d.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	resumed := loaded.ResumeSession()
	if resumed.Step() != s.Step() {
		t.Errorf("resumed at %q, want %q", resumed.Step(), s.Step())
	}
	if resumed.Form().Get(wizard.FieldBrand) != "Apple" {
		t.Errorf("brand = %q", resumed.Form().Get(wizard.FieldBrand))
	}
}

func TestSummary(t *testing.T) {
	tests := []struct {
		name  string
		draft Draft
		want  string
	}{
		{
			name: "sell with model",
			draft: Draft{Flow: wizard.FlowSell, Values: map[wizard.Field]string{
				wizard.FieldBrand:     "Apple",
				wizard.FieldModelName: "iPhone 12",
			}},
			want: "Apple iPhone 12",
		},
		{
			name: "sell brand only",
			draft: Draft{Flow: wizard.FlowSell, Values: map[wizard.Field]string{
				wizard.FieldBrand: "Samsung",
			}},
			want: "Samsung",
		},
		{
			name: "product with title",
			draft: Draft{Flow: wizard.FlowProduct, Values: map[wizard.Field]string{
				wizard.FieldTitle: "Galaxy S23",
			}},
			want: "Galaxy S23",
		},
		{
			name:  "empty",
			draft: Draft{Flow: wizard.FlowSell, Values: map[wizard.Field]string{}},
			want:  "(empty)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.draft.Summary(); got != tt.want {
				t.Errorf("Summary() = %q, want %q", got, tt.want)
			}
		})
	}
}
