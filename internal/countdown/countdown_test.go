package countdown

import (
	"testing"
	"time"

	"github.com/smokyabdulrahman/waktu-solat/internal/schedule"
)

var myt = time.FixedZone("MYT", 8*3600)

func loadedStore(t *testing.T) *schedule.Store {
	t.Helper()
	body := "h\n" +
		"01/01/2025,x,Rabu,5:52 AM,6:02 AM,7:13 AM,1:17 PM,4:41 PM,7:17 PM,8:32 PM\n" +
		"02/01/2025,x,Khamis,5:53 AM,6:03 AM,7:13 AM,1:17 PM,4:41 PM,7:18 PM,8:32 PM\n"
	s, err := schedule.DecodeBytes("SGR01", []byte(body), schedule.DefaultLayout())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	store := &schedule.Store{}
	store.Replace("SGR01", s)
	return store
}

func fixed(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestTick(t *testing.T) {
	store := loadedStore(t)

	tests := []struct {
		name       string
		now        time.Time
		wantNext   string
		wantActive string
	}{
		{
			"dhuha",
			time.Date(2025, 1, 1, 10, 14, 57, 0, myt),
			"Waktu seterusnya: Zohor dalam 3 jam 2 minit 3 saat",
			"Sedang dalam waktu: Dhuha",
		},
		{
			"before imsak wraps to isyak",
			time.Date(2025, 1, 1, 5, 0, 0, 0, myt),
			"Waktu seterusnya: Imsak dalam 0 jam 52 minit 0 saat",
			"Sedang dalam waktu: Isyak",
		},
		{
			"after isyak uses tomorrow",
			time.Date(2025, 1, 1, 23, 0, 0, 0, myt),
			"Waktu seterusnya: Imsak dalam 6 jam 53 minit 0 saat",
			"Sedang dalam waktu: Isyak",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := New(store, fixed(tt.now)).Tick()
			if !ok {
				t.Fatal("Tick returned ok=false")
			}
			if f.Next != tt.wantNext {
				t.Errorf("Next = %q, want %q", f.Next, tt.wantNext)
			}
			if f.Active != tt.wantActive {
				t.Errorf("Active = %q, want %q", f.Active, tt.wantActive)
			}
		})
	}
}

func TestTick_NothingToShow(t *testing.T) {
	if _, ok := New(&schedule.Store{}, nil).Tick(); ok {
		t.Error("empty store should render nothing")
	}

	store := loadedStore(t)
	late := time.Date(2025, 1, 2, 23, 0, 0, 0, myt)
	if _, ok := New(store, fixed(late)).Tick(); ok {
		t.Error("after the last row's Isyak there is no tomorrow; nothing should render")
	}

	other := time.Date(2026, 6, 1, 12, 0, 0, 0, myt)
	if _, ok := New(store, fixed(other)).Tick(); ok {
		t.Error("date outside the schedule should render nothing")
	}
}

func TestTick_RecomputesEachCall(t *testing.T) {
	store := loadedStore(t)
	now := time.Date(2025, 1, 1, 13, 16, 59, 0, myt)
	p := New(store, func() time.Time { return now })

	f1, _ := p.Tick()
	now = now.Add(2 * time.Second)
	f2, _ := p.Tick()

	if f1.State.Next.Name != "Zohor" || f2.State.Next.Name != "Asar" {
		t.Errorf("next = %s then %s, want Zohor then Asar", f1.State.Next.Name, f2.State.Next.Name)
	}
}
