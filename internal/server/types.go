package server

import (
	"html/template"
	"time"

	"github.com/smokyabdulrahman/waktu-solat/internal/countdown"
	"github.com/smokyabdulrahman/waktu-solat/internal/prayer"
	"github.com/smokyabdulrahman/waktu-solat/internal/view"
)

type scheduleResponse struct {
	Zone       string        `json:"zone"`
	Year       int           `json:"year"`
	Month      int           `json:"month"`
	MonthLabel string        `json:"month_label"`
	Search     string        `json:"search,omitempty"`
	Headers    []string      `json:"headers"`
	Rows       []rowResponse `json:"rows"`
}

type rowResponse struct {
	Date  string            `json:"date,omitempty"` // ISO 8601
	Cells []string          `json:"cells"`
	Times map[string]string `json:"times"`
	Today bool              `json:"today,omitempty"`
}

func newRowResponse(l view.Line) rowResponse {
	r := rowResponse{
		Cells: l.Row.Fields,
		Times: make(map[string]string, len(prayer.Names)),
		Today: l.Today,
	}
	if l.Row.HasDate() {
		r.Date = l.Row.Date.String()
	}
	for i, name := range prayer.Names {
		r.Times[name] = l.Row.Times[i]
	}
	return r
}

type nextResponse struct {
	Zone      string           `json:"zone"`
	Active    string           `json:"active"`
	Next      nextPrayer       `json:"next"`
	Remaining prayer.Remaining `json:"remaining"`
	Text      string           `json:"text"`
	Banner    bannerResponse   `json:"banner"`
}

// bannerResponse carries the countdown lines the web page refreshes.
type bannerResponse struct {
	Next   string `json:"next"`
	Active string `json:"active"`
}

type nextPrayer struct {
	Name string    `json:"name"`
	Time time.Time `json:"time"`
}

func newNextResponse(zone string, st prayer.State) nextResponse {
	frame := countdown.Render(st)
	return nextResponse{
		Zone:      zone,
		Active:    st.Active,
		Next:      nextPrayer{Name: st.Next.Name, Time: st.Next.Time},
		Remaining: st.Remaining,
		Text:      prayer.FormatOutput(st, prayer.FormatFull, prayer.Layout24h),
		Banner:    bannerResponse{Next: frame.Next, Active: frame.Active},
	}
}

var templateFuncs = template.FuncMap{
	"prev": func(m int) int { return max(m-1, 1) },
	"next": func(m int) int { return min(m+1, 12) },
}
