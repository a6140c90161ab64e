package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/smokyabdulrahman/waktu-solat/internal/countdown"
	"github.com/smokyabdulrahman/waktu-solat/internal/feed"
	"github.com/smokyabdulrahman/waktu-solat/internal/loader"
	"github.com/smokyabdulrahman/waktu-solat/internal/prayer"
	"github.com/smokyabdulrahman/waktu-solat/internal/schedule"
	"github.com/smokyabdulrahman/waktu-solat/internal/view"
	"github.com/smokyabdulrahman/waktu-solat/internal/zones"
)

// Error is a handler failure with the status code to answer with.
type Error struct {
	Code    int
	Message string
}

// HandlerFunc returns a JSON body or an Error.
type HandlerFunc func(c *gin.Context) (any, *Error)

func resolve(h HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, herr := h(c)
		if herr != nil {
			c.JSON(herr.Code, gin.H{"error": herr.Message})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func badRequest(format string, a ...any) *Error {
	return &Error{Code: http.StatusBadRequest, Message: fmt.Sprintf(format, a...)}
}

// upstream logs a fetch failure and maps it to 400 when no zone was given,
// 502 otherwise.
func (s *Server) upstream(c *gin.Context, zone string, err error) *Error {
	s.log.Warn().Err(err).Str("zone", zone).Str("request_id", c.GetString("request_id")).Msg("fetch failed")
	if errors.Is(err, loader.ErrNoZone) {
		return badRequest("zone is required")
	}
	return &Error{Code: http.StatusBadGateway, Message: err.Error()}
}

// GET /api/v1/zones
func (s *Server) listZones(c *gin.Context) (any, *Error) {
	if state := c.Query("state"); state != "" {
		return zones.ForState(state), nil
	}
	return zones.All(), nil
}

// GET /api/v1/zones/:zone/schedule?month=1-12&q=
func (s *Server) getSchedule(c *gin.Context) (any, *Error) {
	zone := loader.NormalizeZone(c.Param("zone"))
	now := s.now().In(s.loc)
	today := schedule.DateOf(now)

	month := int(today.Month)
	if raw := c.Query("month"); raw != "" {
		m, err := strconv.Atoi(raw)
		if err != nil || m < 1 || m > 12 {
			return nil, badRequest("invalid month %q: must be 1-12", raw)
		}
		month = m
	}

	sched, err := s.loader.Fetch(c.Request.Context(), zone)
	if err != nil {
		return nil, s.upstream(c, zone, err)
	}

	search := strings.TrimSpace(c.Query("q"))
	lines := view.Apply(sched, view.Filter{Month: month - 1, Search: search}, today)
	cursor := view.NewCursor(sched.Year(), today).Set(month - 1)

	resp := scheduleResponse{
		Zone:       zone,
		Year:       sched.Year(),
		Month:      month,
		MonthLabel: cursor.Label(),
		Search:     search,
		Headers:    view.Headers(s.loader.Layout(), view.Width(lines)),
		Rows:       make([]rowResponse, 0, len(lines)),
	}
	for _, l := range lines {
		resp.Rows = append(resp.Rows, newRowResponse(l))
	}
	return resp, nil
}

// GET /api/v1/zones/:zone/next
func (s *Server) getNext(c *gin.Context) {
	zone := loader.NormalizeZone(c.Param("zone"))
	sched, err := s.loader.Fetch(c.Request.Context(), zone)
	if err != nil {
		herr := s.upstream(c, zone, err)
		c.JSON(herr.Code, gin.H{"error": herr.Message})
		return
	}

	st, ok := prayer.Resolve(sched, s.now().In(s.loc))
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, newNextResponse(zone, st))
}

// GET /download/:zone/:kind
func (s *Server) download(c *gin.Context) {
	kind, err := feed.ParseKind(c.Param("kind"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	zone := loader.NormalizeZone(c.Param("zone"))

	data, name, err := s.loader.Download(c.Request.Context(), zone, kind)
	if err != nil {
		herr := s.upstream(c, zone, err)
		c.JSON(herr.Code, gin.H{"error": herr.Message})
		return
	}

	contentType := "text/csv; charset=utf-8"
	if kind == feed.KindPDF {
		contentType = "application/pdf"
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, contentType, data)
}

// GET /?zone=&month=&q=
func (s *Server) index(c *gin.Context) {
	zone := loader.NormalizeZone(c.DefaultQuery("zone", s.defaultZone))
	now := s.now().In(s.loc)
	today := schedule.DateOf(now)

	page := indexPage{
		Zones:  zones.All(),
		Zone:   zone,
		Search: strings.TrimSpace(c.Query("q")),
		Month:  int(today.Month),
	}
	if m, err := strconv.Atoi(c.Query("month")); err == nil && m >= 1 && m <= 12 {
		page.Month = m
	}

	status := http.StatusOK
	if zone != "" {
		sched, err := s.loader.Fetch(c.Request.Context(), zone)
		if err != nil {
			s.log.Warn().Err(err).Str("zone", zone).Msg("fetch failed")
			page.Error = loader.PlaceholderText
			status = http.StatusBadGateway
		} else {
			page.fill(sched, s.loader.Layout(), today, now)
		}
	}

	c.HTML(status, "index.html.tmpl", page)
}

// indexPage is the data behind index.html.tmpl.
type indexPage struct {
	Zones      []zones.Zone
	Zone       string
	Month      int // 1-12
	MonthLabel string
	Search     string
	Headers    []string
	Rows       []rowResponse
	Next       string
	Active     string
	Error      string
}

func (p *indexPage) fill(sched *schedule.Schedule, layout schedule.Layout, today schedule.Date, now time.Time) {
	lines := view.Apply(sched, view.Filter{Month: p.Month - 1, Search: p.Search}, today)
	p.MonthLabel = view.NewCursor(sched.Year(), today).Set(p.Month - 1).Label()
	p.Headers = view.Headers(layout, view.Width(lines))
	for _, l := range lines {
		p.Rows = append(p.Rows, newRowResponse(l))
	}
	if st, ok := prayer.Resolve(sched, now); ok {
		frame := countdown.Render(st)
		p.Next, p.Active = frame.Next, frame.Active
	}
}
