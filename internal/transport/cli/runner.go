package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/samber/mo"

	"availability/internal/config"
	"availability/internal/domain"
	"availability/internal/service/availability"
)

// RangeArg is a start/end pair in ISO-8601 interval notation
// ("2024-01-01T09:00:00Z/2024-01-01T17:00:00Z").
type RangeArg struct {
	Start string
	End   string
}

// WeeklyArg is a template range plus the weekdays it repeats on
// ("<start>/<end>@1,3,5").
type WeeklyArg struct {
	Range    RangeArg
	Weekdays []int
}

type Request struct {
	WindowStart string
	WindowEnd   string
	Offset      mo.Option[string]
	Add         []RangeArg
	Weekly      []WeeklyArg
	Remove      []RangeArg
	Check       []RangeArg
}

type CheckResult struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	Available bool   `json:"available"`
}

type Result struct {
	Availabilities []availability.Availability `json:"availabilities"`
	Checks         []CheckResult               `json:"checks,omitempty"`
}

func ParseRange(s string) (RangeArg, error) {
	start, end, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok || start == "" || end == "" {
		return RangeArg{}, &availability.ValidationError{
			Field:  "range",
			Reason: fmt.Sprintf("%q is not of the form start/end", s),
			Kind:   domain.ErrInvalidRange,
		}
	}
	return RangeArg{Start: start, End: end}, nil
}

func ParseWeekly(s string) (WeeklyArg, error) {
	rangePart, daysPart, ok := strings.Cut(strings.TrimSpace(s), "@")
	if !ok {
		return WeeklyArg{}, &availability.ValidationError{
			Field:  "weekly",
			Reason: fmt.Sprintf("%q is not of the form start/end@weekdays", s),
			Kind:   domain.ErrInvalidWeekday,
		}
	}

	r, err := ParseRange(rangePart)
	if err != nil {
		return WeeklyArg{}, err
	}

	var weekdays []int
	for _, f := range strings.Split(daysPart, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		wd, err := strconv.Atoi(f)
		if err != nil {
			return WeeklyArg{}, &availability.ValidationError{
				Field:  "weekly",
				Reason: fmt.Sprintf("weekday %q is not a number", f),
				Kind:   domain.ErrInvalidWeekday,
			}
		}
		weekdays = append(weekdays, wd)
	}

	return WeeklyArg{Range: r, Weekdays: weekdays}, nil
}

// RequestFromConfig decodes the range arguments carried by cfg.
func RequestFromConfig(cfg config.Config) (Request, error) {
	req := Request{
		WindowStart: cfg.WindowStart,
		WindowEnd:   cfg.WindowEnd,
		Offset:      mo.EmptyableToOption(cfg.Offset),
	}

	var err error
	if req.Add, err = parseRanges(cfg.Add); err != nil {
		return Request{}, err
	}
	if req.Remove, err = parseRanges(cfg.Remove); err != nil {
		return Request{}, err
	}
	if req.Check, err = parseRanges(cfg.Check); err != nil {
		return Request{}, err
	}
	for _, s := range cfg.Weekly {
		w, err := ParseWeekly(s)
		if err != nil {
			return Request{}, err
		}
		req.Weekly = append(req.Weekly, w)
	}

	return req, nil
}

func parseRanges(in []string) ([]RangeArg, error) {
	out := make([]RangeArg, 0, len(in))
	for _, s := range in {
		r, err := ParseRange(s)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

type Runner struct {
	log *slog.Logger
}

func NewRunner(log *slog.Logger) *Runner {
	if log == nil {
		log = slog.Default()
	}
	return &Runner{log: log.With(slog.String("component", "cli.availability"))}
}

// Run builds a schedule for the request window and applies its operations
// in order: adds, weekly adds, removes. Checks and the query see the final
// state. The first failing operation aborts the run.
func (r *Runner) Run(req Request) (Result, error) {
	sched, err := availability.New(req.WindowStart, req.WindowEnd)
	if err != nil {
		return Result{}, r.fail("New", err)
	}
	r.log.Debug("schedule created", slog.String("window_start", req.WindowStart), slog.String("window_end", req.WindowEnd))

	for _, a := range req.Add {
		if err := sched.Add(a.Start, a.End); err != nil {
			return Result{}, r.fail("Add", err, rangeAttrs(a)...)
		}
		r.log.Debug("availability added", rangeAttrs(a)...)
	}

	for _, w := range req.Weekly {
		if err := sched.AddWeeklyRecurring(w.Range.Start, w.Range.End, w.Weekdays); err != nil {
			return Result{}, r.fail("AddWeeklyRecurring", err, rangeAttrs(w.Range)...)
		}
		r.log.Debug("weekly availability added", append(rangeAttrs(w.Range), slog.Any("weekdays", w.Weekdays))...)
	}

	for _, rm := range req.Remove {
		if err := sched.Remove(rm.Start, rm.End); err != nil {
			return Result{}, r.fail("Remove", err, rangeAttrs(rm)...)
		}
		r.log.Debug("availability removed", rangeAttrs(rm)...)
	}

	checks := make([]CheckResult, 0, len(req.Check))
	for _, c := range req.Check {
		ok, err := sched.Contains(c.Start, c.End)
		if err != nil {
			return Result{}, r.fail("Contains", err, rangeAttrs(c)...)
		}
		checks = append(checks, CheckResult{Start: c.Start, End: c.End, Available: ok})
	}

	out, err := sched.Query(req.Offset)
	if err != nil {
		return Result{}, r.fail("Query", err, slog.String("offset", req.Offset.OrEmpty()))
	}

	r.log.Info(
		"availabilities computed",
		slog.Int("count", len(out)),
		slog.Int("checks", len(checks)),
		slog.String("offset", req.Offset.OrEmpty()),
	)

	return Result{Availabilities: out, Checks: checks}, nil
}

func (r *Runner) fail(op string, err error, attrs ...any) error {
	log := r.log.With(slog.String("op", op))
	var vErr *availability.ValidationError
	if errors.As(err, &vErr) {
		log.Warn("invalid argument", append([]any{slog.Any("err", err)}, attrs...)...)
		return err
	}
	log.Error("operation failed", append([]any{slog.Any("err", err)}, attrs...)...)
	return err
}

func rangeAttrs(a RangeArg) []any {
	return []any{slog.String("start", a.Start), slog.String("end", a.End)}
}
