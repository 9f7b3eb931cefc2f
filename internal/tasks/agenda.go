package tasks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/desertthunder/gbx/internal/models"
	"github.com/desertthunder/gbx/internal/shared"
	"golang.org/x/time/rate"
)

// ScheduleAPI is the slice of the HTTP client the engine needs.
type ScheduleAPI interface {
	MonthAvailability(ctx context.Context, providerID string, year, month int) ([]models.MonthDay, error)
	DayAppointments(ctx context.Context, day time.Time) ([]models.Appointment, error)
}

// AgendaOpts contains configuration for month exports.
type AgendaOpts struct {
	NumWorkers int     // Concurrent workers (default: 4)
	RateLimit  float64 // Requests per second (default: 5)
}

// DayResult is the outcome of fetching one day's appointments.
type DayResult struct {
	Day          int
	Appointments []models.Appointment
	Error        error
}

// AgendaRunResult contains all data from a month export plus per-day failures.
type AgendaRunResult struct {
	Export      models.ScheduleExport
	FailedDays  []DayResult
	FetchedDays int
}

// AgendaEngine assembles a provider's month schedule from the remote API.
type AgendaEngine struct {
	api ScheduleAPI
}

// NewAgendaEngine creates an engine over the given API client.
func NewAgendaEngine(api ScheduleAPI) *AgendaEngine {
	return &AgendaEngine{api: api}
}

// ExportMonth fetches availability for one month, then the appointments of
// every available day with a worker pool behind a shared rate limiter.
// Per-day failures degrade the result rather than aborting it; the error
// return is reserved for the availability call and context cancellation.
func (e *AgendaEngine) ExportMonth(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	providerID string,
	year, month int,
	opts AgendaOpts,
) (*AgendaRunResult, error) {
	if e.api == nil {
		return nil, fmt.Errorf("%w: API client not initialized", shared.ErrServiceUnavailable)
	}

	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 4
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	e.sendProgress(prog, fetchAvailabilityUpdate(year, month))

	availability, err := e.api.MonthAvailability(ctx, providerID, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch month availability: %w", err)
	}

	var days []int
	for _, d := range availability {
		if d.Available {
			days = append(days, d.Day)
		}
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan int, len(days))
	results := make(chan DayResult, len(days))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.dayWorker(ctx, &wg, limiter, providerID, year, month, jobs, results)
	}

	go func() {
		defer close(jobs)
		for i, day := range days {
			select {
			case <-ctx.Done():
				return
			case jobs <- day:
				e.sendProgress(prog, fetchDayUpdate(i+1, len(days), day))
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	result := &AgendaRunResult{
		Export: models.ScheduleExport{
			ProviderID: providerID,
			Year:       year,
			Month:      month,
		},
	}

	step := 0
	for res := range results {
		step++
		if res.Error != nil {
			result.FailedDays = append(result.FailedDays, res)
			e.sendProgress(prog, dayFailedUpdate(step, len(days), res.Day, res.Error))
			continue
		}

		result.FetchedDays++
		result.Export.Days = append(result.Export.Days, models.DaySchedule{
			Day:          res.Day,
			Appointments: res.Appointments,
		})
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Workers complete out of order
	sort.Slice(result.Export.Days, func(i, j int) bool {
		return result.Export.Days[i].Day < result.Export.Days[j].Day
	})
	sort.Slice(result.FailedDays, func(i, j int) bool {
		return result.FailedDays[i].Day < result.FailedDays[j].Day
	})

	e.sendProgress(prog, assembledUpdate(len(result.Export.Days), result.Export.TotalAppointments()))

	return result, nil
}

func (e *AgendaEngine) dayWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	limiter *rate.Limiter,
	providerID string,
	year, month int,
	jobs <-chan int,
	results chan<- DayResult,
) {
	defer wg.Done()

	for day := range jobs {
		if err := limiter.Wait(ctx); err != nil {
			results <- DayResult{Day: day, Error: err}
			continue
		}

		date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		appointments, err := e.api.DayAppointments(ctx, date)
		if err != nil {
			results <- DayResult{Day: day, Error: fmt.Errorf("failed to fetch day %d: %w", day, err)}
			continue
		}

		results <- DayResult{Day: day, Appointments: appointments}
	}
}

// sendProgress delivers an update without blocking a slow or absent consumer.
func (e *AgendaEngine) sendProgress(prog chan<- ProgressUpdate, update ProgressUpdate) {
	if prog == nil {
		return
	}
	select {
	case prog <- update:
	default:
	}
}
