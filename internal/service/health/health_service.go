package health

import (
	"context"

	"github.com/Domenick1991/airadmin/internal/domain"
	"github.com/Domenick1991/airadmin/internal/repository"
)

type Store interface {
	Ping(ctx context.Context) error
	CountRows(ctx context.Context, table string) (int, error)
}

type Checker struct {
	store Store
}

func NewChecker(store Store) *Checker {
	return &Checker{store: store}
}

// Check pings the store and counts rows of every table. The status is
// partial when some counts fail and error when the store is unreachable or
// no table could be counted.
func (c *Checker) Check(ctx context.Context) domain.HealthReport {
	report := domain.HealthReport{
		Status: domain.HealthOK,
		Tables: make(map[string]int, len(repository.Tables)),
	}

	if err := c.store.Ping(ctx); err != nil {
		report.Status = domain.HealthError
		report.Errors = map[string]string{"database": err.Error()}
		return report
	}

	for _, table := range repository.Tables {
		n, err := c.store.CountRows(ctx, table)
		if err != nil {
			if report.Errors == nil {
				report.Errors = make(map[string]string)
			}
			report.Errors[table] = err.Error()
			continue
		}
		report.Tables[table] = n
	}

	switch {
	case len(report.Errors) == 0:
	case len(report.Tables) == 0:
		report.Status = domain.HealthError
	default:
		report.Status = domain.HealthPartial
	}
	return report
}
