// Package service coordinates one planning run: it executes the agent
// sequence, renders the plan, stores it for the session, and exports it
// to the artifact store when one is configured.
package service

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/alfredang/trip-advisor/internal/gateway/repository/artifact"
	"github.com/alfredang/trip-advisor/internal/gateway/repository/planstore"
	"github.com/alfredang/trip-advisor/internal/pipeline"
	"github.com/alfredang/trip-advisor/internal/trip"
)

type Planner struct {
	seq      *pipeline.Sequence
	store    *planstore.Store
	artifact artifact.Store

	planCounter atomic.Int64
	now         func() time.Time
}

// NewPlanner wires the sequence to the session store. The artifact
// store may be nil.
func NewPlanner(seq *pipeline.Sequence, store *planstore.Store, artifactStore artifact.Store) *Planner {
	return &Planner{
		seq:      seq,
		store:    store,
		artifact: artifactStore,
		now:      time.Now,
	}
}

// Generate runs the full sequence for one request. The observer may be
// nil. On failure no record is stored and no partial plan exists.
func (s *Planner) Generate(ctx context.Context, req trip.Request, obs pipeline.Observer) (planstore.Record, error) {
	plan, err := s.seq.Run(ctx, req, obs)
	if err != nil {
		return planstore.Record{}, err
	}

	createdAt := s.now()
	rec := planstore.Record{
		ID:        s.newPlanID(),
		Plan:      plan,
		Markdown:  plan.Render(),
		Filename:  plan.Filename(createdAt),
		CreatedAt: createdAt,
	}

	if s.artifact != nil {
		if err := s.artifact.Put(ctx, rec.ID, rec.Filename, []byte(rec.Markdown)); err != nil {
			log.Printf("plan %s artifact export failed: %v", rec.ID, err)
		} else if url, err := s.artifact.GetURL(ctx, rec.ID, rec.Filename); err == nil {
			rec.ExportURL = url
		}
	}

	s.store.Put(rec)
	return rec, nil
}

// Lookup returns a stored plan by id.
func (s *Planner) Lookup(id string) (planstore.Record, bool) {
	return s.store.Get(id)
}

func (s *Planner) newPlanID() string {
	n := s.planCounter.Add(1)
	return fmt.Sprintf("plan-%d", n)
}
