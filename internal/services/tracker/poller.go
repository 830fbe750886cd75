package tracker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/agentdesk/console-service/internal/core/archive"
	domainerrors "github.com/agentdesk/console-service/internal/domain/errors"
	"github.com/agentdesk/console-service/internal/domain/models"
	"github.com/agentdesk/console-service/internal/services/backend"
)

// PollOutcome is the terminal state of a poll loop.
type PollOutcome int

const (
	// OutcomeResolved means the backend reported a non-pending status and the
	// response was stored.
	OutcomeResolved PollOutcome = iota
	// OutcomeTimedOut means the attempt budget ran out while still pending.
	OutcomeTimedOut
	// OutcomeFailed means the attempt budget ran out while the status fetch
	// kept erroring.
	OutcomeFailed
	// OutcomeCanceled means the loop was stopped before reaching a terminal
	// backend state, e.g. during shutdown.
	OutcomeCanceled
)

// String implements fmt.Stringer.
func (o PollOutcome) String() string {
	switch o {
	case OutcomeResolved:
		return "resolved"
	case OutcomeTimedOut:
		return "timed-out"
	case OutcomeFailed:
		return "failed"
	case OutcomeCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Poll is the handle of one detached poll loop. Loops run independently per
// request id; concurrent loops never share an attempt counter.
type Poll struct {
	requestID string
	cancel    context.CancelFunc
	done      chan struct{}
	outcome   PollOutcome
}

// RequestID returns the request id this loop polls for.
func (p *Poll) RequestID() string {
	return p.requestID
}

// Done is closed when the loop reaches a terminal state.
func (p *Poll) Done() <-chan struct{} {
	return p.done
}

// Outcome returns the terminal state. Only valid after Done is closed.
func (p *Poll) Outcome() PollOutcome {
	<-p.done
	return p.outcome
}

// Cancel stops the loop. Callers observing Done afterwards see
// OutcomeCanceled unless the loop already terminated.
func (p *Poll) Cancel() {
	p.cancel()
}

// LookupPoll returns the poll handle for a request id, if one was started.
// Handles stay registered after completion so outcomes remain observable.
func (s *Service) LookupPoll(requestID string) (*Poll, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.polls[requestID]
	return p, ok
}

// Close cancels all outstanding poll loops and waits for them to terminate.
func (s *Service) Close() {
	s.mu.Lock()
	for _, p := range s.polls {
		p.cancel()
	}
	s.mu.Unlock()
	s.wg.Wait()
}

// startPoll launches the detached poll loop for a recorded request. The loop
// is fire-and-forget: its failures surface only through the global error
// record, never to the submitting caller.
func (s *Service) startPoll(req models.ServiceRequest, sessionID, customerID string) *Poll {
	ctx, cancel := context.WithCancel(context.Background())
	p := &Poll{
		requestID: req.RequestID,
		cancel:    cancel,
		done:      make(chan struct{}),
	}

	s.mu.Lock()
	s.polls[req.RequestID] = p
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer close(p.done)
		p.outcome = s.poll(ctx, req, sessionID, customerID)
	}()

	return p
}

// poll runs the fixed-interval status loop for one request id.
//
// Fetch errors and pending responses share the same attempt counter and
// ceiling; an erroring backend exhausts the budget at the same pace as one
// that keeps answering "pending".
func (s *Service) poll(ctx context.Context, req models.ServiceRequest, sessionID, customerID string) PollOutcome {
	attempts := 0
	for {
		attempts++
		resp, err := s.backend.GetServiceResponse(ctx, req.RequestID)
		switch {
		case err == nil && !resp.Pending():
			s.storeResponse(req.RequestID, *resp)
			s.archiveResolved(ctx, req, *resp, sessionID, customerID)
			return OutcomeResolved

		case err == nil:
			if attempts >= s.maxAttempts {
				timedOut := domainerrors.NewRequestTimedOutError()
				s.status.SetError(timedOut.Message, timedOut.Details)
				return OutcomeTimedOut
			}

		default:
			log.Warn().
				Err(err).
				Str("domain", s.domain.Name).
				Str("request_id", req.RequestID).
				Int("attempt", attempts).
				Msg("error polling for response")
			if attempts >= s.maxAttempts {
				pollErr := domainerrors.NewResponsePollFailedError(backend.ErrorDetail(err), err)
				s.status.SetError(pollErr.Message, pollErr.Details)
				return OutcomeFailed
			}
		}

		select {
		case <-ctx.Done():
			return OutcomeCanceled
		case <-time.After(s.pollInterval):
		}
	}
}

// storeResponse records the resolved response, overwriting any prior value
// for the same request id.
func (s *Service) storeResponse(requestID string, resp models.ServiceResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses[requestID] = resp
}

// archiveResolved writes the request/response pair to the archive,
// best-effort.
func (s *Service) archiveResolved(ctx context.Context, req models.ServiceRequest, resp models.ServiceResponse, sessionID, customerID string) {
	if s.archive == nil {
		return
	}
	rec := &archive.ResolvedRequest{
		Domain:     s.domain.Name,
		SessionID:  sessionID,
		CustomerID: customerID,
		Request:    req,
		Response:   resp,
		ResolvedAt: s.now().UTC(),
	}
	if err := s.archive.SaveResolvedRequest(ctx, rec); err != nil {
		log.Warn().
			Err(err).
			Str("domain", s.domain.Name).
			Str("request_id", req.RequestID).
			Msg("failed to archive resolved request")
	}
}
