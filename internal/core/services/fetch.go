package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/custodia-labs/graphscope/internal/core/domain"
	"github.com/custodia-labs/graphscope/internal/core/ports/driven"
	"github.com/custodia-labs/graphscope/internal/core/ports/driving"
	"github.com/custodia-labs/graphscope/internal/logger"
)

// Ensure FetchService implements the interface.
var _ driving.FetchOrchestrator = (*FetchService)(nil)

// Advisory and outcome messages shown by Run.
const (
	emailAdvisory = "Note: 'email' is often not returned unless your app and user have " +
		"the email permission. Fetch will still run."
	expiredAdvisory = "Note: the access token from login has expired. Log in again if the fetch fails."
	noResultsError  = "No results found: /me returned no id."
)

// FetchService validates user input and runs the profile, picture and
// permissions calls concurrently.
type FetchService struct {
	api       driven.GraphAPI
	config    driven.ConfigSource
	sessions  driven.SessionStore
	presenter driven.Presenter
	now       func() time.Time

	inFlight atomic.Bool
}

// NewFetchService creates the fetch orchestrator.
// The sessions store is optional and only feeds the expired-token advisory.
// A nil presenter discards all presentation calls.
func NewFetchService(
	api driven.GraphAPI,
	config driven.ConfigSource,
	sessions driven.SessionStore,
	presenter driven.Presenter,
) *FetchService {
	if presenter == nil {
		presenter = nopPresenter{}
	}
	return &FetchService{
		api:       api,
		config:    config,
		sessions:  sessions,
		presenter: presenter,
		now:       time.Now,
	}
}

// fetchRequest is a validated, normalised FetchParams.
type fetchRequest struct {
	token       string
	fields      []string
	pictureType domain.PictureType
}

// prepare validates params and normalises the field list.
func (s *FetchService) prepare(params domain.FetchParams) (fetchRequest, error) {
	if err := domain.ValidateFetchInput(params.Token, params.Fields); err != nil {
		return fetchRequest{}, err
	}

	pictureType := params.PictureType
	if pictureType == "" {
		pictureType = s.config.Config().DefaultPictureType
	}
	if !pictureType.IsValid() {
		return fetchRequest{}, &domain.ValidationError{
			Field:   domain.InputPicture,
			Message: "Invalid input: Picture type must be one of small, normal, large, square.",
		}
	}

	return fetchRequest{
		token:       strings.TrimSpace(params.Token),
		fields:      domain.NormalizeFields(strings.TrimSpace(params.Fields)),
		pictureType: pictureType,
	}, nil
}

// Fetch validates params and performs the three API calls.
// Validation failures are *domain.ValidationError; API failures are
// *domain.FetchError. A /me payload without an id sets NoResults.
func (s *FetchService) Fetch(ctx context.Context, params domain.FetchParams) (*domain.FetchResult, error) {
	req, err := s.prepare(params)
	if err != nil {
		return nil, err
	}
	return s.fetch(ctx, req)
}

// fetch issues the three calls concurrently and waits for all of them.
// The first failure cancels the others and is the one reported; there is
// no partial result and no retry.
func (s *FetchService) fetch(ctx context.Context, req fetchRequest) (*domain.FetchResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fields := strings.Join(req.fields, ",")
	result := &domain.FetchResult{RequestedFields: req.fields}

	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)

	call := func(name string, dst *domain.ProviderResponse, fn func(context.Context) (domain.ProviderResponse, error)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := fn(ctx)
			if err != nil {
				once.Do(func() {
					logger.Debug("%s failed: %v", name, err)
					firstErr = err
					cancel()
				})
				return
			}
			*dst = resp
		}()
	}

	logger.Debug("Fetching /me fields=%s picture=%s token=%s", fields, req.pictureType, logger.Secret(req.token))

	call("me", &result.Profile, func(ctx context.Context) (domain.ProviderResponse, error) {
		return s.api.Me(ctx, req.token, fields)
	})
	call("picture", &result.Picture, func(ctx context.Context) (domain.ProviderResponse, error) {
		return s.api.Picture(ctx, req.token, req.pictureType)
	})
	call("permissions", &result.Permissions, func(ctx context.Context) (domain.ProviderResponse, error) {
		return s.api.Permissions(ctx, req.token)
	})

	wg.Wait()

	if firstErr != nil {
		var apiErr *domain.APIError
		if !errors.As(firstErr, &apiErr) {
			apiErr = &domain.APIError{Message: firstErr.Error()}
		}
		return nil, domain.NewFetchError(apiErr)
	}

	if domain.ProfileOf(result.Profile).ID == "" {
		result.NoResults = true
	}
	return result, nil
}

// Run performs a fetch and maps the outcome to presentation calls.
// A Run started while another is in flight returns OutcomeBusy without
// touching the presenter. Busy is always switched off before returning.
func (s *FetchService) Run(ctx context.Context, params domain.FetchParams) domain.FetchOutcome {
	if !s.inFlight.CompareAndSwap(false, true) {
		return domain.FetchOutcome{
			Kind:    domain.OutcomeBusy,
			Err:     domain.ErrFetchInProgress,
			Message: "A fetch is already running.",
		}
	}
	defer s.inFlight.Store(false)

	s.presenter.ClearError()

	req, err := s.prepare(params)
	if err != nil {
		return s.presentInvalid(err)
	}

	s.advise(req)

	s.presenter.SetBusy(true)
	s.presenter.SetStatus("Loading", domain.StatusIdle)
	defer s.presenter.SetBusy(false)

	result, err := s.fetch(ctx, req)
	if err != nil {
		return s.presentFailure(err)
	}

	if result.NoResults {
		s.presenter.ShowError(noResultsError)
		s.presenter.SetStatus("No results", domain.StatusBad)
		s.presenter.RenderRawPayload(result.Combined())
		s.presenter.RenderEmpty("No results found.")
		return domain.FetchOutcome{Kind: domain.OutcomeNoResults, Result: result, Message: noResultsError}
	}

	s.presenter.RenderProfile(result.Profile, result.Picture, result.RequestedFields)
	s.presenter.RenderPermissions(result.Permissions)
	s.presenter.RenderRawPayload(result.Combined())
	s.presenter.SetStatus("Success", domain.StatusOK)

	return domain.FetchOutcome{Kind: domain.OutcomeSuccess, Result: result}
}

// advise shows non-blocking notes about the request before it runs.
func (s *FetchService) advise(req fetchRequest) {
	if domain.ContainsField(req.fields, "email") && !s.config.Config().HasScope("email") {
		s.presenter.ShowError(emailAdvisory)
	}

	if s.sessions == nil {
		return
	}
	session := s.sessions.Session()
	if session.Connected && session.AccessToken == req.token && session.Expired(s.now()) {
		s.presenter.ShowError(expiredAdvisory)
	}
}

func (s *FetchService) presentInvalid(err error) domain.FetchOutcome {
	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		vErr = &domain.ValidationError{Message: err.Error()}
	}

	s.presenter.ShowError(vErr.Message)
	s.presenter.SetStatus("Invalid input", domain.StatusBad)
	if vErr.Field != "" {
		s.presenter.FocusInput(vErr.Field)
	}

	return domain.FetchOutcome{Kind: domain.OutcomeInvalid, Err: vErr, Message: vErr.Message}
}

func (s *FetchService) presentFailure(err error) domain.FetchOutcome {
	var fetchErr *domain.FetchError
	if !errors.As(err, &fetchErr) {
		fetchErr = &domain.FetchError{Category: domain.CategoryGeneric, Message: fmt.Sprintf("Failed API request: %v", err)}
	}

	s.presenter.ShowError(fetchErr.Message)
	s.presenter.RenderRawPayload(fetchErr.Payload())
	s.presenter.SetStatus("Error", domain.StatusBad)

	return domain.FetchOutcome{Kind: domain.OutcomeFailed, Err: fetchErr, Message: fetchErr.Message}
}
