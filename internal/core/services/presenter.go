package services

import (
	"github.com/custodia-labs/graphscope/internal/core/domain"
	"github.com/custodia-labs/graphscope/internal/core/ports/driven"
)

// nopPresenter discards presentation calls for callers without a UI.
type nopPresenter struct{}

var _ driven.Presenter = nopPresenter{}

func (nopPresenter) RenderProfile(_, _ domain.ProviderResponse, _ []string) {}
func (nopPresenter) RenderPermissions(_ domain.ProviderResponse)            {}
func (nopPresenter) RenderRawPayload(_ any)                                 {}
func (nopPresenter) RenderEmpty(_ string)                                   {}
func (nopPresenter) ShowError(_ string)                                     {}
func (nopPresenter) ClearError()                                            {}
func (nopPresenter) SetStatus(_ string, _ domain.StatusKind)                {}
func (nopPresenter) SetSessionIndicator(_ string, _ bool)                   {}
func (nopPresenter) SetBusy(_ bool)                                         {}
func (nopPresenter) FocusInput(_ domain.InputField)                         {}
func (nopPresenter) ShowToken(_ string)                                     {}
func (nopPresenter) Reset()                                                 {}
