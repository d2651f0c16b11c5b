// Package models holds the bubbletea models behind every interactive
// swapcell screen: the sell and listing wizards, the catalog browser,
// and the drafts browser.
package models

import (
	"github.com/rs/zerolog"

	"github.com/swapcell/swapcell/internal/auth"
	"github.com/swapcell/swapcell/internal/drafts"
	"github.com/swapcell/swapcell/internal/gateway"
	"github.com/swapcell/swapcell/internal/refdata"
	"github.com/swapcell/swapcell/internal/upload"
)

// Deps bundles the collaborators every interactive model needs. Wired
// once per command invocation; models never construct their own.
type Deps struct {
	Refdata *refdata.Client
	Gateway *gateway.Gateway
	Auth    auth.Gateway
	Upload  *upload.Client
	Drafts  *drafts.Store
	Log     zerolog.Logger
}

// ---------------------------------------------------------------------------
// Shared tea messages
// ---------------------------------------------------------------------------

// Catalog fetches carry the parent key they were issued for; the
// receiving model drops any message whose key the form has moved past.

type brandsLoadedMsg struct {
	brands []refdata.Brand
	err    error
}

type modelsLoadedMsg struct {
	brandID string
	models  []refdata.Model
	err     error
}

type variantsLoadedMsg struct {
	modelID  string
	variants []refdata.Variant
	err      error
}

type leadSubmittedMsg struct {
	result *gateway.LeadResult
	err    error
	// billURL reports a completed bill-photo upload back to the event
	// loop, which owns the live form.
	billURL string
}

type productSubmittedMsg struct {
	result *gateway.ProductResult
	err    error
}

type draftSavedMsg struct {
	id  string
	err error
}

type draftsListedMsg struct {
	items []drafts.Draft
	err   error
}

type draftsChangedMsg struct{}
