// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"net/http"
	"sync"

	"github.com/dalemusser/recursosayuda/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/httpnav"
)

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type myPageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
//
//	data := myPageData{
//	    BaseVM: viewdata.NewBaseVM(r, "Page Title", "/"),
//	}
type BaseVM struct {
	// Site settings
	SiteName   string
	FooterNote string

	// Page context
	Title       string
	BackURL     string
	CurrentPath string
}

var (
	mu         sync.RWMutex
	siteName   = models.DefaultSiteName
	footerNote = models.DefaultFooterNote
)

// Init sets the site name shown in the header. Call this once at startup
// from bootstrap. An empty name keeps the default.
func Init(name string) {
	mu.Lock()
	defer mu.Unlock()
	if name != "" {
		siteName = name
	}
}

// SiteName returns the configured site name.
func SiteName() string {
	mu.RLock()
	defer mu.RUnlock()
	return siteName
}

// NewBaseVM creates a fully populated BaseVM for a page.
//
// Parameters:
//   - r: the HTTP request
//   - title: the page title
//   - backDefault: default URL for the back button if none in request
func NewBaseVM(r *http.Request, title, backDefault string) BaseVM {
	mu.RLock()
	defer mu.RUnlock()
	return BaseVM{
		SiteName:    siteName,
		FooterNote:  footerNote,
		Title:       title,
		BackURL:     httpnav.ResolveBackURL(r, backDefault),
		CurrentPath: httpnav.CurrentPath(r),
	}
}
