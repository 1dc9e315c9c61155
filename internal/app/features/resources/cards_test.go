package resources

import (
	"strings"
	"testing"

	"github.com/dalemusser/recursosayuda/internal/app/system/finder"
	"github.com/dalemusser/recursosayuda/internal/app/system/presentation"
	"github.com/dalemusser/recursosayuda/internal/app/system/profiles"
	"github.com/dalemusser/recursosayuda/internal/testutil"
)

func TestBuildCard_ScopeAndLinks(t *testing.T) {
	rows := testutil.Rows(t,
		"Todo;;;Nacional;España;x;953 00 00 00;HTTP://EXAMPLE.ORG;info@example.org",
		"Nada;;;Jaén;Jaén;x;;;",
	)

	c := buildCard(finder.Result{Resource: rows[0]}, profiles.Default())
	if c.Scope.Class() != "tag tag-nacional" {
		t.Errorf("Scope: got %+v", c.Scope)
	}
	if len(c.Links) != 3 || c.Links[1].Href != "HTTP://EXAMPLE.ORG" {
		t.Errorf("Links: got %+v", c.Links)
	}
	if c.NoContact != "" {
		t.Errorf("NoContact should be empty when links exist, got %q", c.NoContact)
	}

	empty := buildCard(finder.Result{Resource: rows[1]}, profiles.Default())
	if empty.NoContact != presentation.NoContactText {
		t.Errorf("NoContact: got %q", empty.NoContact)
	}
}

func TestBuildCard_SanitizesDescription(t *testing.T) {
	rows := testutil.Rows(t,
		`Centro;;<b>Gratis</b><script>alert(1)</script>;Jaén;Jaén;x;;;`,
	)
	c := buildCard(finder.Result{Resource: rows[0], Priority: 1}, profiles.Default())

	if strings.Contains(string(c.Description), "script") {
		t.Errorf("description not sanitized: %q", c.Description)
	}
	if !strings.Contains(string(c.Description), "<b>Gratis</b>") {
		t.Errorf("description lost safe markup: %q", c.Description)
	}
	if c.DetailURL != "/recursos/"+rows[0].ID {
		t.Errorf("DetailURL: got %q", c.DetailURL)
	}
}
