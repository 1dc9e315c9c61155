package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/dalemusser/recursosayuda/internal/app/system/catalog"
	"github.com/dalemusser/recursosayuda/internal/app/system/csvutil"
	"github.com/dalemusser/recursosayuda/internal/app/system/finder"
	"github.com/dalemusser/recursosayuda/internal/app/system/presentation"
	"github.com/dalemusser/recursosayuda/internal/app/system/profiles"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// loadCatalog reads the table named by --csv under the --fallback-encoding.
func loadCatalog() (catalog.Catalog, error) {
	enc, name, err := catalog.LookupEncoding(fallback)
	if err != nil {
		return catalog.Catalog{}, err
	}
	opts := catalog.Options{Fallback: enc, FallbackName: name, Read: csvutil.DefaultReadOptions()}
	opts.Read.LazyQuotes = lazyQuote
	cat, err := catalog.Load(csvPath, opts)
	if err != nil {
		return catalog.Catalog{}, err
	}
	logger.Debug("resource table loaded",
		zap.String("path", csvPath),
		zap.String("encoding", cat.Encoding),
		zap.Int("rows", len(cat.Rows)))
	return cat, nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	rules, err := profiles.Load(rulesPath)
	if err != nil {
		return err
	}
	key, ok := finder.ParseDedupeKey(dedupe)
	if !ok {
		return fmt.Errorf("unknown dedupe key %q (want name or id)", dedupe)
	}

	prof := rules.DefaultProfile()
	if profileID != "" {
		p, ok := rules.Profile(profileID)
		if !ok {
			return fmt.Errorf("unknown profile %q", profileID)
		}
		prof = p
	}

	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	known := catalog.Provinces(cat.Rows, rules.IsScopeSentinel)
	if !containsFolded(known, province) {
		msg := fmt.Sprintf("Provincia %q no aparece en la tabla.", province)
		if s, ok := suggest(province, known); ok {
			msg += fmt.Sprintf(" ¿Quisiste decir %q?", s)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), warningStyle.Render(msg))
	}

	q := finder.Query{Profile: prof, Province: province, Locality: locality}
	results := finder.Search(cat.Rows, q, rules, key)
	logger.Debug("search finished",
		zap.String("profile", prof.ID),
		zap.String("province", province),
		zap.String("locality", locality),
		zap.Int("results", len(results)))

	printResults(out, results, province, rules)
	return nil
}

func printResults(w io.Writer, results []finder.Result, province string, rules profiles.Rules) {
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("Mostrando %d recursos para: %s", len(results), province)))
	if len(results) == 0 {
		fmt.Fprintln(w, warningStyle.Render("No se encontraron recursos con estos filtros."))
		return
	}
	for _, r := range results {
		fmt.Fprintln(w, renderCard(r, rules))
	}
}

func renderCard(r finder.Result, rules profiles.Rules) string {
	scope := presentation.ScopeOf(r.Resource, rules)

	lines := []string{
		nameStyle.Render(r.Name) + " " + scopeStyle(scope.Kind).Render(scope.Label),
	}
	if r.Type != "" {
		lines = append(lines, typeStyle.Render(r.Type))
	}
	if r.Description != "" {
		lines = append(lines, r.Description)
	}
	if r.Modality != "" {
		lines = append(lines, mutedStyle.Render("Modalidad: "+r.Modality))
	}

	contacts := presentation.Contacts(r.Resource)
	if len(contacts) == 0 {
		lines = append(lines, mutedStyle.Render(presentation.NoContactText))
	}
	for _, c := range contacts {
		lines = append(lines, contactLine(c))
	}

	style := cardStyle
	if r.Priority < finder.PriorityLocality {
		style = urgentCardStyle
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// contactLine prints the dialable or clickable target of c.
func contactLine(c presentation.Contact) string {
	switch c.Kind {
	case presentation.ContactPhone:
		return "Tel: " + c.Label
	case presentation.ContactWeb:
		return "Web: " + c.Href
	default:
		return "Email: " + c.Label
	}
}
