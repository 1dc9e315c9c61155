// Package catalog loads the support-resource table and keeps the parsed rows
// for the lifetime of the process.
package catalog

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/dalemusser/recursosayuda/internal/app/system/csvutil"
	"github.com/dalemusser/recursosayuda/internal/app/system/normalize"
	"github.com/dalemusser/recursosayuda/internal/domain/models"
	"github.com/google/uuid"
	"golang.org/x/text/encoding"
)

// resourceNamespace seeds the UUIDv5 identifiers given to rows.
var resourceNamespace = uuid.MustParse("5b0e7f0c-8d1f-4c55-9a43-4f1d2c7be2a1")

// Options configures Load.
type Options struct {
	Fallback     encoding.Encoding // nil disables the second attempt
	FallbackName string
	Read         csvutil.ReadOptions
}

// DefaultOptions reads semicolon tables and falls back to Latin-1.
func DefaultOptions() Options {
	enc, name, _ := LookupEncoding(EncodingLatin1)
	return Options{
		Fallback:     enc,
		FallbackName: name,
		Read:         csvutil.DefaultReadOptions(),
	}
}

// Catalog is the immutable result of one load.
type Catalog struct {
	Rows     []models.Resource
	Encoding string // encoding the file was read under
	LoadedAt time.Time
	Path     string
}

// Load reads and normalizes the table at path. Any failure is returned
// without partial rows.
func Load(path string, opts Options) (Catalog, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("open resource table: %w", err)
	}
	if info.Size() > csvutil.MaxFileSize {
		return Catalog{}, fmt.Errorf("resource table %s is larger than %d bytes", path, csvutil.MaxFileSize)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read resource table: %w", err)
	}

	d, err := decode(raw, opts.Fallback, opts.FallbackName, opts.Read)
	if err != nil {
		return Catalog{}, err
	}

	rows, err := Parse(d.table)
	if err != nil {
		return Catalog{}, err
	}

	return Catalog{
		Rows:     rows,
		Encoding: d.encoding,
		LoadedAt: time.Now().UTC(),
		Path:     path,
	}, nil
}

// Parse maps a raw table to resources: headers are resolved by name, cells
// trimmed, placeholders dropped and provinces collapsed.
func Parse(t csvutil.Table) ([]models.Resource, error) {
	cols, err := mapColumns(t.Header)
	if err != nil {
		return nil, err
	}

	cell := func(rec []string, f field) string {
		return normalize.Cell(csvutil.Cell(rec, cols[f]))
	}

	rows := make([]models.Resource, 0, len(t.Rows))
	for _, rec := range t.Rows {
		res := models.Resource{
			Name:        cell(rec, fieldName),
			Type:        cell(rec, fieldType),
			Description: cell(rec, fieldDescription),
			Province:    normalize.Province(cell(rec, fieldProvince)),
			Locality:    cell(rec, fieldLocality),
			Audience:    cell(rec, fieldAudience),
			Phone:       cell(rec, fieldPhone),
			Website:     cell(rec, fieldWebsite),
			Email:       cell(rec, fieldEmail),
			Modality:    cell(rec, fieldModality),
		}
		res.NameCI = normalize.Key(res.Name)
		res.ProvinceCI = normalize.Key(res.Province)
		res.LocalityCI = normalize.Key(res.Locality)
		res.AudienceCI = normalize.Key(res.Audience)
		res.ID = ResourceID(res)
		rows = append(rows, res)
	}
	return rows, nil
}

// ResourceID derives the stable identifier of a row from its name, province
// and locality. Rows equal in all three share an ID.
func ResourceID(r models.Resource) string {
	key := strings.Join([]string{
		normalize.Key(r.Name),
		normalize.Key(r.Province),
		normalize.Key(r.Locality),
	}, "\x1f")
	return uuid.NewSHA1(resourceNamespace, []byte(key)).String()
}

// Provinces returns the distinct, sorted province values of rows, leaving
// out blanks and anything isGlobal reports as a scope sentinel.
func Provinces(rows []models.Resource, isGlobal func(province string) bool) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range rows {
		p := r.Province
		if p == "" || (isGlobal != nil && isGlobal(p)) {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
