// Package loader reads university conditions, score tables and cutoffs from
// YAML or JSON files into a scoring catalog.
package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/okian/admitscore/internal/domain/catalog"
	"github.com/okian/admitscore/internal/domain/lookup"
	"github.com/okian/admitscore/internal/domain/model"
	"github.com/okian/admitscore/pkg/logger"
)

// Files names the data files of one catalog. Cutoffs may be empty.
type Files struct {
	Conditions string
	Tables     string
	Cutoffs    string
}

type conditionsFile struct {
	Conditions []model.UniversityCondition `json:"conditions" yaml:"conditions"`
}

type tablesFile struct {
	// Tables maps subject -> raw key -> university id -> cell.
	Tables     map[string]map[string]map[string]cell `json:"tables" yaml:"tables"`
	Curves     map[string]lookup.Curve               `json:"curves" yaml:"curves"`
	Advantage  []lookup.AdvantageRow                 `json:"advantage" yaml:"advantage"`
	Percentile []lookup.PercentilePoint              `json:"percentile" yaml:"percentile"`
}

type cutoffsFile struct {
	Cutoffs []model.CutoffTable `json:"cutoffs" yaml:"cutoffs"`
}

// Load reads files and builds a Catalog.
func Load(ctx context.Context, files Files) (*catalog.Catalog, error) {
	log := logger.Get().Named("loader")

	var conds conditionsFile
	if err := decodeFile(files.Conditions, &conds); err != nil {
		return nil, err
	}
	if err := validate(conds.Conditions); err != nil {
		return nil, fmt.Errorf("%s: %w", files.Conditions, err)
	}

	var tables tablesFile
	if err := decodeFile(files.Tables, &tables); err != nil {
		return nil, err
	}

	var cutoffs cutoffsFile
	if files.Cutoffs != "" {
		if err := decodeFile(files.Cutoffs, &cutoffs); err != nil {
			return nil, err
		}
	}

	opts := make([]lookup.Option, 0, len(tables.Tables)+len(tables.Curves)+2)
	for subject, rows := range tables.Tables {
		opts = append(opts, lookup.WithTable(subject, toTable(rows)))
	}
	for name, c := range tables.Curves {
		opts = append(opts, lookup.WithCurve(name, c))
	}
	opts = append(opts,
		lookup.WithAdvantage(tables.Advantage),
		lookup.WithPercentile(tables.Percentile),
	)

	cat := catalog.New(
		catalog.WithStore(lookup.NewStore(opts...)),
		catalog.WithConditions(conds.Conditions...),
		catalog.WithCutoffs(cutoffs.Cutoffs...),
	)
	log.Info(ctx, "catalog loaded",
		logger.Int("universities", len(conds.Conditions)),
		logger.Int("subjects", len(tables.Tables)),
		logger.Int("curves", len(tables.Curves)),
		logger.Int("cutoffs", len(cutoffs.Cutoffs)),
	)
	return cat, nil
}

func toTable(rows map[string]map[string]cell) lookup.Table {
	t := make(lookup.Table, len(rows))
	for key, row := range rows {
		r := make(map[string]lookup.Cell, len(row))
		for id, c := range row {
			r[id] = lookup.Cell(c)
		}
		t[key] = r
	}
	return t
}

func decodeFile(path string, v any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, v)
	case ".json":
		err = json.Unmarshal(b, v)
	default:
		return fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func validate(conds []model.UniversityCondition) error {
	seen := make(map[string]struct{}, len(conds))
	for i, c := range conds {
		if c.ID == "" {
			return fmt.Errorf("condition %d: missing id: %w", i, ErrInvalidCondition)
		}
		if _, dup := seen[c.ID]; dup {
			return fmt.Errorf("%s: %w", c.ID, ErrDuplicateID)
		}
		seen[c.ID] = struct{}{}
		for cat, tier := range c.Pattern {
			if tier < model.TierUnused || tier > model.TierPoolB {
				return fmt.Errorf("%s: tier %d for %s: %w", c.ID, tier, cat, ErrInvalidCondition)
			}
		}
		if c.InquiryCount < 0 || c.InquiryCount > 2 {
			return fmt.Errorf("%s: inquiry count %d: %w", c.ID, c.InquiryCount, ErrInvalidCondition)
		}
		switch c.Math {
		case model.MathAny, model.MathCalculusOrGeometry, model.MathStatistics:
		default:
			return fmt.Errorf("%s: math requirement %q: %w", c.ID, c.Math, ErrInvalidCondition)
		}
		if req := c.Inquiry; req.Kind != "" || req.MinCount != 0 {
			if !req.Kind.IsInquiry() {
				return fmt.Errorf("%s: inquiry kind %q: %w", c.ID, req.Kind, ErrInvalidCondition)
			}
			// a candidate reports at most two subjects per inquiry kind
			if req.MinCount < 0 || req.MinCount > 2 {
				return fmt.Errorf("%s: inquiry min count %d: %w", c.ID, req.MinCount, ErrInvalidCondition)
			}
		}
		switch c.Calculator {
		case model.CalcGeneric:
		case model.CalcRatio, model.CalcBestPercentile, model.CalcBestStandard:
			if len(c.Ratios) == 0 {
				return fmt.Errorf("%s: %s calculator without ratios: %w", c.ID, c.Calculator, ErrInvalidCondition)
			}
		default:
			return fmt.Errorf("%s: calculator %q: %w", c.ID, c.Calculator, ErrInvalidCondition)
		}
	}
	return nil
}
